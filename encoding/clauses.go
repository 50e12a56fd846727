// Package encoding reads problems in a minimal clause form: one clause
// per '.'-terminated sentence, literals separated by '|', '~' for
// negation, '=' and '!=' for equality, identifiers starting with an
// upper-case letter for variables. '%' starts a comment line.
package encoding

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/Danilo-Araujo-Silva/vampire/logic"
)

// Problem is a parsed clause set over its own signature and bank.
type Problem struct {
	Bank    *logic.Bank
	Clauses []*logic.Clause
}

// ParseProblem reads a clause set.
func ParseProblem(in io.Reader) (*Problem, error) {
	scanner := bufio.NewScanner(in)
	var sb strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.Index(line, "%"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sig := logic.NewSignature()
	bank := logic.NewBank(sig)
	p := &Problem{Bank: bank}

	for i, sentence := range strings.Split(sb.String(), ".") {
		if strings.TrimSpace(sentence) == "" {
			continue
		}
		c, err := parseClause(bank, sentence)
		if err != nil {
			return nil, errors.Wrapf(err, "clause %d", i+1)
		}
		p.Clauses = append(p.Clauses, c)
	}
	return p, nil
}

// node is the neutral parse tree: applications are resolved into
// predicates or function terms afterwards.
type node struct {
	name string
	args []*node
}

type parser struct {
	toks []string
	pos  int
}

func tokenize(s string) []string {
	var toks []string
	i := 0
	for i < len(s) {
		ch := s[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '(' || ch == ')' || ch == ',' || ch == '|' || ch == '~' || ch == '=':
			toks = append(toks, string(ch))
			i++
		case ch == '!' && i+1 < len(s) && s[i+1] == '=':
			toks = append(toks, "!=")
			i += 2
		default:
			j := i
			for j < len(s) && isNameChar(s[j]) {
				j++
			}
			if j == i {
				toks = append(toks, string(ch))
				i++

				continue
			}
			toks = append(toks, s[i:j])
			i = j
		}
	}
	return toks
}

func isNameChar(ch byte) bool {
	return ch == '_' || ch >= '0' && ch <= '9' ||
		ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func (p *parser) peek() string {
	if p.pos >= len(p.toks) {
		return ""
	}
	return p.toks[p.pos]
}

func (p *parser) next() string {
	t := p.peek()
	p.pos++

	return t
}

func (p *parser) expect(tok string) error {
	if got := p.next(); got != tok {
		return errors.Errorf("expected %q, got %q", tok, got)
	}
	return nil
}

// parseApp parses name or name(args...).
func (p *parser) parseApp() (*node, error) {
	name := p.next()
	if name == "" || !isNameChar(name[0]) {
		return nil, errors.Errorf("expected identifier, got %q", name)
	}
	n := &node{name: name}
	if p.peek() != "(" {
		return n, nil
	}
	p.next()
	for {
		arg, err := p.parseApp()
		if err != nil {
			return nil, err
		}
		n.args = append(n.args, arg)
		switch p.peek() {
		case ",":
			p.next()
		case ")":
			p.next()

			return n, nil
		default:
			return nil, errors.Errorf("expected ',' or ')', got %q", p.peek())
		}
	}
}

func parseClause(bank *logic.Bank, sentence string) (*logic.Clause, error) {
	p := &parser{toks: tokenize(sentence)}
	vars := map[string]int{}

	var lits []*logic.Literal
	for {
		l, err := parseLiteral(bank, p, vars)
		if err != nil {
			return nil, err
		}
		lits = append(lits, l)
		if p.peek() != "|" {
			break
		}
		p.next()
	}
	if p.pos != len(p.toks) {
		return nil, errors.Errorf("trailing input %q", p.peek())
	}
	return logic.NewClause(lits, 0, logic.NewInference(logic.RuleInput)), nil
}

func parseLiteral(bank *logic.Bank, p *parser, vars map[string]int) (*logic.Literal, error) {
	positive := true
	if p.peek() == "~" {
		p.next()
		positive = false
	}
	left, err := p.parseApp()
	if err != nil {
		return nil, err
	}
	switch p.peek() {
	case "=", "!=":
		if p.next() == "!=" {
			positive = !positive
		}
		right, err := p.parseApp()
		if err != nil {
			return nil, err
		}
		lt, err := buildTerm(bank, left, vars)
		if err != nil {
			return nil, err
		}
		rt, err := buildTerm(bank, right, vars)
		if err != nil {
			return nil, err
		}
		return bank.Lit(logic.EqualityPred, positive, lt, rt), nil
	}
	if isVariableName(left.name) {
		return nil, errors.Errorf("variable %q cannot be a predicate", left.name)
	}
	args := make([]*logic.Term, len(left.args))
	for i, a := range left.args {
		t, err := buildTerm(bank, a, vars)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	pred := bank.Signature().AddPred(left.name, len(args))

	return bank.Lit(pred, positive, args...), nil
}

func buildTerm(bank *logic.Bank, n *node, vars map[string]int) (*logic.Term, error) {
	if isVariableName(n.name) {
		if len(n.args) > 0 {
			return nil, errors.Errorf("variable %q cannot take arguments", n.name)
		}
		v, ok := vars[n.name]
		if !ok {
			v = len(vars)
			vars[n.name] = v
		}
		return bank.Var(v), nil
	}
	args := make([]*logic.Term, len(n.args))
	for i, a := range n.args {
		t, err := buildTerm(bank, a, vars)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	fn := bank.Signature().AddFunc(n.name, len(args))

	return bank.Apply(fn, args...), nil
}

func isVariableName(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}
