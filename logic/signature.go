package logic

import "fmt"

// EqualityPred is the predicate number reserved for the equality predicate.
// It is interpreted as commutative and is registered in every signature.
const EqualityPred = 0

type symbol struct {
	name        string
	arity       int
	commutative bool
}

// Signature maps function and predicate symbols to their numbers and
// arities. Symbol numbers are dense and start at zero; predicate number
// zero is always equality.
type Signature struct {
	funcs []symbol
	preds []symbol

	funcIndex map[string]int
	predIndex map[string]int
}

// NewSignature returns a signature containing only the equality predicate.
func NewSignature() *Signature {
	s := &Signature{
		funcIndex: map[string]int{},
		predIndex: map[string]int{},
	}
	s.preds = append(s.preds, symbol{name: "=", arity: 2, commutative: true})
	s.predIndex[symKey("=", 2)] = EqualityPred

	return s
}

func symKey(name string, arity int) string {
	return fmt.Sprintf("%s/%d", name, arity)
}

// AddFunc registers a function symbol and returns its number. Registering
// the same name/arity pair twice returns the original number.
func (s *Signature) AddFunc(name string, arity int) int {
	if f, ok := s.funcIndex[symKey(name, arity)]; ok {
		return f
	}
	s.funcs = append(s.funcs, symbol{name: name, arity: arity})
	s.funcIndex[symKey(name, arity)] = len(s.funcs) - 1

	return len(s.funcs) - 1
}

// AddPred registers a predicate symbol and returns its number.
func (s *Signature) AddPred(name string, arity int) int {
	if p, ok := s.predIndex[symKey(name, arity)]; ok {
		return p
	}
	s.preds = append(s.preds, symbol{name: name, arity: arity})
	s.predIndex[symKey(name, arity)] = len(s.preds) - 1

	return len(s.preds) - 1
}

// SetCommutative marks a predicate as symmetric, so that matching tries
// both argument orders.
func (s *Signature) SetCommutative(pred int) {
	s.preds[pred].commutative = true
}

// FuncArity returns the arity of a function symbol.
func (s *Signature) FuncArity(fn int) int {
	return s.funcs[fn].arity
}

// PredArity returns the arity of a predicate symbol.
func (s *Signature) PredArity(pred int) int {
	return s.preds[pred].arity
}

// IsCommutative reports whether a predicate is symmetric.
func (s *Signature) IsCommutative(pred int) bool {
	return s.preds[pred].commutative
}

// FuncName returns the name of a function symbol.
func (s *Signature) FuncName(fn int) string {
	return s.funcs[fn].name
}

// PredName returns the name of a predicate symbol.
func (s *Signature) PredName(pred int) string {
	return s.preds[pred].name
}

// NFuncs returns the number of registered function symbols.
func (s *Signature) NFuncs() int {
	return len(s.funcs)
}

// NPreds returns the number of registered predicate symbols.
func (s *Signature) NPreds() int {
	return len(s.preds)
}
