package encoding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Danilo-Araujo-Silva/vampire/logic"
)

func TestParseProblem(t *testing.T) {
	in := `
% a small problem
p(X) | ~q(X, f(a)).
a = b.
~r.
`
	prob, err := ParseProblem(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, prob.Clauses, 3)

	bank := prob.Bank
	assert.Equal(t, "p(X0) | ~q(X0,f(a))", bank.ClauseString(prob.Clauses[0]))
	assert.Equal(t, "a = b", bank.ClauseString(prob.Clauses[1]))
	assert.Equal(t, "~r", bank.ClauseString(prob.Clauses[2]))

	for _, c := range prob.Clauses {
		assert.Equal(t, logic.RuleInput, c.Inference().Rule())
		assert.Equal(t, 0, c.Age())
	}
}

func TestParseEquality(t *testing.T) {
	prob, err := ParseProblem(strings.NewReader("f(X) != g(X) | X = a."))
	require.NoError(t, err)
	require.Len(t, prob.Clauses, 1)

	c := prob.Clauses[0]
	require.Equal(t, 2, c.Len())
	assert.True(t, c.Lit(0).IsEquality())
	assert.False(t, c.Lit(0).Positive())
	assert.True(t, c.Lit(1).IsEquality())
	assert.True(t, c.Lit(1).Positive())
}

func TestVariablesScopedPerClause(t *testing.T) {
	prob, err := ParseProblem(strings.NewReader("p(X). q(X)."))
	require.NoError(t, err)
	require.Len(t, prob.Clauses, 2)

	// Both clauses use variable 0; sharing is per clause.
	assert.Equal(t, []int{0}, prob.Clauses[0].Lit(0).Vars())
	assert.Equal(t, []int{0}, prob.Clauses[1].Lit(0).Vars())
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		"p(X.",
		"X.",
		"p(X) | .",
		"p(X) q.",
	} {
		_, err := ParseProblem(strings.NewReader(in))
		assert.Error(t, err, "input %q", in)
	}
}
