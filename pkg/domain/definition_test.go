package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinition_MatchFirstDeclaredWins(t *testing.T) {
	def := &Definition{
		Start: "q0",
		Rules: []Rule{
			{From: "q0", Read: '0', Write: 'x', Move: Right, To: "q1"},
			{From: "q0", Read: '0', Write: 'y', Move: Left, To: "q2"},
		},
	}

	r, ok := def.Match("q0", '0')
	require.True(t, ok)
	assert.Equal(t, Symbol('x'), r.Write)
	assert.Equal(t, "q1", r.To)

	_, ok = def.Match("q0", '1')
	assert.False(t, ok)
	_, ok = def.Match("q1", '0')
	assert.False(t, ok)
}

func TestDefinition_States(t *testing.T) {
	def := &Definition{
		Start:  "q0",
		Accept: "qA",
		Reject: "qR",
		Rules: []Rule{
			{From: "q0", Read: '0', Write: '0', Move: Right, To: "q1"},
			{From: "q1", Read: '1', Write: '1', Move: Right, To: "qA"},
		},
	}
	assert.Equal(t, []string{"q0", "qA", "qR", "q1"}, def.States())
	assert.True(t, def.IsHalting("qR"))
	assert.False(t, def.IsHalting("q1"))
}

func TestSymbol_JSON(t *testing.T) {
	rule := Rule{From: "q0", Read: Blank, Write: '1', Move: Right, To: "q1"}
	data, err := json.Marshal(rule)
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"q0","read":" ","write":"1","move":"R","to":"q1"}`, string(data))

	var back Rule
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, rule, back)
}

func TestRule_String(t *testing.T) {
	r := Rule{From: "q0", Read: Blank, Write: '1', Move: Left, To: "qA"}
	assert.Equal(t, "q0( ,1,L)qA", r.String())
	assert.Equal(t, "␣", Blank.String())
}

func TestResult_Accepted(t *testing.T) {
	var nilResult *Result
	assert.False(t, nilResult.Accepted())
	assert.True(t, (&Result{Verdict: VerdictAccepted}).Accepted())
	assert.False(t, (&Result{Verdict: VerdictRejected}).Accepted())
}
