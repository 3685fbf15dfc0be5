package graph_test

import (
	"testing"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *domain.Definition {
	t.Helper()
	def, err := compiler.NewParser().ParseBytes([]byte(src))
	require.NoError(t, err)
	return def
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestGenerateMermaid_Golden(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		overlay *graph.GraphOverlay
	}{
		{
			name: "contains_one",
			src:  "q0\nqA\nqR\n0,1\nq0(0,0,R)q0\nq0(1,1,R)qA\n",
		},
		{
			name: "shared_edges",
			src:  "start\nend\nfail\na,b\nstart(a,x,R)start\nstart(b,x,R)start\nstart( , ,L)back\nback(x,x,L)back\nback( , ,R)end\n",
		},
		{
			name:    "overlay",
			src:     "q0\nqA\nqR\n0,1\nq0(0,0,R)q0\nq0(1,1,R)qA\n",
			overlay: &graph.GraphOverlay{VisitedStates: []string{"q0", "q0", "qA"}, CurrentState: "qA"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := graph.GenerateMermaid(parse(t, tt.src), tt.overlay)
			golden(t).Assert(t, tt.name, []byte(out))
		})
	}
}

func TestGenerateMermaid_SanitizesIDs(t *testing.T) {
	def := &domain.Definition{
		Start: "q-0", Accept: "end", Reject: `say "no"`,
		Rules: []domain.Rule{{From: "q-0", Read: '0', Write: '0', Move: domain.Right, To: "end"}},
	}
	out := graph.GenerateMermaid(def, nil)

	assert.Contains(t, out, `s_q_2d_0(("q-0"))`)
	assert.Contains(t, out, `s_end((("end")))`)
	assert.Contains(t, out, `{{"say #quot;no#quot;"}}`)
	assert.Contains(t, out, `s_q_2d_0 -- "0/0,R" --> s_end`)
}
