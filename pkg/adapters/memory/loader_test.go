package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	loader, err := memory.NewFromSources(map[string]string{
		"contains-one": "q0\nqA\nqR\n0,1\nq0(0,0,R)q0\nq1(1,1,R)qA\n",
		"trivial":      "s\ns\nr\n\n",
	})
	require.NoError(t, err)

	ports.DefinitionLoaderContract(t, loader, map[string]string{
		"contains-one": "q0",
		"trivial":      "s",
	})
}

func TestInMemoryLoader_Add(t *testing.T) {
	loader := memory.NewLoader(nil)
	loader.Add("m", &domain.Definition{Start: "a", Accept: "b", Reject: "c"})

	def, err := loader.Load(context.Background(), "m")
	require.NoError(t, err)
	assert.Equal(t, "a", def.Start)
}

func TestInMemoryLoader_BadSource(t *testing.T) {
	_, err := memory.NewFromSources(map[string]string{"bad": "q0\nqA\nqR\n0\nq0 0,0,R q1\n"})
	assert.ErrorIs(t, err, domain.ErrMalformedDefinition)
}
