package gen_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lobx/internal/book"
	"lobx/internal/gen"
)

func TestStream_ProducesRequestedCount(t *testing.T) {
	p := gen.DefaultParams()
	p.Count = 50
	cmds := gen.Stream(p, rand.New(rand.NewSource(42)))
	require.Len(t, cmds, 50)
}

func TestStream_IsDeterministicForAFixedSeed(t *testing.T) {
	p := gen.DefaultParams()
	p.Count = 100
	a := gen.Stream(p, rand.New(rand.NewSource(9)))
	b := gen.Stream(p, rand.New(rand.NewSource(9)))
	assert.Equal(t, a, b)
}

func TestStream_FeedsAValidBookWithoutPanicking(t *testing.T) {
	p := gen.DefaultParams()
	p.Count = 500
	cmds := gen.Stream(p, rand.New(rand.NewSource(3)))

	b := book.New()
	for _, cmd := range cmds {
		b.Dispatch(cmd)
	}
}
