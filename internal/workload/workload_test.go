package workload

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedsim/internal/sched"
)

func TestParse(t *testing.T) {
	for _, in := range []string{"8,8,64", "8 8 64", "[8, 8, 64]", " 8,\t8 ,64 "} {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, []int64{8, 8, 64}, got, in)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("")
	assert.ErrorIs(t, err, sched.ErrEmptyScenario)

	_, err = Parse("4,0")
	assert.ErrorIs(t, err, sched.ErrInvalidBurst)

	_, err = Parse("4,x")
	assert.Error(t, err)
}

func TestRandomStaysInRange(t *testing.T) {
	bursts := Random(rand.New(rand.NewSource(1)), 200, 3, 7)
	require.Len(t, bursts, 200)
	for _, b := range bursts {
		assert.GreaterOrEqual(t, b, int64(3))
		assert.LessOrEqual(t, b, int64(7))
	}
	assert.Nil(t, Random(rand.New(rand.NewSource(1)), 0, 1, 2))
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := sched.RandomWorkload{Count: 3, Length: 6, Min: 1, Max: 64, Seed: 99}

	a := Generate(cfg)
	b := Generate(cfg)
	require.Len(t, a, 3)
	assert.Equal(t, a, b)
	for _, s := range a {
		assert.NoError(t, sched.ValidateScenario(s))
	}

	cfg.Count = 0
	assert.Nil(t, Generate(cfg))
}

func TestResolve(t *testing.T) {
	cfg := sched.DefaultConfig()
	assert.Equal(t, Builtin(), Resolve(cfg))

	cfg.Scenarios = [][]int64{{4, 2}}
	cfg.Random = sched.RandomWorkload{Count: 2, Length: 3, Min: 1, Max: 5}
	got := Resolve(cfg)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{4, 2}, got[0])
	assert.Len(t, got[2], 3)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "[8, 8, 256]", Format([]int64{8, 8, 256}))
	assert.Equal(t, "[]", Format(nil))
}
