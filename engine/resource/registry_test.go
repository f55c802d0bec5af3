package resource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireSharesByKey(t *testing.T) {
	var freed []int
	created := 0
	r := NewRegistry(func(v int) { freed = append(freed, v) })
	create := func() (int, error) {
		created++
		return 42, nil
	}

	a, err := r.Acquire("answer", create)
	require.NoError(t, err)
	b, err := r.Acquire("answer", create)
	require.NoError(t, err)

	assert.Equal(t, 1, created)
	assert.Equal(t, 2, r.Refs("answer"))
	assert.Equal(t, 42, b.Value())
	assert.Equal(t, "answer", a.Key())

	assert.False(t, a.Release())
	assert.Empty(t, freed)
	assert.True(t, b.Release())
	assert.Equal(t, []int{42}, freed)
	assert.False(t, r.Has("answer"))
	assert.Equal(t, 0, r.Len())
}

func TestReleaseIsIdempotent(t *testing.T) {
	frees := 0
	r := NewRegistry(func(string) { frees++ })
	a, _ := r.Acquire("k", func() (string, error) { return "v", nil })
	b, _ := r.Acquire("k", func() (string, error) { return "v", nil })

	assert.False(t, a.Release())
	assert.False(t, a.Release())
	assert.Equal(t, 1, r.Refs("k"))

	assert.True(t, b.Release())
	assert.False(t, b.Release())
	assert.Equal(t, 1, frees)
}

func TestCloneAddsReference(t *testing.T) {
	frees := 0
	r := NewRegistry(func(int) { frees++ })
	a, _ := r.Acquire("k", func() (int, error) { return 1, nil })
	c := a.Clone()

	assert.Equal(t, 2, r.Refs("k"))
	assert.False(t, a.Release())
	assert.True(t, c.Release())
	assert.Equal(t, 1, frees)

	assert.Panics(t, func() { a.Clone() })
}

func TestReacquireAfterFreeCreatesAgain(t *testing.T) {
	created := 0
	r := NewRegistry[int](nil)
	create := func() (int, error) {
		created++
		return created, nil
	}

	a, _ := r.Acquire("k", create)
	a.Release()
	b, _ := r.Acquire("k", create)

	assert.Equal(t, 2, created)
	assert.Equal(t, 2, b.Value())
}

func TestAcquireCreateError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRegistry[int](nil)

	h, err := r.Acquire("k", func() (int, error) { return 0, boom })
	assert.Nil(t, h)
	assert.ErrorIs(t, err, boom)
	assert.False(t, r.Has("k"))
	assert.Empty(t, r.Keys())
}
