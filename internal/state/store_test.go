package state

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
)

func TestScenario_AddDoneRemove(t *testing.T) {
	s := New(nil)

	require.True(t, s.Add("buy milk"))
	assert.Equal(t, []model.Item{{Value: "buy milk"}}, s.Items())

	require.True(t, s.MarkDone("buy milk"))
	assert.Equal(t, []model.Item{{Value: "buy milk", Done: true}}, s.Items())

	require.True(t, s.Remove("buy milk"))
	assert.Empty(t, s.Items())
}

func TestAdd_DuplicateIsNoop(t *testing.T) {
	s := New(nil)
	assert.True(t, s.Add("x"))
	assert.False(t, s.Add("x"))
	assert.Equal(t, []model.Item{{Value: "x"}}, s.Items())
}

func TestAdd_ValuesAreExactText(t *testing.T) {
	s := New(nil)
	require.True(t, s.Add("x"))
	require.True(t, s.Add("  x "), "surrounding whitespace makes a different value")
	require.True(t, s.Add("   "), "whitespace-only is not empty")
	assert.Equal(t, []model.Item{{Value: "x"}, {Value: "  x "}, {Value: "   "}}, s.Items())

	assert.False(t, s.Remove("x  "))
	assert.False(t, s.MarkDone(" x"))
	require.True(t, s.Remove("  x "))
	assert.Equal(t, []model.Item{{Value: "x"}, {Value: "   "}}, s.Items())
}

func TestAdd_EmptyIsNoop(t *testing.T) {
	s := New([]model.Item{{Value: "a"}})
	assert.False(t, s.Add(""))
	assert.Equal(t, []model.Item{{Value: "a"}}, s.Items())
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	s := New(nil)
	for _, v := range []string{"c", "a", "b"} {
		s.Add(v)
	}
	var got []string
	for _, it := range s.Items() {
		got = append(got, it.Value)
	}
	assert.Equal(t, []string{"c", "a", "b"}, got)
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	s := New([]model.Item{{Value: "a"}, {Value: "b", Done: true}})
	before := s.Items()
	assert.False(t, s.Remove("zzz"))
	assert.Equal(t, before, s.Items())
}

func TestRemove_KeepsOthersInOrder(t *testing.T) {
	s := New([]model.Item{{Value: "a"}, {Value: "b"}, {Value: "c"}})
	require.True(t, s.Remove("b"))
	assert.Equal(t, []model.Item{{Value: "a"}, {Value: "c"}}, s.Items())
}

func TestMarkDone_Idempotent(t *testing.T) {
	s := New([]model.Item{{Value: "a"}})
	assert.True(t, s.MarkDone("a"))
	once := s.Items()
	assert.False(t, s.MarkDone("a"))
	assert.Equal(t, once, s.Items())
	assert.False(t, s.MarkDone("missing"))
}

func TestItems_ReturnsCopy(t *testing.T) {
	s := New([]model.Item{{Value: "a"}})
	items := s.Items()
	items[0].Done = true
	assert.False(t, s.Items()[0].Done)
}

func TestNew_DropsEmptyAndDuplicates(t *testing.T) {
	s := New([]model.Item{
		{Value: "a", Done: true},
		{Value: ""},
		{Value: "a"},
		{Value: " a"},
	})
	assert.Equal(t, []model.Item{{Value: "a", Done: true}, {Value: " a"}}, s.Items())
}

func TestInput_SubmitClearsOnlyOnSuccess(t *testing.T) {
	s := New(nil)
	s.SetInput("x")
	assert.Equal(t, "x", s.Input())
	require.True(t, s.Submit())
	assert.Equal(t, "", s.Input())

	s.SetInput("x")
	assert.False(t, s.Submit())
	assert.Equal(t, "x", s.Input(), "rejected input stays in the buffer")

	s.SetInput("")
	assert.False(t, s.Submit())
	assert.Equal(t, 1, s.Len())
}

func TestStats(t *testing.T) {
	s := New([]model.Item{{Value: "a", Done: true}, {Value: "b"}, {Value: "c"}})
	done, pending := s.Stats()
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, pending)
}

func TestDirty(t *testing.T) {
	s := New([]model.Item{{Value: "a"}})
	assert.True(t, s.Dirty(), "no snapshot recorded yet")

	snap, err := model.Encode(s.Items())
	require.NoError(t, err)
	s.MarkSaved(snap)
	assert.False(t, s.Dirty())
	assert.Equal(t, snap, s.Snapshot())

	s.Add("b")
	assert.True(t, s.Dirty())
	s.Remove("b")
	assert.False(t, s.Dirty(), "list equal to snapshot again")
}

func TestUniqueness_RandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	values := []string{"a", "b", "c", "d", " a", "b ", ""}
	s := New(nil)

	for i := 0; i < 2000; i++ {
		v := values[rng.Intn(len(values))]
		switch rng.Intn(3) {
		case 0:
			s.Add(v)
		case 1:
			s.Remove(v)
		case 2:
			s.MarkDone(v)
		}

		seen := map[string]bool{}
		for _, it := range s.Items() {
			require.NotEmpty(t, it.Value)
			require.False(t, seen[it.Value], "duplicate %q after op %d", it.Value, i)
			seen[it.Value] = true
		}
	}
}
