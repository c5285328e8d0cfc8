package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndex_OnFieldWritten(t *testing.T) {
	ix := New[string]("requesterClOrdId", 0)
	ix.OnFieldWritten(0, "A")
	ix.OnFieldWritten(113, "B")

	assert.Equal(t, []int{0}, ix.Lookup("A"))
	assert.Equal(t, []int{113}, ix.Lookup("B"))

	// move offset 0 from A to B
	ix.OnFieldWritten(0, "B")
	assert.Equal(t, []int{}, ix.Lookup("A"))
	assert.Equal(t, []int{0, 113}, ix.Lookup("B"))

	v, ok := ix.ValueAt(0)
	assert.True(t, ok)
	assert.Equal(t, "B", v)

	// the emptied set is retained
	assert.Equal(t, 2, ix.Keys())
}

func TestIndex_Idempotent(t *testing.T) {
	ix := New[int32]("requester", 4)
	ix.OnFieldWritten(0, 7)
	ix.OnFieldWritten(0, 7)
	ix.OnFieldWritten(0, 7)
	assert.Equal(t, []int{0}, ix.Lookup(7))
	assert.Equal(t, 1, ix.Keys())
}

func TestIndex_LookupUnknown(t *testing.T) {
	ix := New[int64]("clusterSession", 0)
	res := ix.Lookup(99)
	assert.NotNil(t, res)
	assert.Empty(t, res)

	_, ok := ix.ValueAt(0)
	assert.False(t, ok)
}

func TestIndex_LookupIsSnapshot(t *testing.T) {
	ix := New[int32]("responder", 0)
	ix.OnFieldWritten(0, 1)
	ix.OnFieldWritten(113, 1)

	snapshot := ix.Lookup(1)
	ix.OnFieldWritten(0, 2)
	ix.OnFieldWritten(226, 1)

	assert.Equal(t, []int{0, 113}, snapshot)
	assert.Equal(t, []int{113, 226}, ix.Lookup(1))
}

func TestIndex_CaseOnlyChangeMovesOffset(t *testing.T) {
	ix := New[string]("requesterClOrdId", 0)
	ix.OnFieldWritten(0, "abc")
	ix.OnFieldWritten(0, "ABC")

	assert.Equal(t, []int{}, ix.Lookup("abc"))
	assert.Equal(t, []int{0}, ix.Lookup("ABC"))
	v, _ := ix.ValueAt(0)
	assert.Equal(t, "ABC", v)
}

func TestIndex_Field(t *testing.T) {
	assert.Equal(t, "requester", New[int32]("requester", 0).Field())
}
