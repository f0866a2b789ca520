package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/refundflow/server/internal/refund/tree"
)

func TestSetRejectsOutOfDomainValues(t *testing.T) {
	s := New()

	assert.False(t, s.Set(tree.SlotItemCondition, "broken"))
	_, ok := s.Get(tree.SlotItemCondition)
	assert.False(t, ok, "rejected write must leave the slot absent")

	assert.False(t, s.Set(tree.Slot("refund_amount"), "100"))
	assert.Equal(t, 0, s.Len())
}

func TestSetStoresAndOverwrites(t *testing.T) {
	s := New()

	assert.True(t, s.Set(tree.SlotItemCondition, "damaged"))
	v, ok := s.Get(tree.SlotItemCondition)
	assert.True(t, ok)
	assert.Equal(t, "damaged", v)

	// Corrections overwrite.
	assert.True(t, s.Set(tree.SlotItemCondition, "normal"))
	v, _ = s.Get(tree.SlotItemCondition)
	assert.Equal(t, "normal", v)
	assert.Equal(t, 1, s.Len())
}

func TestValuesReturnsACopy(t *testing.T) {
	s := New()
	s.Set(tree.SlotDelivered, "Yes")

	values := s.Values()
	values[tree.SlotDelivered] = "No"

	v, _ := s.Get(tree.SlotDelivered)
	assert.Equal(t, "Yes", v)
}

func TestClear(t *testing.T) {
	s := New()
	s.Set(tree.SlotDelivered, "Yes")
	s.Clear()
	assert.Equal(t, 0, s.Len())
	_, ok := s.Get(tree.SlotDelivered)
	assert.False(t, ok)
}
