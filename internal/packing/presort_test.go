package packing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPreSort_OrdersByPickingOrderThenAreaThenName(t *testing.T) {
	items := []Item{
		{ID: "small-late", Name: "b", W: 10, D: 10, PickingOrder: 2},
		{ID: "big-early", Name: "a", W: 50, D: 50, PickingOrder: 1},
		{ID: "small-early-b", Name: "b", W: 20, D: 20, PickingOrder: 1},
		{ID: "small-early-a", Name: "a", W: 20, D: 20, PickingOrder: 1},
	}

	out := PreSort(items)
	ids := make([]string, len(out))
	for i, it := range out {
		ids[i] = it.ID
	}
	require.Equal(t, []string{"big-early", "small-early-a", "small-early-b", "small-late"}, ids)
}

func TestPreSort_DoesNotMutateInput(t *testing.T) {
	items := []Item{{ID: "a", PickingOrder: 2}, {ID: "b", PickingOrder: 1}}
	_ = PreSort(items)
	require.Equal(t, "a", items[0].ID, "PreSort must return a new slice, not reorder in place")
}
