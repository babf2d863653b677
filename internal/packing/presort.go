package packing

import "sort"

// PreSort stably sorts items by (picking_order ascending, base area
// descending, name ascending) before each single-pallet solve call. This
// only conditions the solver to find a well-supported foundation quickly;
// it has no semantic effect on a feasible output.
func PreSort(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.PickingOrder != b.PickingOrder {
			return a.PickingOrder < b.PickingOrder
		}
		areaA, areaB := a.BaseArea(), b.BaseArea()
		if areaA != areaB {
			return areaA > areaB
		}
		return a.Name < b.Name
	})
	return out
}
