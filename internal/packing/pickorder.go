package packing

import "sort"

// AssignPickingOrder collects the distinct location codes present in items,
// sorts them ascending lexicographically, and assigns each a rank starting
// at 1. Every item receives the rank of its own location as PickingOrder.
//
// Items picked first at the warehouse (smallest rank) must end up lowest on
// the pallet, since they come off last during unloading (LIFO). This
// inversion is enforced elsewhere as a hard support constraint and as a
// height penalty weighted by (max_order - picking_order + 1); this function
// only computes the rank.
func AssignPickingOrder(items []Item) []Item {
	seen := make(map[string]struct{})
	var locations []string
	for _, it := range items {
		if _, ok := seen[it.Location]; !ok {
			seen[it.Location] = struct{}{}
			locations = append(locations, it.Location)
		}
	}
	sort.Strings(locations)

	rank := make(map[string]int, len(locations))
	for i, loc := range locations {
		rank[loc] = i + 1
	}

	out := make([]Item, len(items))
	for i, it := range items {
		it.PickingOrder = rank[it.Location]
		out[i] = it
	}
	return out
}

// MaxPickingOrder returns the largest PickingOrder across items, or 0 if
// items is empty.
func MaxPickingOrder(items []Item) int {
	max := 0
	for _, it := range items {
		if it.PickingOrder > max {
			max = it.PickingOrder
		}
	}
	return max
}
