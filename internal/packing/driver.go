package packing

import "strings"

// CriticalError reports that at least one item cannot be placed on any
// empty pallet, halting the multi-pallet driver per spec §4.5/§7.
type CriticalError struct {
	OffendingItemIDs []string
}

func (e *CriticalError) Error() string {
	return "cannot pack item(s): " + strings.Join(e.OffendingItemIDs, ", ")
}

// PackAll repeatedly solves the current remaining items onto successive
// pallets until none remain. It returns the pallets built so far and a
// *CriticalError if at least one item fits on no empty pallet in any
// orientation — the only way the driver can fail, per spec §4.5/§7.
//
// An empty items slice is not an error: it is the "no items built" case
// (spec §7 kind 1) and returns (nil, nil).
func PackAll(items []Item, pallet PalletSpec, w Weights) ([]Pallet, error) {
	if len(items) == 0 {
		return nil, nil
	}

	var offending []string
	for _, it := range items {
		if !itemFitsAlone(it, pallet, w) {
			offending = append(offending, it.ID)
		}
	}
	if len(offending) > 0 {
		return nil, &CriticalError{OffendingItemIDs: offending}
	}

	var pallets []Pallet
	remaining := items
	palletID := 1
	for len(remaining) > 0 {
		placed, unplaced := SolvePallet(remaining, pallet, w)
		if len(placed) == 0 {
			// Defensive: the upfront fit check above should make this
			// unreachable. Surface it as the same critical error rather
			// than looping forever.
			ids := make([]string, len(remaining))
			for i, it := range remaining {
				ids[i] = it.ID
			}
			return pallets, &CriticalError{OffendingItemIDs: ids}
		}
		pallets = append(pallets, Pallet{PalletID: palletID, Items: placed})
		remaining = unplaced
		palletID++
	}

	return pallets, nil
}

// itemFitsAlone reports whether it could be placed on an empty pallet by
// itself in some allowed orientation, ignoring every constraint that only
// matters in the presence of other items (support, fragility, ordering,
// clustering). Used up front so the driver can reject truly unpackable
// items before burning a solve call on them.
func itemFitsAlone(it Item, pallet PalletSpec, w Weights) bool {
	for _, orient := range feasibleOrientations(it, w) {
		for _, spin := range [2]bool{false, true} {
			ew, ed, eh := orientedDims(it, orient, spin)
			if ew <= pallet.W && ed <= pallet.D && eh <= pallet.H {
				return true
			}
		}
	}
	return false
}
