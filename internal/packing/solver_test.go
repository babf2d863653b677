package packing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mkItem(id, typeID, name string, w, d, h int, weight float64, fragile, tip bool, order int) Item {
	return Item{
		ID: id, TypeID: typeID, Name: name,
		W: w, D: d, H: h, Weight: weight,
		IsFragile: fragile, AllowTipping: tip, PickingOrder: order,
	}
}

// Seed scenario 1: ground layer only.
func TestSolvePallet_GroundLayerOnly(t *testing.T) {
	pallet := PalletSpec{W: 100, D: 100, H: 100}
	var items []Item
	for i := 0; i < 4; i++ {
		items = append(items, mkItem(
			"box-"+string(rune('A'+i)), "BOX", "box", 45, 45, 20, 10, false, false, 1))
	}

	placed, unplaced := SolvePallet(PreSort(items), pallet, DefaultWeights())
	require.Empty(t, unplaced)
	require.Len(t, placed, 4)

	corners := make(map[[2]int]bool)
	for _, p := range placed {
		require.Equal(t, 0, p.Z, "ground-layer item must sit at z=0")
		require.Equal(t, 45, p.EffW)
		require.Equal(t, 45, p.EffD)
		corners[[2]int{p.X, p.Y}] = true
	}
	require.Len(t, corners, 4, "all four items must occupy distinct corners")
	for _, want := range [][2]int{{0, 0}, {45, 0}, {0, 45}, {45, 45}} {
		require.True(t, corners[want], "expected a box at corner %v", want)
	}
}

// Seed scenario 2: upright enforcement.
func TestSolvePallet_UprightEnforcement(t *testing.T) {
	pallet := PalletSpec{W: 100, D: 100, H: 100}
	items := []Item{mkItem("tall-1", "TALL", "tall", 10, 10, 60, 5, false, false, 1)}

	placed, unplaced := SolvePallet(items, pallet, DefaultWeights())
	require.Empty(t, unplaced)
	require.Len(t, placed, 1)
	require.False(t, placed[0].Tipped)
	require.Equal(t, 60, placed[0].EffH)
}

// Seed scenario 3: aspect-based forced tip.
func TestSolvePallet_AspectForcedTip(t *testing.T) {
	pallet := PalletSpec{W: 100, D: 100, H: 40}
	items := []Item{mkItem("tall-1", "TALL", "tall", 10, 10, 60, 5, false, true, 1)}

	placed, unplaced := SolvePallet(items, pallet, DefaultWeights())
	require.Empty(t, unplaced)
	require.Len(t, placed, 1)
	require.True(t, placed[0].Tipped)
	require.LessOrEqual(t, placed[0].EffH, 40)
}

// Seed scenario 4: fragile on top.
func TestSolvePallet_FragileOnTop(t *testing.T) {
	pallet := PalletSpec{W: 100, D: 100, H: 100}
	heavy := mkItem("heavy-1", "HEAVY", "heavy", 40, 40, 20, 20, false, false, 1)
	fragile := mkItem("fragile-1", "FRAGILE", "fragile", 40, 40, 20, 2, true, false, 1)

	placed, unplaced := SolvePallet([]Item{heavy, fragile}, pallet, DefaultWeights())
	require.Empty(t, unplaced)
	require.Len(t, placed, 2)

	var heavyP, fragileP PlacedItem
	for _, p := range placed {
		if p.ID == "heavy-1" {
			heavyP = p
		} else {
			fragileP = p
		}
	}
	if footprintOverlap(heavyP, fragileP) {
		require.Greater(t, fragileP.Z, heavyP.Z, "fragile must sit above heavy when footprints overlap")
	}
	// Never fragile below heavy: if heavy is above fragile's column, fail.
	require.False(t, above(heavyP, fragileP), "heavy must never rest above fragile")
}

// Seed scenario 5: pick-order stacking.
func TestSolvePallet_PickOrderStacking(t *testing.T) {
	pallet := PalletSpec{W: 100, D: 100, H: 100}
	items := []Item{
		mkItem("a1", "SKU", "box", 45, 45, 20, 5, false, false, 1),
		mkItem("a2", "SKU", "box", 45, 45, 20, 5, false, false, 1),
		mkItem("b1", "SKU", "box", 45, 45, 20, 5, false, false, 2),
		mkItem("b2", "SKU", "box", 45, 45, 20, 5, false, false, 2),
	}

	placed, unplaced := SolvePallet(PreSort(items), pallet, DefaultWeights())
	require.Empty(t, unplaced)
	require.Len(t, placed, 4)

	byID := make(map[string]PlacedItem, len(placed))
	for _, p := range placed {
		byID[p.ID] = p
	}

	for _, order1ID := range []string{"a1", "a2"} {
		for _, order2ID := range []string{"b1", "b2"} {
			o1, o2 := byID[order1ID], byID[order2ID]
			if footprintOverlap(o1, o2) {
				require.LessOrEqual(t, o1.Z, o2.Z,
					"order-1 item %s must not sit above order-2 item %s", order1ID, order2ID)
			}
		}
	}
}

// Seed scenario 6: multi-pallet overflow, exercised through PackAll since a
// single SolvePallet call only fills one pallet.
func TestPackAll_MultiPalletOverflow(t *testing.T) {
	pallet := PalletSpec{W: 100, D: 100, H: 100}
	var items []Item
	for i := 0; i < 20; i++ {
		items = append(items, mkItem(
			"crate-"+string(rune('A'+i)), "CRATE", "crate", 50, 50, 100, 30, false, false, 1))
	}

	pallets, err := PackAll(PreSort(items), pallet, DefaultWeights())
	require.NoError(t, err)
	require.Len(t, pallets, 5, "twenty 50x50x100 items on a 100x100x100 pallet must take exactly five pallets")
	assertInvariants(t, pallets, pallet)
	completenessCheck(t, items, pallets, nil)
}

func TestSolvePallet_EmptyInput(t *testing.T) {
	placed, unplaced := SolvePallet(nil, PalletSpec{W: 100, D: 100, H: 100}, DefaultWeights())
	require.Nil(t, placed)
	require.Nil(t, unplaced)
}

func TestSolvePallet_OverflowLeavesUnplaced(t *testing.T) {
	pallet := PalletSpec{W: 50, D: 50, H: 50}
	items := []Item{
		mkItem("a", "BIG", "big", 50, 50, 50, 10, false, false, 1),
		mkItem("b", "BIG", "big", 50, 50, 50, 10, false, false, 1),
	}
	placed, unplaced := SolvePallet(items, pallet, DefaultWeights())
	require.Len(t, placed, 1)
	require.Len(t, unplaced, 1)
}

// P9: determinism of structure — same input and weights, run twice, same
// counts and same feasibility shape (not necessarily byte-identical
// coordinates, since ties within the objective are allowed to differ).
func TestSolvePallet_DeterministicStructure(t *testing.T) {
	pallet := PalletSpec{W: 100, D: 100, H: 100}
	items := []Item{
		mkItem("a", "SKU", "box", 45, 45, 20, 5, false, false, 1),
		mkItem("b", "SKU", "box", 45, 45, 20, 5, false, false, 1),
		mkItem("c", "SKU", "box", 45, 45, 20, 5, false, false, 2),
	}

	placed1, unplaced1 := SolvePallet(PreSort(items), pallet, DefaultWeights())
	placed2, unplaced2 := SolvePallet(PreSort(items), pallet, DefaultWeights())
	require.Len(t, placed1, len(placed2))
	require.Len(t, unplaced1, len(unplaced2))
}

// Generic invariant sweep across a moderately complex mixed scenario.
func TestSolvePallet_InvariantsOnMixedScenario(t *testing.T) {
	pallet := PalletSpec{W: 120, D: 120, H: 150}
	items := []Item{
		mkItem("base-1", "BASE", "base", 60, 60, 30, 40, false, false, 1),
		mkItem("base-2", "BASE", "base", 60, 60, 30, 40, false, false, 1),
		mkItem("mid-1", "MID", "mid", 30, 30, 25, 8, false, true, 2),
		mkItem("mid-2", "MID", "mid", 30, 30, 25, 8, false, true, 2),
		mkItem("top-1", "TOP", "top", 20, 20, 15, 1, true, false, 3),
	}

	pallets, err := PackAll(PreSort(items), pallet, DefaultWeights())
	require.NoError(t, err)
	assertInvariants(t, pallets, pallet)
	completenessCheck(t, items, pallets, nil)
}
