package packing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// assertInvariants checks P1-P4, P6, P7 against a full packing result.
// P5 (picking order) and P8 (completeness) are checked by callers that
// have the extra context (original input, expected order pairs).
func assertInvariants(t *testing.T, pallets []Pallet, pallet PalletSpec) {
	t.Helper()

	for _, pl := range pallets {
		items := pl.Items
		for i, it := range items {
			// P1 containment
			require.GreaterOrEqual(t, it.X, 0)
			require.GreaterOrEqual(t, it.Y, 0)
			require.GreaterOrEqual(t, it.Z, 0)
			require.LessOrEqual(t, it.X+it.EffW, pallet.W, "item %s overflows W", it.ID)
			require.LessOrEqual(t, it.Y+it.EffD, pallet.D, "item %s overflows D", it.ID)
			require.LessOrEqual(t, it.Z+it.EffH, pallet.H, "item %s overflows H", it.ID)

			// P7 upright preserved
			if !it.AllowTipping {
				require.False(t, it.Tipped, "item %s should not be tipped", it.ID)
				require.Equal(t, it.H, it.EffH, "item %s height must be unchanged", it.ID)
			}

			// P2 non-overlap
			for j, other := range items {
				if i == j {
					continue
				}
				require.False(t, boxesOverlap3D(it, other), "items %s and %s overlap", it.ID, other.ID)
			}

			// P3/P4 support
			if it.Z > 0 {
				sup, ok := findSupporter(it, items[:i], pallet.toWeightsForTest())
				require.True(t, ok, "item %s at z=%d has no valid supporter", it.ID, it.Z)
				require.Contains(t, items[:i], *sup, "supporter of %s must itself be placed", it.ID)
			}

			// P6 fragile
			if it.IsFragile {
				for _, other := range items {
					if other.ID == it.ID {
						continue
					}
					require.False(t, above(other, it), "item %s is placed above fragile %s", other.ID, it.ID)
				}
			}
		}
	}
}

// toWeightsForTest lets invariants tests reuse findSupporter's default
// overhang tolerance without constructing a full Weights value inline.
func (PalletSpec) toWeightsForTest() Weights {
	return DefaultWeights()
}

// above reports whether a is vertically above b with overlapping
// footprints — the general relation P5/P6 are phrased against.
func above(a, b PlacedItem) bool {
	return footprintOverlap(a, b) && a.Z >= b.Z+b.EffH
}

func completenessCheck(t *testing.T, input []Item, pallets []Pallet, unplaceable []string) {
	t.Helper()
	seen := make(map[string]bool)
	for _, pl := range pallets {
		for _, it := range pl.Items {
			require.False(t, seen[it.ID], "item %s placed twice", it.ID)
			seen[it.ID] = true
		}
	}
	for _, id := range unplaceable {
		seen[id] = true
	}
	require.Len(t, seen, len(input), "every input item must appear exactly once")
}
