package packing

// objective computes the weighted sum described in spec §4.4.3 for a
// candidate placed set. placed must be in the chronological order items
// were added during construction — supporter relationships are resolved
// by looking only at items earlier in the slice, which is exactly the set
// that existed when each item was placed.
func objective(placed []PlacedItem, w Weights) float64 {
	if len(placed) == 0 {
		return 0
	}

	var volumeSum int64
	var maxZ int
	var gravitySum, cornerSum int
	var gapFillCount int
	var sameTypePenaltyCount int
	maxOrder := 0

	supporters := make([]*PlacedItem, len(placed))
	for i := range placed {
		p := placed[i]
		volumeSum += p.Volume()
		if top := p.Z + p.EffH; top > maxZ {
			maxZ = top
		}
		gravitySum += p.Z
		cornerSum += p.X + p.Y
		if p.Tipped {
			gapFillCount++
		}
		if p.PickingOrder > maxOrder {
			maxOrder = p.PickingOrder
		}
		if p.Z > 0 {
			if sup, ok := findSupporter(p, placed[:i], w); ok {
				supporters[i] = sup
				if sup.TypeID == p.TypeID {
					sameTypePenaltyCount++
				}
			}
		}
	}

	var clusteringPenalty float64
	for i := 1; i < len(placed); i++ {
		a, b := placed[i-1], placed[i]
		if a.Name != b.Name {
			continue
		}
		dx := abs(a.X - b.X)
		dy := abs(a.Y - b.Y)
		dz := abs(a.Z - b.Z)
		clusteringPenalty += float64(dx + dy + 4*dz)
	}

	var locationPenalty float64
	for _, p := range placed {
		locationPenalty += float64(p.Z) * float64(maxOrder-p.PickingOrder+1)
	}

	obj := w.VolumeReward*float64(volumeSum) -
		w.MaxZPenalty*float64(maxZ) -
		w.GravityWeight*float64(gravitySum) -
		w.CornerWeight*float64(cornerSum) -
		w.GapFillPenalty*float64(gapFillCount) -
		w.ClusteringWeight*clusteringPenalty -
		w.SameTypeStackingPenalty*float64(sameTypePenaltyCount) -
		w.LocationWeight*locationPenalty

	return obj
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
