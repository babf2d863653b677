package packing

import (
	"context"
	"sort"
	"time"

	"github.com/sourcegraph/conc"
)

// SolvePallet is the single-pallet solver: the engineering core of the
// package. Given a list of candidate items (already pre-sorted by the
// caller) and a pallet spec, it chooses a subset to place and assigns each
// chosen item an integer origin and orientation, maximizing the weighted
// objective described in Weights subject to the hard constraints in
// spec §4.4.2. Unchosen items are returned, in their original relative
// order, for the next pallet.
//
// The model spec describes (boolean/integer decision variables, reified
// linear constraints, a linear objective) calls for a constraint-optimization
// backend. No such engine is available in this module's dependency set, so
// this is a bounded constructive search: several independent placement
// attempts (differing in tie-break order) run in parallel across
// sourcegraph/conc workers, each building a placement greedily via a
// corner-point / stacking-point candidate scheme and scoring every
// candidate against the full objective before committing to it. The best
// attempt — most items placed, ties broken by objective — wins within the
// wall-clock budget in w.TimeLimit. This is deliberately not an exhaustive
// search: it trades completeness for the ability to run at all without a
// CP/ILP backend, while still satisfying every hard constraint exactly
// (apart from the upright fallback in feasibleOrientations for items that
// violate the aspect limit in every orientation).
func SolvePallet(items []Item, pallet PalletSpec, w Weights) (placed []PlacedItem, unplaced []Item) {
	if len(items) == 0 {
		return nil, nil
	}

	workers := w.Workers
	if workers <= 0 {
		workers = 4
	}
	deadline := w.TimeLimit
	if deadline <= 0 {
		deadline = 20 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), deadline)
	defer cancel()

	type attempt struct {
		placed    []PlacedItem
		unplaced  []Item
		objective float64
	}

	results := make([]attempt, workers)
	var wg conc.WaitGroup
	for wk := 0; wk < workers; wk++ {
		wk := wk
		wg.Go(func() {
			order := variantOrder(items, wk)
			p, u := construct(ctx, order, pallet, w)
			results[wk] = attempt{placed: p, unplaced: u, objective: objective(p, w)}
		})
	}
	wg.Wait()

	best := results[0]
	for _, r := range results[1:] {
		if len(r.placed) > len(best.placed) ||
			(len(r.placed) == len(best.placed) && r.objective > best.objective) {
			best = r
		}
	}

	sort.SliceStable(best.placed, func(i, j int) bool {
		a, b := best.placed[i], best.placed[j]
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	// Workers other than 0 construct from a reordered copy, so restore the
	// caller's relative order for the items left over.
	leftover := make(map[string]bool, len(best.unplaced))
	for _, it := range best.unplaced {
		leftover[it.ID] = true
	}
	for _, it := range items {
		if leftover[it.ID] {
			unplaced = append(unplaced, it)
		}
	}

	return best.placed, unplaced
}

// variantOrder returns a deterministic reordering of items for attempt
// index k, used to diversify the parallel search workers. Worker 0 always
// uses the caller's original order unchanged (the pre-sorted sequence is
// the primary, best-conditioned attempt).
func variantOrder(items []Item, k int) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	if k == 0 {
		return out
	}
	// Stable re-sort with a perturbed tie-break: odd workers reverse the
	// secondary (base area) sort direction, and workers with k%4 of 2 or 3
	// break name ties in reverse. This
	// explores different foundations without discarding the picking-order
	// and area conditioning PreSort already established.
	reverseArea := k%2 == 1
	reverseName := k%4 >= 2
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.PickingOrder != b.PickingOrder {
			return a.PickingOrder < b.PickingOrder
		}
		areaA, areaB := a.BaseArea(), b.BaseArea()
		if areaA != areaB {
			if reverseArea {
				return areaA < areaB
			}
			return areaA > areaB
		}
		if reverseName {
			return a.Name > b.Name
		}
		return a.Name < b.Name
	})
	return out
}

// point is a candidate horizontal anchor for a new item's origin.
type point struct{ x, y int }

// construct greedily places items in the given order, one at a time,
// choosing for each item the best-scoring feasible (orientation, position)
// among a finite candidate set derived from the corners and top faces of
// items already placed. An item with no feasible candidate is added to the
// unplaced list and the construction continues with the next item.
func construct(ctx context.Context, items []Item, pallet PalletSpec, w Weights) ([]PlacedItem, []Item) {
	var placed []PlacedItem
	var unplaced []Item

	for _, it := range items {
		select {
		case <-ctx.Done():
			unplaced = append(unplaced, it)
			continue
		default:
		}

		best, ok := bestPlacement(it, placed, pallet, w)
		if !ok {
			unplaced = append(unplaced, it)
			continue
		}
		placed = append(placed, best)
	}

	return placed, unplaced
}

// bestPlacement searches every feasible orientation and candidate position
// for it against the current placed set, returning the one that yields the
// highest objective value once added.
func bestPlacement(it Item, placed []PlacedItem, pallet PalletSpec, w Weights) (PlacedItem, bool) {
	var (
		found   bool
		best    PlacedItem
		bestObj float64
	)

	for _, orient := range feasibleOrientations(it, w) {
		for _, spin := range [2]bool{false, true} {
			ew, ed, eh := orientedDims(it, orient, spin)
			for _, cand := range candidatePositions(placed, pallet, ew, ed) {
				for _, z := range candidateZLevels(placed, cand, ew, ed) {
					pi := PlacedItem{
						Item: it, X: cand.x, Y: cand.y, Z: z,
						EffW: ew, EffD: ed, EffH: eh,
						Tipped: orient.isTipped(),
					}
					if !fits(pi, pallet) {
						continue
					}
					_, supportOK := findSupporter(pi, placed, w)
					if pi.Z > 0 && !supportOK {
						continue
					}
					if overlapsAnyPlaced(pi, placed) {
						continue
					}
					stackingOK := true
					for _, p := range placed {
						if !footprintOverlap(pi, p) {
							continue
						}
						// Nothing above a fragile or later-picked item, whether
						// pi ends up on top of p or underneath it.
						if pi.Z >= p.Z+p.EffH && (p.IsFragile || pi.PickingOrder < p.PickingOrder) ||
							p.Z >= pi.Z+pi.EffH && (pi.IsFragile || p.PickingOrder < pi.PickingOrder) {
							stackingOK = false
							break
						}
					}
					if !stackingOK {
						continue
					}
					candidatePlaced := append(append([]PlacedItem{}, placed...), pi)
					obj := objective(candidatePlaced, w)
					if !found || obj > bestObj {
						found, best, bestObj = true, pi, obj
					}
				}
			}
		}
	}

	return best, found
}

// feasibleOrientations enumerates the orientations available to it given
// AllowTipping and the aspect-ratio limits in spec §4.4.2.
func feasibleOrientations(it Item, w Weights) []Orientation {
	if !it.AllowTipping {
		return []Orientation{OrientUpright}
	}

	limit := w.AspectLimit
	if limit <= 0 {
		limit = 3
	}

	var out []Orientation
	// Upright: vertical = H, base edges = (W, D).
	if float64(it.H) <= limit*float64(min(it.W, it.D)) {
		out = append(out, OrientUpright)
	}
	// OnSide: vertical = W, base edges = (D, H) (see orientedDims).
	if float64(it.W) <= limit*float64(min(it.D, it.H)) {
		out = append(out, OrientOnSide)
	}
	// OnFront: vertical = D, base edges = (W, H).
	if float64(it.D) <= limit*float64(min(it.W, it.H)) {
		out = append(out, OrientOnFront)
	}
	if len(out) == 0 {
		// Every orientation violates the aspect limit (can happen for
		// extreme needle-like items); allow upright rather than drop the
		// item outright — containment/support still gate placement.
		out = append(out, OrientUpright)
	}
	return out
}

// candidatePositions returns the finite set of (x, y) anchors worth trying
// for an item of footprint (w, d): the origin corner, plus the right edge
// and front edge of every already-placed item (the classic corner-point
// heuristic for rectangular packing).
func candidatePositions(placed []PlacedItem, pallet PalletSpec, w, d int) []point {
	pts := []point{{0, 0}}
	for _, p := range placed {
		pts = append(pts, point{p.X + p.EffW, p.Y})
		pts = append(pts, point{p.X, p.Y + p.EffD})
	}
	out := make([]point, 0, len(pts))
	seen := make(map[point]bool, len(pts))
	for _, pt := range pts {
		if seen[pt] {
			continue
		}
		seen[pt] = true
		if pt.x+w > pallet.W || pt.y+d > pallet.D {
			continue
		}
		out = append(out, pt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].y != out[j].y {
			return out[i].y < out[j].y
		}
		return out[i].x < out[j].x
	})
	return out
}

// candidateZLevels returns the z heights worth trying at a given (x, y)
// anchor: the floor, plus the top face of every placed item whose
// footprint could plausibly support something anchored there.
func candidateZLevels(placed []PlacedItem, at point, w, d int) []int {
	levels := map[int]bool{0: true}
	for _, p := range placed {
		top := p.Z + p.EffH
		// Only worth trying if this item's footprint is anywhere near the
		// candidate's footprint; cheap filter to keep the candidate set
		// small.
		if rangesOverlap(at.x, at.x+w, p.X, p.X+p.EffW) && rangesOverlap(at.y, at.y+d, p.Y, p.Y+p.EffD) {
			levels[top] = true
		}
	}
	out := make([]int, 0, len(levels))
	for z := range levels {
		out = append(out, z)
	}
	sort.Ints(out)
	return out
}

func fits(pi PlacedItem, pallet PalletSpec) bool {
	return pi.X >= 0 && pi.Y >= 0 && pi.Z >= 0 &&
		pi.X+pi.EffW <= pallet.W &&
		pi.Y+pi.EffD <= pallet.D &&
		pi.Z+pi.EffH <= pallet.H
}

func rangesOverlap(aMin, aMax, bMin, bMax int) bool {
	return aMin < bMax && bMin < aMax
}

func footprintOverlap(a PlacedItem, b PlacedItem) bool {
	return rangesOverlap(a.X, a.X+a.EffW, b.X, b.X+b.EffW) &&
		rangesOverlap(a.Y, a.Y+a.EffD, b.Y, b.Y+b.EffD)
}

func boxesOverlap3D(a, b PlacedItem) bool {
	return rangesOverlap(a.X, a.X+a.EffW, b.X, b.X+b.EffW) &&
		rangesOverlap(a.Y, a.Y+a.EffD, b.Y, b.Y+b.EffD) &&
		rangesOverlap(a.Z, a.Z+a.EffH, b.Z, b.Z+b.EffH)
}

func overlapsAnyPlaced(pi PlacedItem, placed []PlacedItem) bool {
	for _, p := range placed {
		if boxesOverlap3D(pi, p) {
			return true
		}
	}
	return false
}

// findSupporter searches placed for a single item that can serve as pi's
// supporter: its top face at pi's z, covering pi's footprint within the
// configured overhang tolerance on each axis, not fragile, and not of a
// strictly greater picking order than pi. For pi.Z == 0 it reports false,
// since no placed item has its top face at the floor; callers treat the
// floor as support themselves and only act on the result when pi.Z > 0.
func findSupporter(pi PlacedItem, placed []PlacedItem, w Weights) (*PlacedItem, bool) {
	tol := w.OverhangFraction
	if tol <= 0 {
		tol = 0.05
	}
	maxOverhangX := tol * float64(pi.EffW)
	maxOverhangY := tol * float64(pi.EffD)

	for i := range placed {
		p := &placed[i]
		if p.Z+p.EffH != pi.Z {
			continue
		}
		if !footprintOverlap(pi, *p) {
			continue
		}
		overhangX := horizontalOverhang(pi.X, pi.X+pi.EffW, p.X, p.X+p.EffW)
		overhangY := horizontalOverhang(pi.Y, pi.Y+pi.EffD, p.Y, p.Y+p.EffD)
		if float64(overhangX) > maxOverhangX || float64(overhangY) > maxOverhangY {
			continue
		}
		if p.IsFragile {
			continue
		}
		if pi.PickingOrder < p.PickingOrder {
			continue
		}
		return p, true
	}
	return nil, false
}

// horizontalOverhang returns how much of [aMin,aMax) falls outside
// [bMin,bMax), i.e. the part of the supported item's edge not covered by
// the supporter.
func horizontalOverhang(aMin, aMax, bMin, bMax int) int {
	overhang := 0
	if aMin < bMin {
		overhang += bMin - aMin
	}
	if aMax > bMax {
		overhang += aMax - bMax
	}
	return overhang
}
