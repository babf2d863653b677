package packing

import "time"

// Weights holds the tunable objective coefficients and solver limits for a
// single-pallet solve. All units and defaults are documented per field so a
// caller retuning the engine never has to read the solver internals.
type Weights struct {
	// VolumeReward is the per-cubic-centimeter reward for placing a unit of
	// volume. Dominates the objective; every other term is a penalty
	// subtracted from it.
	VolumeReward float64

	// MaxZPenalty is subtracted once per unit of the tallest occupied
	// z-extent (max_z), favoring flatter stacks.
	MaxZPenalty float64

	// GravityWeight is subtracted per centimeter of each item's z origin,
	// favoring items placed low.
	GravityWeight float64

	// CornerWeight is subtracted per centimeter of (x+y), favoring items
	// hugging the pallet's origin corner.
	CornerWeight float64

	// GapFillPenalty is subtracted once per tipped item. Tipping is
	// expensive; the solver only tips to fill space it couldn't otherwise
	// use.
	GapFillPenalty float64

	// ClusteringWeight is subtracted per unit of horizontal Manhattan
	// distance (|dx|+|dy|) between consecutive same-name items, with
	// vertical separation weighted 4x (the clustering term in objective).
	ClusteringWeight float64

	// SameTypeStackingPenalty is subtracted once per pair of same-type
	// items where one sits directly above the other, discouraging
	// single-SKU towers.
	SameTypeStackingPenalty float64

	// LocationWeight is subtracted per centimeter of z, scaled by how
	// early an item is picked (max_picking_order - picking_order + 1),
	// pressing first-picked items toward the floor beyond what the hard
	// ordering constraint alone requires.
	LocationWeight float64

	// OverhangFraction bounds how much of a supported item's base edge may
	// overhang its supporter's top face, on each axis, expressed as a
	// fraction of the supported item's effective edge length.
	OverhangFraction float64

	// AspectLimit bounds how many times an item's height may exceed the
	// shorter of its two base edges before it is forced to tip (and,
	// symmetrically, how tall a tipped orientation's new vertical edge may
	// be relative to its new shorter base edge).
	AspectLimit float64

	// TimeLimit bounds the wall-clock time a single solve call may spend
	// searching before returning the best feasible solution found so far.
	TimeLimit time.Duration

	// Workers bounds how many goroutines the solver fans its branch
	// search out across. Zero means "pick a sane default."
	Workers int
}

// DefaultWeights returns the coefficients specified for the engine, as a
// starting point for tuning.
func DefaultWeights() Weights {
	return Weights{
		VolumeReward:            1000,
		MaxZPenalty:             4580,
		GravityWeight:           150,
		CornerWeight:            2,
		GapFillPenalty:          10000,
		ClusteringWeight:        1,
		SameTypeStackingPenalty: 1000,
		LocationWeight:          200,
		OverhangFraction:        0.05,
		AspectLimit:             3,
		TimeLimit:               20 * time.Second,
		Workers:                 4,
	}
}
