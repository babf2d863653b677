package packing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjective_EmptyIsZero(t *testing.T) {
	require.Equal(t, 0.0, objective(nil, DefaultWeights()))
}

func TestObjective_RewardsVolumeOverPenalties(t *testing.T) {
	w := DefaultWeights()
	low := []PlacedItem{{
		Item: mkItem("a", "A", "a", 10, 10, 10, 1, false, false, 1),
		X: 0, Y: 0, Z: 0, EffW: 10, EffD: 10, EffH: 10,
	}}
	high := []PlacedItem{{
		Item: mkItem("a", "A", "a", 10, 10, 10, 1, false, false, 1),
		X: 0, Y: 0, Z: 50, EffW: 10, EffD: 10, EffH: 10,
	}}
	require.Greater(t, objective(low, w), objective(high, w),
		"an item sitting lower must score higher, all else equal")
}

func TestObjective_PenalizesTipping(t *testing.T) {
	w := DefaultWeights()
	upright := []PlacedItem{{
		Item: mkItem("a", "A", "a", 10, 10, 10, 1, false, true, 1),
		EffW: 10, EffD: 10, EffH: 10, Tipped: false,
	}}
	tipped := []PlacedItem{{
		Item: mkItem("a", "A", "a", 10, 10, 10, 1, false, true, 1),
		EffW: 10, EffD: 10, EffH: 10, Tipped: true,
	}}
	require.Greater(t, objective(upright, w), objective(tipped, w))
}

func TestObjective_PenalizesCornerDistance(t *testing.T) {
	w := DefaultWeights()
	nearOrigin := []PlacedItem{{
		Item: mkItem("a", "A", "a", 10, 10, 10, 1, false, false, 1),
		X: 0, Y: 0, EffW: 10, EffD: 10, EffH: 10,
	}}
	farFromOrigin := []PlacedItem{{
		Item: mkItem("a", "A", "a", 10, 10, 10, 1, false, false, 1),
		X: 50, Y: 50, EffW: 10, EffD: 10, EffH: 10,
	}}
	require.Greater(t, objective(nearOrigin, w), objective(farFromOrigin, w))
}

func TestAbs(t *testing.T) {
	require.Equal(t, 5, abs(5))
	require.Equal(t, 5, abs(-5))
	require.Equal(t, 0, abs(0))
}
