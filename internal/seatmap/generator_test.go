package seatmap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateShape(t *testing.T) {
	seats := Generate(rand.New(rand.NewSource(1)))

	perRow := map[string]int{}
	ids := map[string]bool{}
	for _, s := range seats {
		perRow[s.Row]++
		assert.False(t, ids[s.ID], "duplicate seat id %s", s.ID)
		ids[s.ID] = true
		assert.False(t, s.IsSelected, "seats must start unselected")
	}

	require.Len(t, perRow, 12)
	for _, row := range []string{"A", "B", "C"} {
		assert.Equal(t, 8, perRow[row], "row %s", row)
	}
	for _, row := range []string{"D", "E", "F"} {
		assert.Equal(t, 10, perRow[row], "row %s", row)
	}
	for _, row := range []string{"G", "H", "I"} {
		assert.Equal(t, 12, perRow[row], "row %s", row)
	}
	for _, row := range []string{"J", "K", "L"} {
		assert.Equal(t, 10, perRow[row], "row %s", row)
	}
}

func TestGenerateTypePriceByRow(t *testing.T) {
	seats := Generate(rand.New(rand.NewSource(2)))
	for _, s := range seats {
		switch s.Row {
		case "A", "B":
			assert.Equal(t, TypeVIP, s.Type, "seat %s", s.ID)
			assert.Equal(t, uint32(PriceVIP), s.Price, "seat %s", s.ID)
		case "C", "D", "E":
			assert.Equal(t, TypePremium, s.Type, "seat %s", s.ID)
			assert.Equal(t, uint32(PricePremium), s.Price, "seat %s", s.ID)
		default:
			assert.Equal(t, TypeStandard, s.Type, "seat %s", s.ID)
			assert.Equal(t, uint32(PriceStandard), s.Price, "seat %s", s.ID)
		}
	}
}

func TestGenerateSeatNumbersContiguous(t *testing.T) {
	seats := Generate(rand.New(rand.NewSource(3)))
	next := map[string]int{}
	for _, s := range seats {
		next[s.Row]++
		assert.Equal(t, next[s.Row], s.Number, "seat numbers must be 1-based and contiguous within a row")
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	a := Generate(rand.New(rand.NewSource(42)))
	b := Generate(rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b, "same seed must reproduce the same layout")

	c := ForShowtime(7)
	d := ForShowtime(7)
	assert.Equal(t, c, d, "a showtime's layout must be stable across requests")
}

func TestGenerateAvailabilityRatio(t *testing.T) {
	// 120 seats at p=0.85; accept a generous band around the mean so
	// the assertion holds for any seed.
	seats := Generate(rand.New(rand.NewSource(9)))
	require.Len(t, seats, 120)
	available := 0
	for _, s := range seats {
		if s.IsAvailable {
			available++
		}
	}
	assert.Greater(t, available, 80)
	assert.Less(t, available, 121)
}
