package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObservationListSortedKeepsPairsAligned(t *testing.T) {
	obs := NewObservationList([]float64{3, 1, 2}, []bool{true, false, true})
	sorted := obs.Sorted()

	assert.Equal(t, []float64{1, 2, 3}, sorted.Values())
	assert.False(t, sorted[0].Censored)
	assert.True(t, sorted[1].Censored)
	assert.True(t, sorted[2].Censored)

	// receiver untouched
	assert.Equal(t, []float64{3, 1, 2}, obs.Values())
}

func TestObservationListCensoredCount(t *testing.T) {
	obs := NewObservationList([]float64{1, 2, 3, 4}, []bool{false, true, false, true})
	assert.Equal(t, 2, obs.CensoredCount())

	uncensored := NewObservationList([]float64{1, 2}, nil)
	assert.Equal(t, 0, uncensored.CensoredCount())
}

func TestQuantileAnchorValid(t *testing.T) {
	assert.True(t, QuantileAnchor{Value: 0.3, Level: 0.5}.Valid())
	assert.False(t, QuantileAnchor{Value: 0.3, Level: 0}.Valid())
	assert.False(t, QuantileAnchor{Value: 0.3, Level: 1}.Valid())
}
