package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalsAdd(t *testing.T) {
	var tot Totals
	tot.Add(NormalizedRow{Spend: 10, Clicks: 2, Results: 1, Impressions: 100})
	tot.Add(NormalizedRow{Spend: 5, Impressions: 50})
	assert.Equal(t, Totals{Spend: 15, Clicks: 2, Results: 1, Impressions: 150}, tot)
}

func TestTotalsAddSaturates(t *testing.T) {
	var tot Totals
	for i := 0; i < 3; i++ {
		tot.Add(NormalizedRow{Spend: 1e308, Clicks: 1e308, Results: 1, Impressions: 1e308})
	}
	assert.Equal(t, math.MaxFloat64, tot.Spend)
	assert.Equal(t, math.MaxFloat64, tot.Clicks)
	assert.Equal(t, math.MaxFloat64, tot.Impressions)
	assert.Equal(t, 3.0, tot.Results)
}
