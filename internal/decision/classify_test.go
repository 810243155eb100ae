package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AngelCh415/adspend/internal/models"
)

func TestClassify(t *testing.T) {
	const breakEven = 4000.0
	tests := []struct {
		name string
		roas float64
		cpa  float64
		want models.Decision
	}{
		{"scale", 3.5, 0.5 * breakEven, models.DecisionScale},
		{"scale at bounds", 3, 0.8 * breakEven, models.DecisionScale},
		{"high roas but cpa too close", 3.5, 0.9 * breakEven, models.DecisionOptimise},
		{"optimise", 1.5, 0.9 * breakEven, models.DecisionOptimise},
		{"optimise at bounds", 1.2, breakEven, models.DecisionOptimise},
		{"cpa above break-even", 1.5, 1.1 * breakEven, models.DecisionStop},
		{"stop", 0.5, 0.1 * breakEven, models.DecisionStop},
		{"no conversions still scale on roas", 4, 0, models.DecisionScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.roas, tt.cpa, breakEven))
		})
	}
}

func TestClassifyBuckets(t *testing.T) {
	buckets := []*models.Bucket{
		{Key: "A", ROAS: 20, CPA: 200},
		{Key: "B", ROAS: 0.2, CPA: 9000},
	}
	ClassifyBuckets(buckets, 4000)
	assert.Equal(t, models.DecisionScale, buckets[0].Decision)
	assert.Equal(t, models.DecisionStop, buckets[1].Decision)
}

func TestVerdictOf(t *testing.T) {
	tests := []struct {
		name   string
		profit float64
		roas   float64
		want   models.Verdict
	}{
		{"loss", -100, 0.9, models.VerdictDeficit},
		{"break-even profit", 0, 1, models.VerdictDeficit},
		{"positive profit but roas under one", 10, 0.99, models.VerdictDeficit},
		{"thin", 500, 1.5, models.VerdictFragile},
		{"profitable at two", 1000, 2, models.VerdictProfitable},
		{"very profitable", 19000, 20, models.VerdictProfitable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerdictOf(tt.profit, tt.roas))
		})
	}
}
