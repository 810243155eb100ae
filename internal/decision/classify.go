package decision

import (
	"math"

	"github.com/AngelCh415/adspend/internal/models"
)

const (
	ScaleROAS          = 3.0
	ScaleCPAShare      = 0.8
	OptimiseROAS       = 1.2
	FragileROAS        = 2.0
	FragileProfitShare = 0.2
)

// Classify applies the bucket rule table top-down; the first rule that
// holds wins.
func Classify(roas, cpa, breakEvenCPA float64) models.Decision {
	switch {
	case roas >= ScaleROAS && cpa <= breakEvenCPA*ScaleCPAShare:
		return models.DecisionScale
	case roas >= OptimiseROAS && cpa <= breakEvenCPA:
		return models.DecisionOptimise
	default:
		return models.DecisionStop
	}
}

// ClassifyBuckets labels every bucket against the dataset break-even CPA.
func ClassifyBuckets(buckets []*models.Bucket, breakEvenCPA float64) {
	for _, b := range buckets {
		b.Decision = Classify(b.ROAS, b.CPA, breakEvenCPA)
	}
}

// VerdictOf grades the dataset as a whole.
func VerdictOf(profit, roas float64) models.Verdict {
	switch {
	case profit <= 0 || roas < 1:
		return models.VerdictDeficit
	// TODO(product): the profit term is true for any positive profit, so
	// this band is decided by ROAS alone. Confirm the intended margin.
	case roas < FragileROAS && profit >= FragileProfitShare*math.Abs(profit):
		return models.VerdictFragile
	default:
		return models.VerdictProfitable
	}
}
