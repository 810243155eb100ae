// Package narrative turns a finished analysis into a short prose commentary.
// Narration is best-effort: callers treat any error as "no narrative".
package narrative

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/AngelCh415/adspend/internal/models"
)

var (
	ErrEmpty       = eris.New("narrator returned no text")
	ErrRateLimited = eris.New("narrator call budget exhausted")
)

// maxCampaigns bounds the campaign list sent to the narrator.
const maxCampaigns = 10

// Narrator produces a commentary for a computed summary.
type Narrator interface {
	Generate(ctx context.Context, s Summary) (string, error)
}

// Summary is the structured context handed to a narrator. It holds the
// computed payload only, never the raw export rows.
type Summary struct {
	BaseCurrency string              `json:"baseCurrency"`
	Summary      models.Summary      `json:"summary"`
	Stats        models.Stats        `json:"stats"`
	Indicators   []models.Indicator  `json:"indicators"`
	Campaigns    []models.BucketView `json:"campaigns"`
	Conclusions  models.Conclusions  `json:"conclusions"`
	ActionPlan   []models.Action     `json:"actionPlan"`
}

func FromReport(r *models.Report) Summary {
	campaigns := r.Campaigns
	if len(campaigns) > maxCampaigns {
		campaigns = campaigns[:maxCampaigns]
	}
	return Summary{
		BaseCurrency: r.Metadata.BaseCurrency,
		Summary:      r.Summary,
		Stats:        r.Stats,
		Indicators:   r.Indicators,
		Campaigns:    campaigns,
		Conclusions:  r.Conclusions,
		ActionPlan:   r.ActionPlan,
	}
}

// Func adapts a plain function to the Narrator interface.
type Func func(ctx context.Context, s Summary) (string, error)

func (f Func) Generate(ctx context.Context, s Summary) (string, error) { return f(ctx, s) }
