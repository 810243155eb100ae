package analysis

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"

	"github.com/AngelCh415/adspend/internal/models"
)

// Request is one analysis job: the export rows and the advertiser's
// declared figures.
type Request struct {
	Rows    []models.RawRow
	Context models.BusinessContext
}

// DecodeRequest parses an analysis body. Rows keep their column order.
func DecodeRequest(body []byte) (Request, error) {
	var req Request
	if !gjson.ValidBytes(body) {
		return req, ErrInvalidBody
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return req, ErrInvalidBody
	}

	data := doc.Get("rawData")
	if !data.IsArray() {
		return req, ErrNoData
	}
	data.ForEach(func(_, v gjson.Result) bool {
		req.Rows = append(req.Rows, models.RawRowOf(v))
		return true
	})
	if len(req.Rows) == 0 {
		return req, ErrNoData
	}

	bc := doc.Get("businessContext")
	var err error
	fields := []struct {
		name string
		dst  *float64
	}{
		{"revenueTotal", &req.Context.RevenueTotal},
		{"campaignDays", &req.Context.CampaignDays},
		{"dailyBudget", &req.Context.DailyBudget},
		{"productPrice", &req.Context.ProductPrice},
	}
	for _, f := range fields {
		if *f.dst, err = contextNumber(bc.Get(f.name), f.name); err != nil {
			return req, err
		}
	}
	return req, nil
}

// contextNumber accepts a JSON number or a string holding exactly one
// number. Unlike export cells, context values are never cleaned.
func contextNumber(r gjson.Result, name string) (float64, error) {
	var v float64
	switch r.Type {
	case gjson.Number:
		v = r.Num
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil {
			return 0, eris.Wrapf(ErrIncompleteContext, "businessContext.%s is not numeric", name)
		}
		v = f
	case gjson.Null:
		return 0, eris.Wrapf(ErrIncompleteContext, "businessContext.%s is missing", name)
	default:
		return 0, eris.Wrapf(ErrIncompleteContext, "businessContext.%s is not numeric", name)
	}
	if !(v > 0) || math.IsInf(v, 0) {
		return 0, eris.Wrapf(ErrIncompleteContext, "businessContext.%s must be greater than zero", name)
	}
	return v, nil
}

// ValidateContext checks a context built outside DecodeRequest.
func ValidateContext(bc models.BusinessContext) error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"revenueTotal", bc.RevenueTotal},
		{"campaignDays", bc.CampaignDays},
		{"dailyBudget", bc.DailyBudget},
		{"productPrice", bc.ProductPrice},
	} {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return eris.Wrapf(ErrIncompleteContext, "businessContext.%s must be greater than zero", f.name)
		}
	}
	return nil
}
