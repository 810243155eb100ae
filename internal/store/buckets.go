package store

import (
	"sort"

	"github.com/AngelCh415/adspend/internal/models"
)

// BucketStore aggregates normalized rows of a single request by campaign
// and by ad set. It is not safe for concurrent use; each analysis owns one.
//
// Keys compare by exact string equality, so "Promo" and "promo" are two
// buckets.
type BucketStore struct {
	campaigns     map[string]*models.Bucket
	adSets        map[string]*models.Bucket
	campaignOrder []string
	adSetOrder    []string
	totals        models.Totals
	countries     map[string]struct{}
	firstDate     string
	lastDate      string
	rows          int
}

func NewBucketStore() *BucketStore {
	return &BucketStore{
		campaigns: make(map[string]*models.Bucket),
		adSets:    make(map[string]*models.Bucket),
		countries: make(map[string]struct{}),
	}
}

// Aggregate runs a single pass over rows.
func Aggregate(rows []models.NormalizedRow) *BucketStore {
	s := NewBucketStore()
	for _, r := range rows {
		s.Upsert(r)
	}
	return s
}

func (s *BucketStore) Upsert(r models.NormalizedRow) {
	s.rows++
	s.totals.Add(r)
	if s.upsert(s.campaigns, r.Campaign, r) {
		s.campaignOrder = append(s.campaignOrder, r.Campaign)
	}
	if s.upsert(s.adSets, r.AdSet, r) {
		s.adSetOrder = append(s.adSetOrder, r.AdSet)
	}
	if r.Country != nil && *r.Country != "" {
		s.countries[*r.Country] = struct{}{}
	}
	if r.Date != nil && *r.Date != "" {
		if s.firstDate == "" || *r.Date < s.firstDate {
			s.firstDate = *r.Date
		}
		if *r.Date > s.lastDate {
			s.lastDate = *r.Date
		}
	}
}

// upsert seeds the bucket for key or adds r into it. It reports whether the
// bucket was created.
func (s *BucketStore) upsert(m map[string]*models.Bucket, key string, r models.NormalizedRow) bool {
	b, ok := m[key]
	if !ok {
		b = &models.Bucket{Key: key, Campaign: r.Campaign, AdSet: r.AdSet}
		m[key] = b
	}
	b.Totals.Add(r)
	b.Rows++
	return !ok
}

// Campaigns returns the campaign buckets in first-seen order.
func (s *BucketStore) Campaigns() []*models.Bucket { return ordered(s.campaigns, s.campaignOrder) }

// AdSets returns the ad-set buckets in first-seen order.
func (s *BucketStore) AdSets() []*models.Bucket { return ordered(s.adSets, s.adSetOrder) }

func (s *BucketStore) Totals() models.Totals { return s.totals }
func (s *BucketStore) Rows() int             { return s.rows }

// Countries returns the distinct non-empty countries, sorted.
func (s *BucketStore) Countries() []string {
	out := make([]string, 0, len(s.countries))
	for c := range s.countries {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// DateRange returns the lexical min and max of the dates seen, or nil.
func (s *BucketStore) DateRange() *models.DateRange {
	if s.firstDate == "" {
		return nil
	}
	return &models.DateRange{From: s.firstDate, To: s.lastDate}
}

func ordered(m map[string]*models.Bucket, keys []string) []*models.Bucket {
	out := make([]*models.Bucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
