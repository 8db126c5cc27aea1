package dashboard

import (
	"fmt"
	"time"

	"donormatch/internal/donor/models"
)

// maxBuckets bounds a single trend query.
const maxBuckets = 5000

// Granularity is the width of a trend bucket.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// IsValid checks if the granularity is one of the supported enum values.
func (g Granularity) IsValid() bool {
	return g == GranularityDay || g == GranularityWeek || g == GranularityMonth
}

// Sample is one historical observation supplied by the caller.
type Sample struct {
	At    time.Time
	Count int
}

// TrendBucket covers [Start, End).
type TrendBucket struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Count int       `json:"count"`
}

// BucketTrends sums samples into consecutive buckets covering from..to
// (inclusive of the bucket containing to). Empty buckets are present with a
// zero count. Weeks start on Monday. All bucket edges are UTC midnights.
func BucketTrends(samples []Sample, g Granularity, from, to time.Time) ([]TrendBucket, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("unknown trend granularity %q", g)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("trend range ends (%s) before it starts (%s)", to.Format(time.DateOnly), from.Format(time.DateOnly))
	}

	start := floor(from, g)
	last := floor(to, g)
	buckets := make([]TrendBucket, 0)
	for s := start; !s.After(last); s = next(s, g) {
		if len(buckets) == maxBuckets {
			return nil, fmt.Errorf("trend range needs more than %d %s buckets", maxBuckets, g)
		}
		buckets = append(buckets, TrendBucket{Start: s, End: next(s, g)})
	}

	for _, sm := range samples {
		b := floor(sm.At, g)
		if b.Before(start) || b.After(last) {
			continue
		}
		buckets[bucketIndex(start, b, g)].Count += sm.Count
	}
	return buckets, nil
}

// TrendStart returns the start of the bucket n-1 buckets before the one
// containing to, so BucketTrends(samples, g, TrendStart(to, g, n), to) yields
// exactly n buckets. Month arithmetic runs from the first of the month, so a
// month-end to never skips a bucket.
func TrendStart(to time.Time, g Granularity, n int) time.Time {
	first := floor(to, g)
	if n <= 1 {
		return first
	}
	switch g {
	case GranularityWeek:
		return first.AddDate(0, 0, -7*(n-1))
	case GranularityMonth:
		return first.AddDate(0, -(n - 1), 0)
	default:
		return first.AddDate(0, 0, -(n - 1))
	}
}

func floor(t time.Time, g Granularity) time.Time {
	t = t.UTC()
	y, m, d := t.Date()
	switch g {
	case GranularityWeek:
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case GranularityMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
}

func next(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityWeek:
		return t.AddDate(0, 0, 7)
	case GranularityMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

func bucketIndex(start, b time.Time, g Granularity) int {
	switch g {
	case GranularityWeek:
		return int(b.Sub(start).Hours()/24) / 7
	case GranularityMonth:
		return (b.Year()-start.Year())*12 + int(b.Month()-start.Month())
	default:
		return int(b.Sub(start).Hours() / 24)
	}
}

// CompletionSamples turns completed requests into one sample per donation at
// its completion time.
func CompletionSamples(requests []models.DonationRequest) []Sample {
	out := make([]Sample, 0)
	for _, r := range requests {
		if r.Status == models.RequestCompleted && r.CompletedAt != nil {
			out = append(out, Sample{At: *r.CompletedAt, Count: 1})
		}
	}
	return out
}

// RequestSamples turns requests into one sample per request at creation time.
func RequestSamples(requests []models.DonationRequest) []Sample {
	out := make([]Sample, 0, len(requests))
	for _, r := range requests {
		out = append(out, Sample{At: r.CreatedAt, Count: 1})
	}
	return out
}
