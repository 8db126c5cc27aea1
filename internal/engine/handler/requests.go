package handler

import (
	"net/http"
	"slices"
	"time"

	"donormatch/internal/dashboard"
	"donormatch/internal/geo"
	"donormatch/internal/shortage"
	dErrors "donormatch/pkg/domain-errors"
)

const (
	seriesCompletions = "completions"
	seriesRequests    = "requests"

	dateLayout = "2006-01-02"
)

func parseLevel(r *http.Request, fallback geo.Level) (geo.Level, error) {
	raw := r.URL.Query().Get("level")
	if raw == "" {
		return fallback, nil
	}
	level, err := geo.ParseLevel(raw)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeBadRequest, "level must be division, district or upazila")
	}
	return level, nil
}

func filterFlags(flags []shortage.Flag, level geo.Level) []shortage.Flag {
	out := make([]shortage.Flag, 0, len(flags))
	for _, f := range flags {
		if f.Unit.Level == level {
			out = append(out, f)
		}
	}
	return out
}

type trendQuery struct {
	Series      string
	Granularity dashboard.Granularity
	From        time.Time
	To          time.Time
}

func parseTrendQuery(r *http.Request) (trendQuery, error) {
	v := r.URL.Query()
	q := trendQuery{
		Series:      v.Get("series"),
		Granularity: dashboard.Granularity(v.Get("granularity")),
	}
	if q.Series == "" {
		q.Series = seriesCompletions
	}
	if !slices.Contains([]string{seriesCompletions, seriesRequests}, q.Series) {
		return q, dErrors.New(dErrors.CodeBadRequest, "series must be completions or requests")
	}
	if q.Granularity == "" {
		q.Granularity = dashboard.GranularityMonth
	}
	if !q.Granularity.IsValid() {
		return q, dErrors.New(dErrors.CodeBadRequest, "granularity must be day, week or month")
	}

	var err error
	if q.From, err = parseDate(v.Get("from")); err != nil {
		return q, dErrors.Wrap(err, dErrors.CodeBadRequest, "from must be YYYY-MM-DD")
	}
	if q.To, err = parseDate(v.Get("to")); err != nil {
		return q, dErrors.Wrap(err, dErrors.CodeBadRequest, "to must be YYYY-MM-DD")
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return q, dErrors.New(dErrors.CodeBadRequest, "from must not be after to")
	}
	return q, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

// defaultTrendBuckets is how many buckets a trend query without from covers.
const defaultTrendBuckets = 12

// defaults fills a missing range: up to the report instant, reaching back
// twelve buckets.
func (q *trendQuery) defaults(asOf time.Time) {
	if q.To.IsZero() {
		q.To = asOf
	}
	if q.From.IsZero() {
		q.From = dashboard.TrendStart(q.To, q.Granularity, defaultTrendBuckets)
	}
}
