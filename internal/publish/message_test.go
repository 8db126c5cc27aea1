package publish

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donormatch/internal/donor/models"
	"donormatch/internal/engine"
	"donormatch/internal/geo"
	"donormatch/internal/shortage"
)

func flag(division, district string, g models.BloodGroup) shortage.Flag {
	u := geo.Unit{Level: geo.LevelDivision, Division: division}
	if district != "" {
		u = geo.Unit{Level: geo.LevelDistrict, Division: division, District: district}
	}
	return shortage.Flag{Unit: u, BloodGroup: g, Count: 1, Threshold: 5}
}

func TestMessages(t *testing.T) {
	asOf := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	report := &engine.Report{
		AsOf:       asOf,
		Thresholds: shortage.Uniform(5),
		Shortages: []shortage.Flag{
			flag("Dhaka", "", models.GroupONeg),
			flag("Dhaka", "Gazipur", models.GroupABNeg),
			flag(geo.Unmapped, "", models.GroupBNeg),
		},
	}

	msgs := Messages(report, []string{"Dhaka", "Khulna"})
	require.Len(t, msgs, 3)
	assert.Equal(t, []string{"Dhaka", "Khulna", geo.Unmapped}, divisionsOf(msgs))

	assert.Equal(t, "Dhaka", msgs[0].Division)
	assert.Len(t, msgs[0].Flags, 2)
	assert.Equal(t, asOf, msgs[0].AsOf)
	assert.Equal(t, 5, msgs[0].Thresholds.Default)

	assert.Equal(t, "Khulna", msgs[1].Division)
	assert.NotNil(t, msgs[1].Flags, "clear divisions carry an empty list")
	assert.Empty(t, msgs[1].Flags)

	assert.Equal(t, geo.Unmapped, msgs[2].Division)
	assert.Len(t, msgs[2].Flags, 1)
}

func TestMessagesClearUnmappedAlerts(t *testing.T) {
	divisions := []string{"Dhaka", "Khulna"}
	first := &engine.Report{
		AsOf:      time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Shortages: []shortage.Flag{flag(geo.Unmapped, "", models.GroupBNeg)},
	}
	second := &engine.Report{AsOf: first.AsOf.Add(5 * time.Minute)}

	latest := make(map[string]Message)
	for _, r := range []*engine.Report{first, second} {
		for _, m := range Messages(r, divisions) {
			latest[m.Division] = m
		}
	}

	require.Contains(t, latest, geo.Unmapped)
	assert.Empty(t, latest[geo.Unmapped].Flags, "a cleared Unmapped alert is overwritten")
	assert.Equal(t, second.AsOf, latest[geo.Unmapped].AsOf)
}

func TestMessagesAppendUnlistedDivisions(t *testing.T) {
	report := &engine.Report{Shortages: []shortage.Flag{flag("Atlantis", "", models.GroupONeg)}}

	msgs := Messages(report, []string{"Dhaka"})
	assert.Equal(t, []string{"Dhaka", geo.Unmapped, "Atlantis"}, divisionsOf(msgs))
	assert.Len(t, msgs[2].Flags, 1)
}

func divisionsOf(msgs []Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Division
	}
	return out
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(slog.New(slog.NewTextHandler(&buf, nil)))

	err := p.Publish(context.Background(), &engine.Report{
		Shortages: []shortage.Flag{flag("Dhaka", "", models.GroupONeg)},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "shortage_count=1")
}
