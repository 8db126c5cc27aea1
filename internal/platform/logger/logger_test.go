package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donormatch/internal/platform/config"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("json at info drops debug", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(&buf, config.Log{Level: "info", Format: "json"})
		log.Debug("hidden")
		log.Info("report built", "donor_count", 3)

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "report built", line["msg"])
		assert.Equal(t, float64(3), line["donor_count"])
	})

	t.Run("text at debug", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(&buf, config.Log{Level: "debug", Format: "text"})
		log.Debug("visible")
		assert.Contains(t, buf.String(), "msg=visible")
	})
}
