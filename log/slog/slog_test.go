package slog

import (
	"bytes"
	"encoding/json"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/bitwire"
)

func TestLevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(stdslog.New(stdslog.NewJSONHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelInfo})))

	l.Debug("hidden", nil)
	l.Warn("frame rejected", bitwire.Fields{"reason": "corrupt", "size": 3})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "frame rejected", rec["msg"])
	assert.Equal(t, "corrupt", rec["reason"])
	assert.Equal(t, float64(3), rec["size"])
	// keys are emitted in sorted order
	assert.Less(t, strings.Index(lines[0], `"reason"`), strings.Index(lines[0], `"size"`))
}
