package seqlog

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewZeroLogger_JSONWhenNotPretty(t *testing.T) {
	var buf bytes.Buffer

	logger := newZeroLogger(&buf, "info", false)
	logger.Info().Str("table", "t1~1").Msg("test message")

	out := buf.String()

	if !strings.Contains(out, `"level":"info"`) {
		t.Fatalf("expected JSON output with level field, got: %s", out)
	}
	if !strings.Contains(out, `"message":"test message"`) {
		t.Fatalf("expected JSON output with message field, got: %s", out)
	}
	if !strings.Contains(out, `"table":"t1~1"`) {
		t.Fatalf("expected JSON output with table field, got: %s", out)
	}
}

func TestNewZeroLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer

	logger := newZeroLogger(&buf, "error", false)
	logger.Info().Msg("dropped")
	logger.Error().Msg("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(zerolog.WarnLevel, parseLevel("warning"))
	assert.Equal(zerolog.Disabled, parseLevel("disabled"))
	assert.Equal(zerolog.InfoLevel, parseLevel("nonsense"))
}

func TestReloadLogger_File(t *testing.T) {
	old := Zero
	t.Cleanup(func() {
		ReloadLogger("", "info", true)
		Zero = old
	})

	path := filepath.Join(t.TempDir(), "walseq.log")
	ReloadLogger(path, "debug", false)

	assert.NotNil(t, logFile)
	assert.Equal(t, zerolog.DebugLevel, Zero.GetLevel())
}
