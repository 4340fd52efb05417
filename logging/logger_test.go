package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paperwasp/hybridbfs/logging"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewWithWriter(&buf, logging.LevelWarn)

	l.Info("should not appear")
	l.Warn("should appear")

	out := buf.String()
	require.NotContains(t, out, "should not appear")
	require.Contains(t, out, "should appear")
}

func TestWithFieldsAppendsKV(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewWithWriter(&buf, logging.LevelDebug)
	l.WithField("vertex", 5).Info("visited")

	require.Contains(t, buf.String(), "vertex=5")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, logging.LevelDebug, logging.ParseLevel("debug"))
	require.Equal(t, logging.LevelWarn, logging.ParseLevel("WARN"))
	require.Equal(t, logging.LevelInfo, logging.ParseLevel("bogus"))
}

func TestFormattingArgs(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewWithWriter(&buf, logging.LevelInfo)
	l.Info("loaded %d edges", 42)
	require.True(t, strings.Contains(buf.String(), "loaded 42 edges"))
}
