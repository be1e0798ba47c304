package ctxlog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("stored logger", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		ctx := WithLogger(context.Background(), logger)
		require.Same(t, logger, FromContext(ctx))
	})

	t.Run("falls back to default", func(t *testing.T) {
		require.Same(t, slog.Default(), FromContext(context.Background()))
	})
}

func TestNew(t *testing.T) {
	t.Run("json handler honours level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("warn", "json", &buf)
		require.NoError(t, err)

		logger.Info("hidden")
		require.Zero(t, buf.Len())

		logger.Warn("shown", "key", "value")
		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		require.Equal(t, "shown", rec["msg"])
		require.Equal(t, "value", rec["key"])
	})

	t.Run("text is the default format", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("", "", &buf)
		require.NoError(t, err)
		logger.Info("hello")
		require.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("errors", func(t *testing.T) {
		_, err := New("verbose", "text", &bytes.Buffer{})
		require.ErrorContains(t, err, `unknown log level "verbose"`)

		_, err = New("info", "xml", &bytes.Buffer{})
		require.ErrorContains(t, err, `unknown log format "xml"`)
	})
}
