package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

type failingHandler struct{}

func (failingHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }
func (f failingHandler) WithAttrs([]slog.Attr) slog.Handler      { return f }
func (f failingHandler) WithGroup(string) slog.Handler           { return f }

func TestMultiHandlerDeliversPastFailingSink(t *testing.T) {
	var buf bytes.Buffer
	multi := NewMultiHandler(
		failingHandler{},
		slog.NewJSONHandler(&buf, nil),
	)

	logger := slog.New(multi)
	logger.Error("image ingestion failed", "product_id", 7)

	if !strings.Contains(buf.String(), "product_id") {
		t.Fatalf("record not delivered to second sink: %q", buf.String())
	}
}

func TestOptionsLevelPerEnvironment(t *testing.T) {
	if Options("production").Level != slog.LevelInfo {
		t.Fatal("production should log at info")
	}
	if Options("local").Level != slog.LevelDebug {
		t.Fatal("local should log at debug")
	}
}
