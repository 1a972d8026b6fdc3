// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestAppendCtx(t *testing.T) {
	attr := slog.String("key1", "value1")
	ctx := AppendCtx(context.TODO(), attr)

	if ctx == nil {
		t.Fatal("expected non-nil context")
	}

	attrs, ok := ctx.Value(slogFields).([]slog.Attr)
	if !ok {
		t.Fatal("expected slog attributes in context")
	}
	if len(attrs) != 1 {
		t.Fatalf("expected 1 attribute, got %d", len(attrs))
	}
	if attrs[0].Key != "key1" || attrs[0].Value.String() != "value1" {
		t.Errorf("unexpected attribute %s=%s", attrs[0].Key, attrs[0].Value.String())
	}
}

func TestAppendCtx_WithParent(t *testing.T) {
	ctx := AppendCtx(context.Background(), slog.String("parent_key", "parent_value"))
	ctx = AppendCtx(ctx, slog.String("child_key", "child_value"))

	attrs, ok := ctx.Value(slogFields).([]slog.Attr)
	if !ok {
		t.Fatal("expected slog attributes in context")
	}
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "parent_key" {
		t.Errorf("expected first key 'parent_key', got %q", attrs[0].Key)
	}
	if attrs[1].Key != "child_key" {
		t.Errorf("expected second key 'child_key', got %q", attrs[1].Key)
	}
}

func TestContextHandler_IncludesContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := contextHandler{slog.NewJSONHandler(&buf, nil)}
	logger := slog.New(handler)

	ctx := AppendCtx(context.Background(), slog.String("meeting_uuid", "abc-123"))
	logger.InfoContext(ctx, "hello")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if record["meeting_uuid"] != "abc-123" {
		t.Errorf("expected meeting_uuid attribute in record, got %v", record)
	}
}

func TestErrKeyConstant(t *testing.T) {
	if ErrKey != "error" {
		t.Errorf("expected ErrKey to be 'error', got %q", ErrKey)
	}
}
