package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize_ValidLevels(t *testing.T) {
	// Save original Log and restore after test
	originalLog := Log
	defer func() { Log = originalLog }()

	levels := []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal"}

	for _, lvl := range levels {
		t.Run(lvl, func(t *testing.T) {
			err := Initialize(lvl)
			assert.NoError(t, err, "expected no error for level %s", lvl)
			assert.NotNil(t, Log, "Log should be initialized")
			assert.IsType(t, &zap.SugaredLogger{}, Log, "Log should be a SugaredLogger")

			assert.NotPanics(t, func() {
				Log.Infow("test log", "level", lvl)
			})
		})
	}
}

func TestInitialize_InvalidLevel(t *testing.T) {
	originalLog := Log
	defer func() { Log = originalLog }()

	err := Initialize("not-a-level")
	assert.Error(t, err, "expected error for invalid log level")
}

func TestLog_NopBeforeInitialize(t *testing.T) {
	assert.NotNil(t, Log)
	assert.IsType(t, &zap.SugaredLogger{}, Log)

	assert.NotPanics(t, func() {
		Log.Infow("nop logger test")
	})
}

func TestFromContext(t *testing.T) {
	originalLog := Log
	defer func() { Log = originalLog }()

	core, logs := observer.New(zap.InfoLevel)
	Log = zap.New(core).Sugar()

	tests := []struct {
		name      string
		ctx       context.Context
		wantField bool
	}{
		{name: "with request id", ctx: WithRequestID(context.Background(), "req-1"), wantField: true},
		{name: "without request id", ctx: context.Background(), wantField: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			FromContext(tt.ctx).Info("hello")

			entries := logs.TakeAll()
			assert.Len(t, entries, 1)

			fields := entries[0].ContextMap()
			id, ok := fields["request_id"]
			assert.Equal(t, tt.wantField, ok)
			if tt.wantField {
				assert.Equal(t, "req-1", id)
			}
		})
	}
}

func TestFromContext_PrefersScopedLogger(t *testing.T) {
	originalLog := Log
	defer func() { Log = originalLog }()

	globalCore, globalLogs := observer.New(zap.InfoLevel)
	Log = zap.New(globalCore).Sugar()

	scopedCore, scopedLogs := observer.New(zap.InfoLevel)
	scoped := zap.New(scopedCore).Sugar().With("request_id", "req-2")

	ctx := WithLogger(WithRequestID(context.Background(), "req-2"), scoped)
	assert.Same(t, scoped, FromContext(ctx))

	FromContext(ctx).Info("hello")
	assert.Zero(t, globalLogs.Len())

	entries := scopedLogs.TakeAll()
	assert.Len(t, entries, 1)
	assert.Equal(t, "req-2", entries[0].ContextMap()["request_id"])
}
