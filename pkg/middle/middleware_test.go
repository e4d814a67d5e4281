package middle

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	stage := Chain(func(ctx context.Context) error { return nil }, LoggingMiddleware(logger, "fetch"))
	require.NoError(t, stage(context.Background()))

	done := logs.FilterMessage("Stage completed").All()
	require.Len(t, done, 1)
	assert.Equal(t, "fetch", done[0].ContextMap()["stage"])
	assert.Equal(t, true, done[0].ContextMap()["ok"])
}

func TestLoggingMiddlewareRecovers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	stage := LoggingMiddleware(zap.New(core), "draw")(func(ctx context.Context) error {
		panic("boom")
	})

	err := stage(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "draw: panic: boom")
	assert.Equal(t, 1, logs.FilterMessage("Stage panicked").Len())
}

func TestLoggingMiddlewarePassesErrors(t *testing.T) {
	want := errors.New("db gone")
	stage := LoggingMiddleware(zap.NewNop(), "fetch")(func(ctx context.Context) error { return want })
	assert.ErrorIs(t, stage(context.Background()), want)
}

func TestRunIDMiddleware(t *testing.T) {
	id := GenerateRunID()
	assert.True(t, strings.HasPrefix(id, "run-"))

	var got string
	stage := Chain(func(ctx context.Context) error {
		got, _ = RunIDFrom(ctx)
		return nil
	}, RunIDMiddleware(id))
	require.NoError(t, stage(context.Background()))
	assert.Equal(t, id, got)

	_, ok := RunIDFrom(context.Background())
	assert.False(t, ok)
}

func TestLoggingMiddlewareTagsRunID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	stage := Chain(func(ctx context.Context) error { return nil },
		RunIDMiddleware("run-42"), LoggingMiddleware(zap.New(core), "layout"))
	require.NoError(t, stage(context.Background()))

	done := logs.FilterMessage("Stage completed").All()
	require.Len(t, done, 1)
	assert.Equal(t, "run-42", done[0].ContextMap()["run"])

	// without an outer RunIDMiddleware there is no run field
	core, logs = observer.New(zapcore.DebugLevel)
	require.NoError(t, LoggingMiddleware(zap.New(core), "layout")(func(ctx context.Context) error { return nil })(context.Background()))
	_, tagged := logs.FilterMessage("Stage completed").All()[0].ContextMap()["run"]
	assert.False(t, tagged)
}
