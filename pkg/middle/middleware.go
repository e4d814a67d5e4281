package middle

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	zap "go.uber.org/zap"
)

// Stage is one step of a render run.
type Stage func(ctx context.Context) error

// SlowStage is the duration after which a stage is reported as slow.
const SlowStage = 10 * time.Second

// LoggingMiddleware logs the stage and its duration. A panic inside the
// stage is logged with its stack and returned as an error.
// Records carry the run id when an outer RunIDMiddleware set one.
func LoggingMiddleware(logger *zap.Logger, name string) func(Stage) Stage {
	return func(next Stage) Stage {
		return func(ctx context.Context) (err error) {
			logger := WithRunID(ctx, logger)
			start := time.Now()
			logger.Debug("Stage started", zap.String("stage", name))

			defer func() {
				if r := recover(); r != nil {
					logger.Error("Stage panicked",
						zap.String("stage", name),
						zap.Any("panic", r),
						zap.String("stack", string(debug.Stack())),
					)
					err = fmt.Errorf("%s: panic: %v", name, r)
				}

				duration := time.Since(start)
				logger.Debug("Stage completed",
					zap.String("stage", name),
					zap.Duration("duration", duration),
					zap.Bool("ok", err == nil),
				)

				if duration > SlowStage {
					logger.Warn("Slow stage",
						zap.String("stage", name),
						zap.Duration("duration", duration),
					)
				}
			}()

			return next(ctx)
		}
	}
}

type runIDKey struct{}

// RunIDMiddleware tags the stage's context with the run id.
func RunIDMiddleware(runID string) func(Stage) Stage {
	return func(next Stage) Stage {
		return func(ctx context.Context) error {
			return next(context.WithValue(ctx, runIDKey{}, runID))
		}
	}
}

// RunIDFrom returns the id set by RunIDMiddleware.
func RunIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey{}).(string)
	return id, ok
}

// WithRunID adds the context's run id to logger, if there is one.
func WithRunID(ctx context.Context, logger *zap.Logger) *zap.Logger {
	if id, ok := RunIDFrom(ctx); ok {
		return logger.With(zap.String("run", id))
	}
	return logger
}

func GenerateRunID() string {
	return "run-" + uuid.New().String()
}

// Chain applies middlewares so that the first one is outermost.
func Chain(stage Stage, mws ...func(Stage) Stage) Stage {
	for i := len(mws) - 1; i >= 0; i-- {
		stage = mws[i](stage)
	}
	return stage
}
