package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"

	"go-piano/debug"
)

// Telemetry is optional: without a DSN every hook is a no-op. Hooks are
// called from the screen's event loop and are not synchronized.

var (
	enabled  bool
	exercise *sentry.Span
)

// Init configures Sentry. An empty DSN leaves telemetry disabled.
func Init(dsn, release string) error {
	if dsn == "" {
		debug.Log("metrics", "no DSN configured, telemetry disabled")
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Release:          release,
		TracesSampleRate: 0.2,
	})
	if err != nil {
		return fmt.Errorf("init sentry: %w", err)
	}
	enabled = true
	return nil
}

// Close flushes buffered telemetry before shutdown.
func Close() {
	if !enabled {
		return
	}
	if exercise != nil {
		exercise.Status = sentry.SpanStatusCanceled
		exercise.Finish()
		exercise = nil
	}
	sentry.Flush(2 * time.Second)
}

// ExerciseStarted opens a transaction for one practice run. A run still
// open from a previous start is finished as abandoned.
func ExerciseStarted(mode, label string) {
	if !enabled {
		return
	}
	if exercise != nil {
		exercise.Status = sentry.SpanStatusCanceled
		exercise.Finish()
	}
	exercise = sentry.StartTransaction(context.Background(), "practice."+mode)
	exercise.SetTag("exercise", label)
	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Category: "practice",
		Message:  "started " + label,
		Level:    sentry.LevelInfo,
	})
}

// ExerciseCompleted closes the run's transaction with its outcome.
func ExerciseCompleted(mode string, elapsed time.Duration, presses int) {
	if !enabled {
		return
	}
	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Category: "practice",
		Message:  fmt.Sprintf("completed %s in %s", mode, elapsed.Round(time.Millisecond)),
		Level:    sentry.LevelInfo,
	})
	if exercise == nil {
		return
	}
	exercise.SetTag("presses", strconv.Itoa(presses))
	exercise.Status = sentry.SpanStatusOK
	exercise.Finish()
	exercise = nil
}

// DeviceSeen records a MIDI keyboard arriving or leaving.
func DeviceSeen(id string, connected bool) {
	if !enabled {
		return
	}
	msg := "disconnected " + id
	if connected {
		msg = "connected " + id
	}
	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Category: "midi",
		Message:  msg,
		Level:    sentry.LevelInfo,
	})
}

// CaptureErr forwards an operational error. Always logged locally.
func CaptureErr(err error) {
	if err == nil {
		return
	}
	debug.Log("metrics", "error: %v", err)
	if enabled {
		sentry.CaptureException(err)
	}
}
