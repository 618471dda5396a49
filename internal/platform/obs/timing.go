package obs

import (
	"context"
	"log/slog"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Time records the duration of an operation when the returned func is deferred.
// Pass the address of the named error return so failures are logged with it.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			slog.Warn("op failed",
				"req_id", reqID, "op", name, "dur_ms", dur.Milliseconds(), "error", *errp)
			return
		}
		slog.Debug("op done",
			"req_id", reqID, "op", name, "dur_ms", dur.Milliseconds())
	}
}
