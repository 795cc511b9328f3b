package signup

import (
	"context"

	"go.uber.org/zap"
)

// LogRecorder is the Recorder used when no spreadsheet is configured; it
// only writes entries to the log.
type LogRecorder struct {
	Logger *zap.Logger
}

func (l LogRecorder) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

func (l LogRecorder) RecordWaitlist(_ context.Context, e Entry) error {
	l.logger().Info("waitlist entry not persisted: no spreadsheet configured",
		zap.String("id", e.ID),
		zap.String("email", e.Email),
		zap.String("country", e.Country),
	)
	return nil
}

func (l LogRecorder) RecordRSVP(_ context.Context, e RSVPEntry) error {
	l.logger().Info("rsvp entry not persisted: no spreadsheet configured",
		zap.String("id", e.ID),
		zap.String("name", e.Name),
		zap.Int("guests", e.Guests),
	)
	return nil
}
