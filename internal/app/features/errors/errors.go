// internal/app/features/errors/errors.go

// Package errors maps the service's failure taxonomy onto JSON responses:
// validation failures are 400, permission denials 403, missing resources
// 404, missing sessions 401, and everything else 500 with details kept in
// the logs. Every feature handler renders failures through this package so
// the wire shape stays `{"error": "..."}` everywhere.
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger logs handler-site failures with request context attached.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger on the app logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogError records an operational failure (DB errors and the like) for a
// request. Permission denials and validation failures are expected
// outcomes and are not logged here.
func (el *ErrorLogger) LogError(r *http.Request, msg string, err error) {
	el.log.Error(msg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
}
