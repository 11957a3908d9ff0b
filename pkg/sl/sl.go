// Package sl holds small helpers for log/slog.
package sl

import "log/slog"

// Err renders err under the "error" key.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}
