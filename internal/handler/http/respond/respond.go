// Package respond writes JSON responses and maps errors to safe,
// user-facing messages.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"feedboard/internal/domain/entity"
)

// JSON writes v as JSON with the given status code. A nil v writes no body.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// ヘッダー送信済みのためログのみ
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Error writes {"error": <message>} without any sanitizing.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// ErrorDetails writes {"error": msg, "details": <sanitized details>}.
func ErrorDetails(w http.ResponseWriter, code int, msg, details string) {
	JSON(w, code, map[string]string{
		"error":   msg,
		"details": SanitizeMessage(details),
	})
}

// Upstream writes the sanitized message of an error caused by a remote feed.
// The message describes the remote failure, not our internals, so it is
// shown even for 5xx codes.
func Upstream(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": SanitizeError(err)})
}

// safePhrases mark messages that are fine to show to clients.
var safePhrases = []string{
	"required",
	"invalid",
	"not found",
	"already exists",
	"must",
	"cannot",
	"too long",
	"exceed",
	"rate limit",
}

// SafeError returns validation-style messages as-is and replaces anything
// else with "internal server error". 5xx responses are always generic; the
// underlying error is logged with secrets masked.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	if code < 500 && isSafe(err) {
		JSON(w, code, map[string]string{"error": err.Error()})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}

func isSafe(err error) bool {
	var vErr *entity.ValidationError
	if errors.As(err, &vErr) {
		return true
	}
	lower := strings.ToLower(err.Error())
	for _, p := range safePhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
