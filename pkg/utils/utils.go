package utils

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"tnp-quickview/pkg/logger"

	"go.uber.org/zap"
)

// GoSafe runs fn in a goroutine. A panic is recovered and logged with its
// stack so one bad fetch cannot take the process down.
func GoSafe(log *logger.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Recovered from panic", logger.ErrorField(fmt.Errorf("panic: %v", r)), zap.Stack("stack"))
			}
		}()
		fn()
	}()
}

// ShouldContinue reports whether ctx is still live, logging when it is not.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		log.Warn("Context done, stopping", logger.ErrorField(ctx.Err()))
		return false
	default:
		return true
	}
}

// ToPointer returns a pointer to v.
func ToPointer[T any](v T) *T {
	return &v
}

// CleanToValidUTF8 drops invalid UTF-8 sequences.
func CleanToValidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "")
}

// SafeText collapses whitespace runs and strips invalid UTF-8.
func SafeText(s string) string {
	return strings.Join(strings.Fields(CleanToValidUTF8(s)), " ")
}

// Truncate cuts s to at most n runes, appending "…" when it was cut.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}
