package utils

import (
	"strings"
	"testing"
	"time"

	"tnp-quickview/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFormatISO(t *testing.T) {
	t.Parallel()

	jst := GetJSTTimeLocation()
	assert.Equal(t, "2024-01-01T09:00:00.000Z", FormatISO(time.Date(2024, 1, 1, 18, 0, 0, 0, jst)))
	assert.Equal(t, "2024-01-01T09:00:00.123Z", FormatISO(time.Date(2024, 1, 1, 9, 0, 0, 123456789, time.UTC)))
}

func TestBeforeDayJST(t *testing.T) {
	t.Parallel()

	jst := GetJSTTimeLocation()
	now := time.Date(2024, 1, 10, 0, 30, 0, 0, jst)

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{name: "previous day", t: time.Date(2024, 1, 9, 23, 59, 0, 0, jst), want: true},
		{name: "same day", t: time.Date(2024, 1, 10, 0, 0, 0, 0, jst), want: false},
		{name: "utc evening is next jst day", t: time.Date(2024, 1, 9, 15, 0, 0, 0, time.UTC), want: false},
		{name: "utc afternoon is same jst day before", t: time.Date(2024, 1, 9, 14, 59, 0, 0, time.UTC), want: true},
		{name: "previous year", t: time.Date(2023, 12, 31, 12, 0, 0, 0, jst), want: true},
		{name: "future", t: time.Date(2024, 1, 11, 0, 0, 0, 0, jst), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, BeforeDayJST(tt.t, now))
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "円安進行", Truncate("円安進行", 4))
	assert.Equal(t, "円安…", Truncate("円安進行", 2))
	assert.Equal(t, "abc", Truncate("abc", 0))
}

func TestSafeText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", SafeText("  a\n\tb   c "))
	assert.Equal(t, "ab", SafeText("a\xffb"))
}

func TestGoSafe_LogsRecoveredPanic(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{Logger: zap.New(core)}

	done := make(chan struct{})
	GoSafe(log, func() {
		defer close(done)
		panic("bad quote")
	})
	<-done

	require.Eventually(t, func() bool { return logs.Len() == 1 }, time.Second, 5*time.Millisecond)
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "Recovered from panic", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "panic: bad quote", fields["error"])
	assert.Contains(t, fields["stack"], "TestGoSafe_LogsRecoveredPanic")
}

func TestReadLimitedBody(t *testing.T) {
	t.Parallel()

	body, err := ReadLimitedBody(strings.NewReader("abcd"), 4)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(body))

	_, err = ReadLimitedBody(strings.NewReader("abcde"), 4)
	assert.ErrorIs(t, err, ErrBodyTooLarge)

	body, err = ReadLimitedBody(strings.NewReader("small"), 0)
	require.NoError(t, err)
	assert.Equal(t, "small", string(body), "zero limit falls back to the default")
}
