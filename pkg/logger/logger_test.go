package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profilescraper/pkg/config"
)

func TestNewRejectsInvalidLevel(t *testing.T) {
	_, err := New(&config.LoggingConfig{Level: "shouting"})
	assert.Error(t, err)
}

func TestNewAcceptsKnownLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "warning", "error", "disabled"} {
		t.Run(level, func(t *testing.T) {
			log, err := New(&config.LoggingConfig{Level: level})
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestTestLoggerCapturesMessages(t *testing.T) {
	log := NewTestLogger()

	log.Info("starting up")
	log.WarnWithFields("slow response", map[string]interface{}{"duration_ms": 1200})
	log.WithError(errors.New("boom")).Error("fetch failed")

	messages := log.GetMessages()
	require.Len(t, messages, 3)

	assert.True(t, log.HasMessage("starting up"))
	assert.True(t, log.HasError())

	warns := log.GetMessagesByLevel("WARN")
	require.Len(t, warns, 1)
	assert.Equal(t, 1200, warns[0].Fields["duration_ms"])

	errs := log.GetMessagesByLevel("ERROR")
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0].Error, "boom")
}

func TestTestLoggerFieldChaining(t *testing.T) {
	log := NewTestLogger()

	log.WithField("identifier", "alice").WithField("attempt", 1).Info("fetching")

	messages := log.GetMessages()
	require.Len(t, messages, 1)
	assert.Equal(t, "alice", messages[0].Fields["identifier"])
	assert.Equal(t, 1, messages[0].Fields["attempt"])
}

func TestTestLoggerClear(t *testing.T) {
	log := NewTestLogger()

	log.Info("one")
	log.Clear()

	assert.Empty(t, log.GetMessages())
	assert.Empty(t, log.String())
}
