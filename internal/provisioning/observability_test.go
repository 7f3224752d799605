package provisioning

import (
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogger(verbosity int) (logr.Logger, *[]string) {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: verbosity})
	return logger, &lines
}

func TestConsoleObserver_Printf(t *testing.T) {
	logger, lines := captureLogger(0)
	observer := NewConsoleObserver(logger)

	observer.Printf("test message: %s", "value")

	require.Len(t, *lines, 1)
	assert.Contains(t, (*lines)[0], "test message: value")
}

func TestConsoleObserver_Event(t *testing.T) {
	logger, lines := captureLogger(0)
	observer := NewConsoleObserver(logger)

	observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    "create-node",
		Resource: "auto-node",
		Message:  "node created",
		Fields: map[string]string{
			"type": "node",
			"id":   "12",
		},
	})

	require.Len(t, *lines, 1)
	assert.Contains(t, (*lines)[0], "resource.created [create-node] resource=auto-node node created (id=12, type=node)")
}

func TestConsoleObserver_Levels(t *testing.T) {
	t.Run("attempts hidden without verbosity", func(t *testing.T) {
		logger, lines := captureLogger(0)
		observer := NewConsoleObserver(logger)

		observer.Event(Event{Type: EventAddressAttempt, Phase: "address", Message: "querying"})
		assert.Empty(t, *lines)
	})

	t.Run("attempts shown when verbose", func(t *testing.T) {
		logger, lines := captureLogger(1)
		observer := NewConsoleObserver(logger)

		observer.Event(Event{Type: EventAddressAttempt, Phase: "address", Message: "querying"})
		assert.Len(t, *lines, 1)
	})

	t.Run("failures are errors", func(t *testing.T) {
		logger, lines := captureLogger(0)
		observer := NewConsoleObserver(logger)

		observer.Event(Event{Type: EventAuthFailed, Phase: "authenticate", Message: "denied"})
		require.Len(t, *lines, 1)
		assert.Contains(t, (*lines)[0], `"error"`)
	})
}

func TestConsoleObserver_Progress(t *testing.T) {
	logger, lines := captureLogger(0)
	observer := NewConsoleObserver(logger)

	observer.Progress("address", 5, 10)
	observer.Progress("address", 0, 0)

	require.Len(t, *lines, 2)
	assert.Contains(t, (*lines)[0], "[address] Progress: 5/10 (50%)")
}

func TestConsoleObserver_WithFields(t *testing.T) {
	logger, lines := captureLogger(0)
	observer := NewConsoleObserver(logger)

	contextual := observer.WithFields(map[string]string{"node": "auto-node"})
	contextual.Event(Event{Type: EventPhaseStarted, Phase: "create-node", Message: "starting"})
	observer.Event(Event{Type: EventPhaseStarted, Phase: "create-node", Message: "starting"})

	require.Len(t, *lines, 2)
	assert.Contains(t, (*lines)[0], "node=auto-node")
	assert.False(t, strings.Contains((*lines)[1], "node=auto-node"), "parent observer must not inherit fields")
}

func TestLogHelpers(t *testing.T) {
	observer := NewMockObserver()

	LogPhaseStart(observer, "create-node")
	LogResourceCreating(observer, "create-node", "node", "auto-node")
	LogResourceCreated(observer, "create-node", "node", "auto-node", "12")
	LogResourceCreated(observer, "issue-token", "install token", "12", "")
	LogResourceFailed(observer, "create-node", "node", "auto-node", assert.AnError)
	LogWarning(observer, "identify-node", "node list is empty")
	LogPhaseFailed(observer, "create-node", assert.AnError)
	LogPhaseComplete(observer, "create-node", 2*time.Second)

	events := observer.Events()
	require.Len(t, events, 8)

	assert.Equal(t, EventPhaseStarted, events[0].Type)
	assert.Equal(t, "auto-node", events[1].Resource)
	assert.Equal(t, "12", events[2].Fields["id"])
	_, hasID := events[3].Fields["id"]
	assert.False(t, hasID)
	assert.Equal(t, EventResourceFailed, events[4].Type)
	assert.Equal(t, EventValidationWarning, events[5].Type)
	assert.Equal(t, EventPhaseFailed, events[6].Type)
	assert.Equal(t, "completed in 2s", events[7].Message)
}

func TestObserver_ImplementsLogger(t *testing.T) {
	var observer Observer = NewConsoleObserver(logr.Discard())
	var logger Logger = observer
	assert.NotNil(t, logger)
}
