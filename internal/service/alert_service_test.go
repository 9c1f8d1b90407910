package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"campus-assistant-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger forwards every Info call so the test can wait for
// the async consumer.
type recordingLogger struct {
	nopLogger
	entries chan map[string]interface{}
}

func (l *recordingLogger) Info(module, message string, details map[string]interface{}) {
	l.entries <- details
}

func TestAlertServiceLogsEscalations(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	escalationLog := &recordingLogger{entries: make(chan map[string]interface{}, 1)}
	svc := NewAlertService(pubSub, nopLogger{}, escalationLog, nil)

	require.NoError(t, svc.Consume(context.Background()))

	payload, err := json.Marshal(map[string]interface{}{
		"session_id": "session-a",
		"priority":   "high",
		"reasons":    []string{"complaint"},
	})
	require.NoError(t, err)

	msg := message.NewMessage(watermill.NewUUID(), payload)
	require.NoError(t, pubSub.Publish(events.TopicEscalationRaised, msg))

	select {
	case entry := <-escalationLog.entries:
		assert.Equal(t, "session-a", entry["session_id"])
		assert.Equal(t, "high", entry["priority"])
	case <-time.After(2 * time.Second):
		t.Fatal("escalation was not consumed")
	}
}

func TestAlertServiceSkipsMalformedPayload(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	escalationLog := &recordingLogger{entries: make(chan map[string]interface{}, 1)}
	svc := NewAlertService(pubSub, nopLogger{}, escalationLog, nil)

	require.NoError(t, svc.Consume(context.Background()))

	bad := message.NewMessage(watermill.NewUUID(), []byte("not json"))
	require.NoError(t, pubSub.Publish(events.TopicEscalationRaised, bad))

	select {
	case <-escalationLog.entries:
		t.Fatal("malformed payload should not reach the audit log")
	case <-time.After(200 * time.Millisecond):
	}
}
