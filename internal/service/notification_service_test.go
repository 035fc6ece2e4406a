package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/jobboard/internal/config"
	"github.com/spec-kit/jobboard/internal/events"
)

func TestNotificationService_Handle(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewNotificationService(zap.New(core), config.NotificationConfig{
		EmailFrom:  "noreply@jobs.test",
		WebhookURL: "https://hooks.test/jobs",
	})

	require.NoError(t, svc.Handle(context.Background(), events.Event{
		ID:    "evt-1",
		Type:  events.EventApplicationSubmitted,
		JobID: "job-1",
		Actor: events.Actor{ID: "vol-1", Role: "user"},
		Payload: events.ApplicationSubmittedPayload{
			ApplicationID: "app-1",
		},
	}))

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, "application submitted", entries[0].Message)
	assert.Equal(t, "app-1", entries[0].ContextMap()["application_id"])
	assert.Equal(t, "email notification", entries[1].Message)
	assert.Equal(t, "webhook notification", entries[2].Message)
}

func TestNotificationService_StubsDisabled(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewNotificationService(zap.New(core), config.NotificationConfig{})

	require.NoError(t, svc.Handle(context.Background(), events.Event{Type: events.EventJobDeleted, JobID: "job-1"}))
	require.NoError(t, svc.Handle(context.Background(), events.Event{Type: "something_else"}))

	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, "job changed", entries[0].Message)
	assert.Len(t, svc.EventTypes(), 4)
}
