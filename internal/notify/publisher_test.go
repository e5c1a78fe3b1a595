package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantflow/internal/stage"
	id "grantflow/pkg/domain"
	"grantflow/pkg/requestcontext"
)

func TestPublisher_DrainsOnClose(t *testing.T) {
	sink := NewInMemorySink()
	pub := NewPublisher(sink, slog.New(slog.NewTextHandler(io.Discard, nil)))

	projectID := id.ProjectID(uuid.New())
	actorID := id.UserID(uuid.New())
	for i := 0; i < 10; i++ {
		pub.Emit(context.Background(), Event{
			ProjectID: projectID,
			ActorID:   actorID,
			Kind:      KindStageAdvanced,
			Stage:     stage.ExternalReview,
		})
	}
	pub.Close()

	events := sink.Events()
	require.Len(t, events, 10)
	assert.Equal(t, KindStageAdvanced, events[0].Kind)
	assert.Equal(t, projectID, events[0].ProjectID)
}

func TestPublisher_StampsFromRequestContext(t *testing.T) {
	sink := NewInMemorySink()
	pub := NewPublisher(sink, slog.New(slog.NewTextHandler(io.Discard, nil)))

	now := time.Date(2026, 7, 14, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	ctx = requestcontext.WithDeviceLabel(ctx, "Firefox/Linux")
	ctx = requestcontext.WithClientMetadata(ctx, "203.0.113.7", "Mozilla/5.0")

	pub.Emit(ctx, Event{Kind: KindChecklistRaised, Stage: stage.InternalCompliance})
	pub.Close()

	events := sink.Events()
	require.Len(t, events, 1)
	assert.False(t, events[0].EventID.IsZero())
	assert.Equal(t, now, events[0].Timestamp)
	assert.Equal(t, "Firefox/Linux", events[0].Device)
	assert.Equal(t, "203.0.113.7", events[0].ClientIP)
}

func TestPublisher_ExplicitFieldsWin(t *testing.T) {
	sink := NewInMemorySink()
	pub := NewPublisher(sink, slog.New(slog.NewTextHandler(io.Discard, nil)))

	stamped := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithDeviceLabel(context.Background(), "Chrome/Windows")

	pub.Emit(ctx, Event{Kind: KindProjectApproved, Timestamp: stamped, Device: "cli"})
	pub.Close()

	events := sink.Events()
	require.Len(t, events, 1)
	assert.Equal(t, stamped, events[0].Timestamp)
	assert.Equal(t, "cli", events[0].Device)
}
