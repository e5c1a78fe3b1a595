package notify

import (
	"context"
	"log/slog"

	id "grantflow/pkg/domain"
	"grantflow/pkg/requestcontext"
)

const defaultBufferSize = 256

// Publisher decouples decision handling from event delivery. Emit never
// blocks the caller: events go through a buffered inbox and a background
// worker hands them to the sink. Delivery failure is logged, never returned,
// so a broker outage cannot reject a decision that already committed.
type Publisher struct {
	sink   Sink
	inbox  chan Event
	done   chan struct{}
	logger *slog.Logger
}

func NewPublisher(sink Sink, logger *slog.Logger) *Publisher {
	p := &Publisher{
		sink:   sink,
		inbox:  make(chan Event, defaultBufferSize),
		done:   make(chan struct{}),
		logger: logger,
	}
	go p.run()
	return p
}

// Emit enqueues the event, stamping the event id, timestamp and client
// metadata from the request context when the caller left them empty. A full
// inbox drops the event rather than stalling the request path.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.EventID.IsZero() {
		event.EventID = id.NewEventID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.Device == "" {
		event.Device = requestcontext.DeviceLabel(ctx)
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}
	select {
	case p.inbox <- event:
	default:
		p.logger.Warn("event inbox full, dropping event",
			"kind", event.Kind,
			"project_id", event.ProjectID.String(),
		)
	}
}

func (p *Publisher) run() {
	defer close(p.done)
	for event := range p.inbox {
		if err := p.sink.Append(context.Background(), event); err != nil {
			p.logger.Error("event delivery failed",
				"kind", event.Kind,
				"project_id", event.ProjectID.String(),
				"error", err,
			)
		}
	}
}

// Close stops intake and waits for the worker to drain buffered events.
func (p *Publisher) Close() {
	close(p.inbox)
	<-p.done
}
