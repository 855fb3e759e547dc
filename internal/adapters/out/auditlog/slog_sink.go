// Package auditlog writes order audit events to the structured log. It is the
// sink used when no broker is configured.
package auditlog

import (
	"context"
	"log/slog"

	"restaurant/internal/core/ports"
)

type SlogSink struct {
	logger *slog.Logger
}

func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{logger: logger.With("component", "audit")}
}

func (s *SlogSink) Record(ctx context.Context, event ports.AuditEvent) error {
	s.logger.InfoContext(ctx, "order audit",
		"action", string(event.Action),
		"order_id", event.OrderID.String(),
		"order_no", event.OrderNo,
		"requested_by", event.RequestedBy.String(),
		"occurred_at", event.OccurredAt,
		"summary", event.Summary,
	)
	return nil
}
