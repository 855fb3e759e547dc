package ports

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
)

// AuditAction names a state-changing order operation.
type AuditAction string

const (
	AuditCreate     AuditAction = "Create"
	AuditUpdate     AuditAction = "Update"
	AuditDelete     AuditAction = "Delete"
	AuditAddItem    AuditAction = "AddItem"
	AuditUpdateItem AuditAction = "UpdateItem"
	AuditRemoveItem AuditAction = "RemoveItem"
	AuditSubmit     AuditAction = "Submit"
	AuditConfirm    AuditAction = "Confirm"
	AuditCancel     AuditAction = "Cancel"
	AuditPay        AuditAction = "Pay"
)

// AuditEvent records one committed order change.
type AuditEvent struct {
	Action      AuditAction
	OrderID     kernel.UUID
	OrderNo     string
	RequestedBy kernel.UUID
	OccurredAt  time.Time
	Summary     map[string]any
}

// AuditSink receives audit events after the order change has been committed.
// A failing sink never undoes the change; callers log the error and move on.
type AuditSink interface {
	Record(ctx context.Context, event AuditEvent) error
}
