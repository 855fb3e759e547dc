package kernel

import (
	"fmt"

	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies orders, order lines, payments, menu items and staff members.
// It wraps github.com/google/uuid; the zero value is invalid.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	staffID, err := kernel.UUIDFromString(claims.Subject)
//	if err != nil {
//	    return err
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses the canonical, braced, urn-prefixed or unhyphenated form.
// The nil UUID is rejected.
func UUIDFromString(s string) (UUID, error) {
	return wrapUUID(uuid.Parse(s))
}

// UUIDFromBytes builds a UUID from its 16-byte binary form, as stored by the
// postgres adapters and carried by openapi_types.UUID.
func UUIDFromBytes(b []byte) (UUID, error) {
	return wrapUUID(uuid.FromBytes(b))
}

func wrapUUID(id uuid.UUID, parseErr error) (UUID, error) {
	if parseErr != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID format: %w", parseErr))
	}
	wrapped := UUID{id: id}
	if err := wrapped.Validate(); err != nil {
		return UUID{}, err
	}
	return wrapped, nil
}

// String returns the hyphenated lower-case representation.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID (a [16]byte array, so callers get a copy).
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares by value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
