package pgerr_test

import (
	"errors"
	"fmt"
	"testing"

	"restaurant/internal/adapters/out/postgres/pgerr"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerr.UniqueViolation})
	serialization := &pgconn.PgError{Code: pgerr.SerializationFailure}
	deadlock := &pgconn.PgError{Code: pgerr.DeadlockDetected}
	plain := errors.New("connection refused")

	assert.Equal(t, pgerr.UniqueViolation, pgerr.Code(unique))
	assert.True(t, pgerr.IsUniqueViolation(unique))
	assert.False(t, pgerr.IsConflict(unique))

	assert.True(t, pgerr.IsConflict(serialization))
	assert.True(t, pgerr.IsConflict(deadlock))

	assert.Empty(t, pgerr.Constraint(unique))
	assert.Empty(t, pgerr.Code(plain))
	assert.False(t, pgerr.IsUniqueViolation(plain))
	assert.False(t, pgerr.IsConflict(nil))
}

func TestConstraint(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerr.UniqueViolation, ConstraintName: "ux_orders_order_no"})
	fk := &pgconn.PgError{Code: pgerr.ForeignKeyViolation, ConstraintName: "fk_order_lines_menu_item"}

	assert.Equal(t, "ux_orders_order_no", pgerr.Constraint(err))
	assert.True(t, pgerr.IsForeignKeyViolation(fk))
	assert.False(t, pgerr.IsForeignKeyViolation(err))
	assert.Empty(t, pgerr.Constraint(errors.New("timeout")))
}
