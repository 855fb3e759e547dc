package commands_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmitConfirmCancel(t *testing.T) {
	t.Run("submit then confirm", func(t *testing.T) {
		ctx := t.Context()
		o := draftWithLines(t)

		factory, uow, repo := expectLoad(ctx, o)
		repo.On("Update", ctx, o).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		submit, err := commands.NewSubmitOrderCommand(o.ID(), staffID)
		require.NoError(t, err)
		_, err = commands.NewSubmitOrderCommandHandler(factory, testDeps(nil)).Handle(ctx, submit)
		require.NoError(t, err)
		assert.Equal(t, order.Submitted, o.Status())

		factory, uow, repo = expectLoad(ctx, o)
		repo.On("Update", ctx, o).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		confirm, err := commands.NewConfirmOrderCommand(o.ID(), staffID)
		require.NoError(t, err)
		_, err = commands.NewConfirmOrderCommandHandler(factory, testDeps(nil)).Handle(ctx, confirm)
		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, o.Status())
	})

	t.Run("submit without lines", func(t *testing.T) {
		ctx := t.Context()
		details, err := order.NewDetails(order.Takeout, nil, "", "", "")
		require.NoError(t, err)
		o, err := order.NewOrder(kernel.NewUUID(), testNumber(t, 7), order.Takeout, details, fixedNow)
		require.NoError(t, err)

		factory, _, repo := expectLoad(ctx, o)

		cmd, err := commands.NewSubmitOrderCommand(o.ID(), staffID)
		require.NoError(t, err)
		_, err = commands.NewSubmitOrderCommandHandler(factory, testDeps(nil)).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, order.Draft, o.Status())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("cancel a confirmed order", func(t *testing.T) {
		ctx := t.Context()
		o := confirmedOrder(t)
		factory, uow, repo := expectLoad(ctx, o)
		sink := new(MockAuditSink)

		repo.On("Update", ctx, o).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		sink.On("Record", ctx, mock.MatchedBy(func(e ports.AuditEvent) bool {
			return e.Action == ports.AuditCancel && e.OrderID == o.ID()
		})).Return(nil).Once()

		cmd, err := commands.NewCancelOrderCommand(o.ID(), staffID)
		require.NoError(t, err)
		cancelled, err := commands.NewCancelOrderCommandHandler(factory, testDeps(sink)).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, cancelled.Status())
		sink.AssertExpectations(t)
	})

	t.Run("concurrent modification is returned and not audited", func(t *testing.T) {
		ctx := t.Context()
		o := confirmedOrder(t)
		factory, uow, repo := expectLoad(ctx, o)
		sink := new(MockAuditSink)

		repo.On("Update", ctx, o).Return(errs.NewConcurrentModificationError(o.ID(), o.Version())).Once()

		cmd, err := commands.NewCancelOrderCommand(o.ID(), staffID)
		require.NoError(t, err)
		_, err = commands.NewCancelOrderCommandHandler(factory, testDeps(sink)).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConcurrentModification)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		sink.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
		uow.AssertExpectations(t)
	})
}

func TestPayOrderCommandHandler(t *testing.T) {
	pay := func(t *testing.T, o *order.Order, amount string, deps commands.Dependencies) (*order.Order, error) {
		t.Helper()
		ctx := t.Context()
		factory, uow, repo := expectLoad(ctx, o)
		repo.On("Update", ctx, o).Return(nil).Maybe()
		uow.On("Commit", ctx).Return(nil).Maybe()

		cmd, err := commands.NewPayOrderCommand(o.ID(), kernel.MustMoney(amount), order.Cash, staffID)
		require.NoError(t, err)
		return commands.NewPayOrderCommandHandler(factory, deps).Handle(ctx, cmd)
	}

	t.Run("partial then full payment", func(t *testing.T) {
		o := confirmedOrder(t)

		updated, err := pay(t, o, "10000", testDeps(nil))
		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, updated.Status())
		assert.Equal(t, "9550.00", updated.BalanceDue().String())

		updated, err = pay(t, o, "9550", testDeps(nil))
		require.NoError(t, err)
		assert.Equal(t, order.Paid, updated.Status())
		assert.True(t, updated.BalanceDue().IsZero())
		assert.Len(t, updated.Payments(), 2)
	})

	t.Run("sub-cent amount is rejected before the order is loaded", func(t *testing.T) {
		_, parseErr := kernel.MoneyFromString("19549.995")
		require.ErrorIs(t, parseErr, errs.ErrValueIsInvalid)

		tenthOfCent := kernel.MustMoney("0.01").Rate(decimal.RequireFromString("0.1"))
		_, err := commands.NewPayOrderCommand(kernel.NewUUID(), tenthOfCent, order.Cash, staffID)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("draft order cannot be paid", func(t *testing.T) {
		o := draftWithLines(t)

		_, err := pay(t, o, "100", testDeps(nil))
		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Empty(t, o.Payments())
	})

	t.Run("audit failure is logged and swallowed", func(t *testing.T) {
		o := confirmedOrder(t)
		sink := new(MockAuditSink)
		sink.On("Record", mock.Anything, mock.Anything).Return(errors.New("broker unreachable")).Once()

		var logs bytes.Buffer
		deps := testDeps(sink)
		deps.Logger = slog.New(slog.NewJSONHandler(&logs, nil))

		updated, err := pay(t, o, "19550", deps)
		require.NoError(t, err)
		assert.Equal(t, order.Paid, updated.Status())
		assert.Contains(t, logs.String(), "audit event not recorded")
		assert.Contains(t, logs.String(), o.ID().String())
		sink.AssertExpectations(t)
	})
}

func TestDeleteOrderCommandHandler(t *testing.T) {
	t.Run("draft order is deleted", func(t *testing.T) {
		ctx := t.Context()
		o := draftWithLines(t)
		factory, uow, repo := expectLoad(ctx, o)
		sink := new(MockAuditSink)

		repo.On("Delete", ctx, o).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		sink.On("Record", ctx, mock.MatchedBy(func(e ports.AuditEvent) bool {
			return e.Action == ports.AuditDelete
		})).Return(nil).Once()

		cmd, err := commands.NewDeleteOrderCommand(o.ID(), staffID)
		require.NoError(t, err)

		require.NoError(t, commands.NewDeleteOrderCommandHandler(factory, testDeps(sink)).Handle(ctx, cmd))
		repo.AssertExpectations(t)
		sink.AssertExpectations(t)
	})

	t.Run("submitted order cannot be deleted", func(t *testing.T) {
		ctx := t.Context()
		o := draftWithLines(t)
		require.NoError(t, o.Submit(fixedNow))
		factory, _, repo := expectLoad(ctx, o)

		cmd, err := commands.NewDeleteOrderCommand(o.ID(), staffID)
		require.NoError(t, err)

		err = commands.NewDeleteOrderCommandHandler(factory, testDeps(nil)).Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrInvalidState)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestUpdateOrderCommandHandler(t *testing.T) {
	t.Run("moves the party to another table", func(t *testing.T) {
		ctx := t.Context()
		o := draftWithLines(t)
		factory, uow, repo := expectLoad(ctx, o)
		repo.On("Update", ctx, o).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		partySize := 6
		cmd, err := commands.NewUpdateOrderCommand(o.ID(), &partySize, "12", "", "", staffID)
		require.NoError(t, err)

		updated, err := commands.NewUpdateOrderCommandHandler(factory, testDeps(nil)).Handle(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, "12", updated.Details().TableNo())
		assert.Equal(t, 6, *updated.Details().PartySize())
	})

	t.Run("dine in order cannot drop its table", func(t *testing.T) {
		ctx := t.Context()
		o := draftWithLines(t)
		factory, _, repo := expectLoad(ctx, o)

		partySize := 2
		cmd, err := commands.NewUpdateOrderCommand(o.ID(), &partySize, "", "", "", staffID)
		require.NoError(t, err)

		_, err = commands.NewUpdateOrderCommandHandler(factory, testDeps(nil)).Handle(ctx, cmd)
		require.ErrorIs(t, err, order.ErrTableNoIsRequired)
		assert.Equal(t, "5", o.Details().TableNo())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
