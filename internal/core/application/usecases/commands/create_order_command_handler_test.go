package commands_test

import (
	"errors"
	"testing"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler(t *testing.T) {
	t.Run("creates a draft order with the next number", func(t *testing.T) {
		ctx := t.Context()
		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		factory := new(MockOrderUoWFactory)
		numberer := new(MockNumberer)
		sink := new(MockAuditSink)

		today := kernel.NewBusinessDate(fixedNow, time.UTC)
		numberer.On("Next", ctx, today).Return(testNumber(t, 1), nil).Once()
		factory.On("Create").Return(uow).Once()

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		sink.On("Record", ctx, mock.MatchedBy(func(e ports.AuditEvent) bool {
			return e.Action == ports.AuditCreate && e.OrderNo == "20250310-0001" && e.RequestedBy == staffID
		})).Return(nil).Once()

		partySize := 2
		cmd, err := commands.NewCreateOrderCommand(order.DineIn, &partySize, "5", "", "", staffID)
		require.NoError(t, err)

		handler := commands.NewCreateOrderCommandHandler(factory, numberer, testDeps(sink))
		created, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Draft, created.Status())
		assert.Equal(t, "20250310-0001", created.Number().String())
		assert.Equal(t, fixedNow, created.CreatedAt())
		assert.True(t, created.Totals().Total().IsZero())

		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
		factory.AssertExpectations(t)
		numberer.AssertExpectations(t)
		sink.AssertExpectations(t)
	})

	t.Run("numbering unavailable stores nothing", func(t *testing.T) {
		ctx := t.Context()
		factory := new(MockOrderUoWFactory)
		numberer := new(MockNumberer)
		sink := new(MockAuditSink)

		numberer.On("Next", ctx, mock.Anything).
			Return(order.Number{}, errs.NewNumberingUnavailableError("20250310", errors.New("redis down"))).Once()

		cmd, err := commands.NewCreateOrderCommand(order.Takeout, nil, "", "Lin", "", staffID)
		require.NoError(t, err)

		handler := commands.NewCreateOrderCommandHandler(factory, numberer, testDeps(sink))
		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrNumberingUnavailable)
		factory.AssertNotCalled(t, "Create")
		sink.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("failed insert is rolled back and not audited", func(t *testing.T) {
		ctx := t.Context()
		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		factory := new(MockOrderUoWFactory)
		numberer := new(MockNumberer)
		sink := new(MockAuditSink)

		numberer.On("Next", ctx, mock.Anything).Return(testNumber(t, 2), nil).Once()
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(repo).Once()
		repo.On("Add", ctx, mock.Anything).Return(errors.New("connection reset")).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		cmd, err := commands.NewCreateOrderCommand(order.Takeout, nil, "", "", "", staffID)
		require.NoError(t, err)

		handler := commands.NewCreateOrderCommandHandler(factory, numberer, testDeps(sink))
		_, err = handler.Handle(ctx, cmd)

		require.EqualError(t, err, "connection reset")
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		sink.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
		uow.AssertExpectations(t)
	})

	t.Run("unconstructed command is rejected", func(t *testing.T) {
		handler := commands.NewCreateOrderCommandHandler(new(MockOrderUoWFactory), new(MockNumberer), testDeps(nil))
		_, err := handler.Handle(t.Context(), commands.CreateOrderCommand{})
		require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
