package commands_test

import (
	"context"
	"testing"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockNumberer struct{ mock.Mock }

func (m *MockNumberer) Next(ctx context.Context, date kernel.BusinessDate) (order.Number, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(order.Number), args.Error(1)
}

type MockPriceLookup struct{ mock.Mock }

func (m *MockPriceLookup) PriceFor(ctx context.Context, menuItemID kernel.UUID, date kernel.BusinessDate) (ports.MenuPrice, error) {
	args := m.Called(ctx, menuItemID, date)
	return args.Get(0).(ports.MenuPrice), args.Error(1)
}

type MockAuditSink struct{ mock.Mock }

func (m *MockAuditSink) Record(ctx context.Context, event ports.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

var (
	fixedNow = time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC)
	staffID  = kernel.NewUUID()
)

func testDeps(sink ports.AuditSink) commands.Dependencies {
	return commands.Dependencies{
		Calendar:  kernel.NewCalendar(time.UTC, func() time.Time { return fixedNow }),
		AuditSink: sink,
	}
}

func testNumber(t *testing.T, seq int) order.Number {
	t.Helper()
	n, err := order.NewNumber(kernel.NewBusinessDate(fixedNow, time.UTC), seq)
	require.NoError(t, err)
	return n
}

// draftWithLines returns a persisted-looking DineIn order at version 3 holding
// item X (2 @ 7000) and item Y (1 @ 3000).
func draftWithLines(t *testing.T) *order.Order {
	t.Helper()
	partySize := 2
	details, err := order.NewDetails(order.DineIn, &partySize, "5", "", "")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), testNumber(t, 1), order.DineIn, details, fixedNow)
	require.NoError(t, err)

	for _, spec := range []struct {
		price string
		qty   int
	}{{"7000", 2}, {"3000", 1}} {
		item := kernel.NewUUID()
		l, lineErr := order.NewLine(kernel.NewUUID(), &item, "Set meal", kernel.MustMoney(spec.price), spec.qty, "")
		require.NoError(t, lineErr)
		require.NoError(t, o.AddLine(l, fixedNow))
	}
	o.MarkCommitted(3)
	return o
}

func confirmedOrder(t *testing.T) *order.Order {
	t.Helper()
	o := draftWithLines(t)
	require.NoError(t, o.Submit(fixedNow))
	require.NoError(t, o.Confirm(fixedNow))
	return o
}

// expectLoad wires factory -> uow -> repo for a load/mutate round trip and
// returns the mocks for further expectations.
func expectLoad(ctx context.Context, o *order.Order) (*MockOrderUoWFactory, *MockOrderUoW, *MockOrderRepository) {
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()

	return factory, uow, repo
}
