package memory_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"restaurant/internal/adapters/out/memory"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var (
	now = time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC)
	day = kernel.NewBusinessDate(now, time.UTC)
)

func newOrder(t *testing.T, seq int, at time.Time) *order.Order {
	t.Helper()
	number, err := order.NewNumber(day, seq)
	require.NoError(t, err)
	details, err := order.NewDetails(order.Takeout, nil, "", "", "")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), number, order.Takeout, details, at)
	require.NoError(t, err)
	line, err := order.NewLine(kernel.NewUUID(), nil, "Scallion pancake", kernel.MustMoney("200"), 1, "")
	require.NoError(t, err)
	require.NoError(t, o.AddLine(line, at))
	return o
}

func add(t *testing.T, factory *memory.UnitOfWorkFactory, o *order.Order) {
	t.Helper()
	ctx := t.Context()
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	require.NoError(t, uow.Commit(ctx))
}

func TestUnitOfWork_AddGetUpdate(t *testing.T) {
	ctx := t.Context()
	store := memory.NewOrderStore()
	factory := memory.NewUnitOfWorkFactory(store)
	o := newOrder(t, 1, now)

	add(t, factory, o)
	assert.Equal(t, int64(1), o.Version())

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	require.NoError(t, err)
	require.NoError(t, loaded.Submit(now))
	require.NoError(t, uow.OrderRepository().Update(ctx, loaded))
	require.NoError(t, uow.Commit(ctx))
	assert.Equal(t, int64(2), loaded.Version())

	stored, err := store.GetOrder(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Submitted, stored.Status())
	assert.Equal(t, int64(2), stored.Version())

	// mutating a loaded copy does not leak into the store
	require.NoError(t, stored.Confirm(now))
	again, err := store.GetOrder(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Submitted, again.Status())
}

func TestUnitOfWork_RollbackDiscards(t *testing.T) {
	ctx := t.Context()
	store := memory.NewOrderStore()
	factory := memory.NewUnitOfWorkFactory(store)
	o := newOrder(t, 1, now)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	require.NoError(t, uow.Rollback(ctx))

	_, err := store.GetOrder(ctx, o.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	require.ErrorIs(t, uow.Commit(ctx), memory.ErrNoTransaction)
}

func TestUnitOfWork_StaleWriteRejected(t *testing.T) {
	ctx := t.Context()
	store := memory.NewOrderStore()
	factory := memory.NewUnitOfWorkFactory(store)
	o := newOrder(t, 1, now)
	add(t, factory, o)

	first, second := factory.Create(), factory.Create()
	require.NoError(t, first.Begin(ctx))
	require.NoError(t, second.Begin(ctx))

	a, err := first.OrderRepository().Get(ctx, o.ID())
	require.NoError(t, err)
	b, err := second.OrderRepository().Get(ctx, o.ID())
	require.NoError(t, err)

	require.NoError(t, a.Submit(now))
	require.NoError(t, b.Cancel(now))
	require.NoError(t, first.OrderRepository().Update(ctx, a))
	require.NoError(t, second.OrderRepository().Update(ctx, b))

	require.NoError(t, first.Commit(ctx))
	require.ErrorIs(t, second.Commit(ctx), errs.ErrConcurrentModification)

	stored, err := store.GetOrder(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Submitted, stored.Status())
}

func TestUnitOfWork_ConcurrentCommitsOneWinner(t *testing.T) {
	const writers = 8
	store := memory.NewOrderStore()
	factory := memory.NewUnitOfWorkFactory(store)
	o := newOrder(t, 1, now)
	add(t, factory, o)

	var wins, conflicts atomic.Int32
	var loaded sync.WaitGroup
	loaded.Add(writers)

	g, ctx := errgroup.WithContext(context.Background())
	for range writers {
		g.Go(func() error {
			uow := factory.Create()
			_ = uow.Begin(ctx)
			defer func() { _ = uow.Rollback(ctx) }()

			mine, err := uow.OrderRepository().Get(ctx, o.ID())
			loaded.Done()
			if err != nil {
				return err
			}
			loaded.Wait()

			if err = mine.Submit(now); err != nil {
				return err
			}
			err = uow.OrderRepository().Update(ctx, mine)
			if err == nil {
				err = uow.Commit(ctx)
			}

			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, errs.ErrConcurrentModification):
				conflicts.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(writers-1), conflicts.Load())
}

func TestUnitOfWork_Delete(t *testing.T) {
	ctx := t.Context()
	store := memory.NewOrderStore()
	factory := memory.NewUnitOfWorkFactory(store)
	o := newOrder(t, 1, now)
	add(t, factory, o)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Delete(ctx, o))
	require.NoError(t, uow.Commit(ctx))

	_, err := store.GetOrder(ctx, o.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	uow = factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.ErrorIs(t, uow.OrderRepository().Delete(ctx, o), errs.ErrObjectNotFound)
}

func TestOrderStore_ListOrders(t *testing.T) {
	ctx := t.Context()
	store := memory.NewOrderStore()
	factory := memory.NewUnitOfWorkFactory(store)

	older := newOrder(t, 1, now)
	newer := newOrder(t, 2, now.Add(time.Hour))
	require.NoError(t, newer.Submit(now.Add(time.Hour)))
	add(t, factory, older)
	add(t, factory, newer)

	all, err := store.ListOrders(ctx, ports.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID(), all[0].ID())

	draft := order.Draft
	drafts, err := store.ListOrders(ctx, ports.OrderFilter{Status: &draft})
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, older.ID(), drafts[0].ID())

	from := now.Add(time.Minute)
	recent, err := store.ListOrders(ctx, ports.OrderFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, newer.ID(), recent[0].ID())
}

func TestNumberer(t *testing.T) {
	t.Run("concurrent callers get dense distinct numbers", func(t *testing.T) {
		const callers = 200
		numberer := memory.NewNumberer(nil)

		var mu sync.Mutex
		seqs := make([]int, 0, callers)

		g, ctx := errgroup.WithContext(t.Context())
		for range callers {
			g.Go(func() error {
				n, err := numberer.Next(ctx, day)
				if err != nil {
					return err
				}
				mu.Lock()
				seqs = append(seqs, n.Sequence())
				mu.Unlock()
				return nil
			})
		}
		require.NoError(t, g.Wait())

		sort.Ints(seqs)
		for i, seq := range seqs {
			require.Equal(t, i+1, seq)
		}
	})

	t.Run("sequence restarts per day", func(t *testing.T) {
		numberer := memory.NewNumberer(nil)
		_, err := numberer.Next(t.Context(), day)
		require.NoError(t, err)

		n, err := numberer.Next(t.Context(), day.AddDays(1))
		require.NoError(t, err)
		assert.Equal(t, "20250311-0001", n.String())
	})

	t.Run("exhausted day", func(t *testing.T) {
		numberer := memory.NewNumberer(nil)
		for range order.MaxSequence {
			_, err := numberer.Next(t.Context(), day)
			require.NoError(t, err)
		}

		_, err := numberer.Next(t.Context(), day)
		require.ErrorIs(t, err, errs.ErrNumberingUnavailable)
	})

	t.Run("prune", func(t *testing.T) {
		numberer := memory.NewNumberer(nil)
		for i := range 4 {
			_, err := numberer.Next(t.Context(), day.AddDays(-i))
			require.NoError(t, err)
		}

		pruned, err := numberer.PruneBefore(t.Context(), day.AddDays(-1))
		require.NoError(t, err)
		assert.Equal(t, int64(2), pruned)
	})
}

func TestPriceTable(t *testing.T) {
	ctx := t.Context()
	table := memory.NewPriceTable()
	itemID := kernel.NewUUID()

	_, err := table.PriceFor(ctx, itemID, day)
	require.ErrorIs(t, err, errs.ErrNoPriceAvailable)

	table.PutDaily(ports.MenuPrice{MenuItemID: itemID, Name: "Tea", Price: kernel.MustMoney("30")})
	table.Put(day, ports.MenuPrice{MenuItemID: itemID, Name: "Tea", Price: kernel.MustMoney("25")})

	today, err := table.PriceFor(ctx, itemID, day)
	require.NoError(t, err)
	assert.Equal(t, "25.00", today.Price.String())

	tomorrow, err := table.PriceFor(ctx, itemID, day.AddDays(1))
	require.NoError(t, err)
	assert.Equal(t, "30.00", tomorrow.Price.String())

	n, err := table.LoadDaily(strings.NewReader(`[{"id":"7d1f8a52-3f0e-4c1b-9a55-2b2f0e9c1a11","name":"Rice","price":"15"}]`))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = table.LoadDaily(strings.NewReader(`[{"id":"nope","name":"Rice","price":"15"}]`))
	require.Error(t, err)
}
