package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	httpadapter "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/auditlog"
	"restaurant/internal/adapters/out/memory"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/adapters/out/postgres/counterrepo"
	"restaurant/internal/adapters/out/postgres/menurepo"
	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/rabbitmq"
	redisadapter "restaurant/internal/adapters/out/redis"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
	"restaurant/internal/generated/servers"
	"restaurant/internal/jobs"
	"restaurant/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// CompositionRoot owns the adapters selected by Config and builds the use
// case handlers on top of them.
type CompositionRoot struct {
	cfg      Config
	logger   *slog.Logger
	metrics  *metrics.Metrics
	calendar kernel.Calendar

	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	reader     ports.OrderReader
	numberer   ports.OrderNumberer
	pruner     ports.CounterPruner
	prices     ports.PriceLookup
	auditSink  ports.AuditSink

	closers []func() error
}

// NewCompositionRoot connects the configured backends. On error everything
// opened so far is closed again.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (_ *CompositionRoot, err error) {
	c := &CompositionRoot{
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics.New(),
		calendar: kernel.NewCalendar(cfg.Location(), time.Now),
	}
	defer func() {
		if err != nil {
			_ = c.Close()
		}
	}()

	if cfg.NeedsDatabase() {
		if err = c.openDatabase(); err != nil {
			return nil, err
		}
	}
	if err = c.setupStorage(); err != nil {
		return nil, err
	}
	if err = c.setupNumbering(ctx); err != nil {
		return nil, err
	}
	if err = c.setupAudit(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *CompositionRoot) openDatabase() error {
	db, err := gorm.Open(gormpostgres.Open(c.cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	c.closers = append(c.closers, sqlDB.Close)

	if err = postgres.Migrate(db); err != nil {
		return err
	}
	c.gormDB = db
	return nil
}

func (c *CompositionRoot) setupStorage() error {
	switch c.cfg.StorageDriver {
	case DriverPostgres:
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(c.gormDB)
		c.reader = orderrepo.NewGormOrderReader(c.gormDB)
		c.prices = menurepo.NewGormPriceLookup(c.gormDB)
	case DriverMemory:
		store := memory.NewOrderStore()
		c.uowFactory = memory.NewUnitOfWorkFactory(store)
		c.reader = store

		prices := memory.NewPriceTable()
		if c.cfg.MenuSeedFile != "" {
			if err := loadMenuSeed(prices, c.cfg.MenuSeedFile); err != nil {
				return err
			}
		}
		c.prices = prices
		c.logger.Warn("Orders are kept in memory and lost on restart")
	default:
		return fmt.Errorf("unknown storage driver %q", c.cfg.StorageDriver)
	}
	return nil
}

func loadMenuSeed(prices *memory.PriceTable, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open menu seed: %w", err)
	}
	defer f.Close()

	if _, err = prices.LoadDaily(f); err != nil {
		return err
	}
	return nil
}

func (c *CompositionRoot) setupNumbering(ctx context.Context) error {
	switch c.cfg.NumberingDriver {
	case DriverPostgres:
		counter := counterrepo.NewGormCounter(c.gormDB, c.metrics)
		c.numberer = counter
		c.pruner = counter
	case DriverRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     c.cfg.RedisAddr,
			Password: c.cfg.RedisPassword,
			DB:       c.cfg.RedisDB,
		})
		c.closers = append(c.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		c.numberer = redisadapter.NewNumberer(client, redisadapter.DefaultTTL, c.metrics)
	case DriverMemory:
		numberer := memory.NewNumberer(c.metrics)
		c.numberer = numberer
		c.pruner = numberer
	default:
		return fmt.Errorf("unknown numbering driver %q", c.cfg.NumberingDriver)
	}
	return nil
}

func (c *CompositionRoot) setupAudit() error {
	if c.cfg.AMQPURL == "" {
		c.auditSink = auditlog.NewSlogSink(c.logger)
		return nil
	}

	publisher, err := rabbitmq.Dial(c.cfg.AMQPURL, c.cfg.AuditExchange)
	if err != nil {
		return fmt.Errorf("connect to rabbitmq: %w", err)
	}
	c.closers = append(c.closers, publisher.Close)
	c.auditSink = publisher
	return nil
}

// Close releases every connection in reverse order of opening.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errList = append(errList, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errList...)
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) dependencies() commands.Dependencies {
	return commands.Dependencies{
		Calendar:  c.calendar,
		AuditSink: c.auditSink,
		Logger:    c.logger,
		Metrics:   c.metrics,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.numberer, c.dependencies())
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory(), c.dependencies())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory(), c.dependencies())
}

func (c *CompositionRoot) CreateAddLineCommandHandler() commands.AddLineCommandHandler {
	return commands.NewAddLineCommandHandler(c.orderUoWFactory(), c.prices, c.dependencies())
}

func (c *CompositionRoot) CreateUpdateLineCommandHandler() commands.UpdateLineCommandHandler {
	return commands.NewUpdateLineCommandHandler(c.orderUoWFactory(), c.dependencies())
}

func (c *CompositionRoot) CreateRemoveLineCommandHandler() commands.RemoveLineCommandHandler {
	return commands.NewRemoveLineCommandHandler(c.orderUoWFactory(), c.dependencies())
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.orderUoWFactory(), c.dependencies())
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.orderUoWFactory(), c.dependencies())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.dependencies())
}

func (c *CompositionRoot) CreatePayOrderCommandHandler() commands.PayOrderCommandHandler {
	return commands.NewPayOrderCommandHandler(c.orderUoWFactory(), c.dependencies())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateListPaymentsQueryHandler() queries.ListPaymentsQueryHandler {
	return queries.NewListPaymentsQueryHandler(c.reader)
}

// CreateRouter wires every handler into the echo instance.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	spec, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:  c.CreateCreateOrderCommandHandler(),
		UpdateOrder:  c.CreateUpdateOrderCommandHandler(),
		DeleteOrder:  c.CreateDeleteOrderCommandHandler(),
		AddLine:      c.CreateAddLineCommandHandler(),
		UpdateLine:   c.CreateUpdateLineCommandHandler(),
		RemoveLine:   c.CreateRemoveLineCommandHandler(),
		SubmitOrder:  c.CreateSubmitOrderCommandHandler(),
		ConfirmOrder: c.CreateConfirmOrderCommandHandler(),
		CancelOrder:  c.CreateCancelOrderCommandHandler(),
		PayOrder:     c.CreatePayOrderCommandHandler(),
		GetOrder:     c.CreateGetOrderQueryHandler(),
		ListOrders:   c.CreateListOrdersQueryHandler(),
		ListPayments: c.CreateListPaymentsQueryHandler(),
	}, c.logger)

	return httpadapter.NewRouter(server, httpadapter.RouterConfig{
		JWTSecret: []byte(c.cfg.JWTSecret),
		Metrics:   c.metrics,
		Spec:      spec,
		Logger:    c.logger,
	}), nil
}

// CreateJobManager schedules counter pruning for backends that keep counters
// forever.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var scheduled []jobs.Job
	if c.pruner != nil {
		scheduled = append(scheduled, jobs.NewCounterPruneJob(
			c.pruner,
			c.calendar,
			c.cfg.CounterRetentionDays,
			c.cfg.CounterPruneSchedule,
			c.metrics,
			c.logger,
		))
	}
	return jobs.NewJobManager(scheduled...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
