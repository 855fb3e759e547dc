package redis_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	redisadapter "restaurant/internal/adapters/out/redis"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"
)

type NumbererIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *goredis.Client
	numberer  *redisadapter.Numberer
}

var day = kernel.NewBusinessDate(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), time.UTC)

func (suite *NumbererIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	suite.client = goredis.NewClient(&goredis.Options{Addr: endpoint})
	suite.Require().NoError(suite.client.Ping(ctx).Err())
	suite.numberer = redisadapter.NewNumberer(suite.client, time.Hour, nil)
}

func (suite *NumbererIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushDB(context.Background()).Err())
}

func (suite *NumbererIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		_ = suite.client.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *NumbererIntegrationTestSuite) TestSequenceAndExpiry() {
	ctx := context.Background()

	first, err := suite.numberer.Next(ctx, day)
	suite.Require().NoError(err)
	second, err := suite.numberer.Next(ctx, day)
	suite.Require().NoError(err)

	suite.Equal("20250310-0001", first.String())
	suite.Equal("20250310-0002", second.String())

	ttl, err := suite.client.TTL(ctx, redisadapter.Key(day)).Result()
	suite.Require().NoError(err)
	suite.Greater(ttl, time.Duration(0))
	suite.LessOrEqual(ttl, time.Hour)
}

func (suite *NumbererIntegrationTestSuite) TestConcurrentCallersGetDenseDistinctNumbers() {
	const callers = 50

	var mu sync.Mutex
	seqs := make([]int, 0, callers)

	g, ctx := errgroup.WithContext(context.Background())
	for range callers {
		g.Go(func() error {
			n, err := suite.numberer.Next(ctx, day)
			if err != nil {
				return err
			}
			mu.Lock()
			seqs = append(seqs, n.Sequence())
			mu.Unlock()
			return nil
		})
	}
	suite.Require().NoError(g.Wait())

	sort.Ints(seqs)
	for i, seq := range seqs {
		suite.Equal(i+1, seq)
	}
}

func (suite *NumbererIntegrationTestSuite) TestExhaustedDayIsUnavailable() {
	ctx := context.Background()
	suite.Require().NoError(suite.client.Set(ctx, redisadapter.Key(day), order.MaxSequence, time.Hour).Err())

	_, err := suite.numberer.Next(ctx, day)
	suite.Require().ErrorIs(err, errs.ErrNumberingUnavailable)
}

func (suite *NumbererIntegrationTestSuite) TestUnreachableServer() {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	_, err := redisadapter.NewNumberer(client, time.Hour, nil).Next(context.Background(), day)
	suite.Require().ErrorIs(err, errs.ErrNumberingUnavailable)
}

func TestNumbererIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(NumbererIntegrationTestSuite))
}
