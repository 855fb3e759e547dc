// Package redis is the Redis numbering authority. Each business date has one
// counter key, incremented atomically and left to expire after the TTL, so no
// prune job is needed.
package redis

import (
	"context"
	_ "embed"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/metrics"

	goredis "github.com/redis/go-redis/v9"
)

const (
	backend    = "redis"
	keyPrefix  = "order_no:"
	DefaultTTL = 48 * time.Hour
)

//go:embed next_sequence.lua
var nextSequenceLua string

var nextSequence = goredis.NewScript(nextSequenceLua)

type Numberer struct {
	client  goredis.Scripter
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewNumberer uses DefaultTTL when ttl is not positive.
func NewNumberer(client goredis.Scripter, ttl time.Duration, m *metrics.Metrics) *Numberer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Numberer{client: client, ttl: ttl, metrics: m}
}

func Key(date kernel.BusinessDate) string {
	return keyPrefix + date.Compact()
}

func (n *Numberer) Next(ctx context.Context, date kernel.BusinessDate) (order.Number, error) {
	seq, err := nextSequence.Run(ctx, n.client, []string{Key(date)}, int64(n.ttl/time.Second)).Int()
	if err != nil {
		return order.Number{}, errs.NewNumberingUnavailableError(date.Compact(), err)
	}

	number, err := order.NewNumber(date, seq)
	if err != nil {
		return order.Number{}, errs.NewNumberingUnavailableError(date.Compact(), err)
	}

	n.metrics.NumberIssued(backend)
	return number, nil
}
