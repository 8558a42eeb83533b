// Package publish forwards battle signals to Redis.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/udisondev/herobattle/internal/game/battle"
)

const (
	DefaultChannel       = "battles:results"
	DefaultReportTTL     = 24 * time.Hour
	DefaultSnapshotEvery = 250 * time.Millisecond
	cooldownKeyFormat    = "battle:%s:cooldowns"
	reportKeyFormat      = "battle:%s:report"
)

// Config configures a RedisPublisher.
type Config struct {
	Client  redis.UniversalClient
	Channel string
	// ReportTTL bounds how long reports and cooldown hashes live.
	ReportTTL time.Duration
	// SnapshotEvery throttles cooldown writes, measured on the battle clock.
	SnapshotEvery time.Duration
}

// RedisPublisher implements battle.Listener. Cooldown snapshots go to a hash
// per battle; the final result is stored with a TTL and published on a
// channel. Write failures are logged and kept in Err; they never reach
// the battle loop.
type RedisPublisher struct {
	ctx     context.Context
	client  redis.UniversalClient
	channel string
	ttl     time.Duration
	every   float64

	mu       sync.Mutex
	lastSnap map[string]float64
	err      error
}

// NewRedisPublisher creates a publisher bound to ctx.
func NewRedisPublisher(ctx context.Context, cfg *Config) (*RedisPublisher, error) {
	if cfg == nil {
		return nil, errors.New("publisher config is required")
	}
	if cfg.Client == nil {
		return nil, errors.New("redis client is required")
	}
	p := &RedisPublisher{
		ctx:      ctx,
		client:   cfg.Client,
		channel:  cfg.Channel,
		ttl:      cfg.ReportTTL,
		every:    float64(cfg.SnapshotEvery) / float64(time.Millisecond),
		lastSnap: make(map[string]float64),
	}
	if p.channel == "" {
		p.channel = DefaultChannel
	}
	if p.ttl <= 0 {
		p.ttl = DefaultReportTTL
	}
	if cfg.SnapshotEvery == 0 {
		p.every = float64(DefaultSnapshotEvery) / float64(time.Millisecond)
	}
	return p, nil
}

// Channel returns the results channel name.
func (p *RedisPublisher) Channel() string { return p.channel }

// Err returns the last write failure, if any.
func (p *RedisPublisher) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// CooldownKey is the hash holding a battle's player cooldowns.
func CooldownKey(id fmt.Stringer) string { return fmt.Sprintf(cooldownKeyFormat, id) }

// ReportKey is the key holding a battle's final result.
func ReportKey(id fmt.Stringer) string { return fmt.Sprintf(reportKeyFormat, id) }

func (p *RedisPublisher) OnTick(s battle.Snapshot) {
	if len(s.Cooldowns) == 0 {
		return
	}
	id := s.BattleID.String()

	p.mu.Lock()
	last, seen := p.lastSnap[id]
	if seen && s.Now-last < p.every {
		p.mu.Unlock()
		return
	}
	p.lastSnap[id] = s.Now
	p.mu.Unlock()

	fields := make(map[string]any, len(s.Cooldowns))
	for ability, ms := range s.Cooldowns {
		fields[ability] = math.Max(0, math.Round(ms))
	}

	key := CooldownKey(s.BattleID)
	pipe := p.client.TxPipeline()
	pipe.HSet(p.ctx, key, fields)
	pipe.Expire(p.ctx, key, p.ttl)
	if _, err := pipe.Exec(p.ctx); err != nil {
		p.fail(fmt.Errorf("writing cooldowns of %s: %w", id, err))
	}
}

func (p *RedisPublisher) OnEnd(r battle.Result) {
	p.mu.Lock()
	delete(p.lastSnap, r.BattleID.String())
	p.mu.Unlock()

	payload, err := json.Marshal(r)
	if err != nil {
		p.fail(fmt.Errorf("encoding result %s: %w", r.BattleID, err))
		return
	}

	pipe := p.client.TxPipeline()
	pipe.Set(p.ctx, ReportKey(r.BattleID), payload, p.ttl)
	pipe.Publish(p.ctx, p.channel, payload)
	if _, err := pipe.Exec(p.ctx); err != nil {
		p.fail(fmt.Errorf("publishing result %s: %w", r.BattleID, err))
		return
	}
	slog.Debug("battle result published", "battle", r.BattleID, "channel", p.channel)
}

func (p *RedisPublisher) fail(err error) {
	slog.Warn("redis publish failed", "error", err)
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}
