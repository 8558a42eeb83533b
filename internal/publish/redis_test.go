package publish

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/udisondev/herobattle/internal/game/battle"
)

type PublisherTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	pub       *RedisPublisher
	ctx       context.Context
}

func (s *PublisherTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.miniRedis = mr

	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.ctx = context.Background()

	pub, err := NewRedisPublisher(s.ctx, &Config{
		Client:        s.client,
		Channel:       "test:results",
		ReportTTL:     time.Hour,
		SnapshotEvery: 100 * time.Millisecond,
	})
	s.Require().NoError(err)
	s.pub = pub
}

func (s *PublisherTestSuite) TearDownTest() {
	_ = s.client.Close()
	s.miniRedis.Close()
}

func (s *PublisherTestSuite) TestNewRequiresClient() {
	_, err := NewRedisPublisher(s.ctx, nil)
	s.Error(err)

	_, err = NewRedisPublisher(s.ctx, &Config{})
	s.Error(err)

	p, err := NewRedisPublisher(s.ctx, &Config{Client: s.client})
	s.Require().NoError(err)
	s.Equal(DefaultChannel, p.Channel())
}

func (s *PublisherTestSuite) TestOnTickWritesThrottledCooldowns() {
	id := uuid.New()
	key := CooldownKey(id)

	s.pub.OnTick(battle.Snapshot{BattleID: id, Now: 16, Cooldowns: map[string]float64{"mage_fireball": 11984.4}})
	s.Equal("11984", s.miniRedis.HGet(key, "mage_fireball"))
	s.Equal(time.Hour, s.miniRedis.TTL(key))

	s.pub.OnTick(battle.Snapshot{BattleID: id, Now: 50, Cooldowns: map[string]float64{"mage_fireball": 11950}})
	s.Equal("11984", s.miniRedis.HGet(key, "mage_fireball"), "throttled")

	s.pub.OnTick(battle.Snapshot{BattleID: id, Now: 120, Cooldowns: map[string]float64{"mage_fireball": -3}})
	s.Equal("0", s.miniRedis.HGet(key, "mage_fireball"))
	s.NoError(s.pub.Err())
}

func (s *PublisherTestSuite) TestOnTickSkipsEmptyCooldowns() {
	id := uuid.New()
	s.pub.OnTick(battle.Snapshot{BattleID: id, Now: 16})
	s.False(s.miniRedis.Exists(CooldownKey(id)))
}

func (s *PublisherTestSuite) TestOnEndStoresAndPublishes() {
	sub := s.client.Subscribe(s.ctx, "test:results")
	defer sub.Close()
	_, err := sub.Receive(s.ctx)
	s.Require().NoError(err)

	res := battle.Result{
		BattleID:   uuid.New(),
		Won:        true,
		Biome:      "snow",
		Level:      4,
		DurationMs: 30500,
		Report: battle.Report{
			HeroStats:     map[string]battle.HeroStats{"Mage": {DamageDealt: 900}},
			EnemiesKilled: map[string]battle.Kill{"Ice Wolf": {Emoji: "🐺", Count: 3}},
		},
	}
	s.pub.OnEnd(res)
	s.Require().NoError(s.pub.Err())

	stored, err := s.miniRedis.Get(ReportKey(res.BattleID))
	s.Require().NoError(err)
	var got battle.Result
	s.Require().NoError(json.Unmarshal([]byte(stored), &got))
	s.Equal(res, got)
	s.Equal(time.Hour, s.miniRedis.TTL(ReportKey(res.BattleID)))

	ctx, cancel := context.WithTimeout(s.ctx, 2*time.Second)
	defer cancel()
	msg, err := sub.ReceiveMessage(ctx)
	s.Require().NoError(err)
	s.JSONEq(stored, msg.Payload)
}

func (s *PublisherTestSuite) TestFailuresAreRecorded() {
	s.miniRedis.Close()

	s.pub.OnEnd(battle.Result{BattleID: uuid.New()})
	s.Error(s.pub.Err())
}

func TestPublisherTestSuite(t *testing.T) {
	suite.Run(t, new(PublisherTestSuite))
}
