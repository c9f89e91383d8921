package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const snapshotKeyPrefix = "trip:snapshot:"

// RedisSnapshotStore keeps trip snapshots under trip:snapshot:<id>.
// A positive TTL expires snapshots that have not been saved for that long.
type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisSnapshotStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSnapshotStore{client: client, ttl: ttl, logger: logger}
}

// NewRedisClient connects to addr and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return client, nil
}

func snapshotKey(id string) string {
	return snapshotKeyPrefix + id
}

func (r *RedisSnapshotStore) Load(ctx context.Context, id string) (_ *domain.TripPlan, err error) {
	defer obs.Time(ctx, "snapshot.redis.Load")(&err)

	if strings.TrimSpace(id) == "" {
		return nil, errors.New("load snapshot: id must not be empty")
	}

	val, err := r.client.Get(ctx, snapshotKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", id, err)
	}

	plan, err := domain.DecodeSnapshot(val)
	if errors.Is(err, domain.ErrSnapshotMalformed) {
		r.logger.Warn("snapshot malformed, using defaults", zap.String("trip_id", id), zap.Error(err))
		return plan, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", id, err)
	}
	return plan, nil
}

func (r *RedisSnapshotStore) Save(ctx context.Context, id string, plan *domain.TripPlan) (err error) {
	defer obs.Time(ctx, "snapshot.redis.Save")(&err)

	if strings.TrimSpace(id) == "" {
		return errors.New("save snapshot: id must not be empty")
	}

	payload, err := domain.EncodeSnapshot(plan)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", id, err)
	}

	if err := r.client.Set(ctx, snapshotKey(id), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("save snapshot %q: %w", id, err)
	}

	r.logger.Debug("snapshot saved", zap.String("trip_id", id), zap.Duration("ttl", r.ttl))
	return nil
}

func (r *RedisSnapshotStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, snapshotKey(id)).Err(); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", id, err)
	}
	return nil
}

// Health pings the redis server.
func (r *RedisSnapshotStore) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
