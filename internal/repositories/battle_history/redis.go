package battlehistory

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/miniature-battle/internal/errors"
	redisclient "github.com/KirkDiggler/miniature-battle/internal/redis"
)

const (
	// Key patterns: battle_history:{battle_id}, battle_history:owner:{owner_id}
	recordKeyPrefix = "battle_history:"
	ownerKeyPrefix  = "battle_history:owner:"

	errBattleIDEmpty = "battle ID cannot be empty"
	errOwnerIDEmpty  = "owner ID cannot be empty"
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a Redis backed history repository.
// Records never expire; owners index their battles by completion time.
func NewRedisRepository(cfg *RedisConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

// Create stores the record and indexes it under each owner
func (r *redisRepository) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateRecord(input.Record); err != nil {
		return nil, err
	}

	record := input.Record
	key := r.recordKey(record.ID)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check battle %s in Redis", record.ID)
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("battle %s already archived", record.ID)
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal battle record")
	}

	score := float64(record.CompletedAt.UnixMilli())
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, recordJSON, 0)
		for _, owner := range record.OwnerIDs() {
			pipe.ZAdd(ctx, r.ownerKey(owner), redis.Z{Score: score, Member: record.ID})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store battle record in Redis")
	}

	return &CreateOutput{Record: record}, nil
}

// Get retrieves a record by battle ID
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.BattleID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	record, err := r.load(ctx, input.BattleID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Record: record}, nil
}

// List returns an owner's records newest first
func (r *redisRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := max(0, input.Offset)

	ownerKey := r.ownerKey(input.OwnerID)
	total, err := r.client.ZCard(ctx, ownerKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to count battles for owner %s", input.OwnerID)
	}

	ids, err := r.client.ZRevRange(ctx, ownerKey, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list battles for owner %s", input.OwnerID)
	}

	records, err := r.loadMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &ListOutput{Records: records, Total: int(total)}, nil
}

// Stats tallies every battle indexed under the owner
func (r *redisRepository) Stats(ctx context.Context, input *StatsInput) (*StatsOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	ids, err := r.client.ZRange(ctx, r.ownerKey(input.OwnerID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list battles for owner %s", input.OwnerID)
	}

	records, err := r.loadMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	stats := &StatsOutput{}
	for _, record := range records {
		tally(stats, record, input.OwnerID)
	}
	return stats, nil
}

// Delete removes a record and its owner index entries
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.BattleID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	record, err := r.load(ctx, input.BattleID)
	if err != nil {
		return nil, err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.recordKey(record.ID))
		for _, owner := range record.OwnerIDs() {
			pipe.ZRem(ctx, r.ownerKey(owner), record.ID)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete battle record from Redis")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) load(ctx context.Context, battleID string) (*BattleRecord, error) {
	recordJSON, err := r.client.Get(ctx, r.recordKey(battleID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("battle %s not found in history", battleID).WithMeta("battle_id", battleID)
		}
		return nil, errors.Wrapf(err, "failed to get battle record from Redis")
	}

	var record BattleRecord
	if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal battle record")
	}

	return &record, nil
}

func (r *redisRepository) loadMany(ctx context.Context, ids []string) ([]*BattleRecord, error) {
	if len(ids) == 0 {
		return []*BattleRecord{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.recordKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get battle records from Redis")
	}

	records := make([]*BattleRecord, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// index entry without a record; skip it
			continue
		}
		var record BattleRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal battle record %s", ids[i])
		}
		records = append(records, &record)
	}

	return records, nil
}

func (r *redisRepository) recordKey(battleID string) string {
	return recordKeyPrefix + battleID
}

func (r *redisRepository) ownerKey(ownerID string) string {
	return fmt.Sprintf("%s%s", ownerKeyPrefix, ownerID)
}
