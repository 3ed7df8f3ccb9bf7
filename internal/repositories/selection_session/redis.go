package selectionsession

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/configurator-api/internal/errors"
	"github.com/KirkDiggler/configurator-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/configurator-api/internal/redis"
)

const (
	// Key pattern: selection_session:{session_id}
	sessionKeyPrefix = "selection_session:"

	// DefaultTTL is how long an untouched session lives
	DefaultTTL = 30 * time.Minute

	// Error messages
	errSessionNil      = "session cannot be nil"
	errSessionIDEmpty  = "session ID cannot be empty"
	errProductIDEmpty  = "product ID cannot be empty"
	errSessionNotFound = "selection session not found"
	errSessionExpired  = "selection session has expired"
	errSessionChanged  = "selection session %s is at version %d, update was based on %d"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for selection sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateSession(input.Session); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	ttl := ttlOrDefault(input.TTL)

	session := *input.Session
	session.State = session.State.Clone()
	session.CreatedAt = now
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(ttl)
	session.Version = 1

	data, err := json.Marshal(&session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	created, err := r.client.SetNX(ctx, sessionKey(session.ID), data, ttl).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store session in Redis")
	}
	if !created {
		return nil, errors.Newf(errors.CodeAlreadyExists, "selection session %s already exists", session.ID)
	}

	return &CreateOutput{Session: &session}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	key := sessionKey(input.SessionID)
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFound(errSessionNotFound).WithMeta("session_id", input.SessionID)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get session from Redis")
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session")
	}

	// the stored deadline wins over Redis expiry
	if !r.clock.Now().Before(session.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFound(errSessionExpired).WithMeta("session_id", input.SessionID)
	}

	return &GetOutput{Session: &session}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateSession(input.Session); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	if !now.Before(input.Session.ExpiresAt) {
		return nil, errors.NotFound(errSessionExpired).WithMeta("session_id", input.Session.ID)
	}

	ttl := ttlOrDefault(input.TTL)
	session := *input.Session
	session.State = session.State.Clone()
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(ttl)
	session.Version = input.Session.Version + 1

	data, err := json.Marshal(&session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	key := sessionKey(session.ID)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if err == redisclient.Nil {
				return errors.NotFound(errSessionNotFound).WithMeta("session_id", session.ID)
			}
			return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read session from Redis")
		}

		var current Session
		if err := json.Unmarshal(stored, &current); err != nil {
			return errors.Wrapf(err, "failed to unmarshal session")
		}
		if current.Version != input.Session.Version {
			return errors.Abortedf(errSessionChanged, session.ID, current.Version, input.Session.Version).
				WithMeta("session_id", session.ID)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, ttl)
			return nil
		})
		return err
	}, key)
	if err != nil {
		if err == redis.TxFailedErr {
			return nil, errors.Abortedf("selection session %s changed during update", session.ID).
				WithMeta("session_id", session.ID)
		}
		var coded *errors.Error
		if errors.As(err, &coded) {
			return nil, coded
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to update session in Redis")
	}

	return &UpdateOutput{Session: &session}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	deleted, err := r.client.Del(ctx, sessionKey(input.SessionID)).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to delete session from Redis")
	}
	if deleted == 0 {
		return nil, errors.NotFound(errSessionNotFound).WithMeta("session_id", input.SessionID)
	}

	return &DeleteOutput{}, nil
}

func validateSession(session *Session) error {
	if session == nil {
		return errors.InvalidArgument(errSessionNil)
	}
	if session.ID == "" {
		return errors.InvalidArgument(errSessionIDEmpty)
	}
	if session.ProductID == "" {
		return errors.InvalidArgument(errProductIDEmpty)
	}
	return nil
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}
