package rules

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
	"github.com/KirkDiggler/configurator-api/internal/errors"
	redisclient "github.com/KirkDiggler/configurator-api/internal/redis"
)

const (
	productKeyPrefix = "catalog:product:"
	rulesKeyPrefix   = "catalog:rules:"
	productIndexKey  = "catalog:products"

	// Error messages
	errProductIDEmpty = "product ID cannot be empty"
	errProductNil     = "product cannot be nil"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis rules repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed rules repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) GetProduct(ctx context.Context, input GetProductInput) (*GetProductOutput, error) {
	if input.ProductID == "" {
		return nil, errors.InvalidArgument(errProductIDEmpty)
	}

	var product catalog.Product
	if err := r.getJSON(ctx, productKeyPrefix+input.ProductID, &product); err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NotFoundf("product %s not found", input.ProductID)
		}
		return nil, errors.Wrapf(err, "failed to get product %s", input.ProductID)
	}

	return &GetProductOutput{Product: &product}, nil
}

func (r *redisRepository) GetRules(ctx context.Context, input GetRulesInput) (*GetRulesOutput, error) {
	if input.ProductID == "" {
		return nil, errors.InvalidArgument(errProductIDEmpty)
	}

	var rules catalog.Rules
	if err := r.getJSON(ctx, rulesKeyPrefix+input.ProductID, &rules); err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NotFoundf("rules for product %s not found", input.ProductID)
		}
		return nil, errors.Wrapf(err, "failed to get rules for product %s", input.ProductID)
	}

	return &GetRulesOutput{Rules: &rules}, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if err := validatePut(input); err != nil {
		return nil, err
	}

	productData, err := json.Marshal(input.Product)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal product")
	}
	rulesData, err := json.Marshal(input.Rules)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal rules")
	}

	id := input.Product.ID
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, productKeyPrefix+id, productData, 0)
	pipe.Set(ctx, rulesKeyPrefix+id, rulesData, 0)
	pipe.SAdd(ctx, productIndexKey, id)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store product "+id)
	}

	slog.DebugContext(ctx, "stored product rules",
		"product_id", id,
		"groups", len(input.Rules.Groups))

	return &PutOutput{Product: input.Product}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ProductID == "" {
		return nil, errors.InvalidArgument(errProductIDEmpty)
	}

	productKey := productKeyPrefix + input.ProductID
	exists, err := r.client.Exists(ctx, productKey).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to check product existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("product %s not found", input.ProductID)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, productKey, rulesKeyPrefix+input.ProductID)
	pipe.SRem(ctx, productIndexKey, input.ProductID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to delete product "+input.ProductID)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListProducts(ctx context.Context, _ ListProductsInput) (*ListProductsOutput, error) {
	ids, err := r.client.SMembers(ctx, productIndexKey).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list products")
	}
	sort.Strings(ids)

	products := make([]*catalog.Product, 0, len(ids))
	for _, id := range ids {
		out, err := r.GetProduct(ctx, GetProductInput{ProductID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				// index entry outlived the product
				slog.WarnContext(ctx, "product index references missing product", "product_id", id)
				continue
			}
			return nil, err
		}
		products = append(products, out.Product)
	}

	return &ListProductsOutput{Products: products}, nil
}

func (r *redisRepository) getJSON(ctx context.Context, key string, dest interface{}) error {
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return errors.NotFound("key not found")
		}
		return errors.WrapWithCode(err, errors.CodeUnavailable, "redis get failed")
	}

	if err := json.Unmarshal([]byte(result), dest); err != nil {
		return errors.Wrapf(err, "failed to unmarshal %s", key)
	}
	return nil
}

func validatePut(input PutInput) error {
	if input.Product == nil {
		return errors.InvalidArgument(errProductNil)
	}
	if err := input.Product.Validate(); err != nil {
		return errors.Wrap(err, "invalid product")
	}
	if input.Rules == nil {
		return errors.InvalidArgumentf("rules for product %s cannot be nil", input.Product.ID)
	}
	if err := input.Rules.Validate(); err != nil {
		return errors.Wrapf(err, "invalid rules for product %s", input.Product.ID)
	}
	return nil
}
