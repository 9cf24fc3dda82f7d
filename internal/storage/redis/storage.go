package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/expotrack/expotrack/internal/model"
	"github.com/expotrack/expotrack/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Visitor register operations

func (s *Storage) SaveVisitor(ctx context.Context, visitor *model.VisitorIdentity) error {
	data, err := json.Marshal(visitor)
	if err != nil {
		return err
	}

	// Pipeline for atomic record + email index + register order update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, visitorKey(visitor.ID), data, 0)
	pipe.Set(ctx, emailIndexKey(visitor.Email), string(visitor.ID), 0)
	pipe.RPush(ctx, registerListKey(), string(visitor.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetVisitor(ctx context.Context, id model.VisitorID) (*model.VisitorIdentity, error) {
	data, err := s.client.Get(ctx, visitorKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrVisitorNotFound
		}
		return nil, err
	}

	var visitor model.VisitorIdentity
	if err := json.Unmarshal(data, &visitor); err != nil {
		return nil, err
	}
	return &visitor, nil
}

func (s *Storage) GetVisitorByEmail(ctx context.Context, email string) (*model.VisitorIdentity, error) {
	idStr, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrVisitorNotFound
		}
		return nil, err
	}

	return s.GetVisitor(ctx, model.VisitorID(idStr))
}

func (s *Storage) ListVisitors(ctx context.Context) ([]*model.VisitorIdentity, error) {
	ids, err := s.client.LRange(ctx, registerListKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	visitors := make([]*model.VisitorIdentity, 0, len(ids))
	for _, id := range ids {
		visitor, err := s.GetVisitor(ctx, model.VisitorID(id))
		if err != nil {
			if errors.Is(err, model.ErrVisitorNotFound) {
				continue
			}
			return nil, err
		}
		visitors = append(visitors, visitor)
	}
	return visitors, nil
}

// Aggregate record operations

func (s *Storage) SaveAggregate(ctx context.Context, record *model.AggregateRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, aggregateKey(record.VisitorID), data, 0).Err()
}

func (s *Storage) GetAggregate(ctx context.Context, id model.VisitorID) (*model.AggregateRecord, error) {
	data, err := s.client.Get(ctx, aggregateKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAggregateNotFound
		}
		return nil, err
	}

	var record model.AggregateRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
