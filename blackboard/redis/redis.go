// Package redis provides a Redis-backed core.Blackboard implementation.
// All keys are namespaced by instance name so that many agents can safely
// share a single Redis server.
//
// Key pattern: behaviormesh:{instance_name}:key:{schema_key}
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	"github.com/behaviormesh/behaviormesh/core"
	"github.com/behaviormesh/behaviormesh/logging"
)

// ValueKey returns the Redis key for a single blackboard value.
// Pattern: behaviormesh:{instance_name}:key:{schema_key}
func ValueKey(instanceName, key string) string {
	return fmt.Sprintf("behaviormesh:%s:key:%s", instanceName, key)
}

// Store is a Redis-backed blackboard. Values are JSON encoded; only keys the
// schema declares are written, mirroring the in-memory store's validation.
// The store owns its Redis connection and closes it on Destroy.
type Store struct {
	ctx    context.Context
	rdb    *goredis.Client
	name   string
	logger logging.Logger

	mu     sync.RWMutex
	schema *core.Schema
	alive  bool
}

// Options holds overrides passed to New.
type Options struct {
	// Logger used for dropped-write and connectivity diagnostics.
	Logger logging.Logger
}

// New creates a Redis blackboard for the given instance name. ctx is the
// owner context used for all Redis operations: the interface methods carry
// no context of their own because the registry calls them synchronously and
// fire-and-forget. Returns an error if name is empty.
func New(ctx context.Context, redisOpts *goredis.Options, name string, optFns ...func(o *Options)) (*Store, error) {
	if name == "" {
		return nil, fmt.Errorf("instance name cannot be empty")
	}
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Store{
		ctx:    ctx,
		rdb:    goredis.NewClient(redisOpts),
		name:   name,
		logger: opts.Logger,
		alive:  true,
	}, nil
}

// Factory returns a core.BlackboardFactory producing Redis stores sharing
// the given connection options. Construction failures are logged and yield a
// nil store, which the registry treats as a missing blackboard.
func Factory(ctx context.Context, redisOpts *goredis.Options, logger logging.Logger) core.BlackboardFactory {
	return func(name string) core.Blackboard {
		store, err := New(ctx, redisOpts, name, func(o *Options) { o.Logger = logger })
		if err != nil {
			logger.Warn("redis blackboard construction failed", "blackboard", name, "error", err.Error())
			return nil
		}
		return store
	}
}

// Name returns the instance name used to namespace keys.
func (s *Store) Name() string { return s.name }

// Alive reports whether the store has not been destroyed.
func (s *Store) Alive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alive
}

// Ping verifies Redis connectivity. Useful for health checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// InitializeFromSchema verifies connectivity and clears any values a
// previous instance with the same name left behind. Reports false on a nil
// schema or when Redis is unreachable.
func (s *Store) InitializeFromSchema(schema *core.Schema) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.alive || schema == nil {
		return false
	}
	if err := s.rdb.Ping(s.ctx).Err(); err != nil {
		s.logger.Warn("redis blackboard unreachable", "blackboard", s.name, "error", err.Error())
		return false
	}
	for _, k := range schema.Keys {
		if err := s.rdb.Del(s.ctx, ValueKey(s.name, k.Name)).Err(); err != nil {
			s.logger.Warn("redis blackboard init failed to clear key", "blackboard", s.name, "key", k.Name, "error", err.Error())
			return false
		}
	}
	s.schema = schema
	return true
}

// SetValue JSON-encodes and stores a value under a declared key. Writes to
// undeclared keys, type-mismatched values, or a destroyed store are dropped
// with a diagnostic; Redis errors are logged, not returned.
func (s *Store) SetValue(key string, value any) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.alive || s.schema == nil {
		s.logger.Warn("blackboard write dropped, store not initialized", "blackboard", s.name, "key", key)
		return
	}
	def, ok := s.schema.Key(key)
	if !ok {
		s.logger.Warn("blackboard write dropped, key not in schema", "blackboard", s.name, "key", key)
		return
	}
	if !def.Type.Accepts(value) {
		s.logger.Warn("blackboard write dropped, value type not accepted", "blackboard", s.name, "key", key, "key_type", def.Type.String())
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("blackboard write dropped, value not serializable", "blackboard", s.name, "key", key, "error", err.Error())
		return
	}
	if err := s.rdb.Set(s.ctx, ValueKey(s.name, key), payload, 0).Err(); err != nil {
		s.logger.Warn("blackboard write failed", "blackboard", s.name, "key", key, "error", err.Error())
	}
}

// GetValue returns the stored value for key, if any. JSON numbers decode as
// float64 and integer schema keys are narrowed back to int.
func (s *Store) GetValue(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.alive || s.schema == nil {
		return nil, false
	}
	payload, err := s.rdb.Get(s.ctx, ValueKey(s.name, key)).Result()
	if err == goredis.Nil {
		return nil, false
	}
	if err != nil {
		s.logger.Warn("blackboard read failed", "blackboard", s.name, "key", key, "error", err.Error())
		return nil, false
	}
	var value any
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		s.logger.Warn("blackboard read failed, payload not decodable", "blackboard", s.name, "key", key, "error", err.Error())
		return nil, false
	}
	if def, ok := s.schema.Key(key); ok && def.Type == core.KeyTypeInt {
		if f, ok := value.(float64); ok {
			value = int(f)
		}
	}
	return value, true
}

// Destroy deletes the instance's keys, closes the connection and marks the
// store dead. Safe to call more than once.
func (s *Store) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.alive {
		return
	}
	if s.schema != nil {
		for _, k := range s.schema.Keys {
			if err := s.rdb.Del(s.ctx, ValueKey(s.name, k.Name)).Err(); err != nil {
				s.logger.Warn("redis blackboard teardown failed to delete key", "blackboard", s.name, "key", k.Name, "error", err.Error())
			}
		}
	}
	if err := s.rdb.Close(); err != nil {
		s.logger.Warn("redis blackboard close failed", "blackboard", s.name, "error", err.Error())
	}
	s.alive = false
	s.schema = nil
}
