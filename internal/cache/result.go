// Package cache provides internal cache management.
// This package is internal and should not be imported by external projects.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"hash"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/BaSui01/modality/config"
	"github.com/BaSui01/modality/types"
)

// =============================================================================
// 💾 转换结果缓存
// =============================================================================

// ErrCacheMiss 缓存未命中错误
var ErrCacheMiss = errors.New("cache miss")

// ErrClosed is returned by every operation after Close.
var ErrClosed = errors.New("result cache is closed")

// IsCacheMiss 判断是否为缓存未命中错误
func IsCacheMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}

// ResultCache stores ConversionResult values in Redis keyed by the
// conversion inputs and a caller-supplied scope. The scope names the handler
// set that produced the result; a different scope never sees the entry.
type ResultCache struct {
	redis  *redis.Client
	ttl    time.Duration
	prefix string
	logger *zap.Logger
	mu     sync.RWMutex
	closed bool
}

// New 创建结果缓存并测试连接
func New(cfg config.CacheConfig, logger *zap.Logger) (*ResultCache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	c := &ResultCache{
		redis:  client,
		ttl:    cfg.TTL,
		prefix: cfg.KeyPrefix,
		logger: logger.With(zap.String("component", "cache")),
	}

	c.logger.Info("result cache initialized",
		zap.String("addr", cfg.Addr),
		zap.Duration("ttl", cfg.TTL),
	)

	return c, nil
}

// Key derives the cache key of converting in to target under scope.
func (c *ResultCache) Key(in types.Input, target types.Modality, scope string) string {
	h := sha256.New()
	writeField(h, []byte(scope))
	writeField(h, []byte(in.Modality))
	writeField(h, []byte(target))
	writeField(h, []byte(in.MimeType))
	if in.Content.IsBytes() {
		writeField(h, []byte{'b'})
		writeField(h, in.Content.Bytes())
	} else {
		writeField(h, []byte{'t'})
		writeField(h, []byte(in.Content.Text()))
	}
	return c.prefix + hex.EncodeToString(h.Sum(nil))
}

// writeField length-prefixes b so adjacent fields cannot collide.
func writeField(h hash.Hash, b []byte) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(b)))
	h.Write(n[:])
	h.Write(b)
}

// =============================================================================
// 🎯 核心方法
// =============================================================================

// Lookup 查找缓存的转换结果，未命中返回 ErrCacheMiss
func (c *ResultCache) Lookup(ctx context.Context, in types.Input, target types.Modality, scope string) (types.ConversionResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return types.ConversionResult{}, ErrClosed
	}

	key := c.Key(in, target, scope)
	val, err := c.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return types.ConversionResult{}, ErrCacheMiss
	}
	if err != nil {
		return types.ConversionResult{}, fmt.Errorf("cache get failed: %w", err)
	}

	var result types.ConversionResult
	if err := json.Unmarshal(val, &result); err != nil {
		return types.ConversionResult{}, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	if err := result.Validate(); err != nil {
		return types.ConversionResult{}, fmt.Errorf("invalid cache value: %w", err)
	}

	return result, nil
}

// Store 写入转换结果
func (c *ResultCache) Store(ctx context.Context, in types.Input, target types.Modality, scope string, result types.ConversionResult) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClosed
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err := c.redis.Set(ctx, c.Key(in, target, scope), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}

	return nil
}

// Ping 检查 Redis 连接
func (c *ResultCache) Ping(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClosed
	}

	return c.redis.Ping(ctx).Err()
}

// Close 关闭缓存
func (c *ResultCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	c.logger.Info("closing result cache")

	return c.redis.Close()
}
