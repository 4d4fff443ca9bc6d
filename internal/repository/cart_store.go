package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Lixing-Zhang/foodie-storefront/internal/cart"
)

const (
	cartKeyPrefix = "cart:"
	// maxCartRetries bounds optimistic retries when a watched cart key
	// changes between read and write
	maxCartRetries = 100
)

// ErrCartConflict is returned when a cart update keeps losing to
// concurrent writers
var ErrCartConflict = errors.New("cart modified concurrently")

// CartStore persists visitor carts. Load returns an empty cart for unknown IDs.
// Update applies fn to the current cart and saves the result atomically;
// an error from fn is returned as is and nothing is saved.
type CartStore interface {
	Load(ctx context.Context, id string) (*cart.Cart, error)
	Save(ctx context.Context, c *cart.Cart) error
	Update(ctx context.Context, id string, fn func(*cart.Cart) error) (*cart.Cart, error)
	Delete(ctx context.Context, id string) error
}

// MemoryCartStore keeps carts in process memory
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string]cart.Cart
}

// NewMemoryCartStore creates an empty in-memory store
func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string]cart.Cart)}
}

// Load returns a copy of the stored cart
func (s *MemoryCartStore) Load(ctx context.Context, id string) (*cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyOf(id), nil
}

func (s *MemoryCartStore) copyOf(id string) *cart.Cart {
	c := cart.New(id)
	if stored, ok := s.carts[id]; ok {
		c.Lines = append(c.Lines, stored.Lines...)
	}
	return c
}

// Update runs fn on a copy of the cart while holding the write lock
func (s *MemoryCartStore) Update(ctx context.Context, id string, fn func(*cart.Cart) error) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.copyOf(id)
	if err := fn(c); err != nil {
		return nil, err
	}

	stored := *cart.New(id)
	stored.Lines = append(stored.Lines, c.Lines...)
	s.carts[id] = stored
	return c, nil
}

// Save replaces the stored cart
func (s *MemoryCartStore) Save(ctx context.Context, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *cart.New(c.ID)
	stored.Lines = append(stored.Lines, c.Lines...)
	s.carts[c.ID] = stored
	return nil
}

// Delete drops the cart
func (s *MemoryCartStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, id)
	return nil
}

// RedisCartStore keeps carts as JSON documents with a sliding TTL
type RedisCartStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCartStore creates a store on client; every save refreshes ttl
func NewRedisCartStore(client redis.UniversalClient, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

func cartKey(id string) string {
	return cartKeyPrefix + id
}

// Load fetches and decodes the cart
func (s *RedisCartStore) Load(ctx context.Context, id string) (*cart.Cart, error) {
	return decodeCart(ctx, s.client, id)
}

func decodeCart(ctx context.Context, getter redis.StringCmdable, id string) (*cart.Cart, error) {
	data, err := getter.Get(ctx, cartKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.New(id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", id, err)
	}

	c := cart.New(id)
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", id, err)
	}
	c.ID = id
	return c, nil
}

// Save encodes the cart and resets its expiry
func (s *RedisCartStore) Save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", c.ID, err)
	}
	if err := s.client.Set(ctx, cartKey(c.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save cart %s: %w", c.ID, err)
	}
	return nil
}

// Update reads the cart under WATCH and writes it back in a MULTI/EXEC
// transaction, retrying when another writer touched the key first
func (s *RedisCartStore) Update(ctx context.Context, id string, fn func(*cart.Cart) error) (*cart.Cart, error) {
	key := cartKey(id)
	var updated *cart.Cart

	txf := func(tx *redis.Tx) error {
		c, err := decodeCart(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}

		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("encode cart %s: %w", id, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = c
		return nil
	}

	for i := 0; i < maxCartRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrCartConflict, id)
}

// Delete removes the cart key
func (s *RedisCartStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, cartKey(id)).Err(); err != nil {
		return fmt.Errorf("delete cart %s: %w", id, err)
	}
	return nil
}
