package infrastructure

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// cacheEntry représente une entrée de cache avec expiration
type cacheEntry[V any] struct {
	value      V
	expiration time.Time
}

func (e cacheEntry[V]) expired(now time.Time) bool {
	return now.After(e.expiration)
}

// Cache interface pour l'abstraction du cache
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V, ttl time.Duration)
	Delete(key string)
	Clear()
	Len() int
}

// InMemoryCache implémentation en mémoire du cache avec TTL
type InMemoryCache[V any] struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry[V]
	now     func() time.Time
}

// NewInMemoryCache crée un nouveau cache en mémoire
// Les entrées expirées sont purgées paresseusement par Get.
func NewInMemoryCache[V any]() *InMemoryCache[V] {
	return &InMemoryCache[V]{
		entries: make(map[string]cacheEntry[V]),
		now:     time.Now,
	}
}

// Get récupère une valeur du cache
func (c *InMemoryCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !exists {
		return zero, false
	}
	if entry.expired(c.now()) {
		c.Delete(key)
		return zero, false
	}
	return entry.value, true
}

// Set ajoute ou met à jour une valeur dans le cache
func (c *InMemoryCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry[V]{
		value:      value,
		expiration: c.now().Add(ttl),
	}
}

// Delete supprime une entrée du cache
func (c *InMemoryCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear vide complètement le cache
func (c *InMemoryCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry[V])
}

// Len retourne le nombre d'entrées (expirées comprises tant que non purgées)
func (c *InMemoryCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// ShardedCache cache avec sharding pour réduire la contention
type ShardedCache[V any] struct {
	shards    []*InMemoryCache[V]
	shardMask uint32
}

// NewShardedCache crée un cache avec sharding; shardCount doit être une puissance de 2
func NewShardedCache[V any](shardCount int) *ShardedCache[V] {
	if shardCount <= 0 || (shardCount&(shardCount-1)) != 0 {
		panic("shardCount must be a power of 2")
	}

	shards := make([]*InMemoryCache[V], shardCount)
	for i := 0; i < shardCount; i++ {
		shards[i] = NewInMemoryCache[V]()
	}

	return &ShardedCache[V]{
		shards:    shards,
		shardMask: uint32(shardCount - 1),
	}
}

func (sc *ShardedCache[V]) shard(key string) *InMemoryCache[V] {
	return sc.shards[fnv32(key)&sc.shardMask]
}

// Get récupère une valeur du cache
func (sc *ShardedCache[V]) Get(key string) (V, bool) {
	return sc.shard(key).Get(key)
}

// Set ajoute ou met à jour une valeur dans le cache
func (sc *ShardedCache[V]) Set(key string, value V, ttl time.Duration) {
	sc.shard(key).Set(key, value, ttl)
}

// Delete supprime une entrée du cache
func (sc *ShardedCache[V]) Delete(key string) {
	sc.shard(key).Delete(key)
}

// Clear vide tous les shards
func (sc *ShardedCache[V]) Clear() {
	for _, shard := range sc.shards {
		shard.Clear()
	}
}

// Len retourne le nombre total d'entrées
func (sc *ShardedCache[V]) Len() int {
	total := 0
	for _, shard := range sc.shards {
		total += shard.Len()
	}
	return total
}

// fnv32 calcule un hash FNV-1a 32-bit pour le sharding
func fnv32(key string) uint32 {
	hash := uint32(2166136261)
	const prime32 = uint32(16777619)
	for i := 0; i < len(key); i++ {
		hash ^= uint32(key[i])
		hash *= prime32
	}
	return hash
}

// CacheKeyBuilder aide à construire des clés de cache cohérentes
type CacheKeyBuilder struct {
	b strings.Builder
}

// NewCacheKeyBuilder crée un nouveau builder de clé
func NewCacheKeyBuilder() *CacheKeyBuilder {
	return &CacheKeyBuilder{}
}

// Add ajoute une partie à la clé
func (kb *CacheKeyBuilder) Add(part string) *CacheKeyBuilder {
	if kb.b.Len() > 0 {
		kb.b.WriteByte(':')
	}
	kb.b.WriteString(part)
	return kb
}

// AddInt ajoute un entier à la clé
func (kb *CacheKeyBuilder) AddInt(value int) *CacheKeyBuilder {
	return kb.Add(strconv.Itoa(value))
}

// Build construit la clé finale
func (kb *CacheKeyBuilder) Build() string {
	return kb.b.String()
}
