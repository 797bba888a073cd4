// Package memory holds process-local stores for development and tests.
package memory

import (
	"hash/fnv"
	"sync"
)

const shardCount = 32

type shard[V any] struct {
	mu    sync.RWMutex
	items map[string]V
}

// shards spreads keys over independently locked maps so that operations on
// different identifiers rarely touch the same mutex.
type shards[V any] [shardCount]*shard[V]

func newShards[V any]() *shards[V] {
	var s shards[V]
	for i := range s {
		s[i] = &shard[V]{items: make(map[string]V)}
	}
	return &s
}

func (s *shards[V]) of(key string) *shard[V] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return s[h.Sum32()%shardCount]
}
