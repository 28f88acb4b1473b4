package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"cex-intake/biz/store"
)

// fakeStore 内存版存储网关，Batch 语义与线上一致：Commit 前无任何可见写入
type fakeStore struct {
	mu         sync.Mutex
	kv         map[string]string
	hashes     map[string]map[string]string
	zsets      map[string]map[string]float64
	failCommit bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		kv:     make(map[string]string),
		hashes: make(map[string]map[string]string),
		zsets:  make(map[string]map[string]float64),
	}
}

func (s *fakeStore) setFailCommit(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCommit = fail
}

func (s *fakeStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv[key], nil
}

func (s *fakeStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kv[key] = value
	return nil
}

func (s *fakeStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hset(key, fields)
	return nil
}

func (s *fakeStore) hset(key string, fields map[string]string) {
	h, ok := s.hashes[key]
	if !ok {
		h = make(map[string]string)
		s.hashes[key] = h
	}
	for f, v := range fields {
		h[f] = v
	}
}

func (s *fakeStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.hashes[key]))
	for f, v := range s.hashes[key] {
		out[f] = v
	}
	return out, nil
}

func (s *fakeStore) ZAdd(ctx context.Context, key, member string, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zadd(key, member, score)
	return nil
}

func (s *fakeStore) zadd(key, member string, score float64) {
	z, ok := s.zsets[key]
	if !ok {
		z = make(map[string]float64)
		s.zsets[key] = z
	}
	z[member] = score
}

func (s *fakeStore) ZRangeByScore(ctx context.Context, key string, min, max float64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	type entry struct {
		member string
		score  float64
	}
	var entries []entry
	for member, score := range s.zsets[key] {
		if score >= min && score <= max {
			entries = append(entries, entry{member, score})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score < entries[j].score
		}
		return entries[i].member < entries[j].member
	})
	members := make([]string, 0, len(entries))
	for _, e := range entries {
		members = append(members, e.member)
	}
	return members
}

func (s *fakeStore) BeginBatch() store.Batch {
	return &fakeBatch{store: s}
}

type zaddOp struct {
	key    string
	member string
	score  float64
}

type hsetOp struct {
	key    string
	fields map[string]string
}

type fakeBatch struct {
	store *fakeStore
	zadds []zaddOp
	hsets []hsetOp
}

func (b *fakeBatch) ZAdd(key, member string, score float64) {
	b.zadds = append(b.zadds, zaddOp{key, member, score})
}

func (b *fakeBatch) HSet(key string, fields map[string]string) {
	b.hsets = append(b.hsets, hsetOp{key, fields})
}

func (b *fakeBatch) Commit(ctx context.Context) error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	if b.store.failCommit {
		return fmt.Errorf("%w: EXEC: connection refused", store.ErrStoreUnavailable)
	}
	for _, op := range b.zadds {
		b.store.zadd(op.key, op.member, op.score)
	}
	for _, op := range b.hsets {
		b.store.hset(op.key, op.fields)
	}
	return nil
}
