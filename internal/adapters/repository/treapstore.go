package repository

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/okian/circle/internal/domain/model"
	"github.com/okian/circle/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: score DESC, then arrival ASC (earlier attempts win ties).
// "less" means ranks earlier, so in-order traversal yields the history
// from best to worst. Subtree sizes give ranks in O(log n).

type key struct {
	score int
	seq   uint64
}

// less returns true if a should appear before b.
func less(a, b key) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	return a.seq < b.seq
}

// record stores what an Entry carries besides its rank.
type record struct {
	id      string
	points  int
	message string
}

// treap node
type node struct {
	key   key
	rec   record
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n, fresh *node) *node {
	if n == nil {
		return fresh
	}
	if less(fresh.key, n.key) {
		n.left = insert(n.left, fresh)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, fresh)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, k key) *node {
	if n == nil {
		return nil
	}
	switch {
	case k == n.key:
		// Rotate the higher-priority child up until the node is a leaf.
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, k)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, k)
		}
	case less(k, n.key):
		n.left = deleteNode(n.left, k)
	default:
		n.right = deleteNode(n.right, k)
	}
	fix(n)
	return n
}

// last returns the lowest-ranked node.
func last(n *node) *node {
	for n != nil && n.right != nil {
		n = n.right
	}
	return n
}

// rankOf returns the 1-based position of k, or 0 when absent.
func rankOf(n *node, k key) int {
	rank := 0
	for n != nil {
		switch {
		case k == n.key:
			return rank + nsize(n.left) + 1
		case less(k, n.key):
			n = n.left
		default:
			rank += nsize(n.left) + 1
			n = n.right
		}
	}
	return 0
}

// collectTopN appends up to limit entries in rank order.
func collectTopN(n *node, limit int, out *[]Entry) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectTopN(n.left, limit, out)
	if len(*out) < limit {
		*out = append(*out, entryOf(n, len(*out)+1))
	}
	if len(*out) < limit {
		collectTopN(n.right, limit, out)
	}
}

func entryOf(n *node, rank int) Entry {
	return Entry{
		Rank:      rank,
		Seq:       n.key.seq,
		GestureID: n.rec.id,
		Score:     n.key.score,
		Points:    n.rec.points,
		Message:   n.rec.message,
	}
}

// TreapStore is a size-augmented treap over finished gestures.
type TreapStore struct {
	mu       sync.RWMutex
	root     *node
	byID     map[string]key
	seq      uint64
	capacity int
	rng      *rand.Rand
	metrics  *metrics.Manager
}

// NewTreapStore constructs a treap store with configuration options.
func NewTreapStore(opts ...Option) *TreapStore {
	s := &TreapStore{
		byID:    make(map[string]key),
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec // treap balance only
		metrics: metrics.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Add implements Store.Add with O(log n) expected time.
func (s *TreapStore) Add(_ context.Context, r model.Result) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	k := key{score: r.Score, seq: s.seq}
	if old, ok := s.byID[r.GestureID]; ok {
		s.root = deleteNode(s.root, old)
	}
	n := &node{
		key:  k,
		rec:  record{id: r.GestureID, points: r.Points, message: r.Rating.Message},
		prio: s.rng.Uint64(),
		size: 1,
	}
	s.root = insert(s.root, n)
	s.byID[r.GestureID] = k

	if s.capacity > 0 && nsize(s.root) > s.capacity {
		evicted := last(s.root)
		s.root = deleteNode(s.root, evicted.key)
		delete(s.byID, evicted.rec.id)
		s.metrics.RecordHistoryEviction()
	}
	s.metrics.UpdateHistorySize(nsize(s.root))

	rank := rankOf(s.root, k)
	if rank == 0 {
		return entryOf(n, 0), false
	}
	return entryOf(n, rank), true
}

// Rank implements Store.Rank.
func (s *TreapStore) Rank(_ context.Context, gestureID string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	k, ok := s.byID[gestureID]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, gestureID)
	}
	n := s.root
	for n != nil && n.key != k {
		if less(k, n.key) {
			n = n.left
		} else {
			n = n.right
		}
	}
	if n == nil {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, gestureID)
	}
	return entryOf(n, rankOf(s.root, k)), nil
}

// TopN implements Store.TopN.
func (s *TreapStore) TopN(_ context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, min(n, nsize(s.root)))
	collectTopN(s.root, n, &out)
	return out, nil
}

// Count implements Store.Count.
func (s *TreapStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nsize(s.root)
}
