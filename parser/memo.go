package parser

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// memoKey identifies a match attempt within one Source. The table itself
// belongs to the Source, so Source identity is implied.
type memoKey struct {
	parser uint64
	pos    int
}

// memoEntry is a cached result together with the cursor state it left
// behind, so a hit can replay the consumption exactly.
type memoEntry struct {
	result any
	end    Mark
}

type memoTable interface {
	get(memoKey) (memoEntry, bool)
	put(memoKey, memoEntry)
	len() int
}

func newMemoTable(limit int) memoTable {
	if limit <= 0 {
		return mapMemo{}
	}
	cache, err := lru.New[memoKey, memoEntry](limit)
	if err != nil {
		return mapMemo{}
	}
	return &lruMemo{cache: cache}
}

type mapMemo map[memoKey]memoEntry

func (m mapMemo) get(k memoKey) (memoEntry, bool) {
	e, ok := m[k]
	return e, ok
}

func (m mapMemo) put(k memoKey, e memoEntry) { m[k] = e }
func (m mapMemo) len() int                   { return len(m) }

// lruMemo bounds memory for long inputs. An evicted entry is simply
// recomputed on the next attempt.
type lruMemo struct {
	cache *lru.Cache[memoKey, memoEntry]
}

func (m *lruMemo) get(k memoKey) (memoEntry, bool) { return m.cache.Get(k) }
func (m *lruMemo) put(k memoKey, e memoEntry)      { m.cache.Add(k, e) }
func (m *lruMemo) len() int                        { return m.cache.Len() }
