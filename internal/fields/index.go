package fields

import (
	"strings"

	"github.com/AngelCh415/adspend/internal/models"
)

// Index pairs the raw column names of a row with their tokens, in row order.
type Index struct {
	keys   []string
	tokens []string
}

func NewIndex(keys []string) *Index {
	idx := &Index{keys: keys, tokens: make([]string, len(keys))}
	for i, k := range keys {
		idx.tokens[i] = Normalize(k)
	}
	return idx
}

func (idx *Index) Keys() []string   { return idx.keys }
func (idx *Index) Tokens() []string { return idx.tokens }

// IndexCache builds one Index per distinct column layout of a batch. Exports
// usually share a single layout, so the tokens are computed once.
type IndexCache struct {
	m map[string]*Index
}

func NewIndexCache() *IndexCache { return &IndexCache{m: make(map[string]*Index)} }

func (c *IndexCache) For(row models.RawRow) *Index {
	keys := row.Keys()
	sig := strings.Join(keys, "\x1f")
	if idx, ok := c.m[sig]; ok {
		return idx
	}
	idx := NewIndex(keys)
	c.m[sig] = idx
	return idx
}

func (c *IndexCache) Len() int { return len(c.m) }
