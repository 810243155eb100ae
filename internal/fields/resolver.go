package fields

import (
	"strings"

	"github.com/AngelCh415/adspend/internal/models"
)

type MatchKind uint8

const (
	MatchExact MatchKind = iota
	MatchContains
)

type rule struct {
	alias string
	token string
	kind  MatchKind
}

// Match describes which column satisfied a field lookup.
type Match struct {
	Key   string
	Alias string
	Kind  MatchKind
}

// Resolver maps export columns onto logical fields. Each alias expands to
// an exact rule followed by a containment rule; rules run in order and the
// first one that hits a column wins. Within a rule the first column in row
// order wins, which is deterministic but not necessarily the best choice.
type Resolver struct {
	rules map[Name][]rule
}

func NewResolver(t Table) *Resolver {
	r := &Resolver{rules: make(map[Name][]rule, len(t))}
	for name, aliases := range t {
		for _, a := range aliases {
			tok := Normalize(a)
			if tok == "" {
				continue
			}
			r.rules[name] = append(r.rules[name],
				rule{alias: a, token: tok, kind: MatchExact},
				rule{alias: a, token: tok, kind: MatchContains},
			)
		}
	}
	return r
}

func DefaultResolver() *Resolver { return NewResolver(DefaultAliases) }

// Resolve finds the column backing field f. ok is false when no alias
// matches any column.
func (r *Resolver) Resolve(idx *Index, f Name) (Match, bool) {
	if idx == nil {
		return Match{}, false
	}
	for _, ru := range r.rules[f] {
		for i, tok := range idx.tokens {
			if tok == "" {
				continue
			}
			hit := tok == ru.token
			if ru.kind == MatchContains {
				hit = strings.Contains(tok, ru.token)
			}
			if hit {
				return Match{Key: idx.keys[i], Alias: ru.alias, Kind: ru.kind}, true
			}
		}
	}
	return Match{}, false
}

// Value returns the raw cell of row for field f.
func (r *Resolver) Value(row models.RawRow, idx *Index, f Name) (models.Value, bool) {
	m, ok := r.Resolve(idx, f)
	if !ok {
		return models.Null(), false
	}
	return row.Get(m.Key)
}

// FieldMap reports, for every logical field, the column resolved on a
// sample row, or nil.
func (r *Resolver) FieldMap(sample models.RawRow) map[string]*string {
	idx := NewIndex(sample.Keys())
	out := make(map[string]*string, len(Names))
	for _, n := range Names {
		if m, ok := r.Resolve(idx, n); ok {
			key := m.Key
			out[string(n)] = &key
			continue
		}
		out[string(n)] = nil
	}
	return out
}
