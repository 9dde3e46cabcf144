package objenc

import (
	"strconv"
	"strings"
)

// PathKey identifies one step into a nested scope: either a field name or a
// sequence index. It is used for diagnostics only.
type PathKey struct {
	name    string
	index   int
	isIndex bool
}

// FieldKey returns a PathKey for a named field.
func FieldKey(name string) PathKey { return PathKey{name: name} }

// IndexKey returns a PathKey for a sequence position.
func IndexKey(i int) PathKey { return PathKey{index: i, isIndex: true} }

// IsIndex reports whether k addresses a sequence position.
func (k PathKey) IsIndex() bool { return k.isIndex }

// Index returns the sequence position when IsIndex is true.
func (k PathKey) Index() int { return k.index }

// String returns the field name, or the decimal index.
func (k PathKey) String() string {
	if k.isIndex {
		return strconv.Itoa(k.index)
	}
	return k.name
}

// Path is the ordered list of keys leading from the root to a scope.
type Path []PathKey

// Field returns a copy of p extended by a field key. The receiver is never
// aliased so sibling scopes cannot clobber each other's paths.
func (p Path) Field(name string) Path { return p.with(FieldKey(name)) }

// Index returns a copy of p extended by an index key.
func (p Path) Index(i int) Path { return p.with(IndexKey(i)) }

func (p Path) with(k PathKey) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, k)
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer renders p as an RFC 6901 JSON Pointer; the root renders as "/".
func (p Path) Pointer() string {
	if len(p) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, k := range p {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(k.String()))
	}
	return b.String()
}

func (p Path) String() string { return p.Pointer() }
