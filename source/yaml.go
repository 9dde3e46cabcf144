package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/reoring/objenc"
)

// YAML returns an Encodable that writes the single YAML document b into the
// scope it is given. An empty document encodes as null.
//
// Mappings become maps with merge keys ("<<") applied before explicit keys,
// sequences become sequences, aliases are expanded in place. Scalars follow
// their resolved tag: !!null, !!bool, !!int and !!float map to native
// scalars, everything else to strings. Floats go through the non-finite
// policy, so ".nan" and ".inf" fail unless Strictness.AllowNonFinite is set.
func YAML(b []byte) objenc.Encodable {
	return yamlBytes(b)
}

// YAMLNode is like YAML for an already parsed node.
func YAMLNode(n *yaml.Node) objenc.Encodable {
	return yamlNode{n: n, w: &yamlWalker{}}
}

// YAMLStream encodes every document in b, in order, as one sequence.
func YAMLStream(b []byte) objenc.Encodable {
	return yamlStream(b)
}

type yamlBytes []byte

func (b yamlBytes) EncodeObject(s *objenc.Scope) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return issue(s.Path(), objenc.CodeParseError, err)
	}
	if doc.Kind == 0 {
		s.Scalar().SetNull()
		return nil
	}
	return (&yamlWalker{}).value(s, &doc)
}

type yamlStream []byte

func (b yamlStream) EncodeObject(s *objenc.Scope) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	q := s.Sequence()
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return issue(q.Path().Index(q.Len()), objenc.CodeParseError, err)
		}
		if err := q.Append(yamlNode{n: &doc, w: &yamlWalker{}}); err != nil {
			return err
		}
	}
}

type yamlNode struct {
	n *yaml.Node
	w *yamlWalker
}

func (y yamlNode) EncodeObject(s *objenc.Scope) error {
	if y.n == nil {
		s.Scalar().SetNull()
		return nil
	}
	return y.w.value(s, y.n)
}

// yamlWalker holds the aliases currently being expanded.
type yamlWalker struct {
	active map[*yaml.Node]bool
}

func (w *yamlWalker) enter(target *yaml.Node) bool {
	if w.active == nil {
		w.active = map[*yaml.Node]bool{}
	}
	if w.active[target] {
		return false
	}
	w.active[target] = true
	return true
}

func (w *yamlWalker) leave(target *yaml.Node) { delete(w.active, target) }

func (w *yamlWalker) value(s *objenc.Scope, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			s.Scalar().SetNull()
			return nil
		}
		return w.value(s, n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return issue(s.Path(), objenc.CodeParseError, fmt.Errorf("unresolved alias %q", n.Value))
		}
		if !w.enter(n.Alias) {
			return issue(s.Path(), objenc.CodeUnsupported, fmt.Errorf("recursive alias %q", n.Value))
		}
		defer w.leave(n.Alias)
		return w.value(s, n.Alias)
	case yaml.MappingNode:
		return w.mapping(s.Map(), n)
	case yaml.SequenceNode:
		q := s.Sequence()
		for _, c := range n.Content {
			if err := q.Append(yamlNode{n: c, w: w}); err != nil {
				return err
			}
		}
		return nil
	case yaml.ScalarNode:
		return w.scalar(s, n)
	}
	return issue(s.Path(), objenc.CodeUnsupported, fmt.Errorf("yaml node kind %d", n.Kind))
}

func (w *yamlWalker) mapping(m *objenc.MapWriter, n *yaml.Node) error {
	if len(n.Content)%2 != 0 {
		return issue(m.Path(), objenc.CodeParseError, errors.New("odd number of mapping entries"))
	}
	// Merged entries first so that explicit keys override them.
	for i := 0; i < len(n.Content); i += 2 {
		if k := n.Content[i]; k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			if err := w.merge(m, n.Content[i+1]); err != nil {
				return err
			}
		}
	}
	for i := 0; i < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			continue
		}
		key, err := w.key(m.Path(), k)
		if err != nil {
			return err
		}
		if err := m.Put(key, yamlNode{n: v, w: w}); err != nil {
			return err
		}
	}
	return nil
}

// merge applies a "<<" value: a mapping, an alias to one, or a sequence of
// those where earlier entries take precedence.
func (w *yamlWalker) merge(m *objenc.MapWriter, v *yaml.Node) error {
	switch v.Kind {
	case yaml.AliasNode:
		if v.Alias == nil || !w.enter(v.Alias) {
			return issue(m.Path(), objenc.CodeUnsupported, fmt.Errorf("invalid merge alias %q", v.Value))
		}
		defer w.leave(v.Alias)
		return w.merge(m, v.Alias)
	case yaml.MappingNode:
		return w.mapping(m, v)
	case yaml.SequenceNode:
		for i := len(v.Content) - 1; i >= 0; i-- {
			c := v.Content[i]
			if c.Kind == yaml.SequenceNode {
				return issue(m.Path(), objenc.CodeUnsupported, errors.New("nested sequence in merge"))
			}
			if err := w.merge(m, c); err != nil {
				return err
			}
		}
		return nil
	}
	return issue(m.Path(), objenc.CodeUnsupported, errors.New("merge value must be a mapping"))
}

func (w *yamlWalker) key(p objenc.Path, k *yaml.Node) (string, error) {
	for k.Kind == yaml.AliasNode && k.Alias != nil {
		k = k.Alias
	}
	if k.Kind != yaml.ScalarNode {
		return "", issue(p, objenc.CodeUnsupported, errors.New("mapping key must be a scalar"))
	}
	return k.Value, nil
}

func (w *yamlWalker) scalar(s *objenc.Scope, n *yaml.Node) error {
	sc := s.Scalar()
	switch n.ShortTag() {
	case "!!null":
		sc.SetNull()
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return issue(s.Path(), objenc.CodeParseError, err)
		}
		sc.SetBool(b)
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			sc.SetInt(i)
			return nil
		}
		var u uint64
		if err := n.Decode(&u); err != nil {
			return issue(s.Path(), objenc.CodeParseError, err)
		}
		sc.SetUint(u)
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return issue(s.Path(), objenc.CodeParseError, err)
		}
		return sc.SetFloat(f)
	default:
		sc.SetString(n.Value)
	}
	return nil
}
