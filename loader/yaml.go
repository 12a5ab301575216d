package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/rodb/errs"
	"github.com/arloliu/rodb/value"
)

const (
	tagStr   = "!!str"
	tagBool  = "!!bool"
	tagInt   = "!!int"
	tagFloat = "!!float"
	tagNull  = "!!null"
	tagMerge = "!!merge"
)

// LoadYAML parses the first document of a YAML stream.
//
// Aliases are expanded in place, and merge keys ("<<") are applied with
// explicit keys taking precedence over merged ones. A mapping that repeats a
// string key is rejected with errs.ErrDuplicateMapKey. A document whose
// aliases expand far beyond its own size is rejected with
// errs.ErrAliasExpansion.
func LoadYAML(data []byte, opts ...Option) (value.Value, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}

	if doc.Kind == 0 || (doc.Kind == yaml.DocumentNode && len(doc.Content) == 0) {
		return nil, fmt.Errorf("yaml: %w", errs.ErrEmptyDocument)
	}

	b := yamlBuilder{cfg: cfg, active: make(map[*yaml.Node]struct{})}
	v, err := b.build(&doc, 0)
	if err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}

	return v, nil
}

// Alias expansion limits. Small documents may be almost entirely aliased;
// the allowed share of aliased nodes falls linearly to 10% between the low
// and high node counts.
const (
	aliasCheckMinAliases = 100
	aliasCheckMinNodes   = 1000
	aliasRatioLowNodes   = 400_000
	aliasRatioHighNodes  = 4_000_000
)

func allowedAliasRatio(nodes int) float64 {
	switch {
	case nodes <= aliasRatioLowNodes:
		return 0.99
	case nodes >= aliasRatioHighNodes:
		return 0.10
	default:
		return 0.99 - 0.89*float64(nodes-aliasRatioLowNodes)/float64(aliasRatioHighNodes-aliasRatioLowNodes)
	}
}

// yamlBuilder walks a yaml.Node graph. active holds the collection nodes on
// the current path, so an alias pointing back into the path is a cycle.
// nodes counts every node built and aliased those built below an alias.
type yamlBuilder struct {
	cfg        *Config
	active     map[*yaml.Node]struct{}
	nodes      int
	aliased    int
	aliasDepth int
}

func (b *yamlBuilder) build(n *yaml.Node, depth int) (value.Value, error) {
	b.nodes++
	if b.aliasDepth > 0 {
		b.aliased++
	}
	if b.aliased > aliasCheckMinAliases && b.nodes > aliasCheckMinNodes &&
		float64(b.aliased)/float64(b.nodes) > allowedAliasRatio(b.nodes) {
		return nil, fmt.Errorf("line %d: %w: %d of %d nodes", n.Line, errs.ErrAliasExpansion, b.aliased, b.nodes)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, errs.ErrEmptyDocument
		}

		return b.build(n.Content[0], depth)
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: %w: unknown alias %q", n.Line, errs.ErrUnsupportedType, n.Value)
		}
		if _, ok := b.active[n.Alias]; ok {
			return nil, fmt.Errorf("line %d: %w: *%s", n.Line, errs.ErrAliasCycle, n.Value)
		}

		b.aliasDepth++
		defer func() { b.aliasDepth-- }()

		return b.build(n.Alias, depth)
	case yaml.ScalarNode:
		return b.scalar(n)
	case yaml.SequenceNode:
		return b.sequence(n, depth)
	case yaml.MappingNode:
		return b.mapping(n, depth)
	default:
		return nil, fmt.Errorf("line %d: %w: node kind %d", n.Line, errs.ErrUnsupportedType, n.Kind)
	}
}

func (b *yamlBuilder) scalar(n *yaml.Node) (value.Value, error) {
	switch tag := n.ShortTag(); tag {
	case tagStr:
		s, err := value.NewStr(n.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}

		return s, nil
	case tagBool:
		var v bool
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}

		return value.Bool(v), nil
	case tagInt:
		var v int64
		if err := n.Decode(&v); err != nil {
			// Resolves as an integer but does not fit in int64.
			return nil, fmt.Errorf("line %d: %w: %s", n.Line, errs.ErrIntOutOfRange, n.Value)
		}

		iv, err := intValue(v)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}

		return iv, nil
	case tagFloat:
		var v float64
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}

		return value.Float(float32(v)), nil
	case tagNull:
		return nil, fmt.Errorf("line %d: %w: null", n.Line, errs.ErrUnsupportedType)
	default:
		return nil, fmt.Errorf("line %d: %w: tag %s", n.Line, errs.ErrUnsupportedType, tag)
	}
}

func (b *yamlBuilder) sequence(n *yaml.Node, depth int) (value.Value, error) {
	if err := b.cfg.checkDepth(depth); err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}

	b.active[n] = struct{}{}
	defer delete(b.active, n)

	arr := make(value.Array, 0, len(n.Content))
	for _, c := range n.Content {
		v, err := b.build(c, depth+1)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}

	return arr, nil
}

func (b *yamlBuilder) mapping(n *yaml.Node, depth int) (value.Value, error) {
	if err := b.cfg.checkDepth(depth); err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}

	b.active[n] = struct{}{}
	defer delete(b.active, n)

	m := make(value.Map, 0, len(n.Content)/2)
	seen := make(map[value.Str]struct{}, len(n.Content)/2)
	var merged []value.Map

	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]

		if kn.Kind == yaml.ScalarNode && kn.ShortTag() == tagMerge {
			sources, err := b.mergeSources(vn, depth)
			if err != nil {
				return nil, err
			}
			merged = append(merged, sources...)

			continue
		}

		key, err := b.build(kn, depth+1)
		if err != nil {
			return nil, err
		}

		if s, ok := key.(value.Str); ok {
			if _, dup := seen[s]; dup {
				return nil, fmt.Errorf("line %d: %w: %q", kn.Line, errs.ErrDuplicateMapKey, string(s))
			}
			seen[s] = struct{}{}
		}

		val, err := b.build(vn, depth+1)
		if err != nil {
			return nil, err
		}

		m = append(m, value.Entry{Key: key, Val: val})
	}

	// Earlier merge sources win over later ones; explicit keys win over all.
	for _, src := range merged {
		for _, e := range src {
			if s, ok := e.Key.(value.Str); ok {
				if _, dup := seen[s]; dup {
					continue
				}
				seen[s] = struct{}{}
			}
			m = append(m, e)
		}
	}

	return m, nil
}

// mergeSources resolves the value of a "<<" key: a mapping, or a sequence of
// mappings, usually given as aliases.
func (b *yamlBuilder) mergeSources(n *yaml.Node, depth int) ([]value.Map, error) {
	v, err := b.build(n, depth+1)
	if err != nil {
		return nil, err
	}

	switch mv := v.(type) {
	case value.Map:
		return []value.Map{mv}, nil
	case value.Array:
		sources := make([]value.Map, 0, len(mv))
		for _, item := range mv {
			m, ok := item.(value.Map)
			if !ok {
				return nil, errMergeValue(n, item)
			}
			sources = append(sources, m)
		}

		return sources, nil
	default:
		return nil, errMergeValue(n, v)
	}
}

func errMergeValue(n *yaml.Node, v value.Value) error {
	return fmt.Errorf("line %d: %w: merge value is %s, want Map", n.Line, errs.ErrUnsupportedType, value.KindOf(v))
}
