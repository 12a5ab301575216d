package loader

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/arloliu/rodb/errs"
	"github.com/arloliu/rodb/value"
)

// LoadMsgPack parses a single MessagePack object.
//
// Arrays and maps are walked on the stream so that maps keep their encoded
// entry order and non-string keys survive into the tree. Binary, nil and
// extension values are rejected.
func LoadMsgPack(data []byte, opts ...Option) (value.Value, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("msgpack: %w", errs.ErrEmptyDocument)
	}

	r := bytes.NewReader(data)
	p := msgpackParser{r: r, dec: msgpack.NewDecoder(r), cfg: cfg}

	v, err := p.value(0)
	if err != nil {
		return nil, fmt.Errorf("msgpack: offset %d: %w", p.offset(), err)
	}

	if r.Len() > 0 {
		return nil, fmt.Errorf("msgpack: offset %d: %w", p.offset(), errs.ErrTrailingData)
	}

	return v, nil
}

type msgpackParser struct {
	r   *bytes.Reader
	dec *msgpack.Decoder
	cfg *Config
}

func (p *msgpackParser) offset() int64 {
	return p.r.Size() - int64(p.r.Len())
}

func (p *msgpackParser) value(depth int) (value.Value, error) {
	c, err := p.dec.PeekCode()
	if err != nil {
		return nil, err
	}

	switch {
	case msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32:
		return p.array(depth)
	case msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32:
		return p.mapping(depth)
	case msgpcode.IsBin(c):
		// The loose decoder returns bin as a string.
		return nil, fmt.Errorf("%w: binary", errs.ErrUnsupportedType)
	case msgpcode.IsExt(c):
		return nil, fmt.Errorf("%w: extension code 0x%02x", errs.ErrUnsupportedType, c)
	default:
		x, err := p.dec.DecodeInterfaceLoose()
		if err != nil {
			return nil, err
		}

		return fromNative(p.cfg, x, depth)
	}
}

func (p *msgpackParser) array(depth int) (value.Value, error) {
	if err := p.cfg.checkDepth(depth); err != nil {
		return nil, err
	}

	n, err := p.dec.DecodeArrayLen()
	if err != nil {
		return nil, err
	}

	// A declared length larger than the remaining input is truncated data;
	// the decode below fails on it, so only size the slice by what is left.
	arr := make(value.Array, 0, min(n, p.r.Len()))
	for i := range n {
		v, err := p.value(depth + 1)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		arr = append(arr, v)
	}

	return arr, nil
}

func (p *msgpackParser) mapping(depth int) (value.Value, error) {
	if err := p.cfg.checkDepth(depth); err != nil {
		return nil, err
	}

	n, err := p.dec.DecodeMapLen()
	if err != nil {
		return nil, err
	}

	m := make(value.Map, 0, min(n, p.r.Len()/2))
	for i := range n {
		key, err := p.value(depth + 1)
		if err != nil {
			return nil, fmt.Errorf("entry %d key: %w", i, err)
		}

		v, err := p.value(depth + 1)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		m = append(m, value.Entry{Key: key, Val: v})
	}

	return m, nil
}
