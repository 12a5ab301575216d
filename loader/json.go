package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/arloliu/rodb/errs"
	"github.com/arloliu/rodb/value"
)

// LoadJSON parses a single JSON document. Comments and trailing commas are
// accepted. Object members keep their document order.
func LoadJSON(data []byte, opts ...Option) (value.Value, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("json: %w", errs.ErrEmptyDocument)
	}
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}

	p := jsonParser{dec: dec, cfg: cfg}
	v, err := p.value(tok, 0)
	if err != nil {
		return nil, fmt.Errorf("json: offset %d: %w", dec.InputOffset(), err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}

		return nil, fmt.Errorf("json: offset %d: %w", dec.InputOffset(), errs.ErrTrailingData)
	}

	return v, nil
}

type jsonParser struct {
	dec *json.Decoder
	cfg *Config
}

func (p *jsonParser) value(tok json.Token, depth int) (value.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			return p.array(depth)
		case '{':
			return p.object(depth)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
		}
	case bool:
		return value.Bool(t), nil
	case json.Number:
		return jsonNumber(t)
	case string:
		return value.NewStr(t)
	case nil:
		return nil, fmt.Errorf("%w: null", errs.ErrUnsupportedType)
	default:
		return nil, fmt.Errorf("%w: %T", errs.ErrUnsupportedType, tok)
	}
}

func (p *jsonParser) array(depth int) (value.Value, error) {
	if err := p.cfg.checkDepth(depth); err != nil {
		return nil, err
	}

	arr := value.Array{}
	for p.dec.More() {
		tok, err := p.dec.Token()
		if err != nil {
			return nil, err
		}

		v, err := p.value(tok, depth+1)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", len(arr), err)
		}
		arr = append(arr, v)
	}

	// closing ']'
	if _, err := p.dec.Token(); err != nil {
		return nil, err
	}

	return arr, nil
}

func (p *jsonParser) object(depth int) (value.Value, error) {
	if err := p.cfg.checkDepth(depth); err != nil {
		return nil, err
	}

	m := value.Map{}
	for p.dec.More() {
		tok, err := p.dec.Token()
		if err != nil {
			return nil, err
		}

		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}

		key, err := value.NewStr(name)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", name, err)
		}

		tok, err = p.dec.Token()
		if err != nil {
			return nil, err
		}

		v, err := p.value(tok, depth+1)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", name, err)
		}
		m = append(m, value.Entry{Key: key, Val: v})
	}

	// closing '}'
	if _, err := p.dec.Token(); err != nil {
		return nil, err
	}

	return m, nil
}

func jsonNumber(n json.Number) (value.Value, error) {
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, err
		}

		return value.Float(float32(f)), nil
	}

	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrIntOutOfRange, s)
	}

	return intValue(i)
}
