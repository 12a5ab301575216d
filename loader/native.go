package loader

import (
	"fmt"
	"math"

	"github.com/arloliu/rodb/errs"
	"github.com/arloliu/rodb/value"
)

// FromNative converts a tree of plain Go values into a value.Value.
//
// Accepted types are bool, the signed and unsigned integer types, float32,
// float64, string, []any, map[string]any and map[any]any. Any other type,
// including nil, is rejected with errs.ErrUnsupportedType.
func FromNative(x any, opts ...Option) (value.Value, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return fromNative(cfg, x, 0)
}

func fromNative(cfg *Config, x any, depth int) (value.Value, error) {
	switch v := x.(type) {
	case bool:
		return value.Bool(v), nil
	case int:
		return intValue(int64(v))
	case int8:
		return value.Int(v), nil
	case int16:
		return value.Int(v), nil
	case int32:
		return value.Int(v), nil
	case int64:
		return intValue(v)
	case uint:
		return uintValue(uint64(v))
	case uint8:
		return value.Int(v), nil
	case uint16:
		return value.Int(v), nil
	case uint32:
		return uintValue(uint64(v))
	case uint64:
		return uintValue(v)
	case float32:
		return value.Float(v), nil
	case float64:
		return value.Float(float32(v)), nil
	case string:
		return value.NewStr(v)
	case []any:
		if err := cfg.checkDepth(depth); err != nil {
			return nil, err
		}

		arr := make(value.Array, 0, len(v))
		for i, item := range v {
			iv, err := fromNative(cfg, item, depth+1)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			arr = append(arr, iv)
		}

		return arr, nil
	case map[string]any:
		if err := cfg.checkDepth(depth); err != nil {
			return nil, err
		}

		m := make(value.Map, 0, len(v))
		for k, item := range v {
			key, err := value.NewStr(k)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}

			iv, err := fromNative(cfg, item, depth+1)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			m = append(m, value.Entry{Key: key, Val: iv})
		}

		return m, nil
	case map[any]any:
		if err := cfg.checkDepth(depth); err != nil {
			return nil, err
		}

		m := make(value.Map, 0, len(v))
		for k, item := range v {
			key, err := fromNative(cfg, k, depth+1)
			if err != nil {
				return nil, fmt.Errorf("key %v: %w", k, err)
			}

			iv, err := fromNative(cfg, item, depth+1)
			if err != nil {
				return nil, fmt.Errorf("key %v: %w", k, err)
			}
			m = append(m, value.Entry{Key: key, Val: iv})
		}

		return m, nil
	case nil:
		return nil, fmt.Errorf("%w: null", errs.ErrUnsupportedType)
	default:
		return nil, fmt.Errorf("%w: %T", errs.ErrUnsupportedType, x)
	}
}

func intValue(n int64) (value.Value, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d", errs.ErrIntOutOfRange, n)
	}

	return value.Int(n), nil
}

func uintValue(n uint64) (value.Value, error) {
	if n > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d", errs.ErrIntOutOfRange, n)
	}

	return value.Int(n), nil //nolint: gosec
}
