package loader

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/arloliu/rodb/errs"
	"github.com/arloliu/rodb/value"
)

// cborDecMode decodes into the default map[any]any so that non-string keys
// are preserved, and rejects maps with duplicate keys. Its nesting limit is
// the largest the decoder allows; the configured depth is enforced while
// converting the decoded tree.
var cborDecMode cbor.DecMode

const cborMaxNestedLevels = 65535

func init() {
	var err error
	cborDecMode, err = cbor.DecOptions{
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		MaxNestedLevels: cborMaxNestedLevels,
	}.DecMode()
	if err != nil {
		panic("loader: CBOR decoder initialization failed: " + err.Error())
	}
}

// LoadCBOR parses a single CBOR data item.
//
// CBOR maps decode into Go maps, so the entry order of the source is not
// kept; the encoder sorts keys anyway. Byte strings, null, undefined and
// tagged values are rejected. Documents nested deeper than 65535 levels fail
// in the decoder regardless of WithMaxDepth.
func LoadCBOR(data []byte, opts ...Option) (value.Value, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("cbor: %w", errs.ErrEmptyDocument)
	}

	var x any
	rest, err := cborDecMode.UnmarshalFirst(data, &x)
	if err != nil {
		return nil, fmt.Errorf("cbor: %w", err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("cbor: offset %d: %w", len(data)-len(rest), errs.ErrTrailingData)
	}

	v, err := fromNative(cfg, x, 0)
	if err != nil {
		return nil, fmt.Errorf("cbor: %w", err)
	}

	return v, nil
}
