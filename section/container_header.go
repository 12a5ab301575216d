package section

import (
	"fmt"

	"github.com/arloliu/rodb/endian"
	"github.com/arloliu/rodb/errs"
)

// ContainerHeader is the fixed 8-byte prefix of a RODB container.
//
// Layout:
//   - Magic:   4 bytes, ASCII "rodb", offset 0-3
//   - Version: 4 bytes, little-endian uint32, offset 4-7
type ContainerHeader struct {
	Magic   [4]byte
	Version uint32
}

// NewContainerHeader returns the header for the current format version.
func NewContainerHeader() ContainerHeader {
	var h ContainerHeader
	copy(h.Magic[:], Magic)
	h.Version = FormatVersion

	return h
}

// Parse parses the header from the first ContainerHeaderSize bytes of data.
// It returns an error if data is too short, the magic does not match, or the
// version is not supported.
func (h *ContainerHeader) Parse(data []byte) error {
	if len(data) < ContainerHeaderSize {
		return fmt.Errorf("%w: got %d bytes, need %d", errs.ErrInvalidHeaderSize, len(data), ContainerHeaderSize)
	}

	engine := endian.GetLittleEndianEngine()

	copy(h.Magic[:], data[0:4])
	h.Version = engine.Uint32(data[4:8])

	if string(h.Magic[:]) != Magic {
		return fmt.Errorf("%w: %q", errs.ErrInvalidMagic, h.Magic[:])
	}

	if h.Version != FormatVersion {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, h.Version)
	}

	return nil
}

// Bytes serializes the header into a new byte slice.
func (h ContainerHeader) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, ContainerHeaderSize))
}

// AppendTo appends the serialized header to buf.
func (h ContainerHeader) AppendTo(buf []byte) []byte {
	buf = append(buf, h.Magic[:]...)
	return endian.GetLittleEndianEngine().AppendUint32(buf, h.Version)
}
