package scene

import (
	"encoding/binary"
	"fmt"
)

// SemanticImage is a per-pixel category label buffer, one byte per pixel,
// row-major.
type SemanticImage struct {
	Width  int
	Height int
	Pix    []byte
}

// Validate checks the buffer against its declared resolution.
func (im *SemanticImage) Validate() error {
	if im == nil {
		return ErrNotYetAvailable
	}
	return validateDims(im.Width, im.Height, len(im.Pix))
}

// CategoryAt returns the decoded category at (x, y). The caller must have
// validated the image.
func (im *SemanticImage) CategoryAt(x, y int) Category {
	return CategoryFromLabel(im.Pix[y*im.Width+x])
}

// DepthImage is a 16-bit depth buffer in millimetres, row-major.
type DepthImage struct {
	Width   int
	Height  int
	Samples []uint16
}

// DepthImageFromBytes decodes a little-endian 16-bit depth plane as the
// platform delivers it.
func DepthImageFromBytes(width, height int, raw []byte) (*DepthImage, error) {
	if err := validateDims(width, height, len(raw)/2); err != nil {
		return nil, fmt.Errorf("decode depth %dx%d from %d bytes: %w", width, height, len(raw), err)
	}
	n := width * height
	samples := make([]uint16, n)
	for i := 0; i < n; i++ {
		samples[i] = binary.LittleEndian.Uint16(raw[2*i:])
	}
	return &DepthImage{Width: width, Height: height, Samples: samples}, nil
}

// Bytes encodes the samples as a little-endian plane.
func (im *DepthImage) Bytes() []byte {
	out := make([]byte, 2*len(im.Samples))
	for i, s := range im.Samples {
		binary.LittleEndian.PutUint16(out[2*i:], s)
	}
	return out
}

// Validate checks the buffer against its declared resolution.
func (im *DepthImage) Validate() error {
	if im == nil {
		return ErrNotYetAvailable
	}
	return validateDims(im.Width, im.Height, len(im.Samples))
}

// MetersAt returns the depth at (x, y) in metres. The caller must have
// validated the image.
func (im *DepthImage) MetersAt(x, y int) float64 {
	return float64(im.Samples[y*im.Width+x]) / 1000.0
}

func validateDims(width, height, have int) error {
	if width <= 0 || height <= 0 {
		return ErrEmptyBuffer
	}
	if have < width*height {
		return fmt.Errorf("%w: have %d samples, need %d", ErrMalformedBuffer, have, width*height)
	}
	return nil
}
