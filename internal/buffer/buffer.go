// Package buffer provides raw pixel storage for github.com/gogpu/raster.
//
// A Buffer is a contiguous byte array with width, height, stride, and
// pixel width metadata. It either owns its storage or borrows a window
// into another buffer's storage; the owned flag governs what Reset may
// release.
package buffer

import "errors"

// Common errors for buffer operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("buffer: invalid dimensions")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("buffer: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("buffer: data too small")

	// ErrOutOfBounds is returned when a view rectangle is outside the
	// buffer bounds.
	ErrOutOfBounds = errors.New("buffer: view out of bounds")
)

// Buffer is a 2D pixel array: raw bytes plus layout metadata.
//
// A Buffer created by New owns its storage. A Buffer created by FromRaw
// or View borrows storage it must never release; the borrower's creator
// is responsible for keeping the backing storage alive.
type Buffer struct {
	data   []byte
	width  int
	height int
	stride int
	bpp    int
	owned  bool
}

// New creates an owned buffer with stride = width*bytesPerPixel.
func New(width, height, bytesPerPixel int) (*Buffer, error) {
	return NewWithStride(width, height, bytesPerPixel, width*bytesPerPixel)
}

// NewWithStride creates an owned buffer with a custom stride, which must
// be at least width*bytesPerPixel.
func NewWithStride(width, height, bytesPerPixel, stride int) (*Buffer, error) {
	if width <= 0 || height <= 0 || bytesPerPixel <= 0 {
		return nil, ErrInvalidDimensions
	}
	if stride < width*bytesPerPixel {
		return nil, ErrInvalidStride
	}
	return &Buffer{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		bpp:    bytesPerPixel,
		owned:  true,
	}, nil
}

// FromRaw creates a borrowed buffer over existing data without copying.
// The caller must ensure data remains valid for the lifetime of the
// buffer. Stride must be at least width*bytesPerPixel.
func FromRaw(data []byte, width, height, bytesPerPixel, stride int) (*Buffer, error) {
	if width <= 0 || height <= 0 || bytesPerPixel <= 0 {
		return nil, ErrInvalidDimensions
	}
	if stride < width*bytesPerPixel {
		return nil, ErrInvalidStride
	}
	// The final row only needs to reach its last pixel, not a full stride.
	required := (height-1)*stride + width*bytesPerPixel
	if len(data) < required {
		return nil, ErrDataTooSmall
	}
	return &Buffer{
		data:   data,
		width:  width,
		height: height,
		stride: stride,
		bpp:    bytesPerPixel,
		owned:  false,
	}, nil
}

// View creates a borrowed buffer sharing storage with b, covering the
// window of the given size anchored at (x, y). Rows of the view are
// strided through the parent's storage.
func (b *Buffer) View(x, y, width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if x < 0 || y < 0 || x+width > b.width || y+height > b.height {
		return nil, ErrOutOfBounds
	}
	start := y*b.stride + x*b.bpp
	end := start + (height-1)*b.stride + width*b.bpp
	return &Buffer{
		data:   b.data[start:end],
		width:  width,
		height: height,
		stride: b.stride,
		bpp:    b.bpp,
		owned:  false,
	}, nil
}

// Clone creates an owned deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &Buffer{
		data:   data,
		width:  b.width,
		height: b.height,
		stride: b.stride,
		bpp:    b.bpp,
		owned:  true,
	}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Stride returns the number of bytes per row (including padding).
func (b *Buffer) Stride() int { return b.stride }

// BytesPerPixel returns the storage width of one pixel.
func (b *Buffer) BytesPerPixel() int { return b.bpp }

// Owned reports whether the buffer owns its storage.
func (b *Buffer) Owned() bool { return b.owned }

// Empty reports whether the buffer holds no storage.
func (b *Buffer) Empty() bool { return b.data == nil }

// Data returns the raw pixel data slice.
func (b *Buffer) Data() []byte { return b.data }

// RowBytes returns the pixel data for row y, excluding stride padding.
// Returns nil if y is out of bounds.
func (b *Buffer) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.stride
	return b.data[start : start+b.width*b.bpp]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if the coordinates are out of bounds.
func (b *Buffer) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*b.bpp
}

// PixelBytes returns the raw bytes of pixel (x, y). Returns nil if the
// coordinates are out of bounds.
func (b *Buffer) PixelBytes(x, y int) []byte {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return nil
	}
	return b.data[off : off+b.bpp]
}

// Tail returns the data slice starting at pixel (x, y) and running to
// the end of the buffer. Blit inner loops use it as a row base pointer.
// Returns nil if the coordinates are out of bounds.
func (b *Buffer) Tail(x, y int) []byte {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return nil
	}
	return b.data[off:]
}

// Reset returns the buffer to the empty state, dropping the data
// reference. Safe to call repeatedly; borrowed storage is simply
// released back to its creator.
func (b *Buffer) Reset() {
	b.data = nil
	b.width = 0
	b.height = 0
	b.stride = 0
	b.bpp = 0
	b.owned = false
}
