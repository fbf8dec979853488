package raster

import (
	"errors"

	"github.com/gogpu/raster/internal/buffer"
)

// Common errors for surface operations.
var (
	// ErrMissingPalette is returned when a format conversion involving a
	// CLUT8 surface is attempted without the required palette.
	ErrMissingPalette = errors.New("raster: conversion requires a palette")

	// ErrUnsupportedFormat is returned when a conversion between the
	// given pixel formats is not defined.
	ErrUnsupportedFormat = errors.New("raster: unsupported pixel format")
)

// Surface is a 2D pixel buffer with an attached pixel format: raw
// storage plus format-aware pixel accessors and conversion. It carries
// no ownership conveniences beyond the underlying buffer; ManagedSurface
// layers transparency, palette, and dirty-region state on top.
//
// The zero Surface is empty and safe to use.
type Surface struct {
	buf    *buffer.Buffer
	format PixelFormat
}

// NewSurface creates a surface with fresh owned storage.
func NewSurface(width, height int, format PixelFormat) (*Surface, error) {
	s := &Surface{}
	if err := s.Create(width, height, format); err != nil {
		return nil, err
	}
	return s, nil
}

// Create allocates fresh owned storage with pitch = width*bytesPerPixel,
// releasing any previous storage. The new pixels are all zero.
func (s *Surface) Create(width, height int, format PixelFormat) error {
	buf, err := buffer.New(width, height, int(format.BytesPerPixel))
	if err != nil {
		return err
	}
	s.Free()
	s.buf = buf
	s.format = format
	return nil
}

// Init points the surface at borrowed storage without copying. The
// caller must keep pix alive for the lifetime of the surface.
func (s *Surface) Init(width, height, pitch int, pix []byte, format PixelFormat) error {
	buf, err := buffer.FromRaw(pix, width, height, int(format.BytesPerPixel), pitch)
	if err != nil {
		return err
	}
	s.Free()
	s.buf = buf
	s.format = format
	return nil
}

// Free resets the surface to the empty state. Idempotent; borrowed
// storage is released back to its creator, never freed here.
func (s *Surface) Free() {
	if s.buf != nil {
		s.buf.Reset()
		s.buf = nil
	}
	s.format = PixelFormat{}
}

// Empty reports whether the surface holds no pixels.
func (s *Surface) Empty() bool {
	return s.buf == nil || s.buf.Empty()
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	if s.buf == nil {
		return 0
	}
	return s.buf.Width()
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	if s.buf == nil {
		return 0
	}
	return s.buf.Height()
}

// Pitch returns the number of bytes per pixel row, which may exceed
// Width()*BytesPerPixel for views into wider surfaces.
func (s *Surface) Pitch() int {
	if s.buf == nil {
		return 0
	}
	return s.buf.Stride()
}

// Format returns the surface's pixel format.
func (s *Surface) Format() PixelFormat {
	return s.format
}

// Bounds returns the surface rectangle anchored at the origin.
func (s *Surface) Bounds() Rect {
	return RectWH(s.Width(), s.Height())
}

// Pixels returns the raw pixel storage.
func (s *Surface) Pixels() []byte {
	if s.buf == nil {
		return nil
	}
	return s.buf.Data()
}

// Owned reports whether the surface owns its storage.
func (s *Surface) Owned() bool {
	return s.buf != nil && s.buf.Owned()
}

// BasePtr returns the storage starting at pixel (x, y). Blit loops use
// it as a row base; indexing past the row wraps into the next row as raw
// memory, exactly like a C pixel pointer. Returns nil out of bounds.
func (s *Surface) BasePtr(x, y int) []byte {
	if s.buf == nil {
		return nil
	}
	return s.buf.Tail(x, y)
}

// PixelBytes returns the raw bytes of pixel (x, y), or nil out of
// bounds.
func (s *Surface) PixelBytes(x, y int) []byte {
	if s.buf == nil {
		return nil
	}
	return s.buf.PixelBytes(x, y)
}

// GetPixel returns the raw pixel value at (x, y). Out-of-bounds reads
// return 0.
func (s *Surface) GetPixel(x, y int) uint32 {
	p := s.PixelBytes(x, y)
	if p == nil {
		return 0
	}
	return s.format.readColor(p)
}

// PutPixel stores a raw pixel value at (x, y). Out-of-bounds writes are
// silently ignored.
func (s *Surface) PutPixel(x, y int, col uint32) {
	p := s.PixelBytes(x, y)
	if p == nil {
		return
	}
	s.format.writeColor(p, col)
}

// FillRect fills a rectangle with a raw pixel value. The rectangle is
// clipped to the surface bounds.
func (s *Surface) FillRect(r Rect, col uint32) {
	r = r.Clip(s.Bounds())
	if !r.IsValidRect() {
		return
	}

	bpp := int(s.format.BytesPerPixel)
	if bpp == 1 {
		for y := r.Top; y < r.Bottom; y++ {
			row := s.buf.Tail(r.Left, y)[:r.Width()]
			for i := range row {
				row[i] = byte(col)
			}
		}
		return
	}

	// Encode the first row pixel by pixel, then replicate it.
	first := s.buf.Tail(r.Left, r.Top)
	for x := 0; x < r.Width(); x++ {
		s.format.writeColor(first[x*bpp:], col)
	}
	rowLen := r.Width() * bpp
	for y := r.Top + 1; y < r.Bottom; y++ {
		copy(s.buf.Tail(r.Left, y)[:rowLen], first[:rowLen])
	}
}

// CopyRectToSurface copies raw pixel rows from an external buffer of the
// same pixel format into the given position. The rectangle must lie
// within the surface bounds.
func (s *Surface) CopyRectToSurface(src []byte, srcPitch, destX, destY, width, height int) {
	if destX < 0 || destY < 0 || width <= 0 || height <= 0 ||
		destX+width > s.Width() || destY+height > s.Height() {
		return
	}
	bpp := int(s.format.BytesPerPixel)
	for y := 0; y < height; y++ {
		copy(s.buf.Tail(destX, destY+y)[:width*bpp], src[y*srcPitch:y*srcPitch+width*bpp])
	}
}

// CopyFrom replaces the surface with an owned deep copy of src,
// discarding any stride padding.
func (s *Surface) CopyFrom(src *Surface) error {
	if src.Empty() {
		s.Free()
		return nil
	}
	if err := s.Create(src.Width(), src.Height(), src.Format()); err != nil {
		return err
	}
	bpp := int(src.format.BytesPerPixel)
	for y := 0; y < src.Height(); y++ {
		copy(s.buf.RowBytes(y), src.buf.RowBytes(y)[:src.Width()*bpp])
	}
	return nil
}

// view creates a borrowed surface over the window at bounds, inheriting
// the pitch and format. Callers must keep s alive for the lifetime of
// the view.
func (s *Surface) view(bounds Rect) (*Surface, error) {
	if s.buf == nil {
		return nil, buffer.ErrOutOfBounds
	}
	buf, err := s.buf.View(bounds.Left, bounds.Top, bounds.Width(), bounds.Height())
	if err != nil {
		return nil, err
	}
	return &Surface{buf: buf, format: s.format}, nil
}

// ConvertTo returns a new owned surface holding this surface's content
// re-encoded in dstFormat.
//
// A CLUT8 source requires srcPalette; converting into CLUT8 from a
// direct-color source requires dstPalette, and each pixel maps to the
// nearest palette entry. Identical formats produce a plain copy.
func (s *Surface) ConvertTo(dstFormat PixelFormat, srcPalette, dstPalette *Palette) (*Surface, error) {
	if s.Empty() {
		return nil, ErrUnsupportedFormat
	}

	if s.format == dstFormat {
		out := &Surface{}
		if err := out.CopyFrom(s); err != nil {
			return nil, err
		}
		return out, nil
	}

	if s.format.IsCLUT8() && (srcPalette == nil || srcPalette.Size() == 0) {
		return nil, ErrMissingPalette
	}
	if dstFormat.IsCLUT8() && (dstPalette == nil || dstPalette.Size() == 0) {
		return nil, ErrMissingPalette
	}

	out, err := NewSurface(s.Width(), s.Height(), dstFormat)
	if err != nil {
		return nil, err
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			col := s.GetPixel(x, y)

			var a, r, g, b byte
			if s.format.IsCLUT8() {
				r, g, b = srcPalette.Get(int(col))
				a = 0xFF
			} else {
				a, r, g, b = s.format.ColorToARGB(col)
			}

			if dstFormat.IsCLUT8() {
				out.PutPixel(x, y, uint32(dstPalette.FindBestColor(r, g, b)))
			} else {
				out.PutPixel(x, y, dstFormat.ARGBToColor(a, r, g, b))
			}
		}
	}
	return out, nil
}
