package raster

import (
	"fmt"

	"github.com/gogpu/raster/internal/blit"
)

// paletteToMap builds a 256-entry table converting each palette index to
// the destination format's raw encoding. Built once per blit call so the
// per-pixel cost of an indexed source is a single table lookup.
func paletteToMap(pal *Palette, dstFormat PixelFormat) [256]uint32 {
	var m [256]uint32
	for i := 0; i < pal.Size(); i++ {
		r, g, b := pal.Get(i)
		m[i] = dstFormat.RGBToColor(r, g, b)
	}
	return m
}

// SimpleBlitFrom copies src onto this surface at destPos with no
// scaling, converting pixel formats as needed. The source's own
// transparent color key and palette are honored.
func (ms *ManagedSurface) SimpleBlitFrom(src *ManagedSurface, destPos Point) {
	ms.SimpleBlitFromRect(src, src.Bounds(), destPos)
}

// SimpleBlitFromRect copies the srcRect portion of src onto this surface
// at destPos with no scaling. The source's own transparent color key and
// palette are honored.
func (ms *ManagedSurface) SimpleBlitFromRect(src *ManagedSurface, srcRect Rect, destPos Point) {
	ms.simpleBlitInner(&src.inner, srcRect, destPos, src.palette,
		src.transparentColorSet, src.transparentColor)
}

// SimpleBlitFromSurface copies the srcRect portion of a plain Surface
// onto this surface at destPos with no scaling. srcPalette is required
// when src is CLUT8 and this surface is not.
func (ms *ManagedSurface) SimpleBlitFromSurface(src *Surface, srcRect Rect, destPos Point, srcPalette *Palette) {
	ms.simpleBlitInner(src, srcRect, destPos, srcPalette, false, 0)
}

// simpleBlitInner implements the unscaled blit: clip the rect pair
// consistently against both surfaces, then dispatch on the format
// relationship. The destination's palette and transparency state are
// never modified.
func (ms *ManagedSurface) simpleBlitInner(src *Surface, srcRect Rect, destPos Point,
	srcPalette *Palette, keySet bool, key uint32) {

	srcRectC := srcRect
	dstRectC := srcRect.MoveTo(destPos.X, destPos.Y)
	srcRectC, dstRectC = clipBlitRects(srcRectC, dstRectC, src.Bounds(), ms.Bounds())
	if !srcRectC.IsValidRect() || !dstRectC.IsValidRect() {
		return
	}

	srcPtr := src.BasePtr(srcRectC.Left, srcRectC.Top)
	dstPtr := ms.inner.BasePtr(dstRectC.Left, dstRectC.Top)
	w, h := srcRectC.Width(), srcRectC.Height()

	dstFormat := ms.Format()
	srcFormat := src.Format()

	switch {
	case dstFormat == srcFormat:
		bpp := int(dstFormat.BytesPerPixel)
		if keySet {
			blit.Keyed(dstPtr, srcPtr, ms.Pitch(), src.Pitch(), w, h, bpp, key)
		} else {
			blit.Copy(dstPtr, srcPtr, ms.Pitch(), src.Pitch(), w, h, bpp)
		}

	case srcFormat.IsCLUT8():
		if srcPalette == nil || srcPalette.Size() == 0 {
			panic("raster: SimpleBlitFrom: CLUT8 source requires a palette")
		}
		if dstFormat.IsCLUT8() {
			panic("raster: SimpleBlitFrom: cross-format blit into a CLUT8 destination")
		}
		m := paletteToMap(srcPalette, dstFormat)
		if keySet {
			blit.CrossMappedKeyed(dstPtr, srcPtr, ms.Pitch(), src.Pitch(), w, h,
				int(dstFormat.BytesPerPixel), &m, key)
		} else {
			blit.CrossMapped(dstPtr, srcPtr, ms.Pitch(), src.Pitch(), w, h,
				int(dstFormat.BytesPerPixel), &m)
		}

	default:
		if dstFormat.IsCLUT8() {
			panic("raster: SimpleBlitFrom: cross-format blit into a CLUT8 destination")
		}
		if keySet {
			crossKeyedBlit(dstPtr, srcPtr, ms.Pitch(), src.Pitch(), w, h, dstFormat, srcFormat, key)
		} else {
			crossBlit(dstPtr, srcPtr, ms.Pitch(), src.Pitch(), w, h, dstFormat, srcFormat)
		}
	}

	ms.AddDirtyRect(dstRectC)
}

// MaskBlitFrom copies src onto this surface at destPos, writing only
// where the corresponding mask pixel is non-zero. The mask must have the
// same dimensions as src.
func (ms *ManagedSurface) MaskBlitFrom(src, mask *ManagedSurface, destPos Point) {
	ms.MaskBlitFromRect(src, mask, src.Bounds(), destPos)
}

// MaskBlitFromRect copies the srcRect portion of src onto this surface
// at destPos, gated by the mask.
func (ms *ManagedSurface) MaskBlitFromRect(src, mask *ManagedSurface, srcRect Rect, destPos Point) {
	ms.maskBlitInner(&src.inner, &mask.inner, srcRect, destPos, src.palette)
}

// MaskBlitFromSurface copies the srcRect portion of a plain Surface onto
// this surface at destPos, gated by the mask. srcPalette is required
// when src is CLUT8 and this surface is not.
func (ms *ManagedSurface) MaskBlitFromSurface(src, mask *Surface, srcRect Rect, destPos Point, srcPalette *Palette) {
	ms.maskBlitInner(src, mask, srcRect, destPos, srcPalette)
}

func (ms *ManagedSurface) maskBlitInner(src, mask *Surface, srcRect Rect, destPos Point, srcPalette *Palette) {
	if mask.Width() != src.Width() || mask.Height() != src.Height() {
		panic(fmt.Sprintf("raster: MaskBlitFrom: mask dimensions %dx%d do not match source %dx%d",
			mask.Width(), mask.Height(), src.Width(), src.Height()))
	}

	srcRectC := srcRect
	dstRectC := srcRect.MoveTo(destPos.X, destPos.Y)
	srcRectC, dstRectC = clipBlitRects(srcRectC, dstRectC, src.Bounds(), ms.Bounds())
	if !srcRectC.IsValidRect() || !dstRectC.IsValidRect() {
		return
	}

	srcPtr := src.BasePtr(srcRectC.Left, srcRectC.Top)
	maskPtr := mask.BasePtr(srcRectC.Left, srcRectC.Top)
	dstPtr := ms.inner.BasePtr(dstRectC.Left, dstRectC.Top)
	w, h := srcRectC.Width(), srcRectC.Height()

	dstFormat := ms.Format()
	srcFormat := src.Format()

	switch {
	case dstFormat == srcFormat:
		blit.Masked(dstPtr, srcPtr, maskPtr, ms.Pitch(), src.Pitch(), mask.Pitch(),
			w, h, int(dstFormat.BytesPerPixel))

	case srcFormat.IsCLUT8():
		if srcPalette == nil || srcPalette.Size() == 0 {
			panic("raster: MaskBlitFrom: CLUT8 source requires a palette")
		}
		if dstFormat.IsCLUT8() {
			panic("raster: MaskBlitFrom: cross-format blit into a CLUT8 destination")
		}
		m := paletteToMap(srcPalette, dstFormat)
		blit.CrossMappedMasked(dstPtr, srcPtr, maskPtr, ms.Pitch(), src.Pitch(), mask.Pitch(),
			w, h, int(dstFormat.BytesPerPixel), &m)

	default:
		if dstFormat.IsCLUT8() {
			panic("raster: MaskBlitFrom: cross-format blit into a CLUT8 destination")
		}
		crossMaskedBlit(dstPtr, srcPtr, maskPtr, ms.Pitch(), src.Pitch(), mask.Pitch(),
			w, h, dstFormat, srcFormat)
	}

	ms.AddDirtyRect(dstRectC)
}

// crossBlit converts every pixel between two direct-color formats:
// decode the source pixel's ARGB through its format, re-encode through
// the destination format.
func crossBlit(dst, src []byte, dstPitch, srcPitch, w, h int, dstFormat, srcFormat PixelFormat) {
	srcBpp := int(srcFormat.BytesPerPixel)
	dstBpp := int(dstFormat.BytesPerPixel)
	for y := 0; y < h; y++ {
		srcRow := src[y*srcPitch:]
		dstRow := dst[y*dstPitch:]
		for x := 0; x < w; x++ {
			col := blit.ReadPixel(srcRow[x*srcBpp:], srcBpp)
			a, r, g, b := srcFormat.ColorToARGB(col)
			blit.WritePixel(dstRow[x*dstBpp:], dstBpp, dstFormat.ARGBToColor(a, r, g, b))
		}
	}
}

// crossKeyedBlit is crossBlit with a color-key skip on the raw source
// value.
func crossKeyedBlit(dst, src []byte, dstPitch, srcPitch, w, h int, dstFormat, srcFormat PixelFormat, key uint32) {
	srcBpp := int(srcFormat.BytesPerPixel)
	dstBpp := int(dstFormat.BytesPerPixel)
	for y := 0; y < h; y++ {
		srcRow := src[y*srcPitch:]
		dstRow := dst[y*dstPitch:]
		for x := 0; x < w; x++ {
			col := blit.ReadPixel(srcRow[x*srcBpp:], srcBpp)
			if col == key {
				continue
			}
			a, r, g, b := srcFormat.ColorToARGB(col)
			blit.WritePixel(dstRow[x*dstBpp:], dstBpp, dstFormat.ARGBToColor(a, r, g, b))
		}
	}
}

// crossMaskedBlit is crossBlit gated by a mask surface of the source's
// pixel width.
func crossMaskedBlit(dst, src, mask []byte, dstPitch, srcPitch, maskPitch, w, h int, dstFormat, srcFormat PixelFormat) {
	srcBpp := int(srcFormat.BytesPerPixel)
	dstBpp := int(dstFormat.BytesPerPixel)
	for y := 0; y < h; y++ {
		srcRow := src[y*srcPitch:]
		dstRow := dst[y*dstPitch:]
		maskRow := mask[y*maskPitch:]
		for x := 0; x < w; x++ {
			if blit.ReadPixel(maskRow[x*srcBpp:], srcBpp) == 0 {
				continue
			}
			col := blit.ReadPixel(srcRow[x*srcBpp:], srcBpp)
			a, r, g, b := srcFormat.ColorToARGB(col)
			blit.WritePixel(dstRow[x*dstBpp:], dstBpp, dstFormat.ARGBToColor(a, r, g, b))
		}
	}
}
