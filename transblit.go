package raster

import "encoding/binary"

// KeyFromSource, passed as the transparent color of a TransBlit call,
// selects the source surface's own transparent color key.
const KeyFromSource = ^uint32(0)

// pixelType enumerates the machine integer widths a transparent-color
// blit can dispatch over. Packed 3-byte pixels have no machine type and
// are intentionally unsupported here; they remain fully supported in the
// simple and scaled blit paths.
type pixelType interface {
	uint8 | uint16 | uint32
}

// loadPx loads a pixel of type T from row at byte offset off.
func loadPx[T pixelType](row []byte, off int) T {
	var z T
	switch any(z).(type) {
	case uint8:
		return T(row[off])
	case uint16:
		return T(binary.LittleEndian.Uint16(row[off:]))
	default:
		return T(binary.LittleEndian.Uint32(row[off:]))
	}
}

// storePx stores a pixel of type T into row at byte offset off.
func storePx[T pixelType](row []byte, off int, v T) {
	switch any(v).(type) {
	case uint8:
		row[off] = byte(v)
	case uint16:
		binary.LittleEndian.PutUint16(row[off:], uint16(v))
	default:
		binary.LittleEndian.PutUint32(row[off:], uint32(v))
	}
}

// TransBlitFrom draws src onto this surface at destPos, treating the
// source's transparent color key as fully transparent.
func (ms *ManagedSurface) TransBlitFrom(src *ManagedSurface, destPos Point) {
	srcRect := src.Bounds()
	ms.TransBlitFromRect(src, srcRect, srcRect.MoveTo(destPos.X, destPos.Y), KeyFromSource, false, 0xFF)
}

// TransBlitFromRect draws the srcRect portion of src into destRect with
// nearest-neighbor scaling, treating transColor as fully transparent
// regardless of its decoded alpha. Pass KeyFromSource to use the
// source's own key. flipped samples the source rows right-to-left, and
// srcAlpha (0-255) scales every source pixel's effective alpha.
//
// When both surfaces are CLUT8, source palette indices are remapped to
// the closest destination palette entries.
func (ms *ManagedSurface) TransBlitFromRect(src *ManagedSurface, srcRect, destRect Rect,
	transColor uint32, flipped bool, srcAlpha uint8) {

	if transColor == KeyFromSource && src.transparentColorSet {
		transColor = src.transparentColor
	}
	ms.transBlitInner(&src.inner, srcRect, destRect, transColor, flipped,
		srcAlpha, src.palette, ms.palette)
}

// TransBlitFromSurface draws the srcRect portion of a plain Surface into
// destRect, treating transColor as fully transparent. srcPalette is
// required when src is CLUT8.
func (ms *ManagedSurface) TransBlitFromSurface(src *Surface, srcRect, destRect Rect,
	transColor uint32, flipped bool, srcAlpha uint8, srcPalette *Palette) {
	ms.transBlitInner(src, srcRect, destRect, transColor, flipped, srcAlpha, srcPalette, nil)
}

// transBlitInner dispatches over the {1,2,4}-byte source x destination
// width combinations, instantiating the generic blit loop per concrete
// pixel type pair so the inner loops carry no interface dispatch.
func (ms *ManagedSurface) transBlitInner(src *Surface, srcRect, destRect Rect,
	transColor uint32, flipped bool, srcAlpha uint8, srcPalette, dstPalette *Palette) {

	if src.Width() == 0 || src.Height() == 0 || destRect.Width() == 0 || destRect.Height() == 0 {
		return
	}

	srcBpp := src.Format().BytesPerPixel
	dstBpp := ms.Format().BytesPerPixel

	switch {
	case srcBpp == 1 && dstBpp == 1:
		transBlit[uint8, uint8](src, srcRect, ms, destRect, transColor, flipped, srcAlpha, srcPalette, dstPalette)
	case srcBpp == 1 && dstBpp == 2:
		transBlit[uint8, uint16](src, srcRect, ms, destRect, transColor, flipped, srcAlpha, srcPalette, dstPalette)
	case srcBpp == 1 && dstBpp == 4:
		transBlit[uint8, uint32](src, srcRect, ms, destRect, transColor, flipped, srcAlpha, srcPalette, dstPalette)
	case srcBpp == 2 && dstBpp == 1:
		transBlit[uint16, uint8](src, srcRect, ms, destRect, transColor, flipped, srcAlpha, srcPalette, dstPalette)
	case srcBpp == 2 && dstBpp == 2:
		transBlit[uint16, uint16](src, srcRect, ms, destRect, transColor, flipped, srcAlpha, srcPalette, dstPalette)
	case srcBpp == 2 && dstBpp == 4:
		transBlit[uint16, uint32](src, srcRect, ms, destRect, transColor, flipped, srcAlpha, srcPalette, dstPalette)
	case srcBpp == 4 && dstBpp == 1:
		transBlit[uint32, uint8](src, srcRect, ms, destRect, transColor, flipped, srcAlpha, srcPalette, dstPalette)
	case srcBpp == 4 && dstBpp == 2:
		transBlit[uint32, uint16](src, srcRect, ms, destRect, transColor, flipped, srcAlpha, srcPalette, dstPalette)
	case srcBpp == 4 && dstBpp == 4:
		transBlit[uint32, uint32](src, srcRect, ms, destRect, transColor, flipped, srcAlpha, srcPalette, dstPalette)
	default:
		panic("raster: TransBlitFrom: bytesPerPixel must be 1, 2, or 4")
	}

	ms.AddDirtyRect(destRect)
}

func transBlit[TSrc, TDst pixelType](src *Surface, srcRect Rect, dst *ManagedSurface, destRect Rect,
	transColor uint32, flipped bool, srcAlpha uint8, srcPalette, dstPalette *Palette) {

	scaleX := ScaleThreshold * srcRect.Width() / destRect.Width()
	scaleY := ScaleThreshold * srcRect.Height() / destRect.Height()

	srcFormat := src.Format()
	dstFormat := dst.Format()
	srcBpp := int(srcFormat.BytesPerPixel)
	dstBpp := int(dstFormat.BytesPerPixel)
	srcW := src.Width()
	dstW, dstH := dst.Width(), dst.Height()

	var lookup []byte
	if srcPalette != nil && dstPalette != nil {
		lookup = buildRemapTable(srcPalette, dstPalette)
	}

	// For a 32-bit source the key is matched on RGB alone, so keyed
	// pixels are skipped irrespective of their alpha bits.
	var rst, gst, bst, rdt, gdt, bdt byte
	isSrcTrans32 := srcFormat.HasAlpha() && transColor != KeyFromSource && transColor > 0
	if isSrcTrans32 {
		rst, gst, bst = srcFormat.ColorToRGB(transColor)
	}
	isDestTrans32 := dstFormat.HasAlpha() && dst.HasTransparentColor()
	if isDestTrans32 {
		rdt, gdt, bdt = dstFormat.ColorToRGB(dst.TransparentColor())
	}

	for destY, scaleYCtr := destRect.Top, 0; destY < destRect.Bottom; destY, scaleYCtr = destY+1, scaleYCtr+scaleY {
		if destY < 0 || destY >= dstH {
			continue
		}
		srcRow := src.BasePtr(0, scaleYCtr/ScaleThreshold+srcRect.Top)
		dstRow := dst.inner.BasePtr(0, destY)

		for destX, scaleXCtr := destRect.Left, 0; destX < destRect.Right; destX, scaleXCtr = destX+1, scaleXCtr+scaleX {
			if destX < 0 || destX >= dstW {
				continue
			}

			sx := scaleXCtr / ScaleThreshold
			if flipped {
				sx = srcW - sx - 1
			}
			srcVal := loadPx[TSrc](srcRow, (srcRect.Left+sx)*srcBpp)
			dstOff := destX * dstBpp
			destVal := loadPx[TDst](dstRow, dstOff)

			isDestPixelTrans := false
			if isDestTrans32 {
				r, g, b := dstFormat.ColorToRGB(uint32(destVal))
				isDestPixelTrans = r == rdt && g == gdt && b == bdt
			} else if dst.HasTransparentColor() {
				isDestPixelTrans = uint32(destVal) == dst.TransparentColor()
			}

			if isSrcTrans32 {
				r, g, b := srcFormat.ColorToRGB(uint32(srcVal))
				if r == rst && g == gst && b == bst {
					continue
				}
			} else if uint32(srcVal) == transColor {
				continue
			}

			if isDestPixelTrans {
				// The destination sentinel marks "no content": clear it
				// so compositing never blends with stale color.
				destVal = 0
			}

			destVal = transBlitPixel[TSrc, TDst](srcVal, destVal, srcFormat, dstFormat,
				srcAlpha, srcPalette, lookup)
			storePx(dstRow, dstOff, destVal)
		}
	}
}

// transBlitPixel composites one source pixel onto one destination pixel,
// decoding and re-encoding through the two formats.
func transBlitPixel[TSrc, TDst pixelType](srcVal TSrc, destVal TDst,
	srcFormat, dstFormat PixelFormat, srcAlpha uint8, srcPalette *Palette, lookup []byte) TDst {

	// Index-to-index: copy the palette index, remapping when a lookup
	// table is available. No alpha math applies.
	if srcFormat.IsCLUT8() && dstFormat.IsCLUT8() {
		if srcAlpha == 0 {
			return destVal
		}
		out := byte(srcVal)
		if lookup != nil {
			out = lookup[out]
		}
		return TDst(out)
	}

	var aSrc, rSrc, gSrc, bSrc byte
	if srcFormat.IsCLUT8() {
		if srcPalette == nil || srcPalette.Size() == 0 {
			panic("raster: TransBlitFrom: CLUT8 source requires a palette")
		}
		rSrc, gSrc, bSrc = srcPalette.Get(int(srcVal))
		aSrc = 0xFF
	} else {
		aSrc, rSrc, gSrc, bSrc = srcFormat.ColorToARGB(uint32(srcVal))
	}

	if srcAlpha != 0xFF {
		aSrc = byte(uint32(aSrc) * uint32(srcAlpha) / 255)
	}

	var aDest, rDest, gDest, bDest byte
	switch {
	case aSrc == 0:
		// Completely transparent, so skip
		return destVal

	case aSrc == 0xFF:
		// Completely opaque, so copy RGB values over
		aDest, rDest, gDest, bDest = 0xFF, rSrc, gSrc, bSrc

	default:
		aDest, rDest, gDest, bDest = dstFormat.ColorToARGB(uint32(destVal))
		sAlpha := float64(aSrc) / 255.0
		dAlpha := float64(aDest) / 255.0
		dAlpha *= 1.0 - sAlpha
		rDest = byte((float64(rSrc)*sAlpha + float64(rDest)*dAlpha) / (sAlpha + dAlpha))
		gDest = byte((float64(gSrc)*sAlpha + float64(gDest)*dAlpha) / (sAlpha + dAlpha))
		bDest = byte((float64(bSrc)*sAlpha + float64(bDest)*dAlpha) / (sAlpha + dAlpha))
		aDest = byte(255.0 * (sAlpha + dAlpha))
	}

	return TDst(dstFormat.ARGBToColor(aDest, rDest, gDest, bDest))
}
