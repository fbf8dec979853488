package raster

import "github.com/gogpu/raster/internal/blit"

// ScaleThreshold is the unit of the fixed-point scale factors used by
// the scaled blit paths: scale = ScaleThreshold*srcExtent/dstExtent, so
// nearest-neighbor sampling accumulates an integer counter per
// destination pixel and divides by ScaleThreshold instead of performing
// floating-point division in the inner loop.
const ScaleThreshold = 0x100

// BlitFrom draws src onto this surface at destPos, honoring the
// source's alpha channel. A source carrying a transparent color key is
// rerouted through TransBlitFrom so the key is honored too.
func (ms *ManagedSurface) BlitFrom(src *ManagedSurface, destPos Point) {
	srcRect := src.Bounds()
	destRect := srcRect.MoveTo(destPos.X, destPos.Y)
	if src.transparentColorSet {
		ms.TransBlitFromRect(src, srcRect, destRect, KeyFromSource, false, 0xFF)
		return
	}
	ms.blitFromInner(&src.inner, srcRect, destRect, src.palette)
}

// BlitFromRect draws the srcRect portion of src into destRect,
// stretching or shrinking with nearest-neighbor sampling when the two
// rectangles differ in size. A source carrying a transparent color key
// is rerouted through TransBlitFrom.
func (ms *ManagedSurface) BlitFromRect(src *ManagedSurface, srcRect, destRect Rect) {
	if src.transparentColorSet {
		ms.TransBlitFromRect(src, srcRect, destRect, KeyFromSource, false, 0xFF)
		return
	}
	ms.blitFromInner(&src.inner, srcRect, destRect, src.palette)
}

// BlitFromSurface draws the srcRect portion of a plain Surface into
// destRect with nearest-neighbor scaling and alpha compositing.
// srcPalette is required when src is CLUT8 and this surface is not.
func (ms *ManagedSurface) BlitFromSurface(src *Surface, srcRect, destRect Rect, srcPalette *Palette) {
	ms.blitFromInner(src, srcRect, destRect, srcPalette)
}

func (ms *ManagedSurface) blitFromInner(src *Surface, srcRect, destRect Rect, srcPalette *Palette) {
	if destRect.IsEmpty() || !srcRect.IsValidRect() {
		return
	}

	scaleX := ScaleThreshold * srcRect.Width() / destRect.Width()
	scaleY := ScaleThreshold * srcRect.Height() / destRect.Height()

	// Copy formats into locals so the compiler can hoist loop conditions;
	// nothing inside the loops can clobber them.
	dstFormat := ms.Format()
	srcFormat := src.Format()

	isSameFormat := dstFormat == srcFormat
	if !isSameFormat {
		if srcFormat.IsCLUT8() {
			if dstFormat.IsCLUT8() {
				panic("raster: BlitFrom: cross-format blit into a CLUT8 destination")
			}
			if srcPalette == nil || srcPalette.Size() == 0 {
				panic("raster: BlitFrom: CLUT8 source requires a palette")
			}
		} else if dstFormat.IsCLUT8() {
			panic("raster: BlitFrom: cross-format blit into a CLUT8 destination")
		}
	}

	alphaMask := srcFormat.AlphaMask()
	srcBpp := int(srcFormat.BytesPerPixel)
	dstBpp := int(dstFormat.BytesPerPixel)
	dstW, dstH := ms.Width(), ms.Height()

	noScale := scaleX == ScaleThreshold && scaleY == ScaleThreshold
	for destY, scaleYCtr := destRect.Top, 0; destY < destRect.Bottom; destY, scaleYCtr = destY+1, scaleYCtr+scaleY {
		if destY < 0 || destY >= dstH {
			continue
		}
		srcY := scaleYCtr/ScaleThreshold + srcRect.Top
		srcRow := src.BasePtr(0, srcY)
		dstRow := ms.inner.BasePtr(0, destY)

		// For a paletted destination the palette is assumed shared and
		// free of transparency, so an unscaled row is a straight copy.
		if dstFormat.IsCLUT8() && noScale {
			width := srcRect.Width()
			sx := srcRect.Left
			dx := destRect.Left
			if dx+width > dstW {
				width = dstW - dx
			}
			if dx < 0 {
				sx -= dx
				width += dx
				dx = 0
			}
			if width > 0 {
				copy(dstRow[dx:dx+width], srcRow[sx:sx+width])
			}
			continue
		}

		for destX, scaleXCtr := destRect.Left, 0; destX < destRect.Right; destX, scaleXCtr = destX+1, scaleXCtr+scaleX {
			if destX < 0 || destX >= dstW {
				continue
			}

			srcOff := (srcRect.Left + scaleXCtr/ScaleThreshold) * srcBpp
			dstOff := destX * dstBpp

			if dstFormat.IsCLUT8() {
				dstRow[dstOff] = srcRow[srcOff]
				continue
			}

			col := blit.ReadPixel(srcRow[srcOff:], srcBpp)

			isOpaque := col&alphaMask == alphaMask
			isTransparent := col&alphaMask == 0
			if srcFormat.IsCLUT8() {
				isOpaque, isTransparent = true, false
			}

			var destPixel uint32
			switch {
			case !isOpaque && isTransparent:
				// Completely transparent, so skip
				continue

			case isOpaque && isSameFormat:
				// Completely opaque, same format, copy the entire value
				destPixel = col

			default:
				var aSrc, rSrc, gSrc, bSrc byte
				if srcFormat.IsCLUT8() {
					rSrc, gSrc, bSrc = srcPalette.Get(int(col))
					aSrc = 0xFF
				} else {
					aSrc, rSrc, gSrc, bSrc = srcFormat.ColorToARGB(col)
				}

				var aDest, rDest, gDest, bDest byte
				if isOpaque {
					aDest, rDest, gDest, bDest = aSrc, rSrc, gSrc, bSrc
				} else {
					destColor := blit.ReadPixel(dstRow[dstOff:], dstBpp)
					aDest, rDest, gDest, bDest = dstFormat.ColorToARGB(destColor)

					if aDest == 0xFF {
						// Opaque target: integer blend, equivalent to
						// dividing by 255 twice with rounding.
						rDest = byte((uint32(rDest)*(255-uint32(aSrc)) + uint32(rSrc)*uint32(aSrc)) * (257 * 257) >> 24)
						gDest = byte((uint32(gDest)*(255-uint32(aSrc)) + uint32(gSrc)*uint32(aSrc)) * (257 * 257) >> 24)
						bDest = byte((uint32(bDest)*(255-uint32(aSrc)) + uint32(bSrc)*uint32(aSrc)) * (257 * 257) >> 24)
					} else {
						// Translucent target: full "over" operator
						// accumulating both alphas.
						sAlpha := float64(aSrc) / 255.0
						dAlpha := float64(aDest) / 255.0
						dAlpha *= 1.0 - sAlpha
						rDest = byte((float64(rSrc)*sAlpha + float64(rDest)*dAlpha) / (sAlpha + dAlpha))
						gDest = byte((float64(gSrc)*sAlpha + float64(gDest)*dAlpha) / (sAlpha + dAlpha))
						bDest = byte((float64(bSrc)*sAlpha + float64(bDest)*dAlpha) / (sAlpha + dAlpha))
						aDest = byte(255.0 * (sAlpha + dAlpha))
					}
				}

				destPixel = dstFormat.ARGBToColor(aDest, rDest, gDest, bDest)
			}

			blit.WritePixel(dstRow[dstOff:], dstBpp, destPixel)
		}
	}

	ms.AddDirtyRect(destRect)
}
