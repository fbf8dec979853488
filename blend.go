package raster

import (
	"github.com/gogpu/raster/internal/blend"
)

// BlendMode selects the arithmetic used by the blended blit family.
type BlendMode = blend.Mode

// Blend modes re-exported from the engine.
const (
	BlendNormal      = blend.ModeNormal
	BlendAdditive    = blend.ModeAdditive
	BlendSubtractive = blend.ModeSubtractive
	BlendMultiply    = blend.ModeMultiply
)

// AlphaType selects how the blended blit family interprets source alpha.
type AlphaType = blend.AlphaMode

// Alpha interpretations re-exported from the engine.
const (
	AlphaStandard      = blend.AlphaStandard
	AlphaPremultiplied = blend.AlphaPremultiplied
	AlphaOpaque        = blend.AlphaOpaque
	AlphaBinary        = blend.AlphaBinary
)

// Flipping flags for the blended and keyed blit families.
const (
	FlipNone       = 0
	FlipHorizontal = blend.FlipH
	FlipVertical   = blend.FlipV
	FlipBoth       = blend.FlipH | blend.FlipV
)

// ARGB packs four 8-bit channels into the uint32 modulation color used
// by the blended blits.
func ARGB(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// isBlendFormatSupported reports whether the engine can composite
// directly between the two formats: both must be 4-byte formats with
// four byte-aligned 8-bit channels and identical channel order.
func isBlendFormatSupported(src, dst PixelFormat) bool {
	if src != dst {
		return false
	}
	if dst.BytesPerPixel != 4 || !dst.HasAlpha() {
		return false
	}
	if dst.RBits != 8 || dst.GBits != 8 || dst.BBits != 8 || dst.ABits != 8 {
		return false
	}
	return dst.RShift%8 == 0 && dst.GShift%8 == 0 && dst.BShift%8 == 0 && dst.AShift%8 == 0
}

// blendLayout maps a byte-aligned 8888 format onto the engine's channel
// byte offsets. Pixels are stored little-endian, so a channel's byte
// position is its shift divided by 8.
func blendLayout(f PixelFormat) blend.Layout {
	return blend.Layout{
		R: int(f.RShift) / 8,
		G: int(f.GShift) / 8,
		B: int(f.BShift) / 8,
		A: int(f.AShift) / 8,
	}
}

// BlendBlitFrom composites the whole source surface at destPos using
// normal blending, standard alpha and no modulation.
func (ms *ManagedSurface) BlendBlitFrom(src *ManagedSurface, destPos Point) Rect {
	srcRect := src.Bounds()
	destRect := srcRect.MoveTo(destPos.X, destPos.Y)
	return ms.BlendBlitFromRect(src, srcRect, destRect, FlipNone, ARGB(255, 255, 255, 255), BlendNormal, AlphaStandard)
}

// BlendBlitFromRect composites srcRect of src into destRect, scaling
// when the two rectangles differ in size. It returns the destination
// area actually written, which may be empty after clipping.
func (ms *ManagedSurface) BlendBlitFromRect(src *ManagedSurface, srcRect, destRect Rect,
	flipping int, colorMod uint32, mode BlendMode, alphaType AlphaType) Rect {
	return src.BlendBlitTo(ms, srcRect, destRect, flipping, colorMod, mode, alphaType)
}

// BlendBlitTo composites srcRect of this surface into destRect of
// target. The source and destination must share a byte-aligned 8888
// format with alpha; anything else logs a warning and writes nothing.
// The returned rectangle is the clipped destination area written.
func (ms *ManagedSurface) BlendBlitTo(target *ManagedSurface, srcRect, destRect Rect,
	flipping int, colorMod uint32, mode BlendMode, alphaType AlphaType) Rect {
	if ms.Empty() || target.Empty() || !srcRect.IsValidRect() || !destRect.IsValidRect() {
		return Rect{}
	}
	if !isBlendFormatSupported(ms.Format(), target.Format()) {
		Logger().Warn("blend blit between unsupported formats",
			"src", ms.Format().String(), "dst", target.Format().String())
		return Rect{}
	}
	// A zero modulation alpha contributes nothing.
	if colorMod&0xFF000000 == 0 {
		return Rect{}
	}

	scaleX := blend.ScaleFactor(srcRect.Width(), destRect.Width())
	scaleY := blend.ScaleFactor(srcRect.Height(), destRect.Height())
	scaleXoff, scaleYoff := 0, 0
	srcArea, dstArea := srcRect, destRect

	// Clip the destination against the target, advancing the source
	// window and fractional phase so the visible pixels keep sampling
	// the same source positions.
	if dstArea.Left < 0 {
		scaleXoff = (-dstArea.Left * scaleX) % blend.ScaleThreshold
		srcArea.Left += -dstArea.Left * scaleX / blend.ScaleThreshold
		dstArea.Left = 0
	}
	if dstArea.Top < 0 {
		scaleYoff = (-dstArea.Top * scaleY) % blend.ScaleThreshold
		srcArea.Top += -dstArea.Top * scaleY / blend.ScaleThreshold
		dstArea.Top = 0
	}
	if dstArea.Right > target.Width() {
		srcArea.Right -= (dstArea.Right - target.Width()) * scaleX / blend.ScaleThreshold
		dstArea.Right = target.Width()
	}
	if dstArea.Bottom > target.Height() {
		srcArea.Bottom -= (dstArea.Bottom - target.Height()) * scaleY / blend.ScaleThreshold
		dstArea.Bottom = target.Height()
	}
	srcArea = srcArea.Clip(ms.Bounds())

	if dstArea.IsEmpty() || srcArea.IsEmpty() {
		return Rect{}
	}

	// Mirror the source window back inside the original request so a
	// clipped flipped blit still shows the matching part of the image.
	if flipping&FlipHorizontal != 0 {
		w := srcArea.Width()
		srcArea.Left = srcRect.Left + (srcRect.Right - srcArea.Right)
		srcArea.Right = srcArea.Left + w
		scaleXoff = (blend.ScaleThreshold - (scaleXoff + dstArea.Width()*scaleX)%blend.ScaleThreshold) % blend.ScaleThreshold
	}
	if flipping&FlipVertical != 0 {
		h := srcArea.Height()
		srcArea.Top = srcRect.Top + (srcRect.Bottom - srcArea.Bottom)
		srcArea.Bottom = srcArea.Top + h
		scaleYoff = (blend.ScaleThreshold - (scaleYoff + dstArea.Height()*scaleY)%blend.ScaleThreshold) % blend.ScaleThreshold
	}

	blend.Blit(blend.Args{
		Dst:       target.inner.BasePtr(0, 0),
		Src:       ms.inner.BasePtr(srcArea.Left, srcArea.Top),
		DstPitch:  target.Pitch(),
		SrcPitch:  ms.Pitch(),
		PosX:      dstArea.Left,
		PosY:      dstArea.Top,
		Width:     dstArea.Width(),
		Height:    dstArea.Height(),
		SrcW:      srcArea.Width(),
		SrcH:      srcArea.Height(),
		ScaleX:    scaleX,
		ScaleY:    scaleY,
		ScaleXoff: scaleXoff,
		ScaleYoff: scaleYoff,
		ColorMod:  colorMod,
		Flip:      flipping,
		Mode:      mode,
		Alpha:     alphaType,
		Layout:    blendLayout(target.Format()),
	})

	target.AddDirtyRect(dstArea)
	return dstArea
}

// BlendFillRect composites a constant color over r. An opaque color
// with normal blending degenerates to a plain fill.
func (ms *ManagedSurface) BlendFillRect(r Rect, colorMod uint32, mode BlendMode) {
	if ms.Empty() {
		return
	}
	if !isBlendFormatSupported(ms.Format(), ms.Format()) {
		Logger().Warn("blend fill on unsupported format", "format", ms.Format().String())
		return
	}
	if colorMod&0xFF000000 == 0 {
		return
	}
	if mode == BlendNormal && colorMod>>24 == 0xFF {
		a, red, g, b := uint8(colorMod>>24), uint8(colorMod>>16), uint8(colorMod>>8), uint8(colorMod)
		ms.FillRect(r, ms.Format().ARGBToColor(a, red, g, b))
		return
	}

	area := r.Clip(ms.Bounds())
	if area.IsEmpty() {
		return
	}

	blend.Fill(ms.inner.BasePtr(area.Left, area.Top), ms.Pitch(),
		area.Width(), area.Height(), colorMod, mode, blendLayout(ms.Format()))
	ms.AddDirtyRect(area)
}
