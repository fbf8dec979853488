// Package blend implements the 32-bit blended blit engine for
// github.com/gogpu/raster: per-pixel compositing with color modulation,
// selectable blend and alpha-interpretation modes, flipping, and
// fixed-point 2D scaling with fractional phase offsets.
//
// The engine operates on raw 4-byte-per-pixel rows; the caller resolves
// clipping, flip-adjusted source windows, and scale phase before
// invoking it.
package blend

// Mode is the arithmetic rule combining source and destination colors.
type Mode int

const (
	// ModeNormal is standard "over" compositing.
	ModeNormal Mode = iota
	// ModeAdditive adds the weighted source to the destination.
	ModeAdditive
	// ModeSubtractive subtracts the weighted source from the destination.
	ModeSubtractive
	// ModeMultiply darkens the destination by the source.
	ModeMultiply
)

// String returns a string representation of the blend mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeAdditive:
		return "Additive"
	case ModeSubtractive:
		return "Subtractive"
	case ModeMultiply:
		return "Multiply"
	default:
		return "Unknown"
	}
}

// AlphaMode selects how source alpha values are interpreted.
type AlphaMode int

const (
	// AlphaStandard treats color channels as straight (unmultiplied).
	AlphaStandard AlphaMode = iota
	// AlphaPremultiplied treats color channels as already multiplied by
	// their alpha.
	AlphaPremultiplied
	// AlphaOpaque ignores source alpha entirely.
	AlphaOpaque
	// AlphaBinary snaps source alpha to fully transparent or fully
	// opaque.
	AlphaBinary
)

// Flip flags for Args.Flip.
const (
	FlipH = 1 << iota
	FlipV
)

// ScaleThreshold is the fixed-point unit of the engine's scale factors.
const ScaleThreshold = 0x100

// ScaleFactor returns the fixed-point ratio mapping a destination
// extent back onto a source extent.
func ScaleFactor(srcExtent, dstExtent int) int {
	return ScaleThreshold * srcExtent / dstExtent
}

// Layout gives the byte position of each channel inside a 4-byte pixel.
type Layout struct {
	R, G, B, A int
}

// Args carries one blit invocation. Src points at the top-left pixel of
// the clipped, flip-adjusted source window of SrcW x SrcH pixels; Dst
// points at the destination surface origin, with the target area at
// (PosX, PosY) sized Width x Height.
type Args struct {
	Dst, Src             []byte
	DstPitch, SrcPitch   int
	PosX, PosY           int
	Width, Height        int
	SrcW, SrcH           int
	ScaleX, ScaleY       int
	ScaleXoff, ScaleYoff int

	// ColorMod is a packed ARGB modulation color; every source channel,
	// alpha included, is scaled by the matching modulation channel.
	ColorMod uint32
	Flip     int
	Mode     Mode
	Alpha    AlphaMode
	Layout   Layout
}

// Blit composites the source window into the destination area.
func Blit(a Args) {
	cmA := byte(a.ColorMod >> 24)
	cmR := byte(a.ColorMod >> 16)
	cmG := byte(a.ColorMod >> 8)
	cmB := byte(a.ColorMod)

	for j := 0; j < a.Height; j++ {
		sy := (a.ScaleYoff + j*a.ScaleY) / ScaleThreshold
		if a.Flip&FlipV != 0 {
			sy = a.SrcH - 1 - sy
		}
		srcRow := a.Src[sy*a.SrcPitch:]
		dstRow := a.Dst[(a.PosY+j)*a.DstPitch+a.PosX*4:]

		for i := 0; i < a.Width; i++ {
			sx := (a.ScaleXoff + i*a.ScaleX) / ScaleThreshold
			if a.Flip&FlipH != 0 {
				sx = a.SrcW - 1 - sx
			}
			px := srcRow[sx*4 : sx*4+4]

			sr := px[a.Layout.R]
			sg := px[a.Layout.G]
			sb := px[a.Layout.B]
			sa := px[a.Layout.A]

			switch a.Alpha {
			case AlphaOpaque:
				sa = 0xFF
			case AlphaBinary:
				if sa != 0 {
					sa = 0xFF
				}
			}

			blendPixel(dstRow[i*4:i*4+4], sr, sg, sb, sa,
				cmA, cmR, cmG, cmB, a.Mode, a.Alpha == AlphaPremultiplied, a.Layout)
		}
	}
}

// Fill composites a constant modulation color over every pixel of the
// w x h destination area starting at dst.
func Fill(dst []byte, pitch, w, h int, colorMod uint32, mode Mode, layout Layout) {
	cmA := byte(colorMod >> 24)
	cmR := byte(colorMod >> 16)
	cmG := byte(colorMod >> 8)
	cmB := byte(colorMod)

	for y := 0; y < h; y++ {
		row := dst[y*pitch:]
		for x := 0; x < w; x++ {
			// The fill color acts as an opaque white source under
			// modulation: the modulation channels are the color.
			blendPixel(row[x*4:x*4+4], 0xFF, 0xFF, 0xFF, 0xFF,
				cmA, cmR, cmG, cmB, mode, false, layout)
		}
	}
}

// blendPixel composites one modulated source pixel onto 4 destination
// bytes in place.
func blendPixel(dst []byte, sr, sg, sb, sa, cmA, cmR, cmG, cmB byte, mode Mode, premul bool, l Layout) {
	ca := mulDiv255(sa, cmA)
	if ca == 0 {
		return
	}

	cr := mulDiv255(sr, cmR)
	cg := mulDiv255(sg, cmG)
	cb := mulDiv255(sb, cmB)

	if premul {
		// Channels carry the original alpha already; scaling by the
		// modulation alpha keeps them premultiplied by ca.
		cr = mulDiv255(cr, cmA)
		cg = mulDiv255(cg, cmA)
		cb = mulDiv255(cb, cmA)
	} else {
		cr = mulDiv255(cr, ca)
		cg = mulDiv255(cg, ca)
		cb = mulDiv255(cb, ca)
	}

	dr := dst[l.R]
	dg := dst[l.G]
	db := dst[l.B]
	da := dst[l.A]

	switch mode {
	case ModeAdditive:
		dst[l.R] = addClamp(dr, cr)
		dst[l.G] = addClamp(dg, cg)
		dst[l.B] = addClamp(db, cb)

	case ModeSubtractive:
		dst[l.R] = subClamp(dr, cr)
		dst[l.G] = subClamp(dg, cg)
		dst[l.B] = subClamp(db, cb)

	case ModeMultiply:
		inv := 255 - ca
		dst[l.R] = addClamp(mulDiv255(dr, inv), mulDiv255(mulDiv255(dr, sr), ca))
		dst[l.G] = addClamp(mulDiv255(dg, inv), mulDiv255(mulDiv255(dg, sg), ca))
		dst[l.B] = addClamp(mulDiv255(db, inv), mulDiv255(mulDiv255(db, sb), ca))

	default: // ModeNormal
		inv := 255 - ca
		dst[l.R] = addClamp(mulDiv255(dr, inv), cr)
		dst[l.G] = addClamp(mulDiv255(dg, inv), cg)
		dst[l.B] = addClamp(mulDiv255(db, inv), cb)
		dst[l.A] = addClamp(mulDiv255(da, inv), ca)
	}
}
