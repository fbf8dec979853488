package raster

import "math"

// Interpolation selects the sampling filter used by the geometric
// transforms.
type Interpolation int

const (
	// InterpNearest samples the closest source pixel.
	InterpNearest Interpolation = iota
	// InterpBilinear averages the four surrounding source pixels.
	// Palette-indexed surfaces cannot be averaged and fall back to
	// nearest sampling.
	InterpBilinear
)

// Transform describes a rotation and scale applied around a hotspot.
type Transform struct {
	// Angle is the clockwise rotation in degrees.
	Angle float64
	// ScaleX and ScaleY are percentages; 100 means unscaled.
	ScaleX, ScaleY int
	// Hotspot is the pivot point in source coordinates.
	Hotspot Point
}

// NewTransform returns the identity transform pivoting at the origin.
func NewTransform() Transform {
	return Transform{ScaleX: 100, ScaleY: 100}
}

// ScaleSurface resamples the surface to newW x newH pixels and returns
// the result as a new surface. The transparent color and palette carry
// over.
func (ms *ManagedSurface) ScaleSurface(newW, newH int, filter Interpolation) (*ManagedSurface, error) {
	out, err := NewManagedSurface(newW, newH, ms.Format())
	if err != nil {
		return nil, err
	}
	ms.copyMetadataTo(out)

	if ms.Empty() || newW <= 0 || newH <= 0 {
		return out, nil
	}

	if filter == InterpBilinear && !ms.Format().IsCLUT8() {
		sx := float64(ms.Width()) / float64(newW)
		sy := float64(ms.Height()) / float64(newH)
		for y := 0; y < newH; y++ {
			fy := (float64(y)+0.5)*sy - 0.5
			for x := 0; x < newW; x++ {
				fx := (float64(x)+0.5)*sx - 0.5
				out.inner.PutPixel(x, y, ms.sampleBilinear(fx, fy))
			}
		}
	} else {
		scaleX := ScaleThreshold * ms.Width() / newW
		scaleY := ScaleThreshold * ms.Height() / newH
		for y := 0; y < newH; y++ {
			srcY := y * scaleY / ScaleThreshold
			for x := 0; x < newW; x++ {
				srcX := x * scaleX / ScaleThreshold
				out.inner.PutPixel(x, y, ms.inner.GetPixel(srcX, srcY))
			}
		}
	}

	out.MarkAllDirty()
	return out, nil
}

// Rotoscale rotates and scales the surface around t.Hotspot and returns
// the result as a new surface sized to the transformed bounding box.
// Destination pixels with no source coverage stay zero.
func (ms *ManagedSurface) Rotoscale(t Transform, filter Interpolation) (*ManagedSurface, error) {
	newW, newH, pivot := rotoscaleBounds(ms.Width(), ms.Height(), t)

	out, err := NewManagedSurface(newW, newH, ms.Format())
	if err != nil {
		return nil, err
	}
	ms.copyMetadataTo(out)

	if ms.Empty() || newW <= 0 || newH <= 0 || t.ScaleX <= 0 || t.ScaleY <= 0 {
		return out, nil
	}

	rad := t.Angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	invSX := 100 / float64(t.ScaleX)
	invSY := 100 / float64(t.ScaleY)

	bilinear := filter == InterpBilinear && !ms.Format().IsCLUT8()

	for y := 0; y < newH; y++ {
		// Map destination pixel centers back into the source so edge
		// rows and columns stay covered under exact rotations.
		dy := float64(y) + 0.5 - pivot.Y
		for x := 0; x < newW; x++ {
			dx := float64(x) + 0.5 - pivot.X

			// Inverse mapping: unrotate, then unscale, then shift back
			// to the source hotspot.
			sx := (dx*cos+dy*sin)*invSX + float64(t.Hotspot.X)
			sy := (-dx*sin+dy*cos)*invSY + float64(t.Hotspot.Y)

			if sx < 0 || sy < 0 || sx >= float64(ms.Width()) || sy >= float64(ms.Height()) {
				continue
			}
			if bilinear {
				out.inner.PutPixel(x, y, ms.sampleBilinear(sx-0.5, sy-0.5))
			} else {
				out.inner.PutPixel(x, y, ms.inner.GetPixel(int(sx), int(sy)))
			}
		}
	}

	out.MarkAllDirty()
	return out, nil
}

// copyMetadataTo clones the transparent color key and palette onto a
// freshly created result surface.
func (ms *ManagedSurface) copyMetadataTo(out *ManagedSurface) {
	if ms.transparentColorSet {
		out.SetTransparentColor(ms.transparentColor)
	}
	if ms.palette != nil {
		out.palette = ms.palette.Clone()
	}
}

// sampleBilinear samples the surface at a fractional position, blending
// the four surrounding pixels channel by channel. Coordinates are
// clamped at the edges.
func (ms *ManagedSurface) sampleBilinear(fx, fy float64) uint32 {
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	wx := fx - float64(x0)
	wy := fy - float64(y0)

	x1 := clampInt(x0+1, 0, ms.Width()-1)
	y1 := clampInt(y0+1, 0, ms.Height()-1)
	x0 = clampInt(x0, 0, ms.Width()-1)
	y0 = clampInt(y0, 0, ms.Height()-1)

	f := ms.Format()
	a00, r00, g00, b00 := f.ColorToARGB(ms.inner.GetPixel(x0, y0))
	a10, r10, g10, b10 := f.ColorToARGB(ms.inner.GetPixel(x1, y0))
	a01, r01, g01, b01 := f.ColorToARGB(ms.inner.GetPixel(x0, y1))
	a11, r11, g11, b11 := f.ColorToARGB(ms.inner.GetPixel(x1, y1))

	lerp2 := func(c00, c10, c01, c11 uint8) uint8 {
		top := float64(c00)*(1-wx) + float64(c10)*wx
		bot := float64(c01)*(1-wx) + float64(c11)*wx
		return uint8(top*(1-wy) + bot*wy + 0.5)
	}

	return f.ARGBToColor(
		lerp2(a00, a10, a01, a11),
		lerp2(r00, r10, r01, r11),
		lerp2(g00, g10, g01, g11),
		lerp2(b00, b10, b01, b11),
	)
}

// rotoscaleBounds returns the output dimensions for a rotoscale and the
// position of the hotspot inside the output, computed from the bounding
// box of the four transformed source corners.
func rotoscaleBounds(w, h int, t Transform) (newW, newH int, pivot struct{ X, Y float64 }) {
	rad := t.Angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	sx := float64(t.ScaleX) / 100
	sy := float64(t.ScaleY) / 100

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{
		{-float64(t.Hotspot.X), -float64(t.Hotspot.Y)},
		{float64(w - t.Hotspot.X), -float64(t.Hotspot.Y)},
		{-float64(t.Hotspot.X), float64(h - t.Hotspot.Y)},
		{float64(w - t.Hotspot.X), float64(h - t.Hotspot.Y)},
	} {
		cx, cy := c[0]*sx, c[1]*sy
		tx := cx*cos - cy*sin
		ty := cx*sin + cy*cos
		minX = math.Min(minX, tx)
		minY = math.Min(minY, ty)
		maxX = math.Max(maxX, tx)
		maxY = math.Max(maxY, ty)
	}

	pivot.X = -minX
	pivot.Y = -minY
	return int(math.Ceil(maxX - minX)), int(math.Ceil(maxY - minY)), pivot
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
