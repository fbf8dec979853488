package raster

import (
	"image"
	stdcolor "image/color"

	xdraw "golang.org/x/image/draw"
)

// Image converts the surface to an *image.NRGBA. Palette-indexed
// surfaces need the palette that gives their indices meaning; pass nil
// for direct-color surfaces.
func (s *Surface) Image(pal *Palette) *image.NRGBA {
	w, h := s.Width(), s.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if s.Empty() {
		return img
	}

	f := s.Format()
	if f.IsCLUT8() {
		if pal == nil {
			panic("raster: converting a CLUT8 surface to an image requires a palette")
		}
		for y := 0; y < h; y++ {
			row := s.BasePtr(0, y)
			out := img.Pix[y*img.Stride:]
			for x := 0; x < w; x++ {
				r, g, b := pal.Get(int(row[x]))
				out[x*4+0] = r
				out[x*4+1] = g
				out[x*4+2] = b
				out[x*4+3] = 0xFF
			}
		}
		return img
	}

	for y := 0; y < h; y++ {
		out := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			a, r, g, b := f.ColorToARGB(s.GetPixel(x, y))
			out[x*4+0] = r
			out[x*4+1] = g
			out[x*4+2] = b
			out[x*4+3] = a
		}
	}
	return img
}

// Image converts the surface to an *image.NRGBA using the surface's own
// palette when it is palette-indexed.
func (ms *ManagedSurface) Image() *image.NRGBA {
	return ms.inner.Image(ms.palette)
}

// FromImage creates a surface in the given direct-color format holding
// the contents of img. Use FromPalettedImage for CLUT8 targets.
func FromImage(img image.Image, format PixelFormat) (*ManagedSurface, error) {
	if format.IsCLUT8() {
		return nil, ErrUnsupportedFormat
	}

	b := img.Bounds()
	ms, err := NewManagedSurface(b.Dx(), b.Dy(), format)
	if err != nil {
		return nil, err
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Bounds() != b {
		tmp := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		xdraw.Draw(tmp, tmp.Bounds(), img, b.Min, xdraw.Src)
		nrgba = tmp
	}

	for y := 0; y < ms.Height(); y++ {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := 0; x < ms.Width(); x++ {
			ms.inner.PutPixel(x, y, format.ARGBToColor(
				row[x*4+3], row[x*4+0], row[x*4+1], row[x*4+2]))
		}
	}
	ms.MarkAllDirty()
	return ms, nil
}

// FromImageScaled creates a surface of the given size in the given
// direct-color format, resampling img with the x/image approximate
// bilinear scaler.
func FromImageScaled(img image.Image, width, height int, format PixelFormat) (*ManagedSurface, error) {
	if format.IsCLUT8() {
		return nil, ErrUnsupportedFormat
	}

	tmp := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(tmp, tmp.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return FromImage(tmp, format)
}

// FromPalettedImage creates a CLUT8 surface carrying the image's pixel
// indices and its color table as the surface palette.
func FromPalettedImage(img *image.Paletted) (*ManagedSurface, error) {
	b := img.Bounds()
	ms, err := NewCLUT8Surface(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	rgb := make([]byte, 0, len(img.Palette)*3)
	for _, c := range img.Palette {
		nc := stdcolor.NRGBAModel.Convert(c).(stdcolor.NRGBA)
		rgb = append(rgb, nc.R, nc.G, nc.B)
	}
	ms.SetPalette(0, rgb)

	for y := 0; y < ms.Height(); y++ {
		copy(ms.inner.BasePtr(0, y)[:ms.Width()], img.Pix[y*img.Stride:])
	}
	ms.MarkAllDirty()
	return ms, nil
}
