package raster

import "testing"

// fillPattern writes a distinct value to every pixel so copy tests can
// verify positions.
func fillPattern(ms *ManagedSurface) {
	for y := 0; y < ms.Height(); y++ {
		for x := 0; x < ms.Width(); x++ {
			ms.SetPixel(x, y, uint32(y*ms.Width()+x+1))
		}
	}
}

func TestSimpleBlitSameFormatCopies(t *testing.T) {
	src, _ := NewManagedSurface(3, 2, RGB565())
	fillPattern(src)
	dst, _ := NewManagedSurface(5, 5, RGB565())

	dst.SimpleBlitFrom(src, Pt(1, 2))

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			want := src.GetPixel(x, y)
			if got := dst.GetPixel(x+1, y+2); got != want {
				t.Errorf("pixel (%d, %d) = %#x, want %#x", x+1, y+2, got, want)
			}
		}
	}
	if dst.GetPixel(0, 0) != 0 {
		t.Error("pixel outside the blit area written")
	}
}

func TestSimpleBlitClipsAtEdges(t *testing.T) {
	src, _ := NewManagedSurface(4, 4, RGB565())
	src.Clear(0x1111)
	dst, _ := NewManagedSurface(4, 4, RGB565())

	// Partially off every edge; must not panic and must write the
	// overlap only.
	dst.SimpleBlitFrom(src, Pt(-2, -2))
	dst.SimpleBlitFrom(src, Pt(2, 2))

	if dst.GetPixel(0, 0) != 0x1111 {
		t.Error("overlap from negative offset not written")
	}
	if dst.GetPixel(3, 3) != 0x1111 {
		t.Error("overlap from positive offset not written")
	}
}

func TestSimpleBlitHonorsColorKey(t *testing.T) {
	src, _ := NewManagedSurface(2, 1, RGB565())
	src.SetPixel(0, 0, 0xAAAA)
	src.SetPixel(1, 0, 0xBBBB)
	src.SetTransparentColor(0xAAAA)

	dst, _ := NewManagedSurface(2, 1, RGB565())
	dst.Clear(0x7777)
	dst.SimpleBlitFrom(src, Pt(0, 0))

	if got := dst.GetPixel(0, 0); got != 0x7777 {
		t.Errorf("keyed pixel overwritten: %#x", got)
	}
	if got := dst.GetPixel(1, 0); got != 0xBBBB {
		t.Errorf("non-keyed pixel = %#x, want 0xbbbb", got)
	}
}

func TestSimpleBlitCLUT8ToDirect(t *testing.T) {
	src, _ := NewCLUT8Surface(2, 2)
	src.SetPalette(0, []byte{
		255, 0, 0,
		0, 0, 255,
	})
	src.SetPixel(0, 0, 0)
	src.SetPixel(1, 0, 1)
	src.SetPixel(0, 1, 1)
	src.SetPixel(1, 1, 0)

	dst, _ := NewManagedSurface(2, 2, RGB565())
	dst.SimpleBlitFrom(src, Pt(0, 0))

	wants := [2][2]uint32{
		{0xF800, 0x001F},
		{0x001F, 0xF800},
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := dst.GetPixel(x, y); got != wants[y][x] {
				t.Errorf("pixel (%d, %d) = %#x, want %#x", x, y, got, wants[y][x])
			}
		}
	}
}

func TestSimpleBlitCLUT8SourceNeedsPalette(t *testing.T) {
	src, _ := NewSurface(2, 2, CLUT8Format())
	dst, _ := NewManagedSurface(2, 2, RGB565())

	defer func() {
		if recover() == nil {
			t.Error("expected panic for CLUT8 source without palette")
		}
	}()
	dst.SimpleBlitFromSurface(src, src.Bounds(), Pt(0, 0), nil)
}

func TestSimpleBlitIntoCLUT8Panics(t *testing.T) {
	src, _ := NewManagedSurface(2, 2, RGB565())
	dst, _ := NewCLUT8Surface(2, 2)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for cross-format blit into CLUT8")
		}
	}()
	dst.SimpleBlitFrom(src, Pt(0, 0))
}

func TestSimpleBlitCrossFormat(t *testing.T) {
	src, _ := NewManagedSurface(1, 1, ARGB8888())
	src.SetPixel(0, 0, ARGB8888().ARGBToColor(0xFF, 0xFF, 0x00, 0x00))

	dst, _ := NewManagedSurface(1, 1, RGB565())
	dst.SimpleBlitFrom(src, Pt(0, 0))

	if got := dst.GetPixel(0, 0); got != 0xF800 {
		t.Errorf("converted pixel = %#x, want 0xf800", got)
	}
}

func TestSimpleBlitMarksDirty(t *testing.T) {
	src, _ := NewManagedSurface(2, 2, RGB565())
	dst, _ := NewManagedSurface(8, 8, RGB565())
	dst.ClearDirtyRect()

	dst.SimpleBlitFrom(src, Pt(3, 4))

	dirty, ok := dst.DirtyBounds()
	if !ok {
		t.Fatal("blit left no dirty region")
	}
	if dirty != NewRect(3, 4, 5, 6) {
		t.Errorf("dirty = %+v, want {3 4 5 6}", dirty)
	}
}

func TestMaskBlitGatesPixels(t *testing.T) {
	src, _ := NewManagedSurface(2, 2, RGB565())
	src.Clear(0x1234)

	mask, _ := NewManagedSurface(2, 2, RGB565())
	mask.SetPixel(0, 0, 1)
	mask.SetPixel(1, 1, 1)

	dst, _ := NewManagedSurface(2, 2, RGB565())
	dst.Clear(0x9999)
	dst.MaskBlitFrom(src, mask, Pt(0, 0))

	if dst.GetPixel(0, 0) != 0x1234 || dst.GetPixel(1, 1) != 0x1234 {
		t.Error("unmasked pixels not copied")
	}
	if dst.GetPixel(1, 0) != 0x9999 || dst.GetPixel(0, 1) != 0x9999 {
		t.Error("masked-out pixels overwritten")
	}
}

func TestMaskBlitSizeMismatchPanics(t *testing.T) {
	src, _ := NewManagedSurface(2, 2, RGB565())
	mask, _ := NewManagedSurface(3, 2, RGB565())
	dst, _ := NewManagedSurface(4, 4, RGB565())

	defer func() {
		if recover() == nil {
			t.Error("expected panic for mask dimension mismatch")
		}
	}()
	dst.MaskBlitFrom(src, mask, Pt(0, 0))
}

func TestMaskBlitCLUT8ToDirect(t *testing.T) {
	src, _ := NewCLUT8Surface(2, 1)
	src.SetPalette(0, []byte{0, 255, 0})
	src.SetPixel(0, 0, 0)
	src.SetPixel(1, 0, 0)

	mask, _ := NewCLUT8Surface(2, 1)
	mask.SetPixel(1, 0, 1)

	dst, _ := NewManagedSurface(2, 1, RGB565())
	dst.MaskBlitFrom(src, mask, Pt(0, 0))

	if got := dst.GetPixel(0, 0); got != 0 {
		t.Errorf("masked pixel = %#x, want untouched 0", got)
	}
	if got := dst.GetPixel(1, 0); got != 0x07E0 {
		t.Errorf("unmasked pixel = %#x, want 0x7e0", got)
	}
}
