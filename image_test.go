package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestImageRoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 128})

	ms, err := FromImage(img, ABGR8888())
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	if ms.Width() != 2 || ms.Height() != 2 {
		t.Fatalf("size = %dx%d, want 2x2", ms.Width(), ms.Height())
	}

	back := ms.Image()
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got, want := back.NRGBAAt(x, y), img.NRGBAAt(x, y); got != want {
				t.Errorf("pixel (%d, %d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestFromImageNonNRGBASource(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	ms, err := FromImage(img, ARGB8888())
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	a, r, g, b := ARGB8888().ColorToARGB(ms.GetPixel(0, 0))
	if a != 255 || r != 200 || g != 100 || b != 50 {
		t.Errorf("pixel = (%d, %d, %d, %d), want (255, 200, 100, 50)", a, r, g, b)
	}
}

func TestFromImageRejectsCLUT8(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	if _, err := FromImage(img, CLUT8Format()); err == nil {
		t.Error("expected an error for a CLUT8 target")
	}
}

func TestFromImageScaled(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 80, G: 90, B: 100, A: 255})
		}
	}

	ms, err := FromImageScaled(img, 4, 4, ABGR8888())
	if err != nil {
		t.Fatalf("FromImageScaled: %v", err)
	}
	if ms.Width() != 4 || ms.Height() != 4 {
		t.Fatalf("size = %dx%d, want 4x4", ms.Width(), ms.Height())
	}
	// A constant image stays constant under any scaler.
	_, r, g, b := ABGR8888().ColorToARGB(ms.GetPixel(2, 2))
	if r != 80 || g != 90 || b != 100 {
		t.Errorf("pixel = (%d, %d, %d), want (80, 90, 100)", r, g, b)
	}
}

func TestFromPalettedImage(t *testing.T) {
	pal := color.Palette{
		color.NRGBA{A: 255},
		color.NRGBA{R: 255, A: 255},
	}
	img := image.NewPaletted(image.Rect(0, 0, 2, 1), pal)
	img.SetColorIndex(0, 0, 1)
	img.SetColorIndex(1, 0, 0)

	ms, err := FromPalettedImage(img)
	if err != nil {
		t.Fatalf("FromPalettedImage: %v", err)
	}
	if !ms.Format().IsCLUT8() {
		t.Fatal("result is not CLUT8")
	}
	if ms.GetPixel(0, 0) != 1 || ms.GetPixel(1, 0) != 0 {
		t.Error("indices not copied")
	}
	r, g, b := ms.Palette().Get(1)
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("palette entry 1 = (%d, %d, %d), want (255, 0, 0)", r, g, b)
	}
}

func TestSurfaceImageCLUT8NeedsPalette(t *testing.T) {
	s, _ := NewSurface(1, 1, CLUT8Format())
	defer func() {
		if recover() == nil {
			t.Error("expected panic for CLUT8 image conversion without palette")
		}
	}()
	s.Image(nil)
}

func TestManagedImageUsesOwnPalette(t *testing.T) {
	ms, _ := NewCLUT8Surface(1, 1)
	ms.SetPalette(0, []byte{12, 34, 56})
	ms.SetPixel(0, 0, 0)

	img := ms.Image()
	got := img.NRGBAAt(0, 0)
	want := color.NRGBA{R: 12, G: 34, B: 56, A: 255}
	if got != want {
		t.Errorf("pixel = %+v, want %+v", got, want)
	}
}
