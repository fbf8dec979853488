package blend

import (
	"bytes"
	"testing"
)

// rgbaLayout is byte order R, G, B, A, matching image.NRGBA.
var rgbaLayout = Layout{R: 0, G: 1, B: 2, A: 3}

func pix(r, g, b, a byte) []byte { return []byte{r, g, b, a} }

func argsFor(dst, src []byte, w, h int) Args {
	return Args{
		Dst: dst, Src: src,
		DstPitch: w * 4, SrcPitch: w * 4,
		Width: w, Height: h,
		SrcW: w, SrcH: h,
		ScaleX: ScaleThreshold, ScaleY: ScaleThreshold,
		ColorMod: 0xFFFFFFFF,
		Mode:     ModeNormal,
		Alpha:    AlphaStandard,
		Layout:   rgbaLayout,
	}
}

func TestBlitOpaqueNormalReplaces(t *testing.T) {
	dst := pix(10, 20, 30, 255)
	src := pix(200, 100, 50, 255)
	Blit(argsFor(dst, src, 1, 1))
	if !bytes.Equal(dst, pix(200, 100, 50, 255)) {
		t.Errorf("dst = %v, want source copied", dst)
	}
}

func TestBlitZeroAlphaLeavesDestination(t *testing.T) {
	dst := pix(10, 20, 30, 255)
	src := pix(200, 100, 50, 0)
	Blit(argsFor(dst, src, 1, 1))
	if !bytes.Equal(dst, pix(10, 20, 30, 255)) {
		t.Errorf("dst = %v, want untouched", dst)
	}
}

func TestBlitHalfAlphaOverOpaque(t *testing.T) {
	// Pure red at alpha 128 over opaque blue.
	dst := pix(0, 0, 255, 255)
	src := pix(255, 0, 0, 128)
	Blit(argsFor(dst, src, 1, 1))

	if dst[0] != 128 {
		t.Errorf("red = %d, want 128", dst[0])
	}
	if dst[1] != 0 {
		t.Errorf("green = %d, want 0", dst[1])
	}
	// 255 * (255-128)/255 with the fast approximation.
	if dst[2] != 127 {
		t.Errorf("blue = %d, want 127", dst[2])
	}
	if dst[3] != 255 {
		t.Errorf("alpha = %d, want 255", dst[3])
	}
}

func TestBlitColorModScalesSource(t *testing.T) {
	dst := pix(0, 0, 0, 255)
	src := pix(255, 255, 255, 255)
	a := argsFor(dst, src, 1, 1)
	a.ColorMod = 0xFF800000 // full alpha, half red, no green/blue
	Blit(a)

	if dst[0] != 128 {
		t.Errorf("red = %d, want 128", dst[0])
	}
	if dst[1] != 0 || dst[2] != 0 {
		t.Errorf("green/blue = %d/%d, want 0/0", dst[1], dst[2])
	}
}

func TestBlitAdditive(t *testing.T) {
	dst := pix(100, 200, 0, 255)
	src := pix(100, 100, 10, 255)
	a := argsFor(dst, src, 1, 1)
	a.Mode = ModeAdditive
	Blit(a)

	if dst[0] != 200 {
		t.Errorf("red = %d, want 200", dst[0])
	}
	if dst[1] != 255 {
		t.Errorf("green = %d, want clamped 255", dst[1])
	}
	if dst[2] != 10 {
		t.Errorf("blue = %d, want 10", dst[2])
	}
}

func TestBlitSubtractive(t *testing.T) {
	dst := pix(100, 50, 200, 255)
	src := pix(60, 100, 0, 255)
	a := argsFor(dst, src, 1, 1)
	a.Mode = ModeSubtractive
	Blit(a)

	if dst[0] != 40 {
		t.Errorf("red = %d, want 40", dst[0])
	}
	if dst[1] != 0 {
		t.Errorf("green = %d, want clamped 0", dst[1])
	}
	if dst[2] != 200 {
		t.Errorf("blue = %d, want 200", dst[2])
	}
}

func TestBlitMultiply(t *testing.T) {
	dst := pix(200, 0, 255, 255)
	src := pix(128, 255, 0, 255)
	a := argsFor(dst, src, 1, 1)
	a.Mode = ModeMultiply
	Blit(a)

	// 200 * 128 / 255 with the fast approximation.
	if got := int(dst[0]); got < 100 || got > 102 {
		t.Errorf("red = %d, want ~100", got)
	}
	if dst[2] != 0 {
		t.Errorf("blue = %d, want 0", dst[2])
	}
}

func TestBlitAlphaOpaqueIgnoresSourceAlpha(t *testing.T) {
	dst := pix(0, 0, 0, 255)
	src := pix(200, 100, 50, 3)
	a := argsFor(dst, src, 1, 1)
	a.Alpha = AlphaOpaque
	Blit(a)
	if !bytes.Equal(dst, pix(200, 100, 50, 255)) {
		t.Errorf("dst = %v, want source copied opaquely", dst)
	}
}

func TestBlitAlphaBinary(t *testing.T) {
	dst := append(pix(1, 1, 1, 255), pix(1, 1, 1, 255)...)
	src := append(pix(200, 0, 0, 3), pix(200, 0, 0, 0)...)
	a := argsFor(dst, src, 2, 1)
	a.Alpha = AlphaBinary
	Blit(a)

	// Any non-zero alpha snaps to opaque; zero stays transparent.
	if dst[0] != 200 {
		t.Errorf("first pixel red = %d, want 200", dst[0])
	}
	if dst[4] != 1 {
		t.Errorf("second pixel red = %d, want untouched 1", dst[4])
	}
}

func TestBlitFlipH(t *testing.T) {
	dst := make([]byte, 8)
	src := append(pix(10, 0, 0, 255), pix(20, 0, 0, 255)...)
	a := argsFor(dst, src, 2, 1)
	a.Flip = FlipH
	Blit(a)

	if dst[0] != 20 || dst[4] != 10 {
		t.Errorf("red bytes = %d, %d, want 20, 10", dst[0], dst[4])
	}
}

func TestBlitFlipV(t *testing.T) {
	dst := make([]byte, 8)
	src := append(pix(10, 0, 0, 255), pix(20, 0, 0, 255)...)
	a := argsFor(dst, src, 1, 2)
	a.DstPitch, a.SrcPitch = 4, 4
	a.Flip = FlipV
	Blit(a)

	if dst[0] != 20 || dst[4] != 10 {
		t.Errorf("red bytes = %d, %d, want 20, 10", dst[0], dst[4])
	}
}

func TestBlitScaleUp(t *testing.T) {
	// 2 source pixels stretched across 4 destination pixels.
	src := append(pix(10, 0, 0, 255), pix(20, 0, 0, 255)...)
	dst := make([]byte, 16)
	a := Args{
		Dst: dst, Src: src,
		DstPitch: 16, SrcPitch: 8,
		Width: 4, Height: 1,
		SrcW: 2, SrcH: 1,
		ScaleX: ScaleFactor(2, 4), ScaleY: ScaleFactor(1, 1),
		ColorMod: 0xFFFFFFFF,
		Mode:     ModeNormal,
		Alpha:    AlphaStandard,
		Layout:   rgbaLayout,
	}
	Blit(a)

	want := []byte{10, 10, 20, 20}
	for i, w := range want {
		if dst[i*4] != w {
			t.Errorf("pixel %d red = %d, want %d", i, dst[i*4], w)
		}
	}
}

func TestBlitPosOffset(t *testing.T) {
	dst := make([]byte, 4*4) // 4x1 row
	src := pix(99, 0, 0, 255)
	a := argsFor(dst, src, 1, 1)
	a.DstPitch = 16
	a.PosX = 2
	Blit(a)

	if dst[2*4] != 99 {
		t.Errorf("pixel 2 red = %d, want 99", dst[8])
	}
	if dst[0] != 0 {
		t.Error("pixel 0 written unexpectedly")
	}
}

func TestFillAdditive(t *testing.T) {
	dst := append(pix(10, 250, 0, 255), pix(10, 250, 0, 255)...)
	Fill(dst, 8, 2, 1, 0xFF401020, ModeAdditive, rgbaLayout)

	for i := 0; i < 2; i++ {
		p := dst[i*4:]
		if p[0] != 10+0x40 {
			t.Errorf("pixel %d red = %d, want %d", i, p[0], 10+0x40)
		}
		if p[1] != 255 {
			t.Errorf("pixel %d green = %d, want clamped 255", i, p[1])
		}
		if p[2] != 0x20 {
			t.Errorf("pixel %d blue = %d, want %d", i, p[2], 0x20)
		}
	}
}

func TestScaleFactorIdentity(t *testing.T) {
	if got := ScaleFactor(7, 7); got != ScaleThreshold {
		t.Errorf("ScaleFactor(7, 7) = %#x, want %#x", got, ScaleThreshold)
	}
	if got := ScaleFactor(2, 4); got != ScaleThreshold/2 {
		t.Errorf("ScaleFactor(2, 4) = %#x, want %#x", got, ScaleThreshold/2)
	}
}
