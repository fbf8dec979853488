package raster

import "testing"

func TestPaletteSetGrowsSize(t *testing.T) {
	p := NewPalette(0)
	p.Set(4, []byte{10, 20, 30, 40, 50, 60})
	if got := p.Size(); got != 6 {
		t.Errorf("Size() = %d, want 6", got)
	}
	r, g, b := p.Get(5)
	if r != 40 || g != 50 || b != 60 {
		t.Errorf("Get(5) = (%d, %d, %d), want (40, 50, 60)", r, g, b)
	}
}

func TestPaletteGetOutOfRange(t *testing.T) {
	p := NewPaletteFromRGB([]byte{1, 2, 3})
	r, g, b := p.Get(7)
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("Get(7) = (%d, %d, %d), want black", r, g, b)
	}
	r, g, b = p.Get(-1)
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("Get(-1) = (%d, %d, %d), want black", r, g, b)
	}
}

func TestPaletteGrab(t *testing.T) {
	p := NewPaletteFromRGB([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9})
	got := p.Grab(1, 5)
	want := []byte{4, 5, 6, 7, 8, 9}
	if len(got) != len(want) {
		t.Fatalf("Grab returned %d bytes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Grab[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestFindBestColor(t *testing.T) {
	p := NewPaletteFromRGB([]byte{
		0, 0, 0, // 0: black
		255, 0, 0, // 1: red
		0, 255, 0, // 2: green
		0, 0, 255, // 3: blue
		255, 255, 255, // 4: white
	})
	tests := []struct {
		name    string
		r, g, b byte
		want    int
	}{
		{"exact black", 0, 0, 0, 0},
		{"exact red", 255, 0, 0, 1},
		{"near red", 200, 10, 10, 1},
		{"near white", 240, 250, 245, 4},
		{"mid gray closer to black", 100, 100, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.FindBestColor(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("FindBestColor(%d, %d, %d) = %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestFindBestColorTieBreaksLow(t *testing.T) {
	p := NewPaletteFromRGB([]byte{
		10, 0, 0,
		10, 0, 0, // duplicate; index 0 must win
	})
	if got := p.FindBestColor(12, 0, 0); got != 0 {
		t.Errorf("FindBestColor = %d, want 0", got)
	}
}

func TestPaletteCloneIsDeep(t *testing.T) {
	p := NewPaletteFromRGB([]byte{1, 2, 3})
	c := p.Clone()
	c.Set(0, []byte{9, 9, 9})
	r, _, _ := p.Get(0)
	if r != 1 {
		t.Error("mutating a clone changed the original")
	}
	if p.Equal(c) {
		t.Error("Equal() = true after divergence")
	}
}

func TestBuildRemapTable(t *testing.T) {
	src := NewPaletteFromRGB([]byte{
		255, 0, 0,
		0, 255, 0,
	})
	dst := NewPaletteFromRGB([]byte{
		0, 250, 0, // 0: close to src green
		250, 0, 0, // 1: close to src red
	})
	lut := buildRemapTable(src, dst)
	if lut == nil {
		t.Fatal("buildRemapTable returned nil")
	}
	if lut[0] != 1 {
		t.Errorf("lut[0] = %d, want 1", lut[0])
	}
	if lut[1] != 0 {
		t.Errorf("lut[1] = %d, want 0", lut[1])
	}
	// Indices past the source palette map to themselves.
	if lut[200] != 200 {
		t.Errorf("lut[200] = %d, want 200", lut[200])
	}
}

func TestBuildRemapTableIdentity(t *testing.T) {
	p := NewPaletteFromRGB([]byte{1, 2, 3, 4, 5, 6})
	lut := buildRemapTable(p, p.Clone())
	for i := 0; i < p.Size(); i++ {
		if lut[i] != byte(i) {
			t.Errorf("lut[%d] = %d, want identity", i, lut[i])
		}
	}
}

func TestBuildRemapTableEmpty(t *testing.T) {
	if lut := buildRemapTable(NewPalette(0), NewPalette(4)); lut != nil {
		t.Error("expected nil table for empty source palette")
	}
}
