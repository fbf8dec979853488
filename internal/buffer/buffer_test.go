package buffer

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	b, err := New(4, 3, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if b.Width() != 4 || b.Height() != 3 || b.Stride() != 8 || b.BytesPerPixel() != 2 {
		t.Errorf("unexpected geometry: %dx%d stride %d bpp %d",
			b.Width(), b.Height(), b.Stride(), b.BytesPerPixel())
	}
	if !b.Owned() {
		t.Error("Owned() = false for a fresh buffer")
	}
	if len(b.Data()) != 24 {
		t.Errorf("len(Data()) = %d, want 24", len(b.Data()))
	}
}

func TestNewInvalid(t *testing.T) {
	if _, err := New(0, 3, 1); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("New(0, 3, 1) err = %v, want ErrInvalidDimensions", err)
	}
	if _, err := New(3, -1, 1); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("New(3, -1, 1) err = %v, want ErrInvalidDimensions", err)
	}
	if _, err := NewWithStride(4, 3, 2, 7); !errors.Is(err, ErrInvalidStride) {
		t.Errorf("NewWithStride short stride err = %v, want ErrInvalidStride", err)
	}
}

func TestFromRaw(t *testing.T) {
	// The final row only needs to reach its last pixel.
	data := make([]byte, 2*10+4)
	b, err := FromRaw(data, 4, 3, 1, 10)
	if err != nil {
		t.Fatalf("FromRaw: %v", err)
	}
	if b.Owned() {
		t.Error("Owned() = true for borrowed storage")
	}

	if _, err := FromRaw(make([]byte, 10), 4, 3, 1, 10); !errors.Is(err, ErrDataTooSmall) {
		t.Errorf("short data err = %v, want ErrDataTooSmall", err)
	}
}

func TestFromRawShares(t *testing.T) {
	data := make([]byte, 16)
	b, _ := FromRaw(data, 4, 4, 1, 4)
	b.PixelBytes(2, 1)[0] = 0xAA
	if data[6] != 0xAA {
		t.Error("write through borrowed buffer did not reach backing storage")
	}
}

func TestView(t *testing.T) {
	b, _ := New(8, 8, 1)
	for i := range b.Data() {
		b.Data()[i] = byte(i)
	}

	v, err := b.View(2, 3, 4, 2)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if v.Width() != 4 || v.Height() != 2 {
		t.Errorf("view geometry %dx%d, want 4x2", v.Width(), v.Height())
	}
	if v.Stride() != b.Stride() {
		t.Errorf("view stride %d, want parent stride %d", v.Stride(), b.Stride())
	}
	if v.Owned() {
		t.Error("view claims ownership")
	}

	// View pixel (0, 0) is parent pixel (2, 3).
	if got := v.PixelBytes(0, 0)[0]; got != 3*8+2 {
		t.Errorf("view origin byte = %d, want %d", got, 3*8+2)
	}

	// Writes through the view land in the parent.
	v.PixelBytes(1, 1)[0] = 0xFF
	if b.PixelBytes(3, 4)[0] != 0xFF {
		t.Error("view write did not reach parent storage")
	}
}

func TestViewOutOfBounds(t *testing.T) {
	b, _ := New(8, 8, 1)
	if _, err := b.View(6, 0, 4, 2); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("err = %v, want ErrOutOfBounds", err)
	}
	if _, err := b.View(-1, 0, 2, 2); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("err = %v, want ErrOutOfBounds", err)
	}
}

func TestClone(t *testing.T) {
	b, _ := New(2, 2, 1)
	b.Data()[0] = 7
	c := b.Clone()
	c.Data()[0] = 8
	if b.Data()[0] != 7 {
		t.Error("mutating a clone changed the original")
	}
	if !c.Owned() {
		t.Error("clone does not own its storage")
	}
}

func TestRowBytesAndOffsets(t *testing.T) {
	b, _ := NewWithStride(3, 2, 2, 10)
	if got := len(b.RowBytes(1)); got != 6 {
		t.Errorf("len(RowBytes(1)) = %d, want 6", got)
	}
	if b.RowBytes(2) != nil {
		t.Error("RowBytes out of bounds should be nil")
	}
	if got := b.PixelOffset(2, 1); got != 14 {
		t.Errorf("PixelOffset(2, 1) = %d, want 14", got)
	}
	if got := b.PixelOffset(3, 0); got != -1 {
		t.Errorf("PixelOffset(3, 0) = %d, want -1", got)
	}
	if b.Tail(0, 0) == nil || len(b.Tail(0, 1)) != 10 {
		t.Error("unexpected Tail slices")
	}
}

func TestReset(t *testing.T) {
	b, _ := New(2, 2, 1)
	b.Reset()
	if !b.Empty() || b.Width() != 0 || b.Owned() {
		t.Error("Reset did not clear the buffer")
	}
	b.Reset() // idempotent
}
