package raster

import "bytes"

// PaletteCapacity is the maximum number of colors a Palette can hold.
const PaletteCapacity = 256

// Palette is a capacity-bounded table of RGB triples, indexed by raw
// pixel value. It backs CLUT8 surfaces and drives indexed-to-direct
// color conversion during blits.
type Palette struct {
	data [PaletteCapacity * 3]byte
	size int
}

// NewPalette creates an all-black palette with the given number of
// entries. Sizes outside [0, PaletteCapacity] are clamped.
func NewPalette(size int) *Palette {
	if size < 0 {
		size = 0
	}
	if size > PaletteCapacity {
		size = PaletteCapacity
	}
	return &Palette{size: size}
}

// NewPaletteFromRGB creates a palette from packed R, G, B triples.
// len(rgb) must be a multiple of 3; excess entries beyond the capacity
// are ignored.
func NewPaletteFromRGB(rgb []byte) *Palette {
	p := NewPalette(len(rgb) / 3)
	copy(p.data[:], rgb[:p.size*3])
	return p
}

// Size returns the number of entries in the palette.
func (p *Palette) Size() int {
	return p.size
}

// Get returns the RGB triple at the given index. Out-of-range indices
// return black.
func (p *Palette) Get(index int) (r, g, b byte) {
	if index < 0 || index >= p.size {
		return 0, 0, 0
	}
	i := index * 3
	return p.data[i], p.data[i+1], p.data[i+2]
}

// Set overwrites entries starting at index start with packed R, G, B
// triples. The palette grows (up to its capacity) to cover the written
// range; writes past the capacity are discarded.
func (p *Palette) Set(start int, rgb []byte) {
	if start < 0 || start >= PaletteCapacity {
		return
	}
	n := len(rgb) / 3
	if start+n > PaletteCapacity {
		n = PaletteCapacity - start
	}
	copy(p.data[start*3:], rgb[:n*3])
	if start+n > p.size {
		p.size = start + n
	}
}

// Grab copies num entries starting at index start into a fresh packed
// RGB slice. The range is clamped to the palette's size.
func (p *Palette) Grab(start, num int) []byte {
	if start < 0 || start >= p.size || num <= 0 {
		return nil
	}
	if start+num > p.size {
		num = p.size - start
	}
	out := make([]byte, num*3)
	copy(out, p.data[start*3:])
	return out
}

// FindBestColor returns the index of the entry closest to (r, g, b) by
// squared channel distance. Ties are broken by the lowest index; an
// exact match returns immediately. An empty palette returns 0.
func (p *Palette) FindBestColor(r, g, b byte) int {
	best := 0
	bestDist := int(^uint(0) >> 1)
	for i := 0; i < p.size; i++ {
		pr, pg, pb := p.Get(i)
		if pr == r && pg == g && pb == b {
			return i
		}
		dr := int(pr) - int(r)
		dg := int(pg) - int(g)
		db := int(pb) - int(b)
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return best
}

// Clone returns a deep copy of the palette.
func (p *Palette) Clone() *Palette {
	c := *p
	return &c
}

// Equal reports whether two palettes have the same size and colors.
func (p *Palette) Equal(o *Palette) bool {
	if p.size != o.size {
		return false
	}
	return bytes.Equal(p.data[:p.size*3], o.data[:o.size*3])
}

// buildRemapTable maps every possible pixel index to the destination
// palette index with the closest color. Indices past the source
// palette's size, and entries that are pixel-identical at the same
// index, map to themselves without a search. Returns nil when either
// palette is empty.
func buildRemapTable(src, dst *Palette) []byte {
	if src.Size() == 0 || dst.Size() == 0 {
		return nil
	}

	lookup := make([]byte, PaletteCapacity)
	for i := range lookup {
		lookup[i] = byte(i)
	}
	for i := 0; i < src.Size(); i++ {
		rs, gs, bs := src.Get(i)
		if i < dst.Size() {
			rd, gd, bd := dst.Get(i)
			if rs == rd && gs == gd && bs == bd {
				lookup[i] = byte(i)
				continue
			}
		}
		lookup[i] = byte(dst.FindBestColor(rs, gs, bs))
	}
	return lookup
}
