package raster

// ManagedSurface is a Surface with managed ownership, view
// relationships, dirty-region tracking, and transparency/palette state.
// It is the primary entity of this package: callers create or acquire a
// ManagedSurface, populate pixels directly or through a blit call, and
// mutations accumulate a dirty rectangle at the root of any view chain
// for a presentation layer to consume.
//
// The zero ManagedSurface is empty and safe to use; Create gives it
// storage.
type ManagedSurface struct {
	inner Surface

	// disposeAfterUse records whether this instance owns its pixel
	// storage. Views never own storage.
	disposeAfterUse bool

	// owner is a non-owning back-reference to the parent surface when
	// this instance is a view; the creator of the view guarantees the
	// parent outlives it.
	owner           *ManagedSurface
	offsetFromOwner Point

	transparentColor    uint32
	transparentColorSet bool

	palette *Palette

	// Dirty state accumulates here only at the root of a view chain.
	dirty      Rect
	dirtyValid bool
}

// NewManagedSurface creates a surface with fresh owned storage in the
// given format. Surfaces whose format has an alpha channel start fully
// opaque.
func NewManagedSurface(width, height int, format PixelFormat) (*ManagedSurface, error) {
	ms := &ManagedSurface{}
	if err := ms.Create(width, height, format); err != nil {
		return nil, err
	}
	return ms, nil
}

// NewCLUT8Surface creates an owned 8-bit palette-indexed surface.
func NewCLUT8Surface(width, height int) (*ManagedSurface, error) {
	return NewManagedSurface(width, height, CLUT8Format())
}

// NewManagedSurfaceView creates a view: a surface whose storage is the
// bounds window of the parent's storage, shared without owning it.
func NewManagedSurfaceView(parent *ManagedSurface, bounds Rect) (*ManagedSurface, error) {
	ms := &ManagedSurface{}
	if err := ms.CreateView(parent, bounds); err != nil {
		return nil, err
	}
	return ms, nil
}

// Create allocates fresh owned storage, releasing any previous state.
// If the format has an alpha channel, every pixel is initialized fully
// opaque; new surfaces would otherwise be invisible by default. The
// whole surface is marked dirty.
func (ms *ManagedSurface) Create(width, height int, format PixelFormat) error {
	ms.Free()
	if err := ms.inner.Create(width, height, format); err != nil {
		return err
	}

	if format.HasAlpha() {
		ms.inner.FillRect(ms.inner.Bounds(), format.ARGBToColor(0xFF, 0, 0, 0))
	}

	ms.disposeAfterUse = true
	ms.MarkAllDirty()
	return nil
}

// CreateView points this surface at the bounds window of parent's
// storage. The view inherits the parent's pitch and format, records a
// non-owning back-reference for dirty-rect forwarding, and snapshots the
// parent's transparency and palette state (copies, not live-shared).
func (ms *ManagedSurface) CreateView(parent *ManagedSurface, bounds Rect) error {
	view, err := parent.inner.view(bounds)
	if err != nil {
		return err
	}

	ms.Free()
	ms.inner = *view
	ms.owner = parent
	ms.offsetFromOwner = Pt(bounds.Left, bounds.Top)
	ms.disposeAfterUse = false

	ms.transparentColorSet = parent.transparentColorSet
	ms.transparentColor = parent.transparentColor
	if parent.palette != nil {
		ms.palette = parent.palette.Clone()
	}
	return nil
}

// Free releases owned pixel storage and resets the surface to the empty
// state: the owner link, transparency flag, palette, and dirty state are
// all cleared. Safe to call repeatedly, including on an already-empty
// instance; borrowed storage is never freed here.
func (ms *ManagedSurface) Free() {
	ms.inner.Free()
	ms.disposeAfterUse = false
	ms.owner = nil
	ms.offsetFromOwner = Point{}
	ms.transparentColor = 0
	ms.transparentColorSet = false
	ms.palette = nil
	ms.dirty = Rect{}
	ms.dirtyValid = false
}

// Assign replaces this surface with a copy of src, following src's
// ownership semantics: pixel data is deep-copied only when src owns its
// storage; otherwise this becomes another reference to the same borrowed
// storage. A temporary view assigned elsewhere must not outlive its
// basis; that remains the caller's responsibility.
func (ms *ManagedSurface) Assign(src *ManagedSurface) error {
	ms.Free()

	if src.disposeAfterUse {
		if err := ms.inner.Create(src.Width(), src.Height(), src.Format()); err != nil {
			return err
		}
		bpp := int(src.Format().BytesPerPixel)
		for y := 0; y < src.Height(); y++ {
			copy(ms.inner.buf.RowBytes(y), src.inner.buf.RowBytes(y)[:src.Width()*bpp])
		}
		ms.disposeAfterUse = true
	} else if !src.Empty() {
		if err := ms.inner.Init(src.Width(), src.Height(), src.Pitch(), src.inner.Pixels(), src.Format()); err != nil {
			return err
		}
		ms.owner = src.owner
		ms.offsetFromOwner = src.offsetFromOwner
	}

	ms.transparentColorSet = src.transparentColorSet
	ms.transparentColor = src.transparentColor
	if src.palette != nil {
		ms.palette = src.palette.Clone()
	}
	return nil
}

// TakeFrom moves src's entire state into this surface, transferring
// storage ownership. src is left empty and freeable.
func (ms *ManagedSurface) TakeFrom(src *ManagedSurface) {
	ms.Free()

	ms.inner = src.inner
	ms.disposeAfterUse = src.disposeAfterUse
	ms.owner = src.owner
	ms.offsetFromOwner = src.offsetFromOwner
	ms.transparentColor = src.transparentColor
	ms.transparentColorSet = src.transparentColorSet
	ms.palette = src.palette
	ms.dirty = src.dirty
	ms.dirtyValid = src.dirtyValid

	src.inner = Surface{}
	src.disposeAfterUse = false
	src.owner = nil
	src.offsetFromOwner = Point{}
	src.transparentColor = 0
	src.transparentColorSet = false
	src.palette = nil
	src.dirty = Rect{}
	src.dirtyValid = false
}

// CopyFrom replaces this surface with an owned deep copy of src,
// including its transparency and palette state, and marks everything
// dirty.
func (ms *ManagedSurface) CopyFrom(src *ManagedSurface) error {
	ms.Free()
	if err := ms.inner.CopyFrom(&src.inner); err != nil {
		return err
	}
	ms.disposeAfterUse = true
	ms.MarkAllDirty()

	ms.transparentColorSet = src.transparentColorSet
	ms.transparentColor = src.transparentColor
	if src.palette != nil {
		ms.palette = src.palette.Clone()
	}
	return nil
}

// CopyFromSurface replaces this surface with an owned deep copy of a
// plain Surface. Transparency and palette state reset to defaults.
func (ms *ManagedSurface) CopyFromSurface(src *Surface) error {
	ms.Free()
	if err := ms.inner.CopyFrom(src); err != nil {
		return err
	}
	ms.disposeAfterUse = true
	ms.MarkAllDirty()
	return nil
}

// ConvertFrom replaces this surface with src's content re-encoded in
// the given format, carrying src's palette through the conversion.
func (ms *ManagedSurface) ConvertFrom(src *ManagedSurface, format PixelFormat) error {
	var dstPal *Palette
	if format.IsCLUT8() {
		dstPal = src.palette
	}
	converted, err := src.inner.ConvertTo(format, src.palette, dstPal)
	if err != nil {
		return err
	}

	ms.Free()
	ms.inner = *converted
	ms.disposeAfterUse = true
	ms.MarkAllDirty()

	ms.transparentColorSet = src.transparentColorSet
	ms.transparentColor = src.transparentColor
	if format.IsCLUT8() && src.palette != nil {
		ms.palette = src.palette.Clone()
	}
	return nil
}

// ConvertFromSurface replaces this surface with src's content re-encoded
// in the given format. srcPalette is required when src is CLUT8.
func (ms *ManagedSurface) ConvertFromSurface(src *Surface, format PixelFormat, srcPalette *Palette) error {
	converted, err := src.ConvertTo(format, srcPalette, nil)
	if err != nil {
		return err
	}

	ms.Free()
	ms.inner = *converted
	ms.disposeAfterUse = true
	ms.MarkAllDirty()
	return nil
}

// Surface returns the underlying plain Surface. Mutations through it
// bypass dirty-rectangle tracking.
func (ms *ManagedSurface) Surface() *Surface {
	return &ms.inner
}

// Width returns the surface width in pixels.
func (ms *ManagedSurface) Width() int { return ms.inner.Width() }

// Height returns the surface height in pixels.
func (ms *ManagedSurface) Height() int { return ms.inner.Height() }

// Pitch returns the number of bytes per pixel row.
func (ms *ManagedSurface) Pitch() int { return ms.inner.Pitch() }

// Format returns the surface's pixel format.
func (ms *ManagedSurface) Format() PixelFormat { return ms.inner.Format() }

// Bounds returns the surface rectangle anchored at the origin.
func (ms *ManagedSurface) Bounds() Rect { return ms.inner.Bounds() }

// Empty reports whether the surface holds no pixels.
func (ms *ManagedSurface) Empty() bool { return ms.inner.Empty() }

// Owned reports whether the surface owns its pixel storage.
func (ms *ManagedSurface) Owned() bool { return ms.disposeAfterUse }

// Owner returns the parent surface when this instance is a view, else
// nil.
func (ms *ManagedSurface) Owner() *ManagedSurface { return ms.owner }

// OffsetFromOwner returns the view's origin in parent coordinates.
func (ms *ManagedSurface) OffsetFromOwner() Point { return ms.offsetFromOwner }

// GetPixel returns the raw pixel value at (x, y).
func (ms *ManagedSurface) GetPixel(x, y int) uint32 {
	return ms.inner.GetPixel(x, y)
}

// SetPixel stores a raw pixel value at (x, y) and marks it dirty.
func (ms *ManagedSurface) SetPixel(x, y int, col uint32) {
	ms.inner.PutPixel(x, y, col)
	ms.AddDirtyRect(NewRect(x, y, x+1, y+1))
}

// FillRect fills a rectangle with a raw pixel value and marks it dirty.
func (ms *ManagedSurface) FillRect(r Rect, col uint32) {
	ms.inner.FillRect(r, col)
	ms.AddDirtyRect(r)
}

// Clear fills the entire surface with a raw pixel value.
func (ms *ManagedSurface) Clear(col uint32) {
	if !ms.Empty() {
		ms.FillRect(ms.Bounds(), col)
	}
}

// MarkAllDirty marks the entire surface as changed.
func (ms *ManagedSurface) MarkAllDirty() {
	ms.AddDirtyRect(ms.Bounds())
}

// AddDirtyRect records a changed region in local coordinates. On a view
// the rectangle is clipped to the view bounds, translated into parent
// coordinates, and forwarded up the owner chain; dirty state accumulates
// at the root surface.
func (ms *ManagedSurface) AddDirtyRect(r Rect) {
	r = r.Clip(ms.Bounds())
	if ms.owner != nil {
		ms.owner.AddDirtyRect(r.Translate(ms.offsetFromOwner.X, ms.offsetFromOwner.Y))
		return
	}
	if r.IsEmpty() {
		return
	}
	ms.dirty = ms.dirty.Extend(r)
	ms.dirtyValid = true
}

// DirtyBounds returns the accumulated dirty rectangle and whether any
// region is dirty. Only meaningful on the root of a view chain.
func (ms *ManagedSurface) DirtyBounds() (Rect, bool) {
	return ms.dirty, ms.dirtyValid
}

// ClearDirtyRect resets the accumulated dirty state, typically after a
// presentation layer has consumed it.
func (ms *ManagedSurface) ClearDirtyRect() {
	ms.dirty = Rect{}
	ms.dirtyValid = false
}

// SetTransparentColor sets the raw pixel value treated as fully
// transparent during simple and transparent blits. This is distinct
// from alpha-channel transparency.
func (ms *ManagedSurface) SetTransparentColor(col uint32) {
	ms.transparentColor = col
	ms.transparentColorSet = true
}

// TransparentColor returns the current transparent color key.
func (ms *ManagedSurface) TransparentColor() uint32 {
	return ms.transparentColor
}

// HasTransparentColor reports whether a transparent color key is set.
func (ms *ManagedSurface) HasTransparentColor() bool {
	return ms.transparentColorSet
}

// ClearTransparentColor removes the transparent color key.
func (ms *ManagedSurface) ClearTransparentColor() {
	ms.transparentColor = 0
	ms.transparentColorSet = false
}

// Palette returns the surface's palette, or nil when none is set.
func (ms *ManagedSurface) Palette() *Palette {
	return ms.palette
}

// HasPalette reports whether the surface carries a non-empty palette.
func (ms *ManagedSurface) HasPalette() bool {
	return ms.palette != nil && ms.palette.Size() > 0
}

// SetPalette writes packed R, G, B triples into the surface's palette,
// creating it on demand. Views forward palette changes to their owner so
// a shared CLUT8 root stays consistent.
func (ms *ManagedSurface) SetPalette(start int, rgb []byte) {
	if ms.palette == nil {
		ms.palette = NewPalette(PaletteCapacity)
	}
	ms.palette.Set(start, rgb)

	if ms.owner != nil {
		ms.owner.SetPalette(start, rgb)
	}
}

// GrabPalette copies entries out of the surface's palette as packed
// R, G, B triples.
func (ms *ManagedSurface) GrabPalette(start, num int) []byte {
	if ms.palette == nil {
		return nil
	}
	return ms.palette.Grab(start, num)
}

// ClearPalette removes the surface's palette.
func (ms *ManagedSurface) ClearPalette() {
	ms.palette = nil
}

// clipBlitRects shrinks a source/destination rectangle pair consistently
// so the source rect lies within srcBounds and the destination rect lies
// within dstBounds. Both rects must have equal dimensions on entry and
// keep them on exit.
func clipBlitRects(srcRect, dstRect, srcBounds, dstBounds Rect) (Rect, Rect) {
	if d := srcBounds.Left - srcRect.Left; d > 0 {
		srcRect.Left += d
		dstRect.Left += d
	}
	if d := srcBounds.Top - srcRect.Top; d > 0 {
		srcRect.Top += d
		dstRect.Top += d
	}
	if d := srcRect.Right - srcBounds.Right; d > 0 {
		srcRect.Right -= d
		dstRect.Right -= d
	}
	if d := srcRect.Bottom - srcBounds.Bottom; d > 0 {
		srcRect.Bottom -= d
		dstRect.Bottom -= d
	}

	if d := dstBounds.Left - dstRect.Left; d > 0 {
		dstRect.Left += d
		srcRect.Left += d
	}
	if d := dstBounds.Top - dstRect.Top; d > 0 {
		dstRect.Top += d
		srcRect.Top += d
	}
	if d := dstRect.Right - dstBounds.Right; d > 0 {
		dstRect.Right -= d
		srcRect.Right -= d
	}
	if d := dstRect.Bottom - dstBounds.Bottom; d > 0 {
		dstRect.Bottom -= d
		srcRect.Bottom -= d
	}

	return srcRect, dstRect
}
