// Package raster implements software raster surfaces with format-aware
// blitting for Go.
//
// # Overview
//
// raster provides a managed 2D pixel buffer abstraction, ManagedSurface,
// supporting blits between heterogeneous pixel formats: opaque copies,
// color-keyed and masked blits, alpha-blended blits with correct
// compositing math, nearest-neighbor scaling, and rotation. Pixel formats
// cover 1/2/3/4 bytes per pixel, palette-indexed (CLUT8) or direct color
// with an optional alpha channel.
//
// # Quick Start
//
//	import "github.com/gogpu/raster"
//
//	// Create a 320x200 surface in 32-bit RGBA
//	screen, _ := raster.NewManagedSurface(320, 200, raster.ABGR8888())
//
//	// Create a sprite and draw it with a transparent color key
//	sprite, _ := raster.NewManagedSurface(16, 16, raster.ABGR8888())
//	sprite.SetTransparentColor(0)
//	screen.SimpleBlitFrom(sprite, raster.Pt(100, 50))
//
//	// Hand the accumulated dirty region to a presentation layer
//	if dirty, ok := screen.DirtyBounds(); ok {
//		present(screen, dirty)
//		screen.ClearDirtyRect()
//	}
//
// # Surfaces and Views
//
// A ManagedSurface either owns its pixel storage or is a view: a
// rectangular window into a parent surface's storage. Views share memory
// without owning it; drawing into a view marks the corresponding region
// dirty on the root surface of the view chain. The creator of a view must
// ensure the parent outlives it.
//
// # Concurrency
//
// All operations assume exclusive access to the surfaces involved for the
// duration of a call. Callers introducing concurrency must serialize
// access externally.
package raster
