// Package blit implements the format-free inner loops of the raster
// blitting engine: straight row copies, color-keyed copies, mask-gated
// copies, and palette-index lookup copies. All functions operate on raw
// byte slices with explicit pitches; format-aware decoding stays with
// the caller.
package blit

import "encoding/binary"

// ReadPixel loads a raw little-endian pixel value of the given byte
// width from p.
func ReadPixel(p []byte, bpp int) uint32 {
	switch bpp {
	case 1:
		return uint32(p[0])
	case 2:
		return uint32(binary.LittleEndian.Uint16(p))
	case 3:
		return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16
	default:
		return binary.LittleEndian.Uint32(p)
	}
}

// WritePixel stores a raw little-endian pixel value of the given byte
// width into p.
func WritePixel(p []byte, bpp int, v uint32) {
	switch bpp {
	case 1:
		p[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(p, uint16(v))
	case 3:
		p[0] = byte(v)
		p[1] = byte(v >> 8)
		p[2] = byte(v >> 16)
	default:
		binary.LittleEndian.PutUint32(p, v)
	}
}

// Copy performs a straight row-by-row byte copy of w*h pixels.
func Copy(dst, src []byte, dstPitch, srcPitch, w, h, bpp int) {
	rowLen := w * bpp
	for y := 0; y < h; y++ {
		copy(dst[y*dstPitch:y*dstPitch+rowLen], src[y*srcPitch:y*srcPitch+rowLen])
	}
}

// Keyed copies w*h pixels, skipping source pixels equal to the key.
func Keyed(dst, src []byte, dstPitch, srcPitch, w, h, bpp int, key uint32) {
	for y := 0; y < h; y++ {
		srcRow := src[y*srcPitch:]
		dstRow := dst[y*dstPitch:]
		for x := 0; x < w; x++ {
			v := ReadPixel(srcRow[x*bpp:], bpp)
			if v == key {
				continue
			}
			WritePixel(dstRow[x*bpp:], bpp, v)
		}
	}
}

// Masked copies w*h pixels, writing only where the corresponding mask
// pixel is non-zero. The mask has the same pixel width as the source.
func Masked(dst, src, mask []byte, dstPitch, srcPitch, maskPitch, w, h, bpp int) {
	rowLen := w * bpp
	for y := 0; y < h; y++ {
		srcRow := src[y*srcPitch : y*srcPitch+rowLen]
		dstRow := dst[y*dstPitch : y*dstPitch+rowLen]
		maskRow := mask[y*maskPitch:]
		for x := 0; x < w; x++ {
			if ReadPixel(maskRow[x*bpp:], bpp) == 0 {
				continue
			}
			v := ReadPixel(srcRow[x*bpp:], bpp)
			WritePixel(dstRow[x*bpp:], bpp, v)
		}
	}
}

// CrossMapped copies w*h pixels from an 8-bit indexed source, writing
// each pixel as lut[index] in the destination's pixel width.
func CrossMapped(dst, src []byte, dstPitch, srcPitch, w, h, dstBpp int, lut *[256]uint32) {
	for y := 0; y < h; y++ {
		srcRow := src[y*srcPitch:]
		dstRow := dst[y*dstPitch:]
		for x := 0; x < w; x++ {
			WritePixel(dstRow[x*dstBpp:], dstBpp, lut[srcRow[x]])
		}
	}
}

// CrossMappedKeyed is CrossMapped with a color-key skip: source indices
// equal to key leave the destination untouched.
func CrossMappedKeyed(dst, src []byte, dstPitch, srcPitch, w, h, dstBpp int, lut *[256]uint32, key uint32) {
	for y := 0; y < h; y++ {
		srcRow := src[y*srcPitch:]
		dstRow := dst[y*dstPitch:]
		for x := 0; x < w; x++ {
			idx := srcRow[x]
			if uint32(idx) == key {
				continue
			}
			WritePixel(dstRow[x*dstBpp:], dstBpp, lut[idx])
		}
	}
}

// CrossMappedMasked is CrossMapped gated by a mask surface: pixels are
// written only where the corresponding mask byte is non-zero.
func CrossMappedMasked(dst, src, mask []byte, dstPitch, srcPitch, maskPitch, w, h, dstBpp int, lut *[256]uint32) {
	for y := 0; y < h; y++ {
		srcRow := src[y*srcPitch:]
		dstRow := dst[y*dstPitch:]
		maskRow := mask[y*maskPitch:]
		for x := 0; x < w; x++ {
			if maskRow[x] == 0 {
				continue
			}
			WritePixel(dstRow[x*dstBpp:], dstBpp, lut[srcRow[x]])
		}
	}
}
