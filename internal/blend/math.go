package blend

// div255 divides x by 255 using a fast shift approximation.
//
// Formula: (x + 255) >> 8
//
// This is several times faster than integer division; the maximum error
// is +1 for some inputs, imperceptible in alpha blending. For blending
// inputs (0-65025 = 255*255) the result stays within [0, 255].
func div255(x uint16) uint16 {
	return (x + 255) >> 8
}

// mulDiv255 multiplies two bytes and divides by 255 using the fast
// approximation. This runs for every pixel of every blended blit.
func mulDiv255(a, b byte) byte {
	return byte(div255(uint16(a) * uint16(b)))
}

// addClamp adds two bytes, clamping to 255.
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// subClamp subtracts b from a, clamping to 0.
func subClamp(a, b byte) byte {
	if b >= a {
		return 0
	}
	return a - b
}
