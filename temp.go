package ds7505

import "math"

// Weights of the four significant fractional bits, bits 7 down to 4 of the
// low register byte. Bits 3-0 are unused.
var fracWeights = [4]float64{0.5, 0.25, 0.125, 0.0625}

// decodeTemp converts a raw two-byte register value to degrees Celsius.
//
// The value is read as sign-magnitude: bit 7 of the high byte carries the
// sign and the fractional bits always add to the magnitude. This is the
// DS7505's documented format, deliberately not a two's-complement
// interpretation. Every 16-bit input is legal.
func decodeTemp(h, l uint8) float64 {
	sign := 1.0
	if h&0x80 != 0 {
		sign = -1.0
		h &= 0x7F
	}
	t := float64(h)
	for i, w := range fracWeights {
		if l&(0x80>>uint(i)) != 0 {
			t += w
		}
	}
	return sign * t
}

// encodeTemp converts degrees Celsius to the two-byte register value,
// quantizing toward zero to the nearest 1/16 degree. For negative values
// the integer magnitude is OR'd onto the sign bit; decodeTemp inverts
// exactly that packing. The caller keeps t inside the operating range.
func encodeTemp(t float64) (uint8, uint8) {
	mag := t
	var h uint8
	if t >= 0 {
		h = uint8(t)
	} else {
		mag = -t
		h = 0x80 | uint8(mag)
	}
	rem := mag - math.Floor(mag)
	var l uint8
	for i, w := range fracWeights {
		if rem >= w {
			l |= 0x80 >> uint(i)
			rem -= w
		}
	}
	return h, l
}
