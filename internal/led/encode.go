package led

// WS2812B framing over SPI: with the bus clocked at 2.4 MHz, each WS2812B
// data bit maps to three SPI bits (0 -> 100, 1 -> 110), giving pulse widths
// within the datasheet tolerances. Pixels are sent GRB, high bit first.

// spiSpeedHz is the SPI clock required by the 3-bits-per-bit encoding.
const spiSpeedHz = 2_400_000

// resetBytes of zeros on the wire hold the line low long enough (>50us)
// to latch the frame.
const resetBytes = 18

// encodeFrame renders the pixel colors into an SPI byte stream, applying
// brightness scaling (0-255). The trailing zero bytes latch the frame.
func encodeFrame(pixels []rgb, brightness int) []byte {
	// 8 data bits per channel, 3 channels, 3 SPI bits per data bit.
	out := make([]byte, 0, len(pixels)*9+resetBytes)
	var acc uint32 // bit accumulator
	var nbits uint

	putBit := func(spiBits uint32) {
		acc = acc<<3 | spiBits
		nbits += 3
		for nbits >= 8 {
			nbits -= 8
			out = append(out, byte(acc>>nbits))
		}
	}

	for _, px := range pixels {
		for _, ch := range [3]uint8{px.g, px.r, px.b} {
			v := scale(ch, brightness)
			for bit := 7; bit >= 0; bit-- {
				if v&(1<<uint(bit)) != 0 {
					putBit(0b110)
				} else {
					putBit(0b100)
				}
			}
		}
	}
	// 9 bytes per pixel leaves the accumulator empty; nothing to flush.

	for i := 0; i < resetBytes; i++ {
		out = append(out, 0)
	}
	return out
}

func scale(v uint8, brightness int) uint8 {
	return uint8(int(v) * brightness / 255)
}
