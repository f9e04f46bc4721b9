package led

import (
	"bytes"
	"testing"
)

func TestEncodeFrameLength(t *testing.T) {
	// 9 SPI bytes per pixel plus the reset tail.
	for _, n := range []int{1, 8, 17} {
		frame := encodeFrame(make([]rgb, n), 255)
		want := n*9 + resetBytes
		if len(frame) != want {
			t.Errorf("%d pixels: frame length = %d, want %d", n, len(frame), want)
		}
	}
}

func TestEncodeFrameZeroPixel(t *testing.T) {
	frame := encodeFrame([]rgb{{}}, 255)

	// 24 zero bits encode as 100 repeated: 10010010 01001001 00100100 ...
	wantPixel := []byte{0x92, 0x49, 0x24, 0x92, 0x49, 0x24, 0x92, 0x49, 0x24}
	if !bytes.Equal(frame[:9], wantPixel) {
		t.Errorf("zero pixel encoding = % x, want % x", frame[:9], wantPixel)
	}

	// Reset tail is all zeros.
	for i, b := range frame[9:] {
		if b != 0 {
			t.Fatalf("reset byte %d = %#x, want 0", i, b)
		}
	}
}

func TestEncodeFrameChannelOrder(t *testing.T) {
	// Red at full brightness: GRB order means the second 24-bit group
	// (bits 8-15 of the pixel) carries 0xFF, so the first 3 encoded
	// bytes are all-zero-bit patterns and the next 3 are all-one-bit.
	frame := encodeFrame([]rgb{{r: 255}}, 255)

	zeroByte := []byte{0x92, 0x49, 0x24}
	oneByte := []byte{0xDB, 0x6D, 0xB6}
	if !bytes.Equal(frame[0:3], zeroByte) {
		t.Errorf("green channel = % x, want % x", frame[0:3], zeroByte)
	}
	if !bytes.Equal(frame[3:6], oneByte) {
		t.Errorf("red channel = % x, want % x", frame[3:6], oneByte)
	}
	if !bytes.Equal(frame[6:9], zeroByte) {
		t.Errorf("blue channel = % x, want % x", frame[6:9], zeroByte)
	}
}

func TestScaleBrightness(t *testing.T) {
	cases := []struct {
		v          uint8
		brightness int
		want       uint8
	}{
		{255, 255, 255},
		{255, 0, 0},
		{255, 120, 120},
		{128, 255, 128},
		{100, 51, 20},
	}
	for _, tc := range cases {
		if got := scale(tc.v, tc.brightness); got != tc.want {
			t.Errorf("scale(%d, %d) = %d, want %d", tc.v, tc.brightness, got, tc.want)
		}
	}
}

func TestColorRGB(t *testing.T) {
	if colorRGB(Red) != (rgb{r: 255}) {
		t.Errorf("red = %+v", colorRGB(Red))
	}
	if colorRGB(Color("bogus")) != (rgb{}) {
		t.Error("unknown color should map to off")
	}
}
