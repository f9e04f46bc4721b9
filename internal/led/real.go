//go:build linux

package led

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// spidev ioctl requests (from linux/spi/spidev.h).
const (
	spiIocWrMode        = 0x40016b01
	spiIocWrBitsPerWord = 0x40016b03
	spiIocWrMaxSpeedHz  = 0x40046b04
)

// Strip drives a WS2812B strip through a spidev device.
type Strip struct {
	fd         int
	count      int
	brightness int
	sleep      func(time.Duration)
}

// NewStrip opens the SPI device and configures it for WS2812B timing.
// brightness is 0-255 and scales every color written to the strip.
func NewStrip(device string, count, brightness int) (*Strip, error) {
	fd, err := unix.Open(device, unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", device, err)
	}

	s := &Strip{
		fd:         fd,
		count:      count,
		brightness: brightness,
		sleep:      time.Sleep,
	}

	mode := uint8(0)
	bits := uint8(8)
	speed := uint32(spiSpeedHz)
	for _, cfg := range []struct {
		req uintptr
		ptr unsafe.Pointer
	}{
		{spiIocWrMode, unsafe.Pointer(&mode)},
		{spiIocWrBitsPerWord, unsafe.Pointer(&bits)},
		{spiIocWrMaxSpeedHz, unsafe.Pointer(&speed)},
	} {
		if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), cfg.req, uintptr(cfg.ptr)); errno != 0 {
			unix.Close(fd)
			return nil, fmt.Errorf("configure %s: %w", device, errno)
		}
	}

	return s, nil
}

// Fill sets the entire strip to a single color.
func (s *Strip) Fill(c Color) error {
	px := colorRGB(c)
	pixels := make([]rgb, s.count)
	for i := range pixels {
		pixels[i] = px
	}
	return s.write(pixels)
}

// Sweep chases a single pixel out and back along the strip, blanking
// behind it. Blocks for the duration of the animation.
func (s *Strip) Sweep(c Color) error {
	px := colorRGB(c)
	pixels := make([]rgb, s.count)

	show := func(i int) error {
		for j := range pixels {
			pixels[j] = rgb{}
		}
		pixels[i] = px
		if err := s.write(pixels); err != nil {
			return err
		}
		s.sleep(FrameDelay)
		return nil
	}

	for i := 0; i < s.count; i++ {
		if err := show(i); err != nil {
			return err
		}
	}
	for i := s.count - 1; i >= 0; i-- {
		if err := show(i); err != nil {
			return err
		}
	}
	return nil
}

func (s *Strip) write(pixels []rgb) error {
	frame := encodeFrame(pixels, s.brightness)
	if _, err := unix.Write(s.fd, frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Close blanks the strip and closes the SPI device.
func (s *Strip) Close() error {
	if err := s.Fill(Off); err != nil {
		unix.Close(s.fd)
		return err
	}
	if err := unix.Close(s.fd); err != nil {
		return fmt.Errorf("close spi device: %w", err)
	}
	return nil
}
