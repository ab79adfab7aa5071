package gifstat

import (
	"fmt"
	"image"
	"os"

	"github.com/gen2brain/webp"
)

// WritePoster encodes a composited RGBA frame buffer (as returned by
// internal/gifplayer.Decoder.FrameDecode) as a WebP image at path. quality
// is the lossy encode quality, 1-100; values outside that range are
// replaced with 85.
func WritePoster(path string, pix []byte, width, height int, quality int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("gifstat: poster frame has no area (%dx%d)", width, height)
	}
	if len(pix) < width*height*4 {
		return fmt.Errorf("gifstat: poster pixel buffer too small: have %d bytes, want %d", len(pix), width*height*4)
	}
	if quality <= 0 || quality > 100 {
		quality = 85
	}

	img := &image.RGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gifstat: creating poster file: %w", err)
	}
	defer f.Close()

	if err := webp.Encode(f, img, webp.Options{Quality: float32(quality)}); err != nil {
		return fmt.Errorf("gifstat: encoding poster as webp: %w", err)
	}
	return nil
}
