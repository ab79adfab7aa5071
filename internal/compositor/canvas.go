package compositor

import (
	"encoding/binary"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/pspoerri/gifdecode/internal/gif"
)

// wrapCanvas views a bitmap's raw RGBA bytes as an *image.RGBA with no copy,
// so disposal fills can go through golang.org/x/image/draw instead of a
// hand-rolled pixel loop.
func wrapCanvas(buf []byte, w, h int) *image.RGBA {
	return &image.RGBA{Pix: buf, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
}

func unpackColour(c uint32) color.RGBA {
	return color.RGBA{R: byte(c >> 24), G: byte(c >> 16), B: byte(c >> 8), A: byte(c)}
}

// fillRect paints r (already clipped to the canvas) with a solid colour.
func fillRect(canvas *image.RGBA, r gif.Rect, c uint32) {
	if r.Empty() {
		return
	}
	dr := image.Rect(r.X0, r.Y0, r.X1, r.Y1)
	draw.Draw(canvas, dr, &image.Uniform{C: unpackColour(c)}, image.Point{}, draw.Src)
}

// fillTransparent clears the whole canvas to 0x00000000.
func fillTransparent(canvas *image.RGBA) {
	clear(canvas.Pix)
}

// clipRect intersects a frame rectangle with the canvas bounds.
func clipRect(r gif.Rect, canvasW, canvasH int) gif.Rect {
	out := r
	if out.X0 < 0 {
		out.X0 = 0
	}
	if out.Y0 < 0 {
		out.Y0 = 0
	}
	if out.X1 > canvasW {
		out.X1 = canvasW
	}
	if out.Y1 > canvasH {
		out.Y1 = canvasH
	}
	if out.X1 < out.X0 {
		out.X1 = out.X0
	}
	if out.Y1 < out.Y0 {
		out.Y1 = out.Y0
	}
	return out
}

// readRow reads width packed RGBA pixels starting at (x0, y) into dst,
// preserving the destination's byte order (red, green, blue, alpha).
func readRow(canvas *image.RGBA, y, x0, width int, dst []uint32) {
	off := y*canvas.Stride + x0*4
	for i := 0; i < width; i++ {
		dst[i] = binary.BigEndian.Uint32(canvas.Pix[off : off+4])
		off += 4
	}
}

// writeRow writes width packed RGBA pixels from src starting at (x0, y).
func writeRow(canvas *image.RGBA, y, x0, width int, src []uint32) {
	off := y*canvas.Stride + x0*4
	for i := 0; i < width; i++ {
		binary.BigEndian.PutUint32(canvas.Pix[off:off+4], src[i])
		off += 4
	}
}

// setPixel writes one packed RGBA pixel at (x, y).
func setPixel(canvas *image.RGBA, x, y int, c uint32) {
	off := y*canvas.Stride + x*4
	binary.BigEndian.PutUint32(canvas.Pix[off:off+4], c)
}
