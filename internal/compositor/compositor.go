// Package compositor owns the animation canvas and composites one GIF frame
// at a time onto it: disposal handling, transparency, interlace row
// ordering, and clipping. It never talks to the byte stream directly — the
// caller hands it a positioned internal/lzw.Decoder (from
// internal/gif.Stream.PrepareFrameDecode) and the frame metadata that
// decoder belongs to.
package compositor

import (
	"image"

	"github.com/pspoerri/gifdecode/internal/bitmap"
	"github.com/pspoerri/gifdecode/internal/gif"
	"github.com/pspoerri/gifdecode/internal/lzw"
)

const noTransparency = 0x1FF // out of byte range: internal/lzw.DecodeMap never skips

// Compositor materialises the bitmap capability's one canvas handle and
// composites frames onto it according to their disposal method.
type Compositor struct {
	cap    bitmap.Capability
	handle any
	width  int
	height int

	snapshot    []byte
	snapW       int
	snapH       int
	hasSnapshot bool

	materializedFrame int // -1 if no frame has been composited yet
}

// New creates a Compositor against the given bitmap capability. No canvas is
// allocated until the first Composite call, since the true canvas size can
// grow during survey.
func New(cap bitmap.Capability) *Compositor {
	return &Compositor{cap: cap, materializedFrame: -1}
}

// Buffer exposes the current canvas's raw RGBA bytes, or nil if none has
// been materialised yet.
func (c *Compositor) Buffer() []byte {
	if c.handle == nil {
		return nil
	}
	return c.cap.GetBuffer(c.handle)
}

// Dimensions returns the current canvas size.
func (c *Compositor) Dimensions() (int, int) { return c.width, c.height }

// MaterializedFrame returns the index of the frame currently reflected in
// the canvas, or -1 if none has been composited since creation or the last
// Reset.
func (c *Compositor) MaterializedFrame() int { return c.materializedFrame }

// Reset discards the materialised canvas and snapshot, forcing the next
// Composite to start from a transparent canvas.
func (c *Compositor) Reset() {
	if c.handle != nil {
		c.cap.Destroy(c.handle)
		c.handle = nil
	}
	c.width, c.height = 0, 0
	c.hasSnapshot = false
	c.materializedFrame = -1
}

// Destroy releases the canvas handle. The Compositor must not be used
// afterwards.
func (c *Compositor) Destroy() {
	if c.handle != nil {
		c.cap.Destroy(c.handle)
		c.handle = nil
	}
}

func (c *Compositor) ensureCanvas(w, h int) Status {
	if c.handle != nil && c.width == w && c.height == h {
		return StatusOK
	}
	if c.handle != nil {
		c.cap.Destroy(c.handle)
		c.handle = nil
	}
	h2, ok := c.cap.Create(w, h)
	if !ok {
		return StatusNoMem
	}
	c.handle = h2
	c.width, c.height = w, h
	c.materializedFrame = -1 // freshly (re)allocated canvas is uninitialised
	return StatusOK
}

// Composite renders frame idx onto the canvas, growing or reallocating it
// to canvasW x canvasH first if needed. frames is the full frame index
// (Composite reads frames[idx-1] for disposal and writes back into
// frames[idx] once decoded); it must share backing storage with whatever
// the caller passed to internal/gif.Stream so updates are visible there too.
func (c *Compositor) Composite(idx int, frames []gif.Frame, geom gif.Geometry, dec *lzw.Decoder, canvasW, canvasH int, background uint32) Status {
	if idx < 0 || idx >= len(frames) {
		return StatusBadFrameIndex
	}
	if st := c.ensureCanvas(canvasW, canvasH); st != StatusOK {
		return st
	}
	canvas := wrapCanvas(c.cap.GetBuffer(c.handle), canvasW, canvasH)

	c.prepareCanvas(canvas, idx, frames, background)

	cur := &frames[idx]
	if cur.Disposal == gif.DisposalRestorePrevious {
		c.captureSnapshot(canvas)
	}

	var st Status
	if isFastPath(geom, canvasW) {
		st = c.decodeFast(canvas, geom, dec, cur, canvasH)
	} else {
		st = c.decodeGeneral(canvas, geom, dec, cur, canvasW, canvasH)
	}
	if st != StatusOK {
		return st
	}

	if c.cap.Modified != nil {
		c.cap.Modified(c.handle)
	}
	if !cur.Decoded && c.cap.TestOpaque != nil {
		cur.Opaque = c.cap.TestOpaque(c.handle)
	}
	if c.cap.SetOpaque != nil {
		c.cap.SetOpaque(c.handle, cur.Opaque)
	}
	cur.Decoded = true
	c.materializedFrame = idx
	return StatusOK
}

// prepareCanvas performs step 1 (pre-compose preparation): fill transparent
// on the very first composite, otherwise act on the previous frame's
// disposal.
func (c *Compositor) prepareCanvas(canvas *image.RGBA, idx int, frames []gif.Frame, background uint32) {
	if idx == 0 || c.materializedFrame < 0 {
		fillTransparent(canvas)
		return
	}
	prev := frames[idx-1]
	switch prev.Disposal {
	case gif.DisposalRestoreBackground:
		c.restoreBackground(canvas, prev, background)
	case gif.DisposalRestorePrevious:
		if c.hasSnapshot {
			c.restoreSnapshot(canvas)
		} else {
			c.restoreBackground(canvas, prev, background)
		}
	}
	// Unspecified / None: leave the canvas as-is.
}

func (c *Compositor) restoreBackground(canvas *image.RGBA, prev gif.Frame, background uint32) {
	r := clipRect(prev.Rect, c.width, c.height)
	if prev.Transparent {
		fillRect(canvas, r, 0)
	} else {
		fillRect(canvas, r, background)
	}
}

func (c *Compositor) captureSnapshot(canvas *image.RGBA) {
	need := len(canvas.Pix)
	if cap(c.snapshot) < need {
		c.snapshot = make([]byte, need)
	}
	c.snapshot = c.snapshot[:need]
	copy(c.snapshot, canvas.Pix)
	c.snapW, c.snapH = c.width, c.height
	c.hasSnapshot = true
}

func (c *Compositor) restoreSnapshot(canvas *image.RGBA) {
	if c.snapW != c.width || c.snapH != c.height {
		// Canvas grew since the snapshot was taken; there is nothing
		// sensible to restore outside the snapshot's bounds, so only the
		// overlapping region is copied back and the rest stays as-is.
		srcStride := c.snapW * 4
		n := min(c.snapW, c.width) * 4
		for y := 0; y < c.snapH && y < c.height; y++ {
			copy(canvas.Pix[y*canvas.Stride:], c.snapshot[y*srcStride:y*srcStride+n])
		}
		return
	}
	copy(canvas.Pix, c.snapshot)
}

func isFastPath(geom gif.Geometry, canvasW int) bool {
	return !geom.Interlace && geom.Rect.X0 == 0 && geom.Rect.Width() == canvasW
}

func transparentIndexFor(f *gif.Frame) int {
	if !f.Transparent {
		return noTransparency
	}
	return f.TransparentIndex
}

func mapLZWStatus(st lzw.Status) Status {
	switch st {
	case lzw.StatusOK, lzw.StatusOKEOD:
		return StatusOK
	default:
		return StatusFrameDataError
	}
}

// decodeFast handles the case where the frame spans the full canvas width
// at offset_x 0 and is not interlaced: LZW map mode writes straight into
// each canvas row, with palette mapping and transparency skip applied
// inline by internal/lzw.Decoder.DecodeMap.
func (c *Compositor) decodeFast(canvas *image.RGBA, geom gif.Geometry, dec *lzw.Decoder, cur *gif.Frame, canvasH int) Status {
	width := geom.Rect.Width()
	rowBuf := make([]uint32, width)
	transparentIdx := transparentIndexFor(cur)

	for y := geom.Rect.Y0; y < geom.Rect.Y1; y++ {
		if y >= canvasH {
			break // no more in-bounds rows can follow in sequential order
		}
		readRow(canvas, y, 0, width, rowBuf)
		_, st := dec.DecodeMap(rowBuf, &geom.Palette.Colours, transparentIdx)
		if mapped := mapLZWStatus(st); mapped != StatusOK {
			return mapped
		}
		writeRow(canvas, y, 0, width, rowBuf)
	}
	return StatusOK
}

// decodeGeneral handles interlaced frames and frames that don't span the
// full canvas width: LZW stream mode decodes index bytes, which are then
// distributed across destination rows in interlace (or sequential) order,
// each row copied through the palette with clipping and transparency
// applied by hand.
func (c *Compositor) decodeGeneral(canvas *image.RGBA, geom gif.Geometry, dec *lzw.Decoder, cur *gif.Frame, canvasW, canvasH int) Status {
	frameW := geom.Rect.Width()
	frameH := geom.Rect.Height()
	if frameW <= 0 || frameH <= 0 {
		_, st := dec.Decode() // still must drain the frame's LZW data
		return mapLZWStatus(st)
	}

	indices, st := dec.Decode()
	if mapped := mapLZWStatus(st); mapped != StatusOK {
		return mapped
	}

	order := make([]int, frameH)
	if geom.Interlace {
		rows := interlaceRowOrder(frameH)
		copy(order, rows)
	} else {
		for i := range order {
			order[i] = i
		}
	}

	transparentIdx := transparentIndexFor(cur)
	palette := &geom.Palette.Colours

	for i, localY := range order {
		rowStart := i * frameW
		if rowStart+frameW > len(indices) {
			return StatusFrameDataError
		}
		absY := geom.Rect.Y0 + localY
		if absY < 0 || absY >= canvasH {
			continue
		}
		for x := 0; x < frameW; x++ {
			absX := geom.Rect.X0 + x
			if absX < 0 || absX >= canvasW {
				continue
			}
			idxVal := int(indices[rowStart+x])
			if idxVal == transparentIdx {
				continue
			}
			setPixel(canvas, absX, absY, palette[idxVal])
		}
	}
	return StatusOK
}
