// Package gifplayer is the public façade over the progressive GIF decoder:
// one object per animation, lifecycle methods, a closed ErrorKind instead of
// leaking internal status enums. It owns the internal/gif survey state, the
// internal/compositor canvas, and an optional internal/animcache for
// random-access replay, the way the teacher's internal/cog.Reader owns its
// IFD index and tile cache behind one open/prepare/decode call rhythm.
package gifplayer

import (
	"strconv"
	"sync/atomic"

	"github.com/pspoerri/gifdecode/internal/animcache"
	"github.com/pspoerri/gifdecode/internal/bitmap"
	"github.com/pspoerri/gifdecode/internal/compositor"
	"github.com/pspoerri/gifdecode/internal/gif"
)

var nextStreamID uint64

// Decoder decodes one progressively-delivered GIF animation. It is not
// reentrant: the caller must not invoke two methods on the same Decoder
// concurrently, and must not call DataScan while a FrameDecode from a
// previous call is still in progress (there is no implicit cancellation).
type Decoder struct {
	stream *gif.Stream
	comp   *compositor.Compositor
	cache  *animcache.Cache
	id     string

	playbackFrame     int
	loopCount         int
	animationComplete bool
}

// Create opens a new Decoder against the given bitmap capability. The
// capability's Create/Destroy/GetBuffer fields must be non-nil.
func Create(cap bitmap.Capability) *Decoder {
	return newDecoder(cap, nil)
}

// CreateCached is Create plus a shared frame cache, so seeking backwards or
// looping across many Decoders doesn't re-run the compositor for frames
// already composited. The cache may be shared across multiple Decoders; each
// is assigned its own cache namespace.
func CreateCached(cap bitmap.Capability, cache *animcache.Cache) *Decoder {
	return newDecoder(cap, cache)
}

func newDecoder(cap bitmap.Capability, cache *animcache.Cache) *Decoder {
	id := atomic.AddUint64(&nextStreamID, 1)
	return &Decoder{
		stream:        gif.NewStream(),
		comp:          compositor.New(cap),
		cache:         cache,
		id:            strconv.FormatUint(id, 10),
		playbackFrame: -1,
	}
}

// DataScan registers a new, larger view of the source (bytes already seen on
// a prior call must be unchanged) and advances the survey as far as the
// bytes allow. KindOK means the trailer was reached; KindWorking means the
// survey progressed but more frames may still follow; KindInsufficientData
// means no progress was possible with the bytes given.
func (d *Decoder) DataScan(data []byte) ErrorKind {
	prevW, prevH := d.stream.Width, d.stream.Height
	prevCursor := d.stream.Cursor()
	st := d.stream.Scan(data)

	if d.cache != nil && (d.stream.Width != prevW || d.stream.Height != prevH) {
		d.cache.InvalidateStream(d.id)
	}

	switch st {
	case gif.StatusOK:
		// Scan only ever returns StatusOK once the trailer has been
		// reached; there is no "OK but not complete" case.
		return KindOK
	case gif.StatusInsufficientData:
		if d.stream.Cursor() > prevCursor {
			return KindWorking
		}
		return KindInsufficientData
	default:
		return mapGifStatus(st)
	}
}

// FramePrepare advances the playback cursor to the next frame due for
// display and returns the rectangle the caller must redraw, that frame's
// delay in centiseconds, and its index. The redraw rectangle is the frame's
// own rectangle, unless the previous frame's disposal forces a wider
// redraw, in which case it is the union of both rectangles.
func (d *Decoder) FramePrepare() (rect gif.Rect, delayCS int, index int, kind ErrorKind) {
	if d.animationComplete {
		return gif.Rect{}, 0, -1, KindAnimationComplete
	}

	n := d.stream.FrameCount()
	if n == 0 {
		return gif.Rect{}, 0, -1, KindFrameNoDisplay
	}

	next := d.playbackFrame + 1
	if next >= n {
		next = 0
		d.loopCount++
		if d.stream.LoopMax > 0 && d.loopCount >= d.stream.LoopMax {
			d.animationComplete = true
			return gif.Rect{}, 0, -1, KindAnimationComplete
		}
	}

	f := d.stream.Frames[next]
	rect = f.Rect
	if next > 0 && d.stream.Frames[next-1].RedrawRequired {
		rect = rect.Union(d.stream.Frames[next-1].Rect)
	}
	d.playbackFrame = next
	return rect, f.DelayCS, next, KindOK
}

// FrameDecode composites the frame at index onto the canvas and returns its
// packed RGBA bytes. index may be any already-surveyed (Displayable) frame,
// not only the one most recently returned by FramePrepare: decoding the same
// index twice in a row is a cheap no-op, and decoding an earlier index
// replays the disposal chain from the start, since a frame's correct
// composite depends only on the frames before it, never on playback order.
func (d *Decoder) FrameDecode(index int) ([]byte, ErrorKind) {
	n := d.stream.FrameCount()
	if index < 0 || index >= n {
		return nil, KindFrameInvalid
	}
	if !d.stream.Frames[index].Displayable {
		return nil, KindFrameNoDisplay
	}

	canvasW, canvasH := d.stream.Width, d.stream.Height

	if index == d.comp.MaterializedFrame() {
		buf := d.comp.Buffer()
		if d.cache != nil {
			d.cache.Put(d.id, index, canvasW, canvasH, buf)
		}
		return buf, KindEndOfFrame
	}
	if d.cache != nil {
		if pix := d.cache.Get(d.id, index, canvasW, canvasH); pix != nil {
			return pix, KindEndOfFrame
		}
	}

	start := d.comp.MaterializedFrame() + 1
	if index < start {
		d.comp.Reset()
		start = 0
	}

	// Intermediate frames on the replay path are recomposited even if
	// cached: internal/compositor has no "adopt this buffer" hook, so the
	// cache is only consulted for the final, requested frame above.
	for i := start; i <= index; i++ {
		geom, dec, st := d.stream.PrepareFrameDecode(i)
		if st != gif.StatusOK {
			return nil, mapGifStatus(st)
		}
		cst := d.comp.Composite(i, d.stream.Frames, geom, dec, canvasW, canvasH, d.stream.BackgroundColour())
		if cst != compositor.StatusOK {
			return nil, mapCompositorStatus(cst)
		}
	}

	buf := d.comp.Buffer()
	if d.cache != nil {
		d.cache.Put(d.id, index, canvasW, canvasH, buf)
	}
	return buf, KindEndOfFrame
}

// Reset zeroes the loop counter and clears the currently-materialised frame
// latch. A subsequent full replay of FrameDecode from frame 0 yields
// identical bitmaps to the original decode.
func (d *Decoder) Reset() {
	d.loopCount = 0
	d.playbackFrame = -1
	d.animationComplete = false
	d.comp.Reset()
}

// Info summarises what the survey pass has learned so far.
type Info struct {
	Width, Height int
	FrameCount    int
	LoopMax       int
	LoopCount     int
	DelayMin      int
}

// GetInfo returns the animation's current metadata. Width, Height and
// FrameCount may still grow as DataScan sees more of the stream.
func (d *Decoder) GetInfo() Info {
	return Info{
		Width:      d.stream.Width,
		Height:     d.stream.Height,
		FrameCount: d.stream.FrameCount(),
		LoopMax:    d.stream.LoopMax,
		LoopCount:  d.loopCount,
		DelayMin:   d.stream.DelayMin(),
	}
}

// Destroy releases the canvas handle and any cached frames for this stream.
// It is safe to call regardless of any prior error: the compositor tracks
// its own handle and releases it unconditionally.
func (d *Decoder) Destroy() {
	d.comp.Destroy()
	if d.cache != nil {
		d.cache.InvalidateStream(d.id)
	}
}
