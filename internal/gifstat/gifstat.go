// Package gifstat is a read-only introspection layer over a surveyed
// internal/gif.Stream: a per-frame table, a loop/timing summary, and (via
// its companion files) poster-frame export and sidecar verification. It
// never mutates the stream it reports on.
package gifstat

import "github.com/pspoerri/gifdecode/internal/gif"

// FrameInfo is one row of the frame table: everything the survey pass
// learned about a single frame.
type FrameInfo struct {
	Index            int
	Rect             gif.Rect
	Disposal         gif.Disposal
	DelayCS          int
	Interlace        bool
	Transparent      bool
	TransparentIndex int
	HasLocalPalette  bool
}

// Report summarises a stream's currently surveyed state. Width, Height and
// the frame table may still grow if the stream is fed more data afterwards.
type Report struct {
	Width, Height   int
	FrameCount      int
	LoopMax         int
	DelayMinCS      int
	TotalDurationCS int
	Frames          []FrameInfo
}

// Build reports on everything s has surveyed so far.
func Build(s *gif.Stream) Report {
	r := Report{
		Width:      s.Width,
		Height:     s.Height,
		FrameCount: s.FrameCount(),
		LoopMax:    s.LoopMax,
		DelayMinCS: s.DelayMin(),
	}
	r.Frames = make([]FrameInfo, r.FrameCount)
	for i := range s.Frames {
		f := &s.Frames[i]
		r.Frames[i] = FrameInfo{
			Index:            i,
			Rect:             f.Rect,
			Disposal:         f.Disposal,
			DelayCS:          f.DelayCS,
			Interlace:        f.Interlace,
			Transparent:      f.Transparent,
			TransparentIndex: f.TransparentIndex,
			HasLocalPalette:  f.HasLocalColourTable,
		}
		r.TotalDurationCS += f.DelayCS
	}
	return r
}
