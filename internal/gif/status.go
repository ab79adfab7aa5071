package gif

import "fmt"

// Status reports the outcome of a parsing step. Like lzw.Status, it is a
// closed set meant to be switched on rather than wrapped as an error.
type Status int

const (
	StatusOK Status = iota
	// StatusInsufficientData means the window ended mid-record; the
	// embedder should append more bytes and retry Scan. No state is lost.
	StatusInsufficientData
	// StatusDataError means pre-frame corruption: bad magic or an
	// impossible logical screen descriptor. Fatal to the whole stream.
	StatusDataError
	// StatusFrameDataError means corruption local to the frame currently
	// being surveyed or decoded. Earlier frames remain valid.
	StatusFrameDataError
	// StatusFrameCountExceeded means the stream reports more frames than
	// the sanity cap allows.
	StatusFrameCountExceeded
	// StatusFrameNotDisplayable means the requested frame index exists but
	// was never fully surveyed.
	StatusFrameNotDisplayable
	// StatusBadFrameIndex means the requested frame index is out of range
	// of any frame the survey pass has recorded.
	StatusBadFrameIndex

	// statusTrailerReached is an internal-only signal from surveyStep; it
	// never escapes Scan.
	statusTrailerReached
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInsufficientData:
		return "insufficient-data"
	case StatusDataError:
		return "data-error"
	case StatusFrameDataError:
		return "frame-data-error"
	case StatusFrameCountExceeded:
		return "frame-count-exceeded"
	case StatusFrameNotDisplayable:
		return "frame-not-displayable"
	case StatusBadFrameIndex:
		return "bad-frame-index"
	default:
		return fmt.Sprintf("gif.Status(%d)", int(s))
	}
}
