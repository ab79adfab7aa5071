package gifstat

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// Mismatch describes one field where a sidecar's expected value disagreed
// with the decoded report.
type Mismatch struct {
	Field string
	Want  int64
	Got   int64
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: want %d, got %d", m.Field, m.Want, m.Got)
}

// VerifySidecar reads a JSON file of expected metadata (any subset of
// "width", "height", "frame_count", "loop_max") and reports every field
// present in the sidecar that disagrees with r. A sidecar with no
// recognised fields is not an error in itself; a sidecar file that cannot
// be read, or is not valid JSON, is.
func VerifySidecar(path string, r Report) ([]Mismatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gifstat: reading sidecar %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("gifstat: sidecar %s is not valid JSON", path)
	}

	var mismatches []Mismatch
	check := func(field string, got int) {
		result := gjson.GetBytes(data, field)
		if !result.Exists() {
			return
		}
		want := result.Int()
		if want != int64(got) {
			mismatches = append(mismatches, Mismatch{Field: field, Want: want, Got: int64(got)})
		}
	}

	check("width", r.Width)
	check("height", r.Height)
	check("frame_count", r.FrameCount)
	check("loop_max", r.LoopMax)

	return mismatches, nil
}
