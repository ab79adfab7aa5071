package gifstat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pspoerri/gifdecode/internal/gif"
)

func le16(v int) []byte { return []byte{byte(v & 0xFF), byte((v >> 8) & 0xFF)} }

func buildHeader(width, height int, gct [][3]byte, bgIndex byte) []byte {
	b := []byte("GIF89a")
	b = append(b, le16(width)...)
	b = append(b, le16(height)...)
	exp := 0
	for (1 << uint(exp+1)) < len(gct) {
		exp++
	}
	b = append(b, 0x80|byte(exp), bgIndex, 0x00)
	for _, c := range gct {
		b = append(b, c[0], c[1], c[2])
	}
	return b
}

func buildImage(left, top, w, h int, minCodeSize byte, dataBytes []byte) []byte {
	b := []byte{0x2C}
	b = append(b, le16(left)...)
	b = append(b, le16(top)...)
	b = append(b, le16(w)...)
	b = append(b, le16(h)...)
	b = append(b, 0x00, minCodeSize, byte(len(dataBytes)))
	b = append(b, dataBytes...)
	b = append(b, 0x00)
	return b
}

func twoFrameGIF() []byte {
	data := buildHeader(1, 1, [][3]byte{{0, 0, 0}, {255, 255, 255}}, 0)
	data = append(data, buildImage(0, 0, 1, 1, 2, []byte{0x44, 0x01})...)
	data = append(data, buildImage(0, 0, 1, 1, 2, []byte{0x44, 0x01})...)
	data = append(data, 0x3B)
	return data
}

func TestBuildReport(t *testing.T) {
	s := gif.NewStream()
	if st := s.Scan(twoFrameGIF()); st != gif.StatusOK {
		t.Fatalf("Scan = %v", st)
	}

	r := Build(s)
	if r.Width != 1 || r.Height != 1 {
		t.Fatalf("dimensions = %dx%d, want 1x1", r.Width, r.Height)
	}
	if r.FrameCount != 2 || len(r.Frames) != 2 {
		t.Fatalf("FrameCount = %d, len(Frames) = %d, want 2,2", r.FrameCount, len(r.Frames))
	}
	if r.TotalDurationCS != 200 {
		t.Fatalf("TotalDurationCS = %d, want 200", r.TotalDurationCS)
	}
	if r.DelayMinCS != 100 {
		t.Fatalf("DelayMinCS = %d, want 100", r.DelayMinCS)
	}
	for i, f := range r.Frames {
		if f.Index != i {
			t.Fatalf("Frames[%d].Index = %d", i, f.Index)
		}
		if f.Rect.X1 != 1 || f.Rect.Y1 != 1 {
			t.Fatalf("Frames[%d].Rect = %v", i, f.Rect)
		}
	}
}

func TestVerifySidecarMatches(t *testing.T) {
	s := gif.NewStream()
	s.Scan(twoFrameGIF())
	r := Build(s)

	dir := t.TempDir()
	path := filepath.Join(dir, "expected.json")
	os.WriteFile(path, []byte(`{"width":1,"height":1,"frame_count":2,"loop_max":1}`), 0o644)

	mismatches, err := VerifySidecar(path, r)
	if err != nil {
		t.Fatalf("VerifySidecar err = %v", err)
	}
	if len(mismatches) != 0 {
		t.Fatalf("mismatches = %v, want none", mismatches)
	}
}

func TestVerifySidecarReportsMismatch(t *testing.T) {
	s := gif.NewStream()
	s.Scan(twoFrameGIF())
	r := Build(s)

	dir := t.TempDir()
	path := filepath.Join(dir, "expected.json")
	os.WriteFile(path, []byte(`{"width":1,"height":1,"frame_count":99}`), 0o644)

	mismatches, err := VerifySidecar(path, r)
	if err != nil {
		t.Fatalf("VerifySidecar err = %v", err)
	}
	if len(mismatches) != 1 || mismatches[0].Field != "frame_count" {
		t.Fatalf("mismatches = %v, want one frame_count mismatch", mismatches)
	}
	if mismatches[0].Want != 99 || mismatches[0].Got != 2 {
		t.Fatalf("mismatch values = %+v", mismatches[0])
	}
}

func TestVerifySidecarInvalidJSON(t *testing.T) {
	s := gif.NewStream()
	s.Scan(twoFrameGIF())
	r := Build(s)

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	os.WriteFile(path, []byte(`not json`), 0o644)

	if _, err := VerifySidecar(path, r); err == nil {
		t.Fatalf("VerifySidecar(invalid json) = nil error, want error")
	}
}

func TestWritePosterRejectsEmptyFrame(t *testing.T) {
	if err := WritePoster(filepath.Join(t.TempDir(), "out.webp"), nil, 0, 0, 90); err == nil {
		t.Fatalf("WritePoster(0x0) = nil error, want error")
	}
}

func TestWritePosterRejectsShortBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.webp")
	if err := WritePoster(path, []byte{1, 2, 3}, 2, 2, 90); err == nil {
		t.Fatalf("WritePoster(short buffer) = nil error, want error")
	}
}
