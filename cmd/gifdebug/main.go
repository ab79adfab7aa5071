// Command gifdebug dumps a GIF stream's raw survey state: header fields,
// colour table sizes, and the full frame index with every field the
// survey pass recorded. Grounded on cmd/debug/main.go, the teacher's raw
// IFD/tile dumper that bypasses the higher-level reporting layer to show
// exactly what the parser saw.
package main

import (
	"fmt"
	"os"

	"github.com/pspoerri/gifdecode/internal/gif"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: gifdebug <input.gif>\n")
		os.Exit(1)
	}
	path := os.Args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", path, err)
		os.Exit(1)
	}

	s := gif.NewStream()
	st := s.Scan(data)

	fmt.Printf("Scan status: %v\n", st)
	fmt.Printf("Version: %s\n", s.Version)
	fmt.Printf("Size: %dx%d\n", s.Width, s.Height)
	fmt.Printf("HasGlobalTable: %v (count=%d)\n", s.HasGlobalTable, s.Global.Count)
	fmt.Printf("BackgroundIndex: %d -> %08X\n", s.BackgroundIndex, s.BackgroundColour())
	fmt.Printf("LoopMax: %d\n", s.LoopMax)
	fmt.Printf("Complete: %v\n", s.Complete())
	fmt.Printf("FrameCount: %d (partial=%d)\n", s.FrameCount(), s.FrameCountPartial())
	fmt.Printf("DelayMin: %dcs\n", s.DelayMin())

	fmt.Println("\nFrames:")
	for i := range s.Frames {
		f := &s.Frames[i]
		fmt.Printf("  [%3d] offset=%-8d rect=%v disposal=%s interlace=%v delay=%dcs\n",
			i, f.Offset, f.Rect, f.Disposal, f.Interlace, f.DelayCS)
		fmt.Printf("         displayable=%v local-palette=%v(size=%d) transparent=%v(index=%d) redraw-required=%v\n",
			f.Displayable, f.HasLocalColourTable, f.LocalColourTableSize, f.Transparent, f.TransparentIndex, f.RedrawRequired)
	}

	if st != gif.StatusOK {
		os.Exit(1)
	}
}
