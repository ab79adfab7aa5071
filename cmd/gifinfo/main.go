// Command gifinfo reports a GIF file's metadata: dimensions, frame table,
// loop/timing summary, with optional WebP poster export and JSON-sidecar
// verification. Grounded on cmd/coginfo/main.go, the teacher's own
// read-only metadata reporter sitting next to its main reader.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pspoerri/gifdecode/internal/bitmap"
	"github.com/pspoerri/gifdecode/internal/gif"
	"github.com/pspoerri/gifdecode/internal/gifplayer"
	"github.com/pspoerri/gifdecode/internal/gifstat"
)

func main() {
	var (
		poster   string
		quality  int
		verify   string
		perFrame bool
	)

	flag.StringVar(&poster, "poster", "", "Write the first frame as a WebP poster image to this path")
	flag.IntVar(&quality, "quality", 85, "WebP poster quality, 1-100")
	flag.StringVar(&verify, "verify", "", "Verify decoded metadata against a JSON sidecar (width/height/frame_count/loop_max)")
	flag.BoolVar(&perFrame, "frames", false, "Print the full per-frame table")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gifinfo [flags] <input.gif>\n\n")
		fmt.Fprintf(os.Stderr, "Report a GIF file's metadata.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Reading input: %v", err)
	}

	s := gif.NewStream()
	if st := s.Scan(data); st != gif.StatusOK {
		log.Fatalf("Scan: %v", st)
	}

	report := gifstat.Build(s)
	fmt.Printf("File: %s\n", path)
	fmt.Printf("Size: %dx%d\n", report.Width, report.Height)
	fmt.Printf("Frames: %d\n", report.FrameCount)
	fmt.Printf("LoopMax: %d (0 = infinite)\n", report.LoopMax)
	fmt.Printf("DelayMin: %dcs\n", report.DelayMinCS)
	fmt.Printf("TotalDuration: %dcs\n", report.TotalDurationCS)

	if perFrame {
		fmt.Println("\nFrame table:")
		for _, f := range report.Frames {
			fmt.Printf("  %3d: rect=%v disposal=%s delay=%dcs interlace=%v transparent=%v(%d) local-palette=%v\n",
				f.Index, f.Rect, f.Disposal, f.DelayCS, f.Interlace, f.Transparent, f.TransparentIndex, f.HasLocalPalette)
		}
	}

	if verify != "" {
		mismatches, err := gifstat.VerifySidecar(verify, report)
		if err != nil {
			log.Fatalf("Verify: %v", err)
		}
		if len(mismatches) == 0 {
			fmt.Printf("\nVerify %s: OK\n", verify)
		} else {
			fmt.Printf("\nVerify %s: %d mismatch(es)\n", verify, len(mismatches))
			for _, m := range mismatches {
				fmt.Printf("  %s\n", m)
			}
			os.Exit(1)
		}
	}

	if poster != "" {
		if report.FrameCount == 0 {
			log.Fatal("Poster: stream has no displayable frames")
		}
		dec := gifplayer.Create(bitmap.NewPooled())
		dec.DataScan(data)
		pix, kind := dec.FrameDecode(0)
		if kind != gifplayer.KindEndOfFrame {
			log.Fatalf("Poster: decoding frame 0: %v", kind)
		}
		if err := gifstat.WritePoster(poster, pix, report.Width, report.Height, quality); err != nil {
			log.Fatalf("Poster: %v", err)
		}
		fmt.Printf("\nPoster written to %s\n", poster)
	}
}
