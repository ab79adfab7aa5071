// Command gifplay decodes a GIF file, feeding it to the decoder in small
// chunks to exercise progressive DataScan the way a streaming embedder
// would, and writes each displayed frame out as a binary PPM image.
//
// This tool sits outside the decoder itself (spec's "external collaborator"
// concern: turning decoded bitmaps into files on disk) — it contains no
// decoding logic of its own, only the CLI shell the teacher always ships
// next to its library packages.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/pspoerri/gifdecode/internal/bitmap"
	"github.com/pspoerri/gifdecode/internal/gifplayer"
)

func main() {
	var (
		chunkSize int
		outDir    string
		scale     float64
		maxFrames int
		verbose   bool
	)

	flag.IntVar(&chunkSize, "chunk-size", 4096, "Bytes delivered to DataScan per call, to exercise progressive decoding")
	flag.StringVar(&outDir, "out", ".", "Directory to write frame-NNN.ppm files into")
	flag.Float64Var(&scale, "scale", 1.0, "Nearest-neighbour output scale factor (e.g. 2.0 to double size)")
	flag.IntVar(&maxFrames, "max-frames", 0, "Stop after this many frames (0 = play until AnimationComplete)")
	flag.BoolVar(&verbose, "verbose", false, "Print per-frame progress")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gifplay [flags] <input.gif>\n\n")
		fmt.Fprintf(os.Stderr, "Decode a GIF animation and dump each frame as a PPM image.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("Reading input: %v", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("Creating output directory: %v", err)
	}

	dec := gifplayer.Create(bitmap.NewPooled())

	if chunkSize <= 0 {
		chunkSize = len(data)
	}
	for end := chunkSize; ; end += chunkSize {
		if end > len(data) {
			end = len(data)
		}
		kind := dec.DataScan(data[:end])
		switch kind {
		case gifplayer.KindDataError, gifplayer.KindFrameDataError:
			log.Fatalf("DataScan: %v", kind)
		}
		if end >= len(data) {
			break
		}
	}

	info := dec.GetInfo()
	log.Printf("%s: %dx%d, %d frame(s), loop_max=%d, delay_min=%dcs",
		flag.Arg(0), info.Width, info.Height, info.FrameCount, info.LoopMax, info.DelayMin)

	for n := 0; ; n++ {
		if maxFrames > 0 && n >= maxFrames {
			break
		}
		_, delay, idx, kind := dec.FramePrepare()
		if kind == gifplayer.KindAnimationComplete {
			break
		}
		if kind != gifplayer.KindOK {
			log.Fatalf("FramePrepare: %v", kind)
		}

		pix, dkind := dec.FrameDecode(idx)
		if dkind != gifplayer.KindEndOfFrame {
			log.Fatalf("FrameDecode(%d): %v", idx, dkind)
		}

		outPath := filepath.Join(outDir, fmt.Sprintf("frame-%03d.ppm", idx))
		if err := writePPM(outPath, pix, info.Width, info.Height, scale); err != nil {
			log.Fatalf("Writing %s: %v", outPath, err)
		}
		if verbose {
			log.Printf("frame %d: delay=%dcs -> %s", idx, delay, outPath)
		}
	}
}

// writePPM writes pix (packed RGBA, R,G,B,A byte order) as a binary PPM
// (P6), optionally scaled with nearest-neighbour resampling via
// golang.org/x/image/draw. PPM has no alpha channel, so it is dropped.
func writePPM(path string, pix []byte, width, height int, scale float64) error {
	src := &image.RGBA{Pix: pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}

	out := src
	if scale != 1.0 && scale > 0 {
		dw := int(float64(width) * scale)
		dh := int(float64(height) * scale)
		if dw < 1 {
			dw = 1
		}
		if dh < 1 {
			dh = 1
		}
		scaled := image.NewRGBA(image.Rect(0, 0, dw, dh))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Src, nil)
		out = scaled
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	b := out.Bounds()
	if _, err := fmt.Fprintf(f, "P6\n%d %d\n255\n", b.Dx(), b.Dy()); err != nil {
		return err
	}
	row := make([]byte, b.Dx()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := out.PixOffset(x, y)
			j := (x - b.Min.X) * 3
			row[j], row[j+1], row[j+2] = out.Pix[i], out.Pix[i+1], out.Pix[i+2]
		}
		if _, err := f.Write(row); err != nil {
			return err
		}
	}
	return nil
}
