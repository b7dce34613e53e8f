// Command fbdraw draws a test pattern on the framebuffer and saves a
// screenshot of the result.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/BeatGlow/fbtools"
	"github.com/BeatGlow/fbtools/blit"
	"github.com/BeatGlow/fbtools/draw"
	"github.com/BeatGlow/fbtools/internal/cli"
	"github.com/BeatGlow/fbtools/internal/scene"
	"github.com/BeatGlow/fbtools/pixel"
	"github.com/BeatGlow/fbtools/raster"
)

func main() {
	var opts cli.Options
	opts.Register(flag.CommandLine)
	bgFlag := flag.String("bg", "#00ff00", "Background color")
	fgFlag := flag.String("fg", "#ff0000", "Border color")
	sceneFlag := flag.String("scene", "", "Draw script (YAML) to run instead of the border pattern")
	cli.Usage(flag.CommandLine, "<output> [device]")
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}
	opts.SetupLogging(os.Stderr)

	bg, err := pixel.ParseHex(*bgFlag)
	if err != nil {
		cli.Fatal(err)
	}
	fg, err := pixel.ParseHex(*fgFlag)
	if err != nil {
		cli.Fatal(err)
	}

	var s *scene.Scene
	if *sceneFlag != "" {
		if s, err = scene.Load(*sceneFlag); err != nil {
			cli.Fatal(err)
		}
	}

	dev, err := opts.Open(cli.Device(flag.CommandLine, 1))
	if err != nil {
		cli.Fatal(err)
	}
	defer dev.Close()
	fmt.Printf("using framebuffer: %s\n", dev.Geometry())

	if s != nil {
		err = s.Run(dev)
	} else {
		err = border(dev, bg, fg)
	}
	if err != nil {
		fatal(dev, err)
	}

	b, err := raster.New(dev.Width(), dev.Height())
	if err != nil {
		fatal(dev, err)
	}
	defer b.Release()

	if err = blit.Capture(dev, b); err != nil {
		fatal(dev, err)
	}
	if err = b.Save(flag.Arg(0)); err != nil {
		fatal(dev, err)
	}
	fmt.Printf("saved %dx%d screenshot to %s\n", b.Width(), b.Height(), flag.Arg(0))
}

// border fills dst with bg and draws a two pixel frame in fg.
func border(dst fbtools.Surface, bg, fg color.NRGBA) error {
	r := dst.Bounds()
	if err := draw.FillRect(dst, 0, 0, r.Dx(), r.Dy(), bg); err != nil {
		return err
	}
	if err := draw.StrokeRect(dst, 0, 0, r.Dx(), r.Dy(), fg); err != nil {
		return err
	}
	if r.Dx() <= 2 || r.Dy() <= 2 {
		return nil
	}
	return draw.StrokeRect(dst, 1, 1, r.Dx()-2, r.Dy()-2, fg)
}

func fatal(c interface{ Close() error }, err error) {
	_ = c.Close()
	cli.Fatal(err)
}
