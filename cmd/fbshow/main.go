// Command fbshow displays an image file on the framebuffer.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/BeatGlow/fbtools/blit"
	"github.com/BeatGlow/fbtools/internal/cli"
	"github.com/BeatGlow/fbtools/raster"
)

func main() {
	var opts cli.Options
	opts.Register(flag.CommandLine)
	cli.Usage(flag.CommandLine, "<image> [device]")
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}
	opts.SetupLogging(os.Stderr)

	b, err := raster.Load(flag.Arg(0))
	if err != nil {
		cli.Fatal(err)
	}

	dev, err := opts.Open(cli.Device(flag.CommandLine, 1))
	if err != nil {
		cli.Fatal(err)
	}
	defer dev.Close()

	if err = blit.Present(dev, b); err != nil {
		_ = dev.Close()
		cli.Fatal(err)
	}
	if b.Width() != dev.Width() || b.Height() != dev.Height() {
		fmt.Printf("%dx%d image clipped to %dx%d screen\n", b.Width(), b.Height(), dev.Width(), dev.Height())
	}
}
