// Command fbsnap saves the framebuffer contents to an image file.
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
	cli.Usage(flag.CommandLine, "<output> [device]")
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}
	opts.SetupLogging(os.Stderr)

	if err := snap(&opts, flag.Arg(0), cli.Device(flag.CommandLine, 1)); err != nil {
		cli.Fatal(err)
	}
	fmt.Printf("saved %s\n", flag.Arg(0))
}

func snap(opts *cli.Options, output, device string) error {
	dev, err := opts.Open(device)
	if err != nil {
		return err
	}
	defer dev.Close()

	b, err := raster.New(dev.Width(), dev.Height())
	if err != nil {
		return err
	}
	defer b.Release()

	if err = blit.Capture(dev, b); err != nil {
		return err
	}
	return b.Save(output)
}
