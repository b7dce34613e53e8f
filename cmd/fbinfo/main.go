// Command fbinfo prints the geometry of a framebuffer device.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/BeatGlow/fbtools/framebuffer"
	"github.com/BeatGlow/fbtools/internal/cli"
)

func main() {
	var opts cli.Options
	opts.Register(flag.CommandLine)
	cli.Usage(flag.CommandLine, "[device]")
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}
	opts.SetupLogging(os.Stderr)

	dev, err := opts.Open(cli.Device(flag.CommandLine, 0))
	if err != nil {
		cli.Fatal(err)
	}
	defer dev.Close()

	printInfo(os.Stdout, dev)
}

func printInfo(w io.Writer, dev *framebuffer.Device) {
	g := dev.Geometry()
	fmt.Fprintf(w, "id:             %s\n", g.ID)
	fmt.Fprintf(w, "resolution:     %dx%d\n", g.Width, g.Height)
	fmt.Fprintf(w, "bits per pixel: %d\n", g.BitsPerPixel)
	fmt.Fprintf(w, "line length:    %d\n", g.Stride)
	fmt.Fprintf(w, "memory:         %d bytes\n", g.Size())
	fmt.Fprintf(w, "red:            %s\n", g.Red)
	fmt.Fprintf(w, "green:          %s\n", g.Green)
	fmt.Fprintf(w, "blue:           %s\n", g.Blue)
	fmt.Fprintf(w, "alpha:          %s\n", g.Alpha)
	fmt.Fprintf(w, "format:         %s\n", dev.Format())
}
