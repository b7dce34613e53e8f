package framebuffer

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/BeatGlow/fbtools"
	"github.com/BeatGlow/fbtools/internal/ioctl"
)

// Open a Linux FrameBuffer device (fbdev) by name, typically /dev/fb[0..x].
//
// The display is panned back to (0, 0) and the visible screen is mapped
// read/write and shared. Every failure is reported as [fbtools.ErrDeviceUnavailable]
// and leaves no descriptor or mapping behind.
func Open(name string) (*Device, error) {
	f, err := os.OpenFile(name, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fbtools.ErrDeviceUnavailable, err)
	}

	var (
		log  = Logger().With(slog.String("device", name))
		fd   = f.Fd()
		info linuxFixScreenInfo
		vs   linuxVarScreenInfo
	)
	if err = ioctl.Do(fd, ioctl.GetFScreenInfo, unsafe.Pointer(&info)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is not a framebuffer: %w", fbtools.ErrDeviceUnavailable, name, err)
	}
	if err = ioctl.Do(fd, ioctl.GetVScreenInfo, unsafe.Pointer(&vs)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is not a framebuffer: %w", fbtools.ErrDeviceUnavailable, name, err)
	}

	// Not all drivers can pan, the screen is still usable when this fails.
	vs.Xoffset, vs.Yoffset = 0, 0
	if err = ioctl.Do(fd, ioctl.PanDisplay, unsafe.Pointer(&vs)); err != nil {
		log.Warn("framebuffer: pan to origin failed", slog.Any("error", err))
	}

	g := linuxGeometry(&info, &vs)
	log.Debug("framebuffer: geometry",
		slog.String("id", g.ID),
		slog.Int("xres", g.Width),
		slog.Int("yres", g.Height),
		slog.Int("bits_per_pixel", g.BitsPerPixel),
		slog.Int("line_length", g.Stride),
		slog.Int("mem_size", g.Size()),
		slog.String("red", g.Red.String()),
		slog.String("green", g.Green.String()),
		slog.String("blue", g.Blue.String()),
		slog.Int("xres_virtual", int(vs.XresVirtual)),
		slog.Int("yres_virtual", int(vs.YresVirtual)),
		slog.Int("xpanstep", int(info.Xpanstep)),
		slog.Int("ywrapstep", int(info.Ywrapstep)))

	if g.Size() <= 0 {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s reports an empty screen (%s)", fbtools.ErrDeviceUnavailable, name, g)
	}

	// Map pixel buffer.
	mem, err := unix.Mmap(int(fd), 0, g.Size(), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: map %s: %w", fbtools.ErrDeviceUnavailable, name, err)
	}

	release := func() error {
		return errors.Join(unix.Munmap(mem), f.Close())
	}
	d, err := newDevice(g, mem, release)
	if err != nil {
		_ = release()
		return nil, fmt.Errorf("%w: %s: %w", fbtools.ErrDeviceUnavailable, name, err)
	}
	log.Debug("framebuffer: opened", slog.String("format", d.Format().String()))
	return d, nil
}

func linuxGeometry(info *linuxFixScreenInfo, vs *linuxVarScreenInfo) Geometry {
	return Geometry{
		ID:            string(bytes.TrimRight(info.ID[:], "\x00")),
		Width:         int(vs.Xres),
		Height:        int(vs.Yres),
		BitsPerPixel:  int(vs.BitsPerPixel),
		BytesPerPixel: int(vs.BitsPerPixel) / 8,
		Stride:        int(info.LineLength),
		Red:           vs.Red.bitField(),
		Green:         vs.Green.bitField(),
		Blue:          vs.Blue.bitField(),
		Alpha:         vs.Alpha.bitField(),
	}
}

// linuxFixScreenInfo contains device independent unchangeable information about a frame buffer device.
type linuxFixScreenInfo struct {
	ID           [16]byte  // Identification string eg "TT Builtin"
	SmemStart    uintptr   // Start of frame buffer mem
	SmemLen      uint32    // Length of frame buffer mem
	Type         uint32    // FB_TYPE_
	TypeAux      uint32    // Interleave for interleaved Planes
	Visual       uint32    // FB_VISUAL_
	Xpanstep     uint16    // Zero if no hardware panning
	Ypanstep     uint16    // Zero if no hardware panning
	Ywrapstep    uint16    // Zero if no hardware ywrap
	LineLength   uint32    // Length of a line in bytes
	MmioStart    uintptr   // Start of Memory Mapped I/O (physical address)
	MmioLen      uint32    // Length of Memory Mapped I/O
	Accel        uint32    // Type of acceleration available
	Capabilities uint16    // FB_CAP_
	Reserved     [2]uint16 // Reserved for future compatibility
}

// linuxBitField for the color
type linuxBitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

func (f linuxBitField) bitField() BitField {
	return BitField{
		Offset:   f.Offset,
		Length:   f.Length,
		MSBRight: f.MsbRight != 0,
	}
}

// linuxVarScreenInfo contains device independent changeable information about a frame buffer device and a specific video mode.
type linuxVarScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha linuxBitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32
	Width                   uint32
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}
