//go:build linux

// Package ioctl issues framebuffer device control calls.
package ioctl

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Command to be sent over ioctl.
type Command uintptr

// Commands from <linux/fb.h>, 0x46 is 'F'.
const (
	GetVScreenInfo Command = 0x4600
	GetFScreenInfo Command = 0x4602
	PanDisplay     Command = 0x4606
)

func (c Command) String() string {
	switch c {
	case GetVScreenInfo:
		return "FBIOGET_VSCREENINFO"
	case GetFScreenInfo:
		return "FBIOGET_FSCREENINFO"
	case PanDisplay:
		return "FBIOPAN_DISPLAY"
	default:
		return fmt.Sprintf("ioctl 0x%04x", uintptr(c))
	}
}

// Do executes the ioctl call with a pointer argument.
func Do(fd uintptr, command Command, arg unsafe.Pointer) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, uintptr(command), uintptr(arg)); errno != 0 {
		return fmt.Errorf("ioctl %s failed: %w", command, errno)
	}
	return nil
}
