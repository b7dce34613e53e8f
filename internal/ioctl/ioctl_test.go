//go:build linux

package ioctl

import "testing"

func TestCommandString(t *testing.T) {
	tests := []struct {
		c    Command
		want string
	}{
		{GetVScreenInfo, "FBIOGET_VSCREENINFO"},
		{GetFScreenInfo, "FBIOGET_FSCREENINFO"},
		{PanDisplay, "FBIOPAN_DISPLAY"},
		{Command(0x6b01), "ioctl 0x6b01"},
	}
	for _, test := range tests {
		if v := test.c.String(); v != test.want {
			t.Errorf("expected %q, got %q", test.want, v)
		}
	}
}
