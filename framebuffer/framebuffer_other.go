//go:build !linux

package framebuffer

import (
	"errors"
	"fmt"

	"github.com/BeatGlow/fbtools"
)

var ErrNotSupported = fmt.Errorf("%w: %w", fbtools.ErrDeviceUnavailable, errors.New("framebuffer: not supported"))

func Open(_ string) (*Device, error) {
	return nil, ErrNotSupported
}
