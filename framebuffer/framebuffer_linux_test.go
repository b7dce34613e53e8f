package framebuffer

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/BeatGlow/fbtools"
)

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "fb0"))
	if !errors.Is(err, fbtools.ErrDeviceUnavailable) {
		t.Errorf("expected device unavailable, got %v", err)
	}
}

func TestOpenNotAFramebuffer(t *testing.T) {
	_, err := Open("/dev/null")
	if !errors.Is(err, fbtools.ErrDeviceUnavailable) {
		t.Errorf("expected device unavailable, got %v", err)
	}
}
