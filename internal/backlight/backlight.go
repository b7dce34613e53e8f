// Package backlight switches the backlight of SPI TFT panels driven by fbtft,
// where the framebuffer driver leaves the LED pin to userspace.
package backlight

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// ErrUnknownPin is returned when the backlight pin does not exist.
var ErrUnknownPin = errors.New("backlight: unknown pin")

// Backlight is a GPIO driven backlight, active high.
type Backlight struct {
	pin gpio.PinOut
}

// Open initializes the host drivers and looks up the pin by name, such as
// "GPIO19".
func Open(name string) (*Backlight, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: no pin name", ErrUnknownPin)
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("backlight: error initializing host: %w", err)
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPin, name)
	}
	return New(pin)
}

// New uses an existing pin.
func New(pin gpio.PinOut) (*Backlight, error) {
	if pin == nil || pin == gpio.INVALID {
		return nil, fmt.Errorf("%w: invalid pin", ErrUnknownPin)
	}
	return &Backlight{pin: pin}, nil
}

func (b *Backlight) String() string {
	return "backlight on " + b.pin.Name()
}

// On turns the backlight on.
func (b *Backlight) On() error {
	return b.Set(true)
}

// Off turns the backlight off.
func (b *Backlight) Off() error {
	return b.Set(false)
}

// Set drives the pin high when on is true.
func (b *Backlight) Set(on bool) error {
	if err := b.pin.Out(gpio.Level(on)); err != nil {
		return fmt.Errorf("backlight: error setting %s to %t: %w", b.pin.Name(), on, err)
	}
	return nil
}
