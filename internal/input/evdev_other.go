//go:build !linux

package input

import "github.com/pkg/errors"

type Evdev struct{}

func NewEvdev(device string) (*Evdev, error) {
	return nil, errors.Errorf("unable to read %v, input devices are only supported on linux", device)
}

func (e *Evdev) Presses() <-chan Press {
	return nil
}

func (e *Evdev) Close() error {
	return nil
}
