//go:build linux

package input

import (
	"encoding/binary"
	"io"
	"log"
	"os"
	"syscall"
	"time"

	"github.com/pkg/errors"
)

// https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
const (
	evKey  = 0x01
	keyEsc = 1

	valueReleased = 0
	valuePressed  = 1
)

type keyEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// Evdev reads key down events straight from a /dev/input device, the key is
// the kernel key code. It bypasses the terminal, so it needs read access to
// the device.
type Evdev struct {
	file    *os.File
	presses chan Press
	done    chan struct{}
}

func NewEvdev(device string) (*Evdev, error) {
	file, err := os.Open(device)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to open %v", device)
	}
	e := &Evdev{file: file, presses: make(chan Press, 128), done: make(chan struct{})}
	go func() {
		defer close(e.presses)
		if err := readEvents(file, e.presses, e.done); nil != err {
			log.Println(err, "unable to read keyboard input")
		}
	}()
	return e, nil
}

// readEvents blocks until r fails or done is closed. Reading from a closed
// device is not reported as an error.
func readEvents(r io.Reader, presses chan<- Press, done <-chan struct{}) error {
	var ev keyEvent
	for {
		err := binary.Read(r, binary.LittleEndian, &ev)
		if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
			return nil
		}
		if nil != err {
			return err
		}
		if ev.Type != evKey || ev.Value != valuePressed {
			continue
		}
		select {
		case presses <- Press{Key: int(ev.Code), Quit: ev.Code == keyEsc, At: time.Unix(ev.Time.Unix())}:
		case <-done:
			return nil
		}
	}
}

func (e *Evdev) Presses() <-chan Press {
	return e.presses
}

func (e *Evdev) Close() error {
	close(e.done)
	return e.file.Close()
}
