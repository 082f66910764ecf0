package input

import (
	"io"
	"log"

	"github.com/pkg/errors"
	"go.bug.st/serial"
)

// Serial reads taps from a microcontroller pedal, every byte received is a
// press and its value is the key.
type Serial struct {
	port    serial.Port
	presses chan Press
	done    chan struct{}
}

func NewSerial(name string, baud int) (*Serial, error) {
	port, err := serial.Open(name, &serial.Mode{BaudRate: baud})
	if nil != err {
		return nil, errors.Wrapf(err, "unable to open serial port %v at %v baud", name, baud)
	}
	log.Println("serial port opened", name, baud)
	s := &Serial{port: port, presses: make(chan Press, 128), done: make(chan struct{})}
	go func() {
		defer close(s.presses)
		if err := readBytes(port, s.presses, s.done); nil != err {
			log.Println(err, "unable to read serial input")
		}
	}()
	return s, nil
}

// readBytes blocks until r fails or done is closed.
func readBytes(r io.Reader, presses chan<- Press, done <-chan struct{}) error {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		at := now()
		for _, b := range buf[:n] {
			select {
			case presses <- Press{Key: int(b), At: at}:
			case <-done:
				return nil
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if nil != err {
			select {
			case <-done:
				return nil
			default:
				return err
			}
		}
	}
}

func (s *Serial) Presses() <-chan Press {
	return s.presses
}

func (s *Serial) Close() error {
	close(s.done)
	return s.port.Close()
}
