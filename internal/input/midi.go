package input

import (
	"log"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
)

// MIDI reads note on messages from a pad or keyboard, the note number is the
// key. A MIDI driver has to be registered by the program.
type MIDI struct {
	stop    func()
	presses chan Press
}

func NewMIDI(port string) (*MIDI, error) {
	in, err := midi.FindInPort(port)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to find midi input %q", port)
	}
	if err := in.Open(); nil != err {
		return nil, errors.Wrapf(err, "unable to open midi input %q", port)
	}

	m := &MIDI{presses: make(chan Press, 128)}
	m.stop, err = midi.ListenTo(in, func(msg midi.Message, _ int32) {
		p, ok := notePress(msg)
		if !ok {
			return
		}
		p.At = now()
		select {
		case m.presses <- p:
		default:
			log.Println("midi press dropped", p.Key)
		}
	}, midi.HandleError(func(err error) {
		log.Println("midi listener error", port, err)
	}))
	if nil != err {
		in.Close()
		return nil, errors.Wrapf(err, "unable to listen to %q", port)
	}
	return m, nil
}

func notePress(msg midi.Message) (Press, bool) {
	var ch, key, vel uint8
	if msg.GetNoteStart(&ch, &key, &vel) {
		return Press{Key: int(key)}, true
	}
	return Press{}, false
}

func (m *MIDI) Presses() <-chan Press {
	return m.presses
}

func (m *MIDI) Close() error {
	m.stop()
	midi.CloseDriver()
	return nil
}
