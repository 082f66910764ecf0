package input

import (
	"log"

	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"
)

// Keyboard reads keys from the terminal. Only the configured keys are
// presses, or every key when none are configured. Esc and Ctrl-C quit.
type Keyboard struct {
	keys    []rune
	presses chan Press
	done    chan struct{}
}

func NewKeyboard(keys string) (*Keyboard, error) {
	events, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open keyboard")
	}
	k := newKeyboard(keys)
	go k.run(events)
	return k, nil
}

func newKeyboard(keys string) *Keyboard {
	return &Keyboard{
		keys:    []rune(keys),
		presses: make(chan Press, 128),
		done:    make(chan struct{}),
	}
}

func (k *Keyboard) run(events <-chan keyboard.KeyEvent) {
	defer close(k.presses)
	for {
		select {
		case <-k.done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if nil != ev.Err {
				log.Println("keyboard error", ev.Err)
				continue
			}
			p, ok := k.translate(ev)
			if !ok {
				continue
			}
			p.At = now()
			select {
			case k.presses <- p:
			case <-k.done:
				return
			}
		}
	}
}

func (k *Keyboard) translate(ev keyboard.KeyEvent) (Press, bool) {
	switch ev.Key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return Press{Quit: true}, true
	case keyboard.KeySpace:
		ev.Rune = ' '
	}
	if len(k.keys) == 0 {
		return Press{Key: 0}, true
	}
	for i, c := range k.keys {
		if ev.Rune == c {
			return Press{Key: i}, true
		}
	}
	return Press{}, false
}

func (k *Keyboard) Presses() <-chan Press {
	return k.presses
}

func (k *Keyboard) Close() error {
	close(k.done)
	return keyboard.Close()
}
