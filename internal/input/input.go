// Package input turns keys, pads and devices into presses.
package input

import (
	"sync"
	"time"
)

type Press struct {
	Key  int
	Quit bool
	At   time.Time // When the source saw the press
}

var now = time.Now

type Source interface {
	Presses() <-chan Press
	Close() error
}

type merged struct {
	sources []Source
	presses chan Press
	done    chan struct{}
	once    sync.Once
}

// Merge reads from every source at once. Closing it closes them all.
func Merge(sources ...Source) Source {
	m := &merged{
		sources: sources,
		presses: make(chan Press, 128),
		done:    make(chan struct{}),
	}
	var wg sync.WaitGroup
	for _, s := range sources {
		wg.Add(1)
		go func(s Source) {
			defer wg.Done()
			for {
				select {
				case p, ok := <-s.Presses():
					if !ok {
						return
					}
					select {
					case m.presses <- p:
					case <-m.done:
						return
					}
				case <-m.done:
					return
				}
			}
		}(s)
	}
	go func() {
		wg.Wait()
		close(m.presses)
	}()
	return m
}

func (m *merged) Presses() <-chan Press {
	return m.presses
}

func (m *merged) Close() error {
	var first error
	m.once.Do(func() {
		close(m.done)
		for _, s := range m.sources {
			if err := s.Close(); nil != err && nil == first {
				first = err
			}
		}
	})
	return first
}
