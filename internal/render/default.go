package render

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// DefaultRenderer draws cursor addressed frames on an ANSI terminal.
// Nothing is written until the end of a frame.
type DefaultRenderer struct {
	Out io.Writer
	Fd  int

	buffer       strings.Builder
	restoreState *term.State
	decorations  []*decoration
	now          func() time.Time
	sleep        func(time.Duration)
}

type decoration struct {
	row, column int
	content     string
	frames      int // remaining frames until removed
}

func NewDefaultRenderer() *DefaultRenderer {
	return &DefaultRenderer{
		Out: os.Stdout,
		Fd:  int(os.Stdout.Fd()),
	}
}

func (r *DefaultRenderer) Init() error {
	if term.IsTerminal(r.Fd) {
		state, err := term.MakeRaw(r.Fd)
		if nil != err {
			return errors.Wrap(err, "unable to enter raw mode")
		}
		r.restoreState = state
	}

	_, err := io.WriteString(r.Out, "\033[?1049h"+ // Enable alternate buffer
		"\033[?25l"+ // Make the cursor invisible
		"\033[2J", // Clear the screen
	)
	return err
}

func (r *DefaultRenderer) Deinit() error {
	if _, err := io.WriteString(r.Out, "\033[?1049l"+ // Disable alternate buffer
		"\033[?25h", // Make the cursor visible
	); nil != err {
		return err
	}
	if nil == r.restoreState {
		return nil
	}
	state := r.restoreState
	r.restoreState = nil
	return term.Restore(r.Fd, state)
}

func (r *DefaultRenderer) Size() (columns, rows int) {
	columns, rows, err := term.GetSize(r.Fd)
	if nil != err {
		return 80, 24
	}
	return columns, rows
}

// AddDecoration draws content now and clears it after the given number of
// frames.
func (r *DefaultRenderer) AddDecoration(row, column int, content string, frames int) {
	r.decorations = append(r.decorations, &decoration{
		row:     row,
		column:  column,
		content: content,
		frames:  frames,
	})
	r.Fill(row, column, content)
}

func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.frames <= 0 {
			r.Fill(d.row, d.column, strings.Repeat(" ", len([]rune(stripEscapes(d.content)))))
			continue
		}
		nd = append(nd, d)
		d.frames--
	}
	r.decorations = nd
}

// RenderLoop calls render once per period until it returns false. The
// duration passed is measured from now plus delay, so it starts negative.
func (r *DefaultRenderer) RenderLoop(delay, period time.Duration, render func(duration time.Duration) bool) {
	now, sleep := r.now, r.sleep
	if nil == now {
		now = time.Now
	}
	if nil == sleep {
		sleep = time.Sleep
	}

	cont := true
	startTime := now().Add(delay)
	for cont {
		frameStart := now()
		deadline := frameStart.Add(period)

		cont = render(frameStart.Sub(startTime))

		r.tickDecorations()
		r.flush()

		sleep(deadline.Sub(now()))
	}
}

func (r *DefaultRenderer) moveTo(row, column int) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(column))
	r.buffer.WriteString("H")
}

func (r *DefaultRenderer) Fill(row, column int, message string) {
	r.moveTo(row, column)
	r.buffer.WriteString(message)
}

// FillColor writes message in a 24 bit foreground colour given as #rrggbb.
// Anything else is written without colour.
func (r *DefaultRenderer) FillColor(row, column int, color string, message string) {
	r.moveTo(row, column)
	red, green, blue, ok := parseHex(color)
	if !ok {
		r.buffer.WriteString(message)
		return
	}
	r.buffer.WriteString("\033[38;2;")
	r.buffer.WriteString(strconv.Itoa(red))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(green))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(blue))
	r.buffer.WriteString("m")
	r.buffer.WriteString(message)
	r.buffer.WriteString("\033[0m")
}

func (r *DefaultRenderer) flush() {
	if r.buffer.Len() == 0 {
		return
	}
	io.WriteString(r.Out, r.buffer.String())
	r.buffer.Reset()
}

func parseHex(color string) (red, green, blue int, ok bool) {
	if len(color) != 7 || color[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(color[1:], 16, 32)
	if nil != err {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

// stripEscapes drops CSI sequences so styled text can be measured.
func stripEscapes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			i += 2
			for i < len(s) && (s[i] < 0x40 || s[i] > 0x7e) {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
