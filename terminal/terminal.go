// Package terminal is the console for running on a local tty or pipe
package terminal

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/peterh/liner"
	"golang.org/x/term"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Terminal holds the terminal instance and provides io abilities
type Terminal struct {
	out  io.Writer
	in   *bufio.Reader
	line *liner.State // nil unless stdin is a tty
	dec  *encoding.Decoder
	brk  atomic.Bool
}

// Options picks how the terminal behaves
type Options struct {
	Charset string // "" passes bytes through, "cp437" shows 128..255 as the PC character set
	Editing bool   // use line editing and history when on a tty
}

// New creates a terminal reading in and writing out
func New(in io.Reader, out io.Writer, opts Options) *Terminal {
	t := &Terminal{out: out, in: bufio.NewReader(in)}

	if strings.EqualFold(opts.Charset, "cp437") {
		t.dec = charmap.CodePage437.NewDecoder()
	}

	if opts.Editing && IsTerminal(in) && IsTerminal(out) {
		t.line = liner.NewLiner()
		t.line.SetCtrlCAborts(true)
	}
	return t
}

// IsTerminal tells if f is connected to a tty
func IsTerminal(f interface{}) bool {
	fd, ok := f.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(fd.Fd()))
}

// Close puts the tty back the way it was
func (t *Terminal) Close() error {
	if t.line != nil {
		err := t.line.Close()
		t.line = nil
		return err
	}
	return nil
}

// Print sends the passed string to the terminal at the current cursor position
func (t *Terminal) Print(msg string) {
	if t.dec != nil {
		if s, err := t.dec.String(msg); err == nil {
			msg = s
		}
	}
	io.WriteString(t.out, msg)
}

// Println prints the string followed by a newline
func (t *Terminal) Println(msg string) {
	t.Print(msg + "\n")
}

// ReadLine shows the prompt and waits for a line of input
func (t *Terminal) ReadLine(prompt string) (string, error) {
	if t.line != nil {
		s, err := t.line.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			t.SignalBreak()
			return "", err
		}
		if err != nil {
			return "", err
		}
		if len(strings.TrimSpace(s)) > 0 {
			t.line.AppendHistory(s)
		}
		return s, nil
	}

	t.Print(prompt)
	s, err := t.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(s) > 0) {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// SignalBreak is called when the user hits ctrl-c
func (t *Terminal) SignalBreak() {
	t.brk.Store(true)
}

// BreakCheck reports and clears a pending ctrl-c
func (t *Terminal) BreakCheck() bool {
	return t.brk.Swap(false)
}
