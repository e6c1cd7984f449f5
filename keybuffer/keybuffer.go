// Package keybuffer queues the keystrokes a remote session sends until
// the interpreter asks for a line of input
package keybuffer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

const ringsize = 1024

const (
	ctrlC     = 0x03
	backspace = 0x08
	del       = 0x7f
)

// ErrClosed is returned by ReadLine once the session has gone away
var ErrClosed = errors.New("keybuffer closed")

// KeyBuffer is a ring of keystrokes plus the ctrl-c flag
type KeyBuffer struct {
	mtx   sync.Mutex
	ring  [ringsize]byte
	read  int
	write int

	line   []byte // the line being assembled
	lastCR bool

	sigBreak atomic.Bool
	notify   chan struct{}
	done     chan struct{}
	once     sync.Once
}

// New creates an empty buffer
func New() *KeyBuffer {
	return &KeyBuffer{notify: make(chan struct{}, 1), done: make(chan struct{})}
}

// SaveKeyStroke stores the keys, a ctrl-c raises the break flag
// instead. Keys that don't fit are dropped.
func (kb *KeyBuffer) SaveKeyStroke(keys []byte) {
	kb.mtx.Lock()
	for _, k := range keys {
		if k == ctrlC {
			kb.sigBreak.Store(true)
			continue
		}
		next := (kb.write + 1) % ringsize
		if next == kb.read {
			break
		}
		kb.ring[kb.write] = k
		kb.write = next
	}
	kb.mtx.Unlock()

	select {
	case kb.notify <- struct{}{}:
	default:
	}
}

func (kb *KeyBuffer) size() int {
	return (kb.write - kb.read + ringsize) % ringsize
}

// NextKey returns the next key if there is one
func (kb *KeyBuffer) NextKey() (byte, bool) {
	kb.mtx.Lock()
	defer kb.mtx.Unlock()
	return kb.readByte()
}

func (kb *KeyBuffer) readByte() (byte, bool) {
	if kb.read == kb.write {
		return 0, false
	}
	bt := kb.ring[kb.read]
	kb.read = (kb.read + 1) % ringsize
	return bt, true
}

// ReadLine waits for a complete line, ended by CR, LF or CR LF.
// Backspace removes the last key.
func (kb *KeyBuffer) ReadLine(ctx context.Context) (string, error) {
	for {
		if line, ok := kb.takeLine(); ok {
			return line, nil
		}

		select {
		case <-kb.notify:
		case <-kb.done:
			return "", ErrClosed
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func (kb *KeyBuffer) takeLine() (string, bool) {
	kb.mtx.Lock()
	defer kb.mtx.Unlock()

	for {
		bt, ok := kb.readByte()
		if !ok {
			return "", false
		}

		switch {
		case bt == '\n' && kb.lastCR:
			kb.lastCR = false
		case bt == '\r' || bt == '\n':
			kb.lastCR = bt == '\r'
			line := string(kb.line)
			kb.line = kb.line[:0]
			return line, true
		case bt == backspace || bt == del:
			kb.lastCR = false
			if len(kb.line) > 0 {
				kb.line = kb.line[:len(kb.line)-1]
			}
		default:
			kb.lastCR = false
			kb.line = append(kb.line, bt)
		}
	}
}

// BreakSeen reports a pending ctrl-c
func (kb *KeyBuffer) BreakSeen() bool {
	return kb.sigBreak.Load()
}

// ClearBreak resets the flag
func (kb *KeyBuffer) ClearBreak() {
	kb.sigBreak.Store(false)
}

// TakeBreak reports and clears a pending ctrl-c in one step
func (kb *KeyBuffer) TakeBreak() bool {
	return kb.sigBreak.Swap(false)
}

// Close wakes up any reader, later reads fail
func (kb *KeyBuffer) Close() {
	kb.once.Do(func() { close(kb.done) })
}
