package fileserv

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/navionguy/linebasic/cli"
	"github.com/navionguy/linebasic/keybuffer"
	"github.com/navionguy/linebasic/object"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMessage = 4096
	outQueue   = 256
)

// session is one remote interpreter, it doubles as the console
// the interpreter talks to
type session struct {
	id  uuid.UUID
	env *object.Environment
	kb  *keybuffer.KeyBuffer
	out chan string
	log *slog.Logger

	ctx      context.Context
	stop     context.CancelFunc
	once     sync.Once
	ended    chan struct{} // closed once the interpreter has returned
	attached atomic.Bool
}

func newSession(id uuid.UUID, log *slog.Logger) *session {
	ctx, stop := context.WithCancel(context.Background())
	return &session{
		id:    id,
		kb:    keybuffer.New(),
		out:   make(chan string, outQueue),
		log:   log.With("session", id.String()),
		ctx:   ctx,
		stop:  stop,
		ended: make(chan struct{}),
	}
}

// Print queues text for the client, it waits while the queue is full
func (s *session) Print(str string) {
	if len(str) == 0 {
		return
	}
	select {
	case s.out <- str:
	case <-s.ctx.Done():
	}
}

// Println queues text followed by a newline
func (s *session) Println(str string) {
	s.Print(str + "\n")
}

// ReadLine sends the prompt and waits for the client to send a line,
// a closed session has no more input
func (s *session) ReadLine(prompt string) (string, error) {
	s.Print(prompt)
	line, err := s.kb.ReadLine(s.ctx)
	if err != nil {
		return "", io.EOF
	}
	return line, nil
}

// BreakCheck reports and clears a ctrl-c from the client. Once the
// session is closed it always reports a break so a running program stops.
func (s *session) BreakCheck() bool {
	if s.ctx.Err() != nil {
		return true
	}
	return s.kb.TakeBreak()
}

// input takes one frame from the client, each frame is a line
// unless it is a lone ctrl-c
func (s *session) input(msg []byte) {
	if len(msg) == 1 && msg[0] == 0x03 {
		s.kb.SaveKeyStroke(msg)
		return
	}
	s.kb.SaveKeyStroke(append(msg, '\n'))
}

// run drives the interpreter until the user quits or the session
// is closed, then calls done
func (s *session) run(done func()) {
	defer close(s.ended)
	defer done()
	s.log.Debug("session started")
	cli.Start(s.env)
	s.env.CloseAllFiles()
	s.log.Debug("session ended")
}

// Close stops the interpreter, safe to call more than once
func (s *session) Close() {
	s.once.Do(func() {
		s.stop()
		s.kb.Close()
	})
}

// writePump copies console output to the socket and keeps it alive
func (s *session) writePump(conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-s.out:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				s.log.Debug("write failed", "err", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-s.ctx.Done():
			s.flush(conn)
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "BYE"),
				time.Now().Add(writeWait))
			return
		}
	}
}

// flush sends whatever output is still queued
func (s *session) flush(conn *websocket.Conn) {
	for {
		select {
		case msg := <-s.out:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		default:
			return
		}
	}
}

// readPump feeds client frames into the key buffer until the socket closes
func (s *session) readPump(conn *websocket.Conn) {
	conn.SetReadLimit(maxMessage)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				s.log.Warn("socket closed", "err", err)
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		s.input(msg)
	}
}
