// Package fileserv hosts interpreter sessions over HTTP. Each session
// gets its own environment and talks to its client over a websocket,
// the program library and the storage directory are published read only.
package fileserv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/navionguy/linebasic/filelist"
	"github.com/navionguy/linebasic/localfiles"
	"github.com/navionguy/linebasic/object"
)

// Catalog lists the stored programs
type Catalog interface {
	Catalog() (*filelist.FileList, error)
}

// Options tells the server what every session shares
type Options struct {
	Storage object.Storage // SAVE, LOAD and FILES
	Catalog Catalog        // backs GET /programs, nil disables it
	Files   string         // directory published under /files, "" for none
	Limits  object.Limits
	Trace   bool
	Logger  *slog.Logger
}

// Server owns the live sessions
type Server struct {
	opts     Options
	log      *slog.Logger
	router   *mux.Router
	upgrader websocket.Upgrader

	mtx      sync.Mutex
	sessions map[uuid.UUID]*session
}

// NewServer builds the server and its routes
func NewServer(opts Options) *Server {
	lg := opts.Logger
	if lg == nil {
		lg = slog.Default()
	}

	srv := &Server{
		opts:     opts,
		log:      lg,
		router:   mux.NewRouter(),
		sessions: make(map[uuid.UUID]*session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	srv.router.HandleFunc("/sessions", srv.createSession).Methods(http.MethodPost).Name("create")
	srv.router.HandleFunc("/sessions/{id}/ws", srv.socket).Methods(http.MethodGet).Name("socket")
	srv.router.HandleFunc("/sessions/{id}", srv.deleteSession).Methods(http.MethodDelete).Name("delete")
	srv.router.HandleFunc("/programs", srv.programs).Methods(http.MethodGet).Name("programs")

	if len(opts.Files) > 0 {
		fs := &fileSource{src: http.Dir(opts.Files)}
		fs.wrapSource(srv.router, "/files")
	}

	return srv
}

// ServeHTTP lets the server be handed straight to http.ListenAndServe
func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	srv.router.ServeHTTP(w, r)
}

// Router exposes the routes
func (srv *Server) Router() *mux.Router {
	return srv.router
}

// Count is the number of live sessions
func (srv *Server) Count() int {
	srv.mtx.Lock()
	defer srv.mtx.Unlock()
	return len(srv.sessions)
}

// Shutdown closes every session and waits for their interpreters to stop
func (srv *Server) Shutdown() {
	srv.mtx.Lock()
	live := make([]*session, 0, len(srv.sessions))
	for _, s := range srv.sessions {
		live = append(live, s)
	}
	srv.mtx.Unlock()

	for _, s := range live {
		srv.endSession(s.id)
	}
	for _, s := range live {
		<-s.ended
	}
}

type sessionReply struct {
	ID string `json:"id"`
}

func (srv *Server) createSession(w http.ResponseWriter, r *http.Request) {
	s := newSession(uuid.New(), srv.log)

	env := object.NewEnvironment(s, srv.opts.Limits)
	env.SetStorage(srv.opts.Storage)
	env.SetFileOpener(localfiles.NewMemory())
	env.SetTrace(srv.opts.Trace)
	s.env = env

	srv.mtx.Lock()
	srv.sessions[s.id] = s
	srv.mtx.Unlock()

	go s.run(func() { srv.endSession(s.id) })
	srv.log.Info("session created", "session", s.id.String(), "remote", r.RemoteAddr)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sessionReply{ID: s.id.String()})
}

// lookup finds the session named in the route
func (srv *Server) lookup(w http.ResponseWriter, r *http.Request) (*session, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "bad session id", http.StatusBadRequest)
		return nil, false
	}

	srv.mtx.Lock()
	s, ok := srv.sessions[id]
	srv.mtx.Unlock()

	if !ok {
		http.Error(w, "no such session", http.StatusNotFound)
		return nil, false
	}
	return s, true
}

func (srv *Server) socket(w http.ResponseWriter, r *http.Request) {
	s, ok := srv.lookup(w, r)
	if !ok {
		return
	}

	if !s.attached.CompareAndSwap(false, true) {
		http.Error(w, "session already has a client", http.StatusConflict)
		return
	}

	conn, err := srv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.attached.Store(false)
		srv.log.Warn("upgrade failed", "session", s.id.String(), "err", err)
		return
	}
	defer conn.Close()

	go s.writePump(conn)
	s.readPump(conn)

	// the client going away ends the session
	srv.endSession(s.id)
}

func (srv *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	s, ok := srv.lookup(w, r)
	if !ok {
		return
	}
	srv.endSession(s.id)
	w.WriteHeader(http.StatusNoContent)
}

// endSession forgets the session and stops it
func (srv *Server) endSession(id uuid.UUID) {
	srv.mtx.Lock()
	s, ok := srv.sessions[id]
	delete(srv.sessions, id)
	srv.mtx.Unlock()

	if ok {
		s.Close()
		srv.log.Info("session closed", "session", id.String())
	}
}

func (srv *Server) programs(w http.ResponseWriter, r *http.Request) {
	if srv.opts.Catalog == nil {
		http.Error(w, "no program library", http.StatusNotFound)
		return
	}

	cat, err := srv.opts.Catalog.Catalog()
	if err != nil {
		srv.log.Error("catalog failed", "err", err)
		http.Error(w, "catalog unavailable", http.StatusInternalServerError)
		return
	}

	jsn := cat.JSON()
	if jsn == nil {
		jsn = []byte("[]")
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(jsn)
}
