package fileserv

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/navionguy/linebasic/filelist"
	"github.com/navionguy/linebasic/library"
	"github.com/navionguy/linebasic/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCatalog struct {
	names []string
	err   error
}

func (mc mockCatalog) Catalog() (*filelist.FileList, error) {
	if mc.err != nil {
		return nil, mc.err
	}
	fl := filelist.NewFileList()
	for i, n := range mc.names {
		fl.AddFile(n, i+1)
	}
	return fl, nil
}

// client is a test side websocket that collects console text
type client struct {
	t    *testing.T
	conn *websocket.Conn
	seen strings.Builder
}

func openSession(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp, err := http.Post(ts.URL+"/sessions", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var rep sessionReply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	require.NotEmpty(t, rep.ID)
	return rep.ID
}

func dial(t *testing.T, ts *httptest.Server, id string) *client {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/sessions/" + id + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &client{t: t, conn: conn}
}

func (c *client) send(line string) {
	require.NoError(c.t, c.conn.WriteMessage(websocket.TextMessage, []byte(line)))
}

// waitFor reads frames until want has shown up
func (c *client) waitFor(want string) {
	c.t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for !strings.Contains(c.seen.String(), want) {
		_, msg, err := c.conn.ReadMessage()
		require.NoErrorf(c.t, err, "waiting for %q, have %q", want, c.seen.String())
		c.seen.Write(msg)
	}
	out := c.seen.String()
	idx := strings.Index(out, want) + len(want)
	c.seen.Reset()
	c.seen.WriteString(out[idx:])
}

func Test_Session(t *testing.T) {
	lib, err := library.Open(":memory:")
	require.NoError(t, err)
	defer lib.Close()

	srv := NewServer(Options{Storage: lib, Catalog: lib})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	id := openSession(t, ts)
	assert.Equal(t, 1, srv.Count())

	c := dial(t, ts, id)
	c.waitFor("READY.\n")
	c.waitFor("> ")

	c.send("PRINT 2+3*4")
	c.waitFor("14\n")

	c.send(`10 PRINT "HELLO"`)
	c.send("RUN")
	c.waitFor("HELLO\n")

	c.send("SAVE GREET")
	c.waitFor("Saved to GREET")

	c.send("NEW")
	c.send("LOAD GREET")
	c.waitFor("Loaded GREET (1 lines)")

	c.send("10 GOTO 10")
	c.send("RUN")
	time.Sleep(50 * time.Millisecond)
	c.send("\x03")
	c.waitFor("BREAK at line 10")

	c.send("QUIT")
	assert.Eventually(t, func() bool { return srv.Count() == 0 }, 5*time.Second, 10*time.Millisecond)

	names, err := lib.ListPrograms()
	require.NoError(t, err)
	assert.Equal(t, []string{"GREET"}, names)
}

func Test_SessionsAreSeparate(t *testing.T) {
	srv := NewServer(Options{})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	a := dial(t, ts, openSession(t, ts))
	b := dial(t, ts, openSession(t, ts))
	assert.Equal(t, 2, srv.Count())

	a.waitFor("> ")
	b.waitFor("> ")

	a.send("X = 5")
	b.send("X = 7")
	a.send("PRINT X")
	b.send("PRINT X")
	a.waitFor("5\n")
	b.waitFor("7\n")

	srv.Shutdown()
	assert.Equal(t, 0, srv.Count())
}

func Test_SocketErrors(t *testing.T) {
	srv := NewServer(Options{})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	id := openSession(t, ts)
	dial(t, ts, id)

	tests := []struct {
		name string
		id   string
		code int
	}{
		{name: "bad id", id: "not-a-uuid", code: http.StatusBadRequest},
		{name: "unknown", id: "0f8fad5b-d9cb-469f-a165-70867728950e", code: http.StatusNotFound},
		{name: "second client", id: id, code: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/sessions/" + tt.id + "/ws"
			_, resp, err := websocket.DefaultDialer.Dial(url, nil)
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.code, resp.StatusCode)
		})
	}
}

func Test_DeleteSession(t *testing.T) {
	srv := NewServer(Options{})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	id := openSession(t, ts)

	tests := []struct {
		id   string
		code int
	}{
		{id: id, code: http.StatusNoContent},
		{id: id, code: http.StatusNotFound},
		{id: "junk", code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		rq, err := http.NewRequest(http.MethodDelete, ts.URL+"/sessions/"+tt.id, nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(rq)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, tt.code, resp.StatusCode)
	}
	assert.Equal(t, 0, srv.Count())
}

func Test_EndRunningSession(t *testing.T) {
	tests := []struct {
		name string
		prog []string
		end  func(t *testing.T, srv *Server, ts *httptest.Server, c *client, id string)
	}{
		{
			name: "delete",
			prog: []string{"10 GOTO 10"},
			end: func(t *testing.T, srv *Server, ts *httptest.Server, c *client, id string) {
				rq, err := http.NewRequest(http.MethodDelete, ts.URL+"/sessions/"+id, nil)
				require.NoError(t, err)
				resp, err := http.DefaultClient.Do(rq)
				require.NoError(t, err)
				resp.Body.Close()
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)
			},
		},
		{
			name: "client gone",
			prog: []string{"10 X = X + 1", "20 GOTO 10"},
			end: func(t *testing.T, srv *Server, ts *httptest.Server, c *client, id string) {
				c.conn.Close()
			},
		},
		{
			name: "waiting on input",
			prog: []string{"10 INPUT A", "20 GOTO 10"},
			end: func(t *testing.T, srv *Server, ts *httptest.Server, c *client, id string) {
				srv.Shutdown()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(Options{})
			ts := httptest.NewServer(srv)
			defer ts.Close()

			id := openSession(t, ts)
			uid, err := uuid.Parse(id)
			require.NoError(t, err)
			srv.mtx.Lock()
			s := srv.sessions[uid]
			srv.mtx.Unlock()
			require.NotNil(t, s)

			c := dial(t, ts, id)
			c.waitFor("> ")
			for _, l := range tt.prog {
				c.send(l)
			}
			c.send("RUN")
			time.Sleep(50 * time.Millisecond)

			tt.end(t, srv, ts, c, id)

			select {
			case <-s.ended:
			case <-time.After(5 * time.Second):
				t.Fatal("interpreter still running after the session ended")
			}
			assert.Eventually(t, func() bool { return srv.Count() == 0 }, 5*time.Second, 10*time.Millisecond)
		})
	}
}

func Test_ClosedSessionConsole(t *testing.T) {
	s := newSession(uuid.New(), slog.Default())
	s.kb.SaveKeyStroke([]byte("LIST\n"))

	assert.False(t, s.BreakCheck())
	line, err := s.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "LIST", line)

	s.Close()
	assert.True(t, s.BreakCheck())
	assert.True(t, s.BreakCheck(), "stays raised once closed")
	_, err = s.ReadLine("> ")
	assert.ErrorIs(t, err, io.EOF)
}

func Test_Programs(t *testing.T) {
	lib, err := library.Open(":memory:")
	require.NoError(t, err)
	defer lib.Close()
	require.NoError(t, lib.SaveProgram("hello", []program.Line{{Number: 10, Text: `PRINT "HI"`}, {Number: 20, Text: "END"}}))

	tests := []struct {
		name string
		cat  Catalog
		code int
		body string
	}{
		{name: "library", cat: lib, code: http.StatusOK, body: `[{"name":"HELLO","lines":2}]`},
		{name: "empty", cat: mockCatalog{}, code: http.StatusOK, body: `[]`},
		{name: "failing", cat: mockCatalog{err: errors.New("disk gone")}, code: http.StatusInternalServerError},
		{name: "none", code: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{}
			if tt.cat != nil {
				opts.Catalog = tt.cat
			}
			srv := NewServer(opts)
			rr := httptest.NewRecorder()
			srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/programs", nil))

			assert.Equal(t, tt.code, rr.Code)
			if len(tt.body) > 0 {
				assert.JSONEq(t, tt.body, rr.Body.String())
			}
		})
	}
}

func Test_Routes(t *testing.T) {
	srv := NewServer(Options{Files: t.TempDir()})

	for _, name := range []string{"create", "socket", "delete", "programs", "/files"} {
		assert.NotNilf(t, srv.Router().Get(name), "route %s missing", name)
	}

	bare := NewServer(Options{})
	assert.Nil(t, bare.Router().Get("/files"))
}

func Test_Files(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.bas"), []byte("10 PRINT \"HI\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "menu.bas"), []byte("10 END\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".secret"), []byte("shh"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes"), []byte("plain"), 0o644))

	srv := NewServer(Options{Files: dir})

	tests := []struct {
		rqst string
		code int
		body string
	}{
		{rqst: "/files/hello.bas", code: http.StatusOK, body: "10 PRINT \"HI\"\n"},
		{rqst: "/files/notes", code: http.StatusOK, body: "plain"},
		{rqst: "/files/bogus.bas", code: http.StatusNotFound},
		{rqst: "/files/.secret", code: http.StatusForbidden},
		{rqst: "/files/", code: http.StatusOK, body: `[{"name":"hello.bas"},{"name":"menu.bas"},{"name":"notes"}]`},
		{rqst: "/files", code: http.StatusOK, body: `[{"name":"hello.bas"},{"name":"menu.bas"},{"name":"notes"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.rqst, func(t *testing.T) {
			rr := httptest.NewRecorder()
			srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.rqst, nil))

			assert.Equal(t, tt.code, rr.Code)
			if len(tt.body) > 0 {
				assert.Equal(t, tt.body, rr.Body.String())
			}
		})
	}
}

func Test_ContainsDotFile(t *testing.T) {
	tests := []struct {
		name   string
		expect bool
	}{
		{name: "menu.bas", expect: false},
		{name: ".gitignore", expect: true},
		{name: "html/../main.html", expect: true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expect, containsDotFile(tt.name), tt.name)
	}
}

// mockDir is an http.File directory with fixed contents
type mockDir struct {
	names []string
	fail  bool
}

func (md mockDir) Read(p []byte) (int, error)                   { return 0, io.EOF }
func (md mockDir) Seek(offset int64, whence int) (int64, error) { return 0, nil }
func (md mockDir) Close() error                                 { return nil }
func (md mockDir) Stat() (os.FileInfo, error)                   { return mockFI{name: "/", dir: true}, nil }

func (md mockDir) Readdir(n int) ([]os.FileInfo, error) {
	if md.fail {
		return nil, io.EOF
	}
	var fis []os.FileInfo
	for _, nm := range md.names {
		fis = append(fis, mockFI{name: nm})
	}
	return fis, nil
}

type mockFI struct {
	name string
	dir  bool
}

func (mi mockFI) IsDir() bool        { return mi.dir }
func (mi mockFI) ModTime() time.Time { return time.Now() }
func (mi mockFI) Mode() os.FileMode  { return 0o644 }
func (mi mockFI) Name() string       { return mi.name }
func (mi mockFI) Size() int64        { return int64(len(mi.name)) }
func (mi mockFI) Sys() interface{}   { return nil }

func Test_SendDirectory(t *testing.T) {
	tests := []struct {
		files []string
		fail  bool
		want  string
		res   int
	}{
		{files: []string{"hello.bas", "menu.bas"}, fail: true, res: http.StatusNotFound},
		{files: []string{"hello.bas", ".gitignore", "menu.bas"}, want: `[{"name":"hello.bas"},{"name":"menu.bas"}]`, res: http.StatusOK},
		{files: []string{".gitignore"}, want: `[]`, res: http.StatusOK},
	}

	for _, tt := range tests {
		fs := fileSource{}
		rr := httptest.NewRecorder()

		fs.sendDirectory(dotFileHidingFile{mockDir{names: tt.files, fail: tt.fail}}, rr)

		assert.Equal(t, tt.res, rr.Code)
		assert.Equal(t, tt.want, rr.Body.String())
	}
}

func Test_Readdir(t *testing.T) {
	df := dotFileHidingFile{mockDir{names: []string{"hello.bas", ".gitignore"}}}
	fis, err := df.Readdir(-1)
	require.NoError(t, err)
	require.Len(t, fis, 1)
	assert.Equal(t, "hello.bas", fis[0].Name())
}

func Test_WrapSource(t *testing.T) {
	rtr := mux.NewRouter()
	fs := &fileSource{src: http.Dir(t.TempDir())}
	fs.wrapSource(rtr, "/drive")

	trt := rtr.Get("/drive")
	require.NotNil(t, trt)
	path, err := trt.GetPathTemplate()
	require.NoError(t, err)
	assert.Equal(t, "/drive", path)
}
