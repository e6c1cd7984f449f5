package fileserv

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"
	"github.com/navionguy/linebasic/filelist"
)

// fileSource publishes one directory, dot files stay hidden
type fileSource struct {
	src http.FileSystem
}

// wrapSource maps a directory onto path.
// Since the gorilla mux doesn't support wildcard routes I have to map
// all the possibilities independantly.
//
//	http://hostname:port/files
//	http://hostname:port/files/
//	http://hostname:port/files/program
//	http://hostname:port/files/program.ext
func (fs *fileSource) wrapSource(rtr *mux.Router, path string) {
	handle := func(rw http.ResponseWriter, r *http.Request) {
		vs := mux.Vars(r)
		file := vs["file"]

		if ext := vs["ext"]; len(ext) > 0 {
			file = file + "." + ext
		}
		fs.serveFile(rw, file)
	}

	rtr.HandleFunc(path, handle).Methods(http.MethodGet).Name(path)
	rtr.HandleFunc(path+"/", handle).Methods(http.MethodGet)
	rtr.HandleFunc(path+"/{file}.{ext}", handle).Methods(http.MethodGet)
	rtr.HandleFunc(path+"/{file}", handle).Methods(http.MethodGet)
}

// serveFile opens up the file and sends its contents, a directory
// gets a listing of its names
func (fs fileSource) serveFile(w http.ResponseWriter, fname string) {
	if len(fname) == 0 {
		fname = "/"
	}

	hfile, err := fs.Open(fname)
	if errors.Is(err, os.ErrPermission) {
		w.WriteHeader(http.StatusForbidden)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	defer hfile.Close()

	st, err := hfile.Stat()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if st.IsDir() {
		fs.sendDirectory(hfile, w)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.Copy(w, hfile); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
}

// sendDirectory sends the names found in hfile as a JSON file list,
// he does block any that start with '.'
func (fs fileSource) sendDirectory(hfile http.File, w http.ResponseWriter) {
	files, err := hfile.Readdir(-1)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	fl := filelist.NewFileList()
	for _, finfo := range files {
		if !finfo.IsDir() && !containsDotFile(finfo.Name()) {
			fl.AddFile(finfo.Name(), 0)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	jsn := fl.JSON()
	if jsn == nil {
		jsn = []byte("[]")
	}
	w.Write(jsn)
}

// Open is a wrapper around the Open method of the embedded FileSystem
// that refuses anything hidden
func (fs fileSource) Open(name string) (http.File, error) {
	if containsDotFile(name) {
		return nil, os.ErrPermission
	}

	file, err := fs.src.Open(name)
	if err != nil {
		return nil, err
	}

	return dotFileHidingFile{file}, nil
}

// containsDotFile reports whether name contains a path element starting with a period.
// The name is assumed to be a delimited by forward slashes, as guaranteed
// by the http.FileSystem interface.
func containsDotFile(name string) bool {
	parts := strings.Split(name, "/")
	for _, part := range parts {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// dotFileHidingFile wraps the Readdir method of http.File so that we can
// remove files and directories that start with a period from its output.
type dotFileHidingFile struct {
	http.File
}

// Readdir filters out all files that start with a period in their name.
func (f dotFileHidingFile) Readdir(n int) (fis []os.FileInfo, err error) {
	files, err := f.File.Readdir(n)
	for _, file := range files {
		if !strings.HasPrefix(file.Name(), ".") {
			fis = append(fis, file)
		}
	}
	return
}
