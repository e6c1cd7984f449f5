package filelist

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strings"
)

// ScreenWidth is how wide the FILES listing may run
const ScreenWidth = 80

// entry holds information about one stored program
type entry struct {
	Name  string `json:"name"`
	Lines int    `json:"lines,omitempty"`
}

// FileList holds the array of entries
type FileList struct {
	Files []entry
}

type fileSorter struct {
	list *FileList
}

// NewFileList builds a new, empty list of programs
func NewFileList() *FileList {
	return &FileList{}
}

// JSON returns the file list formatted in HTML compatable JSON
func (fl *FileList) JSON() []byte {
	if len(fl.Files) == 0 {
		return nil
	}
	res, _ := json.Marshal(fl.Files)
	return res
}

// AddFile adds a program to the list, lines may be zero if unknown
func (fl *FileList) AddFile(name string, lines int) {
	fl.Files = append(fl.Files, entry{Name: name, Lines: lines})
	sort.Sort(&fileSorter{list: fl})
}

// Build list takes the json form and builds a full FileList and sorts it
func (fl *FileList) Build(dir *bufio.Reader) error {
	fl.Files = fl.Files[:0]

	jsn, err := io.ReadAll(dir)
	if err != nil {
		return err
	}

	if !json.Valid(jsn) {
		return errors.New("NotList")
	}

	err = json.Unmarshal(jsn, &fl.Files)
	if err != nil {
		return err
	}
	sort.Sort(&fileSorter{list: fl})

	return nil
}

// Names gives the program names in order
func (fl *FileList) Names() []string {
	names := make([]string, len(fl.Files))
	for i, f := range fl.Files {
		names[i] = f.Name
	}
	return names
}

// Len is a part of the sort.Interface
// returns the number file entries
func (fs *fileSorter) Len() int {
	return len(fs.list.Files)
}

// Swap is part of sort.Interface
// change two elements
func (fs *fileSorter) Swap(i, j int) {
	fs.list.Files[i], fs.list.Files[j] = fs.list.Files[j], fs.list.Files[i]
}

// Less is part of sort.Interface, names compare without regard to case
func (fs *fileSorter) Less(i, j int) bool {
	a := strings.ToUpper(fs.list.Files[i].Name)
	b := strings.ToUpper(fs.list.Files[j].Name)
	if a == b {
		return fs.list.Files[i].Name < fs.list.Files[j].Name
	}
	return a < b
}

// Layout packs names into print zones, as many across as fit in width
func Layout(names []string, width int, zone int) []string {
	fl := NewFileList()
	for _, n := range names {
		fl.Files = append(fl.Files, entry{Name: n})
	}
	sort.Sort(&fileSorter{list: fl})

	var lines []string
	var cur strings.Builder
	for _, n := range fl.Names() {
		cell := n
		if pad := len(n) % zone; pad != 0 || len(n) == 0 {
			cell += strings.Repeat(" ", zone-pad)
		}
		if cur.Len() > 0 && cur.Len()+len(n) > width {
			lines = append(lines, strings.TrimRight(cur.String(), " "))
			cur.Reset()
		}
		cur.WriteString(cell)
	}
	if cur.Len() > 0 {
		lines = append(lines, strings.TrimRight(cur.String(), " "))
	}
	return lines
}
