package gwtypes

import "strings"

// Access Mode for file i/o
type AccessMode int

const (
	Input  AccessMode = iota // Sequential input mode
	Output                   // Sequential output mode
	Append                   // Position to end of file for writing
)

func (am AccessMode) String() string {
	return []string{"INPUT", "OUTPUT", "APPEND"}[am]
}

// AnOpenFile is a data file opened by a program with OPEN
type AnOpenFile interface {
	AccessMode() AccessMode // the access mode for this open file
	FQFN() string           // the fully qualified name of the file
	ReadLine() (string, error)
	ReadItem() (string, error) // one comma or newline delimited field
	EOF() bool
	Write(string) error
	Close() error
}

// SplitItem pulls the next comma delimited field off of line. A field
// wrapped in double quotes may contain commas, the quotes are dropped.
func SplitItem(line string) (item string, rest string, more bool) {
	line = strings.TrimLeft(line, " \t")

	if len(line) > 0 && line[0] == '"' {
		end := 1
		for end < len(line) && line[end] != '"' {
			end++
		}
		item = line[1:end]
		if end < len(line) {
			end++
		}
		line = line[end:]
		for len(line) > 0 && line[0] != ',' {
			line = line[1:]
		}
	} else {
		end := 0
		for end < len(line) && line[end] != ',' {
			end++
		}
		item = strings.TrimRight(line[:end], " \t\r")
		line = line[end:]
	}

	if len(line) > 0 && line[0] == ',' {
		return item, line[1:], true
	}
	return item, "", false
}
