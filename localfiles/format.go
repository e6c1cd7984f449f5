package localfiles

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/navionguy/linebasic/object"
	"github.com/navionguy/linebasic/program"
)

// WriteProgram writes one "number text" line per program line
func WriteProgram(w io.Writer, lines []program.Line) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := fmt.Fprintf(bw, "%d %s\n", l.Number, l.Text); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadProgram parses program text, lines that don't start with a
// number are skipped
func ReadProgram(r io.Reader) ([]program.Line, error) {
	var lines []program.Line

	scn := bufio.NewScanner(r)
	for scn.Scan() {
		txt := strings.TrimLeft(scn.Text(), " \t")
		end := 0
		for end < len(txt) && txt[end] >= '0' && txt[end] <= '9' {
			end++
		}
		num, err := strconv.Atoi(txt[:end])
		if err != nil {
			continue
		}
		lines = append(lines, program.Line{Number: num, Text: strings.TrimSpace(txt[end:])})
	}
	return lines, scn.Err()
}

// WriteVars writes one name, kind, value triple per line, tab separated
func WriteVars(w io.Writer, vars []object.Variable) error {
	bw := bufio.NewWriter(w)
	for _, v := range vars {
		val := v.Str
		if v.Kind == object.NumVar {
			val = object.FormatNumber(v.Num)
		}
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\n", v.Name, v.Kind, val); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadVars parses the triples written by WriteVars, malformed lines
// are skipped
func ReadVars(r io.Reader) ([]object.Variable, error) {
	var vars []object.Variable

	scn := bufio.NewScanner(r)
	for scn.Scan() {
		parts := strings.SplitN(strings.TrimRight(scn.Text(), "\r"), "\t", 3)
		if len(parts) != 3 || len(parts[0]) == 0 || len(parts[1]) == 0 {
			continue
		}
		v := object.Variable{Name: parts[0]}
		if parts[1][0] == 'S' {
			v.Kind = object.StrVar
			v.Str = parts[2]
		} else {
			v.Num = object.Atof(parts[2])
		}
		vars = append(vars, v)
	}
	return vars, scn.Err()
}
