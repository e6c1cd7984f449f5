// Package library keeps programs and saved variables in a sqlite
// database shared by every server session
package library

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/filelist"
	"github.com/navionguy/linebasic/object"
	"github.com/navionguy/linebasic/program"
	_ "modernc.org/sqlite"
)

// Library is a program store backed by sqlite
type Library struct {
	db *sql.DB
}

// Open connects to the database at path, ":memory:" works for tests,
// and makes sure the tables exist
func Open(path string) (*Library, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	// an in memory database lives only as long as its connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to library: %w", err)
	}

	lib := &Library{db: db}
	if err := lib.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return lib, nil
}

// Close releases the database
func (lib *Library) Close() error {
	return lib.db.Close()
}

func (lib *Library) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS programs (
			name TEXT NOT NULL,
			line INTEGER NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (name, line)
		)`,
		`CREATE TABLE IF NOT EXISTS variables (
			name TEXT NOT NULL,
			seq INTEGER NOT NULL,
			var TEXT NOT NULL,
			kind TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (name, seq)
		)`,
	}

	for _, query := range queries {
		if _, err := lib.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

func key(name string) string {
	return strings.ToUpper(name)
}

// SaveProgram replaces whatever was stored under name
func (lib *Library) SaveProgram(name string, lines []program.Line) error {
	tx, err := lib.db.Begin()
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM programs WHERE name = ?`, key(name)); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	for _, l := range lines {
		if _, err := tx.Exec(`INSERT INTO programs (name, line, text) VALUES (?, ?, ?)`, key(name), l.Number, l.Text); err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
	}
	return tx.Commit()
}

// LoadProgram returns the lines stored under name, in order
func (lib *Library) LoadProgram(name string) ([]program.Line, error) {
	rows, err := lib.db.Query(`SELECT line, text FROM programs WHERE name = ? ORDER BY line`, key(name))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	defer rows.Close()

	var lines []program.Line
	for rows.Next() {
		var l program.Line
		if err := rows.Scan(&l.Number, &l.Text); err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	if len(lines) == 0 {
		return nil, berrors.New(berrors.FileNotFound, "")
	}
	return lines, nil
}

// SaveVars replaces the variable set stored under name
func (lib *Library) SaveVars(name string, vars []object.Variable) error {
	tx, err := lib.db.Begin()
	if err != nil {
		return fmt.Errorf("savevars %s: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM variables WHERE name = ?`, key(name)); err != nil {
		return fmt.Errorf("savevars %s: %w", name, err)
	}
	for i, v := range vars {
		val := v.Str
		if v.Kind == object.NumVar {
			val = object.FormatNumber(v.Num)
		}
		if _, err := tx.Exec(`INSERT INTO variables (name, seq, var, kind, value) VALUES (?, ?, ?, ?, ?)`,
			key(name), i, v.Name, v.Kind.String(), val); err != nil {
			return fmt.Errorf("savevars %s: %w", name, err)
		}
	}
	return tx.Commit()
}

// LoadVars returns the variables stored under name in the order saved
func (lib *Library) LoadVars(name string) ([]object.Variable, error) {
	rows, err := lib.db.Query(`SELECT var, kind, value FROM variables WHERE name = ? ORDER BY seq`, key(name))
	if err != nil {
		return nil, fmt.Errorf("loadvars %s: %w", name, err)
	}
	defer rows.Close()

	var vars []object.Variable
	found := false
	for rows.Next() {
		var v object.Variable
		var kind, val string
		if err := rows.Scan(&v.Name, &kind, &val); err != nil {
			return nil, fmt.Errorf("loadvars %s: %w", name, err)
		}
		found = true
		if kind == object.StrVar.String() {
			v.Kind = object.StrVar
			v.Str = val
		} else {
			v.Num = object.Atof(val)
		}
		vars = append(vars, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loadvars %s: %w", name, err)
	}

	if !found {
		return nil, berrors.New(berrors.FileNotFound, "")
	}
	return vars, nil
}

// ListPrograms gives the names of the stored programs
func (lib *Library) ListPrograms() ([]string, error) {
	cat, err := lib.Catalog()
	if err != nil {
		return nil, err
	}
	return cat.Names(), nil
}

// Catalog lists the stored programs along with their sizes
func (lib *Library) Catalog() (*filelist.FileList, error) {
	rows, err := lib.db.Query(`SELECT name, COUNT(*) FROM programs GROUP BY name ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer rows.Close()

	fl := filelist.NewFileList()
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		fl.AddFile(name, count)
	}
	return fl, rows.Err()
}
