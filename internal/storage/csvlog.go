package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/kreeda/idcard/internal/registration"
	"github.com/kreeda/idcard/internal/util"
)

// Header is written once, when the log file does not exist yet.
var Header = []string{"Name", "Date of Birth", "Address", "Mobile Number", "Sport", "Contest", "Photo"}

// CSVLog is the append-only submission log. Appends from this process are
// serialized; other processes writing the same file are not coordinated.
type CSVLog struct {
	path string
	mu   sync.Mutex
}

// OpenCSVLog creates the log with its header if it is absent. Opening an
// existing log leaves it untouched.
func OpenCSVLog(path string) (*CSVLog, error) {
	l := &CSVLog{path: path}
	if err := l.ensureHeader(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *CSVLog) Path() string {
	return l.path
}

func (l *CSVLog) ensureHeader() error {
	if util.FileExists(l.path) {
		return nil
	}
	if dir := filepath.Dir(l.path); dir != "" {
		if err := util.EnsureDir(dir); err != nil {
			return fmt.Errorf("create log dir %s -> %w", dir, err)
		}
	}
	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return fmt.Errorf("create log %s -> %w", l.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Append writes exactly one row. Existing content is never read or rewritten.
func (l *CSVLog) Append(ctx context.Context, r registration.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureHeader(); err != nil {
		return err
	}
	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log %s -> %w", l.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(toRow(r)); err != nil {
		return fmt.Errorf("append log %s -> %w", l.path, err)
	}
	w.Flush()
	return w.Error()
}

func toRow(r registration.Record) []string {
	return []string{r.Name, r.DateOfBirth, r.Address, r.Mobile, r.Sport, r.Contest, r.Photo}
}

// Load reads every row back, matching columns by header name.
func (l *CSVLog) Load() ([]registration.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fp, err := os.Open(l.path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read log %s -> %w", l.path, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv %s has no header", l.path)
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[h] = i
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return row[idx]
		}
		return ""
	}

	out := make([]registration.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, registration.Record{
			Name:        get(row, "Name"),
			DateOfBirth: get(row, "Date of Birth"),
			Address:     get(row, "Address"),
			Mobile:      get(row, "Mobile Number"),
			Sport:       get(row, "Sport"),
			Contest:     get(row, "Contest"),
			Photo:       get(row, "Photo"),
		})
	}
	return out, nil
}
