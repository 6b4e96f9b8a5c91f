// Package csvfeed streams rows out of the smoker temperature CSV. The file
// is replayed from the top once exhausted so the producer runs forever,
// like a pit probe that never stops reporting.
package csvfeed

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

// Row is one parsed CSV record.
type Row struct {
	Temperature float64
}

// Feed iterates a CSV file with a temperature column, looping forever.
// Not safe for concurrent use; the producer loop is the only caller.
type Feed struct {
	path    string
	log     *slog.Logger
	file    *os.File
	reader  *csv.Reader
	tempIdx int
	yielded int // rows returned since the last (re)open
}

// Open validates the file and its header. The temperature column is found
// by name so extra columns don't matter.
func Open(path string, log *slog.Logger) (*Feed, error) {
	f := &Feed{path: path, log: log.With(slog.String("component", "csv-feed"))}
	if err := f.reopen(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Feed) reopen() error {
	if f.file != nil {
		_ = f.file.Close()
	}
	file, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("open data file %s: %w", f.path, err)
	}
	r := csv.NewReader(file)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("read header of %s: %w", f.path, err)
	}
	idx := -1
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), "temperature") {
			idx = i
			break
		}
	}
	if idx < 0 {
		_ = file.Close()
		return fmt.Errorf("data file %s has no temperature column", f.path)
	}
	f.file = file
	f.reader = r
	f.tempIdx = idx
	f.yielded = 0
	return nil
}

// Next returns the next row, wrapping around at end of file. Rows with an
// unparseable temperature are skipped with a log line. A full pass that
// yields no rows (header-only file, or every row unparseable) is an error
// rather than a silent wrap, so the producer cannot spin forever.
func (f *Feed) Next() (Row, error) {
	for {
		rec, err := f.reader.Read()
		if err == io.EOF {
			if f.yielded == 0 {
				return Row{}, fmt.Errorf("data file %s has no usable rows", f.path)
			}
			f.log.Info("data_file_wrapped", "path", f.path)
			if err := f.reopen(); err != nil {
				return Row{}, err
			}
			continue
		}
		if err != nil {
			return Row{}, fmt.Errorf("read %s: %w", f.path, err)
		}
		if f.tempIdx >= len(rec) {
			f.log.Warn("row_missing_temperature", "fields", len(rec))
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[f.tempIdx]), 64)
		if err != nil {
			f.log.Warn("row_bad_temperature", "value", rec[f.tempIdx])
			continue
		}
		f.yielded++
		return Row{Temperature: v}, nil
	}
}

func (f *Feed) Close() error {
	if f.file == nil {
		return nil
	}
	return f.file.Close()
}

// RandomFact picks one of the BBQ trivia lines the producer attaches to
// each message.
func RandomFact() string {
	return bbqFacts[rand.Intn(len(bbqFacts))]
}
