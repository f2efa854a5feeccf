// Package csvfile loads crash records from a delimited text file.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/couchcryptid/crash-stats/internal/domain"
)

// Loader reads a crash CSV into normalized records.
// It implements pipeline.RecordLoader.
type Loader struct {
	delimiter rune
	logger    *slog.Logger
}

// NewLoader creates a Loader for the given field delimiter.
func NewLoader(delimiter rune, logger *slog.Logger) *Loader {
	if delimiter == 0 {
		delimiter = ','
	}
	return &Loader{delimiter: delimiter, logger: logger}
}

// Load opens path and decodes every row. The first failure aborts the load
// and is returned as a *domain.DecodeError; no records are returned with it.
func (l *Loader) Load(ctx context.Context, path string) (records []domain.Record, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.DecodeError{Phase: domain.PhaseOpen, Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			records = nil
			err = &domain.DecodeError{Phase: domain.PhaseClose, Path: path, Err: cerr}
		}
	}()

	return l.decode(ctx, f, path)
}

// Decode reads records from r. name is used only in error messages.
func (l *Loader) Decode(ctx context.Context, r io.Reader, name string) ([]domain.Record, error) {
	return l.decode(ctx, r, name)
}

func (l *Loader) decode(ctx context.Context, r io.Reader, name string) ([]domain.Record, error) {
	reader := csv.NewReader(r)
	reader.Comma = l.delimiter

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		l.logger.Warn("crash file is empty", "path", name)
		return []domain.Record{}, nil
	}
	if err != nil {
		return nil, &domain.DecodeError{Phase: domain.PhaseOpen, Path: name, Line: lineOf(err), Err: err}
	}
	header = NormalizeHeader(header)
	l.logger.Debug("crash file header", "path", name, "fields", header)

	var records []domain.Record //nolint:prealloc // row count is unknown until EOF
	for {
		if err := ctx.Err(); err != nil {
			return nil, &domain.DecodeError{Phase: domain.PhaseRow, Path: name, Err: err}
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.DecodeError{Phase: domain.PhaseRow, Path: name, Line: lineOf(err), Err: err}
		}
		records = append(records, domain.NewRecord(header, row))
	}

	if records == nil {
		records = []domain.Record{}
	}
	l.logger.Info("crash file loaded", "path", name, "records", len(records))
	return records, nil
}

// NormalizeHeader removes every whitespace rune from each header name, so
// "Crash Type" becomes "CrashType". A leading UTF-8 byte order mark is
// dropped as well.
func NormalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		out[i] = strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, h)
	}
	return out
}

func lineOf(err error) int {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return perr.Line
	}
	return 0
}
