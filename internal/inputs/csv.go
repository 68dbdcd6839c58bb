// Package inputs loads benchmark input tokens (addresses, transaction ids)
// from single-column CSV files.
package inputs

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultColumn is the header of the column holding input tokens.
const DefaultColumn = "value"

// Default input file locations, relative to the working directory.
const (
	DefaultAddressFile = "benchmark_csv/bitcoin_addresses.csv"
	DefaultTxidFile    = "benchmark_csv/bitcoin_txids.csv"
)

// ErrColumnNotFound is returned when the CSV header lacks the requested column.
var ErrColumnNotFound = errors.New("column not found")

// ReadColumn reads every value of the named column from the CSV file at
// path. The first row is the header. Values are returned verbatim, in file
// order; no validation is performed.
func ReadColumn(path, column string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	values, err := Read(f, column)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return values, nil
}

// Read is ReadColumn for an already open reader. An empty input yields no
// values and no error.
func Read(r io.Reader, column string) ([]string, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	idx := -1
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if strings.TrimSpace(name) == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q (header: %v)", ErrColumnNotFound, column, header)
	}

	values := []string{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse row: %w", err)
		}
		values = append(values, record[idx])
	}
	return values, nil
}

// WriteColumn writes values as a single-column CSV file with the given
// header, creating parent directories and replacing any existing file.
func WriteColumn(path, column string, values []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := Write(f, column, values); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Write is WriteColumn for an already open writer.
func Write(w io.Writer, column string, values []string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{column}); err != nil {
		return err
	}
	for _, v := range values {
		if err := writer.Write([]string{v}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Set holds both input lists.
type Set struct {
	Addresses []string
	Txids     []string
}

// Load reads the address and transaction id files concurrently. Loading
// happens before any timing starts, so it does not affect measurements.
func Load(addressPath, txidPath, column string) (*Set, error) {
	var (
		set Set
		g   errgroup.Group
	)

	g.Go(func() error {
		values, err := ReadColumn(addressPath, column)
		if err != nil {
			return fmt.Errorf("load addresses: %w", err)
		}
		set.Addresses = values
		return nil
	})
	g.Go(func() error {
		values, err := ReadColumn(txidPath, column)
		if err != nil {
			return fmt.Errorf("load transaction ids: %w", err)
		}
		set.Txids = values
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &set, nil
}
