package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

const (
	TableFact        = "fact_table"
	TableCustomer    = "customer_dim"
	TableItem        = "item_dim"
	TableStore       = "store_dim"
	TableTime        = "time_dim"
	TableTransaction = "trans_dim"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Sources holds the path of each input file.
type Sources struct {
	Fact        string
	Customer    string
	Item        string
	Store       string
	Time        string
	Transaction string
}

// SourcesIn resolves the default file names inside dir.
func SourcesIn(dir string) Sources {
	return Sources{
		Fact:        filepath.Join(dir, "fact_table.csv"),
		Customer:    filepath.Join(dir, "customer_dim.csv"),
		Item:        filepath.Join(dir, "item_dim.csv"),
		Store:       filepath.Join(dir, "store_dim.csv"),
		Time:        filepath.Join(dir, "time_dim.csv"),
		Transaction: filepath.Join(dir, "Trans_dim.csv"),
	}
}

func (s Sources) paths() []namedPath {
	return []namedPath{
		{TableFact, s.Fact},
		{TableCustomer, s.Customer},
		{TableItem, s.Item},
		{TableStore, s.Store},
		{TableTime, s.Time},
		{TableTransaction, s.Transaction},
	}
}

type namedPath struct {
	name string
	path string
}

// Tables holds the six loaded inputs.
type Tables struct {
	Fact        *Table
	Customer    *Table
	Item        *Table
	Store       *Table
	Time        *Table
	Transaction *Table
}

// LoadTables reads all six files. Files are read concurrently; the first
// failure cancels the remaining reads.
func LoadTables(ctx context.Context, src Sources) (Tables, error) {
	paths := src.paths()
	loaded := make([]*Table, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, np := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := LoadTable(np.name, np.path)
			if err != nil {
				return err
			}
			loaded[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Tables{}, err
	}

	return Tables{
		Fact:        loaded[0],
		Customer:    loaded[1],
		Item:        loaded[2],
		Store:       loaded[3],
		Time:        loaded[4],
		Transaction: loaded[5],
	}, nil
}

// LoadTable reads and parses one CSV file.
func LoadTable(name, path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	t, encoding, err := parseTable(name, raw)
	if err != nil {
		return nil, &LoadError{File: path, Encoding: encoding, Err: err}
	}
	return t, nil
}

// ParseTable decodes raw with the first encoding that accepts it and parses
// the result as CSV with a header row.
func ParseTable(name string, raw []byte) (*Table, error) {
	t, _, err := parseTable(name, raw)
	return t, err
}

// parseTable also returns the encoding that decoded raw, or "" when none
// did, so callers can report it on a parse failure.
func parseTable(name string, raw []byte) (*Table, string, error) {
	encoding, text, err := decode(raw)
	if err != nil {
		return nil, "", fmt.Errorf("no supported encoding: %w", err)
	}
	text = bytes.TrimPrefix(text, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(text))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, encoding, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, encoding, fmt.Errorf("read header: %w", err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, encoding, fmt.Errorf("parse %s: %w", name, err)
		}
		rows = append(rows, row)
	}

	return newTable(name, encoding, header, rows), encoding, nil
}
