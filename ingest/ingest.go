// Package ingest turns the raw songs JSON export into the CSV consumed by the
// loader. Two layouts are accepted: an array of song objects, and the
// column-oriented {column: {rowKey: value}} document the dataset ships as.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/goccy/go-json"

	"songboard/models"
)

var (
	ErrEmptyInput = errors.New("empty input")
	ErrLayout     = errors.New("unsupported document layout")
)

// Row is one flattened record: dotted column name to CSV cell text.
type Row map[string]string

// Decode reads a songs document and returns its rows, flattened.
func Decode(r io.Reader) ([]Row, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, fmt.Errorf("decode json: %w", err)
	}

	switch v := doc.(type) {
	case []interface{}:
		return decodeRecords(v)
	case map[string]interface{}:
		return decodeColumns(v)
	default:
		return nil, fmt.Errorf("%w: top level must be an array or an object, got %T", ErrLayout, doc)
	}
}

func decodeRecords(records []interface{}) ([]Row, error) {
	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		obj, ok := rec.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: record %d is not an object", ErrLayout, i)
		}
		row := Row{}
		flatten("", obj, row)
		rows = append(rows, row)
	}
	return rows, nil
}

func decodeColumns(columns map[string]interface{}) ([]Row, error) {
	records := map[string]map[string]interface{}{}
	for col, v := range columns {
		cells, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: column %q is not an object of row values", ErrLayout, col)
		}
		for key, cell := range cells {
			rec, ok := records[key]
			if !ok {
				rec = map[string]interface{}{}
				records[key] = rec
			}
			rec[col] = cell
		}
	}

	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return rowKeyLess(keys[i], keys[j]) })

	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		row := Row{}
		flatten("", records[k], row)
		rows = append(rows, row)
	}
	return rows, nil
}

// rowKeyLess orders numeric keys numerically, ahead of any non-numeric key.
func rowKeyLess(a, b string) bool {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

func flatten(prefix string, obj map[string]interface{}, out Row) {
	for k, v := range obj {
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}
		if nested, ok := v.(map[string]interface{}); ok {
			flatten(name, nested, out)
			continue
		}
		out[name] = cell(v)
	}
}

func cell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// Columns returns the CSV header for rows. Without all only the song columns
// are kept; with it every column seen is written, song columns first.
func Columns(rows []Row, all bool) []string {
	cols := append([]string(nil), models.Columns...)
	if !all {
		return cols
	}

	known := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		known[c] = struct{}{}
	}
	var extra []string
	for _, row := range rows {
		for name := range row {
			if _, ok := known[name]; ok {
				continue
			}
			known[name] = struct{}{}
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(cols, extra...)
}

// WriteCSV writes rows under a header row. Missing cells are left empty.
func WriteCSV(w io.Writer, rows []Row, all bool) error {
	cols := Columns(rows, all)
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(cols))
	for i, row := range rows {
		for j, c := range cols {
			record[j] = row[c]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Convert decodes in and writes the CSV to out, returning the row count.
func Convert(in io.Reader, out io.Writer, all bool) (int, error) {
	rows, err := Decode(in)
	if err != nil {
		return 0, err
	}
	if err := WriteCSV(out, rows, all); err != nil {
		return 0, err
	}
	return len(rows), nil
}
