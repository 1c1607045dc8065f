package catalog

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/xuri/excelize/v2"
)

// Columns is the header expected in CSV and spreadsheet files. Columns may
// appear in any order; only id, term and translation are required.
var Columns = []string{"id", "term", "translation", "pronunciation", "category", "level"}

// LoadResult reports what Load read.
type LoadResult struct {
	Catalog *Catalog
	// Skipped counts rows without an id.
	Skipped int
}

// Load reads a catalog file, choosing the format by extension: .json, .csv
// or .xlsx.
func Load(path string) (*LoadResult, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "open catalog")
		}
		defer f.Close()
		return ReadJSON(f)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "open catalog")
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx":
		return loadExcel(path)
	default:
		return nil, errors.Errorf("unsupported catalog format %q", ext)
	}
}

// jsonItem also accepts the field names of older French word lists.
type jsonItem struct {
	Item
	French  string `json:"french"`
	English string `json:"english"`
	CEFR    string `json:"cefr"`
}

// ReadJSON reads a JSON array of items. The document is checked against
// the word list schema before any item is built.
func ReadJSON(r io.Reader) (*LoadResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog")
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}

	var raw []jsonItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}

	items := make([]Item, 0, len(raw))
	for _, j := range raw {
		it := j.Item
		if it.Term == "" {
			it.Term = j.French
		}
		if it.Translation == "" {
			it.Translation = j.English
		}
		if it.Level == "" {
			it.Level = j.CEFR
		}
		items = append(items, it)
	}
	return build(items)
}

// ReadCSV reads a CSV file whose first row is the header.
func ReadCSV(r io.Reader) (*LoadResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	return fromRows(rows)
}

func loadExcel(path string) (*LoadResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "open spreadsheet")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheets[0])
	}
	return fromRows(rows)
}

// fromRows maps a header row plus data rows onto items.
func fromRows(rows [][]string) (*LoadResult, error) {
	if len(rows) == 0 {
		return nil, errors.New("catalog has no header row")
	}

	col := make(map[string]int)
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"id", "term", "translation"} {
		if _, ok := col[required]; !ok {
			return nil, errors.Errorf("catalog header is missing column %q", required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	items := make([]Item, 0, len(rows)-1)
	for _, row := range rows[1:] {
		items = append(items, Item{
			ID:            cell(row, "id"),
			Term:          cell(row, "term"),
			Translation:   cell(row, "translation"),
			Pronunciation: cell(row, "pronunciation"),
			Category:      cell(row, "category"),
			Level:         cell(row, "level"),
		})
	}
	return build(items)
}

func build(items []Item) (*LoadResult, error) {
	res := &LoadResult{Catalog: &Catalog{index: make(map[string]int, len(items))}}
	for _, it := range items {
		if it.ID == "" {
			res.Skipped++
			continue
		}
		if err := res.Catalog.add(it); err != nil {
			return nil, err
		}
	}
	return res, nil
}
