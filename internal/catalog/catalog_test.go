package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sample(t *testing.T) *Catalog {
	t.Helper()
	c, err := New([]Item{
		{ID: "chat", Term: "chat", Translation: "cat", Category: "Animals", Level: "A1"},
		{ID: "chien", Term: "chien", Translation: "dog", Category: "Animals", Level: "A1"},
		{ID: "gare", Term: "gare", Translation: "train station", Category: "Travel", Level: "A2"},
	})
	require.NoError(t, err)
	return c
}

func TestCatalog_OrderAndLookup(t *testing.T) {
	c := sample(t)
	assert.Equal(t, []string{"chat", "chien", "gare"}, c.IDs())
	assert.Equal(t, 3, c.Len())

	it, ok := c.Get("gare")
	require.True(t, ok)
	assert.Equal(t, "train station", it.Translation)

	_, ok = c.Get("nope")
	assert.False(t, ok)
	assert.Equal(t, []string{"Animals", "Travel"}, c.Categories())
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New([]Item{{ID: "a"}, {ID: "a"}})
	assert.ErrorContains(t, err, "duplicate")
}

func TestFilter(t *testing.T) {
	c := sample(t)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"zero filter matches all", Filter{}, []string{"chat", "chien", "gare"}},
		{"category", Filter{Category: "animals"}, []string{"chat", "chien"}},
		{"level", Filter{Level: "A2"}, []string{"gare"}},
		{"search term", Filter{Search: "CHI"}, []string{"chien"}},
		{"search translation", Filter{Search: "station"}, []string{"gare"}},
		{"combined", Filter{Category: "Animals", Search: "cat"}, []string{"chat"}},
		{"no match", Filter{Level: "C2"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Filter(tt.filter).IDs())
		})
	}
}

func TestReadJSON_AcceptsLegacyNames(t *testing.T) {
	res, err := ReadJSON(strings.NewReader(`[
		{"id": "w1", "term": "pain", "translation": "bread", "level": "A1"},
		{"id": "w2", "french": "eau", "english": "water", "cefr": "A1", "category": "Food"},
		{"french": "orphan"}
	]`))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)

	w2, ok := res.Catalog.Get("w2")
	require.True(t, ok)
	assert.Equal(t, Item{ID: "w2", Term: "eau", Translation: "water", Category: "Food", Level: "A1"}, w2)
}

func TestReadCSV(t *testing.T) {
	res, err := ReadCSV(strings.NewReader(
		"level,id,term,translation\n" +
			"A1, chat, chat, cat\n" +
			",,,\n" +
			"A2,gare,gare,train station\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"chat", "gare"}, res.Catalog.IDs())
	assert.Equal(t, 1, res.Skipped)

	it, _ := res.Catalog.Get("chat")
	assert.Equal(t, "A1", it.Level)
	assert.Equal(t, "cat", it.Translation)
}

func TestReadCSV_MissingColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("id,term\nchat,chat\n"))
	assert.ErrorContains(t, err, "translation")
}

func TestReadCSV_Duplicate(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("id,term,translation\na,x,y\na,x,y\n"))
	assert.ErrorContains(t, err, "duplicate")
}

func TestLoad_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"id", "term", "translation", "pronunciation", "category", "level"},
		{"pomme", "pomme", "apple", "pum", "Food", "A1"},
		{"plage", "plage", "beach", "plahzh", "Places", "A1"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	res, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"pomme", "plage"}, res.Catalog.IDs())
	it, _ := res.Catalog.Get("plage")
	assert.Equal(t, "plahzh", it.Pronunciation)
}

func TestLoad_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"a","term":"x","translation":"y"}]`), 0o644))

	res, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, res.Catalog.IDs())
}

func TestLoad_UnknownExtension(t *testing.T) {
	_, err := Load("words.txt")
	assert.ErrorContains(t, err, "unsupported")
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.GreaterOrEqual(t, c.Len(), 30)
	for _, it := range c.Items() {
		assert.NotEmpty(t, it.Term, it.ID)
		assert.NotEmpty(t, it.Translation, it.ID)
	}
}

func TestReadJSON_Schema(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not an array", `{"id": "a", "term": "x"}`},
		{"numeric id", `[{"id": 5, "term": "x", "translation": "y"}]`},
		{"no term", `[{"id": "a", "translation": "y"}]`},
		{"item not an object", `["pain"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			assert.ErrorContains(t, err, "does not match schema")
		})
	}
}

func TestReadJSON_Malformed(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`[{"id": `))
	assert.ErrorContains(t, err, "decode catalog")
}
