package catalog

import (
	"bytes"
	_ "embed"
)

//go:embed default.json
var defaultJSON []byte

// Default returns the built-in starter word list.
func Default() *Catalog {
	res, err := ReadJSON(bytes.NewReader(defaultJSON))
	if err != nil {
		panic("catalog: built-in word list is invalid: " + err.Error())
	}
	return res.Catalog
}
