package verse

import (
	_ "embed"
	"encoding/json"
)

//go:embed verses.json
var defaultDataset []byte

// DefaultPool returns the pool built from the small bundled dataset. A full
// dataset can be swapped in through LoadPool and the storage config.
func DefaultPool() *Pool {
	var verses []Verse
	// The bundled dataset is compiled in; a parse failure is a build
	// defect, not a runtime condition.
	if err := json.Unmarshal(defaultDataset, &verses); err != nil {
		panic("verse: bundled dataset is invalid: " + err.Error())
	}
	p, err := NewPool(verses)
	if err != nil {
		panic("verse: bundled dataset is empty")
	}
	return p
}
