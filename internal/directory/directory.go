// Package directory holds the read-only temple dataset that every session browses.
package directory

import (
	"errors"
	"fmt"

	"github.com/Nixie-Tech-LLC/darshan/internal/model"
)

// PopularCount is how many leading records the landing page features.
const PopularCount = 6

var ErrDuplicateID = errors.New("duplicate temple id")

// Directory is an immutable, ordered set of temple records. It is built once
// at startup and passed to whoever needs it.
type Directory struct {
	records []model.TempleRecord
	index   map[string]int
}

// New validates the records and takes a private copy of them.
func New(records []model.TempleRecord) (*Directory, error) {
	d := &Directory{
		records: make([]model.TempleRecord, 0, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for i, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("temple at position %d has an empty id", i)
		}
		if _, dup := d.index[r.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, r.ID)
		}
		d.index[r.ID] = len(d.records)
		d.records = append(d.records, r.Clone())
	}
	return d, nil
}

// MustNew is New for fixed datasets known to be valid.
func MustNew(records []model.TempleRecord) *Directory {
	d, err := New(records)
	if err != nil {
		panic(err)
	}
	return d
}

// Builtin returns a directory over the bundled dataset.
func Builtin() *Directory {
	return MustNew(BuiltinTemples())
}

func (d *Directory) Len() int { return len(d.records) }

// List returns copies of all records in directory order.
func (d *Directory) List() []model.TempleRecord {
	out := make([]model.TempleRecord, len(d.records))
	for i, r := range d.records {
		out[i] = r.Clone()
	}
	return out
}

// Lookup finds a record by id.
func (d *Directory) Lookup(id string) (model.TempleRecord, bool) {
	i, ok := d.index[id]
	if !ok {
		return model.TempleRecord{}, false
	}
	return d.records[i].Clone(), true
}

// Popular returns the first PopularCount records.
func (d *Directory) Popular() []model.TempleRecord {
	n := min(PopularCount, len(d.records))
	out := make([]model.TempleRecord, n)
	for i := 0; i < n; i++ {
		out[i] = d.records[i].Clone()
	}
	return out
}
