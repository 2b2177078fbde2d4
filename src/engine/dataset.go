package engine

import (
	"fmt"

	"pokeserver/src/models"

	"go.uber.org/zap"
)

// Dataset is the ordered, read-only collection of records served by the
// process. It is built once at startup and never mutated, so it is safe to
// share across request goroutines without locking.
type Dataset struct {
	records []models.Record
}

// NewDataset copies records into a new Dataset.
func NewDataset(records []models.Record) *Dataset {
	return &Dataset{records: append([]models.Record(nil), records...)}
}

func (d *Dataset) Len() int {
	return len(d.records)
}

// All returns every record in dataset order.
func (d *Dataset) All() []models.Record {
	return append([]models.Record(nil), d.records...)
}

// At returns the record at a 0-based position.
func (d *Dataset) At(index int64) (models.Record, error) {
	if index < 0 || index >= int64(len(d.records)) {
		return models.Record{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(d.records))
	}
	return d.records[index], nil
}

// Search returns the records matching every constraint in query.
func (d *Dataset) Search(query Query, logger *zap.SugaredLogger) []models.Record {
	return FilterRecords(d.records, query, logger)
}
