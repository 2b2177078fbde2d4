package engine

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pokeserver/src/data"
	"pokeserver/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

/*
	Datasets come in two shapes:
	  - JSON: a top-level array of objects. It is parsed with the relaxed extended JSON
	    reader from the bson package, which decodes objects into bson.D and so keeps
	    the key order of the file. Map attributes are rendered in that order.
	  - BSON: concatenated documents, one per record, the layout mongodump writes.
*/

// datasetEnvelope lets the extended JSON reader, which only accepts documents,
// parse a top-level array.
type datasetEnvelope struct {
	Records []bson.D `bson:"records"`
}

// LoadDataset reads the data file at path. An empty path selects the
// embedded dataset. Files ending in .bson are read as BSON, anything else as JSON.
func LoadDataset(path string, logger *zap.SugaredLogger) (*Dataset, error) {
	var (
		records []models.Record
		err     error
		source  = path
	)

	switch {
	case path == "":
		source = "embedded pokemon.json"
		records, err = DecodeDatasetJSON(data.PokemonJSON)
	default:
		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("error reading data file %s: %w", path, readErr)
		}
		if strings.EqualFold(filepath.Ext(path), ".bson") {
			records, err = DecodeDatasetBSON(raw)
		} else {
			records, err = DecodeDatasetJSON(raw)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset from %s: %w", source, err)
	}

	logger.Infow("Dataset loaded", "source", source, "records", len(records))
	return NewDataset(records), nil
}

// DecodeDatasetJSON parses a JSON array of record objects.
func DecodeDatasetJSON(raw []byte) ([]models.Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array of records", ErrInvalidDataset)
	}

	wrapped := make([]byte, 0, len(trimmed)+len(`{"records":}`))
	wrapped = append(wrapped, `{"records":`...)
	wrapped = append(wrapped, trimmed...)
	wrapped = append(wrapped, '}')

	var envelope datasetEnvelope
	if err := bson.UnmarshalExtJSON(wrapped, false, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	return recordsFromDocuments(envelope.Records)
}

// DecodeDatasetBSON parses concatenated BSON documents.
func DecodeDatasetBSON(raw []byte) ([]models.Record, error) {
	var docs []bson.D
	for offset := 0; offset < len(raw); {
		if len(raw)-offset < 5 {
			return nil, fmt.Errorf("%w: truncated document at byte %d", ErrInvalidDataset, offset)
		}
		size := int(binary.LittleEndian.Uint32(raw[offset:]))
		if size < 5 || offset+size > len(raw) {
			return nil, fmt.Errorf("%w: bad document length %d at byte %d", ErrInvalidDataset, size, offset)
		}

		var doc bson.D
		if err := bson.Unmarshal(raw[offset:offset+size], &doc); err != nil {
			return nil, fmt.Errorf("%w: document at byte %d: %v", ErrInvalidDataset, offset, err)
		}
		docs = append(docs, doc)
		offset += size
	}
	return recordsFromDocuments(docs)
}

// EncodeDatasetBSON writes records as concatenated BSON documents, readable
// by DecodeDatasetBSON.
func EncodeDatasetBSON(records []models.Record) ([]byte, error) {
	var buf bytes.Buffer
	for i, record := range records {
		doc, err := bson.Marshal(documentFromRecord(record))
		if err != nil {
			return nil, fmt.Errorf("error encoding record %d: %w", i, err)
		}
		buf.Write(doc)
	}
	return buf.Bytes(), nil
}

func recordsFromDocuments(docs []bson.D) ([]models.Record, error) {
	records := make([]models.Record, 0, len(docs))
	for i, doc := range docs {
		record, err := recordFromDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrInvalidDataset, i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func recordFromDocument(doc bson.D) (models.Record, error) {
	record := models.Record{Fields: make([]models.Field, 0, len(doc))}
	for _, elem := range doc {
		attr, err := attributeFromValue(elem.Value)
		if err != nil {
			return models.Record{}, fmt.Errorf("attribute %q: %w", elem.Key, err)
		}
		record.Fields = append(record.Fields, models.Field{Name: elem.Key, Value: attr})
	}

	name, ok := record.Attribute(models.AttrName)
	if !ok || name.Kind != models.KindScalar || name.Scalar.Kind != models.ScalarText {
		return models.Record{}, fmt.Errorf("attribute %q must be present and text", models.AttrName)
	}
	return record, nil
}

func attributeFromValue(value interface{}) (models.Attribute, error) {
	switch v := value.(type) {
	case bson.A:
		return listFromValues(v)
	case []interface{}:
		return listFromValues(v)
	case bson.D:
		return mapFromDocument(v)
	case bson.M:
		return mapFromDocument(sortedDocument(v))
	default:
		scalar, err := scalarFromValue(value)
		if err != nil {
			return models.Attribute{}, err
		}
		return models.ScalarAttribute(scalar), nil
	}
}

func listFromValues(values []interface{}) (models.Attribute, error) {
	items := make([]string, 0, len(values))
	for i, value := range values {
		s, ok := value.(string)
		if !ok {
			return models.Attribute{}, fmt.Errorf("%w: list element %d is %T, want string", ErrUnsupportedValue, i, value)
		}
		items = append(items, s)
	}
	return models.ListAttribute(items...), nil
}

func mapFromDocument(doc bson.D) (models.Attribute, error) {
	entries := make([]models.MapEntry, 0, len(doc))
	for _, elem := range doc {
		scalar, err := scalarFromValue(elem.Value)
		if err != nil {
			return models.Attribute{}, fmt.Errorf("key %q: %w", elem.Key, err)
		}
		entries = append(entries, models.MapEntry{Key: elem.Key, Value: scalar})
	}
	return models.MapAttribute(entries...), nil
}

func scalarFromValue(value interface{}) (models.Scalar, error) {
	switch v := value.(type) {
	case string:
		return models.TextScalar(v), nil
	case int32:
		return models.NumberScalar(float64(v)), nil
	case int64:
		return models.NumberScalar(float64(v)), nil
	case int:
		return models.NumberScalar(float64(v)), nil
	case float64:
		return models.NumberScalar(v), nil
	default:
		return models.Scalar{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
	}
}

// sortedDocument orders an unordered map by key so the result is stable.
func sortedDocument(m bson.M) bson.D {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := make(bson.D, 0, len(keys))
	for _, k := range keys {
		doc = append(doc, bson.E{Key: k, Value: m[k]})
	}
	return doc
}

func documentFromRecord(record models.Record) bson.D {
	doc := make(bson.D, 0, len(record.Fields))
	for _, field := range record.Fields {
		doc = append(doc, bson.E{Key: field.Name, Value: valueFromAttribute(field.Value)})
	}
	return doc
}

func valueFromAttribute(attr models.Attribute) interface{} {
	switch attr.Kind {
	case models.KindList:
		list := make(bson.A, 0, len(attr.List))
		for _, item := range attr.List {
			list = append(list, item)
		}
		return list
	case models.KindMap:
		doc := make(bson.D, 0, len(attr.Map))
		for _, entry := range attr.Map {
			doc = append(doc, bson.E{Key: entry.Key, Value: valueFromScalar(entry.Value)})
		}
		return doc
	default:
		return valueFromScalar(attr.Scalar)
	}
}

func valueFromScalar(s models.Scalar) interface{} {
	if s.Kind == models.ScalarNumber {
		return s.Number
	}
	return s.Text
}
