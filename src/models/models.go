package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"pokeserver/src/helpers"
)

// Canonical top-level attribute names of a creature record.
const (
	AttrName    = "name"
	AttrType    = "type"
	AttrStats   = "stats"
	AttrDamages = "damages"
	AttrMisc    = "misc"
)

type ScalarKind int

const (
	ScalarText ScalarKind = iota
	ScalarNumber
)

// Scalar is a single text or numeric value.
type Scalar struct {
	Kind   ScalarKind
	Text   string
	Number float64
}

func TextScalar(s string) Scalar {
	return Scalar{Kind: ScalarText, Text: s}
}

func NumberScalar(f float64) Scalar {
	return Scalar{Kind: ScalarNumber, Number: f}
}

// String renders the value the way a JavaScript runtime would stringify it.
func (s Scalar) String() string {
	if s.Kind == ScalarNumber {
		return helpers.FormatNumber(s.Number)
	}
	return s.Text
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	if s.Kind == ScalarNumber {
		return json.Marshal(s.Number)
	}
	return json.Marshal(s.Text)
}

// MapEntry is one key/value pair of a map attribute, kept in source order.
type MapEntry struct {
	Key   string
	Value Scalar
}

type AttributeKind int

const (
	KindScalar AttributeKind = iota
	KindList
	KindMap
)

func (k AttributeKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Attribute is the value of one top-level record field. Exactly one of
// Scalar, List or Map is meaningful, selected by Kind.
type Attribute struct {
	Kind   AttributeKind
	Scalar Scalar
	List   []string
	Map    []MapEntry
}

func ScalarAttribute(s Scalar) Attribute {
	return Attribute{Kind: KindScalar, Scalar: s}
}

func ListAttribute(items ...string) Attribute {
	return Attribute{Kind: KindList, List: items}
}

func MapAttribute(entries ...MapEntry) Attribute {
	return Attribute{Kind: KindMap, Map: entries}
}

// Lookup returns the value stored under key in a map attribute.
func (a Attribute) Lookup(key string) (Scalar, bool) {
	if a.Kind != KindMap {
		return Scalar{}, false
	}
	for _, entry := range a.Map {
		if strings.EqualFold(entry.Key, key) {
			return entry.Value, true
		}
	}
	return Scalar{}, false
}

func (a Attribute) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case KindList:
		if a.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.List)
	case KindMap:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, entry := range a.Map {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(entry.Key)
			if err != nil {
				return nil, err
			}
			value, err := entry.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return a.Scalar.MarshalJSON()
	}
}

type Field struct {
	Name  string
	Value Attribute
}

// Record is one creature entry. Fields keep the order of the source document.
type Record struct {
	Fields []Field
}

// Attribute returns the top-level attribute called name, compared without case.
func (r Record) Attribute(name string) (Attribute, bool) {
	for _, field := range r.Fields {
		if strings.EqualFold(field.Name, name) {
			return field.Value, true
		}
	}
	return Attribute{}, false
}

func (r Record) Name() string {
	attr, ok := r.Attribute(AttrName)
	if !ok || attr.Kind != KindScalar {
		return ""
	}
	return attr.Scalar.String()
}

func (r Record) Types() []string {
	attr, ok := r.Attribute(AttrType)
	if !ok || attr.Kind != KindList {
		return nil
	}
	return attr.List
}

func (r Record) Stats() []MapEntry   { return r.mapField(AttrStats) }
func (r Record) Damages() []MapEntry { return r.mapField(AttrDamages) }
func (r Record) Misc() []MapEntry    { return r.mapField(AttrMisc) }

func (r Record) mapField(name string) []MapEntry {
	attr, ok := r.Attribute(name)
	if !ok || attr.Kind != KindMap {
		return nil
	}
	return attr.Map
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Name)
		if err != nil {
			return nil, err
		}
		value, err := field.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
