package engine

import (
	"strings"

	"pokeserver/src/models"

	"go.uber.org/zap"
)

// Query maps attribute names to the value a record must hold for each of
// them. Every constraint must hold for a record to match; an empty Query
// matches every record.
type Query map[string]string

// FilterRecords returns the records that satisfy query, in their original order.
func FilterRecords(records []models.Record, query Query, logger *zap.SugaredLogger) []models.Record {
	result := make([]models.Record, 0, len(records))
	for _, record := range records {
		if MatchesQuery(record, query) {
			result = append(result, record)
		}
	}
	logger.Debugw("Filtered records", "query", query, "scanned", len(records), "matched", len(result))
	return result
}

// MatchesQuery reports whether record satisfies every constraint in query.
//
// A constraint on a key the record carries at top level is checked against
// that attribute only: text must be equal, a list must contain the value, and
// a map must contain it among its values under any key. Only when no top-level
// attribute has that name are the record's map attributes searched for a
// sub-key of that name. Comparisons ignore case and numbers are compared by
// their string form.
func MatchesQuery(record models.Record, query Query) bool {
	for key, value := range query {
		if !matchesConstraint(record, key, strings.ToLower(value)) {
			return false
		}
	}
	return true
}

func matchesConstraint(record models.Record, key, want string) bool {
	if attr, ok := record.Attribute(key); ok {
		return matchesAttribute(attr, want)
	}
	return matchesNestedKey(record, key, want)
}

func matchesAttribute(attr models.Attribute, want string) bool {
	switch attr.Kind {
	case models.KindScalar:
		return strings.ToLower(attr.Scalar.String()) == want
	case models.KindList:
		for _, item := range attr.List {
			if strings.ToLower(item) == want {
				return true
			}
		}
	case models.KindMap:
		// Matches on any value; the sub-key is not consulted.
		for _, entry := range attr.Map {
			if strings.ToLower(entry.Value.String()) == want {
				return true
			}
		}
	}
	return false
}

func matchesNestedKey(record models.Record, key, want string) bool {
	for _, field := range record.Fields {
		value, ok := field.Value.Lookup(key)
		if ok && strings.ToLower(value.String()) == want {
			return true
		}
	}
	return false
}
