package engine

import (
	"testing"

	"pokeserver/src/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testRecord(name string, types []string, stats, damages []models.MapEntry, misc []models.MapEntry) models.Record {
	return models.Record{Fields: []models.Field{
		{Name: models.AttrName, Value: models.ScalarAttribute(models.TextScalar(name))},
		{Name: models.AttrType, Value: models.ListAttribute(types...)},
		{Name: models.AttrStats, Value: models.MapAttribute(stats...)},
		{Name: models.AttrDamages, Value: models.MapAttribute(damages...)},
		{Name: models.AttrMisc, Value: models.MapAttribute(misc...)},
	}}
}

func num(key string, v float64) models.MapEntry {
	return models.MapEntry{Key: key, Value: models.NumberScalar(v)}
}

func text(key, v string) models.MapEntry {
	return models.MapEntry{Key: key, Value: models.TextScalar(v)}
}

func testRecords() []models.Record {
	return []models.Record{
		testRecord("Bulbasaur", []string{"Grass", "Poison"},
			[]models.MapEntry{num("hp", 45), num("attack", 49)},
			[]models.MapEntry{num("fire", 2), num("water", 0.5)},
			[]models.MapEntry{text("classification", "Seed Pokémon"), num("weight", 15.2)}),
		testRecord("Charmander", []string{"Fire"},
			[]models.MapEntry{num("hp", 39), num("attack", 52)},
			[]models.MapEntry{num("fire", 0.5), num("water", 2)},
			[]models.MapEntry{text("classification", "Lizard Pokémon"), num("weight", 18.7)}),
		testRecord("Pikachu", []string{"Electric"},
			[]models.MapEntry{num("hp", 35), num("attack", 55)},
			[]models.MapEntry{num("ground", 2)},
			[]models.MapEntry{text("classification", "Mouse Pokémon"), num("capturerate", 190)}),
		testRecord("Venusaur", []string{"Grass", "Poison"},
			[]models.MapEntry{num("hp", 80), num("attack", 82)},
			[]models.MapEntry{num("fire", 2)},
			[]models.MapEntry{text("classification", "Seed Pokémon")}),
	}
}

func names(records []models.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name())
	}
	return out
}

func TestFilterRecords(t *testing.T) {
	testCases := []struct {
		name          string
		query         Query
		expectedNames []string
	}{
		{
			name:          "empty query matches everything in order",
			query:         Query{},
			expectedNames: []string{"Bulbasaur", "Charmander", "Pikachu", "Venusaur"},
		},
		{
			name:          "name matches exactly ignoring case",
			query:         Query{"name": "pIKACHU"},
			expectedNames: []string{"Pikachu"},
		},
		{
			name:          "name does not match substrings",
			query:         Query{"name": "pika"},
			expectedNames: []string{},
		},
		{
			name:          "type is a membership test",
			query:         Query{"type": "poison"},
			expectedNames: []string{"Bulbasaur", "Venusaur"},
		},
		{
			name:          "type value absent from every record",
			query:         Query{"type": "dragon"},
			expectedNames: []string{},
		},
		{
			name:          "nested stat lookup compares by string form",
			query:         Query{"hp": "45"},
			expectedNames: []string{"Bulbasaur"},
		},
		{
			name:          "nested lookup of fractional damage",
			query:         Query{"water": "0.5"},
			expectedNames: []string{"Bulbasaur"},
		},
		{
			name:          "nested misc text lookup ignores case",
			query:         Query{"classification": "seed pokémon"},
			expectedNames: []string{"Bulbasaur", "Venusaur"},
		},
		{
			name:          "top-level map matches any of its values",
			query:         Query{"stats": "52"},
			expectedNames: []string{"Charmander"},
		},
		{
			name:          "top-level map ignores the sub-key holding the value",
			query:         Query{"damages": "2"},
			expectedNames: []string{"Bulbasaur", "Charmander", "Pikachu", "Venusaur"},
		},
		{
			name:          "all constraints must hold",
			query:         Query{"type": "grass", "hp": "80"},
			expectedNames: []string{"Venusaur"},
		},
		{
			name:          "one failing constraint excludes the record",
			query:         Query{"type": "grass", "name": "pikachu"},
			expectedNames: []string{},
		},
		{
			name:          "unknown key excludes every record",
			query:         Query{"colour": "yellow"},
			expectedNames: []string{},
		},
		{
			name:          "key names ignore case",
			query:         Query{"TYPE": "electric", "HP": "35"},
			expectedNames: []string{"Pikachu"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := FilterRecords(testRecords(), tc.query, zap.NewNop().Sugar())
			if diff := cmp.Diff(tc.expectedNames, names(result)); diff != "" {
				t.Errorf("unexpected matches (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterRecords_EmptyQueryReturnsInputUnchanged(t *testing.T) {
	records := testRecords()
	result := FilterRecords(records, Query{}, zap.NewNop().Sugar())
	assert.Equal(t, records, result)
}

func TestMatchesQuery_TopLevelTakesPrecedence(t *testing.T) {
	// "hp" exists both at top level and inside stats; the top-level value wins
	// even though the nested one would have matched.
	record := models.Record{Fields: []models.Field{
		{Name: "name", Value: models.ScalarAttribute(models.TextScalar("Ditto"))},
		{Name: "hp", Value: models.ScalarAttribute(models.TextScalar("high"))},
		{Name: "stats", Value: models.MapAttribute(num("hp", 48))},
	}}

	assert.False(t, MatchesQuery(record, Query{"hp": "48"}))
	assert.True(t, MatchesQuery(record, Query{"hp": "HIGH"}))
}

func TestMatchesQuery_NumericTopLevelScalar(t *testing.T) {
	record := models.Record{Fields: []models.Field{
		{Name: "name", Value: models.ScalarAttribute(models.TextScalar("Mew"))},
		{Name: "id", Value: models.ScalarAttribute(models.NumberScalar(151))},
	}}

	assert.True(t, MatchesQuery(record, Query{"id": "151"}))
	assert.False(t, MatchesQuery(record, Query{"id": "15"}))
}

func TestMatchesQuery_NestedSearchSkipsLists(t *testing.T) {
	record := testRecords()[2]
	assert.False(t, MatchesQuery(record, Query{"0": "electric"}))
}

func TestMatchesQuery_PropertyLaws(t *testing.T) {
	for _, record := range testRecords() {
		t.Run(record.Name(), func(t *testing.T) {
			assert.True(t, MatchesQuery(record, Query{"name": record.Name()}))
			for _, typ := range record.Types() {
				assert.True(t, MatchesQuery(record, Query{"type": typ}))
			}
			assert.False(t, MatchesQuery(record, Query{"type": "not-present-value"}))
			for _, stat := range record.Stats() {
				assert.True(t, MatchesQuery(record, Query{stat.Key: stat.Value.String()}))
			}
		})
	}
}
