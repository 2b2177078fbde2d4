package directors

import (
	"errors"
	"fmt"

	"pokeserver/src/engine"
	"pokeserver/src/helpers"
	"pokeserver/src/models"

	"go.uber.org/zap"
)

// ErrPokemonNotFound is returned when an index is not a number or falls outside the dataset.
var ErrPokemonNotFound = errors.New("pokemon not found")
var ErrNoSearchResults = errors.New("no pokemon matched the search")

// PokemonService answers read queries over the dataset.
type PokemonService struct {
	dataset *engine.Dataset
	logger  *zap.SugaredLogger
}

// NewPokemonService creates a new PokemonService
func NewPokemonService(dataset *engine.Dataset, logger *zap.SugaredLogger) *PokemonService {
	return &PokemonService{
		dataset: dataset,
		logger:  logger,
	}
}

// ListPokemon returns the whole dataset in order.
func (s *PokemonService) ListPokemon() []models.Record {
	return s.dataset.All()
}

// Count returns the number of records available.
func (s *PokemonService) Count() int {
	return s.dataset.Len()
}

// GetPokemon resolves a raw path segment to a record. The segment is read
// like JavaScript's parseInt, so "2abc" is index 2 and "abc" is no index at all.
func (s *PokemonService) GetPokemon(indexOfArray string) (models.Record, error) {
	index, ok := helpers.ParseLeadingInt(indexOfArray)
	if !ok {
		return models.Record{}, fmt.Errorf("%w: %q is not a number", ErrPokemonNotFound, indexOfArray)
	}

	record, err := s.dataset.At(index)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %v", ErrPokemonNotFound, err)
	}
	return record, nil
}

// SearchPokemon runs the attribute filter. An empty result is reported as
// ErrNoSearchResults.
func (s *PokemonService) SearchPokemon(query engine.Query) ([]models.Record, error) {
	result := s.dataset.Search(query, s.logger)
	if len(result) == 0 {
		return nil, ErrNoSearchResults
	}
	return result, nil
}
