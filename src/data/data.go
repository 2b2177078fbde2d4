// Package data holds the dataset compiled into the binary and the startup banner.
package data

import _ "embed"

// Welcome is logged once when the listener comes up.
const Welcome = "pokeserver ready: GET /pokemon, /pokemon/search, /pokemon-pretty"

// PokemonJSON is the default dataset, used when no data file is configured.
//
//go:embed pokemon.json
var PokemonJSON []byte
