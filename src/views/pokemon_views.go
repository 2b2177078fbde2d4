// Package views renders records as standalone HTML pages.
package views

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"pokeserver/src/models"
)

// ImageBaseURL is where artwork is fetched from, keyed by lower-cased name.
const ImageBaseURL = "http://img.pokemondb.net/artwork/"

var pokemonPage = template.Must(template.New("pokemon").Parse(`
    <html>
    <head>
      <title>{{.Name}}</title>
      <style>
        body {
          background-color: #f2c611;
          font-family: 'Arial', sans-serif;
          color: #2d72d9;
          text-align: center;
        }
        h1 {
          color: #e3350d;
        }
        img {
          border: 5px solid #2d72d9;
          border-radius: 15px;
          margin-bottom: 20px;
        }
        ul {
          list-style-type: none;
          padding: 0;
        }
        li {
          background-color: #fff;
          margin: 5px 0;
          padding: 10px;
          border-radius: 10px;
        }
      </style>
    </head>
    <body>
      <h1>{{.Name}}</h1>
      <img src="{{.ImageURL}}" alt="{{.Name}}">
      <h2>Type:</h2>
      <ul>
        {{range .Types}}<li>{{.}}</li>{{end}}
      </ul>
      <h2>Stats:</h2>
      <ul>
        {{range .Stats}}<li><strong>{{.Key}}:</strong> {{.Value}}</li>{{end}}
      </ul>
      <h2>Damage Multipliers:</h2>
      <ul>
        {{range .Damages}}<li><strong>{{.Key}}:</strong> {{.Value}}</li>{{end}}
      </ul>
      <h2>Miscellaneous:</h2>
      <ul>
        {{range .Misc}}<li><strong>{{.Key}}:</strong> {{.Value}}</li>{{end}}
      </ul>
    </body>
    </html>
  `))

var listPage = template.Must(template.New("list").Parse(`
    <html>
    <head>
      <title>Pokemon List</title>
      <style>
        body {
          background-color: #f8d030;
          font-family: Arial, sans-serif;
          text-align: center;
          color: #003a70; /* Blue for text */
        }
        .pokemon-list {
          list-style-type: none;
          padding: 0;
        }
        .pokemon-list li {
          margin-bottom: 10px;
        }
        .pokemon-link {
          color: #cc0000;
          text-decoration: none;
        }
        .pokemon-link:hover {
          text-decoration: underline;
        }
      </style>
    </head>
    <body>
      <h1>Pokemon List</h1>
      <ul class="pokemon-list">
  {{range $index, $name := .}}<li><a class="pokemon-link" href="/pokemon-pretty/{{$index}}">{{$name}}</a></li>{{end}}</ul></body></html>`))

type pokemonView struct {
	Name     string
	ImageURL string
	Types    []string
	Stats    []entryView
	Damages  []entryView
	Misc     []entryView
}

type entryView struct {
	Key   string
	Value string
}

func newPokemonView(record models.Record) pokemonView {
	name := record.Name()
	return pokemonView{
		Name:     name,
		ImageURL: ImageBaseURL + strings.ToLower(name) + ".jpg",
		Types:    record.Types(),
		Stats:    entryViews(record.Stats()),
		Damages:  entryViews(record.Damages()),
		Misc:     entryViews(record.Misc()),
	}
}

func entryViews(entries []models.MapEntry) []entryView {
	views := make([]entryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, entryView{Key: entry.Key, Value: entry.Value.String()})
	}
	return views
}

// RenderPokemon writes the detail page for one record.
func RenderPokemon(w io.Writer, record models.Record) error {
	if err := pokemonPage.Execute(w, newPokemonView(record)); err != nil {
		return fmt.Errorf("failed to render %q: %w", record.Name(), err)
	}
	return nil
}

// RenderPokemonPages writes one detail page per record, back to back.
func RenderPokemonPages(w io.Writer, records []models.Record) error {
	for _, record := range records {
		if err := RenderPokemon(w, record); err != nil {
			return err
		}
	}
	return nil
}

// RenderPokemonList writes the index page linking every record by position.
func RenderPokemonList(w io.Writer, records []models.Record) error {
	names := make([]string, 0, len(records))
	for _, record := range records {
		names = append(names, record.Name())
	}
	if err := listPage.Execute(w, names); err != nil {
		return fmt.Errorf("failed to render pokemon list: %w", err)
	}
	return nil
}
