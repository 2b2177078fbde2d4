package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"pokeserver/src/directors"
	"pokeserver/src/engine"
	"pokeserver/src/views"
)

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"

	msgNoSearchResults = "Sorry, no pokemon found matching your search criteria"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{verb}/{adjective}/{noun}", s.handleProjectName)

	mux.HandleFunc("GET /bugs", s.handleBugs)
	mux.HandleFunc("GET /bugs/{numberOfBugs}", s.handleBugCount)

	mux.HandleFunc("GET /pokemon", s.handleListPokemon)
	mux.HandleFunc("GET /pokemon/search", s.handleSearchPokemon)
	mux.HandleFunc("GET /pokemon/{indexOfArray}", s.handleGetPokemon)

	mux.HandleFunc("GET /pokemon-pretty", s.handlePrettyList)
	mux.HandleFunc("GET /pokemon-pretty/search", s.handlePrettySearch)
	mux.HandleFunc("GET /pokemon-pretty/{indexOfArray}", s.handlePrettyPokemon)

	mux.HandleFunc("/", s.handleNotFound)

	return mux
}

func (s *Server) handleProjectName(w http.ResponseWriter, r *http.Request) {
	message := directors.ProjectName(r.PathValue("verb"), r.PathValue("adjective"), r.PathValue("noun"))
	writeText(w, http.StatusOK, message)
}

func (s *Server) handleBugs(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, http.StatusOK, directors.BugCountMessage(directors.DefaultBugCount))
}

func (s *Server) handleBugCount(w http.ResponseWriter, r *http.Request) {
	count := directors.ParseBugCount(r.PathValue("numberOfBugs"))
	writeHTML(w, http.StatusOK, directors.BugCountMessage(count))
}

func (s *Server) handleListPokemon(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.services.PokemonService.ListPokemon())
}

func (s *Server) handleSearchPokemon(w http.ResponseWriter, r *http.Request) {
	result, err := s.services.PokemonService.SearchPokemon(queryFromValues(r.URL.Query()))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetPokemon(w http.ResponseWriter, r *http.Request) {
	record, err := s.services.PokemonService.GetPokemon(r.PathValue("indexOfArray"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) handlePrettyList(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := views.RenderPokemonList(&buf, s.services.PokemonService.ListPokemon()); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.String())
}

func (s *Server) handlePrettySearch(w http.ResponseWriter, r *http.Request) {
	result, err := s.services.PokemonService.SearchPokemon(queryFromValues(r.URL.Query()))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := views.RenderPokemonPages(&buf, result); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.String())
}

func (s *Server) handlePrettyPokemon(w http.ResponseWriter, r *http.Request) {
	record, err := s.services.PokemonService.GetPokemon(r.PathValue("indexOfArray"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := views.RenderPokemon(&buf, record); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.String())
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusNotFound, fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path))
}

// queryFromValues flattens the query string; a repeated key keeps its first value.
func queryFromValues(values url.Values) engine.Query {
	query := make(engine.Query, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			query[key] = vals[0]
		}
	}
	return query
}

// writeServiceError maps director errors onto HTTP responses.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, directors.ErrNoSearchResults):
		writeText(w, http.StatusNotFound, msgNoSearchResults)
	case errors.Is(err, directors.ErrPokemonNotFound):
		writeText(w, http.StatusNotFound, fmt.Sprintf("Sorry, no pokemon found at %s", r.URL.Path))
	default:
		s.logger.Errorw("Request failed", "path", r.URL.Path, "error", err)
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Errorw("Error encoding response", "error", err)
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", contentTypeText)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

func writeHTML(w http.ResponseWriter, status int, page string) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(page))
}
