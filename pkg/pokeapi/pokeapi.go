// Package pokeapi describes resources served by a PokeAPI-compatible
// REST API. It contains only data shapes and pure helpers, requests
// are made by internal/iosource.
package pokeapi

import (
	"fmt"
	"regexp"
	"strconv"
)

// NamedResource is a reference to another resource.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// APIResource is a reference to an unnamed resource.
type APIResource struct {
	URL string `json:"url"`
}

// Page is the envelope of a collection endpoint.
type Page struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}

// NameOf returns the name of an optional reference, or nil.
func NameOf(r *NamedResource) *string {
	if r == nil || r.Name == "" {
		return nil
	}
	name := r.Name
	return &name
}

var idRe = regexp.MustCompile(`/(\d+)/$`)

// MalformedURLError is returned when a resource URL does not end with
// a numeric id segment.
type MalformedURLError struct {
	URL string
}

func (e *MalformedURLError) Error() string {
	return fmt.Sprintf("no trailing numeric id in resource URL %q", e.URL)
}

// ExtractID returns the numeric id embedded as the last path segment
// of a canonical resource URL, for example
// "https://pokeapi.co/api/v2/type/10/" gives 10.
func ExtractID(resourceURL string) (int, error) {
	m := idRe.FindStringSubmatch(resourceURL)
	if m == nil {
		return 0, &MalformedURLError{URL: resourceURL}
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, &MalformedURLError{URL: resourceURL}
	}
	return id, nil
}
