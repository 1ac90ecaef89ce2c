// Package ioimport copies upstream resources into the store. Every
// entity kind has an importer that maps one detail record onto the
// relational schema, and all of them share the same page walker.
package ioimport

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gnames/gnlib"
	"github.com/gnames/pokedb/pkg/config"
	"github.com/gnames/pokedb/pkg/pokeapi"
	"github.com/gnames/pokedb/pkg/store"
)

// Source is the part of the upstream client the importers need.
type Source interface {
	Fetch(ctx context.Context, path string, out any) error
	FetchPage(ctx context.Context, endpoint string, limit, offset int) (*pokeapi.Page, error)
	Count(ctx context.Context, endpoint string) (int, error)
}

// Importer runs import stages against one source and one store.
type Importer struct {
	cfg config.ImportConfig
	src Source
	st  store.Store
}

// New creates an Importer.
func New(cfg config.ImportConfig, src Source, st store.Store) *Importer {
	return &Importer{cfg: cfg, src: src, st: st}
}

func (imp *Importer) delay() time.Duration {
	return time.Duration(imp.cfg.Delay) * time.Millisecond
}

func (imp *Importer) locale() string {
	if imp.cfg.Locale == "" {
		return "en"
	}
	return imp.cfg.Locale
}

// fetchDetail loads the detail record of endpoint/id into out.
func (imp *Importer) fetchDetail(
	ctx context.Context,
	endpoint string,
	id int,
	out any,
) error {
	return imp.src.Fetch(ctx, fmt.Sprintf("%s/%d", endpoint, id), out)
}

// lookup resolves a reference by name against already imported rows.
// A missing reference is not an error, it gives nil.
func (imp *Importer) lookup(
	ctx context.Context,
	e store.Entity,
	ref *pokeapi.NamedResource,
) (*int64, error) {
	if ref == nil || ref.Name == "" {
		return nil, nil
	}
	id, ok, err := imp.st.FindID(ctx, e, ref.Name)
	if err != nil {
		return nil, err
	}
	if !ok {
		slog.Debug("Unresolved reference", "entity", e.String(), "name", ref.Name)
		return nil, nil
	}
	return &id, nil
}

// cleanText repairs broken UTF-8 and collapses the hard line breaks
// and form feeds of game texts into single spaces.
func cleanText(s string) *string {
	s = gnlib.FixUtf8(s)
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return nil
	}
	return &s
}

func effectTexts(entries []pokeapi.EffectEntry, locale string) (effect, short *string) {
	e := pokeapi.SelectLocale(entries, locale)
	if e == nil {
		return nil, nil
	}
	return cleanText(e.Effect), cleanText(e.ShortEffect)
}

func flavorText(entries []pokeapi.FlavorTextEntry, locale string) *string {
	e := pokeapi.SelectLocale(entries, locale)
	if e == nil {
		return nil
	}
	return cleanText(e.Value())
}

func ptr[T any](v T) *T {
	return &v
}
