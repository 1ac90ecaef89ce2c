// Package iostore implements store.Store on PostgreSQL with GORM.
// Upserts rely on ON CONFLICT over the natural keys declared in
// pkg/schema, membership sets are reconciled inside a transaction.
package iostore

import (
	"context"

	"github.com/gnames/pokedb/pkg/schema"
	"github.com/gnames/pokedb/pkg/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStore struct {
	db *gorm.DB
}

// New creates a Store over a GORM handle.
func New(db *gorm.DB) store.Store {
	return &gormStore{db: db}
}

func columns(names ...string) []clause.Column {
	res := make([]clause.Column, len(names))
	for i, n := range names {
		res[i] = clause.Column{Name: n}
	}
	return res
}

// upsert inserts row or updates all its columns on conflict with keys.
// The ID of the row is filled from RETURNING in both cases.
func upsert[T any](ctx context.Context, db *gorm.DB, row *T, keys ...string) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   columns(keys...),
			UpdateAll: true,
		}).
		Create(row).Error
}

func (g *gormStore) UpsertType(ctx context.Context, t *schema.Type) error {
	if err := upsert(ctx, g.db, t, "api_id"); err != nil {
		return UpsertError(t.TableName(), t.APIID, err)
	}
	return nil
}

func (g *gormStore) UpsertAbility(ctx context.Context, a *schema.Ability) error {
	if err := upsert(ctx, g.db, a, "api_id"); err != nil {
		return UpsertError(a.TableName(), a.APIID, err)
	}
	return nil
}

func (g *gormStore) UpsertItem(ctx context.Context, i *schema.Item) error {
	if err := upsert(ctx, g.db, i, "api_id"); err != nil {
		return UpsertError(i.TableName(), i.APIID, err)
	}
	return nil
}

func (g *gormStore) UpsertMove(ctx context.Context, m *schema.Move) error {
	if err := upsert(ctx, g.db, m, "api_id"); err != nil {
		return UpsertError(m.TableName(), m.APIID, err)
	}
	return nil
}

// UpsertSpecies keeps evolution_chain_id of an existing row, it is
// owned by the evolution chain import.
func (g *gormStore) UpsertSpecies(ctx context.Context, s *schema.PokemonSpecies) error {
	update := []string{
		"name", "base_happiness", "capture_rate", "color", "gender_rate",
		"hatch_counter", "is_baby", "is_legendary", "is_mythical",
		"habitat", "shape", "generation", "updated_at",
	}
	if s.EvolutionChainID != nil {
		update = append(update, "evolution_chain_id")
	}
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   columns("api_id"),
			DoUpdates: clause.AssignmentColumns(update),
		}).
		Create(s).Error
	if err != nil {
		return UpsertError(s.TableName(), s.APIID, err)
	}
	return nil
}

func (g *gormStore) UpsertEvolutionChain(ctx context.Context, c *schema.EvolutionChain) error {
	if err := upsert(ctx, g.db, c, "api_id"); err != nil {
		return UpsertError(c.TableName(), c.APIID, err)
	}
	return nil
}

func (g *gormStore) UpsertEvolution(ctx context.Context, e *schema.Evolution) error {
	err := upsert(ctx, g.db, e,
		"evolution_chain_id", "species_id", "evolves_to_species_id")
	if err != nil {
		return UpsertError(e.TableName(), int(e.EvolvesToSpeciesID), err)
	}
	return nil
}

func (g *gormStore) UpsertPokemon(ctx context.Context, p *schema.Pokemon) error {
	if err := upsert(ctx, g.db, p, "api_id"); err != nil {
		return UpsertError(p.TableName(), p.APIID, err)
	}
	return nil
}

func (g *gormStore) UpsertPokemonStat(ctx context.Context, s *schema.PokemonStat) error {
	if err := upsert(ctx, g.db, s, "pokemon_id", "stat_name"); err != nil {
		return UpsertError(s.TableName(), int(s.PokemonID), err)
	}
	return nil
}

func (g *gormStore) SetSpeciesChain(ctx context.Context, speciesID, chainID int64) error {
	err := g.db.WithContext(ctx).
		Model(&schema.PokemonSpecies{}).
		Where("id = ?", speciesID).
		Update("evolution_chain_id", chainID).Error
	if err != nil {
		return UpsertError(schema.PokemonSpecies{}.TableName(), int(speciesID), err)
	}
	return nil
}

func (g *gormStore) SaveRun(ctx context.Context, run *schema.ImportRun) error {
	if err := upsert(ctx, g.db, run, "id"); err != nil {
		return UpsertError(run.TableName(), 0, err)
	}
	return nil
}

func (g *gormStore) RecentRuns(ctx context.Context, n int) ([]schema.ImportRun, error) {
	var res []schema.ImportRun
	q := g.db.WithContext(ctx).Order("started_at DESC")
	if n > 0 {
		q = q.Limit(n)
	}
	if err := q.Find(&res).Error; err != nil {
		return nil, LookupError(schema.ImportRun{}.TableName(), "", err)
	}
	return res, nil
}
