// Package store defines the persistence contract of the import
// pipeline. Every write is an upsert keyed by a natural key, so
// repeated imports and concurrent workers with disjoint slices never
// create duplicates.
package store

import (
	"context"
	"fmt"

	"github.com/gnames/pokedb/pkg/schema"
)

// Entity names a table family that can be counted, looked up by name
// or cleared.
type Entity int

const (
	Types Entity = iota
	Abilities
	Moves
	Items
	Species
	EvolutionChains
	Pokemon
)

var entityNames = []string{
	"types",
	"abilities",
	"moves",
	"items",
	"species",
	"evolution-chains",
	"pokemon",
}

var entityTables = []string{
	schema.Type{}.TableName(),
	schema.Ability{}.TableName(),
	schema.Move{}.TableName(),
	schema.Item{}.TableName(),
	schema.PokemonSpecies{}.TableName(),
	schema.EvolutionChain{}.TableName(),
	schema.Pokemon{}.TableName(),
}

// Entities lists all entities in import order.
func Entities() []Entity {
	return []Entity{
		Types, Abilities, Moves, Items, Species, EvolutionChains, Pokemon,
	}
}

// String returns the command-line name of the entity.
func (e Entity) String() string {
	if e < 0 || int(e) >= len(entityNames) {
		return fmt.Sprintf("Entity(%d)", int(e))
	}
	return entityNames[e]
}

// Table returns the main table of the entity.
func (e Entity) Table() string {
	if e < 0 || int(e) >= len(entityTables) {
		return ""
	}
	return entityTables[e]
}

// ParseEntity converts a command-line name to an Entity.
func ParseEntity(name string) (Entity, bool) {
	for i, n := range entityNames {
		if n == name {
			return Entity(i), true
		}
	}
	return 0, false
}

// Store persists imported entities.
//
// Upsert methods insert or update the row matched by its natural key
// (api_id for entities, composite keys for edges and stats) and set the
// ID of the given record. Sync methods make the membership rows of one
// Pokemon equal to the given set: missing rows are added, rows that
// are not in the set are removed, the rest are updated.
type Store interface {
	UpsertType(ctx context.Context, t *schema.Type) error
	UpsertAbility(ctx context.Context, a *schema.Ability) error
	UpsertItem(ctx context.Context, i *schema.Item) error
	UpsertMove(ctx context.Context, m *schema.Move) error
	UpsertSpecies(ctx context.Context, s *schema.PokemonSpecies) error
	UpsertEvolutionChain(ctx context.Context, c *schema.EvolutionChain) error
	UpsertEvolution(ctx context.Context, e *schema.Evolution) error
	UpsertPokemon(ctx context.Context, p *schema.Pokemon) error
	UpsertPokemonStat(ctx context.Context, s *schema.PokemonStat) error

	// SetSpeciesChain assigns a species to an evolution chain.
	SetSpeciesChain(ctx context.Context, speciesID, chainID int64) error

	SyncPokemonTypes(ctx context.Context, pokemonID int64, rows []schema.PokemonType) error
	SyncPokemonAbilities(ctx context.Context, pokemonID int64, rows []schema.PokemonAbility) error
	SyncPokemonMoves(ctx context.Context, pokemonID int64, rows []schema.PokemonMove) error
	SyncPokemonItems(ctx context.Context, pokemonID int64, rows []schema.PokemonItem) error

	// ReplaceGameIndices deletes all game indices of a Pokemon and
	// inserts the given ones.
	ReplaceGameIndices(ctx context.Context, pokemonID int64, rows []schema.PokemonGameIndex) error

	// FindID returns the internal ID of the entity row with the given
	// name. A missing row is not an error, found is false then.
	FindID(ctx context.Context, e Entity, name string) (id int64, found bool, err error)

	// Count returns the number of rows of the entity main table.
	Count(ctx context.Context, e Entity) (int64, error)

	// Clear deletes all rows of an entity together with the rows that
	// depend on them.
	Clear(ctx context.Context, e Entity) error

	// SaveRun inserts or updates an import run record.
	SaveRun(ctx context.Context, run *schema.ImportRun) error

	// RecentRuns returns the latest n import runs, newest first.
	RecentRuns(ctx context.Context, n int) ([]schema.ImportRun, error)
}
