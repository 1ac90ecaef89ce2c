package iotesting

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/gnames/pokedb/pkg/schema"
	"github.com/gnames/pokedb/pkg/store"
	"github.com/google/uuid"
)

type edgeKey struct {
	chain, from, to int64
}

type statKey struct {
	pokemon int64
	name    string
}

// MemStore is an in-memory store.Store with the same natural-key
// semantics as the PostgreSQL store. It is safe for concurrent use.
type MemStore struct {
	mu     sync.Mutex
	nextID int64

	types     map[int]schema.Type
	abilities map[int]schema.Ability
	items     map[int]schema.Item
	moves     map[int]schema.Move
	species   map[int]schema.PokemonSpecies
	chains    map[int]schema.EvolutionChain
	pokemon   map[int]schema.Pokemon

	evolutions map[edgeKey]schema.Evolution
	stats      map[statKey]schema.PokemonStat

	pokemonTypes     map[int64]map[int64]schema.PokemonType
	pokemonAbilities map[int64]map[int64]schema.PokemonAbility
	pokemonMoves     map[int64]map[int64]schema.PokemonMove
	pokemonItems     map[int64]map[int64]schema.PokemonItem
	gameIndices      map[int64][]schema.PokemonGameIndex

	runs map[uuid.UUID]schema.ImportRun
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		types:            make(map[int]schema.Type),
		abilities:        make(map[int]schema.Ability),
		items:            make(map[int]schema.Item),
		moves:            make(map[int]schema.Move),
		species:          make(map[int]schema.PokemonSpecies),
		chains:           make(map[int]schema.EvolutionChain),
		pokemon:          make(map[int]schema.Pokemon),
		evolutions:       make(map[edgeKey]schema.Evolution),
		stats:            make(map[statKey]schema.PokemonStat),
		pokemonTypes:     make(map[int64]map[int64]schema.PokemonType),
		pokemonAbilities: make(map[int64]map[int64]schema.PokemonAbility),
		pokemonMoves:     make(map[int64]map[int64]schema.PokemonMove),
		pokemonItems:     make(map[int64]map[int64]schema.PokemonItem),
		gameIndices:      make(map[int64][]schema.PokemonGameIndex),
		runs:             make(map[uuid.UUID]schema.ImportRun),
	}
}

// upsert stores row under its api id, keeping ID and CreatedAt of an
// existing row.
func upsert[T any](
	m *MemStore,
	rows map[int]T,
	apiID int,
	row *T,
	id func(*T) *int64,
	created func(*T) *time.Time,
) {
	now := time.Now()
	if old, ok := rows[apiID]; ok {
		*id(row) = *id(&old)
		*created(row) = *created(&old)
	} else {
		m.nextID++
		*id(row) = m.nextID
		*created(row) = now
	}
	rows[apiID] = *row
}

func (m *MemStore) UpsertType(_ context.Context, t *schema.Type) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.UpdatedAt = time.Now()
	upsert(m, m.types, t.APIID, t,
		func(r *schema.Type) *int64 { return &r.ID },
		func(r *schema.Type) *time.Time { return &r.CreatedAt })
	return nil
}

func (m *MemStore) UpsertAbility(_ context.Context, a *schema.Ability) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.UpdatedAt = time.Now()
	upsert(m, m.abilities, a.APIID, a,
		func(r *schema.Ability) *int64 { return &r.ID },
		func(r *schema.Ability) *time.Time { return &r.CreatedAt })
	return nil
}

func (m *MemStore) UpsertItem(_ context.Context, i *schema.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i.UpdatedAt = time.Now()
	upsert(m, m.items, i.APIID, i,
		func(r *schema.Item) *int64 { return &r.ID },
		func(r *schema.Item) *time.Time { return &r.CreatedAt })
	return nil
}

func (m *MemStore) UpsertMove(_ context.Context, mv *schema.Move) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mv.UpdatedAt = time.Now()
	upsert(m, m.moves, mv.APIID, mv,
		func(r *schema.Move) *int64 { return &r.ID },
		func(r *schema.Move) *time.Time { return &r.CreatedAt })
	return nil
}

func (m *MemStore) UpsertSpecies(_ context.Context, s *schema.PokemonSpecies) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.species[s.APIID]; ok && s.EvolutionChainID == nil {
		s.EvolutionChainID = old.EvolutionChainID
	}
	s.UpdatedAt = time.Now()
	upsert(m, m.species, s.APIID, s,
		func(r *schema.PokemonSpecies) *int64 { return &r.ID },
		func(r *schema.PokemonSpecies) *time.Time { return &r.CreatedAt })
	return nil
}

func (m *MemStore) UpsertEvolutionChain(_ context.Context, c *schema.EvolutionChain) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.UpdatedAt = time.Now()
	upsert(m, m.chains, c.APIID, c,
		func(r *schema.EvolutionChain) *int64 { return &r.ID },
		func(r *schema.EvolutionChain) *time.Time { return &r.CreatedAt })
	return nil
}

func (m *MemStore) UpsertEvolution(_ context.Context, e *schema.Evolution) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := edgeKey{e.EvolutionChainID, e.SpeciesID, e.EvolvesToSpeciesID}
	now := time.Now()
	if old, ok := m.evolutions[key]; ok {
		e.ID = old.ID
		e.CreatedAt = old.CreatedAt
	} else {
		m.nextID++
		e.ID = m.nextID
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	m.evolutions[key] = *e
	return nil
}

func (m *MemStore) UpsertPokemon(_ context.Context, p *schema.Pokemon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.UpdatedAt = time.Now()
	upsert(m, m.pokemon, p.APIID, p,
		func(r *schema.Pokemon) *int64 { return &r.ID },
		func(r *schema.Pokemon) *time.Time { return &r.CreatedAt })
	return nil
}

func (m *MemStore) UpsertPokemonStat(_ context.Context, s *schema.PokemonStat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := statKey{s.PokemonID, s.StatName}
	if old, ok := m.stats[key]; ok {
		s.ID = old.ID
	} else {
		m.nextID++
		s.ID = m.nextID
	}
	m.stats[key] = *s
	return nil
}

func (m *MemStore) SetSpeciesChain(_ context.Context, speciesID, chainID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, s := range m.species {
		if s.ID == speciesID {
			s.EvolutionChainID = &chainID
			m.species[k] = s
			return nil
		}
	}
	return nil
}

func syncRows[T any](
	all map[int64]map[int64]T,
	pokemonID int64,
	rows []T,
	key func(T) int64,
) {
	set := make(map[int64]T, len(rows))
	for _, r := range rows {
		set[key(r)] = r
	}
	all[pokemonID] = set
}

func (m *MemStore) SyncPokemonTypes(_ context.Context, pokemonID int64, rows []schema.PokemonType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	syncRows(m.pokemonTypes, pokemonID, rows,
		func(r schema.PokemonType) int64 { return r.TypeID })
	return nil
}

func (m *MemStore) SyncPokemonAbilities(_ context.Context, pokemonID int64, rows []schema.PokemonAbility) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	syncRows(m.pokemonAbilities, pokemonID, rows,
		func(r schema.PokemonAbility) int64 { return r.AbilityID })
	return nil
}

func (m *MemStore) SyncPokemonMoves(_ context.Context, pokemonID int64, rows []schema.PokemonMove) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	syncRows(m.pokemonMoves, pokemonID, rows,
		func(r schema.PokemonMove) int64 { return r.MoveID })
	return nil
}

func (m *MemStore) SyncPokemonItems(_ context.Context, pokemonID int64, rows []schema.PokemonItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	syncRows(m.pokemonItems, pokemonID, rows,
		func(r schema.PokemonItem) int64 { return r.ItemID })
	return nil
}

func (m *MemStore) ReplaceGameIndices(_ context.Context, pokemonID int64, rows []schema.PokemonGameIndex) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]schema.PokemonGameIndex, len(rows))
	for i, r := range rows {
		m.nextID++
		r.ID = m.nextID
		r.PokemonID = pokemonID
		res[i] = r
	}
	m.gameIndices[pokemonID] = res
	return nil
}

func findByName[T any](rows map[int]T, name string, get func(T) (int64, string)) (int64, bool) {
	for _, r := range rows {
		id, n := get(r)
		if n == name {
			return id, true
		}
	}
	return 0, false
}

func (m *MemStore) FindID(_ context.Context, e store.Entity, name string) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var id int64
	var ok bool
	switch e {
	case store.Types:
		id, ok = findByName(m.types, name,
			func(r schema.Type) (int64, string) { return r.ID, r.Name })
	case store.Abilities:
		id, ok = findByName(m.abilities, name,
			func(r schema.Ability) (int64, string) { return r.ID, r.Name })
	case store.Items:
		id, ok = findByName(m.items, name,
			func(r schema.Item) (int64, string) { return r.ID, r.Name })
	case store.Moves:
		id, ok = findByName(m.moves, name,
			func(r schema.Move) (int64, string) { return r.ID, r.Name })
	case store.Species:
		id, ok = findByName(m.species, name,
			func(r schema.PokemonSpecies) (int64, string) { return r.ID, r.Name })
	case store.Pokemon:
		id, ok = findByName(m.pokemon, name,
			func(r schema.Pokemon) (int64, string) { return r.ID, r.Name })
	default:
		return 0, false, fmt.Errorf("entity %s cannot be found by name", e)
	}
	return id, ok, nil
}

func (m *MemStore) Count(_ context.Context, e store.Entity) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch e {
	case store.Types:
		return int64(len(m.types)), nil
	case store.Abilities:
		return int64(len(m.abilities)), nil
	case store.Moves:
		return int64(len(m.moves)), nil
	case store.Items:
		return int64(len(m.items)), nil
	case store.Species:
		return int64(len(m.species)), nil
	case store.EvolutionChains:
		return int64(len(m.chains)), nil
	case store.Pokemon:
		return int64(len(m.pokemon)), nil
	}
	return 0, fmt.Errorf("unknown entity %s", e)
}

func (m *MemStore) Clear(_ context.Context, e store.Entity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch e {
	case store.Types:
		clear(m.types)
	case store.Abilities:
		clear(m.abilities)
		clear(m.pokemonAbilities)
	case store.Moves:
		clear(m.moves)
		clear(m.pokemonMoves)
	case store.Items:
		clear(m.items)
		clear(m.pokemonItems)
	case store.Species:
		clear(m.species)
		clear(m.evolutions)
	case store.EvolutionChains:
		clear(m.chains)
		clear(m.evolutions)
		for k, s := range m.species {
			s.EvolutionChainID = nil
			m.species[k] = s
		}
	case store.Pokemon:
		clear(m.pokemon)
		clear(m.stats)
		clear(m.pokemonTypes)
		clear(m.pokemonAbilities)
		clear(m.pokemonMoves)
		clear(m.pokemonItems)
		clear(m.gameIndices)
	default:
		return fmt.Errorf("unknown entity %s", e)
	}
	if e == store.Types {
		clear(m.pokemonTypes)
		for k, mv := range m.moves {
			mv.TypeID = nil
			m.moves[k] = mv
		}
	}
	return nil
}

func (m *MemStore) SaveRun(_ context.Context, run *schema.ImportRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = *run
	return nil
}

func (m *MemStore) RecentRuns(_ context.Context, n int) ([]schema.ImportRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]schema.ImportRun, 0, len(m.runs))
	for _, r := range m.runs {
		res = append(res, r)
	}
	slices.SortFunc(res, func(a, b schema.ImportRun) int {
		return b.StartedAt.Compare(a.StartedAt)
	})
	if n > 0 && len(res) > n {
		res = res[:n]
	}
	return res, nil
}

func sortedValues[T any](rows map[int]T) []T {
	keys := make([]int, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	res := make([]T, len(keys))
	for i, k := range keys {
		res[i] = rows[k]
	}
	return res
}

// Types returns all types ordered by api id.
func (m *MemStore) Types() []schema.Type {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedValues(m.types)
}

// Abilities returns all abilities ordered by api id.
func (m *MemStore) Abilities() []schema.Ability {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedValues(m.abilities)
}

// Items returns all items ordered by api id.
func (m *MemStore) Items() []schema.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedValues(m.items)
}

// Moves returns all moves ordered by api id.
func (m *MemStore) Moves() []schema.Move {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedValues(m.moves)
}

// Species returns all species ordered by api id.
func (m *MemStore) Species() []schema.PokemonSpecies {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedValues(m.species)
}

// Chains returns all evolution chains ordered by api id.
func (m *MemStore) Chains() []schema.EvolutionChain {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedValues(m.chains)
}

// Pokemon returns all Pokemon ordered by api id.
func (m *MemStore) Pokemon() []schema.Pokemon {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedValues(m.pokemon)
}

// Evolutions returns all evolution edges.
func (m *MemStore) Evolutions() []schema.Evolution {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]schema.Evolution, 0, len(m.evolutions))
	for _, e := range m.evolutions {
		res = append(res, e)
	}
	slices.SortFunc(res, func(a, b schema.Evolution) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return res
}

// Stats returns the stats of a Pokemon ordered by name.
func (m *MemStore) Stats(pokemonID int64) []schema.PokemonStat {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []schema.PokemonStat
	for k, s := range m.stats {
		if k.pokemon == pokemonID {
			res = append(res, s)
		}
	}
	slices.SortFunc(res, func(a, b schema.PokemonStat) int {
		return cmp.Compare(a.StatName, b.StatName)
	})
	return res
}

func members[T any](all map[int64]map[int64]T, pokemonID int64) []T {
	set := all[pokemonID]
	keys := make([]int64, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	res := make([]T, len(keys))
	for i, k := range keys {
		res[i] = set[k]
	}
	return res
}

// PokemonTypes returns type memberships of a Pokemon ordered by type id.
func (m *MemStore) PokemonTypes(pokemonID int64) []schema.PokemonType {
	m.mu.Lock()
	defer m.mu.Unlock()
	return members(m.pokemonTypes, pokemonID)
}

// PokemonAbilities returns ability memberships of a Pokemon.
func (m *MemStore) PokemonAbilities(pokemonID int64) []schema.PokemonAbility {
	m.mu.Lock()
	defer m.mu.Unlock()
	return members(m.pokemonAbilities, pokemonID)
}

// PokemonMoves returns move memberships of a Pokemon.
func (m *MemStore) PokemonMoves(pokemonID int64) []schema.PokemonMove {
	m.mu.Lock()
	defer m.mu.Unlock()
	return members(m.pokemonMoves, pokemonID)
}

// PokemonItems returns held item memberships of a Pokemon.
func (m *MemStore) PokemonItems(pokemonID int64) []schema.PokemonItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return members(m.pokemonItems, pokemonID)
}

// GameIndices returns the game indices of a Pokemon.
func (m *MemStore) GameIndices(pokemonID int64) []schema.PokemonGameIndex {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.gameIndices[pokemonID])
}

// RowCounts returns the number of rows per table.
func (m *MemStore) RowCounts() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := map[string]int{
		"types":            len(m.types),
		"abilities":        len(m.abilities),
		"items":            len(m.items),
		"moves":            len(m.moves),
		"pokemon_species":  len(m.species),
		"evolution_chains": len(m.chains),
		"evolutions":       len(m.evolutions),
		"pokemon":          len(m.pokemon),
		"pokemon_stats":    len(m.stats),
	}
	for _, set := range m.pokemonTypes {
		res["pokemon_types"] += len(set)
	}
	for _, set := range m.pokemonAbilities {
		res["pokemon_abilities"] += len(set)
	}
	for _, set := range m.pokemonMoves {
		res["pokemon_moves"] += len(set)
	}
	for _, set := range m.pokemonItems {
		res["pokemon_items"] += len(set)
	}
	for _, rows := range m.gameIndices {
		res["pokemon_game_indices"] += len(rows)
	}
	return res
}

// Runs returns all saved import runs.
func (m *MemStore) Runs() []schema.ImportRun {
	runs, _ := m.RecentRuns(context.Background(), 0)
	return runs
}
