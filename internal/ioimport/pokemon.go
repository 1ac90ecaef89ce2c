package ioimport

import (
	"context"

	"github.com/gnames/pokedb/pkg/pokeapi"
	"github.com/gnames/pokedb/pkg/schema"
	"github.com/gnames/pokedb/pkg/store"
)

func (imp *Importer) importPokemon(ctx context.Context, id int) error {
	var rec pokeapi.Pokemon
	if err := imp.fetchDetail(ctx, "pokemon", id, &rec); err != nil {
		return err
	}
	return imp.ImportPokemon(ctx, &rec)
}

// ImportPokemon upserts a Pokemon and reconciles everything it owns:
// stats, type, ability, move and held item memberships, and game
// indices. Each step can be repeated without side effects.
func (imp *Importer) ImportPokemon(ctx context.Context, rec *pokeapi.Pokemon) error {
	row, err := imp.pokemonRow(ctx, rec)
	if err != nil {
		return err
	}
	if err = imp.st.UpsertPokemon(ctx, &row); err != nil {
		return err
	}

	steps := []func(context.Context, int64, *pokeapi.Pokemon) error{
		imp.importStats,
		imp.syncTypes,
		imp.syncAbilities,
		imp.syncMoves,
		imp.syncItems,
		imp.replaceGameIndices,
	}
	for _, step := range steps {
		if err = step(ctx, row.ID, rec); err != nil {
			return err
		}
	}
	return nil
}

func (imp *Importer) pokemonRow(
	ctx context.Context,
	rec *pokeapi.Pokemon,
) (schema.Pokemon, error) {
	speciesID, err := imp.lookup(ctx, store.Species, rec.Species)
	if err != nil {
		return schema.Pokemon{}, err
	}

	res := schema.Pokemon{
		APIID:          rec.ID,
		Name:           rec.Name,
		Height:         rec.Height,
		Weight:         rec.Weight,
		BaseExperience: rec.BaseExperience,
		IsDefault:      true,
		SpeciesID:      speciesID,
	}
	if rec.IsDefault != nil {
		res.IsDefault = *rec.IsDefault
	}
	if s := rec.Sprites; s != nil {
		res.SpriteFrontDefault = s.FrontDefault
		res.SpriteFrontShiny = s.FrontShiny
		res.SpriteBackDefault = s.BackDefault
		res.SpriteBackShiny = s.BackShiny
	}
	if c := rec.Cries; c != nil {
		res.CryLatest = c.Latest
		res.CryLegacy = c.Legacy
	}
	return res, nil
}

func (imp *Importer) importStats(
	ctx context.Context,
	pokemonID int64,
	rec *pokeapi.Pokemon,
) error {
	for _, s := range rec.Stats {
		if s.Stat.Name == "" {
			continue
		}
		row := schema.PokemonStat{
			PokemonID: pokemonID,
			StatName:  s.Stat.Name,
			BaseStat:  s.BaseStat,
			Effort:    s.Effort,
		}
		if err := imp.st.UpsertPokemonStat(ctx, &row); err != nil {
			return err
		}
	}
	return nil
}

func (imp *Importer) syncTypes(
	ctx context.Context,
	pokemonID int64,
	rec *pokeapi.Pokemon,
) error {
	rows := make([]schema.PokemonType, 0, len(rec.Types))
	seen := make(map[int64]bool)
	for _, t := range rec.Types {
		id, err := imp.lookup(ctx, store.Types, &t.Type)
		if err != nil {
			return err
		}
		if id == nil || seen[*id] {
			continue
		}
		seen[*id] = true
		rows = append(rows, schema.PokemonType{
			PokemonID: pokemonID,
			TypeID:    *id,
			Slot:      t.Slot,
		})
	}
	return imp.st.SyncPokemonTypes(ctx, pokemonID, rows)
}

func (imp *Importer) syncAbilities(
	ctx context.Context,
	pokemonID int64,
	rec *pokeapi.Pokemon,
) error {
	rows := make([]schema.PokemonAbility, 0, len(rec.Abilities))
	seen := make(map[int64]bool)
	for _, a := range rec.Abilities {
		id, err := imp.lookup(ctx, store.Abilities, &a.Ability)
		if err != nil {
			return err
		}
		if id == nil || seen[*id] {
			continue
		}
		seen[*id] = true
		rows = append(rows, schema.PokemonAbility{
			PokemonID: pokemonID,
			AbilityID: *id,
			IsHidden:  a.IsHidden,
			Slot:      a.Slot,
		})
	}
	return imp.st.SyncPokemonAbilities(ctx, pokemonID, rows)
}

// syncMoves keeps one row per move with the learn method of its first
// version group.
func (imp *Importer) syncMoves(
	ctx context.Context,
	pokemonID int64,
	rec *pokeapi.Pokemon,
) error {
	rows := make([]schema.PokemonMove, 0, len(rec.Moves))
	seen := make(map[int64]bool)
	for _, m := range rec.Moves {
		id, err := imp.lookup(ctx, store.Moves, &m.Move)
		if err != nil {
			return err
		}
		if id == nil || seen[*id] {
			continue
		}
		seen[*id] = true

		row := schema.PokemonMove{PokemonID: pokemonID, MoveID: *id}
		if len(m.VersionGroupDetails) > 0 {
			d := m.VersionGroupDetails[0]
			row.LearnMethod = pokeapi.NameOf(&d.MoveLearnMethod)
			row.LevelLearnedAt = ptr(d.LevelLearnedAt)
		}
		rows = append(rows, row)
	}
	return imp.st.SyncPokemonMoves(ctx, pokemonID, rows)
}

// syncItems uses the first version detail of every held item, items
// without version details are left out.
func (imp *Importer) syncItems(
	ctx context.Context,
	pokemonID int64,
	rec *pokeapi.Pokemon,
) error {
	rows := make([]schema.PokemonItem, 0, len(rec.HeldItems))
	seen := make(map[int64]bool)
	for _, h := range rec.HeldItems {
		if len(h.VersionDetails) == 0 {
			continue
		}
		id, err := imp.lookup(ctx, store.Items, &h.Item)
		if err != nil {
			return err
		}
		if id == nil || seen[*id] {
			continue
		}
		seen[*id] = true

		d := h.VersionDetails[0]
		rows = append(rows, schema.PokemonItem{
			PokemonID: pokemonID,
			ItemID:    *id,
			Rarity:    ptr(d.Rarity),
			Version:   pokeapi.NameOf(&d.Version),
		})
	}
	return imp.st.SyncPokemonItems(ctx, pokemonID, rows)
}

func (imp *Importer) replaceGameIndices(
	ctx context.Context,
	pokemonID int64,
	rec *pokeapi.Pokemon,
) error {
	rows := make([]schema.PokemonGameIndex, 0, len(rec.GameIndices))
	for _, g := range rec.GameIndices {
		rows = append(rows, schema.PokemonGameIndex{
			PokemonID: pokemonID,
			GameIndex: g.GameIndex,
			Version:   g.Version.Name,
		})
	}
	return imp.st.ReplaceGameIndices(ctx, pokemonID, rows)
}
