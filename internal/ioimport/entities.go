package ioimport

import (
	"context"

	"github.com/gnames/pokedb/pkg/pokeapi"
	"github.com/gnames/pokedb/pkg/schema"
	"github.com/gnames/pokedb/pkg/store"
)

func (imp *Importer) importType(ctx context.Context, id int) error {
	var rec pokeapi.Type
	if err := imp.fetchDetail(ctx, "type", id, &rec); err != nil {
		return err
	}
	return imp.ImportType(ctx, &rec)
}

// ImportType upserts one type.
func (imp *Importer) ImportType(ctx context.Context, rec *pokeapi.Type) error {
	row := schema.Type{APIID: rec.ID, Name: rec.Name}
	return imp.st.UpsertType(ctx, &row)
}

func (imp *Importer) importAbility(ctx context.Context, id int) error {
	var rec pokeapi.Ability
	if err := imp.fetchDetail(ctx, "ability", id, &rec); err != nil {
		return err
	}
	return imp.ImportAbility(ctx, &rec)
}

// ImportAbility upserts one ability with its effect texts.
func (imp *Importer) ImportAbility(ctx context.Context, rec *pokeapi.Ability) error {
	row := schema.Ability{
		APIID:        rec.ID,
		Name:         rec.Name,
		IsMainSeries: true,
	}
	if rec.IsMainSeries != nil {
		row.IsMainSeries = *rec.IsMainSeries
	}
	row.Effect, row.ShortEffect = effectTexts(rec.EffectEntries, imp.locale())
	return imp.st.UpsertAbility(ctx, &row)
}

func (imp *Importer) importItem(ctx context.Context, id int) error {
	var rec pokeapi.Item
	if err := imp.fetchDetail(ctx, "item", id, &rec); err != nil {
		return err
	}
	return imp.ImportItem(ctx, &rec)
}

// ImportItem upserts one item.
func (imp *Importer) ImportItem(ctx context.Context, rec *pokeapi.Item) error {
	row := schema.Item{
		APIID:       rec.ID,
		Name:        rec.Name,
		Cost:        rec.Cost,
		FlingPower:  rec.FlingPower,
		FlingEffect: pokeapi.NameOf(rec.FlingEffect),
		Category:    pokeapi.NameOf(rec.Category),
		FlavorText:  flavorText(rec.FlavorTextEntries, imp.locale()),
	}
	row.Effect, row.ShortEffect = effectTexts(rec.EffectEntries, imp.locale())
	if rec.Sprites != nil {
		row.Sprite = rec.Sprites.Default
	}
	return imp.st.UpsertItem(ctx, &row)
}

func (imp *Importer) importMove(ctx context.Context, id int) error {
	var rec pokeapi.Move
	if err := imp.fetchDetail(ctx, "move", id, &rec); err != nil {
		return err
	}
	return imp.ImportMove(ctx, &rec)
}

// ImportMove upserts one move. The type reference is resolved by
// name and stays empty if the type is not imported yet.
func (imp *Importer) ImportMove(ctx context.Context, rec *pokeapi.Move) error {
	typeID, err := imp.lookup(ctx, store.Types, rec.Type)
	if err != nil {
		return err
	}

	row := schema.Move{
		APIID:        rec.ID,
		Name:         rec.Name,
		Power:        rec.Power,
		PP:           rec.PP,
		Accuracy:     rec.Accuracy,
		Priority:     rec.Priority,
		TypeID:       typeID,
		DamageClass:  pokeapi.NameOf(rec.DamageClass),
		EffectChance: rec.EffectChance,
		ContestType:  pokeapi.NameOf(rec.ContestType),
		Generation:   pokeapi.NameOf(rec.Generation),
		FlavorText:   flavorText(rec.FlavorTextEntries, imp.locale()),
		Target:       pokeapi.NameOf(rec.Target),
	}
	row.Effect, row.ShortEffect = effectTexts(rec.EffectEntries, imp.locale())

	if m := rec.Meta; m != nil {
		row.Ailment = pokeapi.NameOf(m.Ailment)
		row.MetaCategory = pokeapi.NameOf(m.Category)
		row.MinHits = m.MinHits
		row.MaxHits = m.MaxHits
		row.MinTurns = m.MinTurns
		row.MaxTurns = m.MaxTurns
		row.Drain = m.Drain
		row.Healing = m.Healing
		row.CritRate = m.CritRate
		row.AilmentChance = m.AilmentChance
		row.FlinchChance = m.FlinchChance
		row.StatChance = m.StatChance
	}
	return imp.st.UpsertMove(ctx, &row)
}

func (imp *Importer) importSpecies(ctx context.Context, id int) error {
	var rec pokeapi.Species
	if err := imp.fetchDetail(ctx, "pokemon-species", id, &rec); err != nil {
		return err
	}
	return imp.ImportSpecies(ctx, &rec)
}

// ImportSpecies upserts one species. Chain membership is set by the
// evolution chain import.
func (imp *Importer) ImportSpecies(ctx context.Context, rec *pokeapi.Species) error {
	row := schema.PokemonSpecies{
		APIID:         rec.ID,
		Name:          rec.Name,
		BaseHappiness: rec.BaseHappiness,
		CaptureRate:   rec.CaptureRate,
		Color:         pokeapi.NameOf(rec.Color),
		GenderRate:    rec.GenderRate,
		HatchCounter:  rec.HatchCounter,
		IsBaby:        rec.IsBaby,
		IsLegendary:   rec.IsLegendary,
		IsMythical:    rec.IsMythical,
		Habitat:       pokeapi.NameOf(rec.Habitat),
		Shape:         pokeapi.NameOf(rec.Shape),
		Generation:    pokeapi.NameOf(rec.Generation),
	}
	return imp.st.UpsertSpecies(ctx, &row)
}
