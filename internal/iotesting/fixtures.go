package iotesting

import (
	"github.com/gnames/pokedb/pkg/pokeapi"
)

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

// English returns an effect entry in English.
func English(effect, short string) pokeapi.EffectEntry {
	return pokeapi.EffectEntry{
		Effect:      effect,
		ShortEffect: short,
		Language:    Ref("language", 9, "en"),
	}
}

// SeedDataset registers a small consistent dataset on the upstream
// mock: 3 types, 2 abilities, 3 moves, 2 items, 3 species, one
// evolution chain bulbasaur -> ivysaur -> venusaur and 2 Pokemon.
func SeedDataset(u *Upstream) {
	for _, t := range []pokeapi.Type{
		{ID: 1, Name: "normal"},
		{ID: 10, Name: "fire"},
		{ID: 12, Name: "grass"},
	} {
		u.Add("type", t.ID, t.Name, t)
	}

	for _, a := range []pokeapi.Ability{
		{
			ID: 65, Name: "overgrow",
			EffectEntries: []pokeapi.EffectEntry{
				English("Powers up grass moves in a pinch.", "Grass boost."),
			},
		},
		{ID: 34, Name: "chlorophyll"},
	} {
		u.Add("ability", a.ID, a.Name, a)
	}

	for _, m := range []pokeapi.Move{
		{
			ID: 33, Name: "tackle", Power: intPtr(40), PP: intPtr(35),
			Accuracy: intPtr(100), Priority: intPtr(0),
			Type:        RefPtr("type", 1, "normal"),
			DamageClass: RefPtr("move-damage-class", 2, "physical"),
		},
		{
			ID: 22, Name: "vine-whip", Power: intPtr(45), PP: intPtr(25),
			Type: RefPtr("type", 12, "grass"),
			Meta: &pokeapi.MoveMeta{
				Ailment:  RefPtr("move-ailment", 0, "none"),
				Category: RefPtr("move-category", 0, "damage"),
				CritRate: intPtr(0),
			},
		},
		{
			ID: 74, Name: "growth", PP: intPtr(20),
			Type:        RefPtr("type", 1, "normal"),
			DamageClass: RefPtr("move-damage-class", 1, "status"),
		},
	} {
		u.Add("move", m.ID, m.Name, m)
	}

	for _, it := range []pokeapi.Item{
		{
			ID: 132, Name: "oran-berry", Cost: intPtr(20),
			Category: RefPtr("item-category", 3, "medicine"),
			Sprites:  &pokeapi.ItemSprites{Default: strPtr("https://img/oran.png")},
		},
		{ID: 1, Name: "master-ball", Cost: intPtr(0)},
	} {
		u.Add("item", it.ID, it.Name, it)
	}

	chain := &pokeapi.APIResource{URL: "https://pokeapi.co/api/v2/evolution-chain/1/"}
	for _, s := range []pokeapi.Species{
		{ID: 1, Name: "bulbasaur", CaptureRate: intPtr(45), EvolutionChain: chain},
		{ID: 2, Name: "ivysaur", CaptureRate: intPtr(45), EvolutionChain: chain},
		{ID: 3, Name: "venusaur", CaptureRate: intPtr(45), EvolutionChain: chain},
	} {
		u.Add("pokemon-species", s.ID, s.Name, s)
	}

	u.Add("evolution-chain", 1, "", pokeapi.EvolutionChain{
		ID: 1,
		Chain: pokeapi.ChainLink{
			Species: Ref("pokemon-species", 1, "bulbasaur"),
			EvolvesTo: []pokeapi.ChainLink{{
				Species: Ref("pokemon-species", 2, "ivysaur"),
				EvolutionDetails: []pokeapi.EvolutionDetail{{
					Trigger:  RefPtr("evolution-trigger", 1, "level-up"),
					MinLevel: intPtr(16),
				}},
				EvolvesTo: []pokeapi.ChainLink{{
					Species: Ref("pokemon-species", 3, "venusaur"),
					EvolutionDetails: []pokeapi.EvolutionDetail{{
						Trigger:  RefPtr("evolution-trigger", 1, "level-up"),
						MinLevel: intPtr(32),
					}},
				}},
			}},
		},
	})

	for _, p := range []pokeapi.Pokemon{
		Bulbasaur(),
		{
			ID: 2, Name: "ivysaur", Height: intPtr(10), Weight: intPtr(130),
			Species: RefPtr("pokemon-species", 2, "ivysaur"),
			Types: []pokeapi.PokemonType{
				{Slot: 1, Type: Ref("type", 12, "grass")},
			},
			Stats: []pokeapi.PokemonStat{
				{BaseStat: 60, Stat: Ref("stat", 1, "hp")},
			},
		},
	} {
		u.Add("pokemon", p.ID, p.Name, p)
	}
}

// Bulbasaur returns the detail record of Pokemon 1 of SeedDataset.
func Bulbasaur() pokeapi.Pokemon {
	return pokeapi.Pokemon{
		ID: 1, Name: "bulbasaur",
		Height: intPtr(7), Weight: intPtr(69), BaseExperience: intPtr(64),
		Species: RefPtr("pokemon-species", 1, "bulbasaur"),
		Sprites: &pokeapi.PokemonSprites{
			FrontDefault: strPtr("https://img/1.png"),
		},
		Cries: &pokeapi.PokemonCries{Latest: strPtr("https://cries/1.ogg")},
		Stats: []pokeapi.PokemonStat{
			{BaseStat: 45, Effort: 0, Stat: Ref("stat", 1, "hp")},
			{BaseStat: 49, Effort: 0, Stat: Ref("stat", 2, "attack")},
		},
		Types: []pokeapi.PokemonType{
			{Slot: 1, Type: Ref("type", 12, "grass")},
			{Slot: 2, Type: Ref("type", 4, "poison")},
		},
		Abilities: []pokeapi.PokemonAbility{
			{Slot: 1, Ability: Ref("ability", 65, "overgrow")},
			{Slot: 3, IsHidden: true, Ability: Ref("ability", 34, "chlorophyll")},
		},
		Moves: []pokeapi.PokemonMove{
			{
				Move: Ref("move", 33, "tackle"),
				VersionGroupDetails: []pokeapi.MoveVersionDetail{
					{
						LevelLearnedAt:  1,
						MoveLearnMethod: Ref("move-learn-method", 1, "level-up"),
					},
					{MoveLearnMethod: Ref("move-learn-method", 4, "machine")},
				},
			},
			{Move: Ref("move", 22, "vine-whip")},
			{
				Move: Ref("move", 33, "tackle"),
				VersionGroupDetails: []pokeapi.MoveVersionDetail{
					{MoveLearnMethod: Ref("move-learn-method", 2, "egg")},
				},
			},
		},
		HeldItems: []pokeapi.PokemonHeldItem{
			{
				Item: Ref("item", 132, "oran-berry"),
				VersionDetails: []pokeapi.ItemVersionDetail{
					{Rarity: 5, Version: Ref("version", 1, "red")},
					{Rarity: 50, Version: Ref("version", 2, "blue")},
				},
			},
			{Item: Ref("item", 1, "master-ball")},
		},
		GameIndices: []pokeapi.GameIndex{
			{GameIndex: 153, Version: Ref("version", 1, "red")},
			{GameIndex: 153, Version: Ref("version", 2, "blue")},
		},
	}
}
