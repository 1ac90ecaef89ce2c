package pokeapi

// Type is the detail record of /type/{id}.
type Type struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Ability is the detail record of /ability/{id}.
type Ability struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	IsMainSeries  *bool         `json:"is_main_series"`
	EffectEntries []EffectEntry `json:"effect_entries"`
}

// ItemSprites holds item image URLs.
type ItemSprites struct {
	Default *string `json:"default"`
}

// Item is the detail record of /item/{id}.
type Item struct {
	ID                int               `json:"id"`
	Name              string            `json:"name"`
	Cost              *int              `json:"cost"`
	FlingPower        *int              `json:"fling_power"`
	FlingEffect       *NamedResource    `json:"fling_effect"`
	Category          *NamedResource    `json:"category"`
	EffectEntries     []EffectEntry     `json:"effect_entries"`
	FlavorTextEntries []FlavorTextEntry `json:"flavor_text_entries"`
	Sprites           *ItemSprites      `json:"sprites"`
}

// MoveMeta holds the battle metadata of a move.
type MoveMeta struct {
	Ailment       *NamedResource `json:"ailment"`
	Category      *NamedResource `json:"category"`
	MinHits       *int           `json:"min_hits"`
	MaxHits       *int           `json:"max_hits"`
	MinTurns      *int           `json:"min_turns"`
	MaxTurns      *int           `json:"max_turns"`
	Drain         *int           `json:"drain"`
	Healing       *int           `json:"healing"`
	CritRate      *int           `json:"crit_rate"`
	AilmentChance *int           `json:"ailment_chance"`
	FlinchChance  *int           `json:"flinch_chance"`
	StatChance    *int           `json:"stat_chance"`
}

// Move is the detail record of /move/{id}.
type Move struct {
	ID                int               `json:"id"`
	Name              string            `json:"name"`
	Power             *int              `json:"power"`
	PP                *int              `json:"pp"`
	Accuracy          *int              `json:"accuracy"`
	Priority          *int              `json:"priority"`
	Type              *NamedResource    `json:"type"`
	DamageClass       *NamedResource    `json:"damage_class"`
	EffectChance      *int              `json:"effect_chance"`
	ContestType       *NamedResource    `json:"contest_type"`
	Generation        *NamedResource    `json:"generation"`
	EffectEntries     []EffectEntry     `json:"effect_entries"`
	FlavorTextEntries []FlavorTextEntry `json:"flavor_text_entries"`
	Target            *NamedResource    `json:"target"`
	Meta              *MoveMeta         `json:"meta"`
}

// Species is the detail record of /pokemon-species/{id}.
type Species struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	BaseHappiness  *int           `json:"base_happiness"`
	CaptureRate    *int           `json:"capture_rate"`
	Color          *NamedResource `json:"color"`
	GenderRate     *int           `json:"gender_rate"`
	HatchCounter   *int           `json:"hatch_counter"`
	IsBaby         bool           `json:"is_baby"`
	IsLegendary    bool           `json:"is_legendary"`
	IsMythical     bool           `json:"is_mythical"`
	Habitat        *NamedResource `json:"habitat"`
	Shape          *NamedResource `json:"shape"`
	Generation     *NamedResource `json:"generation"`
	EvolutionChain *APIResource   `json:"evolution_chain"`
}

// EvolutionDetail lists the conditions of one evolution edge.
type EvolutionDetail struct {
	Trigger               *NamedResource `json:"trigger"`
	MinLevel              *int           `json:"min_level"`
	Item                  *NamedResource `json:"item"`
	HeldItem              *NamedResource `json:"held_item"`
	Gender                *int           `json:"gender"`
	MinHappiness          *int           `json:"min_happiness"`
	MinBeauty             *int           `json:"min_beauty"`
	MinAffection          *int           `json:"min_affection"`
	Location              *NamedResource `json:"location"`
	TimeOfDay             string         `json:"time_of_day"`
	KnownMove             *NamedResource `json:"known_move"`
	KnownMoveType         *NamedResource `json:"known_move_type"`
	PartySpecies          *NamedResource `json:"party_species"`
	PartyType             *NamedResource `json:"party_type"`
	RelativePhysicalStats *int           `json:"relative_physical_stats"`
	NeedsOverworldRain    bool           `json:"needs_overworld_rain"`
	TradeSpecies          *NamedResource `json:"trade_species"`
	TurnUpsideDown        bool           `json:"turn_upside_down"`
}

// ChainLink is a node of an evolution tree.
type ChainLink struct {
	Species          NamedResource     `json:"species"`
	EvolutionDetails []EvolutionDetail `json:"evolution_details"`
	EvolvesTo        []ChainLink       `json:"evolves_to"`
}

// EvolutionChain is the detail record of /evolution-chain/{id}.
type EvolutionChain struct {
	ID              int            `json:"id"`
	BabyTriggerItem *NamedResource `json:"baby_trigger_item"`
	Chain           ChainLink      `json:"chain"`
}

// PokemonSprites holds the four default sprite URLs.
type PokemonSprites struct {
	FrontDefault *string `json:"front_default"`
	FrontShiny   *string `json:"front_shiny"`
	BackDefault  *string `json:"back_default"`
	BackShiny    *string `json:"back_shiny"`
}

// PokemonCries holds cry sound URLs.
type PokemonCries struct {
	Latest *string `json:"latest"`
	Legacy *string `json:"legacy"`
}

// PokemonStat is one base stat of a Pokemon.
type PokemonStat struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// PokemonType is a type slot of a Pokemon.
type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// PokemonAbility is an ability slot of a Pokemon.
type PokemonAbility struct {
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
	Ability  NamedResource `json:"ability"`
}

// MoveVersionDetail tells how a move is learned in a version group.
type MoveVersionDetail struct {
	LevelLearnedAt  int           `json:"level_learned_at"`
	MoveLearnMethod NamedResource `json:"move_learn_method"`
	VersionGroup    NamedResource `json:"version_group"`
}

// PokemonMove is a move a Pokemon can learn.
type PokemonMove struct {
	Move                NamedResource       `json:"move"`
	VersionGroupDetails []MoveVersionDetail `json:"version_group_details"`
}

// ItemVersionDetail gives the rarity of a held item in a version.
type ItemVersionDetail struct {
	Rarity  int           `json:"rarity"`
	Version NamedResource `json:"version"`
}

// PokemonHeldItem is an item a Pokemon may hold in the wild.
type PokemonHeldItem struct {
	Item           NamedResource       `json:"item"`
	VersionDetails []ItemVersionDetail `json:"version_details"`
}

// GameIndex is the in-game index of a Pokemon in one version.
type GameIndex struct {
	GameIndex int           `json:"game_index"`
	Version   NamedResource `json:"version"`
}

// Pokemon is the detail record of /pokemon/{id}.
type Pokemon struct {
	ID             int               `json:"id"`
	Name           string            `json:"name"`
	Height         *int              `json:"height"`
	Weight         *int              `json:"weight"`
	BaseExperience *int              `json:"base_experience"`
	IsDefault      *bool             `json:"is_default"`
	Species        *NamedResource    `json:"species"`
	Sprites        *PokemonSprites   `json:"sprites"`
	Cries          *PokemonCries     `json:"cries"`
	Stats          []PokemonStat     `json:"stats"`
	Types          []PokemonType     `json:"types"`
	Abilities      []PokemonAbility  `json:"abilities"`
	Moves          []PokemonMove     `json:"moves"`
	HeldItems      []PokemonHeldItem `json:"held_items"`
	GameIndices    []GameIndex       `json:"game_indices"`
}
