// Package schema provides database schema models for pokedb.
// Every entity imported from the upstream API carries APIID, the
// stable external identifier that is used as the reconciliation key.
package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Type is an elemental type (fire, water, ...).
type Type struct {
	ID        int64     `gorm:"primaryKey"`
	APIID     int       `gorm:"column:api_id;uniqueIndex;not null"`
	Name      string    `gorm:"type:varchar(100);index;not null"`
	CreatedAt time.Time `gorm:"type:timestamp without time zone"`
	UpdatedAt time.Time `gorm:"type:timestamp without time zone"`
}

// TableName returns the table name of Type.
func (Type) TableName() string { return "types" }

// Ability is a passive trait a Pokemon can have.
type Ability struct {
	ID           int64     `gorm:"primaryKey"`
	APIID        int       `gorm:"column:api_id;uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(100);index;not null"`
	Effect       *string   `gorm:"type:text"`
	ShortEffect  *string   `gorm:"type:text"`
	IsMainSeries bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"type:timestamp without time zone"`
	UpdatedAt    time.Time `gorm:"type:timestamp without time zone"`
}

// TableName returns the table name of Ability.
func (Ability) TableName() string { return "abilities" }

// Item is an object that can be used or held.
type Item struct {
	ID          int64  `gorm:"primaryKey"`
	APIID       int    `gorm:"column:api_id;uniqueIndex;not null"`
	Name        string `gorm:"type:varchar(100);index;not null"`
	Cost        *int
	FlingPower  *int
	FlingEffect *string   `gorm:"type:varchar(100)"`
	Category    *string   `gorm:"type:varchar(100)"`
	Effect      *string   `gorm:"type:text"`
	ShortEffect *string   `gorm:"type:text"`
	FlavorText  *string   `gorm:"type:text"`
	Sprite      *string   `gorm:"type:varchar(255)"`
	CreatedAt   time.Time `gorm:"type:timestamp without time zone"`
	UpdatedAt   time.Time `gorm:"type:timestamp without time zone"`
}

// TableName returns the table name of Item.
func (Item) TableName() string { return "items" }

// Move is an attack or status move. Numeric attributes are nullable,
// status moves have no power.
type Move struct {
	ID           int64  `gorm:"primaryKey"`
	APIID        int    `gorm:"column:api_id;uniqueIndex;not null"`
	Name         string `gorm:"type:varchar(100);index;not null"`
	Power        *int
	PP           *int `gorm:"column:pp"`
	Accuracy     *int
	Priority     *int
	TypeID       *int64  `gorm:"index"`
	DamageClass  *string `gorm:"type:varchar(50)"`
	EffectChance *int
	ContestType  *string `gorm:"type:varchar(50)"`
	Generation   *string `gorm:"type:varchar(50)"`
	Effect       *string `gorm:"type:text"`
	ShortEffect  *string `gorm:"type:text"`
	FlavorText   *string `gorm:"type:text"`
	Target       *string `gorm:"type:varchar(100)"`

	// Meta fields.
	Ailment       *string `gorm:"type:varchar(50)"`
	MetaCategory  *string `gorm:"type:varchar(50)"`
	MinHits       *int
	MaxHits       *int
	MinTurns      *int
	MaxTurns      *int
	Drain         *int
	Healing       *int
	CritRate      *int
	AilmentChance *int
	FlinchChance  *int
	StatChance    *int

	CreatedAt time.Time `gorm:"type:timestamp without time zone"`
	UpdatedAt time.Time `gorm:"type:timestamp without time zone"`
}

// TableName returns the table name of Move.
func (Move) TableName() string { return "moves" }

// PokemonSpecies groups the forms of one Pokemon.
type PokemonSpecies struct {
	ID               int64  `gorm:"primaryKey"`
	APIID            int    `gorm:"column:api_id;uniqueIndex;not null"`
	Name             string `gorm:"type:varchar(100);index;not null"`
	BaseHappiness    *int
	CaptureRate      *int
	Color            *string `gorm:"type:varchar(50)"`
	GenderRate       *int
	HatchCounter     *int
	IsBaby           bool      `gorm:"not null;default:false"`
	IsLegendary      bool      `gorm:"not null;default:false"`
	IsMythical       bool      `gorm:"not null;default:false"`
	Habitat          *string   `gorm:"type:varchar(50)"`
	Shape            *string   `gorm:"type:varchar(50)"`
	Generation       *string   `gorm:"type:varchar(50)"`
	EvolutionChainID *int64    `gorm:"index"`
	CreatedAt        time.Time `gorm:"type:timestamp without time zone"`
	UpdatedAt        time.Time `gorm:"type:timestamp without time zone"`
}

// TableName returns the table name of PokemonSpecies.
func (PokemonSpecies) TableName() string { return "pokemon_species" }

// EvolutionChain owns species and the evolution edges between them.
type EvolutionChain struct {
	ID              int64     `gorm:"primaryKey"`
	APIID           int       `gorm:"column:api_id;uniqueIndex;not null"`
	BabyTriggerItem *string   `gorm:"type:varchar(100)"`
	CreatedAt       time.Time `gorm:"type:timestamp without time zone"`
	UpdatedAt       time.Time `gorm:"type:timestamp without time zone"`
}

// TableName returns the table name of EvolutionChain.
func (EvolutionChain) TableName() string { return "evolution_chains" }

// Evolution is a directed edge from SpeciesID to EvolvesToSpeciesID
// inside one chain. Edges of a chain form a tree.
type Evolution struct {
	ID                    int64   `gorm:"primaryKey"`
	EvolutionChainID      int64   `gorm:"uniqueIndex:idx_evolution_edge,priority:1;not null"`
	SpeciesID             int64   `gorm:"uniqueIndex:idx_evolution_edge,priority:2;not null"`
	EvolvesToSpeciesID    int64   `gorm:"uniqueIndex:idx_evolution_edge,priority:3;not null"`
	Trigger               *string `gorm:"type:varchar(50)"`
	MinLevel              *int
	Item                  *string `gorm:"type:varchar(100)"`
	HeldItem              *string `gorm:"type:varchar(100)"`
	Gender                *int
	MinHappiness          *int
	MinBeauty             *int
	MinAffection          *int
	Location              *string `gorm:"type:varchar(100)"`
	TimeOfDay             *string `gorm:"type:varchar(20)"`
	KnownMove             *string `gorm:"type:varchar(100)"`
	KnownMoveType         *string `gorm:"type:varchar(50)"`
	PartySpecies          *string `gorm:"type:varchar(100)"`
	PartyType             *string `gorm:"type:varchar(50)"`
	RelativePhysicalStats *int
	NeedsOverworldRain    bool      `gorm:"not null;default:false"`
	TradeSpecies          *string   `gorm:"type:varchar(100)"`
	TurnUpsideDown        bool      `gorm:"not null;default:false"`
	CreatedAt             time.Time `gorm:"type:timestamp without time zone"`
	UpdatedAt             time.Time `gorm:"type:timestamp without time zone"`
}

// TableName returns the table name of Evolution.
func (Evolution) TableName() string { return "evolutions" }

// Pokemon is one concrete form of a species.
type Pokemon struct {
	ID                 int64  `gorm:"primaryKey"`
	APIID              int    `gorm:"column:api_id;uniqueIndex;not null"`
	Name               string `gorm:"type:varchar(100);index;not null"`
	Height             *int
	Weight             *int
	BaseExperience     *int
	IsDefault          bool      `gorm:"not null"`
	SpeciesID          *int64    `gorm:"index"`
	SpriteFrontDefault *string   `gorm:"type:varchar(255)"`
	SpriteFrontShiny   *string   `gorm:"type:varchar(255)"`
	SpriteBackDefault  *string   `gorm:"type:varchar(255)"`
	SpriteBackShiny    *string   `gorm:"type:varchar(255)"`
	CryLatest          *string   `gorm:"type:varchar(255)"`
	CryLegacy          *string   `gorm:"type:varchar(255)"`
	CreatedAt          time.Time `gorm:"type:timestamp without time zone"`
	UpdatedAt          time.Time `gorm:"type:timestamp without time zone"`
}

// TableName returns the table name of Pokemon.
func (Pokemon) TableName() string { return "pokemon" }

// PokemonStat keeps one named base stat of a Pokemon.
type PokemonStat struct {
	ID        int64  `gorm:"primaryKey"`
	PokemonID int64  `gorm:"uniqueIndex:idx_pokemon_stat,priority:1;not null"`
	StatName  string `gorm:"type:varchar(50);uniqueIndex:idx_pokemon_stat,priority:2;not null"`
	BaseStat  int    `gorm:"not null"`
	Effort    int    `gorm:"not null"`
}

// TableName returns the table name of PokemonStat.
func (PokemonStat) TableName() string { return "pokemon_stats" }

// PokemonType is a Pokemon/Type membership ordered by Slot.
type PokemonType struct {
	PokemonID int64 `gorm:"primaryKey;autoIncrement:false"`
	TypeID    int64 `gorm:"primaryKey;autoIncrement:false;index"`
	Slot      int   `gorm:"not null"`
}

// TableName returns the table name of PokemonType.
func (PokemonType) TableName() string { return "pokemon_types" }

// PokemonAbility is a Pokemon/Ability membership.
type PokemonAbility struct {
	PokemonID int64 `gorm:"primaryKey;autoIncrement:false"`
	AbilityID int64 `gorm:"primaryKey;autoIncrement:false;index"`
	IsHidden  bool  `gorm:"not null;default:false"`
	Slot      int   `gorm:"not null"`
}

// TableName returns the table name of PokemonAbility.
func (PokemonAbility) TableName() string { return "pokemon_abilities" }

// PokemonMove is a Pokemon/Move membership with the first reported
// learn method.
type PokemonMove struct {
	PokemonID      int64   `gorm:"primaryKey;autoIncrement:false"`
	MoveID         int64   `gorm:"primaryKey;autoIncrement:false;index"`
	LearnMethod    *string `gorm:"type:varchar(50)"`
	LevelLearnedAt *int
}

// TableName returns the table name of PokemonMove.
func (PokemonMove) TableName() string { return "pokemon_moves" }

// PokemonItem is a held item of a Pokemon from the first reported version.
type PokemonItem struct {
	PokemonID int64 `gorm:"primaryKey;autoIncrement:false"`
	ItemID    int64 `gorm:"primaryKey;autoIncrement:false;index"`
	Rarity    *int
	Version   *string `gorm:"type:varchar(50)"`
}

// TableName returns the table name of PokemonItem.
func (PokemonItem) TableName() string { return "pokemon_items" }

// PokemonGameIndex is the in-game index of a Pokemon in one version.
// Rows are replaced wholesale on every import.
type PokemonGameIndex struct {
	ID        int64  `gorm:"primaryKey"`
	PokemonID int64  `gorm:"index;not null"`
	GameIndex int    `gorm:"not null"`
	Version   string `gorm:"type:varchar(50);not null"`
}

// TableName returns the table name of PokemonGameIndex.
func (PokemonGameIndex) TableName() string { return "pokemon_game_indices" }

// ImportRun records one import command, or one worker of a parallel
// import (ParentID points to the coordinator run).
type ImportRun struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ParentID         *uuid.UUID `gorm:"type:uuid;index"`
	WorkerID         *int
	Status           string `gorm:"type:varchar(20);index;not null"`
	CurrentStep      string `gorm:"type:varchar(50)"`
	CurrentStepIndex int
	TotalSteps       int
	Processed        int
	Total            int
	SuccessCount     int
	ErrorCount       int
	StepDetails      datatypes.JSON
	ErrorMessage     *string    `gorm:"type:text"`
	StartedAt        time.Time  `gorm:"type:timestamp without time zone;index"`
	CompletedAt      *time.Time `gorm:"type:timestamp without time zone"`
}

// TableName returns the table name of ImportRun.
func (ImportRun) TableName() string { return "import_runs" }

// Run statuses.
const (
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
	RunCancelled = "cancelled"
)
