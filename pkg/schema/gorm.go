package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&Type{},
		&Ability{},
		&Item{},
		&Move{},
		&PokemonSpecies{},
		&EvolutionChain{},
		&Evolution{},
		&Pokemon{},
		&PokemonStat{},
		&PokemonType{},
		&PokemonAbility{},
		&PokemonMove{},
		&PokemonItem{},
		&PokemonGameIndex{},
		&ImportRun{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
