package ioschema

import (
	"github.com/gnames/pokedb/pkg/schema"
)

type columnDef struct {
	table, column string
	varchar       int
}

// collationColumns lists the name columns that are looked up and
// sorted by name.
func collationColumns() []columnDef {
	return []columnDef{
		{schema.Type{}.TableName(), "name", 100},
		{schema.Ability{}.TableName(), "name", 100},
		{schema.Item{}.TableName(), "name", 100},
		{schema.Move{}.TableName(), "name", 100},
		{schema.PokemonSpecies{}.TableName(), "name", 100},
		{schema.Pokemon{}.TableName(), "name", 100},
	}
}
