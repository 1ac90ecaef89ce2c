package schema_test

import (
	"sync"
	"testing"

	"github.com/gnames/pokedb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gschema "gorm.io/gorm/schema"
)

type tabler interface {
	TableName() string
}

func TestTableNames(t *testing.T) {
	tests := []struct {
		model tabler
		want  string
	}{
		{schema.Type{}, "types"},
		{schema.Ability{}, "abilities"},
		{schema.Item{}, "items"},
		{schema.Move{}, "moves"},
		{schema.PokemonSpecies{}, "pokemon_species"},
		{schema.EvolutionChain{}, "evolution_chains"},
		{schema.Evolution{}, "evolutions"},
		{schema.Pokemon{}, "pokemon"},
		{schema.PokemonStat{}, "pokemon_stats"},
		{schema.PokemonType{}, "pokemon_types"},
		{schema.PokemonAbility{}, "pokemon_abilities"},
		{schema.PokemonMove{}, "pokemon_moves"},
		{schema.PokemonItem{}, "pokemon_items"},
		{schema.PokemonGameIndex{}, "pokemon_game_indices"},
		{schema.ImportRun{}, "import_runs"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.model.TableName())
		})
	}
}

func TestAllModels(t *testing.T) {
	models := schema.AllModels()
	assert.Len(t, models, 15)

	seen := make(map[string]bool)
	for _, m := range models {
		tm, ok := m.(tabler)
		assert.True(t, ok, "model %T must define TableName", m)
		if !ok {
			continue
		}
		assert.False(t, seen[tm.TableName()],
			"duplicate table %s", tm.TableName())
		seen[tm.TableName()] = true
	}
}

// A false flag must be inserted as false, so these fields carry no
// GORM default.
func TestFlagsWithoutDefault(t *testing.T) {
	tests := []struct {
		model any
		field string
	}{
		{&schema.Pokemon{}, "IsDefault"},
		{&schema.Ability{}, "IsMainSeries"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			s, err := gschema.Parse(tt.model, &sync.Map{}, gschema.NamingStrategy{})
			require.NoError(t, err)
			f := s.LookUpField(tt.field)
			require.NotNil(t, f)
			assert.False(t, f.HasDefaultValue)
			assert.True(t, f.NotNull)
		})
	}
}
