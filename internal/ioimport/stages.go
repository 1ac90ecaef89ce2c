package ioimport

import (
	"github.com/gnames/pokedb/pkg/store"
)

// Stage describes how one entity kind is imported.
type Stage struct {
	Entity store.Entity

	// Endpoint is the upstream collection, for example "pokemon-species".
	Endpoint string

	// PageSize is used when the configured limit is zero.
	PageSize int

	// TimeoutFactor multiplies the configured worker timeout.
	TimeoutFactor int

	// Requires lists entities that must have rows before the stage
	// can run.
	Requires []store.Entity
}

// Name returns the command-line name of the stage.
func (s Stage) Name() string {
	return s.Entity.String()
}

var stages = []Stage{
	{Entity: store.Types, Endpoint: "type", PageSize: 100, TimeoutFactor: 1},
	{Entity: store.Abilities, Endpoint: "ability", PageSize: 100, TimeoutFactor: 1},
	{
		Entity: store.Moves, Endpoint: "move", PageSize: 100, TimeoutFactor: 1,
		Requires: []store.Entity{store.Types},
	},
	{Entity: store.Items, Endpoint: "item", PageSize: 100, TimeoutFactor: 1},
	{Entity: store.Species, Endpoint: "pokemon-species", PageSize: 100, TimeoutFactor: 1},
	{
		Entity: store.EvolutionChains, Endpoint: "evolution-chain",
		PageSize: 100, TimeoutFactor: 1,
		Requires: []store.Entity{store.Species},
	},
	{
		Entity: store.Pokemon, Endpoint: "pokemon", PageSize: 50, TimeoutFactor: 2,
		Requires: []store.Entity{
			store.Types, store.Abilities, store.Moves, store.Items, store.Species,
		},
	},
}

// Stages returns all stages in dependency order.
func Stages() []Stage {
	res := make([]Stage, len(stages))
	copy(res, stages)
	return res
}

// StageFor returns the stage of an entity.
func StageFor(e store.Entity) (Stage, error) {
	for _, s := range stages {
		if s.Entity == e {
			return s, nil
		}
	}
	return Stage{}, UnknownStageError(e.String())
}

// ParseStage finds a stage by its command-line name.
func ParseStage(name string) (Stage, error) {
	e, ok := store.ParseEntity(name)
	if !ok {
		return Stage{}, UnknownStageError(name)
	}
	return StageFor(e)
}
