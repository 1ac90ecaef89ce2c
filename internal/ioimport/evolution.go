package ioimport

import (
	"context"
	"log/slog"

	"github.com/gnames/pokedb/pkg/pokeapi"
	"github.com/gnames/pokedb/pkg/schema"
	"github.com/gnames/pokedb/pkg/store"
)

func (imp *Importer) importEvolutionChain(ctx context.Context, id int) error {
	var rec pokeapi.EvolutionChain
	if err := imp.fetchDetail(ctx, "evolution-chain", id, &rec); err != nil {
		return err
	}
	return imp.ImportEvolutionChain(ctx, &rec)
}

// ImportEvolutionChain upserts a chain, assigns its species to it and
// creates an edge for every parent/child pair of the tree.
func (imp *Importer) ImportEvolutionChain(
	ctx context.Context,
	rec *pokeapi.EvolutionChain,
) error {
	chain := schema.EvolutionChain{
		APIID:           rec.ID,
		BabyTriggerItem: pokeapi.NameOf(rec.BabyTriggerItem),
	}
	if err := imp.st.UpsertEvolutionChain(ctx, &chain); err != nil {
		return err
	}
	return imp.walkChain(ctx, chain.ID, &rec.Chain, nil)
}

// walkChain visits link and its descendants. A species that is not
// imported ends its branch.
func (imp *Importer) walkChain(
	ctx context.Context,
	chainID int64,
	link *pokeapi.ChainLink,
	parentID *int64,
) error {
	speciesID, ok, err := imp.st.FindID(ctx, store.Species, link.Species.Name)
	if err != nil {
		return err
	}
	if !ok {
		slog.Debug("Species of evolution chain is not imported",
			"chain_id", chainID,
			"species", link.Species.Name,
		)
		return nil
	}

	if err = imp.st.SetSpeciesChain(ctx, speciesID, chainID); err != nil {
		return err
	}

	if parentID != nil {
		edge := newEvolution(chainID, *parentID, speciesID, link.EvolutionDetails)
		if err = imp.st.UpsertEvolution(ctx, &edge); err != nil {
			return err
		}
	}

	for i := range link.EvolvesTo {
		if err = imp.walkChain(ctx, chainID, &link.EvolvesTo[i], &speciesID); err != nil {
			return err
		}
	}
	return nil
}

// newEvolution builds an edge from the first evolution detail. An edge
// without details keeps only its endpoints.
func newEvolution(
	chainID, fromID, toID int64,
	details []pokeapi.EvolutionDetail,
) schema.Evolution {
	res := schema.Evolution{
		EvolutionChainID:   chainID,
		SpeciesID:          fromID,
		EvolvesToSpeciesID: toID,
	}
	if len(details) == 0 {
		return res
	}

	d := details[0]
	res.Trigger = pokeapi.NameOf(d.Trigger)
	res.MinLevel = d.MinLevel
	res.Item = pokeapi.NameOf(d.Item)
	res.HeldItem = pokeapi.NameOf(d.HeldItem)
	res.Gender = d.Gender
	res.MinHappiness = d.MinHappiness
	res.MinBeauty = d.MinBeauty
	res.MinAffection = d.MinAffection
	res.Location = pokeapi.NameOf(d.Location)
	if d.TimeOfDay != "" {
		res.TimeOfDay = ptr(d.TimeOfDay)
	}
	res.KnownMove = pokeapi.NameOf(d.KnownMove)
	res.KnownMoveType = pokeapi.NameOf(d.KnownMoveType)
	res.PartySpecies = pokeapi.NameOf(d.PartySpecies)
	res.PartyType = pokeapi.NameOf(d.PartyType)
	res.RelativePhysicalStats = d.RelativePhysicalStats
	res.NeedsOverworldRain = d.NeedsOverworldRain
	res.TradeSpecies = pokeapi.NameOf(d.TradeSpecies)
	res.TurnUpsideDown = d.TurnUpsideDown
	return res
}
