package iostore

import (
	"context"
	"fmt"

	"github.com/gnames/pokedb/pkg/schema"
	"github.com/gnames/pokedb/pkg/store"
	"gorm.io/gorm"
)

func (g *gormStore) FindID(
	ctx context.Context,
	e store.Entity,
	name string,
) (int64, bool, error) {
	if e == store.EvolutionChains || e.Table() == "" {
		return 0, false, UnknownEntityError(e.String())
	}

	var ids []int64
	err := g.db.WithContext(ctx).
		Table(e.Table()).
		Where("name = ?", name).
		Order("id").
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, false, LookupError(e.Table(), name, err)
	}
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

func (g *gormStore) Count(ctx context.Context, e store.Entity) (int64, error) {
	if e.Table() == "" {
		return 0, UnknownEntityError(e.String())
	}
	var res int64
	err := g.db.WithContext(ctx).Table(e.Table()).Count(&res).Error
	if err != nil {
		return 0, LookupError(e.Table(), "", err)
	}
	return res, nil
}

// clearPlan lists, for every entity, the statements that remove its
// rows together with rows that depend on them.
var clearPlan = map[store.Entity][]string{
	store.Types: {
		"UPDATE moves SET type_id = NULL",
		"DELETE FROM pokemon_types",
		"DELETE FROM types",
	},
	store.Abilities: {
		"DELETE FROM pokemon_abilities",
		"DELETE FROM abilities",
	},
	store.Moves: {
		"DELETE FROM pokemon_moves",
		"DELETE FROM moves",
	},
	store.Items: {
		"DELETE FROM pokemon_items",
		"DELETE FROM items",
	},
	store.Species: {
		"UPDATE pokemon SET species_id = NULL",
		"DELETE FROM evolutions",
		"DELETE FROM pokemon_species",
	},
	store.EvolutionChains: {
		"UPDATE pokemon_species SET evolution_chain_id = NULL",
		"DELETE FROM evolutions",
		"DELETE FROM evolution_chains",
	},
	store.Pokemon: {
		"DELETE FROM pokemon_stats",
		"DELETE FROM pokemon_types",
		"DELETE FROM pokemon_abilities",
		"DELETE FROM pokemon_moves",
		"DELETE FROM pokemon_items",
		"DELETE FROM pokemon_game_indices",
		"DELETE FROM pokemon",
	},
}

func (g *gormStore) Clear(ctx context.Context, e store.Entity) error {
	stmts, ok := clearPlan[e]
	if !ok {
		return UnknownEntityError(e.String())
	}
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range stmts {
			if err := tx.Exec(s).Error; err != nil {
				return fmt.Errorf("%s: %w", s, err)
			}
		}
		return nil
	})
	if err != nil {
		return ClearError(e.String(), err)
	}
	return nil
}

// TableCounts returns row counts of every table managed by pokedb,
// in schema order.
func TableCounts(ctx context.Context, db *gorm.DB) ([]TableCount, error) {
	var res []TableCount
	for _, m := range schema.AllModels() {
		tn, ok := m.(interface{ TableName() string })
		if !ok {
			continue
		}
		var n int64
		err := db.WithContext(ctx).Table(tn.TableName()).Count(&n).Error
		if err != nil {
			return nil, LookupError(tn.TableName(), "", err)
		}
		res = append(res, TableCount{Table: tn.TableName(), Rows: n})
	}
	return res, nil
}

// TableCount is the number of rows in a table.
type TableCount struct {
	Table string
	Rows  int64
}
