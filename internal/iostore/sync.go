package iostore

import (
	"context"

	"github.com/gnames/pokedb/pkg/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// syncMembers makes the rows of one Pokemon in a join table equal to
// rows. Rows whose foreign key (fk) is not in ids are deleted, the rest
// are upserted on (pokemon_id, fk).
func syncMembers[T any](
	ctx context.Context,
	db *gorm.DB,
	pokemonID int64,
	fk string,
	ids []int64,
	rows []T,
) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("pokemon_id = ?", pokemonID)
		if len(ids) > 0 {
			q = q.Where(fk+" NOT IN ?", ids)
		}
		if err := q.Delete(new(T)).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   columns("pokemon_id", fk),
			UpdateAll: true,
		}).Create(&rows).Error
	})
}

func (g *gormStore) SyncPokemonTypes(
	ctx context.Context,
	pokemonID int64,
	rows []schema.PokemonType,
) error {
	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.TypeID
	}
	err := syncMembers(ctx, g.db, pokemonID, "type_id", ids, rows)
	if err != nil {
		return SyncError(schema.PokemonType{}.TableName(), pokemonID, err)
	}
	return nil
}

func (g *gormStore) SyncPokemonAbilities(
	ctx context.Context,
	pokemonID int64,
	rows []schema.PokemonAbility,
) error {
	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.AbilityID
	}
	err := syncMembers(ctx, g.db, pokemonID, "ability_id", ids, rows)
	if err != nil {
		return SyncError(schema.PokemonAbility{}.TableName(), pokemonID, err)
	}
	return nil
}

func (g *gormStore) SyncPokemonMoves(
	ctx context.Context,
	pokemonID int64,
	rows []schema.PokemonMove,
) error {
	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.MoveID
	}
	err := syncMembers(ctx, g.db, pokemonID, "move_id", ids, rows)
	if err != nil {
		return SyncError(schema.PokemonMove{}.TableName(), pokemonID, err)
	}
	return nil
}

func (g *gormStore) SyncPokemonItems(
	ctx context.Context,
	pokemonID int64,
	rows []schema.PokemonItem,
) error {
	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.ItemID
	}
	err := syncMembers(ctx, g.db, pokemonID, "item_id", ids, rows)
	if err != nil {
		return SyncError(schema.PokemonItem{}.TableName(), pokemonID, err)
	}
	return nil
}

// ReplaceGameIndices deletes and recreates game indices of a Pokemon.
func (g *gormStore) ReplaceGameIndices(
	ctx context.Context,
	pokemonID int64,
	rows []schema.PokemonGameIndex,
) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("pokemon_id = ?", pokemonID).
			Delete(&schema.PokemonGameIndex{}).Error
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].ID = 0
			rows[i].PokemonID = pokemonID
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return SyncError(schema.PokemonGameIndex{}.TableName(), pokemonID, err)
	}
	return nil
}
