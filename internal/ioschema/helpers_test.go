package ioschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollationSQL(t *testing.T) {
	tests := []struct {
		col  columnDef
		want string
	}{
		{columnDef{"types", "name", 100},
			`ALTER TABLE "types" ALTER COLUMN "name" TYPE VARCHAR(100) COLLATE "C"`},
		{columnDef{"pokemon_species", "name", 50},
			`ALTER TABLE "pokemon_species" ALTER COLUMN "name" TYPE VARCHAR(50) COLLATE "C"`},
	}

	for _, tt := range tests {
		t.Run(tt.col.table, func(t *testing.T) {
			assert.Equal(t, tt.want, collationSQL(tt.col))
		})
	}
}

func TestCollationColumns(t *testing.T) {
	cols := collationColumns()
	assert.Len(t, cols, 6)
	for _, c := range cols {
		assert.Equal(t, "name", c.column)
		assert.NotEmpty(t, c.table)
	}
}
