package cmd

import (
	"bytes"
	"testing"

	"github.com/gnames/pokedb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintConfig(t *testing.T) {
	c := config.New()
	c.Update([]config.Option{
		config.OptDatabasePassword("s3cret"),
		config.OptRedisPassword("r3dis"),
		config.OptImportThreads(3),
	})

	tests := []struct {
		msg         string
		showSecrets bool
		hidden      bool
	}{
		{"masked", false, true},
		{"shown", true, false},
	}

	for _, v := range tests {
		var buf bytes.Buffer
		require.NoError(t, printConfig(&buf, c, v.showSecrets), v.msg)
		out := buf.String()
		assert.Contains(t, out, "threads: 3", v.msg)
		assert.Contains(t, out, "config.yaml", v.msg)
		if v.hidden {
			assert.NotContains(t, out, "s3cret", v.msg)
			assert.NotContains(t, out, "r3dis", v.msg)
			assert.Contains(t, out, "****", v.msg)
		} else {
			assert.Contains(t, out, "s3cret", v.msg)
		}
	}
	assert.Equal(t, "s3cret", c.Database.Password,
		"configuration is not changed")
}
