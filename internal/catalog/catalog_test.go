package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	require.Len(t, c.Groups, 4)
	assert.Equal(t, "Kasvohoidot ja meikit", c.Groups[0].Name)

	names := c.Names()
	assert.Len(t, names, 16)
	assert.Contains(t, names, "Kasvohoito")
	assert.Contains(t, names, "Spa-jalkahoito")
	assert.NotContains(t, names, "Hieronta") // group names are not services
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `groups:
  - name: "Hieronta"
    services:
      - name: "Klassinen hieronta (30 min)"
        description: "Hieronta."
        price_eur: 30
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, c.Groups, 1)
	assert.Equal(t, 30, c.Groups[0].Services[0].PriceEUR)
	assert.Contains(t, c.Names(), "Klassinen hieronta (30 min)")
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Len(t, c.Groups, 4)
}
