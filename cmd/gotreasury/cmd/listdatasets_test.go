package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/gotreasury/internal/generator"
)

func TestListDatasetsCommandStructure(t *testing.T) {
	assert.NotNil(t, listDatasetsCmd)
	assert.Equal(t, "list-datasets", listDatasetsCmd.Use)
	assert.NotEmpty(t, listDatasetsCmd.Short)
	assert.NotEmpty(t, listDatasetsCmd.Long)
	assert.NotNil(t, listDatasetsCmd.RunE)
}

func TestRunListDatasets(t *testing.T) {
	resetFlags(t)
	out := captureOutput(t, listDatasetsCmd)
	cfgFile = writeConfig(t, testConfig)

	require.NoError(t, runListDatasets(listDatasetsCmd, nil))

	output := out.String()
	for _, name := range generator.Names() {
		assert.Contains(t, output, name)
	}
	assert.Contains(t, output, "Enabled:       no (disabled in config)")
	assert.Contains(t, output, "Seed:          1234")
	assert.Contains(t, output, "Days:          10")
	assert.Contains(t, output, "Total: 9 dataset(s)")
}

func TestRunListDatasets_InvalidConfig(t *testing.T) {
	resetFlags(t)
	captureOutput(t, listDatasetsCmd)
	cfgFile = writeConfig(t, "generation:\n  start_date: yesterday\n")

	assert.Error(t, runListDatasets(listDatasetsCmd, nil))
}
