package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCommandStructure(t *testing.T) {
	assert.NotNil(t, generateCmd)
	assert.Equal(t, "generate", generateCmd.Use)
	assert.NotEmpty(t, generateCmd.Short)
	assert.NotEmpty(t, generateCmd.Long)
	assert.NotNil(t, generateCmd.RunE)

	flag := generateCmd.Flags().Lookup("dataset")
	require.NotNil(t, flag)
	assert.Equal(t, "all", flag.DefValue)
}

func TestRunGenerate_CSV(t *testing.T) {
	resetFlags(t)
	out := captureOutput(t, generateCmd)

	outputDir = t.TempDir()
	logLevel = "error"
	generateDatasetName = "fx_rates"
	days = 7

	require.NoError(t, runGenerate(generateCmd, nil))

	data, err := os.ReadFile(filepath.Join(outputDir, "fx_rates.csv"))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Contains(t, out.String(), "fx_rates")
	assert.Contains(t, out.String(), "written as csv")
}

func TestRunGenerate_AllJSON(t *testing.T) {
	resetFlags(t)
	captureOutput(t, generateCmd)

	outputDir = t.TempDir()
	outputFormat = "json"
	logLevel = "error"
	generateDatasetName = "all"
	days = 5
	count = 5

	require.NoError(t, runGenerate(generateCmd, nil))

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(entries), 9)
	for _, e := range entries {
		assert.Equal(t, ".json", filepath.Ext(e.Name()))
	}
}

func TestRunGenerate_UnknownDataset(t *testing.T) {
	resetFlags(t)
	captureOutput(t, generateCmd)

	outputDir = t.TempDir()
	generateDatasetName = "bogus"

	err := runGenerate(generateCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dataset")
}

func TestRunGenerate_InvalidConfig(t *testing.T) {
	resetFlags(t)
	captureOutput(t, generateCmd)

	outputFormat = "parquet"

	err := runGenerate(generateCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.format")
}
