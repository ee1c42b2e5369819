package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommandStructure(t *testing.T) {
	assert.NotNil(t, validateCmd)
	assert.Equal(t, "validate", validateCmd.Use)
	assert.NotEmpty(t, validateCmd.Short)
	assert.NotEmpty(t, validateCmd.Long)
	assert.NotNil(t, validateCmd.RunE)
}

func TestRunValidate_Defaults(t *testing.T) {
	resetFlags(t)
	out := captureOutput(t, validateCmd)

	require.NoError(t, runValidate(validateCmd, nil))

	output := out.String()
	assert.Contains(t, output, "Config file: (none, using defaults)")
	assert.Contains(t, output, "Output: csv -> output")
	assert.Contains(t, output, "✅ payments")
	assert.Contains(t, output, "=== Validation Complete ===")
}

func TestRunValidate_DisabledDataset(t *testing.T) {
	resetFlags(t)
	out := captureOutput(t, validateCmd)
	cfgFile = writeConfig(t, testConfig)

	require.NoError(t, runValidate(validateCmd, nil))
	assert.Contains(t, out.String(), "--- trade_documents: disabled")
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	resetFlags(t)
	out := captureOutput(t, validateCmd)
	cfgFile = writeConfig(t, "datasets:\n  payments:\n    anomaly_rate: 1.5\n")

	err := runValidate(validateCmd, nil)
	require.Error(t, err)
	assert.Contains(t, out.String(), "datasets.payments.anomaly_rate")
}

func TestRunValidate_MissingMySQLSettings(t *testing.T) {
	resetFlags(t)
	captureOutput(t, validateCmd)
	outputFormat = "mysql"

	err := runValidate(validateCmd, nil)
	assert.Error(t, err, "mysql output needs destination host, user and database")
}
