package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every package-level flag variable after a test.
func resetFlags(t *testing.T) {
	t.Helper()
	saved := struct {
		cfgFile, logLevel, logFormat, outputFormat, outputDir, startDate string
		batchSize, days, count                                            int
		seed                                                              int64
		generateDataset, fingerprintDataset, fingerprintVerify            string
		fingerprintCheck                                                  bool
		previewDataset                                                    string
		previewRows, previewMaxWidth                                      int
		previewNoColor                                                    bool
	}{
		cfgFile, logLevel, logFormat, outputFormat, outputDir, startDate,
		batchSize, days, count, seed,
		generateDatasetName, fingerprintDataset, fingerprintVerify, fingerprintCheck,
		previewDataset, previewRows, previewMaxWidth, previewNoColor,
	}

	t.Cleanup(func() {
		cfgFile, logLevel, logFormat = saved.cfgFile, saved.logLevel, saved.logFormat
		outputFormat, outputDir, startDate = saved.outputFormat, saved.outputDir, saved.startDate
		batchSize, days, count, seed = saved.batchSize, saved.days, saved.count, saved.seed
		generateDatasetName = saved.generateDataset
		fingerprintDataset, fingerprintVerify = saved.fingerprintDataset, saved.fingerprintVerify
		fingerprintCheck = saved.fingerprintCheck
		previewDataset, previewRows = saved.previewDataset, saved.previewRows
		previewMaxWidth, previewNoColor = saved.previewMaxWidth, saved.previewNoColor
		rootCmd.PersistentFlags().Lookup("seed").Changed = false
	})
}

// captureOutput directs c's output to a buffer for the rest of the test.
func captureOutput(t *testing.T, c *cobra.Command) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetErr(&buf)
	t.Cleanup(func() {
		c.SetOut(nil)
		c.SetErr(nil)
	})
	return &buf
}

func TestExecute(t *testing.T) {
	// Execute calls os.Exit on error, so only its presence is checked.
	assert.NotNil(t, Execute)
}

func TestVersionVariables(t *testing.T) {
	assert.NotEmpty(t, Version, "Version should not be empty")
	assert.NotEmpty(t, Commit, "Commit should not be empty")
}

func TestCLIFlagsVariables(t *testing.T) {
	assert.Equal(t, "", cfgFile, "config file is optional")
	assert.Equal(t, "", logLevel)
	assert.Equal(t, "", logFormat)
	assert.Equal(t, "", outputFormat)
	assert.Equal(t, "", outputDir)
	assert.Equal(t, 0, batchSize)
	assert.Equal(t, int64(0), seed)
	assert.Equal(t, 0, days)
	assert.Equal(t, 0, count)
}

func TestSubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"generate", "list-datasets", "preview", "fingerprint", "validate", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestPersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "log-level", "log-format", "format", "out", "batch-size", "seed", "start", "days", "count"} {
		require.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "flag %s", name)
	}
}
