package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threatline/sigscan/pkg/store"
	"github.com/threatline/sigscan/pkg/types"
)

func seedDatastore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.db")

	s, err := store.New(store.Config{Path: path})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.AddRecord(&types.Record{Path: "/opt/bin/bad", Outcome: types.OutcomeInfected}))
	require.NoError(t, s.AddRecord(&types.Record{Path: "/opt/bin/good", Outcome: types.OutcomeClean}))
	require.NoError(t, s.AddRecord(&types.Record{Path: "/opt/etc/conf", Outcome: types.OutcomeIneligible}))
	require.NoError(t, s.AddRecord(&types.Record{Path: "/opt/locked", Outcome: types.OutcomeError, Detail: "permission denied"}))
	return path
}

func TestRunReportHuman(t *testing.T) {
	reportDatastore = seedDatastore(t)
	reportFormat = "human"
	reportColor = "never"
	reportShowClean = false

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := runReport(cmd, nil)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "!!! File /opt/bin/bad is infected")
	assert.Contains(t, output, "Error scanning /opt/locked: permission denied")
	assert.Contains(t, output, "4 files, 1 infected, 1 errors")
	// Clean and ineligible paths are summarized, not listed.
	assert.NotContains(t, output, "/opt/bin/good")
}

func TestRunReportShowClean(t *testing.T) {
	reportDatastore = seedDatastore(t)
	reportFormat = "human"
	reportColor = "never"
	reportShowClean = true

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := runReport(cmd, nil)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Clean: /opt/bin/good")
	assert.Contains(t, output, "Skipped (not ELF): /opt/etc/conf")
}

func TestRunReportJSON(t *testing.T) {
	reportDatastore = seedDatastore(t)
	reportFormat = "json"
	reportShowClean = false

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := runReport(cmd, nil)
	require.NoError(t, err)

	var records []types.Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	assert.Len(t, records, 4)
}

func TestRunReportMissingDatastore(t *testing.T) {
	reportDatastore = filepath.Join(t.TempDir(), "absent.db")
	reportFormat = "human"

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	err := runReport(cmd, nil)
	assert.Error(t, err)
}

func TestColorEnabled(t *testing.T) {
	assert.True(t, colorEnabled("always"))
	assert.False(t, colorEnabled("never"))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, colorEnabled("auto"))
}
