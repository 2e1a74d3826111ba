package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	t.Run("Writes the workbook for the embedded catalog", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "coverage.xlsx")
		var stdout bytes.Buffer

		cmd := newRootCmd()
		cmd.SetOut(&stdout)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--out", out, "--strict"})
		require.NoError(t, cmd.Execute())

		assert.FileExists(t, out)
		assert.Contains(t, stdout.String(), "fr  100.0%")
		assert.Contains(t, stdout.String(), "th  100.0%")
	})

	t.Run("Rejects unknown languages", func(t *testing.T) {
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--out", filepath.Join(t.TempDir(), "x.xlsx"), "--lang", "de"})
		assert.Error(t, cmd.Execute())
	})
}
