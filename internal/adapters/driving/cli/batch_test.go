package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchCmd_Use(t *testing.T) {
	assert.Equal(t, "batch", batchCmd.Use)
}

func TestBatchCmd_PrintsProgressAndSummary(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"batch"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "[1/2] Alba → Aiud")
	assert.Contains(t, out, "tax=1200.50 houses=480")
	assert.Contains(t, out, "[2/2] Alba → Blaj")
	assert.Contains(t, out, "no entity found")
	assert.Contains(t, out, "Run summary")
	assert.Contains(t, out, "Resolved:   1")
	assert.Contains(t, out, "Store:      2 records (1 with data)")
	assert.Contains(t, out, "Still unresolved")
}

func TestBatchCmd_RunError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	batchRunner = &mockBatchRunner{err: errors.New("catalog unreadable")}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"batch"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "catalog unreadable")
}

func TestBatchCmd_ServiceNotConfigured(t *testing.T) {
	oldRunner := batchRunner
	batchRunner = nil
	defer func() {
		batchRunner = oldRunner
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"batch"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
