package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var got string
	cmd := newRootCmd(func(cfgPath string) error {
		got = cfgPath
		return nil
	})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	// A nil slice makes cobra fall back to the test binary's os.Args.
	cmd.SetArgs(append([]string{}, args...))
	return got, cmd.Execute()
}

func TestRootCmdConfigFlag(t *testing.T) {
	got, err := execute(t)
	require.NoError(t, err)
	assert.Equal(t, "sandbox.yaml", got)

	got, err = execute(t, "--config", "configs/big.yaml")
	require.NoError(t, err)
	assert.Equal(t, "configs/big.yaml", got)
}

func TestRootCmdRejectsArgs(t *testing.T) {
	got, err := execute(t, "extra")
	assert.Error(t, err)
	assert.Empty(t, got, "run is not reached")

	_, err = execute(t, "--nope")
	assert.Error(t, err)
}
