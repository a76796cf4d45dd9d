package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadFileOrStdinReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x01, 0x02, 0x03}, 0o600))

	data, err := readFileOrStdin(path)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, data)
}

func TestDecodeCommandRequiresArgOrFile(t *testing.T) {
	cc := &decodeCommand{}
	err := cc.execute(nil)
	require.Error(t, err)
}

func TestDecodeCommandErrorsOnNoMatch(t *testing.T) {
	cc := &decodeCommand{}
	err := cc.execute([]string{"not-a-recognizable-binary-format-string"})
	require.Error(t, err)
}
