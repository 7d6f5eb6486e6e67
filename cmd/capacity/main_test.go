package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/carbocation/popcapacity/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMissingPopulation(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.vcf")
	require.NoError(t, os.WriteFile(input, []byte("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tA\tB\n"), 0o644))

	cfg := config.Default()
	cfg.Input = input
	cfg.Population = filepath.Join(dir, "missing.txt")

	err := run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.txt")
}
