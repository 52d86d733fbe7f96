package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyColumns(t *testing.T) {
	tests := []struct {
		configuration string
		wantType      string
		wantMemory    string
	}{
		{configuration: "H100-80GB-cluster", wantType: "H100", wantMemory: "81920"},
		{configuration: "generic-cpu-node", wantType: "", wantMemory: "0"},
		{configuration: "A100_80GB-node", wantType: "A100", wantMemory: "40960"},
		{configuration: "8x-V100-SXM2", wantType: "V100", wantMemory: "16384"},
		{configuration: "T4-small", wantType: "T4", wantMemory: "16384"},
		{configuration: "P100", wantType: "P100", wantMemory: "16384"},
		{configuration: "K80-legacy", wantType: "K80", wantMemory: "12288"},
		{configuration: "GENERAL-8vcpu", wantType: "GENERAL", wantMemory: ""},
		{configuration: "", wantType: "", wantMemory: "0"},
		{configuration: "h100-lowercase", wantType: "", wantMemory: "0"},
	}
	table := DefaultGPUTable()
	for _, tt := range tests {
		t.Run(tt.configuration, func(t *testing.T) {
			gpuType, memory := table.ClassifyColumns(tt.configuration)
			assert.Equal(t, tt.wantType, gpuType)
			assert.Equal(t, tt.wantMemory, memory)
		})
	}
}

func TestClassifyFollowsTableOrder(t *testing.T) {
	reordered := GPUTable{
		{Pattern: "A100_80GB", MemoryMiB: mib(81920)},
		{Pattern: "A100", MemoryMiB: mib(40960)},
	}
	gpu, ok := reordered.Classify("A100_80GB-node")
	assert.True(t, ok)
	assert.Equal(t, "A100_80GB", gpu.Pattern)
	assert.Equal(t, 81920, *gpu.MemoryMiB)

	gpu, ok = DefaultGPUTable().Classify("A100_80GB-node")
	assert.True(t, ok)
	assert.Equal(t, "A100", gpu.Pattern)
}

func TestDefaultGPUTableIsACopy(t *testing.T) {
	table := DefaultGPUTable()
	*table[0].MemoryMiB = 1
	table[1].Pattern = "changed"

	fresh := DefaultGPUTable()
	assert.Equal(t, 40960, *fresh[0].MemoryMiB)
	assert.Equal(t, "A100_80GB", fresh[1].Pattern)
}
