package catalog

import (
	"strconv"
	"strings"
)

// GPUMemory maps a GPU model, matched as a substring of an offering's
// configuration, to its memory. A nil MemoryMiB means unknown.
type GPUMemory struct {
	Pattern   string `yaml:"pattern"`
	MemoryMiB *int   `yaml:"memoryMiB"`
}

// GPUTable is checked in order, so earlier patterns shadow later ones that
// contain them ("A100" wins over "A100_80GB").
type GPUTable []GPUMemory

func mib(v int) *int {
	return &v
}

// DefaultGPUTable returns a fresh copy of the known GPU models.
func DefaultGPUTable() GPUTable {
	return GPUTable{
		{Pattern: "A100", MemoryMiB: mib(40960)},
		{Pattern: "A100_80GB", MemoryMiB: mib(81920)},
		{Pattern: "V100", MemoryMiB: mib(16384)},
		{Pattern: "T4", MemoryMiB: mib(16384)},
		{Pattern: "P100", MemoryMiB: mib(16384)},
		{Pattern: "K80", MemoryMiB: mib(12288)},
		{Pattern: "H100", MemoryMiB: mib(81920)},
		{Pattern: "GENERAL", MemoryMiB: nil},
	}
}

// Classify returns the first entry whose pattern occurs in configuration.
func (t GPUTable) Classify(configuration string) (GPUMemory, bool) {
	for _, gpu := range t {
		if strings.Contains(configuration, gpu.Pattern) {
			return gpu, true
		}
	}
	return GPUMemory{}, false
}

// ClassifyColumns returns the GPU_Type and GPU_Memory(MiB) cells. No match
// gives ("", "0"); a match with unknown memory leaves the memory cell empty.
func (t GPUTable) ClassifyColumns(configuration string) (string, string) {
	gpu, ok := t.Classify(configuration)
	if !ok {
		return "", "0"
	}
	if gpu.MemoryMiB == nil {
		return gpu.Pattern, ""
	}
	return gpu.Pattern, strconv.Itoa(*gpu.MemoryMiB)
}
