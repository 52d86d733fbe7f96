package catalog

// Header is the fixed column order of the catalog CSV.
var Header = []string{
	"Configuration", "Cluster", "Resource Pool", "Type", "Price",
	"Available", "Count", "MaxCount", "GPU_Type", "GPU_Memory(MiB)",
}

const DefaultOutputPath = "denvr/vms.csv"

type Config struct {
	Provider     string   `yaml:"provider"`
	BaseURL      string   `yaml:"baseURL"`
	ResourcePool string   `yaml:"resourcePool"`
	Clusters     []string `yaml:"clusters"`
	GPUs         GPUTable `yaml:"gpus"`
}

// ClusterSummary aggregates the rows written for one cluster.
type ClusterSummary struct {
	Cluster      string
	Offerings    int64
	GPUOfferings int64
	Available    int64
	Count        int64
	MinPrice     float64
	hasPrice     bool
}

type Summary struct {
	OutputPath string
	Clusters   []ClusterSummary
}
