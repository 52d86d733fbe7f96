package catalog

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/davidcollom/denvr-catalog/pkg/logger"
	"github.com/davidcollom/denvr-catalog/pkg/offersource"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
)

// Builder streams the offerings of every cluster into a CSV catalog.
type Builder struct {
	Source   offersource.OfferingSource
	Clusters []string
	GPUs     GPUTable
	// Progress receives the progress bar; nil disables it.
	Progress io.Writer
}

func NewBuilder(source offersource.OfferingSource, config *Config) *Builder {
	return &Builder{
		Source:   source,
		Clusters: config.Clusters,
		GPUs:     config.GPUs,
	}
}

// Build truncates outputPath (creating its directory) and writes the catalog.
// On a fetch error the rows of earlier clusters stay in the file.
func (b *Builder) Build(ctx context.Context, tokens offersource.Tokens, outputPath string) (*Summary, error) {
	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "could not create %s", dir)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return nil, errors.Wrap(err, "could not create catalog file")
	}
	defer file.Close()

	summary, err := b.Write(ctx, tokens, file)
	if err != nil {
		return summary, err
	}
	if err := file.Close(); err != nil {
		return summary, errors.Wrapf(err, "could not close %s", outputPath)
	}
	summary.OutputPath = outputPath
	return summary, nil
}

// Write emits the header and one row per offering, flushing after each
// cluster. It stops at the first cluster that cannot be fetched.
func (b *Builder) Write(ctx context.Context, tokens offersource.Tokens, w io.Writer) (*Summary, error) {
	summary := &Summary{}
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return summary, errors.Wrap(err, "could not write header")
	}
	writer.Flush()

	progress := b.Progress
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(len(b.Clusters),
		progressbar.OptionSetDescription("Fetching..."),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(15),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionThrottle(time.Second),
	)

	for _, cluster := range b.Clusters {
		logger.Infof("Fetching VM availability for cluster: %s...", cluster)
		offerings, err := b.Source.GetOfferings(ctx, cluster, tokens)
		if err != nil {
			return summary, errors.Wrapf(err, "cluster %s", cluster)
		}

		clusterSummary := ClusterSummary{Cluster: cluster}
		for _, offering := range offerings {
			gpuType, gpuMemory := b.GPUs.ClassifyColumns(offering.Configuration)
			if err := writer.Write(row(offering, gpuType, gpuMemory)); err != nil {
				return summary, errors.Wrapf(err, "could not write row for %s", offering.Configuration)
			}
			clusterSummary.add(offering, gpuType)
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return summary, errors.Wrapf(err, "could not write rows for cluster %s", cluster)
		}

		summary.Clusters = append(summary.Clusters, clusterSummary)
		logger.WithCluster(cluster).Debugf("Wrote %d offerings", clusterSummary.Offerings)
		if err := bar.Add(1); err != nil {
			logger.Error(err)
		}
	}
	return summary, nil
}

func row(offering offersource.VMOffering, gpuType, gpuMemory string) []string {
	return []string{
		offering.Configuration,
		offering.Cluster,
		offering.ResourcePool,
		offering.Type,
		offersource.Text(offering.Price),
		offersource.Text(offering.Available),
		offersource.Text(offering.Count),
		offersource.Text(offering.MaxCount),
		gpuType,
		gpuMemory,
	}
}
