package catalog

import (
	"fmt"
	"io"

	"github.com/davidcollom/denvr-catalog/pkg/offersource"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/tidwall/gjson"
)

func (s *ClusterSummary) add(offering offersource.VMOffering, gpuType string) {
	s.Offerings++
	if gpuType != "" {
		s.GPUOfferings++
	}
	if offering.Available.Bool() {
		s.Available++
	}
	s.Count += offering.Count.Int()
	if offering.Price.Type != gjson.Null {
		price := offering.Price.Float()
		if !s.hasPrice || price < s.MinPrice {
			s.MinPrice = price
			s.hasPrice = true
		}
	}
}

// Rows is the number of data rows written across all clusters.
func (s *Summary) Rows() int64 {
	var rows int64
	for _, cluster := range s.Clusters {
		rows += cluster.Offerings
	}
	return rows
}

func (s *Summary) Render(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Cluster", "Offerings", "GPU Offerings", "Available", "Count", "Min Price (USD/h)"})
	for _, cluster := range s.Clusters {
		minPrice := "-"
		if cluster.hasPrice {
			minPrice = humanize.FormatFloat("#,###.##", cluster.MinPrice)
		}
		table.Append([]string{
			cluster.Cluster,
			humanize.Comma(cluster.Offerings),
			humanize.Comma(cluster.GPUOfferings),
			humanize.Comma(cluster.Available),
			humanize.Comma(cluster.Count),
			minPrice,
		})
	}
	table.SetFooter([]string{"Total", humanize.Comma(s.Rows()), "", "", "", fmt.Sprintf("%d clusters", len(s.Clusters))})
	table.Render()
}
