package util

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"truckmap/config"
	"truckmap/models"
)

// PlotVendorsMap generates an HTML file plotting each vendor's scheduled
// stops, centered on the city view.
func PlotVendorsMap(vendors []models.Vendor, outputPath string) error {
	// Create a new Geo chart centered on the default city view.
	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Vendors Map",
			Width:     "800px",
			Height:    "600px",
		}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
	)

	// One scatter series per vendor, one point per scheduled stop. The
	// city-view marker anchors the chart when a vendor list is sparse.
	cityView := []opts.GeoData{
		{Name: "City center", Value: []float64{
			config.MAP_VIEW_CENTER_LNG,
			config.MAP_VIEW_CENTER_LAT,
		}},
	}
	geo.AddSeries("View", types.ChartScatter, cityView)

	for _, vendor := range vendors {
		var points []opts.GeoData
		for _, schedule := range vendor.Schedules {
			points = append(points, opts.GeoData{
				Name:  vendor.Name,
				Value: []float64{schedule.Longitude, schedule.Latitude},
			})
		}
		if len(points) == 0 {
			continue
		}

		geo.AddSeries(vendor.Name, types.ChartScatter, points,
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}",
			}),
		)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create HTML file: %w", err)
	}
	defer f.Close()

	// Render the chart into the HTML file.
	if err := geo.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return nil
}
