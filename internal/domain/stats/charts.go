package stats

import (
	"math"

	"planner/internal/domain/category"
)

// Chart opacities for planned and completed bars.
const (
	plannedOpacity   = 0.3
	completedOpacity = 0.8
)

// Dataset is one colored series of a chart.
type Dataset struct {
	Label  string    `json:"label"`
	Data   []float64 `json:"data"`
	Colors []string  `json:"colors"`
}

// BarChart compares planned and completed hours per category.
type BarChart struct {
	Labels    []string `json:"labels"`
	Planned   Dataset  `json:"planned"`
	Completed Dataset  `json:"completed"`
}

// PieChart shows completion rate per category.
type PieChart struct {
	Labels []string `json:"labels"`
	Data   Dataset  `json:"data"`
}

// BuildCharts turns category stats into chart series with renderable colors.
// Completed hours are capped at planned hours.
func BuildCharts(stats []CategoryStats) (BarChart, PieChart) {
	bar := BarChart{
		Labels:    make([]string, 0, len(stats)),
		Planned:   Dataset{Label: "Planned (hours)"},
		Completed: Dataset{Label: "Completed (hours)"},
	}
	pie := PieChart{
		Labels: make([]string, 0, len(stats)),
		Data:   Dataset{Label: "Completion rate (%)"},
	}

	for _, s := range stats {
		planned := float64(s.TotalMinutes) / 60
		completed := math.Min(float64(s.CompletedMinutes)/60, planned)

		bar.Labels = append(bar.Labels, s.Category.Name)
		bar.Planned.Data = append(bar.Planned.Data, round1(planned))
		bar.Planned.Colors = append(bar.Planned.Colors, category.RGBA(s.Category.Color, plannedOpacity))
		bar.Completed.Data = append(bar.Completed.Data, round1(completed))
		bar.Completed.Colors = append(bar.Completed.Colors, category.RGBA(s.Category.Color, completedOpacity))

		pie.Labels = append(pie.Labels, s.Category.Name)
		pie.Data.Data = append(pie.Data.Data, s.CompletionRate)
		pie.Data.Colors = append(pie.Data.Colors, category.RGBA(s.Category.Color, completedOpacity))
	}
	return bar, pie
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
