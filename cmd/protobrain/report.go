package main

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/protobrain/protobrain/internal/benchmark"
	"github.com/protobrain/protobrain/internal/metrics"
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	oddRowStyle = lipgloss.NewStyle().Faint(false).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Faint(true).
			PaddingLeft(1).PaddingRight(1)

	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 0, 4)
)

func newPlainTable() *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if row < 0 {
				return headerRowStyle
			}
			if row%2 == 0 {
				s = oddRowStyle
			} else {
				s = evenRowStyle
			}
			if col == 0 {
				return s.Align(lipgloss.Left)
			}
			return s.Align(lipgloss.Right)
		})
}

// newProgressBar writes to stderr so results on stdout stay clean.
func newProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("steps"),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)
}

// renderResults tabulates the density and count summaries of each brain.
func renderResults(title string, names []string, steps int, results []benchmark.Results) string {
	table := newPlainTable().
		Headers("Brain", "Steps", "Spike density", "Last step", "Silent neurons", "Max spikes")
	for i, r := range results {
		row := []string{names[i], humanize.Comma(int64(steps)), "-", "-", "-", "-"}
		if d, ok := r[metrics.SpikeDensityName].(*metrics.DensityResult); ok {
			row[2] = percent(d.Global)
			row[3] = percent(d.PerStep[len(d.PerStep)-1])
		}
		if c, ok := r[metrics.SpikeCountName].(*metrics.CountResult); ok {
			total := 0
			for _, n := range c.Global {
				total += n
			}
			row[4] = fmt.Sprintf("%s of %s", humanize.Comma(int64(c.Global[0])), humanize.Comma(int64(total)))
			row[5] = humanize.Ftoa(slices.Max(slices.Collect(maps.Keys(c.Global))))
		}
		table.Row(row...)
	}
	return titleStyle.Render(title) + "\n" + table.Render()
}

func percent(v float64) string {
	return humanize.FtoaWithDigits(v*100, 2) + "%"
}
