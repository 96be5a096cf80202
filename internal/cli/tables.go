package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/pinhole/internal/exposure"
	"github.com/Veraticus/pinhole/internal/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatUpper
	return tw
}

// ConditionsTable lists the lighting conditions. The selected one is marked.
func ConditionsTable(w io.Writer, selected string) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{"", "Condition", "f-stop", "Description"})
	for _, c := range model.LightingConditions {
		tw.AppendRow(table.Row{marker(c.Name == selected), c.Name, "f/" + trimFloat(c.FStop), c.Description})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})
	tw.Render()
}

// FiltersTable lists the filters and their exposure factors.
func FiltersTable(w io.Writer, selected model.FilterName) {
	if selected == "" {
		selected = model.FilterNone
	}
	tw := newTable(w)
	tw.AppendHeader(table.Row{"", "Filter", "Stops", "Factor"})
	for _, f := range model.Filters {
		tw.AppendRow(table.Row{marker(f.Name == selected), f.Name, f.Stops, fmt.Sprintf("%dx", 1<<f.Stops)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	tw.Render()
}

// FormatsTable lists the film formats with their frame sizes.
func FormatsTable(w io.Writer, selected string) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{"", "Format", "Width (mm)", "Height (mm)", "Aspect"})
	for _, f := range model.FilmFormats {
		tw.AppendRow(table.Row{
			marker(f.Name == selected),
			f.Name,
			trimFloat(f.Width),
			trimFloat(f.Height),
			strconv.FormatFloat(f.Width/f.Height, 'f', 2, 64),
		})
	}
	tw.Render()
}

// LadderTable prints a bracketing ladder. The row for current is marked.
func LadderTable(w io.Writer, ladder []exposure.Result, current int) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{"", "Bracket", "Exposure", "Seconds"})
	for _, r := range ladder {
		tw.AppendRow(table.Row{
			marker(r.BracketStops == current),
			fmt.Sprintf("%+d", r.BracketStops),
			r.Formatted,
			strconv.FormatFloat(r.Seconds, 'f', 3, 64),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	tw.Render()
}

// ProfilesTable lists saved profiles.
func ProfilesTable(w io.Writer, profiles []model.Profile) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{"ID", "Name", "Format", "Focal", "Pinhole", "ISO", "Condition", "Filter", "Saved"})
	for _, p := range profiles {
		s := p.Settings
		tw.AppendRow(table.Row{
			shortID(p.ID),
			p.Name,
			s.FilmFormat.Name + " " + string(s.Orientation),
			trimFloat(s.FocalLength) + "mm",
			trimFloat(s.PinholeSize) + "mm",
			s.ISO,
			orDash(s.Condition),
			string(s.Filter),
			p.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	tw.Render()
}

// ReadingsTable lists meter readings.
func ReadingsTable(w io.Writer, readings []model.MeterReading) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{"Source", "Luminance", "EV", "Pixels", "Suggested"})
	for _, r := range readings {
		tw.AppendRow(table.Row{
			r.Source,
			strconv.FormatFloat(r.AvgLuminance, 'f', 2, 64),
			strconv.FormatFloat(r.EV, 'f', 2, 64),
			r.PixelCount,
			r.SuggestedCondition,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	tw.Render()
}

func marker(selected bool) string {
	if selected {
		return "●"
	}
	return ""
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// shortID keeps table rows narrow; the first eight characters of a UUID are
// enough to pick a profile by prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
