// Package renderer turns waterfall results into markdown reports.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templateFS embed.FS

// templates holds the report templates, at the root of the file system.
var templates, _ = fs.Sub(templateFS, "templates")

// RenderPayout renders a single exit payout report.
func RenderPayout(p *Payout) string {
	partials := map[string]string{
		"structure": "structure.md",
		"waterfall": "waterfall.md",
		"status":    "status.md",
	}
	return renderTemplate("payout", "payout.md", partials, p)
}

// RenderBreakEven renders the break-even report.
func RenderBreakEven(b *BreakEven) string {
	partials := map[string]string{
		"structure": "structure.md",
	}
	return renderTemplate("breakeven", "breakeven.md", partials, b)
}

// RenderSweep renders the table of a valuation sweep.
func RenderSweep(s *Sweep) string {
	return renderTemplate("sweep", "sweep.md", nil, s)
}

// RenderPresets renders the list of available presets.
func RenderPresets(p *Presets) string {
	return renderTemplate("presets", "presets.md", nil, p)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
