package popup

import (
	"html"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/openharvest/partnermap/internal/partner"
)

// lineBreak terminates every popup line.
const lineBreak = "<br/>"

// Renderer renders popup markup for partner records. Region is the
// fixed state/region code appended to directions destinations.
type Renderer struct {
	Region string
}

// section yields one fragment of popup markup, or "" when its source
// fields are absent. Sections run in declaration order.
type section func(rec partner.Record, cat partner.Category, ren Renderer) string

var sections = []section{
	nameSection,
	addressSection,
	address2Section,
	cityLineSection,
	directionsSection,
	categorySection,
	datesSection,
	daysSection,
	hoursSection,
	websiteSection,
	notesSection,
}

// Render builds the popup markup for one record. Pure and total:
// identical input yields byte-identical output, and no combination of
// absent fields is an error.
func (ren Renderer) Render(rec partner.Record, cat partner.Category) string {
	var b strings.Builder
	for _, s := range sections {
		b.WriteString(s(rec, cat, ren))
	}
	return b.String()
}

func nameSection(rec partner.Record, _ partner.Category, _ Renderer) string {
	return "<b>" + escapeText(rec.Name) + "</b>" + lineBreak
}

func addressSection(rec partner.Record, _ partner.Category, _ Renderer) string {
	if rec.Address == "" {
		return ""
	}
	return escapeText(rec.Address) + lineBreak
}

func address2Section(rec partner.Record, _ partner.Category, _ Renderer) string {
	if rec.Address2 == "" {
		return ""
	}
	return escapeText(rec.Address2) + lineBreak
}

// cityLineSection emits "City, State  Zip" with two spaces before the
// zip, matching the source layout. State and zip are dropped along with
// their separators when absent; the whole line is dropped without a city.
func cityLineSection(rec partner.Record, _ partner.Category, _ Renderer) string {
	if rec.City == "" {
		return ""
	}
	line := escapeText(rec.City)
	if rec.State != "" {
		line += ", " + escapeText(rec.State)
	}
	if rec.Zip5 != "" {
		line += "  " + escapeText(rec.Zip5)
	}
	return line + lineBreak
}

func directionsSection(rec partner.Record, _ partner.Category, ren Renderer) string {
	url := ren.DirectionsURL(rec)
	if url == "" {
		return ""
	}
	return "<b><a href='" + escapeText(url) + "' target='_blank'>Get Directions</a></b>" + lineBreak
}

// categorySection always emits: the category was defaulted upstream,
// so every record has one.
func categorySection(_ partner.Record, cat partner.Category, _ Renderer) string {
	return lineBreak + "Type: " + escapeText(cat.String()) + lineBreak + lineBreak
}

func datesSection(rec partner.Record, _ partner.Category, _ Renderer) string {
	if rec.Dates == "" {
		return ""
	}
	return "Dates: " + escapeText(rec.Dates) + lineBreak
}

func daysSection(rec partner.Record, _ partner.Category, _ Renderer) string {
	if rec.Days == "" {
		return ""
	}
	return "Day(s): " + escapeText(rec.Days) + lineBreak
}

func hoursSection(rec partner.Record, _ partner.Category, _ Renderer) string {
	if rec.Hours == "" {
		return ""
	}
	return "Hours: " + escapeText(rec.Hours) + lineBreak
}

func websiteSection(rec partner.Record, _ partner.Category, _ Renderer) string {
	if rec.Link == "" {
		return ""
	}
	return "<a href='" + escapeText(rec.Link) + "' target='_blank'>Website</a>" + lineBreak
}

// notesSection appends free-text notes last, separated from the rest of
// the popup by a blank line.
func notesSection(rec partner.Record, _ partner.Category, _ Renderer) string {
	if rec.Notes == "" {
		return ""
	}
	return lineBreak + escapeText(rec.Notes)
}

// escapeText prepares source text for embedding in popup markup:
// NFC normalization at the rendering boundary, then HTML escaping.
func escapeText(s string) string {
	return html.EscapeString(norm.NFC.String(s))
}
