// Package render turns a resume document into Markdown. Each section
// renderer produces one text block; Build concatenates the non-empty blocks
// in a fixed order. Bullet-bearing sections (experience, projects) run every
// bullet through the selection filter first.
package render

import (
	"strings"

	"github.com/cvforge/cvforge/internal/filter"
	"github.com/cvforge/cvforge/internal/resume"
)

// noMatchLine is emitted for a role or project whose bullets were all
// filtered out, so the entry never renders as an empty list.
const noMatchLine = "- (No bullets matched selected tags.)"

// Build renders the document with the given selection and returns the full
// Markdown output: non-empty sections joined in fixed order, trimmed, with a
// single trailing newline.
func Build(doc *resume.Document, sel filter.Selection) string {
	sections := []string{
		header(doc),
		summary(doc),
		skills(doc),
		experience(doc, sel),
		projects(doc, sel),
		education(doc),
	}

	var kept []string
	for _, s := range sections {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n")) + "\n"
}

// normalize unifies line endings and trims surrounding whitespace.
func normalize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
}

func header(doc *resume.Document) string {
	lines := []string{
		strings.TrimSpace("# " + normalize(doc.Name)),
		"",
		"----",
		"\n",
	}

	var contact []string
	for _, v := range []string{doc.Location, doc.Phone, doc.Email} {
		if v = normalize(v); v != "" {
			contact = append(contact, v)
		}
	}
	if len(contact) > 0 {
		lines = append(lines, "### "+strings.Join(contact, " • "))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func summary(doc *resume.Document) string {
	s := normalize(doc.Summary)
	if s == "" {
		return ""
	}
	return s + "\n\n"
}

func skills(doc *resume.Document) string {
	if len(doc.Skills) == 0 {
		return ""
	}
	lines := []string{"## Technical Skills", "", "----", "\n"}
	for _, group := range doc.Skills {
		lines = append(lines, "- **"+normalize(group.Header)+"** "+normalize(group.Skill))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func experience(doc *resume.Document, sel filter.Selection) string {
	if len(doc.Experience) == 0 {
		return ""
	}
	lines := []string{"## Professional Experience", "", "----", "\n"}
	for _, role := range doc.Experience {
		heading := strings.TrimSpace("**" + normalize(role.Company) + " — " + normalize(role.Title) + "**")
		where := strings.TrimSpace(normalize(role.Location) + " (" + normalize(role.Dates) + ")")
		lines = append(lines, heading, where, "")
		lines = append(lines, bulletLines(role.Bullets, sel)...)
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func projects(doc *resume.Document, sel filter.Selection) string {
	if len(doc.Projects) == 0 {
		return ""
	}
	lines := []string{"## Projects", "", "----", "\n"}
	for _, p := range doc.Projects {
		heading := strings.TrimSpace("**" + normalize(p.Name) + "** (" + normalize(p.Dates) + ")")
		lines = append(lines, heading, "")
		lines = append(lines, bulletLines(p.Bullets, sel)...)
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func education(doc *resume.Document) string {
	if len(doc.Education) == 0 {
		return ""
	}
	lines := []string{"## Education", "", "----", "\n"}
	for _, e := range doc.Education {
		var parts []string
		for _, v := range []string{e.School, e.Detail, e.Year} {
			if v = normalize(v); v != "" {
				parts = append(parts, v)
			}
		}
		lines = append(lines, "- "+strings.Join(parts, ", "))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// bulletLines filters the bullets through the selection and renders the
// survivors, or the placeholder line when none survive. Bullets whose text
// normalizes to empty are dropped before filtering.
func bulletLines(bullets []resume.Bullet, sel filter.Selection) []string {
	var kept []string
	for _, b := range bullets {
		text := normalize(b.Text)
		if text == "" || !sel.Match(b.Tags) {
			continue
		}
		kept = append(kept, "- "+text)
	}
	if len(kept) == 0 {
		return []string{noMatchLine}
	}
	return kept
}
