package resume

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Document is a parsed resume. Every field is optional; sections that are
// absent or empty are simply omitted from the rendered output.
type Document struct {
	Name     string `yaml:"name"`
	Location string `yaml:"location"`
	Phone    string `yaml:"phone"`
	Email    string `yaml:"email"`
	Summary  string `yaml:"summary"`

	Skills     []SkillGroup `yaml:"skills"`
	Experience []Role       `yaml:"experience"`
	Projects   []Project    `yaml:"projects"`
	Education  []School     `yaml:"education"`
}

// SkillGroup is one line of the skills section, e.g.
// header "Languages" with skill "Go, Python, SQL".
type SkillGroup struct {
	Header string `yaml:"header"`
	Skill  string `yaml:"skill"`
}

// Role is a single professional experience entry.
type Role struct {
	Company  string   `yaml:"company"`
	Title    string   `yaml:"title"`
	Location string   `yaml:"location"`
	Dates    string   `yaml:"dates"`
	Bullets  []Bullet `yaml:"bullets"`
}

// Project is a personal or side project entry.
type Project struct {
	Name    string   `yaml:"name"`
	Dates   string   `yaml:"dates"`
	Bullets []Bullet `yaml:"bullets"`
}

// School is a single education entry.
type School struct {
	School string `yaml:"school"`
	Detail string `yaml:"detail"`
	Year   string `yaml:"year"`
}

// Bullet is a tagged, renderable line item within a role or project.
// Visibility is decided by matching Tags against the user's selection.
type Bullet struct {
	Text string `yaml:"text"`
	Tags TagSet `yaml:"tags"`
}

// Load reads and parses a UTF-8 YAML resume from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading resume: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing resume: %w", err)
	}
	return &doc, nil
}

// TagCount is one entry of a tag inventory.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagInventory returns the distinct bullet tags in the document with the
// number of bullets carrying each, sorted by tag name.
func (d *Document) TagInventory() []TagCount {
	counts := make(map[string]int)
	collect := func(bullets []Bullet) {
		for _, b := range bullets {
			for tag := range b.Tags {
				counts[tag]++
			}
		}
	}
	for _, role := range d.Experience {
		collect(role.Bullets)
	}
	for _, p := range d.Projects {
		collect(p.Bullets)
	}

	inventory := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		inventory = append(inventory, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(inventory, func(i, j int) bool {
		return inventory[i].Tag < inventory[j].Tag
	})
	return inventory
}
