// Package template holds the catalog of project templates offered by muze.
package template

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// ErrTemplateNotFound is returned when a template name is not in the catalog
var ErrTemplateNotFound = errors.New("template not found")

// Template describes a project template repository
type Template struct {
	Name        string `mapstructure:"name" yaml:"name" json:"name"`
	Repository  string `mapstructure:"repository" yaml:"repository" json:"repository"`
	Description string `mapstructure:"description" yaml:"description" json:"description"`
}

// Defaults is the built-in catalog
var Defaults = []Template{
	{
		Name:        "next-template",
		Repository:  "https://github.com/Muze-GitHub/muze-next-template.git",
		Description: "基于Next.js自定义react项目模板",
	},
	{
		Name:        "umi-template",
		Repository:  "https://github.com/Muze-GitHub/muze-umi-template.git",
		Description: "基于umi的自定义react项目模板",
	},
}

// Catalog is an ordered set of templates
type Catalog struct {
	templates []Template
	index     map[string]int
}

// NewCatalog creates a catalog; an empty list falls back to Defaults
func NewCatalog(templates []Template) *Catalog {
	if len(templates) == 0 {
		templates = Defaults
	}
	c := &Catalog{index: map[string]int{}}
	for _, t := range templates {
		if t.Name == "" {
			continue
		}
		if idx, ok := c.index[t.Name]; ok {
			c.templates[idx] = t
			continue
		}
		c.index[t.Name] = len(c.templates)
		c.templates = append(c.templates, t)
	}
	return c
}

// List returns templates in catalog order
func (c *Catalog) List() []Template {
	return c.templates
}

// Find returns the template with the given name
func (c *Catalog) Find(name string) (*Template, error) {
	idx, ok := c.index[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	t := c.templates[idx]
	return &t, nil
}

// Render writes the catalog as a table
func (c *Catalog) Render(w io.Writer) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Name", "Repository", "Description"})
	for _, t := range c.templates {
		tbl.AppendRow(table.Row{t.Name, t.Repository, t.Description})
	}
	tbl.Render()
}
