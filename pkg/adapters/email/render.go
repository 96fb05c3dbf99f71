package email

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/forms"
	"github.com/aretw0/intake/pkg/schema"
	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.html
var templates embed.FS

const applicationTemplate = "application.html"

// Section is one table of the summary email.
type Section struct {
	Title string
	Rows  []Row
}

// Row is one flattened leaf value. Value is already sanitized HTML text.
type Row struct {
	Label string
	Value string
}

// Renderer turns a normalized application into the HTML summary sent to the underwriting inbox.
type Renderer struct {
	tpl     *pongo2.Template
	policy  *bluemonday.Policy
	catalog *forms.Catalog
}

// NewRenderer loads the embedded template. catalog supplies titles, labels and section
// order; without it sections are listed by key.
func NewRenderer(catalog *forms.Catalog) (*Renderer, error) {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("email: templates: %w", err)
	}
	set := pongo2.NewSet("intake-mail", pongo2.NewFSLoader(sub))
	tpl, err := set.FromFile(applicationTemplate)
	if err != nil {
		return nil, fmt.Errorf("email: parse %s: %w", applicationTemplate, err)
	}
	return &Renderer{
		tpl:     tpl,
		policy:  bluemonday.StrictPolicy(),
		catalog: catalog,
	}, nil
}

// Subject returns the mail subject for a form type.
func Subject(formType domain.FormType) string {
	return fmt.Sprintf("New %s Insurance Application", formType)
}

// Render produces the HTML body for doc.
func (r *Renderer) Render(formType domain.FormType, doc domain.Document) (string, error) {
	title, sections := r.summarize(formType, doc)
	out, err := r.tpl.Execute(pongo2.Context{
		"title":    title,
		"sections": sections,
	})
	if err != nil {
		return "", fmt.Errorf("email: render: %w", err)
	}
	return out, nil
}

func (r *Renderer) summarize(formType domain.FormType, doc domain.Document) (string, []Section) {
	var def *forms.Definition
	if r.catalog != nil {
		def, _ = r.catalog.Lookup(formType)
	}

	if def == nil {
		keys := doc.SectionKeys()
		sections := make([]Section, 0, len(keys))
		for _, key := range keys {
			sections = append(sections, Section{Title: key, Rows: r.flatten(nil, key, doc[key], schema.Field{})})
		}
		return string(formType) + " Application", sections
	}

	keys := def.Registry.Sections()
	sections := make([]Section, 0, len(keys))
	for _, key := range keys {
		field, _ := def.Section(key)
		value, ok := doc[key]
		if !ok {
			continue
		}
		sections = append(sections, Section{
			Title: labelOf(field, key),
			Rows:  r.flatten(nil, "", value, field),
		})
	}
	return def.Title, sections
}

// flatten walks value depth first; labels of nested fields are joined with " / ".
func (r *Renderer) flatten(prefix []string, key string, value any, field schema.Field) []Row {
	label := prefix
	if key != "" {
		label = append(append([]string(nil), prefix...), labelOf(field, key))
	}

	switch v := value.(type) {
	case map[string]any:
		var rows []Row
		for _, k := range orderedKeys(v, field) {
			child, _ := field.Lookup(k)
			rows = append(rows, r.flatten(label, k, v[k], child)...)
		}
		return rows
	case []any:
		var rows []Row
		entry := schema.Field{Kind: schema.KindObject, Fields: field.Fields}
		for i, item := range v {
			rows = append(rows, r.flatten(label, "#"+strconv.Itoa(i+1), item, entry)...)
		}
		return rows
	default:
		return []Row{{
			Label: strings.Join(label, " / "),
			Value: r.policy.Sanitize(formatValue(v)),
		}}
	}
}

// orderedKeys lists declared fields first in declaration order, then any extras sorted.
func orderedKeys(m map[string]any, field schema.Field) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, f := range field.Fields {
		if _, ok := m[f.Key]; ok {
			keys = append(keys, f.Key)
			seen[f.Key] = true
		}
	}
	var extra []string
	for k := range m {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func labelOf(f schema.Field, key string) string {
	if f.Label != "" {
		return f.Label
	}
	return key
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
