package recast

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/tyler-sommer/stick"
)

// FormatText renders the expanded schema as an ASCII tree, one node per
// descriptor with its kind, source path and resolution options.
func FormatText(s *Schema) string {
	var sb strings.Builder
	sb.WriteString("Schema")
	if s.rtype != nil {
		sb.WriteString(" (record=" + s.rtype.String() + ")")
	}
	sb.WriteString("\n")
	fields := Expand(s)
	for i, f := range fields {
		formatFieldAsText(f, "", i == len(fields)-1, &sb)
	}
	return sb.String()
}

func formatFieldAsText(f ExpandedField, prefix string, isLast bool, sb *strings.Builder) {
	connector := "├─ "
	if isLast {
		connector = "└─ "
	}
	sb.WriteString(fmt.Sprintf("%s%s%s\n", prefix, connector, formatFieldInfo(f)))

	childPrefix := prefix
	if isLast {
		childPrefix += "   "
	} else {
		childPrefix += "│  "
	}
	for i, child := range f.Children {
		formatFieldAsText(child, childPrefix, i == len(f.Children)-1, sb)
	}
}

func formatFieldInfo(f ExpandedField) string {
	parts := []string{f.Key, f.Kind.String()}

	var details []string
	if f.Path != "" {
		details = append(details, fmt.Sprintf("path=%s", f.Path))
	}
	if f.CastName != "" {
		details = append(details, fmt.Sprintf("cast=%s", f.CastName))
	}
	if f.Optional {
		details = append(details, "optional")
	}
	if len(details) > 0 {
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(details, ", ")))
	}
	return strings.Join(parts, " ")
}

// FormatJSON renders the expanded schema as indented JSON.
func FormatJSON(s *Schema) (string, error) {
	bytes, err := json.MarshalIndent(Expand(s), "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// defaultReportTemplate lists every absolute source path with its cast unit.
const defaultReportTemplate = `{% for p in paths %}{{ p.path }} -> {{ p.cast }}
{% endfor %}`

// ReportProvider renders schema reports through stick templates, so tooling
// can shape the output without the library hard-coding a format.
type ReportProvider struct {
	env       *stick.Env
	templates map[string]string
	vars      map[string]stick.Value
}

// ReportOption configures a ReportProvider.
type ReportOption func(*ReportProvider) error

// WithReportFS loads every *.twig file found under dir in the supplied FS.
func WithReportFS[F fs.FS](fsys F, dir string) ReportOption {
	return func(p *ReportProvider) error {
		return fs.WalkDir(fsys, dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".twig") {
				return nil
			}
			content, readErr := fs.ReadFile(fsys, path)
			if readErr != nil {
				return fmt.Errorf("read %s: %w", path, readErr)
			}
			name := strings.TrimSuffix(filepath.Base(path), ".twig")
			p.templates[name] = string(content)
			return nil
		})
	}
}

// WithReportTemplates injects an in-memory template map.
func WithReportTemplates(m map[string]string) ReportOption {
	return func(p *ReportProvider) error {
		for k, v := range m {
			p.templates[k] = v
		}
		return nil
	}
}

// WithReportVar adds a variable available in every template.
func WithReportVar(key string, value any) ReportOption {
	return func(p *ReportProvider) error {
		p.vars[key] = value
		return nil
	}
}

// NewReportProvider builds a provider from any combination of options. The
// "paths" template is always present and can be overridden.
func NewReportProvider(opts ...ReportOption) (*ReportProvider, error) {
	p := &ReportProvider{
		env:       stick.New(nil),
		templates: map[string]string{"paths": defaultReportTemplate},
		vars:      make(map[string]stick.Value),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// AddTemplate updates or inserts one template.
func (p *ReportProvider) AddTemplate(name, tpl string) { p.templates[name] = tpl }

// Render executes the named template against the schema. Templates see
// "fields" (the expanded descriptor tree) and "paths" (the flattened path
// list) plus any provider variables.
func (p *ReportProvider) Render(name string, s *Schema) (string, error) {
	tpl, ok := p.templates[name]
	if !ok {
		return "", fmt.Errorf("template %q not found", name)
	}

	ctx := make(map[string]stick.Value)
	ctx["fields"] = fieldsContext(Expand(s))
	ctx["paths"] = pathsContext(FlattenPaths(Expand(s)))
	for k, v := range p.vars {
		ctx[k] = v
	}

	var out strings.Builder
	if err := p.env.Execute(tpl, &out, ctx); err != nil {
		return "", fmt.Errorf("execute %q: %w", name, err)
	}
	return out.String(), nil
}

func fieldsContext(fields []ExpandedField) []stick.Value {
	out := make([]stick.Value, len(fields))
	for i, f := range fields {
		out[i] = map[string]stick.Value{
			"key":      f.Key,
			"path":     f.Path,
			"kind":     f.Kind.String(),
			"optional": f.Optional,
			"cast":     f.CastName,
			"children": fieldsContext(f.Children),
		}
	}
	return out
}

func pathsContext(paths []PathEntry) []stick.Value {
	out := make([]stick.Value, len(paths))
	for i, p := range paths {
		out[i] = map[string]stick.Value{
			"path": p.Path,
			"cast": p.CastName,
		}
	}
	return out
}
