package render

import (
	"fmt"
	"io"
	"time"

	yaml "gopkg.in/yaml.v2"

	"github.com/sysprobe/sysprobe/internal/report"
)

// YAML writes the report as a YAML document with the same shape as the JSON
// projection. MapSlice keeps section and field order intact.
func YAML(w io.Writer, r *report.Report) error {
	sections := yaml.MapSlice{}
	for _, ns := range r.Sections() {
		sections = append(sections, yaml.MapItem{Key: ns.Name, Value: sectionToYAML(ns.Section)})
	}
	doc := yaml.MapSlice{
		{Key: "system_info", Value: sections},
		{Key: "generated_at", Value: r.GeneratedAt.Format(time.RFC3339)},
		{Key: "schema_version", Value: r.Version},
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func sectionToYAML(s *report.Section) yaml.MapSlice {
	out := yaml.MapSlice{}
	for _, name := range s.Names() {
		v, _ := s.Get(name)
		out = append(out, yaml.MapItem{Key: name, Value: valueToYAML(v)})
	}
	return out
}

func valueToYAML(v report.Value) interface{} {
	switch v.Kind() {
	case report.KindString:
		return v.String()
	case report.KindInt:
		return v.Int()
	case report.KindFloat:
		return v.Float()
	case report.KindBool:
		return v.Bool()
	case report.KindTable:
		t := v.Table()
		rows := make([]yaml.MapSlice, 0, t.Len())
		for _, row := range t.Rows {
			item := yaml.MapSlice{}
			for i, header := range t.Headers {
				item = append(item, yaml.MapItem{Key: header, Value: valueToYAML(row[i])})
			}
			rows = append(rows, item)
		}
		return rows
	}
	return nil
}
