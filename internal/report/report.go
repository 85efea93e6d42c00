// Package report holds the data model every probe feeds and every renderer
// consumes: a tagged Value union, insertion-ordered Sections, and the Report
// aggregate keyed by domain name.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// SchemaVersion tags the output document format.
const SchemaVersion = "5.0"

// Section is a named, insertion-ordered mapping from stable field identifiers
// to Values. Absent data is an absent field, never a sentinel value.
type Section struct {
	names  []string
	fields map[string]Value
}

// NewSection returns an empty section.
func NewSection() *Section {
	return &Section{fields: make(map[string]Value)}
}

// Set inserts or overwrites a field. An overwrite keeps the field's original
// position.
func (s *Section) Set(name string, v Value) {
	if _, ok := s.fields[name]; !ok {
		s.names = append(s.names, name)
	}
	s.fields[name] = v
}

// SetString is Set for the common string case, skipping empty values.
func (s *Section) SetString(name, v string) {
	if v == "" {
		return
	}
	s.Set(name, StringValue(v))
}

// Get looks a field up by name.
func (s *Section) Get(name string) (Value, bool) {
	v, ok := s.fields[name]
	return v, ok
}

// Names returns the field names in insertion order.
func (s *Section) Names() []string { return s.names }

// Len returns the field count.
func (s *Section) Len() int { return len(s.names) }

// MarshalJSON emits the section as an object with fields in insertion order.
func (s *Section) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := s.fields[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NamedSection pairs a section with its domain name for ordered iteration.
type NamedSection struct {
	Name    string
	Section *Section
}

// Report is the append-only aggregate of one probe pass. Once handed to a
// renderer it is treated as immutable.
type Report struct {
	sections    []NamedSection
	index       map[string]int
	GeneratedAt time.Time
	Version     string
}

// New returns an empty report stamped with the current time.
func New() *Report {
	return &Report{
		index:       make(map[string]int),
		GeneratedAt: time.Now(),
		Version:     SchemaVersion,
	}
}

// Add appends a section under a domain name. Adding the same domain twice is
// a programming error and is rejected.
func (r *Report) Add(name string, s *Section) error {
	if _, dup := r.index[name]; dup {
		return fmt.Errorf("section %q already added", name)
	}
	if s == nil {
		s = NewSection()
	}
	r.index[name] = len(r.sections)
	r.sections = append(r.sections, NamedSection{Name: name, Section: s})
	return nil
}

// Sections returns the sections in the order probes ran.
func (r *Report) Sections() []NamedSection { return r.sections }

// Section looks a section up by domain name.
func (r *Report) Section(name string) (*Section, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.sections[i].Section, true
}

// MarshalJSON emits the full output document.
func (r *Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"system_info":{`)
	for i, ns := range r.sections {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(ns.Name)
		if err != nil {
			return nil, err
		}
		val, err := ns.Section.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteString(`},"generated_at":`)
	ts, err := json.Marshal(r.GeneratedAt.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	buf.Write(ts)
	buf.WriteString(`,"schema_version":`)
	ver, err := json.Marshal(r.Version)
	if err != nil {
		return nil, err
	}
	buf.Write(ver)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
