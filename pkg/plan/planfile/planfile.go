// Package planfile reads and writes the YAML projection of a plan. The
// projection is the CLI's interchange format: export a plan, edit the
// file, apply it back. Serialization is an explicit projection of the
// decoded plan, nothing more; the commit-description grammar remains the
// only persistent encoding.
package planfile

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/entrhq/planlog/pkg/plan"
)

// File is the YAML document shape.
type File struct {
	// Tag is informational on export and optional on input; save modes
	// that own the tag (new-plan, update-existing) override it.
	Tag   string     `yaml:"tag,omitempty"`
	Tasks []TaskSpec `yaml:"tasks"`
}

// TaskSpec is one task in the projection.
type TaskSpec struct {
	Key         string   `yaml:"key,omitempty"`
	Type        string   `yaml:"type"`
	Scope       string   `yaml:"scope,omitempty"`
	Title       string   `yaml:"title"`
	Intent      string   `yaml:"intent,omitempty"`
	Objectives  []string `yaml:"objectives,omitempty"`
	Constraints []string `yaml:"constraints,omitempty"`
	Completed   bool     `yaml:"completed,omitempty"`
}

// Decode reads a plan file. Unknown fields are rejected so a typo in an
// edited file fails loudly instead of being dropped.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("planfile: failed to decode: %w", err)
	}
	if len(f.Tasks) == 0 {
		return nil, fmt.Errorf("planfile: file contains no tasks")
	}
	return &f, nil
}

// Read decodes the plan file at path.
func Read(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("planfile: failed to open %s: %w", path, err)
	}
	defer file.Close()
	return Decode(file)
}

// TaskList converts the file's specs into tasks. The file-level tag, when
// present, is applied to every task.
func (f *File) TaskList() []plan.Task {
	tasks := make([]plan.Task, len(f.Tasks))
	for i, s := range f.Tasks {
		tasks[i] = plan.Task{
			Key:         s.Key,
			Tag:         f.Tag,
			Type:        plan.TaskType(s.Type),
			Scope:       s.Scope,
			Title:       s.Title,
			Intent:      s.Intent,
			Objectives:  s.Objectives,
			Constraints: s.Constraints,
			Completed:   s.Completed,
		}
	}
	return tasks
}

// Project builds the YAML document for a decoded plan.
func Project(p *plan.Plan) *File {
	f := &File{Tag: p.Tag, Tasks: make([]TaskSpec, len(p.Tasks))}
	for i, t := range p.Tasks {
		f.Tasks[i] = TaskSpec{
			Key:         t.Key,
			Type:        string(t.Type),
			Scope:       t.Scope,
			Title:       t.Title,
			Intent:      t.Intent,
			Objectives:  t.Objectives,
			Constraints: t.Constraints,
			Completed:   t.Completed,
		}
	}
	return f
}

// Encode writes the document as YAML.
func Encode(w io.Writer, f *File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("planfile: failed to encode: %w", err)
	}
	return enc.Close()
}
