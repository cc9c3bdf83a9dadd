package models

import "gopkg.in/yaml.v3"

// Scenario is a replayable script of mutations against a root model.
type Scenario struct {
	// Name labels the scenario in reports. Defaults to the file name.
	Name string `yaml:"name" json:"name"`
	// Types declares the model types by name.
	Types map[string]TypeSpec `yaml:"types" json:"types"`
	// Root names the type of the root model.
	Root string `yaml:"root" json:"root"`
	// Initial holds the ordered attributes the root is constructed with.
	Initial yaml.Node `yaml:"initial" json:"-"`
	// Steps run in order against the root.
	Steps []Step `yaml:"steps" json:"steps"`
}

// TypeSpec declares one model type.
type TypeSpec struct {
	IDAttribute string                  `yaml:"id_attribute" json:"id_attribute,omitempty"`
	Relations   map[string]RelationSpec `yaml:"relations" json:"relations,omitempty"`
	// Rules are validator tags per attribute, e.g. "required,min=1".
	Rules    map[string]string `yaml:"rules" json:"rules,omitempty"`
	Defaults map[string]any    `yaml:"defaults" json:"defaults,omitempty"`
}

// RelationSpec declares one schema attribute.
type RelationSpec struct {
	// Kind is plain, one, many or custom.
	Kind string `yaml:"kind" json:"kind"`
	// Type is the related type for one, or the member type for many.
	Type string `yaml:"type" json:"type,omitempty"`
	// Convert names the converter for custom.
	Convert string `yaml:"convert" json:"convert,omitempty"`
}

// Step operations.
const (
	OpSet       = "set"
	OpUnset     = "unset"
	OpReset     = "reset"
	OpAdd       = "add"
	OpRemove    = "remove"
	OpReconcile = "reconcile"
)

// Step is a single mutation.
type Step struct {
	Op string `yaml:"op" json:"op"`
	// Path addresses the target from the root: dot separated attribute
	// names, with collection members addressed by index or identity.
	Path string `yaml:"path" json:"path,omitempty"`
	// Attrs is the ordered batch of a set step.
	Attrs yaml.Node `yaml:"attrs" json:"-"`
	// Key is the attribute removed by an unset step.
	Key string `yaml:"key" json:"key,omitempty"`
	// Items feed reset, add and reconcile steps.
	Items []any `yaml:"items" json:"items,omitempty"`
	// IDs select the members removed by a remove step.
	IDs    []any `yaml:"ids" json:"ids,omitempty"`
	Silent bool  `yaml:"silent" json:"silent,omitempty"`
}

// EventRecord is one observed notification.
type EventRecord struct {
	Step   int    `json:"step" yaml:"step"`
	Target string `json:"target" yaml:"target"`
	Name   string `json:"name" yaml:"name"`
	Key    string `json:"key,omitempty" yaml:"key,omitempty"`
}

// Rejection records a step refused by validation.
type Rejection struct {
	Step  int    `json:"step" yaml:"step"`
	Path  string `json:"path,omitempty" yaml:"path,omitempty"`
	Error string `json:"error" yaml:"error"`
}

// Result is the outcome of one replay.
type Result struct {
	Name     string         `json:"name" yaml:"name"`
	Events   []EventRecord  `json:"events" yaml:"events"`
	Rejected []Rejection    `json:"rejected,omitempty" yaml:"rejected,omitempty"`
	Snapshot map[string]any `json:"snapshot" yaml:"snapshot"`
}

// Count returns how many recorded events carry name.
func (r *Result) Count(name string) int {
	n := 0
	for _, e := range r.Events {
		if e.Name == name {
			n++
		}
	}
	return n
}
