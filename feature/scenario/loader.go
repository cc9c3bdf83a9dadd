package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nested-models/core/model"
	"nested-models/feature/scenario/models"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownType is returned when a scenario names an undeclared type.
	ErrUnknownType = errors.New("unknown type")
	// ErrUnknownOp is returned for an unsupported step operation.
	ErrUnknownOp = errors.New("unknown operation")
	// ErrBadPath is returned when a step path does not address a model or
	// collection.
	ErrBadPath = errors.New("bad path")
)

// Load reads and checks the scenario file at path.
func Load(path string) (*models.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// Parse decodes and checks a scenario document.
func Parse(data []byte) (*models.Scenario, error) {
	var sc models.Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	if err := Check(&sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Check validates a scenario without replaying it. All problems are reported.
func Check(sc *models.Scenario) error {
	var errs []error

	if sc.Root == "" {
		errs = append(errs, errors.New("root type is required"))
	} else if _, ok := sc.Types[sc.Root]; !ok {
		errs = append(errs, fmt.Errorf("root %q: %w", sc.Root, ErrUnknownType))
	}
	if !isMapping(&sc.Initial) && !isEmpty(&sc.Initial) {
		errs = append(errs, errors.New("initial must be a mapping"))
	}

	for name, spec := range sc.Types {
		for attr, rel := range spec.Relations {
			if err := checkRelation(sc, rel); err != nil {
				errs = append(errs, fmt.Errorf("type %s, relation %s: %w", name, attr, err))
			}
		}
	}

	for i, step := range sc.Steps {
		if err := checkStep(step); err != nil {
			errs = append(errs, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err))
		}
	}
	return errors.Join(errs...)
}

func checkRelation(sc *models.Scenario, rel models.RelationSpec) error {
	kind, err := model.ParseKind(rel.Kind)
	if err != nil {
		return err
	}
	switch kind {
	case model.KindOne, model.KindMany:
		if _, ok := sc.Types[rel.Type]; !ok {
			return fmt.Errorf("%q: %w", rel.Type, ErrUnknownType)
		}
	case model.KindCustom:
		if _, ok := converters[rel.Convert]; !ok {
			return fmt.Errorf("unknown converter %q", rel.Convert)
		}
	}
	return nil
}

func checkStep(step models.Step) error {
	switch step.Op {
	case models.OpSet:
		if !isMapping(&step.Attrs) {
			return errors.New("attrs must be a mapping")
		}
	case models.OpUnset:
		if step.Key == "" {
			return errors.New("key is required")
		}
	case models.OpRemove:
		if len(step.IDs) == 0 {
			return errors.New("ids are required")
		}
	case models.OpReset, models.OpAdd, models.OpReconcile:
	default:
		return fmt.Errorf("%q: %w", step.Op, ErrUnknownOp)
	}
	return nil
}

func isEmpty(n *yaml.Node) bool {
	return n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func isMapping(n *yaml.Node) bool {
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		n = n.Content[0]
	}
	return n.Kind == yaml.MappingNode
}

// batchOf decodes a mapping node into an ordered batch. Nested values decode
// into plain maps and slices.
func batchOf(n *yaml.Node) (*model.Batch, error) {
	b := model.NewBatch()
	if isEmpty(n) {
		return b, nil
	}
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		var value any
		if err := n.Content[i+1].Decode(&value); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Content[i+1].Line, err)
		}
		b.Put(n.Content[i].Value, value)
	}
	return b, nil
}
