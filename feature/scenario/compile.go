package scenario

import (
	"fmt"

	"nested-models/core/model"
	"nested-models/core/validation"
	"nested-models/feature/scenario/models"
)

// registry holds the compiled types of one scenario.
type registry struct {
	types       map[string]*model.Type
	collections map[string]*model.CollectionType
}

// compile turns the declared types into model types. Relations may refer to
// each other in cycles.
func compile(sc *models.Scenario) (*registry, error) {
	r := &registry{
		types:       make(map[string]*model.Type, len(sc.Types)),
		collections: make(map[string]*model.CollectionType),
	}
	for name, spec := range sc.Types {
		t := &model.Type{
			Name:        name,
			IDAttribute: spec.IDAttribute,
			Defaults:    spec.Defaults,
		}
		if len(spec.Rules) > 0 {
			t.Validator = validation.New(validation.Rules(spec.Rules))
		}
		r.types[name] = t
	}

	for name, spec := range sc.Types {
		if len(spec.Relations) == 0 {
			continue
		}
		schema := make(model.Schema, len(spec.Relations))
		for attr, rel := range spec.Relations {
			compiled, err := r.relation(rel)
			if err != nil {
				return nil, fmt.Errorf("type %s, relation %s: %w", name, attr, err)
			}
			schema[attr] = compiled
		}
		r.types[name].Schema = schema
	}
	return r, nil
}

func (r *registry) relation(spec models.RelationSpec) (model.Relation, error) {
	kind, err := model.ParseKind(spec.Kind)
	if err != nil {
		return model.Relation{}, err
	}
	switch kind {
	case model.KindOne:
		t, ok := r.types[spec.Type]
		if !ok {
			return model.Relation{}, fmt.Errorf("%q: %w", spec.Type, ErrUnknownType)
		}
		return model.One(t), nil
	case model.KindMany:
		ct, err := r.collection(spec.Type)
		if err != nil {
			return model.Relation{}, err
		}
		return model.Many(ct), nil
	case model.KindCustom:
		fn, ok := converters[spec.Convert]
		if !ok {
			return model.Relation{}, fmt.Errorf("unknown converter %q", spec.Convert)
		}
		return model.Custom(fn), nil
	default:
		return model.Plain(), nil
	}
}

// collection returns the shared collection type for members of type name.
func (r *registry) collection(name string) (*model.CollectionType, error) {
	if ct, ok := r.collections[name]; ok {
		return ct, nil
	}
	t, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownType)
	}
	ct := &model.CollectionType{Name: name + "_list", Model: t}
	r.collections[name] = ct
	return ct, nil
}
