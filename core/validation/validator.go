package validation

import (
	"fmt"
	"sort"
	"strings"

	"nested-models/core/utils"

	"github.com/go-playground/validator/v10"
)

// attrValidate is the shared validator instance. Initialised in init() with the
// custom tags.
var attrValidate *validator.Validate

func init() {
	attrValidate = validator.New()

	_ = attrValidate.RegisterValidation("identity", validateIdentity)
}

// validateIdentity accepts non-empty strings and any number.
func validateIdentity(fl validator.FieldLevel) bool {
	field := fl.Field()
	if !field.IsValid() || !field.CanInterface() {
		return false
	}
	value := field.Interface()
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return utils.IsNumber(value)
}

// Rules maps attribute names to validator tag strings.
type Rules map[string]string

// Error lists the attributes that failed validation.
type Error struct {
	// Fields maps attribute name to the validator message.
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// RuleValidator checks attribute maps against a fixed rule set.
type RuleValidator struct {
	rules map[string]any
}

// New builds a validator from rules. Empty tags are ignored.
func New(rules Rules) *RuleValidator {
	converted := make(map[string]any, len(rules))
	for attr, tag := range rules {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		converted[attr] = tag
	}
	return &RuleValidator{rules: converted}
}

// Attributes returns the attribute names that carry rules, sorted.
func (v *RuleValidator) Attributes() []string {
	out := make([]string, 0, len(v.rules))
	for k := range v.rules {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Validate checks attrs and returns an *Error naming every failing attribute.
func (v *RuleValidator) Validate(attrs map[string]any) error {
	if v == nil || len(v.rules) == 0 {
		return nil
	}
	if attrs == nil {
		attrs = map[string]any{}
	}

	failures := attrValidate.ValidateMap(attrs, v.rules)
	if len(failures) == 0 {
		return nil
	}

	out := &Error{Fields: make(map[string]string, len(failures))}
	for attr, failure := range failures {
		switch f := failure.(type) {
		case validator.ValidationErrors:
			msgs := make([]string, 0, len(f))
			for _, fe := range f {
				msgs = append(msgs, fe.Tag())
			}
			out.Fields[attr] = "failed " + strings.Join(msgs, ",")
		case error:
			out.Fields[attr] = f.Error()
		default:
			out.Fields[attr] = fmt.Sprint(f)
		}
	}
	return out
}
