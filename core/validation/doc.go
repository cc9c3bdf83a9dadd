// Package validation implements the model validation hook on top of
// go-playground/validator.
//
// Rules are validator tag strings keyed by attribute name, evaluated with
// Validate.ValidateMap against the prospective attribute map of a Set call:
//
//	v := validation.New(validation.Rules{
//	    "id":    "omitempty,identity",
//	    "title": "required,max=128",
//	})
//	bookType.Validator = v
//
// Besides the stock tags the package registers "identity", which accepts strings
// and numbers usable as an identity attribute.
package validation
