// Package validation provides input validation for configuration and
// request payloads.
//
// It supports both struct tag validation (using the validator library)
// and programmatic validation with error collection.
//
// # Struct Tag Validation
//
//	type BuildRequest struct {
//	    Branch string `validate:"required,min=1"`
//	    Repo   string `validate:"required,url"`
//	}
//	err := validation.Validate(req)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("branch", req.Branch)
//	err := v.Validate()
package validation
