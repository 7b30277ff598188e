// Package validation provides declarative per-field rules for request input.
//
// A caller lists the fields it wants checked together with the rules each
// field must satisfy. Check evaluates every field in order and returns an
// Errors value holding one Violation per failed rule, or nil when the input
// is acceptable.
//
// Usage:
//
//	err := validation.Check(
//	    validation.Field{Name: "username", Value: username, Rules: []validation.Rule{
//	        validation.Required(), validation.Length(3, 100),
//	    }},
//	    validation.Field{Name: "email", Value: email, Rules: []validation.Rule{
//	        validation.Email(),
//	    }},
//	)
//	var verrs validation.Errors
//	if errors.As(err, &verrs) {
//	    // verrs lists field-level violations in declaration order
//	}
package validation
