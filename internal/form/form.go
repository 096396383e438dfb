// Package form implements a declarative field validation runner. A form is
// an ordered list of fields, each carrying an ordered list of validators.
// Validators for a field run in sequence and stop at that field's first
// failure, but every field is evaluated so all failures are collected before
// reporting.
package form

import "context"

// Values holds submitted form fields as strings, keyed by field name.
type Values map[string]string

// Errors maps field names to the first failed validation message for each.
// An empty map means the form is valid.
type Errors map[string]string

// Validator checks a single field value. The whole form is passed alongside
// the value so cross-field rules (password confirmation) can see siblings.
type Validator func(ctx context.Context, form Values, value string) error

// Field pairs a field name with its ordered validators.
type Field struct {
	Name       string
	Validators []Validator
}

// Run evaluates every field against its validators and returns the collected
// failures.
func Run(ctx context.Context, form Values, fields []Field) Errors {
	errs := Errors{}
	for _, f := range fields {
		value := form[f.Name]
		for _, validate := range f.Validators {
			if err := validate(ctx, form, value); err != nil {
				errs[f.Name] = err.Error()
				break
			}
		}
	}
	return errs
}
