// Package schema provides declarative rule tables for form sections.
//
// A section is a Field of KindObject or KindList whose Fields describe the record.
// One generic evaluator walks the table, so every form family shares the same
// messages and normalization:
//
//	applicant := schema.Object("applicantInfo", "Applicant",
//	    schema.Text("name", "Full name").Require(),
//	    schema.Email("email", "Email").Require(),
//	    schema.Enum("sex", "Sex", "M", "F", "X"),
//	)
//	s := schema.MustNew(applicant)
//
//	normalized, err := schema.ValidateSection(s, "applicantInfo", value)
//	if err != nil {
//	    errs := schema.ToErrorMap(err) // {"applicantInfo.name": "required", ...}
//	}
//
// Validation never mutates its input. The normalized copy carries exactly the declared
// fields: unknown keys are dropped, numeric strings are trimmed, numbers are coerced and
// absent optional values take their declared default.
//
// This package depends only on pkg/domain and the standard library.
package schema
