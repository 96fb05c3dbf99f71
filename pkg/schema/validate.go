package schema

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/aretw0/intake/pkg/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateSection checks one section value against its rule table.
// It returns the normalized copy and, when rules fail, an *AggregateError.
// The input is never mutated. An undeclared key wraps domain.ErrUnknownSection.
func ValidateSection(s *Schema, key string, value any) (any, error) {
	sec, ok := s.Section(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSection, key)
	}
	var errs []error
	normalized := evaluate(sec, key, value, &errs)
	if len(errs) > 0 {
		return normalized, &AggregateError{Errors: errs}
	}
	return normalized, nil
}

// ValidateDocument checks every declared section of doc.
// Violations of all sections are collected in declaration order.
// Unknown sections are dropped from the normalized copy.
func ValidateDocument(s *Schema, doc domain.Document) (domain.Document, error) {
	var errs []error
	out := make(domain.Document, len(s.sections))
	for _, sec := range s.sections {
		out[sec.Key] = evaluate(sec, sec.Key, doc[sec.Key], &errs)
	}
	if len(errs) > 0 {
		return out, &AggregateError{Errors: errs}
	}
	return out, nil
}

func evaluate(f Field, path string, value any, errs *[]error) any {
	fail := func(reason string) {
		*errs = append(*errs, &ValidationError{Path: path, Reason: reason, Value: value})
	}

	switch f.Kind {
	case KindObject:
		rec, ok := asRecord(value)
		if !ok {
			fail("expected object")
			return defaultFor(f)
		}
		return evaluateRecord(f.Fields, path, rec, errs)

	case KindList:
		items, ok := asList(value)
		if !ok {
			fail("expected list")
			return defaultFor(f)
		}
		if len(items) < f.MinItems {
			fail(fmt.Sprintf("at least %d entries required", f.MinItems))
		}
		if f.MaxItems > 0 && len(items) > f.MaxItems {
			fail(fmt.Sprintf("at most %d entries allowed", f.MaxItems))
		}
		out := make([]any, len(items))
		for i, item := range items {
			itemPath := path + "." + strconv.Itoa(i)
			rec, ok := asRecord(item)
			if !ok {
				*errs = append(*errs, &ValidationError{Path: itemPath, Reason: "expected object", Value: item})
				out[i] = defaultRecord(f.Fields)
				continue
			}
			out[i] = evaluateRecord(f.Fields, itemPath, rec, errs)
		}
		return out

	case KindBool:
		if value == nil {
			if f.Required {
				fail("required")
			}
			return defaultFor(f)
		}
		b, ok := value.(bool)
		if !ok {
			fail("expected boolean")
			return defaultFor(f)
		}
		return check(f, b, fail)

	case KindNumber:
		if isEmpty(value) {
			if f.Required {
				fail("required")
			}
			return defaultFor(f)
		}
		n, ok := toNumber(value)
		if !ok {
			fail("must be a number")
			return value
		}
		return check(f, n, fail)
	}

	// Text kinds.
	var text string
	switch v := value.(type) {
	case nil:
	case string:
		text = v
	case int, int64, float64:
		if f.Kind != KindNumeric {
			fail("expected string")
			return value
		}
		text = fmt.Sprint(v)
	default:
		fail("expected string")
		return value
	}
	if strings.TrimSpace(text) == "" {
		if f.Required {
			fail("required")
			return text
		}
		return defaultFor(f)
	}

	switch f.Kind {
	case KindEnum:
		if !contains(f.Options, text) {
			fail("must be one of: " + strings.Join(f.Options, ", "))
			return text
		}
	case KindEmail:
		if !emailPattern.MatchString(text) {
			fail("invalid email format")
			return text
		}
	case KindNumeric:
		text = strings.TrimSpace(text)
		if _, ok := parseDecimal(text); !ok {
			fail("must be a number")
			return text
		}
	}
	return check(f, text, fail)
}

func evaluateRecord(fields []Field, path string, rec map[string]any, errs *[]error) map[string]any {
	out := make(map[string]any, len(fields))
	for _, child := range fields {
		out[child.Key] = evaluate(child, path+"."+child.Key, rec[child.Key], errs)
	}
	return out
}

func check(f Field, v any, fail func(string)) any {
	if f.Check != nil {
		if err := f.Check(v); err != nil {
			fail(err.Error())
		}
	}
	return v
}

func asRecord(v any) (map[string]any, bool) {
	switch rec := v.(type) {
	case nil:
		return map[string]any{}, true
	case map[string]any:
		return rec, true
	case domain.Document:
		return map[string]any(rec), true
	}
	return nil, false
}

func asList(v any) ([]any, bool) {
	switch items := v.(type) {
	case nil:
		return nil, true
	case []any:
		return items, true
	case []map[string]any:
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = item
		}
		return out, true
	}
	return nil, false
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// toNumber coerces numbers and numeric strings. Whole values become int.
func toNumber(v any) (any, bool) {
	var f float64
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float32:
		f = float64(n)
	case float64:
		f = n
	case string:
		parsed, ok := parseDecimal(strings.TrimSpace(n))
		if !ok {
			return nil, false
		}
		f = parsed
	default:
		return nil, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int(f), true
	}
	return f, true
}

// parseDecimal accepts finite base-10 numbers only. ParseFloat alone also takes
// NaN, Inf, hex floats and digit separators.
func parseDecimal(text string) (float64, bool) {
	if strings.ContainsAny(text, "xXpP_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
