package schema_test

import (
	"errors"
	"testing"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/schema"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *schema.Schema {
	return schema.MustNew(
		schema.Object("contact", "Contact",
			schema.Text("name", "Name").Require(),
			schema.Email("email", "Email").Require(),
			schema.Text("phone", "Phone"),
			schema.Enum("sex", "Sex", "M", "F", "X"),
			schema.Numeric("year", "Year"),
			schema.Number("rooms", "Rooms").WithDefault(0),
			schema.Bool("smoker", "Smoker").WithDefault(true),
			schema.Object("licensed", "Licensed",
				schema.Text("g", "G"),
			),
		),
		schema.List("people", "People", 1, 3,
			schema.Text("name", "Name").Require(),
		),
	)
}

func TestValidateSection(t *testing.T) {
	s := testSchema()

	t.Run("Required And Email Messages", func(t *testing.T) {
		_, err := schema.ValidateSection(s, "contact", map[string]any{
			"name":  "",
			"email": "x",
		})
		require.Error(t, err)

		assert.Equal(t, domain.ErrorMap{
			"contact.name":  "required",
			"contact.email": "invalid email format",
		}, schema.ToErrorMap(err))
	})

	t.Run("Whitespace Is Empty", func(t *testing.T) {
		_, err := schema.ValidateSection(s, "contact", map[string]any{
			"name":  "   ",
			"email": "a@b.co",
		})
		assert.Equal(t, domain.ErrorMap{"contact.name": "required"}, schema.ToErrorMap(err))
	})

	t.Run("Normalization", func(t *testing.T) {
		input := map[string]any{
			"name":    "Jane",
			"email":   "jane@example.com",
			"year":    " 2015 ",
			"rooms":   "2",
			"unknown": "dropped",
		}
		got, err := schema.ValidateSection(s, "contact", input)
		require.NoError(t, err)

		want := map[string]any{
			"name":     "Jane",
			"email":    "jane@example.com",
			"phone":    "",
			"sex":      "",
			"year":     "2015",
			"rooms":    2,
			"smoker":   true,
			"licensed": map[string]any{"g": ""},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("normalized mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, "dropped", input["unknown"], "input must not be mutated")
		assert.Equal(t, " 2015 ", input["year"])
	})

	t.Run("Enum And Numeric Failures", func(t *testing.T) {
		_, err := schema.ValidateSection(s, "contact", map[string]any{
			"name":   "Jane",
			"email":  "jane@example.com",
			"sex":    "Q",
			"year":   "twenty",
			"rooms":  "many",
			"smoker": "yes",
		})
		assert.Equal(t, domain.ErrorMap{
			"contact.sex":    "must be one of: M, F, X",
			"contact.year":   "must be a number",
			"contact.rooms":  "must be a number",
			"contact.smoker": "expected boolean",
		}, schema.ToErrorMap(err))

		for _, bad := range []string{"NaN", "Inf", "-Infinity", "0x1p3", "1_000"} {
			_, err := schema.ValidateSection(s, "contact", map[string]any{
				"name": "Jane", "email": "jane@example.com", "year": bad, "rooms": bad,
			})
			assert.Equal(t, domain.ErrorMap{
				"contact.year":  "must be a number",
				"contact.rooms": "must be a number",
			}, schema.ToErrorMap(err), bad)
		}
	})

	t.Run("Whole Floats Become Int", func(t *testing.T) {
		got, err := schema.ValidateSection(s, "contact", map[string]any{
			"name": "J", "email": "j@x.io", "rooms": 3.0,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, got.(map[string]any)["rooms"])
	})

	t.Run("Unknown Section", func(t *testing.T) {
		_, err := schema.ValidateSection(s, "nope", nil)
		assert.True(t, errors.Is(err, domain.ErrUnknownSection))
		assert.Empty(t, schema.ValidationErrors(err))
	})
}

func TestValidateSection_List(t *testing.T) {
	s := testSchema()

	t.Run("Positional Paths", func(t *testing.T) {
		_, err := schema.ValidateSection(s, "people", []any{
			map[string]any{"name": "A"},
			map[string]any{"name": ""},
		})
		assert.Equal(t, domain.ErrorMap{"people.1.name": "required"}, schema.ToErrorMap(err))
	})

	t.Run("Bounds", func(t *testing.T) {
		_, err := schema.ValidateSection(s, "people", []any{})
		assert.Equal(t, domain.ErrorMap{"people": "at least 1 entries required"}, schema.ToErrorMap(err))

		four := []any{
			map[string]any{"name": "A"}, map[string]any{"name": "B"},
			map[string]any{"name": "C"}, map[string]any{"name": "D"},
		}
		_, err = schema.ValidateSection(s, "people", four)
		assert.Equal(t, domain.ErrorMap{"people": "at most 3 entries allowed"}, schema.ToErrorMap(err))
	})

	t.Run("Typed Slice Accepted", func(t *testing.T) {
		got, err := schema.ValidateSection(s, "people", []map[string]any{{"name": "A"}})
		require.NoError(t, err)
		assert.Equal(t, []any{map[string]any{"name": "A"}}, got)
	})
}

func TestValidateDocument(t *testing.T) {
	s := testSchema()
	doc := domain.Document{
		"contact": map[string]any{"name": "", "email": "bad"},
		"people":  []any{map[string]any{"name": ""}},
		"extra":   map[string]any{},
	}

	normalized, err := schema.ValidateDocument(s, doc)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorMap{
		"contact.name":  "required",
		"contact.email": "invalid email format",
		"people.0.name": "required",
	}, schema.ToErrorMap(err))
	assert.ElementsMatch(t, []string{"contact", "people"}, normalized.SectionKeys())
	assert.Contains(t, doc, "extra")
}

func TestCheck(t *testing.T) {
	s := schema.MustNew(schema.Object("car", "Car",
		schema.Number("year", "Year").WithCheck(func(v any) error {
			if v.(int) < 1900 {
				return errors.New("too old")
			}
			return nil
		}),
	))
	_, err := schema.ValidateSection(s, "car", map[string]any{"year": 1850})
	assert.Equal(t, domain.ErrorMap{"car.year": "too old"}, schema.ToErrorMap(err))
}
