package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/intake/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Duplicate Section", func(t *testing.T) {
		_, err := schema.New(schema.Object("a", "A"), schema.Object("a", "A"))
		assert.Error(t, err)
	})

	t.Run("Scalar Section Rejected", func(t *testing.T) {
		_, err := schema.New(schema.Text("a", "A"))
		assert.Error(t, err)
	})

	t.Run("Enum Without Options", func(t *testing.T) {
		_, err := schema.New(schema.Object("a", "A", schema.Enum("e", "E")))
		assert.Error(t, err)
	})

	t.Run("MustNew Panics", func(t *testing.T) {
		assert.Panics(t, func() { schema.MustNew(schema.List("l", "L", 3, 1)) })
	})
}

func TestDefaults(t *testing.T) {
	s := testSchema()

	doc := schema.DefaultDocument(s)
	assert.Equal(t, []string{"contact", "people"}, doc.SectionKeys())

	people := doc["people"].([]any)
	assert.Len(t, people, 1)
	assert.Equal(t, map[string]any{"name": ""}, people[0])

	contact := doc["contact"].(map[string]any)
	assert.Equal(t, true, contact["smoker"])
	assert.Equal(t, 0, contact["rooms"])

	v, ok := schema.Defaults(s, "contact")
	require.True(t, ok)
	assert.Equal(t, contact, v)

	_, ok = schema.Defaults(s, "missing")
	assert.False(t, ok)
}

func TestFieldAt(t *testing.T) {
	s := testSchema()

	f, ok := s.FieldAt("people.2.name")
	require.True(t, ok)
	assert.Equal(t, schema.KindString, f.Kind)

	f, ok = s.FieldAt("contact.licensed.g")
	require.True(t, ok)
	assert.Equal(t, "G", f.Label)

	_, ok = s.FieldAt("contact.nope")
	assert.False(t, ok)
}

func TestFieldJSON(t *testing.T) {
	data, err := json.Marshal(schema.Enum("sex", "Sex", "M", "F").Require())
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"sex","label":"Sex","kind":"enum","required":true,"options":["M","F"]}`, string(data))

	var k schema.Kind
	require.NoError(t, json.Unmarshal([]byte(`"list"`), &k))
	assert.Equal(t, schema.KindList, k)

}
