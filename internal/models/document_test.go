package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentPaths(t *testing.T) {
	var d Document
	require.NoError(t, json.Unmarshal([]byte(`{
		"application": {"method": "  email  ", "deadline": null, "juried": "TRUE"},
		"vendor_requirements": {"tent_required": false, "insurance_required": "maybe"},
		"operations": {"policies": {"refunds": "none"}},
		"name": "   "
	}`), &d))

	s, ok := d.String("application.method")
	assert.True(t, ok)
	assert.Equal(t, "email", s)

	_, ok = d.String("name")
	assert.False(t, ok, "blank strings are absent")

	_, ok = d.At("application.deadline")
	assert.False(t, ok, "null is absent")

	_, ok = d.At("application.method.inner")
	assert.False(t, ok)

	b, ok := d.Bool("application.is_juried", "application.juried")
	assert.True(t, ok)
	assert.True(t, b)

	b, ok = d.Bool("vendor_requirements.tent_required")
	assert.True(t, ok)
	assert.False(t, b)

	_, ok = d.Bool("vendor_requirements.insurance_required")
	assert.False(t, ok)

	assert.Equal(t, Document{"refunds": "none"}, d.Object("policies", "operations.policies"))
	assert.Nil(t, d.Object("missing", "application.method"))

	v, ok := d.Lookup("missing", "vendor_requirements.tent_required")
	assert.True(t, ok)
	assert.Equal(t, false, v)
}

func TestDocumentSub(t *testing.T) {
	d := Document{
		"plain":  map[string]any{"a": 1},
		"typed":  Document{"b": 2},
		"scalar": 3,
	}
	assert.Equal(t, Document{"a": 1}, d.Sub("plain"))
	assert.Equal(t, Document{"b": 2}, d.Sub("typed"))
	assert.Nil(t, d.Sub("scalar"))
	assert.Nil(t, d.Sub("missing"))
}
