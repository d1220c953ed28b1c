package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const counterSchema = `{
  "type": "object",
  "required": ["count"],
  "properties": {
    "count": {"type": "integer", "minimum": 0}
  }
}`

func TestValidate(t *testing.T) {
	s, err := Compile("test-counter", []byte(counterSchema))
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", `{"count": 3}`, false},
		{"zero", `{"count": 0}`, false},
		{"negative", `{"count": -1}`, true},
		{"missing field", `{}`, true},
		{"wrong type", `{"count": "three"}`, true},
		{"not json", `{count`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Validate([]byte(tt.input))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr))
			assert.Equal(t, "test-counter", verr.Schema)
		})
	}
}

func TestCompileCaches(t *testing.T) {
	a, err := Compile("test-cached", []byte(counterSchema))
	require.NoError(t, err)
	b, err := Compile("test-cached", []byte(`not even json`))
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestCompileRejectsBadDefinition(t *testing.T) {
	_, err := Compile("test-broken", []byte(`{"type": `))
	assert.Error(t, err)
}
