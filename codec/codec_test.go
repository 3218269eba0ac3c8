package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want any
	}{
		{"Int", `42`, 42},
		{"Float", `1.5`, 1.5},
		{"IntegralFloat", `1.0`, 1.0},
		{"Exponent", `1e3`, 1000.0},
		{"String", `"a"`, "a"},
		{"Null", `null`, nil},
		{"Bool", `true`, true},
		{"Nested", `{"a": [1, 2.5, {"b": null}]}`, map[string]any{"a": []any{1, 2.5, map[string]any{"b": nil}}}},
	}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		for _, tt := range tests {
			t.Run(c.Name()+"/"+tt.name, func(t *testing.T) {
				got, err := c.Document([]byte(tt.in))
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	}
}

func TestDocumentInvalid(t *testing.T) {
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		_, err := c.Document([]byte(`{"a":`))
		assert.Error(t, err, c.Name())
	}
}

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	c, ok = ByName("go-json")
	require.True(t, ok)
	assert.Equal(t, "go-json", c.Name())

	_, ok = ByName("xml")
	assert.False(t, ok)
}

func TestMustMarshalDefault(t *testing.T) {
	assert.JSONEq(t, `{"a":[1,2]}`, string(MustMarshal(nil, map[string]any{"a": []int{1, 2}})))
}
