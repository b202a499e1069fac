package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizer_String(t *testing.T) {
	s := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "John Doe", "John Doe"},
		{"script", "<script>alert(1)</script>Bob", "Bob"},
		{"onclick", `<b onclick="evil()">hi</b>`, "<b>hi</b>"},
		{"bold kept", "<b>hi</b>", "<b>hi</b>"},
		{"quotes untouched", `O'Reilly "quoted"`, `O'Reilly "quoted"`},
		{"token untouched", "Bearer eyJhbGci.eyJzdWIi.sig", "Bearer eyJhbGci.eyJzdWIi.sig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.String(tt.input))
		})
	}
}

func TestSanitizer_JSON(t *testing.T) {
	s := New()

	out, err := s.JSON([]byte(`{"name":"<script>x</script>Bob","age":30,"tags":["<script>y</script>ok"],"nested":{"d":"<i>fine</i>"}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Bob","age":30,"tags":["ok"],"nested":{"d":"<i>fine</i>"}}`, string(out))
}

func TestSanitizer_JSON_Empty(t *testing.T) {
	s := New()

	out, err := s.JSON(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSanitizer_JSON_Invalid(t *testing.T) {
	s := New()

	_, err := s.JSON([]byte(`{"name":`))
	assert.Error(t, err)
}
