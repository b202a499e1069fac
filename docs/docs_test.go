package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDoc(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed struct {
		BasePath string                     `json:"basePath"`
		Schemes  []string                   `json:"schemes"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	assert.Equal(t, "/api", parsed.BasePath)
	assert.Equal(t, []string{"http"}, parsed.Schemes)
	for _, p := range []string{"/register", "/login", "/logout", "/current-user", "/users", "/users/{id}"} {
		assert.Contains(t, parsed.Paths, p)
	}
}
