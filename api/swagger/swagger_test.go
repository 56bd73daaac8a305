package swagger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestDocumentRendersConfiguredInfo(t *testing.T) {
	original := *SwaggerInfo
	t.Cleanup(func() { *SwaggerInfo = original })

	Configure("Courses", "2.1", `Course "catalogue"`, "/api")

	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed struct {
		Info struct {
			Title       string `json:"title"`
			Version     string `json:"version"`
			Description string `json:"description"`
		} `json:"info"`
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
		Security map[string]json.RawMessage `json:"securityDefinitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	assert.Equal(t, "Courses", parsed.Info.Title)
	assert.Equal(t, "2.1", parsed.Info.Version)
	assert.Equal(t, `Course "catalogue"`, parsed.Info.Description)
	assert.Equal(t, "/api", parsed.BasePath)
	assert.Contains(t, parsed.Paths, "/courses")
	assert.Contains(t, parsed.Paths, "/courses/{id}")
	assert.Contains(t, parsed.Security, "BearerAuth")
}

func TestConfigureKeepsDefaultsForEmptyValues(t *testing.T) {
	original := *SwaggerInfo
	t.Cleanup(func() { *SwaggerInfo = original })

	Configure("", "", "", "")

	assert.Equal(t, original.Title, SwaggerInfo.Title)
	assert.Equal(t, original.BasePath, SwaggerInfo.BasePath)
}
