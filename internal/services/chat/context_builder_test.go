package chat

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lebonkosi/foliochat/internal/models"
)

func testDocument() *models.ProfileDocument {
	return &models.ProfileDocument{
		Metadata: models.ProfileMetadata{
			AvailableAttributes: []string{"skills", "secondary_school", "contact"},
			QueryHandling:       "route by topic",
		},
		Sections: map[string]json.RawMessage{
			"skills":           json.RawMessage(`["Go", "PHP", "Laravel"]`),
			"secondary_school": json.RawMessage(`{"name": "Mzuzu Secondary", "completed": 2015}`),
			"contact":          json.RawMessage(`{"email": "lebo@example.com"}`),
		},
	}
}

func TestBuildContext_ContainsSelectedSections(t *testing.T) {
	doc := testDocument()
	result := BuildContext(doc, []string{"secondary_school"})

	assert.True(t, strings.HasPrefix(result, "Selected sections: secondary_school"))
	assert.Contains(t, result, "=== SECONDARY_SCHOOL ===")
	assert.Contains(t, result, "Mzuzu Secondary")
	assert.NotContains(t, result, "=== SKILLS ===")
}

func TestBuildContext_FollowsRouterOrder(t *testing.T) {
	doc := testDocument()
	result := BuildContext(doc, []string{"contact", "skills"})

	contactIdx := strings.Index(result, "=== CONTACT ===")
	skillsIdx := strings.Index(result, "=== SKILLS ===")
	require.GreaterOrEqual(t, contactIdx, 0)
	require.GreaterOrEqual(t, skillsIdx, 0)
	assert.Less(t, contactIdx, skillsIdx)
}

func TestBuildContext_SkipsMissingSections(t *testing.T) {
	doc := testDocument()
	result := BuildContext(doc, []string{"skills", "projects"})

	assert.Contains(t, result, "Selected sections: skills, projects")
	assert.Contains(t, result, "=== SKILLS ===")
	assert.NotContains(t, result, "=== PROJECTS ===")
}

func TestBuildContext_Deterministic(t *testing.T) {
	doc := testDocument()
	keys := []string{"skills", "secondary_school"}

	first := BuildContext(doc, keys)
	second := BuildContext(doc, keys)
	assert.Equal(t, first, second)
}

func TestBuildContext_PrettyPrintsSectionValues(t *testing.T) {
	doc := testDocument()
	result := BuildContext(doc, []string{"secondary_school"})

	// json.Indent output, not the raw single-line value
	assert.Contains(t, result, "\"name\": \"Mzuzu Secondary\"")
}
