package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synclab/metasync/internal/rules"
)

func TestModels_DefaultRulesAreConsistent(t *testing.T) {
	t.Parallel()

	for _, model := range Models() {
		t.Run(model.Collection, func(t *testing.T) {
			t.Parallel()

			for _, path := range model.IncludeRules {
				assert.NotContains(t, model.ExcludeRules, path)
				for _, parent := range rules.ParentsOf(path) {
					assert.Contains(t, model.IncludeRules, parent, "parent of %s", path)
				}
			}
			for _, path := range model.ExcludeRules {
				for _, parent := range rules.ParentsOf(path) {
					assert.NotContains(t, model.IncludeRules, parent, "parent of excluded %s", path)
				}
			}
		})
	}
}

func TestLookupModel(t *testing.T) {
	t.Parallel()

	model, ok := LookupModel(DataElements)
	require.True(t, ok)
	assert.Equal(t, "Data Element", model.DisplayName)

	model.IncludeRules[0] = "mutated"
	again, _ := LookupModel(DataElements)
	assert.NotEqual(t, "mutated", again.IncludeRules[0])

	_, ok = LookupModel("unknown")
	assert.False(t, ok)
}
