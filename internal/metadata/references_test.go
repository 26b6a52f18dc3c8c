package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObject_References(t *testing.T) {
	t.Parallel()

	dataSet := Object{
		"id":            "DS1",
		"categoryCombo": map[string]any{"id": "CC1"},
		"dataSetElements": []any{
			map[string]any{"dataElement": map[string]any{"id": "DE1"}},
			map[string]any{"dataElement": map[string]any{"id": "DE2"}},
		},
		"dataElements":    []any{map[string]any{"id": "DE2"}, map[string]any{"id": "DE3"}},
		"attributeValues": []any{map[string]any{"value": "x", "attribute": map[string]any{"id": "AT1"}}},
		"categories":      []any{map[string]any{"id": "C1"}, map[string]any{"name": "no id"}},
	}

	tests := []struct {
		collection string
		want       []string
	}{
		{collection: DataElements, want: []string{"DE2", "DE3", "DE1"}},
		{collection: CategoryCombos, want: []string{"CC1"}},
		{collection: Attributes, want: []string{"AT1"}},
		{collection: Categories, want: []string{"C1"}},
		{collection: OptionSets},
	}

	for _, tt := range tests {
		t.Run(tt.collection, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, dataSet.References(tt.collection))
		})
	}
}

func TestPackage_References(t *testing.T) {
	t.Parallel()

	pkg := Package{
		DataElements: {
			{"id": "A", "optionSet": map[string]any{"id": "OS1"}},
			{"id": "B", "optionSet": map[string]any{"id": "OS1"}},
		},
		Programs: {{"id": "P", "programStages": []any{map[string]any{"id": "PS"}}}},
	}
	assert.Equal(t, []string{"OS1"}, pkg.References(OptionSets))
	assert.Equal(t, []string{"PS"}, pkg.References(ProgramStages))
}

func TestSingular(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "category", singular("categories"))
	assert.Equal(t, "optionSet", singular("optionSets"))
	assert.Equal(t, "attribute", singular("attributes"))
}
