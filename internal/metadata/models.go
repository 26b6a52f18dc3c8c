package metadata

import (
	"slices"
	"sort"
)

// Collection names of the models known to the engine
const (
	DataElements            = "dataElements"
	DataElementGroups       = "dataElementGroups"
	DataElementGroupSets    = "dataElementGroupSets"
	DataSets                = "dataSets"
	Programs                = "programs"
	ProgramStages           = "programStages"
	Indicators              = "indicators"
	IndicatorGroups         = "indicatorGroups"
	OrganisationUnits       = "organisationUnits"
	OrganisationUnitGroups  = "organisationUnitGroups"
	CategoryCombos          = "categoryCombos"
	Categories              = "categories"
	CategoryOptions         = "categoryOptions"
	CategoryOptionCombos    = "categoryOptionCombos"
	OptionSets              = "optionSets"
	Options                 = "options"
	ValidationRules         = "validationRules"
	UserGroups              = "userGroups"
	Attributes              = "attributes"
	LegendSets              = "legendSets"
	ProgramIndicators       = "programIndicators"
	TrackedEntityAttributes = "trackedEntityAttributes"
)

// Model describes a metadata type and its schema default dependency rules.
// Rules are dotted dependency paths rooted at the model.
type Model struct {
	Collection   string
	DisplayName  string
	IncludeRules []string
	ExcludeRules []string
}

var categoryComboRules = []string{
	"categoryCombos",
	"categoryCombos.attributes",
	"categoryCombos.categoryOptionCombos",
	"categoryCombos.categories",
	"categoryCombos.categories.attributes",
	"categoryCombos.categories.categoryOptions",
	"categoryCombos.categories.categoryOptions.attributes",
}

var optionSetRules = []string{
	"optionSets",
	"optionSets.attributes",
	"optionSets.options",
	"optionSets.options.attributes",
}

var registry = map[string]Model{
	DataElements: {
		Collection:  DataElements,
		DisplayName: "Data Element",
		IncludeRules: concat(
			[]string{"attributes", "legendSets"},
			categoryComboRules,
			optionSetRules,
		),
		ExcludeRules: []string{
			"dataElementGroups",
			"dataElementGroups.attributes",
			"dataElementGroups.dataElementGroupSets",
			"dataElementGroups.dataElementGroupSets.attributes",
			"dataSets",
			"dataSets.attributes",
		},
	},
	DataElementGroups: {
		Collection:  DataElementGroups,
		DisplayName: "Data Element Group",
		IncludeRules: concat(
			[]string{"attributes", "dataElements", "dataElements.attributes", "dataElements.legendSets"},
			prefixed("dataElements", categoryComboRules),
			prefixed("dataElements", optionSetRules),
		),
		ExcludeRules: []string{
			"dataElementGroupSets",
			"dataElementGroupSets.attributes",
		},
	},
	DataElementGroupSets: {
		Collection:  DataElementGroupSets,
		DisplayName: "Data Element Group Set",
		IncludeRules: concat(
			[]string{
				"attributes",
				"dataElementGroups",
				"dataElementGroups.attributes",
				"dataElementGroups.dataElements",
				"dataElementGroups.dataElements.attributes",
			},
			prefixed("dataElementGroups.dataElements", categoryComboRules),
			prefixed("dataElementGroups.dataElements", optionSetRules),
		),
	},
	DataSets: {
		Collection:  DataSets,
		DisplayName: "Data Set",
		IncludeRules: concat(
			[]string{"attributes", "dataElements", "dataElements.attributes", "legendSets"},
			categoryComboRules,
			prefixed("dataElements", categoryComboRules),
			prefixed("dataElements", optionSetRules),
		),
		ExcludeRules: []string{"indicators", "indicators.attributes"},
	},
	Programs: {
		Collection:  Programs,
		DisplayName: "Program",
		IncludeRules: concat(
			[]string{
				"attributes",
				"programStages",
				"programStages.attributes",
				"programStages.dataElements",
				"programStages.dataElements.attributes",
				"trackedEntityAttributes",
				"trackedEntityAttributes.attributes",
			},
			categoryComboRules,
			prefixed("programStages.dataElements", optionSetRules),
		),
		ExcludeRules: []string{"programIndicators", "programIndicators.attributes"},
	},
	ProgramStages: {
		Collection:   ProgramStages,
		DisplayName:  "Program Stage",
		IncludeRules: []string{"attributes", "dataElements", "dataElements.attributes"},
	},
	Indicators: {
		Collection:   Indicators,
		DisplayName:  "Indicator",
		IncludeRules: []string{"attributes", "legendSets"},
		ExcludeRules: []string{"indicatorGroups", "indicatorGroups.attributes"},
	},
	IndicatorGroups: {
		Collection:   IndicatorGroups,
		DisplayName:  "Indicator Group",
		IncludeRules: []string{"attributes", "indicators", "indicators.attributes", "indicators.legendSets"},
	},
	OrganisationUnits: {
		Collection:   OrganisationUnits,
		DisplayName:  "Organisation Unit",
		IncludeRules: []string{"attributes"},
		ExcludeRules: []string{"organisationUnitGroups", "organisationUnitGroups.attributes"},
	},
	OrganisationUnitGroups: {
		Collection:   OrganisationUnitGroups,
		DisplayName:  "Organisation Unit Group",
		IncludeRules: []string{"attributes"},
		ExcludeRules: []string{"organisationUnits", "organisationUnits.attributes"},
	},
	CategoryCombos: {
		Collection:  CategoryCombos,
		DisplayName: "Category Combo",
		IncludeRules: []string{
			"attributes",
			"categoryOptionCombos",
			"categories",
			"categories.attributes",
			"categories.categoryOptions",
			"categories.categoryOptions.attributes",
		},
	},
	Categories: {
		Collection:   Categories,
		DisplayName:  "Category",
		IncludeRules: []string{"attributes", "categoryOptions", "categoryOptions.attributes"},
	},
	CategoryOptions: {
		Collection:   CategoryOptions,
		DisplayName:  "Category Option",
		IncludeRules: []string{"attributes"},
	},
	OptionSets: {
		Collection:   OptionSets,
		DisplayName:  "Option Set",
		IncludeRules: []string{"attributes", "options", "options.attributes"},
	},
	Options: {
		Collection:   Options,
		DisplayName:  "Option",
		IncludeRules: []string{"attributes"},
	},
	ValidationRules: {
		Collection:   ValidationRules,
		DisplayName:  "Validation Rule",
		IncludeRules: []string{"attributes", "legendSets"},
	},
	UserGroups: {
		Collection:   UserGroups,
		DisplayName:  "User Group",
		IncludeRules: []string{"attributes"},
	},
}

// LookupModel returns the model registered for collection
func LookupModel(collection string) (Model, bool) {
	m, ok := registry[collection]
	if !ok {
		return Model{}, false
	}
	return m.clone(), true
}

// Models returns all registered models sorted by collection name
func Models() []Model {
	out := make([]Model, 0, len(registry))
	for _, m := range registry {
		out = append(out, m.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Collection < out[j].Collection })
	return out
}

func (m Model) clone() Model {
	m.IncludeRules = slices.Clone(m.IncludeRules)
	m.ExcludeRules = slices.Clone(m.ExcludeRules)
	return m
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func prefixed(prefix string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = prefix + "." + p
	}
	return out
}
