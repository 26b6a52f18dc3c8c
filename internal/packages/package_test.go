package packages

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/synclab/metasync/internal/modules"
)

func TestParsePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		path   string
		want   PathDetails
		wantOK bool
	}{
		{
			name: "four tokens",
			path: "immunization/vaccines-1.0.0-2.36-202401011230",
			want: PathDetails{
				ModuleName:  "immunization",
				Name:        "vaccines",
				Version:     "1.0.0",
				DHISVersion: "2.36",
				Created:     time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC),
			},
			wantOK: true,
		},
		{
			name: "five tokens carry a version tag",
			path: "immunization/vaccines-1.0.0-beta-2.36-202401011230",
			want: PathDetails{
				ModuleName:  "immunization",
				Name:        "vaccines",
				Version:     "1.0.0-beta",
				DHISVersion: "2.36",
				Created:     time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC),
			},
			wantOK: true,
		},
		{
			name: "nested name and json extension",
			path: "malaria/cases/weekly-2.1.0-2.38-202312312359.json",
			want: PathDetails{
				ModuleName:  "malaria",
				Name:        "cases/weekly",
				Version:     "2.1.0",
				DHISVersion: "2.38",
				Created:     time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC),
			},
			wantOK: true,
		},
		{name: "too few tokens", path: "immunization/module.json"},
		{name: "too many tokens", path: "a/b-1-2-3-4-5"},
		{name: "invalid date", path: "a/b-1.0.0-2.36-yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParsePath(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSort(t *testing.T) {
	t.Parallel()

	module := func(name string) modules.MetadataModule {
		return modules.MetadataModule{Module: modules.Module{Name: name}}
	}
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

	packages := []Package{
		{ID: "a1", Name: "cases", Version: "1.2.0", Module: module("Malaria"), Created: day(1)},
		{ID: "b1", Name: "vaccines", Version: "1.10.0", Module: module("Immunization"), Created: day(1)},
		{ID: "b2", Name: "vaccines", Version: "1.9.0", Module: module("Immunization"), Created: day(2)},
		{ID: "b3", Name: "vaccines", Version: "next", Module: module("Immunization"), Created: day(3)},
		{ID: "b4", Name: "vaccines", Version: "2.0.0-beta", Module: module("Immunization"), Created: day(4)},
	}
	Sort(packages)

	var ids []string
	for _, p := range packages {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"b4", "b1", "b2", "b3", "a1"}, ids)
}
