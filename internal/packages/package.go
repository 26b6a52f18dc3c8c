// Package packages lists the module packages published in git stores and manages the
// configured stores.
package packages

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/synclab/metasync/internal/modules"
	"github.com/synclab/metasync/internal/versions"
)

// createdLayout is the timestamp format of package file names
const createdLayout = "200601021504"

// ModuleFile is the file describing the module of a package directory
const ModuleFile = "module.json"

// UnknownModule names packages whose module file is missing or unreadable
const UnknownModule = "Unknown module"

// Package is a module snapshot published in a store
type Package struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Version     string                 `json:"version"`
	DHISVersion string                 `json:"dhisVersion"`
	Created     time.Time              `json:"created"`
	Module      modules.MetadataModule `json:"module"`
}

// PathDetails are the fields encoded in a package file path
type PathDetails struct {
	ModuleName  string
	Name        string
	Version     string
	DHISVersion string
	Created     time.Time
}

// ParsePath reads a path of the form module/name-version[-tag]-dhisVersion-YYYYMMDDHHmm.
// It returns false when the path does not follow the convention.
func ParsePath(path string) (PathDetails, bool) {
	tokens := strings.Split(path, "-")

	var fileName, version, dhisVersion, date string
	switch len(tokens) {
	case 4:
		fileName, version, dhisVersion, date = tokens[0], tokens[1], tokens[2], tokens[3]
	case 5:
		fileName, version, dhisVersion, date = tokens[0], tokens[1]+"-"+tokens[2], tokens[3], tokens[4]
	default:
		return PathDetails{}, false
	}

	moduleName, name, _ := strings.Cut(fileName, "/")
	created, err := time.Parse(createdLayout, strings.TrimSuffix(date, ".json"))
	if err != nil {
		return PathDetails{}, false
	}

	return PathDetails{
		ModuleName:  moduleName,
		Name:        name,
		Version:     version,
		DHISVersion: dhisVersion,
		Created:     created,
	}, true
}

// unknownModule is the module of packages without a readable module file
func unknownModule() modules.MetadataModule {
	return modules.NewMetadataModule().Update(func(m *modules.MetadataModule) {
		m.ID = UnknownModule
		m.Name = UnknownModule
	})
}

// Sort orders packages by module name, then newest version first. Versions that are
// not semantic versions sort after the others by creation date.
func Sort(packages []Package) {
	slices.SortStableFunc(packages, func(a, b Package) int {
		if c := cmp.Compare(a.Module.Name, b.Module.Name); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}

		if c := versions.Compare(b.Version, a.Version); c != 0 {
			return c
		}
		return b.Created.Compare(a.Created)
	})
}
