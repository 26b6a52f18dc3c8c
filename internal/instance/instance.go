// Package instance manages the platform instances metadata is synchronized with.
package instance

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/synclab/metasync/internal/config"
	"github.com/synclab/metasync/internal/mapping"
	"github.com/synclab/metasync/internal/report"
)

// Instance is a platform instance reachable over its REST API
type Instance struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Username    string `json:"username,omitempty"`
	Password    string `json:"password,omitempty"`
	Description string `json:"description,omitempty"`

	// MetadataMapping translates source ids to the ids of this instance, keyed by
	// collection
	MetadataMapping mapping.Dictionary `json:"metadataMapping,omitempty"`
}

// FromConfig builds the local instance from configuration
func FromConfig(cfg *config.Config) (Instance, error) {
	local := cfg.LocalInstance
	inst := Instance{
		ID:       cfg.GetLocalInstanceID(),
		Name:     local.Name,
		URL:      strings.TrimSuffix(local.URL, "/"),
		Username: local.Username,
	}
	if inst.Name == "" {
		inst.Name = "This instance"
	}

	if local.Username != "" {
		password, err := local.GetPassword()
		if err != nil {
			return Instance{}, fmt.Errorf("failed to read local instance password: %w", err)
		}
		inst.Password = password
	}
	return inst, nil
}

// Ref returns the reference stored in synchronization results
func (i Instance) Ref() report.InstanceRef {
	return report.InstanceRef{ID: i.ID, Name: i.Name, URL: i.URL}
}

// Redacted returns a copy of the instance without its password
func (i Instance) Redacted() Instance {
	i.Password = ""
	i.MetadataMapping = i.MetadataMapping.Clone()
	return i
}

// SetMapping returns a copy of the instance with the mapping of a source element replaced
func (i Instance) SetMapping(collection, sourceID string, m mapping.MetadataMapping) Instance {
	i.MetadataMapping = i.MetadataMapping.Set(collection, sourceID, m)
	return i
}

// Validate checks the fields required to connect to the instance
func (i Instance) Validate() error {
	var errs []error
	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, errors.New("name cannot be blank"))
	}
	if i.URL == "" {
		errs = append(errs, errors.New("url cannot be blank"))
	} else if u, err := url.ParseRequestURI(i.URL); err != nil || u.Host == "" {
		errs = append(errs, fmt.Errorf("url %q is invalid", i.URL))
	}
	return errors.Join(errs...)
}
