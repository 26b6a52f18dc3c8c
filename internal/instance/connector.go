package instance

import (
	"github.com/synclab/metasync/internal/metadata"
	"github.com/synclab/metasync/internal/metadata/dhis"
)

// Connection reads and writes the metadata and data of one instance
type Connection interface {
	metadata.Repository
	metadata.DataRepository
}

// Connector opens connections to instances
type Connector interface {
	Connect(inst Instance) (Connection, error)
}

// ConnectorFunc adapts a function to the Connector interface
type ConnectorFunc func(inst Instance) (Connection, error)

// Connect calls f(inst)
func (f ConnectorFunc) Connect(inst Instance) (Connection, error) {
	return f(inst)
}

type restConnector struct {
	opts []dhis.Option
}

// NewConnector creates a connector reaching instances over their REST API
func NewConnector(opts ...dhis.Option) Connector {
	return &restConnector{opts: opts}
}

func (c *restConnector) Connect(inst Instance) (Connection, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	client := dhis.NewClient(inst.URL, inst.Username, inst.Password, c.opts...)
	return dhis.NewRepository(client), nil
}
