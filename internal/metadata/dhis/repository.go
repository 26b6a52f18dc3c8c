package dhis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/synclab/metasync/internal/metadata"
)

// Repository implements metadata.Repository and metadata.DataRepository over the REST API
type Repository struct {
	client *Client
}

var (
	_ metadata.Repository     = (*Repository)(nil)
	_ metadata.DataRepository = (*Repository)(nil)
)

// NewRepository creates a repository backed by client
func NewRepository(client *Client) *Repository {
	return &Repository{client: client}
}

// Get lists the objects of a collection matching the query
func (r *Repository) Get(ctx context.Context, collection string, query metadata.Query) ([]metadata.Object, error) {
	params := url.Values{}
	params.Set("paging", "false")
	if query.Fields != "" {
		params.Set("fields", query.Fields)
	}
	for _, field := range query.ActiveFilter() {
		params.Add("filter", query.Filter[field].Expression(field))
	}
	if query.RootJunction != "" {
		params.Set("rootJunction", string(query.RootJunction))
	}

	data, err := r.client.Get(ctx, collection+".json", params)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}

	var objects []metadata.Object
	raw := gjson.GetBytes(data, gjsonEscape(collection))
	if !raw.Exists() {
		return objects, nil
	}
	if err := json.Unmarshal([]byte(raw.Raw), &objects); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", collection, err)
	}
	return objects, nil
}

// GetByIDs returns the objects with the given ids grouped by collection
func (r *Repository) GetByIDs(ctx context.Context, ids []string, fields string) (metadata.Package, error) {
	if len(ids) == 0 {
		return metadata.Package{}, nil
	}
	if fields == "" {
		fields = ":all"
	}

	params := url.Values{}
	params.Set("fields", fields)
	params.Set("filter", metadata.In(ids...).Expression("id"))
	params.Set("defaults", "EXCLUDE")

	data, err := r.client.Get(ctx, "metadata.json", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metadata by id: %w", err)
	}
	return decodePackage(data)
}

// Post imports a metadata package and returns the raw import report
func (r *Repository) Post(ctx context.Context, payload metadata.Package, params metadata.ImportParams) (json.RawMessage, error) {
	return r.post(ctx, "metadata", payload, params)
}

// GetAggregated reads the data values of the given data sets and data element groups
func (r *Repository) GetAggregated(
	ctx context.Context, params metadata.DataParams, dataSets, dataElementGroups []string,
) (metadata.Package, error) {
	if len(dataSets) == 0 && len(dataElementGroups) == 0 {
		return metadata.Package{metadata.DataValues: nil}, nil
	}

	query := dataQuery(params)
	for _, id := range dataSets {
		query.Add("dataSet", id)
	}
	for _, id := range dataElementGroups {
		query.Add("dataElementGroup", id)
	}
	query.Set("children", "true")

	data, err := r.client.Get(ctx, "dataValueSets.json", query)
	if err != nil {
		return nil, fmt.Errorf("failed to read data values: %w", err)
	}
	return decodePackage(data)
}

// PostAggregated imports data values
func (r *Repository) PostAggregated(
	ctx context.Context, payload metadata.Package, params metadata.ImportParams,
) (json.RawMessage, error) {
	return r.post(ctx, "dataValueSets", metadata.Package{metadata.DataValues: payload[metadata.DataValues]}, params)
}

// GetEvents reads the events of the given programs
func (r *Repository) GetEvents(ctx context.Context, params metadata.DataParams, programs []string) (metadata.Package, error) {
	result := metadata.Package{}
	for _, program := range programs {
		query := dataQuery(params)
		query.Set("program", program)
		query.Set("paging", "false")
		query.Set("ouMode", "DESCENDANTS")

		data, err := r.client.Get(ctx, "events.json", query)
		if err != nil {
			return nil, fmt.Errorf("failed to read events of program %s: %w", program, err)
		}
		pkg, err := decodePackage(data)
		if err != nil {
			return nil, err
		}
		result = result.Merge(pkg)
	}

	if !params.AllEvents && len(params.Events) > 0 {
		var filtered []metadata.Object
		for _, event := range result[metadata.Events] {
			for _, id := range params.Events {
				if event.String("event") == id {
					filtered = append(filtered, event)
					break
				}
			}
		}
		result[metadata.Events] = filtered
	}
	return result, nil
}

// PostEvents imports events
func (r *Repository) PostEvents(ctx context.Context, payload metadata.Package, params metadata.ImportParams) (json.RawMessage, error) {
	return r.post(ctx, "events", metadata.Package{metadata.Events: payload[metadata.Events]}, params)
}

func (r *Repository) post(
	ctx context.Context, path string, payload metadata.Package, params metadata.ImportParams,
) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	query := url.Values{}
	if params.ImportStrategy != "" {
		query.Set("importStrategy", string(params.ImportStrategy))
	}
	if params.AtomicMode != "" {
		query.Set("atomicMode", params.AtomicMode)
	}
	if params.MergeMode != "" {
		query.Set("mergeMode", params.MergeMode)
	}
	if params.DryRun {
		query.Set("dryRun", "true")
	}

	data, err := r.client.Post(ctx, path, query, body)
	if err != nil {
		return nil, fmt.Errorf("failed to post %s: %w", path, err)
	}
	return data, nil
}

func dataQuery(params metadata.DataParams) url.Values {
	query := url.Values{}
	for _, orgUnit := range params.OrgUnits() {
		query.Add("orgUnit", orgUnit)
	}
	if params.StartDate != nil {
		query.Set("startDate", params.StartDate.Format("2006-01-02"))
	}
	if params.EndDate != nil {
		query.Set("endDate", params.EndDate.Format("2006-01-02"))
	}
	return query
}

// decodePackage keeps the array members of a response body, dropping fields such as "system"
func decodePackage(data []byte) (metadata.Package, error) {
	pkg := metadata.Package{}
	var decodeErr error
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		if !value.IsArray() {
			return true
		}
		var objects []metadata.Object
		if err := json.Unmarshal([]byte(value.Raw), &objects); err != nil {
			decodeErr = fmt.Errorf("failed to decode %s: %w", key.String(), err)
			return false
		}
		pkg[key.String()] = objects
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return pkg, nil
}

func gjsonEscape(path string) string {
	replacer := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	return replacer.Replace(path)
}
