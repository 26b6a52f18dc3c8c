// Package report tracks the outcome of a synchronization run per target instance and
// persists it as a notification document.
package report

import (
	"encoding/json"
	"slices"
	"time"
)

// Status is the state of a synchronization run
type Status string

const (
	// StatusReady is a run that has not started
	StatusReady Status = "READY"
	// StatusRunning is a run in progress
	StatusRunning Status = "RUNNING"
	// StatusDone is a run where every instance succeeded
	StatusDone Status = "DONE"
	// StatusFailure is a run where at least one instance did not succeed
	StatusFailure Status = "FAILURE"
)

// ResultStatus is the outcome of a synchronization on one instance
type ResultStatus string

// Result statuses
const (
	ResultOK           ResultStatus = "OK"
	ResultWarning      ResultStatus = "WARNING"
	ResultError        ResultStatus = "ERROR"
	ResultNetworkError ResultStatus = "NETWORK ERROR"
)

// Stats counts imported objects
type Stats struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
	Ignored int `json:"ignored"`
	Total   int `json:"total"`
}

// Add returns the sum of both counts
func (s Stats) Add(other Stats) Stats {
	return Stats{
		Created: s.Created + other.Created,
		Updated: s.Updated + other.Updated,
		Deleted: s.Deleted + other.Deleted,
		Ignored: s.Ignored + other.Ignored,
		Total:   s.Total + other.Total,
	}
}

// TypeStats counts imported objects of one metadata type
type TypeStats struct {
	Type string `json:"type"`
	Stats
}

// ErrorMessage is an import error of one object
type ErrorMessage struct {
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

// InstanceRef identifies the target instance of a result
type InstanceRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// SynchronizationResult is the outcome of a synchronization on one instance
type SynchronizationResult struct {
	Status    ResultStatus    `json:"status"`
	Instance  InstanceRef     `json:"instance"`
	Date      time.Time       `json:"date"`
	Type      string          `json:"type"`
	Message   string          `json:"message,omitempty"`
	Stats     *Stats          `json:"stats,omitempty"`
	TypeStats []TypeStats     `json:"typeStats,omitempty"`
	Errors    []ErrorMessage  `json:"errors,omitempty"`
	Response  json.RawMessage `json:"response,omitempty"`
}

// SynchronizationReport is the record of one synchronization run
type SynchronizationReport struct {
	ID            string                  `json:"id"`
	User          string                  `json:"user"`
	Status        Status                  `json:"status"`
	Results       []SynchronizationResult `json:"results"`
	SelectedTypes []string                `json:"selectedTypes"`
	Type          string                  `json:"type,omitempty"`
	SyncRule      string                  `json:"syncRule,omitempty"`
	Timestamp     time.Time               `json:"timestamp"`
}

// Create returns an empty report ready to run. Its id is assigned when saved.
func Create() SynchronizationReport {
	return SynchronizationReport{
		Status:        StatusReady,
		Results:       []SynchronizationResult{},
		SelectedTypes: []string{},
		Timestamp:     time.Now().UTC(),
	}
}

// Build returns a copy of report, or an empty report when nil
func Build(report *SynchronizationReport) SynchronizationReport {
	if report == nil {
		return Create()
	}
	out := report.clone()
	if out.Timestamp.IsZero() {
		out.Timestamp = time.Now().UTC()
	}
	return out
}

// AddResult returns a copy of the report with result placed first, replacing any
// previous result of the same instance
func (r SynchronizationReport) AddResult(result SynchronizationResult) SynchronizationReport {
	out := r.clone()
	results := make([]SynchronizationResult, 0, len(r.Results)+1)
	results = append(results, result)
	for _, existing := range r.Results {
		if existing.Instance.ID != result.Instance.ID {
			results = append(results, existing)
		}
	}
	out.Results = results
	return out
}

// SetStatus returns a copy of the report with the given status
func (r SynchronizationReport) SetStatus(status Status) SynchronizationReport {
	out := r.clone()
	out.Status = status
	return out
}

// HasErrors reports whether any result is not OK
func (r SynchronizationReport) HasErrors() bool {
	return slices.ContainsFunc(r.Results, func(res SynchronizationResult) bool {
		return res.Status != ResultOK
	})
}

func (r SynchronizationReport) clone() SynchronizationReport {
	out := r
	out.Results = slices.Clone(r.Results)
	out.SelectedTypes = slices.Clone(r.SelectedTypes)
	return out
}
