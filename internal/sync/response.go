package sync

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/synclab/metasync/internal/instance"
	"github.com/synclab/metasync/internal/report"
	"github.com/synclab/metasync/internal/syncrule"
)

// CleanMetadataImportResponse turns a metadata import report into a result for inst
func CleanMetadataImportResponse(response json.RawMessage, inst instance.Instance, t syncrule.Type) report.SynchronizationResult {
	root := unwrapResponse(response)

	result := newResult(response, inst, t)
	result.Status = importStatus(root.Get("status").String())

	if stats := root.Get("stats"); stats.Exists() {
		s := parseStats(stats)
		result.Stats = &s
	}

	for _, typeReport := range root.Get("typeReports").Array() {
		klass := typeReport.Get("klass").String()
		result.TypeStats = append(result.TypeStats, report.TypeStats{
			Type:  klass[strings.LastIndex(klass, ".")+1:],
			Stats: parseStats(typeReport.Get("stats")),
		})

		for _, objectReport := range typeReport.Get("objectReports").Array() {
			uid := objectReport.Get("uid").String()
			for _, errorReport := range objectReport.Get("errorReports").Array() {
				result.Errors = append(result.Errors, report.ErrorMessage{
					ID:      uid,
					Message: errorReport.Get("message").String(),
				})
			}
		}
	}

	if msg := root.Get("message"); msg.Exists() {
		result.Message = msg.String()
	}
	return result
}

// CleanDataImportResponse turns an aggregated or events import summary into a result for inst
func CleanDataImportResponse(response json.RawMessage, inst instance.Instance, t syncrule.Type) report.SynchronizationResult {
	root := unwrapResponse(response)

	result := newResult(response, inst, t)
	result.Status = importStatus(root.Get("status").String())
	result.Message = root.Get("description").String()

	switch {
	case root.Get("importCount").Exists():
		count := root.Get("importCount")
		s := report.Stats{
			Created: int(count.Get("imported").Int()),
			Updated: int(count.Get("updated").Int()),
			Deleted: int(count.Get("deleted").Int()),
			Ignored: int(count.Get("ignored").Int()),
		}
		s.Total = s.Created + s.Updated + s.Deleted + s.Ignored
		result.Stats = &s
	case root.Get("stats").Exists():
		s := parseStats(root.Get("stats"))
		result.Stats = &s
	case root.Get("imported").Exists():
		s := report.Stats{
			Created: int(root.Get("imported").Int()),
			Updated: int(root.Get("updated").Int()),
			Deleted: int(root.Get("deleted").Int()),
			Ignored: int(root.Get("ignored").Int()),
		}
		s.Total = s.Created + s.Updated + s.Deleted + s.Ignored
		result.Stats = &s
	}

	for _, conflict := range root.Get("conflicts").Array() {
		result.Errors = append(result.Errors, report.ErrorMessage{
			ID:      conflict.Get("object").String(),
			Message: conflict.Get("value").String(),
		})
	}

	for _, summary := range root.Get("importSummaries").Array() {
		if importStatus(summary.Get("status").String()) == report.ResultOK {
			continue
		}
		message := summary.Get("description").String()
		for _, conflict := range summary.Get("conflicts").Array() {
			message = strings.TrimSpace(message + " " + conflict.Get("value").String())
		}
		result.Errors = append(result.Errors, report.ErrorMessage{
			ID:      summary.Get("reference").String(),
			Message: message,
		})
	}
	return result
}

// unwrapResponse returns the import report nested in a web message, or the body itself
func unwrapResponse(response json.RawMessage) gjson.Result {
	root := gjson.ParseBytes(response)
	if nested := root.Get("response"); nested.IsObject() {
		return nested
	}
	return root
}

func newResult(response json.RawMessage, inst instance.Instance, t syncrule.Type) report.SynchronizationResult {
	return report.SynchronizationResult{
		Instance: inst.Ref(),
		Date:     time.Now().UTC(),
		Type:     string(t),
		Response: response,
	}
}

func importStatus(status string) report.ResultStatus {
	switch strings.ToUpper(status) {
	case "OK", "SUCCESS":
		return report.ResultOK
	case "WARNING":
		return report.ResultWarning
	default:
		return report.ResultError
	}
}

func parseStats(stats gjson.Result) report.Stats {
	return report.Stats{
		Created: int(stats.Get("created").Int()),
		Updated: int(stats.Get("updated").Int()),
		Deleted: int(stats.Get("deleted").Int()),
		Ignored: int(stats.Get("ignored").Int()),
		Total:   int(stats.Get("total").Int()),
	}
}
