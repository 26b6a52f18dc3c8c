package sync

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/synclab/metasync/internal/instance"
	"github.com/synclab/metasync/internal/logger"
	"github.com/synclab/metasync/internal/otel"
	"github.com/synclab/metasync/internal/report"
	"github.com/synclab/metasync/internal/syncrule"
	"github.com/synclab/metasync/internal/telemetry"
)

// Phase is the step of a synchronization run
type Phase string

// Phases of a synchronization run, in order
const (
	PhaseBuilding Phase = "building"
	PhaseMapping  Phase = "mapping"
	PhasePosting  Phase = "posting"
	PhaseDone     Phase = "done"
)

// Progress is emitted by Execute as the run advances
type Progress struct {
	Phase Phase

	// Instance is the target being processed during the mapping and posting phases
	Instance *report.InstanceRef

	Message string

	// Report is the saved report, set on the done phase
	Report *report.SynchronizationReport

	// DataStats is set on the building phase of data synchronizations
	DataStats *DataStats
}

// Options configures a synchronization run
type Options struct {
	// Targets are the ids of the target instances
	Targets []string

	Instances instance.Repository
	Reports   report.Repository

	// Metrics is optional
	Metrics *telemetry.SyncMetrics

	// Tracer is optional
	Tracer trace.Tracer

	// User is the user name stored on the report
	User string

	// SyncRule is the id of the rule being executed, empty for manual runs
	SyncRule string
}

// Error is a run failure that prevented any instance from being processed
type Error struct {
	Err     error
	Message string
	Phase   Phase
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Execute runs s against every target instance, one after another. Each step is
// yielded as it happens. A failure on one instance is recorded as its result and the
// remaining instances are still processed. Breaking out of the loop abandons the run.
func Execute(ctx context.Context, s Synchronizer, opts Options) iter.Seq2[Progress, error] {
	return func(yield func(Progress, error) bool) {
		start := time.Now()
		syncType := string(s.Type())

		ctx, span := otel.StartSpan(ctx, opts.Tracer, "sync.execute", trace.WithAttributes(
			otel.AttrSyncType.String(syncType),
			otel.AttrSyncRule.String(opts.SyncRule),
			otel.AttrSyncUser.String(opts.User),
			otel.AttrTargetCount.Int(len(opts.Targets)),
		))
		defer span.End()

		syncReport := report.Create()
		syncReport.User = opts.User
		syncReport.Type = syncType
		syncReport.SyncRule = opts.SyncRule
		syncReport.SelectedTypes = []string{syncType}
		syncReport = syncReport.SetStatus(report.StatusRunning)

		syncReport, err := opts.Reports.Save(ctx, syncReport)
		if err != nil {
			otel.RecordError(span, err)
			yield(Progress{Phase: PhaseBuilding}, &Error{
				Err:     err,
				Message: fmt.Sprintf("Failed to save report: %v", err),
				Phase:   PhaseBuilding,
			})
			return
		}

		payload, err := s.BuildPayload(ctx)
		if err != nil {
			logger.Errorf("Failed to build %s payload: %v", syncType, err)
			otel.RecordError(span, err)
			syncReport = syncReport.SetStatus(report.StatusFailure)
			if _, saveErr := opts.Reports.Save(ctx, syncReport); saveErr != nil {
				logger.Warnf("Failed to save report %s: %v", syncReport.ID, saveErr)
			}
			recordDuration(ctx, opts, syncType, start, false)
			yield(Progress{Phase: PhaseBuilding, Report: &syncReport}, &Error{
				Err:     err,
				Message: fmt.Sprintf("Failed to build payload: %v", err),
				Phase:   PhaseBuilding,
			})
			return
		}
		opts.Metrics.RecordPayloadObjects(ctx, syncType, payload.Count())
		span.SetAttributes(otel.AttrReportID.String(syncReport.ID), otel.AttrObjectCount.Int(payload.Count()))

		stats, err := s.BuildDataStats(ctx)
		if err != nil {
			logger.Warnf("Failed to build data stats: %v", err)
		}
		if !yield(Progress{Phase: PhaseBuilding, Message: "Preparing payload", DataStats: stats}, nil) {
			return
		}

		for _, id := range opts.Targets {
			results, inst, ok := processTarget(ctx, s, opts, id, payload, yield)
			if !ok {
				return
			}

			for _, result := range results {
				syncReport = syncReport.AddResult(result)
				opts.Metrics.RecordResult(ctx, syncType, result.Instance.ID, string(result.Status))
			}

			saved, err := opts.Reports.Save(ctx, syncReport)
			if err != nil {
				logger.Warnf("Failed to save report after %s: %v", inst.Name, err)
				continue
			}
			syncReport = saved
		}

		status := report.StatusDone
		if syncReport.HasErrors() {
			status = report.StatusFailure
		}
		syncReport = syncReport.SetStatus(status)

		saved, err := opts.Reports.Save(ctx, syncReport)
		if err != nil {
			logger.Warnf("Failed to save report %s: %v", syncReport.ID, err)
		} else {
			syncReport = saved
		}

		span.SetAttributes(otel.AttrReportStatus.String(string(status)))
		recordDuration(ctx, opts, syncType, start, status == report.StatusDone)
		logger.Infof("Synchronization %s finished with status %s", syncReport.ID, status)
		yield(Progress{Phase: PhaseDone, Message: "Finished", Report: &syncReport}, err)
	}
}

// processTarget maps and posts the payload to one instance. It returns false when the
// consumer stopped the run.
func processTarget(
	ctx context.Context,
	s Synchronizer,
	opts Options,
	id string,
	payload Payload,
	yield func(Progress, error) bool,
) ([]report.SynchronizationResult, instance.Instance, bool) {
	ctx, span := otel.StartSpan(ctx, opts.Tracer, "sync.target",
		trace.WithAttributes(otel.AttrInstanceID.String(id)))
	defer span.End()

	inst, found, err := opts.Instances.Get(ctx, id)
	if err != nil || !found {
		otel.RecordError(span, err)
		message := fmt.Sprintf("Instance %s not found", id)
		if err != nil {
			message = fmt.Sprintf("Failed to load instance %s: %v", id, err)
		}
		inst = instance.Instance{ID: id, Name: id}
		return []report.SynchronizationResult{failedResult(inst, s.Type(), report.ResultError, message)}, inst, true
	}

	ref := inst.Ref()
	if !yield(Progress{Phase: PhaseMapping, Instance: &ref, Message: "Mapping payload to " + inst.Name}, nil) {
		return nil, inst, false
	}
	mapped, err := s.MapPayload(ctx, inst, payload.Clone())
	if err != nil {
		logger.Errorf("Failed to map payload for %s: %v", inst.Name, err)
		otel.RecordError(span, err)
		message := fmt.Sprintf("Failed to map payload: %v", err)
		return []report.SynchronizationResult{failedResult(inst, s.Type(), report.ResultError, message)}, inst, true
	}

	message := fmt.Sprintf("Importing %d objects in %s", mapped.Count(), inst.Name)
	if !yield(Progress{Phase: PhasePosting, Instance: &ref, Message: message}, nil) {
		return nil, inst, false
	}

	results, err := s.PostPayload(ctx, inst)
	if err != nil {
		logger.Errorf("Failed to synchronize %s: %v", inst.Name, err)
		otel.RecordError(span, err)
		status := report.ResultError
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			status = report.ResultNetworkError
		}
		return []report.SynchronizationResult{failedResult(inst, s.Type(), status, err.Error())}, inst, true
	}
	for _, result := range results {
		span.AddEvent("result", trace.WithAttributes(
			attribute.String("type", result.Type),
			otel.AttrResultStatus.String(string(result.Status)),
		))
	}
	return results, inst, true
}

func failedResult(inst instance.Instance, t syncrule.Type, status report.ResultStatus, message string) report.SynchronizationResult {
	return report.SynchronizationResult{
		Status:   status,
		Instance: inst.Ref(),
		Date:     time.Now().UTC(),
		Type:     string(t),
		Message:  message,
	}
}

func recordDuration(ctx context.Context, opts Options, syncType string, start time.Time, success bool) {
	opts.Metrics.RecordSyncDuration(ctx, syncType, time.Since(start), success)
}

// Run executes a sync rule to completion and returns the saved report
func Run(ctx context.Context, rule syncrule.SyncRule, deps Dependencies, user string) (report.SynchronizationReport, error) {
	s, err := New(rule.Type, rule.Builder, deps)
	if err != nil {
		return report.SynchronizationReport{}, err
	}

	opts := Options{
		Targets:   rule.Builder.TargetInstances,
		Instances: deps.Instances,
		Reports:   deps.Reports,
		Metrics:   deps.Metrics,
		Tracer:    deps.Tracer,
		User:      user,
		SyncRule:  rule.ID,
	}

	var last report.SynchronizationReport
	for progress, err := range Execute(ctx, s, opts) {
		if progress.Report != nil {
			last = *progress.Report
		}
		if err != nil {
			return last, err
		}
	}
	return last, nil
}
