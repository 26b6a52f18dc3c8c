// Package sync runs synchronizations: it builds a payload from the local instance,
// translates it for each target instance, posts it and records the outcome in a
// synchronization report.
//
// # Synchronizers
//
// A Synchronizer implements one synchronization type:
//
//   - metadata: the selected metadata and the dependencies reached by the include rules
//   - aggregated: data values of the selected data sets and data element groups
//   - events: events of the selected programs
//   - deleted: deletion of the selected metadata on the target instances
//
// New selects the implementation for a type. Each synchronizer builds its payload once
// and reuses it for every target instance.
//
// # Execution
//
// Execute drives a synchronizer over the target instances and reports progress as an
// iterator. The run stops when the consumer stops iterating. A failure on one instance
// is recorded as that instance's result and the remaining instances are still
// synchronized. The final report status is DONE when every result is OK and FAILURE
// otherwise.
package sync
