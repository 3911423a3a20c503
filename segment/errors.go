package segment

import "errors"

var (
	// ErrNoStates is returned when a stage receives an empty dataset.
	ErrNoStates = errors.New("no state records")

	// ErrNoFeatures is returned when the declared feature set is empty.
	ErrNoFeatures = errors.New("no features selected")

	// ErrTooFewStates is returned when fewer than three states are available.
	// With two states every partition is trivial and silhouette is undefined.
	ErrTooFewStates = errors.New("at least 3 states are required for clustering")

	// ErrUnmappedCluster is returned when a cluster id falls outside the name table.
	ErrUnmappedCluster = errors.New("cluster id has no configured name")
)
