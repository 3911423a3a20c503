// Package segment implements the EV market segmentation pipeline.
//
// # Reading Guide
//
// The pipeline runs in a fixed order and every stage hands its output to the
// next one by value:
//   - record.go, features.go: StateRecord and the join/derivation step (BuildRecords)
//   - preprocess.go: feature selection, max-imputation of non-finite values, standardization
//   - kmeans.go, silhouette.go: K-Means with k-means++ restarts and silhouette scoring
//   - selector.go: model-order selection over a range of k
//   - clusterer.go: final fit, deterministic id ordering and cluster naming
//   - profile.go: per-cluster means, top performers and recommendations
//   - pipeline.go: Run, which chains all of the above
//
// Input parsing lives in segment/ingest and output rendering in segment/report.
//
// # Determinism
//
// All randomness flows through PartitionedRNG. Each candidate k draws from its
// own stream derived from the master seed, so selecting k and refitting at
// that k consume identical random sequences and yield identical partitions.
package segment
