package segment

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Result carries every stage's output of a pipeline run.
type Result struct {
	Records    []StateRecord
	Matrix     *FeatureMatrix
	Selection  *Selection
	Clustering *Clustering
	Profiles   *ProfileTable
}

// Prepare runs the join and preprocessing stages.
func Prepare(src Sources, cfg *Config) ([]StateRecord, *FeatureMatrix, error) {
	records, err := BuildRecords(src)
	if err != nil {
		return nil, nil, fmt.Errorf("building records: %w", err)
	}
	logrus.Infof("Built %d state records (sales year %d)", len(records), src.SalesYear)

	m, err := Preprocess(records, cfg.Features)
	if err != nil {
		return nil, nil, fmt.Errorf("preprocessing: %w", err)
	}
	return records, m, nil
}

// Run executes the full pipeline: join, preprocess, select k, cluster and
// profile. cfg must already be validated.
func Run(src Sources, cfg *Config) (*Result, error) {
	records, m, err := Prepare(src, cfg)
	if err != nil {
		return nil, err
	}

	sel, err := SelectK(m, cfg.Model())
	if err != nil {
		return nil, fmt.Errorf("selecting k: %w", err)
	}

	c, err := Cluster(m, records, sel.BestK, cfg.Names(), cfg.Model())
	if err != nil {
		return nil, fmt.Errorf("clustering: %w", err)
	}

	profiles, err := Profile(m, records, c)
	if err != nil {
		return nil, fmt.Errorf("profiling: %w", err)
	}
	logrus.Infof("Partitioned %d states into %d clusters", len(records), c.K)

	return &Result{Records: records, Matrix: m, Selection: sel, Clustering: c, Profiles: profiles}, nil
}
