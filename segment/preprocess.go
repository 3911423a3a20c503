package segment

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ImputedCell records one value replaced during preprocessing.
type ImputedCell struct {
	Row      int
	State    string
	Feature  string
	Original float64 // the non-finite input (NaN, +Inf or -Inf)
	Value    float64 // the imputed value
}

// FeatureMatrix is the model input: one row per state, one column per feature.
type FeatureMatrix struct {
	Features []string
	States   []string

	// Raw holds feature values after imputation, before scaling.
	Raw *mat.Dense
	// Scaled holds the standardized values fed to K-Means.
	Scaled *mat.Dense

	Means  []float64 // per-column mean of Raw
	Scales []float64 // per-column population standard deviation of Raw; 1 for constant columns

	Imputed []ImputedCell
}

// Rows returns the number of states in the matrix.
func (m *FeatureMatrix) Rows() int {
	return len(m.States)
}

// Points returns the standardized rows as slices. The slices alias Scaled
// and must not be modified.
func (m *FeatureMatrix) Points() [][]float64 {
	points := make([][]float64, m.Rows())
	for i := range points {
		points[i] = m.Scaled.RawRowView(i)
	}
	return points
}

// Preprocess selects features from records in the declared order, replaces
// non-finite values and standardizes every column.
//
// Imputation rule: ±Inf is treated as missing, and every missing value is
// filled with the column's maximum finite value. Imputed states therefore
// sit at the top of that feature's range. A column with no finite value at
// all is filled with 0.
//
// Standardization uses the current dataset's mean and population standard
// deviation. Constant columns are centered only and become all zeros.
func Preprocess(records []StateRecord, features []string) (*FeatureMatrix, error) {
	if len(records) == 0 {
		return nil, ErrNoStates
	}
	if len(features) == 0 {
		return nil, ErrNoFeatures
	}

	n, p := len(records), len(features)
	m := &FeatureMatrix{
		Features: append([]string(nil), features...),
		States:   make([]string, n),
		Raw:      mat.NewDense(n, p, nil),
		Scaled:   mat.NewDense(n, p, nil),
		Means:    make([]float64, p),
		Scales:   make([]float64, p),
	}
	for i := range records {
		m.States[i] = records[i].State
	}

	col := make([]float64, n)
	for j, name := range features {
		for i := range records {
			v, err := FeatureValue(&records[i], name)
			if err != nil {
				return nil, fmt.Errorf("preprocessing column %d: %w", j, err)
			}
			col[i] = v
		}
		m.Imputed = append(m.Imputed, imputeColumnMax(col, name, m.States)...)
		m.Raw.SetCol(j, col)

		mean, variance := stat.PopMeanVariance(col, nil)
		scale := math.Sqrt(variance)
		if scale == 0 || math.IsNaN(scale) {
			scale = 1
		}
		m.Means[j] = mean
		m.Scales[j] = scale

		floats.AddConst(-mean, col)
		floats.Scale(1/scale, col)
		m.Scaled.SetCol(j, col)
	}

	if len(m.Imputed) > 0 {
		logrus.Infof("Imputed %d non-finite feature values with column maxima", len(m.Imputed))
	}
	return m, nil
}

// imputeColumnMax replaces non-finite entries of col in place with the
// column's maximum finite value and returns the replaced cells.
func imputeColumnMax(col []float64, feature string, states []string) []ImputedCell {
	finite := make([]float64, 0, len(col))
	for _, v := range col {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == len(col) {
		return nil
	}

	fill := 0.0
	if len(finite) > 0 {
		fill = floats.Max(finite)
	} else {
		logrus.Warnf("feature %q has no finite values; imputing 0", feature)
	}

	var cells []ImputedCell
	for i, v := range col {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			cells = append(cells, ImputedCell{Row: i, State: states[i], Feature: feature, Original: v, Value: fill})
			col[i] = fill
		}
	}
	return cells
}
