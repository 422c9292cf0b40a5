package core

import (
	"fmt"
	"math"
	"sort"

	"geosight/internal/domain/model"
)

// Observations with |z| above this are flagged by the z-score method.
const zScoreCutoff = 3.0

// IQR fence multiplier.
const iqrFence = 1.5

// Minimum sample size for the normality check.
const normalityMinSample = 8

// StatisticsEngine computes descriptive statistics and outlier reports
// over one numeric attribute of a dataset. It only reads the dataset.
type StatisticsEngine struct{}

// Analyze computes the StatisticsResult for the named attribute.
// The attribute must be a declared numeric attribute of Feature;
// anything else fails with ErrInvalidParameter. Fewer than 2 valid
// observations fail with ErrInsufficientData.
func (StatisticsEngine) Analyze(dataset *model.SpatialDataset, attribute string) (*model.StatisticsResult, error) {
	values, err := attributeValues(dataset, attribute)
	if err != nil {
		return nil, err
	}
	if len(values) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 numeric observations for %q, got %d", model.ErrInsufficientData, attribute, len(values))
	}

	n := len(values)
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean := meanOf(values)
	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)
	stdDev := math.Sqrt(variance)

	result := &model.StatisticsResult{
		Attribute: attribute,
		Count:     n,
		Mean:      mean,
		Median:    quantile(sorted, 0.5),
		Mode:      modeOf(values),
		StdDev:    stdDev,
		Variance:  variance,
		Min:       sorted[0],
		Max:       sorted[n-1],
		Skewness:  adjustedSkewness(values, mean, stdDev),
		Normality: normalityVerdict(values, mean, stdDev),
		Outliers: model.OutlierReport{
			ZScore: zScoreOutliers(values, mean, stdDev),
			IQR:    iqrOutliers(values, sorted),
		},
	}
	return result, nil
}

// attributeValues coerces the named attribute to a float64 sample.
// Features where the attribute is unset would be excluded here; the
// normalizer currently guarantees population on every feature.
func attributeValues(dataset *model.SpatialDataset, attribute string) ([]float64, error) {
	switch attribute {
	case "population":
		values := make([]float64, 0, dataset.Size())
		for i := 0; i < dataset.Size(); i++ {
			values = append(values, float64(dataset.At(i).Population))
		}
		return values, nil
	default:
		return nil, fmt.Errorf("%w: unknown numeric attribute %q", model.ErrInvalidParameter, attribute)
	}
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// quantile interpolates linearly between closest ranks on a sorted sample.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// modeOf returns the most frequent value; on ties, the one appearing
// first in the sample.
func modeOf(values []float64) float64 {
	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best := values[0]
	bestCount := counts[best]
	for _, v := range values {
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}

// adjustedSkewness is the Fisher-Pearson coefficient with the sample-size
// adjustment sqrt(n(n-1))/(n-2). Zero for constant samples and for n < 3,
// where the adjustment is undefined.
func adjustedSkewness(values []float64, mean, stdDev float64) float64 {
	n := float64(len(values))
	if n < 3 || stdDev == 0 {
		return 0
	}
	var m3 float64
	for _, v := range values {
		d := v - mean
		m3 += d * d * d
	}
	m3 /= n
	g1 := m3 / (stdDev * stdDev * stdDev)
	return g1 * math.Sqrt(n*(n-1)) / (n - 2)
}

// normalityVerdict gives a coarse skewness-based verdict. It requires at
// least 8 observations and reports "insufficient data" below that rather
// than failing.
func normalityVerdict(values []float64, mean, stdDev float64) string {
	if len(values) < normalityMinSample {
		return "insufficient data"
	}
	skew := adjustedSkewness(values, mean, stdDev)
	if math.Abs(skew) < 0.5 {
		return "approximately normal"
	}
	return "non-normal (skewed)"
}

func zScoreOutliers(values []float64, mean, stdDev float64) model.OutlierMethodReport {
	report := model.OutlierMethodReport{Indices: []int{}}
	if stdDev == 0 {
		return report
	}
	for i, v := range values {
		if math.Abs((v-mean)/stdDev) > zScoreCutoff {
			report.Indices = append(report.Indices, i)
		}
	}
	report.Count = len(report.Indices)
	report.Percentage = float64(report.Count) / float64(len(values)) * 100
	return report
}

func iqrOutliers(values, sorted []float64) model.OutlierMethodReport {
	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	low := q1 - iqrFence*iqr
	high := q3 + iqrFence*iqr

	report := model.OutlierMethodReport{Indices: []int{}}
	for i, v := range values {
		if v < low || v > high {
			report.Indices = append(report.Indices, i)
		}
	}
	report.Count = len(report.Indices)
	report.Percentage = float64(report.Count) / float64(len(values)) * 100
	return report
}
