package core

import (
	"fmt"
	"time"

	"geosight/internal/domain/model"
)

// ReportInput carries everything report assembly needs. Weather is
// optional pass-through data; everything else is required.
type ReportInput struct {
	Location   string
	Dataset    *model.SpatialDataset
	Statistics *model.StatisticsResult
	Spatial    *model.SpatialPatternResult
	Weather    *model.WeatherConditions
}

// BuildReport aggregates finished results into one immutable report.
// Pure assembly: nothing is recomputed, and the only failure mode is a
// missing required input.
func BuildReport(in ReportInput, generatedAt time.Time) (*model.AnalysisReport, error) {
	switch {
	case in.Location == "":
		return nil, fmt.Errorf("%w: location label", model.ErrMissingInput)
	case in.Dataset == nil || in.Dataset.Size() == 0:
		return nil, fmt.Errorf("%w: source dataset", model.ErrMissingInput)
	case in.Statistics == nil:
		return nil, fmt.Errorf("%w: statistics result", model.ErrMissingInput)
	case in.Spatial == nil:
		return nil, fmt.Errorf("%w: spatial pattern result", model.ErrMissingInput)
	}

	return &model.AnalysisReport{
		Location:    in.Location,
		DatasetSize: in.Dataset.Size(),
		GeneratedAt: generatedAt,
		Statistics:  in.Statistics,
		Spatial:     in.Spatial,
		Categories:  in.Dataset.CategoryCounts(),
		Weather:     in.Weather,
	}, nil
}
