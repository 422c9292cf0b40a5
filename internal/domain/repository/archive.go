package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"geosight/internal/domain/model"
)

// PostgresArchive persists finished analysis reports. The core never
// reads them back; caching between runs stays the caller's business.
type PostgresArchive struct {
	db *sqlx.DB
}

// OpenPostgres connects and pings the archive database.
func OpenPostgres(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to archive database: %w", err)
	}
	return db, nil
}

func NewPostgresArchive(db *sqlx.DB) *PostgresArchive {
	return &PostgresArchive{db: db}
}

// SaveReport inserts one report row. The full report is kept as JSON
// next to the columns used for ad-hoc querying.
func (a *PostgresArchive) SaveReport(ctx context.Context, report *model.AnalysisReport) error {
	const query = `
		INSERT INTO analysis_reports (
			location, dataset_size, attribute,
			mean, median, std_dev,
			pattern, moran_i,
			report, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	_, err = a.db.ExecContext(ctx, query,
		report.Location, report.DatasetSize, report.Statistics.Attribute,
		report.Statistics.Mean, report.Statistics.Median, report.Statistics.StdDev,
		report.Spatial.Pattern, report.Spatial.MoranI,
		payload, report.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}
