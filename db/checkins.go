// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/danielhkuo/bjjournal/models"
)

// CheckIn records attendance for date (YYYY-MM-DD, empty for today). A
// second check-in for the same date is not an error.
func (s *SQLiteStore) CheckIn(ctx context.Context, date string) (CheckInResult, error) {
	if date == "" {
		date = s.today()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO check_ins (date, timestamp) VALUES (?, ?)
	`, date, s.timestamp())
	if err != nil {
		if IsUniqueViolation(err) {
			return CheckInExisted, nil
		}
		return CheckInCreated, fmt.Errorf("failed to insert check-in: %w", err)
	}
	return CheckInCreated, nil
}

// ListCheckIns returns all dates ascending with total and weekly average.
func (s *SQLiteStore) ListCheckIns(ctx context.Context) (models.CheckInSummary, error) {
	summary := models.CheckInSummary{Dates: []string{}}

	rows, err := s.db.QueryContext(ctx, `
		SELECT CAST(date AS TEXT) FROM check_ins WHERE date IS NOT NULL ORDER BY date
	`)
	if err != nil {
		return summary, fmt.Errorf("failed to query check-ins: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return summary, fmt.Errorf("failed to scan check-in: %w", err)
		}
		summary.Dates = append(summary.Dates, date)
	}
	if err := rows.Err(); err != nil {
		return summary, fmt.Errorf("failed to read check-ins: %w", err)
	}

	summary.Total = len(summary.Dates)
	avg, err := AveragePerWeek(summary.Dates)
	if err != nil {
		return summary, err
	}
	summary.AvgPerWeek = avg
	return summary, nil
}

// AveragePerWeek divides the number of dates by the weeks spanned between the
// first and last (sorted) date, never less than one week, rounded to one
// decimal.
func AveragePerWeek(dates []string) (float64, error) {
	if len(dates) == 0 {
		return 0, nil
	}

	first, err := time.Parse(DateLayout, dates[0])
	if err != nil {
		return 0, fmt.Errorf("invalid check-in date %q: %w", dates[0], err)
	}
	last, err := time.Parse(DateLayout, dates[len(dates)-1])
	if err != nil {
		return 0, fmt.Errorf("invalid check-in date %q: %w", dates[len(dates)-1], err)
	}

	days := last.Sub(first).Hours() / 24
	weeks := math.Max(1, days/7)
	// halves round away from zero (1.25 -> 1.3), unlike round-half-to-even
	return math.Round(float64(len(dates))/weeks*10) / 10, nil
}
