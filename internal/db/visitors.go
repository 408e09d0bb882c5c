package db

import (
	"fmt"
	"time"
)

// VisitorMetric is one tracked page view. IPs are stored as truncated
// salted hashes, never raw.
type VisitorMetric struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	HashedIP  string `gorm:"index;not null"`
	UserAgent string
	Path      string `gorm:"not null"`
	CreatedAt time.Time
}

// VisitorStats summarizes tracked traffic.
type VisitorStats struct {
	TotalVisits    int64 `json:"total_visits"`
	UniqueVisitors int64 `json:"unique_visitors"`
	VisitsToday    int64 `json:"visits_today"`
	VisitsThisWeek int64 `json:"visits_this_week"`
}

// RecordVisit stores one page view.
func (db *DB) RecordVisit(hashedIP, userAgent, path string) error {
	metric := VisitorMetric{
		HashedIP:  hashedIP,
		UserAgent: userAgent,
		Path:      path,
	}
	if err := db.Create(&metric).Error; err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// GetVisitorStats returns aggregate traffic statistics.
func (db *DB) GetVisitorStats() (*VisitorStats, error) {
	var stats VisitorStats

	if err := db.Model(&VisitorMetric{}).Count(&stats.TotalVisits).Error; err != nil {
		return nil, fmt.Errorf("count visits: %w", err)
	}

	err := db.Model(&VisitorMetric{}).
		Distinct("hashed_ip").
		Count(&stats.UniqueVisitors).Error
	if err != nil {
		return nil, fmt.Errorf("count unique visitors: %w", err)
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	err = db.Model(&VisitorMetric{}).
		Where("created_at >= ?", startOfDay).
		Count(&stats.VisitsToday).Error
	if err != nil {
		return nil, fmt.Errorf("count visits today: %w", err)
	}

	err = db.Model(&VisitorMetric{}).
		Where("created_at >= ?", now.AddDate(0, 0, -7)).
		Count(&stats.VisitsThisWeek).Error
	if err != nil {
		return nil, fmt.Errorf("count visits this week: %w", err)
	}

	return &stats, nil
}
