package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes beyond what AutoMigrate
// derives from struct tags. Postgres only; other drivers rely on tag indexes.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Ride listing filters and ordering
		{"rides", "idx_rides_status_departure", "status, departure_time"},
		{"rides", "idx_rides_driver_status", "driver_id, status"},

		// Membership lookups by passenger
		{"ride_memberships", "idx_ride_memberships_passenger", "passenger_id"},

		// Friendship lookups from either side
		{"friendships", "idx_friendships_recipient_status", "recipient_id, status"},
		{"friendships", "idx_friendships_requester_status", "requester_id, status"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Scan(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}
		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
