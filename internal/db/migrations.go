package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'plate_read_status') THEN
			CREATE TYPE plate_read_status AS ENUM ('NO_INPUT', 'NO_CANDIDATE', 'INVALID', 'VALID');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS plate_reads (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		plate VARCHAR(32),
		status plate_read_status NOT NULL,
		source VARCHAR(255) NOT NULL,
		detections INTEGER NOT NULL DEFAULT 0,
		detected_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_plate_reads_plate ON plate_reads (plate);`,
	`CREATE INDEX IF NOT EXISTS idx_plate_reads_status ON plate_reads (status);`,
	`CREATE INDEX IF NOT EXISTS idx_plate_reads_detected_at ON plate_reads (detected_at DESC);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
