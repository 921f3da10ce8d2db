package db

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
)

const (
	// TargetSchemaVersion is the highest schema version this version of the code
	// supports for the timelinedb component.
	TargetSchemaVersion int64 = 1
	// TimelineDBComponent is the name for the main timeline database component.
	TimelineDBComponent = "timelinedb"
)

// GetComponentSchemaVersion retrieves the schema version for a given component.
// Returns 0 if the component is not found or the versions table doesn't exist yet.
func GetComponentSchemaVersion(dbConn *sql.DB, componentName string) (int64, error) {
	query := `SELECT version FROM lifelog_versions WHERE component = ?;`
	row := dbConn.QueryRow(query, componentName)

	var version int64
	err := row.Scan(&version)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		if strings.Contains(err.Error(), "no such table") && strings.Contains(err.Error(), "lifelog_versions") {
			// Versions table itself doesn't exist, so definitely version 0.
			return 0, nil
		}
		return 0, fmt.Errorf("failed to scan version for component '%s': %w", componentName, err)
	}
	return version, nil
}

// InitializeSchema creates the database schema (all tables and indexes for
// timelinedb) and records the specified schema version for the component.
func InitializeSchema(dbConn *sql.DB, schemaVersionToSet int64) error {
	_, err := dbConn.Exec(SchemaV1)
	if err != nil {
		return fmt.Errorf("failed to execute schema v1 SQL: %w", err)
	}

	insertVersionSQL := `
INSERT INTO lifelog_versions (component, version) VALUES (?, ?)
ON CONFLICT(component) DO UPDATE SET version = excluded.version, created_at = unixepoch();`

	_, err = dbConn.Exec(insertVersionSQL, TimelineDBComponent, schemaVersionToSet)
	if err != nil {
		return fmt.Errorf("failed to insert/update version for component %s to %d: %w", TimelineDBComponent, schemaVersionToSet, err)
	}

	fmt.Fprintf(os.Stderr, "Component %s initialized/updated to schema version %d\n", TimelineDBComponent, schemaVersionToSet)
	return nil
}

// UpgradeDB applies necessary migrations to bring the timelinedb component of
// the database behind dbConn to appTargetSchemaVersion.
// dbIdentifierForLog is used for logging purposes only.
func UpgradeDB(dbConn *sql.DB, dbIdentifierForLog string, appTargetSchemaVersion int64) error {
	currentDBVersion, err := GetComponentSchemaVersion(dbConn, TimelineDBComponent)
	if err != nil {
		return err
	}

	switch {
	case currentDBVersion == 0: // component not versioned or new DB
		fmt.Fprintf(os.Stderr, "Component %s in database '%s' is uninitialized. Initializing to schema version %d...\n", TimelineDBComponent, dbIdentifierForLog, appTargetSchemaVersion)
		if err := InitializeSchema(dbConn, appTargetSchemaVersion); err != nil {
			return fmt.Errorf("failed to initialize component %s in database '%s': %w", TimelineDBComponent, dbIdentifierForLog, err)
		}
		return nil
	case currentDBVersion == appTargetSchemaVersion:
		return nil
	case currentDBVersion < appTargetSchemaVersion:
		return fmt.Errorf("component %s in database '%s' has schema version %d, which is older than application's target schema version %d. Automatic migration from this older version is not yet supported", TimelineDBComponent, dbIdentifierForLog, currentDBVersion, appTargetSchemaVersion)
	default: // currentDBVersion > appTargetSchemaVersion
		return fmt.Errorf("component %s in database '%s' has schema version %d, which is newer than application's target schema version %d. Please upgrade the application", TimelineDBComponent, dbIdentifierForLog, currentDBVersion, appTargetSchemaVersion)
	}
}
