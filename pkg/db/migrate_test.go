package db

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3" // SQLite driver, needed for tests
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "lifelog_test.db")
	dbConn, err := OpenDBConnection(dbPath, true, "NORMAL")
	if err != nil {
		t.Fatalf("OpenDBConnection failed: %v", err)
	}
	t.Cleanup(func() { dbConn.Close() })
	return dbConn
}

// checkTableExists is a test helper to verify if a table exists in the database.
func checkTableExists(t *testing.T, dbConn *sql.DB, tableName string) {
	t.Helper()
	query := fmt.Sprintf("SELECT name FROM sqlite_master WHERE type='table' AND name='%s';", tableName)
	var name string
	err := dbConn.QueryRow(query).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			t.Errorf("Table '%s' does not exist, but it should.", tableName)
			return
		}
		t.Fatalf("Error checking if table '%s' exists: %v", tableName, err)
	}
	if name != tableName {
		t.Errorf("Table check query returned '%s' but expected '%s'", name, tableName)
	}
}

func checkIndexExists(t *testing.T, dbConn *sql.DB, indexName string) {
	t.Helper()
	query := fmt.Sprintf("SELECT name FROM sqlite_master WHERE type='index' AND name='%s';", indexName)
	var name string
	err := dbConn.QueryRow(query).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			t.Errorf("Index '%s' does not exist, but it should.", indexName)
			return
		}
		t.Fatalf("Error checking if index '%s' exists: %v", indexName, err)
	}
}

func TestUpgradeDB_NewDatabase(t *testing.T) {
	dbConn := openTestDB(t)

	// UpgradeDB should initialize the schema to the current TargetSchemaVersion.
	if err := UpgradeDB(dbConn, "test", TargetSchemaVersion); err != nil {
		t.Fatalf("UpgradeDB failed on a new database: %v", err)
	}

	for _, tableName := range []string{"lifelog_versions", "events"} {
		checkTableExists(t, dbConn, tableName)
	}
	for _, indexName := range []string{"idx_events_timestamp", "idx_events_category_timestamp"} {
		checkIndexExists(t, dbConn, indexName)
	}

	version, err := GetComponentSchemaVersion(dbConn, TimelineDBComponent)
	if err != nil {
		t.Fatalf("GetComponentSchemaVersion failed after UpgradeDB: %v", err)
	}
	if version != TargetSchemaVersion {
		t.Errorf("Expected component '%s' to be at version %d, but got %d", TimelineDBComponent, TargetSchemaVersion, version)
	}
}

func TestUpgradeDB_AlreadyUpToDate(t *testing.T) {
	dbConn := openTestDB(t)

	if err := UpgradeDB(dbConn, "test", TargetSchemaVersion); err != nil {
		t.Fatalf("first UpgradeDB failed: %v", err)
	}
	// A second upgrade must be a no-op, not an error.
	if err := UpgradeDB(dbConn, "test", TargetSchemaVersion); err != nil {
		t.Fatalf("second UpgradeDB failed on an up-to-date database: %v", err)
	}
}

func TestUpgradeDB_NewerThanTarget(t *testing.T) {
	dbConn := openTestDB(t)

	if err := InitializeSchema(dbConn, TargetSchemaVersion+1); err != nil {
		t.Fatalf("InitializeSchema failed: %v", err)
	}

	err := UpgradeDB(dbConn, "test", TargetSchemaVersion)
	if err == nil {
		t.Fatal("Expected UpgradeDB to fail when the database schema is newer than the application target")
	}
}

func TestGetComponentSchemaVersion_UninitializedDB(t *testing.T) {
	dbConn := openTestDB(t)

	version, err := GetComponentSchemaVersion(dbConn, TimelineDBComponent)
	if err != nil {
		t.Fatalf("GetComponentSchemaVersion failed on uninitialized DB: %v", err)
	}
	if version != 0 {
		t.Errorf("Expected version 0 for uninitialized database, got %d", version)
	}
}

func TestOpenDBConnection_InvalidSyncPragma(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lifelog_test.db")
	_, err := OpenDBConnection(dbPath, true, "BOGUS")
	if err == nil {
		t.Fatal("Expected OpenDBConnection to reject an invalid sync pragma")
	}
}
