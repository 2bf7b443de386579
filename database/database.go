package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"vanity-bot/models"

	_ "github.com/mattn/go-sqlite3" // Import the SQLite3 driver
)

// InitDB initializes the database connection. It takes the database path as input.
func InitDB(dbPath string) (*sql.DB, error) {
	// Ensure the directory for the database file exists.
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open the SQLite database. It will be created if it doesn't exist.
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Ping the database to verify the connection.
	if err = db.Ping(); err != nil {
		db.Close() // Close the connection if ping fails
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createRoleChangesTable(db); err != nil {
		db.Close() // Close the connection if table creation fails
		return nil, fmt.Errorf("failed to create role_changes table: %w", err)
	}

	log.Println("Successfully connected to the database at", dbPath)
	return db, nil
}

// createRoleChangesTable creates the 'role_changes' table if it doesn't exist.
func createRoleChangesTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS role_changes (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        guild_id TEXT NOT NULL,
        member_id TEXT NOT NULL,
        role_id TEXT NOT NULL,
        role_name TEXT,
        action TEXT NOT NULL,
        trigger_text TEXT,
        reason TEXT,
        timestamp INTEGER NOT NULL
    );`
	if _, err := db.Exec(query); err != nil {
		return err
	}

	// Sweep history is queried per guild ordered by recency.
	indexQuery := `CREATE INDEX IF NOT EXISTS idx_role_changes_guild_ts ON role_changes (guild_id, timestamp DESC);`
	_, err := db.Exec(indexQuery)
	return err
}

// InsertRoleChange saves a single applied role change to the history table.
func InsertRoleChange(db *sql.DB, change models.RoleChange) error {
	query := `
    INSERT INTO role_changes (
        guild_id, member_id, role_id, role_name, action, trigger_text, reason, timestamp
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	stmt, err := db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for saving role change: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(
		change.GuildID,
		change.MemberID,
		change.RoleID,
		change.RoleName,
		change.Action,
		change.Trigger,
		change.Reason,
		change.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to execute statement for saving role change in guild %s: %w", change.GuildID, err)
	}

	return nil
}

// GetRecentChanges retrieves the most recent role changes for a guild, newest first.
func GetRecentChanges(db *sql.DB, guildID string, limit int) ([]models.RoleChange, error) {
	query := `
    SELECT id, guild_id, member_id, role_id, role_name, action, trigger_text, reason, timestamp
    FROM role_changes WHERE guild_id = ? ORDER BY timestamp DESC, id DESC LIMIT ?`

	rows, err := db.Query(query, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query role changes for guild %s: %w", guildID, err)
	}
	defer rows.Close()

	var changes []models.RoleChange
	for rows.Next() {
		var rc models.RoleChange
		if err := rows.Scan(&rc.ID, &rc.GuildID, &rc.MemberID, &rc.RoleID, &rc.RoleName, &rc.Action, &rc.Trigger, &rc.Reason, &rc.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan role change: %w", err)
		}
		changes = append(changes, rc)
	}
	return changes, rows.Err()
}

// GetMemberChanges retrieves the most recent role changes for one member of a guild.
func GetMemberChanges(db *sql.DB, guildID, memberID string, limit int) ([]models.RoleChange, error) {
	query := `
    SELECT id, guild_id, member_id, role_id, role_name, action, trigger_text, reason, timestamp
    FROM role_changes WHERE guild_id = ? AND member_id = ? ORDER BY timestamp DESC, id DESC LIMIT ?`

	rows, err := db.Query(query, guildID, memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query role changes for member %s: %w", memberID, err)
	}
	defer rows.Close()

	var changes []models.RoleChange
	for rows.Next() {
		var rc models.RoleChange
		if err := rows.Scan(&rc.ID, &rc.GuildID, &rc.MemberID, &rc.RoleID, &rc.RoleName, &rc.Action, &rc.Trigger, &rc.Reason, &rc.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan role change: %w", err)
		}
		changes = append(changes, rc)
	}
	return changes, rows.Err()
}

// DeleteGuildChanges removes all history rows for a guild. Called when the bot
// leaves a guild so stale data does not accumulate.
func DeleteGuildChanges(db *sql.DB, guildID string) error {
	res, err := db.Exec(`DELETE FROM role_changes WHERE guild_id = ?`, guildID)
	if err != nil {
		return fmt.Errorf("failed to delete role changes for guild %s: %w", guildID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		log.Printf("Deleted %d role change records for departed guild %s", n, guildID)
	}
	return nil
}

// Recorder adapts a *sql.DB to the engine's history sink.
type Recorder struct {
	db *sql.DB
}

func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{db: db}
}

func (r *Recorder) Record(rc models.RoleChange) error {
	return InsertRoleChange(r.db, rc)
}
