package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"vanity-bot/utils"

	"github.com/spf13/viper"
)

// PruneOldChanges deletes role change history older than the configured
// retention window. Runs daily from the scheduler.
func PruneOldChanges(db *sql.DB) {
	retentionDays := viper.GetInt("vanity.history_retention_days")
	if retentionDays <= 0 {
		retentionDays = 90
	}

	log.Printf("Starting cleanup of role change history older than %d days...", retentionDays)

	cutoff := time.Now().AddDate(0, 0, -retentionDays).Unix()

	stmt, err := db.Prepare(`DELETE FROM role_changes WHERE timestamp < ?`)
	if err != nil {
		log.Printf("Error preparing history cleanup statement: %v", err)
		return
	}
	defer stmt.Close()

	res, err := stmt.Exec(cutoff)
	if err != nil {
		log.Printf("Error executing history cleanup statement: %v", err)
		return
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		log.Printf("Error getting rows affected for history cleanup: %v", err)
		return
	}

	log.Printf("Successfully cleaned up %d old role change records", rowsAffected)
	if rowsAffected > 0 {
		utils.Info("PruneOldChanges", "Cleanup", fmt.Sprintf("Successfully cleaned up %d old role change records", rowsAffected))
	}
}
