package core

import (
	"log"

	"github.com/modlingo/modlingo/internal/backup"
	"github.com/modlingo/modlingo/internal/jobs"
)

func pruneBackups(ctx jobs.JobContext) {
	removed, err := backup.Prune(ctx.Store(), ctx.Config().Backup.Keep)
	if err != nil {
		log.Printf("Backup prune failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Backup prune removed %d old snapshots.", removed)
	}
}
