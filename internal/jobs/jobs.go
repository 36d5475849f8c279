package jobs

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Job names registered by the startup wiring.
const (
	JobModScan     = "mod-scan"
	JobBackupPrune = "backup-prune"
)

// StartJobs starts the background job scheduler: periodic mod directory
// rescans and a daily backup retention sweep.
func StartJobs(app JobContext) {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	startModScanJob(s, app)
	startBackupPruneJob(s, app)

	log.Println("Starting background job scheduler...")
	s.StartAsync()
}

func startModScanJob(s *gocron.Scheduler, app JobContext) {
	interval := app.Config().ScanInterval
	if interval == 0 {
		log.Println("Mod scan interval is 0, scheduled scanning is disabled.")
		return
	}

	log.Printf("Scheduling job: '%s' to run every %d minutes.", JobModScan, interval)
	_, err := s.Every(interval).Minutes().Do(func() {
		log.Println("Scheduler is triggering job:", JobModScan)
		if err := app.JobManager().RunJob(JobModScan, app); err != nil {
			log.Printf("Scheduled job '%s' could not start: %v", JobModScan, err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling '%s' job: %v", JobModScan, err)
	}
}

func startBackupPruneJob(s *gocron.Scheduler, app JobContext) {
	_, err := s.Every(1).Day().At("03:00").Do(func() {
		log.Println("Scheduler is triggering job:", JobBackupPrune)
		if err := app.JobManager().RunJob(JobBackupPrune, app); err != nil {
			log.Printf("Scheduled job '%s' could not start: %v", JobBackupPrune, err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling '%s' job: %v", JobBackupPrune, err)
	}
}
