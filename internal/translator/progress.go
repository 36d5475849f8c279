package translator

import (
	"math"

	"github.com/modlingo/modlingo/internal/models"
)

// Progress derives percent-complete from chunk state. A chunk counts the
// moment it leaves processing, whether it completed or failed. Zero chunks
// yields 0 by convention.
func Progress(job *models.Job) int {
	total := len(job.Chunks)
	if total == 0 {
		return 0
	}
	terminal := 0
	for _, c := range job.Chunks {
		if c.Status.Terminal() {
			terminal++
		}
	}
	return int(math.Round(100 * float64(terminal) / float64(total)))
}
