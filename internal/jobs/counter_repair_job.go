package job

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/maheshrc27/pixelgram/internal/models"
	"github.com/maheshrc27/pixelgram/internal/repository"
)

// CounterRepairJob reconciles the denormalized like counters with the
// likes table. Toggle transactions keep the counters close, but a crash
// between commit points can leave drift behind.
type CounterRepairJob struct {
	lr repository.LikeRepository
}

func NewCounterRepairJob(lr repository.LikeRepository) *CounterRepairJob {
	return &CounterRepairJob{
		lr: lr,
	}
}

func (c *CounterRepairJob) RepairCounters() {
	ctx := context.Background()

	targets := []string{
		models.LikeTargetPost,
		models.LikeTargetStory,
		models.LikeTargetComment,
	}

	var wg sync.WaitGroup

	for _, target := range targets {
		wg.Add(1)

		go func(target string) {
			defer wg.Done()

			repaired, err := c.lr.RepairCounters(ctx, target)
			if err != nil {
				slog.Info("Unable to repair like counters for " + target)
				return
			}
			if repaired > 0 {
				slog.Info("Repaired " + strconv.FormatInt(repaired, 10) + " like counters for " + target)
			}
		}(target)
	}

	wg.Wait()
}
