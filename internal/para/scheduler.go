package para

import (
	"context"
	"errors"
	"time"
)

// StartScheduler re-runs the assignment pass every interval until ctx is done,
// so ayahs created or edited through the API pick up their para.
func (s *ParaService) StartScheduler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		s.log.Info("para scheduler disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("para scheduler started", "interval", interval.String())

	for {
		select {
		case <-ctx.Done():
			s.log.Info("para scheduler stopped")
			return
		case <-ticker.C:
			s.runReconciliation(ctx)
		}
	}
}

func (s *ParaService) runReconciliation(ctx context.Context) {
	report, err := s.AssignParas(ctx)
	if err != nil {
		if errors.Is(err, ErrAssignmentRunning) || errors.Is(err, context.Canceled) {
			s.log.Debug("para reconciliation skipped", "reason", err)
			return
		}
		s.log.Error("para reconciliation failed", "error", err)
		return
	}
	if report.SkippedCount() > 0 {
		s.log.Warn("para reconciliation skipped ayahs", "skipped", report.SkippedCount())
	}
}
