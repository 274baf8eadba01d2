package para

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/taiwoajasa245/quran-api/internal/logger"
)

// QuranKitab is the kitab paras are attached to.
const QuranKitab = "Quran"

var ErrAssignmentRunning = errors.New("para assignment already running")

type ParaService struct {
	repo     Repository
	assigner *Assigner
	log      *logger.Logger

	// running serialises passes started from this process.
	running sync.Mutex
}

func NewParaService(repo Repository, log *logger.Logger) (*ParaService, error) {
	if log == nil {
		log = logger.NewNop()
	}
	assigner, err := NewAssigner(repo, CanonicalBoundaries, log)
	if err != nil {
		return nil, err
	}
	return &ParaService{repo: repo, assigner: assigner, log: log}, nil
}

// SeedParas makes sure the 30 para rows exist. Existing rows are left as they are.
func (s *ParaService) SeedParas(ctx context.Context) ([]Para, error) {
	kitabID, err := s.repo.KitabIDByName(ctx, QuranKitab)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("kitab %q must be seeded before paras: %w", QuranKitab, err)
		}
		return nil, err
	}

	paras := make([]Para, 0, ParaCount)
	for n := 1; n <= ParaCount; n++ {
		p, err := s.repo.UpsertPara(ctx, kitabID, n, fmt.Sprintf("Juz %d", n))
		if err != nil {
			return nil, err
		}
		s.log.Debug("para ready", "para", n, "id", p.ID)
		paras = append(paras, *p)
	}
	return paras, nil
}

// AssignParas runs one assignment pass. Returns ErrAssignmentRunning when a
// pass is already in progress in this process.
func (s *ParaService) AssignParas(ctx context.Context) (*Report, error) {
	if !s.running.TryLock() {
		return nil, ErrAssignmentRunning
	}
	defer s.running.Unlock()

	return s.assigner.Run(ctx)
}

func (s *ParaService) SeedAndAssign(ctx context.Context) (*Report, error) {
	if _, err := s.SeedParas(ctx); err != nil {
		return nil, err
	}
	return s.AssignParas(ctx)
}

func (s *ParaService) ListParas(ctx context.Context) ([]Para, error) {
	return s.repo.ListParas(ctx)
}

func (s *ParaService) GetPara(ctx context.Context, number int) (*Para, error) {
	if number < 1 || number > ParaCount {
		return nil, ErrNotFound
	}
	return s.repo.FindParaByNumber(ctx, number)
}

func (s *ParaService) ListParaAyahs(ctx context.Context, number int) ([]ParaAyah, error) {
	if _, err := s.GetPara(ctx, number); err != nil {
		return nil, err
	}
	return s.repo.GetAyahsByPara(ctx, number)
}
