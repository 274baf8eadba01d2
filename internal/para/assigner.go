package para

import (
	"context"
	"errors"
	"fmt"

	"github.com/taiwoajasa245/quran-api/internal/logger"
)

// Store is the persistence the assigner needs.
type Store interface {
	ListVerses(ctx context.Context) ([]Verse, error)
	FindParaByNumber(ctx context.Context, number int) (*Para, error)
	UpdateVerseParaAssignment(ctx context.Context, verseID, paraNumber, paraID int) error
}

// Assigner labels every ayah with its para. A run only writes rows whose
// assignment changed, so repeated runs converge to zero writes.
type Assigner struct {
	store      Store
	boundaries []Boundary
	log        *logger.Logger
}

func NewAssigner(store Store, boundaries []Boundary, log *logger.Logger) (*Assigner, error) {
	if err := ValidateBoundaries(boundaries); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Assigner{store: store, boundaries: boundaries, log: log.With("component", "para_assigner")}, nil
}

type paraLookup struct {
	para *Para
	err  error
}

// Run performs one pass. Per-verse failures are recorded in the report and do
// not stop the pass; only listing failures and context cancellation return an error.
func (a *Assigner) Run(ctx context.Context) (*Report, error) {
	verses, err := a.store.ListVerses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list verses: %w", err)
	}

	report := &Report{Skipped: []SkippedVerse{}}
	assigned := Assign(verses, a.boundaries)
	lookups := make(map[int]paraLookup, len(a.boundaries))

	for i, v := range verses {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Scanned++

		paraNumber := assigned[i]
		if v.ParaNumber != nil && *v.ParaNumber == paraNumber && v.ParaID != nil {
			report.Unchanged++
			continue
		}

		l, ok := lookups[paraNumber]
		if !ok {
			p, err := a.store.FindParaByNumber(ctx, paraNumber)
			l = paraLookup{para: p, err: err}
			lookups[paraNumber] = l
		}
		if l.err != nil {
			reason := ReasonLookupError
			if errors.Is(l.err, ErrNotFound) {
				reason = ReasonLookupMiss
			}
			a.skip(report, v, paraNumber, reason, l.err)
			continue
		}

		if err := a.store.UpdateVerseParaAssignment(ctx, v.ID, paraNumber, l.para.ID); err != nil {
			a.skip(report, v, paraNumber, ReasonWriteFailure, err)
			continue
		}
		report.Updated++
	}

	a.log.Info("para assignment finished",
		"scanned", report.Scanned,
		"updated", report.Updated,
		"unchanged", report.Unchanged,
		"skipped", report.SkippedCount(),
	)
	return report, nil
}

func (a *Assigner) skip(report *Report, v Verse, paraNumber int, reason SkipReason, err error) {
	report.Skipped = append(report.Skipped, SkippedVerse{
		VerseID:     v.ID,
		SurahNumber: v.SurahNumber,
		AyahNumber:  v.AyahNumber,
		ParaNumber:  paraNumber,
		Reason:      reason,
		Error:       err.Error(),
	})
	a.log.Warn("skipping ayah para assignment",
		"ayah_id", v.ID,
		"surah", v.SurahNumber,
		"ayah", v.AyahNumber,
		"para", paraNumber,
		"reason", string(reason),
		"error", err,
	)
}
