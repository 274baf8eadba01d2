package ayah

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taiwoajasa245/quran-api/internal/para"
	"github.com/taiwoajasa245/quran-api/internal/quran"
)

var ErrInvalidAyah = errors.New("ayah number out of range for surah")

type AyahService struct {
	repo AyahRepo
}

func NewAyahService(repo AyahRepo) AyahService {
	return AyahService{repo: repo}
}

func (s *AyahService) ListAyahs(ctx context.Context, surahID *int) ([]Ayah, error) {
	return s.repo.List(ctx, surahID)
}

func (s *AyahService) GetAyah(ctx context.Context, id int) (*Ayah, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AyahService) CreateAyah(ctx context.Context, req CreateAyahRequest) (*Ayah, error) {
	if !quran.ValidAyah(req.SurahNumber, req.AyahNumber) {
		return nil, fmt.Errorf("%w: %d:%d", ErrInvalidAyah, req.SurahNumber, req.AyahNumber)
	}
	if req.ParaNumber == nil {
		n := para.Locate(req.SurahNumber, req.AyahNumber, para.CanonicalBoundaries)
		req.ParaNumber = &n
	}
	req.Translation = trimmed(req.Translation)
	return s.repo.Create(ctx, req)
}

// UpdateAyah applies a partial update. When the surah or ayah number moves,
// the resulting pair is checked against the mushaf layout and, unless the
// caller sets one, the para number follows the new position.
func (s *AyahService) UpdateAyah(ctx context.Context, id int, req UpdateAyahRequest) (*Ayah, error) {
	if req.SurahNumber != nil || req.AyahNumber != nil {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		surah, number := current.SurahNumber, current.AyahNumber
		if req.SurahNumber != nil {
			surah = *req.SurahNumber
		}
		if req.AyahNumber != nil {
			number = *req.AyahNumber
		}
		if !quran.ValidAyah(surah, number) {
			return nil, fmt.Errorf("%w: %d:%d", ErrInvalidAyah, surah, number)
		}
		if req.ParaNumber == nil {
			n := para.Locate(surah, number, para.CanonicalBoundaries)
			req.ParaNumber = &n
		}
	}
	req.Translation = trimmed(req.Translation)
	return s.repo.Update(ctx, id, req)
}

func (s *AyahService) DeleteAyah(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *AyahService) CreateTafsir(ctx context.Context, req CreateTafsirRequest) (*Tafsir, error) {
	req.Scholar = strings.TrimSpace(req.Scholar)
	return s.repo.CreateTafsir(ctx, req)
}

func (s *AyahService) UpdateTafsir(ctx context.Context, id int, req UpdateTafsirRequest) (*Tafsir, error) {
	return s.repo.UpdateTafsir(ctx, id, req)
}

func (s *AyahService) DeleteTafsir(ctx context.Context, id int) error {
	return s.repo.DeleteTafsir(ctx, id)
}

// trimmed drops a blank translation so it is not stored.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
