package surah

import (
	"context"
	"strings"

	"github.com/taiwoajasa245/quran-api/internal/ayah"
)

type SurahService struct {
	repo  SurahRepo
	ayahs ayah.AyahRepo
}

func NewSurahService(repo SurahRepo, ayahs ayah.AyahRepo) SurahService {
	return SurahService{repo: repo, ayahs: ayahs}
}

func (s *SurahService) ListSurahs(ctx context.Context, kitabID *int) ([]Surah, error) {
	return s.repo.List(ctx, kitabID)
}

// GetSurah returns the surah with its ayahs, translations and tafsirs.
func (s *SurahService) GetSurah(ctx context.Context, id int) (*SurahDetail, error) {
	sr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ayahs, err := s.ayahs.List(ctx, &sr.ID)
	if err != nil {
		return nil, err
	}
	if ayahs == nil {
		ayahs = []ayah.Ayah{}
	}
	return &SurahDetail{Surah: *sr, Ayahs: ayahs}, nil
}

func (s *SurahService) CreateSurah(ctx context.Context, req CreateSurahRequest) (*Surah, error) {
	req.Name = strings.TrimSpace(req.Name)
	return s.repo.Create(ctx, req)
}

func (s *SurahService) UpdateSurah(ctx context.Context, id int, req UpdateSurahRequest) (*Surah, error) {
	return s.repo.Update(ctx, id, req)
}

func (s *SurahService) DeleteSurah(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
