package kitab

import (
	"context"
	"strings"
)

// Quran is the kitab every import and the para table hang off.
var Quran = CreateKitabRequest{
	Name:        "Quran",
	NameArabic:  "القرآن الكريم",
	Description: "The Holy Quran",
}

type KitabService struct {
	repo KitabRepo
}

func NewKitabService(repo KitabRepo) KitabService {
	return KitabService{repo: repo}
}

func (s *KitabService) ListKitabs(ctx context.Context) ([]Kitab, error) {
	return s.repo.List(ctx)
}

func (s *KitabService) GetKitab(ctx context.Context, id int) (*Kitab, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *KitabService) CreateKitab(ctx context.Context, req CreateKitabRequest) (*Kitab, error) {
	req.Name = strings.TrimSpace(req.Name)
	return s.repo.Create(ctx, req)
}

func (s *KitabService) UpdateKitab(ctx context.Context, id int, req UpdateKitabRequest) (*Kitab, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	return s.repo.Update(ctx, id, req)
}

func (s *KitabService) DeleteKitab(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *KitabService) EnsureQuran(ctx context.Context) (*Kitab, error) {
	return s.repo.Upsert(ctx, Quran)
}
