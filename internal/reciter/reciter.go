package reciter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/taiwoajasa245/quran-api/internal/database"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrAlreadyExists  = errors.New("record already exists")
	ErrInternalServer = errors.New("internal server error")
)

// Reciter is an audio source. Path is the reciter folder of the clip URL
// template; BaseURL overrides the configured audio host when set.
type Reciter struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Path    string `json:"path"`
	BaseURL string `json:"base_url"`
}

type CreateReciterRequest struct {
	Name    string `json:"name" validate:"required"`
	Path    string `json:"path" validate:"required,excludesall=/\\?#"`
	BaseURL string `json:"base_url" validate:"omitempty,url"`
}

type UpdateReciterRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Path    *string `json:"path,omitempty" validate:"omitempty,min=1,excludesall=/\\?#"`
	BaseURL *string `json:"base_url,omitempty" validate:"omitempty,url"`
}

type ReciterRepo interface {
	List(ctx context.Context) ([]Reciter, error)
	GetByID(ctx context.Context, id int) (*Reciter, error)
	Create(ctx context.Context, req CreateReciterRequest) (*Reciter, error)
	Update(ctx context.Context, id int, req UpdateReciterRequest) (*Reciter, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *sql.DB
}

func NewReciterRepo(dbService database.Service) ReciterRepo {
	return &repository{db: dbService.DB()}
}

func (r *repository) List(ctx context.Context) ([]Reciter, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, path, base_url FROM reciters ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list reciters: %w", err)
	}
	defer rows.Close()

	var out []Reciter
	for rows.Next() {
		var rc Reciter
		if err := rows.Scan(&rc.ID, &rc.Name, &rc.Path, &rc.BaseURL); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int) (*Reciter, error) {
	var rc Reciter
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, path, base_url FROM reciters WHERE id = $1
	`, id).Scan(&rc.ID, &rc.Name, &rc.Path, &rc.BaseURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reciter %d: %w", id, err)
	}
	return &rc, nil
}

func (r *repository) Create(ctx context.Context, req CreateReciterRequest) (*Reciter, error) {
	rc := Reciter{Name: req.Name, Path: req.Path, BaseURL: req.BaseURL}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reciters (name, path, base_url) VALUES ($1, $2, $3) RETURNING id
	`, req.Name, req.Path, req.BaseURL).Scan(&rc.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create reciter: %w", err)
	}
	return &rc, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateReciterRequest) (*Reciter, error) {
	var rc Reciter
	err := r.db.QueryRowContext(ctx, `
		UPDATE reciters SET
			name     = COALESCE($2, name),
			path     = COALESCE($3, path),
			base_url = COALESCE($4, base_url)
		WHERE id = $1
		RETURNING id, name, path, base_url
	`, id, req.Name, req.Path, req.BaseURL).Scan(&rc.ID, &rc.Name, &rc.Path, &rc.BaseURL)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		case database.IsUniqueViolation(err):
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("update reciter %d: %w", id, err)
	}
	return &rc, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reciters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reciter %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return ErrInternalServer
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type ReciterService struct {
	repo ReciterRepo
}

func NewReciterService(repo ReciterRepo) ReciterService {
	return ReciterService{repo: repo}
}

func (s *ReciterService) ListReciters(ctx context.Context) ([]Reciter, error) {
	return s.repo.List(ctx)
}

func (s *ReciterService) GetReciter(ctx context.Context, id int) (*Reciter, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ReciterService) CreateReciter(ctx context.Context, req CreateReciterRequest) (*Reciter, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.BaseURL = strings.TrimRight(req.BaseURL, "/")
	return s.repo.Create(ctx, req)
}

func (s *ReciterService) UpdateReciter(ctx context.Context, id int, req UpdateReciterRequest) (*Reciter, error) {
	if req.BaseURL != nil {
		base := strings.TrimRight(*req.BaseURL, "/")
		req.BaseURL = &base
	}
	return s.repo.Update(ctx, id, req)
}

func (s *ReciterService) DeleteReciter(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
