package kitab

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taiwoajasa245/quran-api/internal/database"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrAlreadyExists  = errors.New("record already exists")
	ErrInternalServer = errors.New("internal server error")
)

type KitabRepo interface {
	List(ctx context.Context) ([]Kitab, error)
	GetByID(ctx context.Context, id int) (*Kitab, error)
	Create(ctx context.Context, req CreateKitabRequest) (*Kitab, error)
	Update(ctx context.Context, id int, req UpdateKitabRequest) (*Kitab, error)
	Delete(ctx context.Context, id int) error
	// Upsert returns the kitab with this name, creating it when missing.
	Upsert(ctx context.Context, req CreateKitabRequest) (*Kitab, error)
}

type repository struct {
	db *sql.DB
}

func NewKitabRepo(dbService database.Service) KitabRepo {
	return &repository{db: dbService.DB()}
}

const kitabColumns = `id, name, name_arabic, description, created_at, updated_at`

func scanKitab(row interface{ Scan(...any) error }) (*Kitab, error) {
	var k Kitab
	if err := row.Scan(&k.ID, &k.Name, &k.NameArabic, &k.Description, &k.CreatedAt, &k.UpdatedAt); err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *repository) List(ctx context.Context) ([]Kitab, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+kitabColumns+` FROM kitabs ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list kitabs: %w", err)
	}
	defer rows.Close()

	var kitabs []Kitab
	for rows.Next() {
		k, err := scanKitab(rows)
		if err != nil {
			return nil, err
		}
		kitabs = append(kitabs, *k)
	}
	return kitabs, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int) (*Kitab, error) {
	k, err := scanKitab(r.db.QueryRowContext(ctx, `SELECT `+kitabColumns+` FROM kitabs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get kitab %d: %w", id, err)
	}
	return k, nil
}

func (r *repository) Create(ctx context.Context, req CreateKitabRequest) (*Kitab, error) {
	k, err := scanKitab(r.db.QueryRowContext(ctx, `
		INSERT INTO kitabs (name, name_arabic, description)
		VALUES ($1, $2, $3)
		RETURNING `+kitabColumns,
		req.Name, req.NameArabic, req.Description,
	))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create kitab: %w", err)
	}
	return k, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateKitabRequest) (*Kitab, error) {
	k, err := scanKitab(r.db.QueryRowContext(ctx, `
		UPDATE kitabs SET
			name        = COALESCE($2, name),
			name_arabic = COALESCE($3, name_arabic),
			description = COALESCE($4, description),
			updated_at  = NOW()
		WHERE id = $1
		RETURNING `+kitabColumns,
		id, req.Name, req.NameArabic, req.Description,
	))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		case database.IsUniqueViolation(err):
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("update kitab %d: %w", id, err)
	}
	return k, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM kitabs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete kitab %d: %w", id, err)
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

func (r *repository) Upsert(ctx context.Context, req CreateKitabRequest) (*Kitab, error) {
	// The no-op update makes RETURNING yield the existing row.
	k, err := scanKitab(r.db.QueryRowContext(ctx, `
		INSERT INTO kitabs (name, name_arabic, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING `+kitabColumns,
		req.Name, req.NameArabic, req.Description,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert kitab %q: %w", req.Name, err)
	}
	return k, nil
}
