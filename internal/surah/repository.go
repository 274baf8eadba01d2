package surah

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taiwoajasa245/quran-api/internal/database"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrAlreadyExists   = errors.New("record already exists")
	ErrInvalidRelation = errors.New("referenced kitab does not exist")
	ErrInternalServer  = errors.New("internal server error")
)

type SurahRepo interface {
	List(ctx context.Context, kitabID *int) ([]Surah, error)
	GetByID(ctx context.Context, id int) (*Surah, error)
	Create(ctx context.Context, req CreateSurahRequest) (*Surah, error)
	Update(ctx context.Context, id int, req UpdateSurahRequest) (*Surah, error)
	Delete(ctx context.Context, id int) error
	// Upsert returns the surah with req.SurahNumber, creating it when missing.
	Upsert(ctx context.Context, req CreateSurahRequest) (*Surah, error)
}

type repository struct {
	db *sql.DB
}

func NewSurahRepo(dbService database.Service) SurahRepo {
	return &repository{db: dbService.DB()}
}

const surahColumns = `id, kitab_id, surah_number, name, name_arabic, verses_count, revelation`

func scanSurah(row interface{ Scan(...any) error }) (*Surah, error) {
	var s Surah
	if err := row.Scan(&s.ID, &s.KitabID, &s.SurahNumber, &s.Name, &s.NameArabic, &s.VersesCount, &s.Revelation); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) List(ctx context.Context, kitabID *int) ([]Surah, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+surahColumns+`
		FROM surahs
		WHERE ($1::int IS NULL OR kitab_id = $1)
		ORDER BY surah_number ASC
	`, kitabID)
	if err != nil {
		return nil, fmt.Errorf("list surahs: %w", err)
	}
	defer rows.Close()

	var surahs []Surah
	for rows.Next() {
		s, err := scanSurah(rows)
		if err != nil {
			return nil, err
		}
		surahs = append(surahs, *s)
	}
	return surahs, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int) (*Surah, error) {
	s, err := scanSurah(r.db.QueryRowContext(ctx, `SELECT `+surahColumns+` FROM surahs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get surah %d: %w", id, err)
	}
	return s, nil
}

func (r *repository) Create(ctx context.Context, req CreateSurahRequest) (*Surah, error) {
	s, err := scanSurah(r.db.QueryRowContext(ctx, `
		INSERT INTO surahs (kitab_id, surah_number, name, name_arabic, verses_count, revelation)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+surahColumns,
		req.KitabID, req.SurahNumber, req.Name, req.NameArabic, req.VersesCount, req.Revelation,
	))
	if err != nil {
		return nil, translateWriteError(err, "create surah")
	}
	return s, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateSurahRequest) (*Surah, error) {
	s, err := scanSurah(r.db.QueryRowContext(ctx, `
		UPDATE surahs SET
			name         = COALESCE($2, name),
			name_arabic  = COALESCE($3, name_arabic),
			verses_count = COALESCE($4, verses_count),
			revelation   = COALESCE($5, revelation)
		WHERE id = $1
		RETURNING `+surahColumns,
		id, req.Name, req.NameArabic, req.VersesCount, req.Revelation,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, translateWriteError(err, "update surah")
	}
	return s, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM surahs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete surah %d: %w", id, err)
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

func (r *repository) Upsert(ctx context.Context, req CreateSurahRequest) (*Surah, error) {
	s, err := scanSurah(r.db.QueryRowContext(ctx, `
		INSERT INTO surahs (kitab_id, surah_number, name, name_arabic, verses_count, revelation)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (surah_number) DO UPDATE SET surah_number = EXCLUDED.surah_number
		RETURNING `+surahColumns,
		req.KitabID, req.SurahNumber, req.Name, req.NameArabic, req.VersesCount, req.Revelation,
	))
	if err != nil {
		return nil, translateWriteError(err, fmt.Sprintf("upsert surah %d", req.SurahNumber))
	}
	return s, nil
}

func translateWriteError(err error, op string) error {
	switch {
	case database.IsUniqueViolation(err):
		return ErrAlreadyExists
	case database.IsForeignKeyViolation(err):
		return ErrInvalidRelation
	}
	return fmt.Errorf("%s: %w", op, err)
}
