package para

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taiwoajasa245/quran-api/internal/database"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	Store

	KitabIDByName(ctx context.Context, name string) (int, error)
	UpsertPara(ctx context.Context, kitabID, number int, name string) (*Para, error)
	ListParas(ctx context.Context) ([]Para, error)
	GetAyahsByPara(ctx context.Context, number int) ([]ParaAyah, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(dbService database.Service) Repository {
	return &repository{db: dbService.DB()}
}

func (r *repository) ListVerses(ctx context.Context) ([]Verse, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, surah_number, ayah_number, para_number, para_id
		FROM ayahs
		ORDER BY surah_number ASC, ayah_number ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var verses []Verse
	for rows.Next() {
		var (
			v          Verse
			paraNumber sql.NullInt64
			paraID     sql.NullInt64
		)
		if err := rows.Scan(&v.ID, &v.SurahNumber, &v.AyahNumber, &paraNumber, &paraID); err != nil {
			return nil, err
		}
		if paraNumber.Valid {
			n := int(paraNumber.Int64)
			v.ParaNumber = &n
		}
		if paraID.Valid {
			id := int(paraID.Int64)
			v.ParaID = &id
		}
		verses = append(verses, v)
	}
	return verses, rows.Err()
}

func (r *repository) FindParaByNumber(ctx context.Context, number int) (*Para, error) {
	var p Para
	err := r.db.QueryRowContext(ctx, `
		SELECT p.id, p.kitab_id, p.para_number, p.name,
		       (SELECT COUNT(*) FROM ayahs a WHERE a.para_number = p.para_number)
		FROM paras p
		WHERE p.para_number = $1
	`, number).Scan(&p.ID, &p.KitabID, &p.ParaNumber, &p.Name, &p.AyahCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find para %d: %w", number, err)
	}
	return &p, nil
}

func (r *repository) UpdateVerseParaAssignment(ctx context.Context, verseID, paraNumber, paraID int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE ayahs
		SET para_number = $1, para_id = $2
		WHERE id = $3
	`, paraNumber, paraID, verseID)
	if err != nil {
		return fmt.Errorf("update ayah %d: %w", verseID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) KitabIDByName(ctx context.Context, name string) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `SELECT id FROM kitabs WHERE name = $1`, name).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return id, nil
}

// UpsertPara creates the para if missing and leaves an existing row untouched.
func (r *repository) UpsertPara(ctx context.Context, kitabID, number int, name string) (*Para, error) {
	var p Para
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO paras (kitab_id, para_number, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (para_number)
		DO UPDATE SET para_number = EXCLUDED.para_number
		RETURNING id, kitab_id, para_number, name
	`, kitabID, number, name).Scan(&p.ID, &p.KitabID, &p.ParaNumber, &p.Name)
	if err != nil {
		return nil, fmt.Errorf("upsert para %d: %w", number, err)
	}
	return &p, nil
}

func (r *repository) ListParas(ctx context.Context) ([]Para, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.kitab_id, p.para_number, p.name, COUNT(a.id)
		FROM paras p
		LEFT JOIN ayahs a ON a.para_number = p.para_number
		GROUP BY p.id
		ORDER BY p.para_number ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paras []Para
	for rows.Next() {
		var p Para
		if err := rows.Scan(&p.ID, &p.KitabID, &p.ParaNumber, &p.Name, &p.AyahCount); err != nil {
			return nil, err
		}
		paras = append(paras, p)
	}
	return paras, rows.Err()
}

func (r *repository) GetAyahsByPara(ctx context.Context, number int) ([]ParaAyah, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, surah_number, ayah_number, text_arabic
		FROM ayahs
		WHERE para_number = $1
		ORDER BY surah_number ASC, ayah_number ASC
	`, number)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ayahs []ParaAyah
	for rows.Next() {
		var a ParaAyah
		if err := rows.Scan(&a.ID, &a.SurahNumber, &a.AyahNumber, &a.TextArabic); err != nil {
			return nil, err
		}
		ayahs = append(ayahs, a)
	}
	return ayahs, rows.Err()
}
