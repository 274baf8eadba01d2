package ayah

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

func (r *repository) CreateTafsir(ctx context.Context, req CreateTafsirRequest) (*Tafsir, error) {
	f := Tafsir{AyahID: req.AyahID, Scholar: req.Scholar, Text: req.Text}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO tafsirs (ayah_id, scholar, text)
		VALUES ($1, $2, $3)
		RETURNING id
	`, req.AyahID, req.Scholar, req.Text).Scan(&f.ID)
	if err != nil {
		err = translateWriteError(err, "create tafsir")
		if errors.Is(err, ErrInvalidRelation) {
			return nil, fmt.Errorf("ayah %d: %w", req.AyahID, ErrNotFound)
		}
		return nil, err
	}
	return &f, nil
}

func (r *repository) UpdateTafsir(ctx context.Context, id int, req UpdateTafsirRequest) (*Tafsir, error) {
	var f Tafsir
	err := r.db.QueryRowContext(ctx, `
		UPDATE tafsirs SET
			scholar = COALESCE($2, scholar),
			text    = COALESCE($3, text)
		WHERE id = $1
		RETURNING id, ayah_id, scholar, text
	`, id, req.Scholar, req.Text).Scan(&f.ID, &f.AyahID, &f.Scholar, &f.Text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update tafsir %d: %w", id, err)
	}
	return &f, nil
}

func (r *repository) DeleteTafsir(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "tafsirs", id)
}
