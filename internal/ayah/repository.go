package ayah

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taiwoajasa245/quran-api/internal/database"
	"github.com/taiwoajasa245/quran-api/pkg/util"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrAlreadyExists   = errors.New("record already exists")
	ErrInvalidRelation = errors.New("referenced kitab or surah does not exist")
	ErrInternalServer  = errors.New("internal server error")
)

type AyahRepo interface {
	List(ctx context.Context, surahID *int) ([]Ayah, error)
	GetByID(ctx context.Context, id int) (*Ayah, error)
	Create(ctx context.Context, req CreateAyahRequest) (*Ayah, error)
	Update(ctx context.Context, id int, req UpdateAyahRequest) (*Ayah, error)
	Delete(ctx context.Context, id int) error

	CreateTafsir(ctx context.Context, req CreateTafsirRequest) (*Tafsir, error)
	UpdateTafsir(ctx context.Context, id int, req UpdateTafsirRequest) (*Tafsir, error)
	DeleteTafsir(ctx context.Context, id int) error

	// Bulk maintenance used by quranctl.
	UpsertSeedAyah(ctx context.Context, a SeedAyah) (int, error)
	UpsertTranslation(ctx context.Context, t Translation) (bool, error)
	AyahIDs(ctx context.Context, surahNumber int) (map[int]int, error)
	FixSurahRelations(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int, error)
	First(ctx context.Context) (*Ayah, error)
}

type repository struct {
	db *sql.DB
}

func NewAyahRepo(dbService database.Service) AyahRepo {
	return &repository{db: dbService.DB()}
}

const ayahColumns = `a.id, a.kitab_id, a.surah_id, a.surah_number, a.ayah_number, a.text_arabic,
	a.text_tajweed, a.para_number, a.para_id, a.ruku_number, a.audio_url`

func scanAyah(row interface{ Scan(...any) error }) (*Ayah, error) {
	var (
		a                                 Ayah
		surahID, paraNumber, paraID, ruku sql.NullInt64
		tajweed, audioURL                 sql.NullString
	)
	err := row.Scan(&a.ID, &a.KitabID, &surahID, &a.SurahNumber, &a.AyahNumber, &a.TextArabic,
		&tajweed, &paraNumber, &paraID, &ruku, &audioURL)
	if err != nil {
		return nil, err
	}
	a.SurahID = intPtr(surahID)
	a.ParaNumber = intPtr(paraNumber)
	a.ParaID = intPtr(paraID)
	a.RukuNumber = intPtr(ruku)
	a.TextTajweed = stringPtr(tajweed)
	a.AudioURL = stringPtr(audioURL)
	a.VerseMarker = util.ToArabicNumerals(a.AyahNumber)
	a.Translations = []Translation{}
	a.Tafsirs = []Tafsir{}
	return &a, nil
}

func (r *repository) List(ctx context.Context, surahID *int) ([]Ayah, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+ayahColumns+`
		FROM ayahs a
		WHERE ($1::int IS NULL OR a.surah_id = $1)
		ORDER BY a.surah_number ASC, a.ayah_number ASC
	`, surahID)
	if err != nil {
		return nil, fmt.Errorf("list ayahs: %w", err)
	}
	defer rows.Close()

	var ayahs []Ayah
	for rows.Next() {
		a, err := scanAyah(rows)
		if err != nil {
			return nil, err
		}
		ayahs = append(ayahs, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ayahs) == 0 {
		return ayahs, nil
	}

	if err := r.attach(ctx, ayahs, `($1::int IS NULL OR a.surah_id = $1)`, surahID); err != nil {
		return nil, err
	}
	return ayahs, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Ayah, error) {
	a, err := scanAyah(r.db.QueryRowContext(ctx, `SELECT `+ayahColumns+` FROM ayahs a WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get ayah %d: %w", id, err)
	}

	one := []Ayah{*a}
	if err := r.attach(ctx, one, `a.id = $1`, id); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// attach loads translations and tafsirs for ayahs matching filter, which is
// a condition over ayahs aliased "a" with one bind parameter.
func (r *repository) attach(ctx context.Context, ayahs []Ayah, filter string, arg any) error {
	index := make(map[int]int, len(ayahs))
	for i := range ayahs {
		index[ayahs[i].ID] = i
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.ayah_id, t.language, t.translator, t.text
		FROM translations t
		JOIN ayahs a ON a.id = t.ayah_id
		WHERE `+filter+`
		ORDER BY t.id ASC
	`, arg)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	for rows.Next() {
		var t Translation
		if err := rows.Scan(&t.ID, &t.AyahID, &t.Language, &t.Translator, &t.Text); err != nil {
			rows.Close()
			return err
		}
		if i, ok := index[t.AyahID]; ok {
			ayahs[i].Translations = append(ayahs[i].Translations, t)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT f.id, f.ayah_id, f.scholar, f.text
		FROM tafsirs f
		JOIN ayahs a ON a.id = f.ayah_id
		WHERE `+filter+`
		ORDER BY f.id ASC
	`, arg)
	if err != nil {
		return fmt.Errorf("load tafsirs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var f Tafsir
		if err := rows.Scan(&f.ID, &f.AyahID, &f.Scholar, &f.Text); err != nil {
			return err
		}
		if i, ok := index[f.AyahID]; ok {
			ayahs[i].Tafsirs = append(ayahs[i].Tafsirs, f)
		}
	}
	return rows.Err()
}

func (r *repository) Create(ctx context.Context, req CreateAyahRequest) (*Ayah, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO ayahs (kitab_id, surah_id, surah_number, ayah_number, text_arabic,
		                   text_tajweed, para_number, ruku_number, audio_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, req.KitabID, req.SurahID, req.SurahNumber, req.AyahNumber, req.TextArabic,
		req.TextTajweed, req.ParaNumber, req.RukuNumber, req.AudioURL,
	).Scan(&id)
	if err != nil {
		return nil, translateWriteError(err, "create ayah")
	}

	if req.Translation != nil {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO translations (ayah_id, language, translator, text)
			VALUES ($1, $2, $3, $4)
		`, id, DefaultLanguage, DefaultTranslator, *req.Translation); err != nil {
			return nil, fmt.Errorf("create translation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *repository) Update(ctx context.Context, id int, req UpdateAyahRequest) (*Ayah, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE ayahs SET
			surah_id     = COALESCE($2, surah_id),
			surah_number = COALESCE($3, surah_number),
			ayah_number  = COALESCE($4, ayah_number),
			text_arabic  = COALESCE($5, text_arabic),
			text_tajweed = COALESCE($6, text_tajweed),
			para_number  = COALESCE($7::int, para_number),
			para_id      = CASE WHEN COALESCE($7::int, para_number) IS DISTINCT FROM para_number
			                    THEN NULL ELSE para_id END,
			ruku_number  = COALESCE($8, ruku_number),
			audio_url    = COALESCE($9, audio_url)
		WHERE id = $1
	`, id, req.SurahID, req.SurahNumber, req.AyahNumber, req.TextArabic,
		req.TextTajweed, req.ParaNumber, req.RukuNumber, req.AudioURL)
	if err != nil {
		return nil, translateWriteError(err, "update ayah")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	if req.Translation != nil {
		res, err := tx.ExecContext(ctx, `
			UPDATE translations SET text = $2
			WHERE id = (SELECT id FROM translations WHERE ayah_id = $1 ORDER BY id LIMIT 1)
		`, id, *req.Translation)
		if err != nil {
			return nil, fmt.Errorf("update translation: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO translations (ayah_id, language, translator, text)
				VALUES ($1, $2, $3, $4)
			`, id, DefaultLanguage, DefaultTranslator, *req.Translation); err != nil {
				return nil, fmt.Errorf("create translation: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "ayahs", id)
}

func (r *repository) UpsertSeedAyah(ctx context.Context, a SeedAyah) (int, error) {
	// Existing rows keep their content; only a missing surah_id is filled in.
	var id int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO ayahs (kitab_id, surah_id, surah_number, ayah_number, text_arabic, para_number, ruku_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (surah_number, ayah_number)
		DO UPDATE SET surah_id = COALESCE(ayahs.surah_id, EXCLUDED.surah_id)
		RETURNING id
	`, a.KitabID, a.SurahID, a.SurahNumber, a.AyahNumber, a.TextArabic, a.ParaNumber, a.RukuNumber).Scan(&id)
	if err != nil {
		return 0, translateWriteError(err, fmt.Sprintf("upsert ayah %d:%d", a.SurahNumber, a.AyahNumber))
	}
	return id, nil
}

// UpsertTranslation inserts t unless the ayah already has a translation with
// the same language and translator. It reports whether a row was written.
func (r *repository) UpsertTranslation(ctx context.Context, t Translation) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO translations (ayah_id, language, translator, text)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (ayah_id, language, translator) DO NOTHING
	`, t.AyahID, t.Language, t.Translator, t.Text)
	if err != nil {
		return false, translateWriteError(err, "upsert translation")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, ErrInternalServer
	}
	return n == 1, nil
}

// AyahIDs maps ayah number to row id for one surah.
func (r *repository) AyahIDs(ctx context.Context, surahNumber int) (map[int]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ayah_number, id FROM ayahs WHERE surah_number = $1
	`, surahNumber)
	if err != nil {
		return nil, fmt.Errorf("ayah ids for surah %d: %w", surahNumber, err)
	}
	defer rows.Close()

	ids := make(map[int]int)
	for rows.Next() {
		var number, id int
		if err := rows.Scan(&number, &id); err != nil {
			return nil, err
		}
		ids[number] = id
	}
	return ids, rows.Err()
}

func (r *repository) FixSurahRelations(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE ayahs a SET surah_id = s.id
		FROM surahs s
		WHERE a.surah_number = s.surah_number AND a.surah_id IS NULL
	`)
	if err != nil {
		return 0, fmt.Errorf("fix surah relations: %w", err)
	}
	return res.RowsAffected()
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ayahs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count ayahs: %w", err)
	}
	return n, nil
}

func (r *repository) First(ctx context.Context) (*Ayah, error) {
	a, err := scanAyah(r.db.QueryRowContext(ctx, `
		SELECT `+ayahColumns+` FROM ayahs a ORDER BY a.surah_number, a.ayah_number LIMIT 1
	`))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("first ayah: %w", err)
	}
	return a, nil
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

// deleteByID is only called with table names from this package.
func deleteByID(ctx context.Context, db *sql.DB, table string, id int) error {
	res, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
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

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
