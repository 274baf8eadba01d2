package playback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taiwoajasa245/quran-api/internal/database"
)

var ErrNotFound = errors.New("record not found")

// ReciterSource is where a reciter's clips live.
type ReciterSource struct {
	ID      int
	Name    string
	Path    string
	BaseURL string
}

type Repository interface {
	LoadChapters(ctx context.Context) ([]Chapter, error)
	GetReciter(ctx context.Context, id int) (*ReciterSource, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(dbService database.Service) Repository {
	return &repository{db: dbService.DB()}
}

func (r *repository) LoadChapters(ctx context.Context) ([]Chapter, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT surah_number, ayah_number, text_arabic, COALESCE(audio_url, '')
		FROM ayahs
		ORDER BY surah_number ASC, ayah_number ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("load chapters: %w", err)
	}
	defer rows.Close()

	var chapters []Chapter
	for rows.Next() {
		var (
			number int
			v      Verse
		)
		if err := rows.Scan(&number, &v.Number, &v.Text, &v.AudioURL); err != nil {
			return nil, err
		}
		if n := len(chapters); n == 0 || chapters[n-1].Number != number {
			chapters = append(chapters, Chapter{Number: number})
		}
		last := &chapters[len(chapters)-1]
		last.Verses = append(last.Verses, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range chapters {
		chapters[i].VerseCount = len(chapters[i].Verses)
	}
	return chapters, nil
}

func (r *repository) GetReciter(ctx context.Context, id int) (*ReciterSource, error) {
	var rc ReciterSource
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
