package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/model"
)

// MovieRepo provides read access to the movie catalog plus the admin
// create path.  Genres are stored as a comma-separated list.
type MovieRepo struct {
    db *sql.DB
}

// NewMovieRepo returns a MovieRepo bound to the provided database.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

const movieColumns = `id, title, description, genres, duration_min, language,
       release_date, poster_url, rating, certificate, is_active, created_at, updated_at`

func scanMovie(row interface{ Scan(...interface{}) error }) (*model.Movie, error) {
    var m model.Movie
    var genres string
    var release sql.NullTime
    var poster sql.NullString
    err := row.Scan(
        &m.ID, &m.Title, &m.Description, &genres, &m.DurationMin, &m.Language,
        &release, &poster, &m.Rating, &m.Certificate, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    if genres != "" {
        m.Genres = strings.Split(genres, ",")
    }
    if release.Valid {
        t := release.Time
        m.ReleaseDate = &t
    }
    if poster.Valid {
        m.PosterURL = poster.String
    }
    return &m, nil
}

// GetByID returns a movie or ErrMovieNotFound.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
    q := `SELECT ` + movieColumns + ` FROM movies WHERE id = ?`
    m, err := scanMovie(r.db.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrMovieNotFound
        }
        return nil, err
    }
    return m, nil
}

// ListActive returns all active movies, newest first.
func (r *MovieRepo) ListActive(ctx context.Context) ([]model.Movie, error) {
    q := `SELECT ` + movieColumns + ` FROM movies WHERE is_active = 1 ORDER BY created_at DESC`
    return r.list(ctx, q)
}

// ListByIDs returns the active movies with the given IDs.  An empty
// ID list yields an empty result.
func (r *MovieRepo) ListByIDs(ctx context.Context, ids []uint64) ([]model.Movie, error) {
    if len(ids) == 0 {
        return []model.Movie{}, nil
    }
    placeholders := make([]string, 0, len(ids))
    args := make([]interface{}, 0, len(ids))
    for _, id := range ids {
        placeholders = append(placeholders, "?")
        args = append(args, id)
    }
    q := `SELECT ` + movieColumns + ` FROM movies
          WHERE is_active = 1 AND id IN (` + strings.Join(placeholders, ",") + `)
          ORDER BY title`
    return r.list(ctx, q, args...)
}

// Search returns active movies whose title, description or genres
// match the given term (case-insensitive substring).
func (r *MovieRepo) Search(ctx context.Context, term string) ([]model.Movie, error) {
    q := `SELECT ` + movieColumns + ` FROM movies
          WHERE is_active = 1
            AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(genres) LIKE ?)
          ORDER BY title`
    pattern := "%" + strings.ToLower(term) + "%"
    return r.list(ctx, q, pattern, pattern, pattern)
}

// Create inserts a movie and populates its generated ID.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
    const q = `INSERT INTO movies
               (title, description, genres, duration_min, language, release_date,
                poster_url, rating, certificate, is_active)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    var release interface{}
    if m.ReleaseDate != nil {
        release = m.ReleaseDate.UTC().Format("2006-01-02")
    }
    res, err := r.db.ExecContext(ctx, q,
        m.Title, m.Description, strings.Join(m.Genres, ","), m.DurationMin, m.Language,
        release, m.PosterURL, m.Rating, m.Certificate, m.IsActive,
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    m.ID = uint64(id)
    return nil
}

func (r *MovieRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Movie, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    movies := make([]model.Movie, 0)
    for rows.Next() {
        m, err := scanMovie(rows)
        if err != nil {
            return nil, err
        }
        movies = append(movies, *m)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return movies, nil
}
