package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"bookshelf-backend/internal/domains/catalog"
	"bookshelf-backend/internal/infrastructure/database"
	"bookshelf-backend/internal/shared/apperr"
	"bookshelf-backend/pkg/cache"
	"bookshelf-backend/pkg/logger"
)

const (
	listCachePrefix = "catalog:books:"
	listCacheTTL    = 60 * time.Second

	uniqueViolationCode = "23505"
)

// bookSelect aggregates linked author names into an array ordered by link
// creation, so repeated upserts append names instead of reordering them.
const bookSelect = `
	SELECT b.book_id,
	       b.title,
	       b.publication_year,
	       COALESCE(b.image_url, $1) AS image_url,
	       COALESCE(
	           ARRAY_AGG(a.name ORDER BY ba.created_at, ba.author_id)
	               FILTER (WHERE a.name IS NOT NULL),
	           '{}'
	       ) AS authors
	FROM books b
	LEFT JOIN book_author ba ON ba.book_id = b.book_id
	LEFT JOIN authors a ON a.author_id = ba.author_id`

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates the relational catalog repository. cache may
// be nil; unfiltered list results are then never cached.
func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache) catalog.Repository {
	return &postgresRepository{pool: pool, cache: c}
}

func (r *postgresRepository) List(ctx context.Context, query string, limit int) ([]catalog.Book, error) {
	useCache := query == "" && r.cache != nil
	cacheKey := fmt.Sprintf("%s%d", listCachePrefix, limit)

	if useCache {
		var cached []catalog.Book
		found, err := r.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			logger.Warn("book list cache read failed", err)
		} else if found {
			return cached, nil
		}
	}

	// A search term matches the title or any linked author. Matching via
	// EXISTS keeps the outer aggregate complete, so an author-matched book
	// still lists all of its authors.
	sql := bookSelect + `
	WHERE $2 = ''
	   OR b.title ILIKE '%' || $2 || '%'
	   OR EXISTS (
	          SELECT 1
	          FROM book_author l
	          JOIN authors la ON la.author_id = l.author_id
	          WHERE l.book_id = b.book_id
	            AND la.name ILIKE '%' || $2 || '%'
	      )
	GROUP BY b.book_id
	ORDER BY LOWER(b.title)`

	args := []interface{}{catalog.DefaultCoverURL, query}
	if limit >= 0 {
		sql += " LIMIT $3"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperr.Unavailable("catalog store unavailable", err)
	}
	defer rows.Close()

	books := make([]catalog.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, apperr.Unavailable("catalog store unavailable", err)
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailable("catalog store unavailable", err)
	}

	if useCache {
		if err := r.cache.Set(ctx, cacheKey, books, listCacheTTL); err != nil {
			logger.Warn("book list cache write failed", err)
		}
	}

	return books, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, bookID int64) (*catalog.Book, error) {
	sql := bookSelect + `
	WHERE b.book_id = $2
	GROUP BY b.book_id`

	row := r.pool.QueryRow(ctx, sql, catalog.DefaultCoverURL, bookID)
	book, err := scanBook(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("book not found")
	}
	if err != nil {
		return nil, apperr.Unavailable("catalog store unavailable", err)
	}
	return book, nil
}

func (r *postgresRepository) FindIDByTitle(ctx context.Context, title string) (int64, bool, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`SELECT book_id FROM books WHERE LOWER(title) = LOWER($1)`,
		title,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, apperr.Unavailable("catalog store unavailable", err)
	}
	return id, true, nil
}

func (r *postgresRepository) Exists(ctx context.Context, bookID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM books WHERE book_id = $1)`,
		bookID,
	).Scan(&exists)
	if err != nil {
		return false, apperr.Unavailable("catalog store unavailable", err)
	}
	return exists, nil
}

func (r *postgresRepository) EnsureAuthor(ctx context.Context, name string) (int64, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO authors (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
		name,
	)
	if err != nil {
		return 0, apperr.Unavailable("catalog store unavailable", err)
	}

	var id int64
	err = r.pool.QueryRow(ctx,
		`SELECT author_id FROM authors WHERE name = $1`,
		name,
	).Scan(&id)
	if err != nil {
		return 0, apperr.Unavailable("catalog store unavailable", err)
	}
	return id, nil
}

func (r *postgresRepository) InsertBook(ctx context.Context, title string, year *int, imageURL *string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO books (title, publication_year, image_url)
		 VALUES ($1, $2, $3)
		 RETURNING book_id`,
		title, year, imageURL,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode &&
			(pgErr.ConstraintName == "" || pgErr.ConstraintName == database.UniqueTitleIndex) {
			return 0, apperr.Conflict("book title already exists", err)
		}
		return 0, apperr.Unavailable("catalog store unavailable", err)
	}

	r.invalidateLists(ctx)
	return id, nil
}

func (r *postgresRepository) UpdateBook(ctx context.Context, bookID int64, year *int, imageURL *string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE books
		 SET publication_year = COALESCE($2, publication_year),
		     image_url = COALESCE($3, image_url)
		 WHERE book_id = $1`,
		bookID, year, imageURL,
	)
	if err != nil {
		return apperr.Unavailable("catalog store unavailable", err)
	}

	r.invalidateLists(ctx)
	return nil
}

func (r *postgresRepository) EnsureLink(ctx context.Context, bookID, authorID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO book_author (book_id, author_id)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		bookID, authorID,
	)
	if err != nil {
		return apperr.Unavailable("catalog store unavailable", err)
	}

	r.invalidateLists(ctx)
	return nil
}

func (r *postgresRepository) invalidateLists(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.DeletePattern(ctx, listCachePrefix+"*"); err != nil {
		logger.Warn("book list cache invalidation failed", err)
	}
}

func scanBook(row pgx.Row) (*catalog.Book, error) {
	var book catalog.Book
	var names []string
	if err := row.Scan(
		&book.BookID,
		&book.Title,
		&book.PublicationYear,
		&book.ImageURL,
		pq.Array(&names),
	); err != nil {
		return nil, err
	}
	book.Authors = strings.Join(names, ", ")
	return &book, nil
}
