package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"

	"bookshelf-backend/internal/config"
	"bookshelf-backend/internal/domains/catalog"
	catalogRepo "bookshelf-backend/internal/domains/catalog/repository"
	catalogService "bookshelf-backend/internal/domains/catalog/service"
	"bookshelf-backend/internal/infrastructure/database"
	"bookshelf-backend/internal/infrastructure/documentstore"
	"bookshelf-backend/pkg/logger"
)

type seedBook struct {
	Title    string
	Year     int
	Author   string
	ImageURL string
}

func cover(isbn string) string {
	return fmt.Sprintf("https://covers.openlibrary.org/b/isbn/%s-L.jpg", isbn)
}

var fallbackBooks = []seedBook{
	{"Clean Code", 2008, "Robert C. Martin", cover("9780132350884")},
	{"The Pragmatic Programmer", 1999, "Andrew Hunt", cover("9780201616224")},
	{"Design Patterns: Elements of Reusable Object-Oriented Software", 1994, "Erich Gamma", cover("9780201633610")},
	{"Refactoring: Improving the Design of Existing Code (2nd Edition)", 2018, "Martin Fowler", cover("9780134757599")},
	{"Introduction to Algorithms (3rd Edition)", 2009, "Thomas H. Cormen", cover("9780262033848")},
	{"Structure and Interpretation of Computer Programs", 1996, "Harold Abelson", cover("9780262510875")},
	{"Code Complete (2nd Edition)", 2004, "Steve McConnell", cover("9780735619678")},
	{"Patterns of Enterprise Application Architecture", 2002, "Martin Fowler", cover("9780321127426")},
	{"Working Effectively with Legacy Code", 2004, "Michael Feathers", cover("9780131177055")},
	{"Clean Architecture", 2017, "Robert C. Martin", cover("9780134494166")},
}

func main() {
	reset := flag.Bool("reset", false, "drop and recreate the catalog schema")
	seed := flag.Bool("seed", false, "upsert seed data (CSV or built-in fallback)")
	wipeReviews := flag.Bool("wipe-reviews", false, "delete ALL reviews from the document store")
	csvPath := flag.String("csv", "data/books.csv", "optional seed CSV (title,author,year,image_url)")
	flag.Parse()

	if !*reset && !*seed && !*wipeReviews {
		flag.Usage()
		return
	}

	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		fatal("failed to load config", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if *reset || *seed {
		db := database.NewPostgresDB(&cfg.Postgres)
		if err := db.Connect(ctx); err != nil {
			fatal("failed to connect to postgres", err)
		}
		defer db.Close()

		if *reset {
			if err := database.ResetSchema(ctx, db.Pool); err != nil {
				fatal("failed to reset schema", err)
			}
			fmt.Println("catalog schema reset")
		}

		if *seed {
			if err := database.EnsureSchema(ctx, db.Pool); err != nil {
				fatal("failed to ensure schema", err)
			}
			if err := runSeed(ctx, db, *csvPath); err != nil {
				fatal("seeding failed", err)
			}
		}
	}

	if *wipeReviews {
		store := documentstore.NewMongoStore(&cfg.Mongo)
		if err := store.Connect(ctx); err != nil {
			fatal("failed to connect to mongo", err)
		}
		defer store.Close(ctx)

		res, err := store.Reviews().DeleteMany(ctx, bson.M{})
		if err != nil {
			fatal("failed to wipe reviews", err)
		}
		fmt.Printf("deleted %d reviews from %s.%s\n",
			res.DeletedCount, cfg.Mongo.Database, cfg.Mongo.Collection)
	}
}

// runSeed upserts each seed record through the regular catalog service, so
// seeding behaves exactly like repeated POST /api/books calls.
func runSeed(ctx context.Context, db *database.PostgresDB, csvPath string) error {
	books, err := readSeedCSV(csvPath)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		books = fallbackBooks
	}

	svc := catalogService.NewCatalogService(catalogRepo.NewPostgresRepository(db.Pool, nil))
	for _, b := range books {
		year := b.Year
		req := catalog.UpsertBookRequest{
			Title:           b.Title,
			Author:          b.Author,
			PublicationYear: &year,
			ImageURL:        b.ImageURL,
		}
		if _, _, err := svc.Upsert(ctx, req); err != nil {
			return fmt.Errorf("upsert %q: %w", b.Title, err)
		}
	}

	var total int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return err
	}
	fmt.Printf("seeded/updated %d titles, %d total in catalog\n", len(books), total)
	return nil
}

// readSeedCSV returns no rows (and no error) when the file does not exist.
// Rows missing a title, author or positive year are skipped, as are malformed
// year values.
func readSeedCSV(path string) ([]seedBook, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	col := map[string]int{}
	for i, name := range records[0] {
		col[name] = i
	}

	var books []seedBook
	for _, rec := range records[1:] {
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}
		year, _ := strconv.Atoi(get("year"))
		b := seedBook{
			Title:    get("title"),
			Author:   get("author"),
			Year:     year,
			ImageURL: get("image_url"),
		}
		if b.Title == "" || b.Author == "" || b.Year <= 0 {
			continue
		}
		books = append(books, b)
	}
	return books, nil
}

func fatal(msg string, err error) {
	logger.Error(msg, err)
	os.Exit(1)
}
