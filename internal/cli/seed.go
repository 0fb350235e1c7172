package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/readhub/library/internal/auth"
	"github.com/readhub/library/internal/config"
	"github.com/readhub/library/internal/database"
	"github.com/readhub/library/internal/database/books"
	"github.com/readhub/library/internal/database/favorites"
	"github.com/readhub/library/internal/database/loans"
	"github.com/readhub/library/internal/database/tickets"
	"github.com/readhub/library/internal/database/users"
	"github.com/readhub/library/internal/entities"
)

// SeedCommand fills a SQLite database with sample members, public domain
// books, loans, favorites and tickets.
type SeedCommand struct {
	DatabasePath string
	Reset        bool
	Verbose      bool
	DryRun       bool
	Bcrypt       bool

	// now anchors the generated loan dates
	now func() time.Time
}

// SeedSummary counts what a seed run created.
type SeedSummary struct {
	Users, Books, Loans, Favorites, Tickets int
}

// NewSeedCommand creates a new SeedCommand
func NewSeedCommand() *SeedCommand {
	return &SeedCommand{now: time.Now}
}

// ParseFlags parses command line flags
func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the SQLite database to fill")
	fs.BoolVar(&cmd.Reset, "reset", false, "Delete the database file before seeding")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every created record")
	fs.BoolVar(&cmd.Bcrypt, "bcrypt", false, "Store bcrypt hashes instead of plain passwords")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be created without making changes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create sample library data for local development.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

type sampleBook struct {
	Title, Author, Description string
}

var sampleBooks = []sampleBook{
	{"Dom Casmurro", "Machado de Assis", "Bentinho looks back on his life and his jealousy of Capitu."},
	{"Memórias Póstumas de Brás Cubas", "Machado de Assis", "A dead narrator recounts his unremarkable life."},
	{"Quincas Borba", "Machado de Assis", "Rubião inherits a fortune and a philosophy."},
	{"Iracema", "José de Alencar", "The legend of Ceará."},
	{"O Guarani", "José de Alencar", "Peri and Ceci in colonial Rio de Janeiro."},
	{"O Cortiço", "Aluísio Azevedo", "Life in a Rio tenement at the end of the empire."},
	{"Triste Fim de Policarpo Quaresma", "Lima Barreto", "A patriot undone by his own idealism."},
}

var sampleUsers = []entities.User{
	{Name: "Ana Souza", Email: "ana@example.com", Password: "ana123"},
	{Name: "Bruno Lima", Email: "bruno@example.com", Password: "bruno123"},
	{Name: "Carla Dias", Email: "carla@example.com", Password: "carla123"},
}

func (cmd *SeedCommand) Run() error {
	fmt.Println("Library Seed")
	fmt.Println("============")

	if cmd.DryRun {
		fmt.Printf("DRY RUN MODE - would create %d users and %d books in %s\n",
			len(sampleUsers), len(sampleBooks), cmd.DatabasePath)
		return nil
	}

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	if cmd.Reset {
		if err := os.Remove(absDBPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	summary, err := cmd.seed(context.Background(), db)
	if err != nil {
		return err
	}

	fmt.Printf("\nSeeded %s: %d users, %d books, %d loans, %d favorites, %d tickets\n",
		absDBPath, summary.Users, summary.Books, summary.Loans, summary.Favorites, summary.Tickets)
	return nil
}

func (cmd *SeedCommand) seed(ctx context.Context, db *database.Database) (SeedSummary, error) {
	var summary SeedSummary
	userRepo := users.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	loanRepo := loans.NewRepository(db.DB)
	favoriteRepo := favorites.NewRepository(db.DB)
	ticketRepo := tickets.NewRepository(db.DB)

	storage := config.PasswordStoragePlain
	if cmd.Bcrypt {
		storage = config.PasswordStorageBcrypt
	}
	hasher := auth.NewPasswordHasher(config.Auth{PasswordStorage: storage})

	members := make([]entities.User, 0, len(sampleUsers))
	for _, u := range sampleUsers {
		user := u
		stored, err := hasher.Hash(u.Password)
		if err != nil {
			return summary, fmt.Errorf("hash password for %s: %w", u.Email, err)
		}
		user.Password = stored
		if err := userRepo.CreateUser(ctx, &user); err != nil {
			return summary, fmt.Errorf("create user %s: %w", u.Email, err)
		}
		members = append(members, user)
		summary.Users++
		cmd.logf("user  #%d %s", user.ID, user.Email)
	}

	catalogue := make([]entities.Book, 0, len(sampleBooks))
	for _, b := range sampleBooks {
		description := b.Description
		book := entities.Book{Title: b.Title, Author: b.Author, Description: &description}
		if err := bookRepo.CreateBook(ctx, &book); err != nil {
			return summary, fmt.Errorf("create book %s: %w", b.Title, err)
		}
		catalogue = append(catalogue, book)
		summary.Books++
		cmd.logf("book  #%d %s", book.ID, book.Title)
	}

	today := time.Date(cmd.now().Year(), cmd.now().Month(), cmd.now().Day(), 0, 0, 0, 0, time.UTC)
	for i, book := range catalogue {
		member := members[i%len(members)]
		loanDate := today.AddDate(0, 0, -7*(i+1))
		loan, err := loanRepo.CreateLoan(ctx, member.ID, book.ID, loanDate, loanDate.AddDate(0, 0, 14))
		if err != nil {
			return summary, fmt.Errorf("create loan: %w", err)
		}
		summary.Loans++
		cmd.logf("loan  #%d %s -> %s", loan.ID, book.Title, member.Name)

		// every other loan has come back
		if i%2 == 1 {
			if _, err := loanRepo.ReturnLoan(ctx, loan.ID, loanDate.AddDate(0, 0, 10)); err != nil {
				return summary, fmt.Errorf("return loan: %w", err)
			}
		}

		if _, created, err := favoriteRepo.AddFavorite(ctx, member.ID, book.ID); err != nil {
			return summary, fmt.Errorf("add favorite: %w", err)
		} else if created {
			summary.Favorites++
		}
	}

	ticket := &entities.SupportTicket{
		UserID:  &members[0].ID,
		Name:    members[0].Name,
		Email:   members[0].Email,
		Subject: "Renewal",
		Message: "Can I keep Dom Casmurro for another week?",
	}
	if err := ticketRepo.CreateTicket(ctx, ticket); err != nil {
		return summary, fmt.Errorf("create ticket: %w", err)
	}
	anonymous := &entities.SupportTicket{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Subject: "Opening hours",
		Message: "Are you open on Sundays?",
	}
	if err := ticketRepo.CreateTicket(ctx, anonymous); err != nil {
		return summary, fmt.Errorf("create ticket: %w", err)
	}
	summary.Tickets = 2

	return summary, nil
}

func (cmd *SeedCommand) logf(format string, args ...any) {
	if cmd.Verbose {
		fmt.Printf(format+"\n", args...)
	}
}
