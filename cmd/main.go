package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gookit/color"
	"github.com/joho/godotenv"

	"golibrary/config"
	"golibrary/internal/domain"
	apperror "golibrary/internal/errors"
	"golibrary/internal/library"
	"golibrary/internal/pkg/cache"
	"golibrary/internal/pkg/database"
	"golibrary/internal/pkg/logger"
	"golibrary/internal/repository/historyrepo"
	"golibrary/internal/service/lendingservice"
	"golibrary/internal/view"
)

func main() {
	// 0. Load .env when present; the process environment still wins.
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, using the process environment only")
	}

	// 1. Configuration and logging
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	appLog := logger.NewLogger(cfg.LogLevel)
	defer logger.Sync(appLog)

	if err := run(context.Background(), cfg, appLog, os.Stdout); err != nil {
		appLog.Fatal("library demo failed", err)
	}
}

// run wires the history backend, the library and the lending service, then
// walks through a short session printing every outcome to out.
//
// Wiring order: history store -> Library aggregate -> lending service.
// Failures of individual steps are printed with their category and do not
// stop the session; only a store that cannot be opened aborts it.
func run(ctx context.Context, cfg *config.Config, appLog logger.Logger, out io.Writer) error {
	// 2. Infrastructure: the configured history store
	history, closeHistory, err := openHistory(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeHistory(); err != nil {
			appLog.Error("failed to close history store", err)
		}
	}()
	appLog.Info("history store ready", map[string]interface{}{"backend": cfg.HistoryBackend})

	// 3. Dependency injection: store -> aggregate -> service
	lib := library.New(history,
		library.WithBorrowingPolicy(domain.NewBorrowingPolicy(cfg.BorrowingLimit)),
		library.WithOverdueFine(cfg.OverdueFine),
		library.WithLogger(logger.Named(appLog, "library")),
	)
	svc := lendingservice.NewService(lib, cfg.LoanPeriodDays, logger.Named(appLog, "lending"))

	p := printer{out: out}

	book, err := domain.NewBook("To Kill a Mockingbird", "Harper Lee", 1960, "9780061120084")
	if err != nil {
		return err
	}
	book2, err := domain.NewBook("1984", "George Orwell", 1949, "9780451524935")
	if err != nil {
		return err
	}
	user, err := domain.NewUser("Mohamed", "mohamed@example.com")
	if err != nil {
		return err
	}
	user2, err := domain.NewUser("Baraka", "baraka@example.com")
	if err != nil {
		return err
	}

	// 4. Members and catalog
	p.result(fmt.Sprintf("registered %s", user.Name), lib.RegisterUser(user))
	p.result(fmt.Sprintf("registered %s", user2.Name), lib.RegisterUser(user2))
	view.RenderUsers(out, lib.GetAllUsers())

	p.result(fmt.Sprintf("added %s", book.Title), lib.AddBook(book))
	p.result(fmt.Sprintf("added %s", book2.Title), lib.AddBook(book2))

	// 5. Lending; the last call is refused because the book is already out
	p.result(svc.LendBook(book.ISBN(), user.ID(), 3))
	p.result(svc.LendBook(book2.ISBN(), user.ID(), 3))
	p.result(svc.LendBook(book.ISBN(), user2.ID(), 3))
	view.RenderLoans(out, lib.ListBorrowingRecord(), lib.Now())

	// 6. Returns write to the history store
	p.result(svc.ReturnBook(ctx, book.ISBN(), user.ID()))
	p.result(svc.ReturnBook(ctx, book2.ISBN(), user.ID()))

	view.RenderBooks(out, lib.GetAllBooks())
	view.RenderBooks(out, lib.SearchBook("mockingbird"))
	if b, ok := lib.GetBook(book.ISBN()); ok {
		p.info(fmt.Sprint(view.DisplayBook(&b)))
	}

	entries, err := svc.History(ctx, user.ID())
	p.result("loaded history", err)
	view.RenderHistory(out, entries)
	view.RenderFines(out, lib.ListOverdueFines())

	// 7. Cleanup and final counts
	p.result(fmt.Sprintf("removed %s", user2.Name), lib.RemoveUser(user2.ID()))
	p.result(fmt.Sprintf("removed %s", book2.Title), lib.RemoveBook(book2.ISBN()))

	view.RenderSummary(out, lib.StatusSummary())
	return nil
}

// openHistory builds the configured history store and its release function.
// HISTORY_BACKEND selects it:
//   - badger: embedded store under HISTORY_BADGER_DIR
//   - redis: list HISTORY_REDIS_KEY on REDIS_ADDR
//   - postgres: loan_history table, created by cmd/migrate
//   - file (default): JSON array at HISTORY_FILE
func openHistory(ctx context.Context, cfg *config.Config) (domain.HistoryRepository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.HistoryBackend {
	case config.BackendBadger:
		repo, err := historyrepo.OpenBadgerRepository(cfg.HistoryBadgerDir)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case config.BackendRedis:
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return historyrepo.NewRedisRepository(rdb, cfg.HistoryRedisKey, cfg.DBTimeout()), rdb.Close, nil
	case config.BackendPostgres:
		db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, cfg.DBTimeout())
		if err != nil {
			return nil, nil, err
		}
		return historyrepo.NewPostgresRepository(db, cfg.DBTimeout()), db.Close, nil
	default:
		return historyrepo.NewFileRepository(cfg.HistoryFile), noop, nil
	}
}

type printer struct {
	out io.Writer
}

// result prints msg on success and the categorized error otherwise.
func (p printer) result(msg string, err error) {
	if err != nil {
		p.failure(err)
		return
	}
	color.Fprintln(p.out, color.Green.Render(msg))
}

func (p printer) info(msg string) {
	color.Fprintln(p.out, color.Cyan.Render(msg))
}

func (p printer) failure(err error) {
	category, message := apperror.Describe(err)
	color.Fprintln(p.out, color.Red.Sprintf("[%s] %s", category, message))
}
