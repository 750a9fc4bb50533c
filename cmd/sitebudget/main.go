package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"

	"sitebudget/internal/cli"
	"sitebudget/internal/db"
	"sitebudget/internal/draft"
	"sitebudget/internal/remote"
	"sitebudget/internal/repository"
	"sitebudget/internal/service"
	"sitebudget/internal/template"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.sitebudget/sitebudget.db
	dbPath := os.Getenv("SITEBUDGET_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".sitebudget", "sitebudget.db")
	}

	// Determine template directory
	templateDir := os.Getenv("SITEBUDGET_TEMPLATES")
	if templateDir == "" {
		// Check for ./templates in current directory first (development)
		if stat, err := os.Stat("./templates"); err == nil && stat.IsDir() {
			templateDir = "./templates"
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("finding home directory: %w", err)
			}
			templateDir = filepath.Join(home, ".sitebudget", "templates")
		}
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Call logging is opt-in; the observers stay quiet otherwise.
	var useCaseObserver service.UseCaseObserver = service.NoopUseCaseObserver{}
	var remoteObserver remote.Observer = remote.NoopObserver{}
	if os.Getenv("SITEBUDGET_LOG") != "" {
		useCaseObserver = service.NewLogUseCaseObserver(os.Stderr)
		remoteObserver = remote.NewLogObserver(os.Stderr)
	}

	// The remote document store is optional; without an endpoint the app
	// runs fully local (no name pre-check, no draft mirror, no remote
	// submission write).
	var store remote.Store
	if endpoint := os.Getenv("SITEBUDGET_REMOTE"); endpoint != "" {
		store = remote.NewHTTPStore(endpoint, 10*time.Second, remoteObserver)
	}

	// Wire repositories and the unit of work
	snapshots := repository.NewSQLiteSnapshotStore(database)
	projectRepo := repository.NewSQLiteSubmittedProjectRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	reconciler := draft.NewReconciler(snapshots, store)
	catalog := template.NewCatalog(templateDir)

	app := &cli.App{
		Templates: service.NewTemplateService(catalog, store, useCaseObserver),
		Drafts:    service.NewDraftService(reconciler, useCaseObserver),
		Submit:    service.NewSubmitService(uow, store, reconciler, useCaseObserver),
		Projects:  service.NewProjectService(projectRepo, useCaseObserver),
	}

	if store != nil {
		app.Names = remote.NewNameChecker(store, "projects", remote.DefaultDebounce)
	}

	// Detect interactive terminal for confirmation prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
