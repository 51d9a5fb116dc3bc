// Command import-flashcards loads a flashcard set from a spreadsheet (.xlsx)
// or CSV file and stores it for one user.
//
// Flags:
//
//	--file        path to the .xlsx or .csv file (required)
//	--user        owner user id, a UUID (required)
//	--title       set title (default: file name)
//	--sheet       worksheet name (.xlsx only, default: first sheet)
//	--question    question column (default: A)
//	--answer      answer column (default: B)
//	--difficulty  difficulty column, empty to skip (default: C)
//	--start-row   first data row, 1-based (default: 2)
//	--dry-run     parse the file without writing to the store
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/genius-progression/internal/app"
	"github.com/heartmarshall/genius-progression/internal/config"
	"github.com/heartmarshall/genius-progression/internal/importer"
)

func main() {
	defaults := importer.DefaultConfig()

	fileFlag := flag.String("file", "", "path to the .xlsx or .csv file")
	userFlag := flag.String("user", "", "owner user id")
	titleFlag := flag.String("title", "", "set title (default: file name)")
	sheetFlag := flag.String("sheet", "", "worksheet name (.xlsx only)")
	questionFlag := flag.String("question", defaults.QuestionColumn, "question column")
	answerFlag := flag.String("answer", defaults.AnswerColumn, "answer column")
	difficultyFlag := flag.String("difficulty", defaults.DifficultyColumn, "difficulty column, empty to skip")
	startRowFlag := flag.Int("start-row", defaults.StartRow, "first data row, 1-based")
	dryRunFlag := flag.Bool("dry-run", false, "parse the file without writing to the store")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if *fileFlag == "" {
		logger.Error("--file is required")
		os.Exit(1)
	}
	userID, err := uuid.Parse(*userFlag)
	if err != nil || userID == uuid.Nil {
		logger.Error("--user must be a UUID", slog.String("user", *userFlag))
		os.Exit(1)
	}

	res, err := importer.ImportFlashcardSet(*fileFlag, userID, importer.Config{
		Title:            *titleFlag,
		SheetName:        *sheetFlag,
		QuestionColumn:   *questionFlag,
		AnswerColumn:     *answerFlag,
		DifficultyColumn: *difficultyFlag,
		StartRow:         *startRowFlag,
	})
	if err != nil {
		logger.Error("import failed", slog.String("file", *fileFlag), slog.String("error", err.Error()))
		os.Exit(1)
	}
	for _, rowErr := range res.Errors {
		logger.Warn("row rejected", slog.Int("row", rowErr.Row), slog.String("error", rowErr.Err.Error()))
	}

	if *dryRunFlag {
		logger.Info("dry run complete",
			slog.Int("cards", len(res.Set.Cards)),
			slog.Int("rejected", len(res.Errors)),
		)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	err = store.Repos.Tx.RunInTx(ctx, func(ctx context.Context) error {
		return store.Repos.Flashcards.SaveSet(ctx, res.Set)
	})
	if err != nil {
		logger.Error("save set", slog.String("error", err.Error()))
		store.Close()
		os.Exit(1)
	}

	logger.Info("flashcard set imported",
		slog.String("set_id", res.Set.ID),
		slog.String("title", res.Set.Title),
		slog.Int("cards", len(res.Set.Cards)),
		slog.Int("rejected", len(res.Errors)),
		slog.Int("blank_rows", res.Skipped),
	)
}
