// Package importer builds flashcard sets from spreadsheet (.xlsx) and CSV files.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/heartmarshall/genius-progression/internal/domain"
)

const (
	maxQuestionLen = 1000
	maxAnswerLen   = 1000
)

// ErrNoCards is returned when a file contains no importable row.
var ErrNoCards = errors.New("no flashcards found")

// Config describes where the card fields live in the file.
type Config struct {
	Title            string // set title; defaults to the file name without extension
	SheetName        string // .xlsx only; defaults to the first sheet
	QuestionColumn   string
	AnswerColumn     string
	DifficultyColumn string // optional; blank cells mean medium
	StartRow         int    // 1-based; rows above it are headers
}

// DefaultConfig reads question, answer and difficulty from columns A, B and C
// and skips one header row.
func DefaultConfig() Config {
	return Config{
		QuestionColumn:   "A",
		AnswerColumn:     "B",
		DifficultyColumn: "C",
		StartRow:         2,
	}
}

// RowError is a rejected row.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// Result is an imported set plus the rows that could not be used.
type Result struct {
	Set       *domain.FlashcardSet
	Processed int
	Skipped   int // blank rows
	Errors    []RowError
}

// ImportFlashcardSet reads the file at path (.xlsx or .csv) into a new set
// owned by userID. Cards get fresh ids and zero mastery. A row with a missing
// question or answer, or an unknown difficulty, is reported in Result.Errors
// and left out of the set.
func ImportFlashcardSet(path string, userID uuid.UUID, cfg Config) (*Result, error) {
	cols, err := cfg.columns()
	if err != nil {
		return nil, err
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx", ".xlsm":
		rows, err = readExcel(path, cfg.SheetName)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(cfg.Title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	now := time.Now().UTC()
	res := &Result{
		Set: &domain.FlashcardSet{
			ID:        domain.NewPublicID(),
			UserID:    userID,
			Title:     title,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	startRow := max(cfg.StartRow, 1)
	for i, row := range rows {
		rowNum := i + 1
		if rowNum < startRow {
			continue
		}
		if isBlank(row) {
			res.Skipped++
			continue
		}

		res.Processed++
		card, err := parseRow(row, cols)
		if err != nil {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Err: err})
			continue
		}
		res.Set.Cards = append(res.Set.Cards, card)
	}

	if len(res.Set.Cards) == 0 {
		return res, fmt.Errorf("%s: %w", path, ErrNoCards)
	}

	return res, nil
}

// ---------------------------------------------------------------------------
// Readers
// ---------------------------------------------------------------------------

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("excel file has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ---------------------------------------------------------------------------
// Rows
// ---------------------------------------------------------------------------

type columns struct {
	question   int
	answer     int
	difficulty int // -1 when not configured
}

func (c Config) columns() (columns, error) {
	q, err := columnIndex(c.QuestionColumn)
	if err != nil {
		return columns{}, fmt.Errorf("question column: %w", err)
	}
	a, err := columnIndex(c.AnswerColumn)
	if err != nil {
		return columns{}, fmt.Errorf("answer column: %w", err)
	}
	d := -1
	if c.DifficultyColumn != "" {
		if d, err = columnIndex(c.DifficultyColumn); err != nil {
			return columns{}, fmt.Errorf("difficulty column: %w", err)
		}
	}
	return columns{question: q, answer: a, difficulty: d}, nil
}

// columnIndex converts a column name ("A", "AB") to a 0-based index.
func columnIndex(name string) (int, error) {
	n, err := excelize.ColumnNameToNumber(strings.ToUpper(strings.TrimSpace(name)))
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

func parseRow(row []string, cols columns) (domain.Flashcard, error) {
	question := cell(row, cols.question)
	answer := cell(row, cols.answer)

	switch {
	case question == "":
		return domain.Flashcard{}, fmt.Errorf("question is required")
	case answer == "":
		return domain.Flashcard{}, fmt.Errorf("answer is required")
	case len(question) > maxQuestionLen:
		return domain.Flashcard{}, fmt.Errorf("question exceeds %d characters", maxQuestionLen)
	case len(answer) > maxAnswerLen:
		return domain.Flashcard{}, fmt.Errorf("answer exceeds %d characters", maxAnswerLen)
	}

	difficulty := domain.DifficultyMedium
	if cols.difficulty >= 0 {
		if raw := domain.NormalizeKey(cell(row, cols.difficulty)); raw != "" {
			difficulty = domain.Difficulty(raw)
			if !difficulty.IsValid() {
				return domain.Flashcard{}, fmt.Errorf("unknown difficulty %q", raw)
			}
		}
	}

	return domain.Flashcard{
		ID:         domain.NewPublicID(),
		Question:   question,
		Answer:     answer,
		Difficulty: difficulty,
	}, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
