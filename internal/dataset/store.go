// Package dataset is the disk-access layer for the catalog dataset and every
// derived artifact. All tables are CSV files with a header row; every table
// handed to callers outside the pipeline is sanitized first, because the
// JSON boundary cannot represent missing or infinite values.
package dataset

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/animesense/animesense-server/internal/domain"
	apperrors "github.com/animesense/animesense-server/internal/errors"
)

// RecordTable is a sanitized record table plus provenance. HasEmotion
// reports whether the loaded source carried the emotion column; the
// sentiment-only fallback table does not, and emotion queries over it
// return empty rather than fabricated labels.
type RecordTable struct {
	Records    []*domain.Record
	HasEmotion bool
	Source     string
}

// Table is a generically-decoded CSV artifact with dynamic columns, used
// for the trend cross-tabulations whose label columns depend on the data.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// Store reads and writes dataset artifacts under a single data directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates a store rooted at dir.
func New(dir string, logger *slog.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the absolute path of an artifact file.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// LoadRecords returns the most recently derived record table, preferring
// the emotion-enriched variant and falling back to the sentiment-only one.
// The result is always sanitized. Only when neither table exists does it
// fail, with a no-data error.
func (s *Store) LoadRecords() (*RecordTable, error) {
	if records, err := s.readRecords(EmotionFile); err == nil {
		for _, r := range records {
			SanitizeRecord(r)
		}
		return &RecordTable{Records: records, HasEmotion: true, Source: EmotionFile}, nil
	} else if !os.IsNotExist(err) {
		s.logger.Warn("emotion table unreadable, trying sentiment table", "error", err)
	}

	records, err := s.readRecords(SentimentFile)
	if err != nil {
		return nil, apperrors.NoData("no data available").WithCause(err)
	}
	for _, r := range records {
		SanitizeRecord(r)
		// The sentiment-only table has no emotion column; keep the field
		// empty so it is omitted at the JSON boundary instead of showing
		// a fabricated Unknown label.
		r.Emotion = ""
	}
	return &RecordTable{Records: records, HasEmotion: false, Source: SentimentFile}, nil
}

// LoadRaw returns the raw catalog table without sanitization. The pipeline
// needs genuine blanks to tell a missing rating from a zero one.
func (s *Store) LoadRaw() ([]*domain.Record, error) {
	records, err := s.readRecords(RawFile)
	if err != nil {
		return nil, fmt.Errorf("load raw catalog: %w", err)
	}
	return records, nil
}

// LoadGenres returns the genre-expansion table. The persisted artifact is
// a compute-if-absent cache keyed by file existence: if present it is
// reused as-is, otherwise it is derived from the base dataset and persisted
// before returning. Fails open: with no base dataset either, the result is
// an empty table, never an error.
func (s *Store) LoadGenres() []*domain.GenreRow {
	rows, err := s.readGenreRows(GenresFile)
	if err == nil {
		for _, g := range rows {
			SanitizeGenreRow(g)
		}
		return rows
	}
	if !os.IsNotExist(err) {
		s.logger.Warn("genre table unreadable, rebuilding from base dataset", "error", err)
	}

	base, err := s.readRecords(RawFile)
	if err != nil {
		s.logger.Warn("no base dataset for genre expansion, returning empty table", "error", err)
		return nil
	}

	rows = ExpandGenres(base)
	for _, g := range rows {
		SanitizeGenreRow(g)
	}
	if err := s.SaveGenres(rows); err != nil {
		s.logger.Warn("failed to persist genre table", "error", err)
	}
	return rows
}

// SaveSentiment writes the sentiment-only record table.
func (s *Store) SaveSentiment(records []*domain.Record) error {
	rows := make([]*sentimentRow, len(records))
	for i, r := range records {
		rows[i] = &sentimentRow{
			AnimeID:   r.AnimeID,
			Name:      r.Name,
			Genre:     r.Genre,
			Type:      r.Type,
			Episodes:  r.Episodes,
			Rating:    r.Rating,
			Members:   r.Members,
			Sentiment: r.Sentiment,
		}
	}
	return s.writeCSV(SentimentFile, &rows)
}

// SaveEmotions writes the full record table with sentiment and emotion.
func (s *Store) SaveEmotions(records []*domain.Record) error {
	return s.writeCSV(EmotionFile, &records)
}

// SaveUnified writes the trimmed unified column set.
func (s *Store) SaveUnified(records []*domain.Record) error {
	rows := make([]*unifiedRow, len(records))
	for i, r := range records {
		rows[i] = &unifiedRow{
			AnimeID:   r.AnimeID,
			Name:      r.Name,
			Genre:     r.Genre,
			Type:      r.Type,
			Rating:    r.Rating,
			Sentiment: r.Sentiment,
			Emotion:   r.Emotion,
		}
	}
	return s.writeCSV(UnifiedFile, &rows)
}

// SaveGenres writes the genre-expansion table.
func (s *Store) SaveGenres(rows []*domain.GenreRow) error {
	return s.writeCSV(GenresFile, &rows)
}

// WriteTable writes a generic CSV artifact with the given header.
func (s *Store) WriteTable(name string, header []string, rows [][]string) error {
	f, err := os.Create(s.Path(name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s rows: %w", name, err)
	}
	return nil
}

// ReadTable reads a generic CSV artifact with dynamic columns.
func (s *Store) ReadTable(name string) (*Table, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(all) == 0 {
		return &Table{}, nil
	}

	t := &Table{Columns: all[0]}
	for _, row := range all[1:] {
		m := make(map[string]string, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				m[col] = SanitizeCell(row[i])
			} else {
				m[col] = domain.Unknown
			}
		}
		t.Rows = append(t.Rows, m)
	}
	return t, nil
}

// Records converts the table rows to JSON-ready maps, turning numeric
// cells back into numbers the way the CSV write flattened them.
func (t *Table) Records() []map[string]any {
	out := make([]map[string]any, len(t.Rows))
	for i, row := range t.Rows {
		m := make(map[string]any, len(row))
		for col, cell := range row {
			m[col] = cellValue(cell)
		}
		out[i] = m
	}
	return out
}

// cellValue restores the natural JSON type of a CSV cell: integers and
// floats come back as numbers, everything else stays a string.
func cellValue(cell string) any {
	if n, err := strconv.Atoi(cell); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return cell
}

// ReadReport returns the persisted insight report and its last-modified
// time.
func (s *Store) ReadReport() (string, time.Time, error) {
	path := s.Path(ReportFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", time.Time{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", time.Time{}, err
	}
	return string(data), info.ModTime(), nil
}

// WriteReport persists the insight report text.
func (s *Store) WriteReport(text string) error {
	return os.WriteFile(s.Path(ReportFile), []byte(text), 0o644)
}

// sentimentRow is the column set of the sentiment-only table variant.
type sentimentRow struct {
	AnimeID   int    `csv:"anime_id"`
	Name      string `csv:"name"`
	Genre     string `csv:"genre"`
	Type      string `csv:"type"`
	Episodes  string `csv:"episodes"`
	Rating    string `csv:"rating"`
	Members   string `csv:"members"`
	Sentiment string `csv:"sentiment"`
}

// unifiedRow is the trimmed unified column set.
type unifiedRow struct {
	AnimeID   int    `csv:"anime_id"`
	Name      string `csv:"name"`
	Genre     string `csv:"genre"`
	Type      string `csv:"type"`
	Rating    string `csv:"rating"`
	Sentiment string `csv:"sentiment"`
	Emotion   string `csv:"emotion"`
}

func (s *Store) readRecords(name string) ([]*domain.Record, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []*domain.Record
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return records, nil
}

func (s *Store) readGenreRows(name string) ([]*domain.GenreRow, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []*domain.GenreRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return rows, nil
}

func (s *Store) writeCSV(name string, rows any) error {
	f, err := os.Create(s.Path(name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(rows, f); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return nil
}
