// Package suggestions persists the daemon's distraction-suggestion report
// to suggestions.json rather than the database, per the external
// interfaces section of the spec: the report is a single current document,
// not a history that needs relational queries.
package suggestions

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/fluxhq/flux/internal/domain"
)

// FileStore implements domain.SuggestionStore by reading and writing a
// single JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore that persists to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

var _ domain.SuggestionStore = (*FileStore)(nil)

type reportDoc struct {
	SessionID   int64           `json:"session_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Suggestions []suggestionDoc `json:"suggestions"`
}

type suggestionDoc struct {
	ApplicationName string `json:"application_name"`
	WindowTitlePat  string `json:"window_title_pattern"`
	Reason          string `json:"reason"`
	OccurrenceCount int    `json:"occurrence_count"`
}

// Save writes report to the store's file, overwriting any prior content.
func (s *FileStore) Save(report domain.SuggestionReport) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}

	doc := reportDoc{
		SessionID:   report.SessionID,
		GeneratedAt: report.GeneratedAt.UTC(),
		Suggestions: make([]suggestionDoc, len(report.Suggestions)),
	}
	for i, sug := range report.Suggestions {
		doc.Suggestions[i] = suggestionDoc{
			ApplicationName: sug.ApplicationName,
			WindowTitlePat:  sug.WindowTitlePat,
			Reason:          sug.Reason,
			OccurrenceCount: sug.OccurrenceCount,
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load reads back the store's file. A missing file is not an error: it
// means no report has been generated yet, so Load returns an empty report.
func (s *FileStore) Load() (domain.SuggestionReport, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.SuggestionReport{}, nil
	}
	if err != nil {
		return domain.SuggestionReport{}, err
	}

	var doc reportDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.SuggestionReport{}, err
	}

	report := domain.SuggestionReport{
		SessionID:   doc.SessionID,
		GeneratedAt: doc.GeneratedAt,
		Suggestions: make([]domain.DistractionSuggestion, len(doc.Suggestions)),
	}
	for i, sug := range doc.Suggestions {
		report.Suggestions[i] = domain.DistractionSuggestion{
			ApplicationName: sug.ApplicationName,
			WindowTitlePat:  sug.WindowTitlePat,
			Reason:          sug.Reason,
			OccurrenceCount: sug.OccurrenceCount,
		}
	}
	return report, nil
}
