package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/bilanz/internal/id"
)

// DefaultPath is the journal location relative to the project root.
const DefaultPath = "journal/events.csv"

// Service reads and appends a project's event journal.
type Service struct {
	path string
}

// NewService creates a journal Service for the file at rel below repoRoot.
// An empty rel selects DefaultPath.
func NewService(repoRoot, rel string) *Service {
	if rel == "" {
		rel = DefaultPath
	}
	return &Service{path: filepath.Join(repoRoot, rel)}
}

// Path returns the journal file path.
func (s *Service) Path() string {
	return s.path
}

// Init creates an empty journal holding only the header. An existing journal
// is left untouched.
func (s *Service) Init() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(Header+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing journal: %w", err)
	}
	return nil
}

// Load reads all events in append order. A missing journal is empty.
func (s *Service) Load() ([]Event, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", s.path, err)
	}
	defer f.Close()

	events, err := ReadEvents(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", s.path, err)
	}
	return events, nil
}

// Append assigns ev the next ID of its month, validates the journal with ev
// added and appends it. It returns the stored event.
func (s *Service) Append(ev Event) (Event, error) {
	existing, err := s.Load()
	if err != nil {
		return Event{}, err
	}

	ids := make([]string, len(existing))
	for i, e := range existing {
		ids[i] = e.ID
	}
	ev.ID = id.Next(ids, ev.Timestamp)

	if verrs := ValidateEvents(append(existing, ev)); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return Event{}, fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return Event{}, fmt.Errorf("creating journal dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return Event{}, fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return Event{}, fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendEvents(f, []Event{ev}); err != nil {
		return Event{}, fmt.Errorf("appending event: %w", err)
	}
	return ev, nil
}
