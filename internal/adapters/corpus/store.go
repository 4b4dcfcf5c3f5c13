package corpus

import (
	"context"
	"embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/randomtoy/sensoji-go/internal/domain"
)

//go:embed data/fortunes.yaml
var corpusFS embed.FS

const embeddedFile = "data/fortunes.yaml"

type document struct {
	Fortunes []string `yaml:"fortunes"`
}

// Store serves fortunes from a YAML document, loaded once on first use.
type Store struct {
	load func() ([]byte, error)

	once     sync.Once
	fortunes []domain.RawText
	err      error
}

// NewEmbeddedStore returns a Store backed by the fortunes compiled into the binary.
func NewEmbeddedStore() *Store {
	return &Store{load: func() ([]byte, error) { return corpusFS.ReadFile(embeddedFile) }}
}

// NewFileStore returns a Store backed by a YAML file on disk.
func NewFileStore(path string) *Store {
	return &Store{load: func() ([]byte, error) { return os.ReadFile(path) }}
}

// NewStore returns a Store over an in-memory YAML document.
func NewStore(doc []byte) *Store {
	return &Store{load: func() ([]byte, error) { return doc, nil }}
}

func (s *Store) init() {
	raw, err := s.load()
	if err != nil {
		s.err = fmt.Errorf("read corpus: %w", err)
		return
	}
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		s.err = fmt.Errorf("parse corpus: %w", err)
		return
	}
	s.fortunes = make([]domain.RawText, 0, len(doc.Fortunes))
	for _, f := range doc.Fortunes {
		if f != "" {
			s.fortunes = append(s.fortunes, domain.RawText(f))
		}
	}
}

// All returns every fortune in the corpus.
func (s *Store) All() ([]domain.RawText, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return nil, s.err
	}
	return s.fortunes, nil
}

func (s *Store) Pick(_ context.Context, rng domain.RNG) (domain.RawText, error) {
	all, err := s.All()
	if err != nil {
		return "", err
	}
	if len(all) == 0 {
		return "", domain.ErrCorpusEmpty
	}
	if rng == nil {
		return "", domain.ErrNoRandomSource
	}
	return all[rng.Intn(len(all))], nil
}
