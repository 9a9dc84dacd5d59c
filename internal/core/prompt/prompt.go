// Package prompt manages the system prompts sent to the chat endpoint.
//
// Each prompt kind is backed by an override file in the config directory.
// The file is seeded with the built-in default the first time it is needed,
// so users can edit it in place.
package prompt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hay-kot/gim/internal/core/logging"
	"github.com/hay-kot/gim/pkg/kv"
)

// DefaultLanguage is the language the built-in prompts are written in.
const DefaultLanguage = "English"

// Kind identifies one of the two system prompts.
type Kind string

const (
	// Diff is the stage-one prompt that summarizes each changed file.
	Diff Kind = "diff"
	// Subject is the stage-two prompt that condenses the summary into a subject line.
	Subject Kind = "subject"
)

// Kinds lists every prompt kind in pipeline order.
var Kinds = []Kind{Diff, Subject}

// Pair is the system and user text for one chat call.
type Pair struct {
	System string
	User   string
}

// Store loads prompts from the config directory. Loaded text is cached for
// the lifetime of the Store.
type Store struct {
	dir   string
	cache *kv.Store[Kind, string]
}

// NewStore creates a prompt store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{
		dir:   dir,
		cache: kv.New[Kind, string](),
	}
}

// Default returns the built-in prompt text for kind.
func Default(kind Kind) string {
	switch kind {
	case Subject:
		return defaultSubjectPrompt
	default:
		return defaultDiffPrompt
	}
}

// Path returns the override file for kind.
func (s *Store) Path(kind Kind) string {
	return filepath.Join(s.dir, string(kind)+"_prompt.txt")
}

// Load returns the prompt text for kind. A missing override file is created
// with the default text. Any filesystem failure falls back to the default.
func (s *Store) Load(kind Kind) string {
	return s.cache.GetOrLoad(kind, func() string {
		return s.read(kind)
	})
}

func (s *Store) read(kind Kind) string {
	log := logging.Component("prompt")
	path := s.Path(kind)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		return string(data)
	case errors.Is(err, fs.ErrNotExist):
		if werr := s.write(path, Default(kind)); werr != nil {
			log.Warn().Err(werr).Str("path", path).Msg("failed to seed prompt file")
		}
	default:
		log.Warn().Err(err).Str("path", path).Msg("failed to read prompt file, using default")
	}
	return Default(kind)
}

// Reset overwrites the override file for kind with the default text.
func (s *Store) Reset(kind Kind) error {
	s.cache.Delete(kind)
	if err := s.write(s.Path(kind), Default(kind)); err != nil {
		return fmt.Errorf("reset %s prompt: %w", kind, err)
	}
	return nil
}

func (s *Store) write(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

// IsDefaultLanguage reports whether language selects the built-in prompt
// language. Blank counts as the default.
func IsDefaultLanguage(language string) bool {
	language = strings.TrimSpace(language)
	return language == "" || strings.EqualFold(language, DefaultLanguage)
}

// Augment appends a response-language directive to text. Text is returned
// unchanged for the default language.
func Augment(text, language string) string {
	if IsDefaultLanguage(language) {
		return text
	}

	language = strings.TrimSpace(language)
	directive := fmt.Sprintf(
		"- Write your answer in %s. If you do not recognize %q as a language, write it in %s.",
		language, language, DefaultLanguage,
	)
	return strings.TrimRight(text, "\n") + "\n" + directive + "\n"
}
