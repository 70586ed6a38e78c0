package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/speaktech/transqiita/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk, falling
// back to built-in defaults.
//
// Initialisation is lazy: the directory and default files are written on
// the first Load, never in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts are written to disk on first use and used when a file is missing.
var defaultPrompts = map[string]string{
	driven.PromptTranslateSystem: `You are a professional technical translator.
Translate the user's text into the language with ISO 639-1 code "%s".

Rules:
- Output ONLY the translation, with no preamble or explanation.
- Keep Markdown syntax exactly: headings, lists, tables, links, images, emphasis.
- Keep inline code, URLs, file paths and identifiers unchanged.
- Keep line breaks where the source has them.`,

	driven.PromptDetectLanguage: `Identify the language of the following text.
Answer with the ISO 639-1 code only (for example: en, ja, fr).

Text:
%s`,
}

const promptReadme = `# transqiita prompts

These files are the prompts sent to LLM translation backends
(ollama, openai, anthropic). Google Cloud Translation does not use them.

- translate_system.txt: system prompt for translation. %s is the target language code.
- detect_language.txt: language detection. %s is the text to classify.

Edit a file to change behaviour. Keep every %s placeholder.
Changes apply on the next command.
`

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.transqiita/prompts/.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(dir, "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)

	s.mu.RLock()
	prompt, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return prompt, nil
	}

	prompt, err := s.read(name)
	if err != nil {
		def, ok := defaultPrompts[name]
		if !ok {
			if s.initErr != nil {
				return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
			}
			return "", fmt.Errorf("load prompt %q: %w", name, err)
		}
		prompt = def
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

func (s *PromptStore) path(name string) string {
	return filepath.Join(s.promptDir, name+".txt")
}

// initialise creates the prompt directory, default files and README.
// Existing files are never overwritten.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	files := map[string]string{filepath.Join(s.promptDir, "README.md"): promptReadme}
	for name, content := range defaultPrompts {
		files[s.path(name)] = content
	}
	for path, content := range files {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			s.initErr = fmt.Errorf("create %s: %w", filepath.Base(path), err)
			return
		}
	}
}

func (s *PromptStore) read(name string) (string, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
