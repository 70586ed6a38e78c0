package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
	"github.com/speaktech/transqiita/internal/logger"
)

// Ensure Repository implements the interfaces.
var (
	_ driven.ContentRepository   = (*Repository)(nil)
	_ driven.WatchableRepository = (*Repository)(nil)
)

const (
	extension = ".md"
	filePerm  = 0o644
)

// Repository stores articles as Markdown files in a directory tree.
type Repository struct {
	root string
	now  func() time.Time

	mu     sync.Mutex
	closed bool
	watch  []*fsnotify.Watcher
}

// New creates a repository rooted at dir. The directory must exist.
func New(dir string) (*Repository, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty directory", domain.ErrInvalidInput)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: root path error: %s is not a directory", domain.ErrInvalidInput, abs)
	}
	return &Repository{root: abs, now: time.Now}, nil
}

// Kind returns local.
func (r *Repository) Kind() domain.RepositoryKind {
	return domain.RepositoryLocal
}

// Root returns the absolute article directory.
func (r *Repository) Root() string {
	return r.root
}

// ListAuthored returns every Markdown article under the root, ordered by path.
// Unparseable files are logged and skipped.
func (r *Repository) ListAuthored(ctx context.Context) ([]domain.Article, error) {
	var articles []domain.Article
	err := r.walk(ctx, func(_ string, a domain.Article) bool {
		articles = append(articles, a)
		return true
	})
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// walk visits every readable article in path order until fn returns false.
func (r *Repository) walk(ctx context.Context, fn func(path string, a domain.Article) bool) error {
	errStop := errors.New("stop")

	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path != r.root && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isMarkdown(path) {
			return nil
		}

		a, err := r.read(path)
		if err != nil {
			logger.Warn("local: skipping %s: %v", path, err)
			return nil
		}
		if !fn(path, a) {
			return errStop
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return fmt.Errorf("list %s: %w", r.root, err)
	}
	return nil
}

// Create writes a new file named after a fresh id.
func (r *Repository) Create(ctx context.Context, draft domain.Draft, _ domain.PublishOptions) (*domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := r.now().UTC().Truncate(time.Second)
	id := uuid.New().String()
	fm := frontMatter{
		ID:        id,
		Title:     draft.Title,
		Tags:      tagNames(draft.Tags),
		Private:   draft.Private,
		CreatedAt: now,
		UpdatedAt: now,
	}

	path := filepath.Join(r.root, id+extension)
	if err := r.write(path, fm, draft.Body); err != nil {
		return nil, err
	}
	a := toArticle(path, fm, draft.Body)
	return &a, nil
}

// Update rewrites the file holding id, keeping its creation time and
// visibility.
func (r *Repository) Update(ctx context.Context, id string, draft domain.Draft) (*domain.Article, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty article id", domain.ErrInvalidInput)
	}

	path, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	fm, _, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	fm.ID = id
	fm.Title = draft.Title
	fm.Tags = tagNames(draft.Tags)
	fm.UpdatedAt = r.now().UTC().Truncate(time.Second)

	if err := r.write(path, fm, draft.Body); err != nil {
		return nil, err
	}
	a := toArticle(path, fm, draft.Body)
	return &a, nil
}

// Watch emits article ids for created or written Markdown files until ctx is
// cancelled, then closes the channel. Subdirectories present at start are
// watched too.
func (r *Repository) Watch(ctx context.Context) (<-chan string, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, errors.New("repository is closed")
	}
	r.mu.Unlock()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	err = filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != r.root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("root path error: %w", err)
	}

	r.mu.Lock()
	r.watch = append(r.watch, watcher)
	r.mu.Unlock()

	ids := make(chan string)
	go func() {
		defer close(ids)
		defer func() { _ = watcher.Close() }()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				id, ok := r.handleEvent(event)
				if !ok {
					continue
				}
				select {
				case ids <- id:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("local: watch error: %v", err)
			}
		}
	}()

	return ids, nil
}

// Close stops all watchers.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	for _, w := range r.watch {
		_ = w.Close()
	}
	r.watch = nil
	return nil
}

// handleEvent maps a filesystem event to the id of the edited article.
// Removals, renames and chmods are not edits. Empty files are skipped since
// writers often create then fill; the following Write carries the content.
func (r *Repository) handleEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	rel, err := filepath.Rel(r.root, event.Name)
	if err != nil || isHidden(rel) || !isMarkdown(event.Name) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return "", false
	}

	a, err := r.read(event.Name)
	if err != nil {
		logger.Debug("local: ignoring %s: %v", event.Name, err)
		return "", false
	}
	return a.ID, true
}

func (r *Repository) read(path string) (domain.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Article{}, err
	}
	fm, body, err := parseDocument(data)
	if err != nil {
		return domain.Article{}, err
	}
	if fm.ID == "" {
		fm.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if fm.Title == "" {
		fm.Title = fallbackTitle(body, path)
	}
	if fm.UpdatedAt.IsZero() {
		if info, err := os.Stat(path); err == nil {
			fm.UpdatedAt = info.ModTime().UTC()
		}
	}
	if fm.CreatedAt.IsZero() {
		fm.CreatedAt = fm.UpdatedAt
	}
	return toArticle(path, fm, body), nil
}

func (r *Repository) write(path string, fm frontMatter, body string) error {
	data, err := renderDocument(fm, body)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// find locates the file holding id.
func (r *Repository) find(ctx context.Context, id string) (string, error) {
	direct := filepath.Join(r.root, id+extension)
	if a, err := r.read(direct); err == nil && a.ID == id {
		return direct, nil
	}

	var found string
	err := r.walk(ctx, func(path string, a domain.Article) bool {
		if a.ID == id {
			found = path
			return false
		}
		return true
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("%w: article %s", domain.ErrNotFound, id)
	}
	return found, nil
}

func toArticle(path string, fm frontMatter, body string) domain.Article {
	url := fm.URL
	if url == "" {
		url = "file://" + filepath.ToSlash(path)
	}
	return domain.Article{
		ID:        fm.ID,
		Title:     fm.Title,
		Body:      body,
		Tags:      fm.tags(),
		CreatedAt: fm.CreatedAt,
		UpdatedAt: fm.UpdatedAt,
		URL:       url,
		Private:   fm.Private,
	}
}

func isMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), extension)
}

// isHidden reports whether any element of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
