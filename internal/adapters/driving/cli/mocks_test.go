package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driving"
)

type fakeWorklist struct {
	wl  domain.Worklist
	err error
}

func (f *fakeWorklist) Build(_ context.Context) (domain.Worklist, error) {
	return f.wl, f.err
}

func (f *fakeWorklist) Classify(_ context.Context, corpus []domain.Article) ([]domain.Article, []domain.Article, error) {
	return corpus, nil, nil
}

func (f *fakeWorklist) Match(_, _ []domain.Article) domain.Worklist {
	return f.wl
}

type fakePublish struct {
	mu    sync.Mutex
	err   error
	items domain.Worklist
	req   driving.PublishRequest
}

func (f *fakePublish) TranslateAndPublish(
	_ context.Context, item domain.WorkItem, req driving.PublishRequest,
) (*domain.PublishResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.PublishResult{
		Item:      item,
		Published: domain.Article{ID: "t-" + item.Article.ID, URL: "https://qiita.com/items/t-" + item.Article.ID},
		Draft:     domain.Draft{Title: "EN " + item.Article.Title, Body: "translated body"},
		DryRun:    req.DryRun,
	}, nil
}

func (f *fakePublish) PublishAll(
	ctx context.Context, items domain.Worklist, req driving.PublishRequest, progress driving.ProgressFunc,
) ([]domain.PublishResult, error) {
	f.mu.Lock()
	f.items = append(f.items, items...)
	f.req = req
	f.mu.Unlock()

	var results []domain.PublishResult
	for i, item := range items {
		r, err := f.TranslateAndPublish(ctx, item, req)
		if progress != nil {
			progress(i, len(items), r, err)
		}
		if err != nil {
			return results, err
		}
		results = append(results, *r)
	}
	return results, nil
}

func (f *fakePublish) published() domain.Worklist {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items
}

type fakeRepository struct {
	kind domain.RepositoryKind
}

func (f *fakeRepository) Kind() domain.RepositoryKind { return f.kind }

func (f *fakeRepository) ListAuthored(_ context.Context) ([]domain.Article, error) {
	return nil, nil
}

func (f *fakeRepository) Create(_ context.Context, d domain.Draft, _ domain.PublishOptions) (*domain.Article, error) {
	return &domain.Article{Title: d.Title}, nil
}

func (f *fakeRepository) Update(_ context.Context, id string, d domain.Draft) (*domain.Article, error) {
	return &domain.Article{ID: id, Title: d.Title}, nil
}

type fakeWatchRepository struct {
	fakeRepository
	ids []string
}

func (f *fakeWatchRepository) Watch(_ context.Context) (<-chan string, error) {
	ch := make(chan string, len(f.ids))
	for _, id := range f.ids {
		ch <- id
	}
	close(ch)
	return ch, nil
}

type fakeHistory struct {
	records []domain.PublishRecord
	err     error
}

func (f *fakeHistory) Recent(_ context.Context, limit int) ([]domain.PublishRecord, error) {
	if limit > 0 && limit < len(f.records) {
		return f.records[:limit], f.err
	}
	return f.records, f.err
}

func (f *fakeHistory) ForArticle(_ context.Context, sourceID string) (*domain.PublishRecord, error) {
	for _, r := range f.records {
		if r.SourceID == sourceID {
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeRuns struct {
	runs []domain.RunRecord
}

func (f *fakeRuns) RecordRun(_ context.Context, run domain.RunRecord) error {
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeRuns) ListRuns(_ context.Context, _ int) ([]domain.RunRecord, error) {
	return f.runs, nil
}

func (f *fakeRuns) PruneRuns(_ context.Context, _ int) error { return nil }

type fakeSettings struct {
	settings    domain.AppSettings
	validateErr error
	setErr      error

	provider domain.TranslatorProvider
	model    string
	apiKey   string
	target   string
	kind     domain.RepositoryKind
	location string
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{settings: domain.DefaultAppSettings()}
}

func (f *fakeSettings) Get() (*domain.AppSettings, error) {
	s := f.settings
	return &s, nil
}

func (f *fakeSettings) Save(s *domain.AppSettings) error {
	f.settings = *s
	return nil
}

func (f *fakeSettings) SetTranslator(p domain.TranslatorProvider, model, apiKey string) error {
	f.provider, f.model, f.apiKey = p, model, apiKey
	return f.setErr
}

func (f *fakeSettings) SetTargetLanguage(code string) error {
	f.target = code
	return f.setErr
}

func (f *fakeSettings) SetRepository(kind domain.RepositoryKind, location string) error {
	f.kind, f.location = kind, location
	return f.setErr
}

func (f *fakeSettings) SetPublishDefaults(opts domain.PublishOptions) error {
	f.settings.Publish = opts
	return nil
}

func (f *fakeSettings) Validate() error { return f.validateErr }

func (f *fakeSettings) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

type fakeScheduler struct {
	report func(domain.RunRecord)
	run    domain.RunRecord
	err    error
}

func (f *fakeScheduler) Start(ctx context.Context) error {
	f.report(f.run)
	if f.err != nil {
		return f.err
	}
	return context.Canceled
}

func (f *fakeScheduler) Stop() error { return nil }

func testWorklist() domain.Worklist {
	return domain.Worklist{
		domain.NewWorkItem(domain.Article{ID: "a1", Title: "Go入門"}, 0),
		domain.StaleWorkItem(domain.Article{ID: "a2", Title: "並行処理"}, "s2", 1),
		domain.NewWorkItem(domain.Article{ID: "a3", Title: "テスト"}, 2),
	}
}

// testEnv wires fakes into the package globals.
type testEnv struct {
	worklist *fakeWorklist
	publish  *fakePublish
	settings *fakeSettings
	tokens   []string
	services *Services
}

func setupServices(t *testing.T, wl domain.Worklist) *testEnv {
	t.Helper()
	env := &testEnv{
		worklist: &fakeWorklist{wl: wl},
		publish:  &fakePublish{},
		settings: newFakeSettings(),
	}
	env.services = &Services{
		Settings: env.settings,
		Open: func(_ context.Context, token string) (*Runtime, error) {
			env.tokens = append(env.tokens, token)
			return &Runtime{
				Repository: &fakeRepository{kind: domain.RepositoryQiita},
				Worklist:   env.worklist,
				Publish:    env.publish,
			}, nil
		},
	}
	useServices(t, env.services)
	return env
}

func useServices(t *testing.T, s *Services) {
	t.Helper()
	oldServices, oldBootstrap, oldTerminal := services, bootstrap, stdinIsTerminal
	services, bootstrap = s, nil
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() {
		services, bootstrap, stdinIsTerminal = oldServices, oldBootstrap, oldTerminal
	})
}

// execute runs the root command with args and stdin, returning its output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default so tests do not leak
// state through the shared command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue) //nolint:errcheck // defaults always parse
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}
