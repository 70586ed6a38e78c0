package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/services"
)

func clearCredentials(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		services.EnvQiitaToken, services.EnvGitHubToken, services.EnvGoogleAPIKey,
		services.EnvOpenAIAPIKey, services.EnvAnthropicAPIKey,
	} {
		t.Setenv(env, "")
	}
}

func TestBootstrap(t *testing.T) {
	clearCredentials(t)

	s, err := bootstrap(t.TempDir())
	require.NoError(t, err)
	defer func() { assert.NoError(t, s.Close()) }()

	require.NotNil(t, s.Settings)
	require.NotNil(t, s.History)
	require.NotNil(t, s.Runs)
	require.NotNil(t, s.Open)
	require.NotNil(t, s.NewScheduler)

	settings, err := s.Settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.RepositoryQiita, settings.Repository.Kind)

	records, err := s.History.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestOpen_MissingQiitaToken(t *testing.T) {
	clearCredentials(t)

	s, err := bootstrap(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Open(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrAuthRequired)

	_, err = s.Open(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domain.ErrAuthInvalid)
}

func TestOpen_TranslatorNotConfigured(t *testing.T) {
	clearCredentials(t)

	s, err := bootstrap(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Settings.SetRepository(domain.RepositoryLocal, t.TempDir()))

	_, err = s.Open(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrTranslatorUnavailable)
}
