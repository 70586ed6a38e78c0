package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/speaktech/transqiita/internal/adapters/driving/mcp"
)

func TestMCPCmd_Registered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"mcp", "serve"})
	assert.NoError(t, err)
	assert.Equal(t, "serve", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("port"))
	assert.NotNil(t, cmd.Flags().Lookup("dry-run"))
}

func TestMCPServeCmd_MissingWorklist(t *testing.T) {
	env := setupServices(t, nil)
	env.services.Open = func(_ context.Context, _ string) (*Runtime, error) {
		return &Runtime{Publish: env.publish}, nil
	}

	_, err := execute(t, "", "mcp", "serve")

	assert.ErrorIs(t, err, mcp.ErrMissingWorklistService)
}
