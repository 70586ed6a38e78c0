package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("missing worklist service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Publish: &mockPublishService{}})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingWorklistService)
	})

	t.Run("missing publish service returns error", func(t *testing.T) {
		_, err := NewServer(&Ports{Worklist: &mockWorklistService{}})
		assert.ErrorIs(t, err, ErrMissingPublishService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Worklist: &mockWorklistService{},
			Publish:  &mockPublishService{},
		})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	ports := &Ports{
		Worklist: &mockWorklistService{},
		Publish:  &mockPublishService{},
		History:  &mockHistoryService{},
	}
	assert.NoError(t, ports.Validate())
}
