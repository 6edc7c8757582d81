package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cliptube/cmd/notify/dal/ram"
	"cliptube/pkg/errno"
)

type recordingPusher struct {
	tokens []string
	err    error
}

func (p *recordingPusher) Push(_ context.Context, token, _, _ string, _ map[string]string) error {
	p.tokens = append(p.tokens, token)
	return p.err
}

func TestNotifyDeliversToRegisteredDevice(t *testing.T) {
	pusher := &recordingPusher{}
	s := NewNotifyService(context.Background(), ram.New(), pusher)

	require.NoError(t, s.SetNotificationToken("alice@social.com", "token-1"))
	s.Notify("alice@social.com", "Nuevo mensaje", "hola", map[string]string{"from": "bob@social.com"})

	assert.Equal(t, []string{"token-1"}, pusher.tokens)
}

func TestNotifySkipsUserWithoutDevice(t *testing.T) {
	pusher := &recordingPusher{}
	s := NewNotifyService(context.Background(), ram.New(), pusher)

	s.Notify("alice@social.com", "Nuevo mensaje", "hola", nil)

	assert.Empty(t, pusher.tokens)
}

func TestNotifySwallowsDeliveryFailure(t *testing.T) {
	pusher := &recordingPusher{err: assert.AnError}
	s := NewNotifyService(context.Background(), ram.New(), pusher)

	require.NoError(t, s.SetNotificationToken("alice@social.com", "token-1"))
	assert.NotPanics(t, func() {
		s.Notify("alice@social.com", "Nuevo mensaje", "hola", nil)
	})
}

func TestSetTokenValidation(t *testing.T) {
	s := NewNotifyService(context.Background(), ram.New(), &recordingPusher{})

	require.ErrorIs(t, s.SetNotificationToken("", "token-1"), errno.ParamErr)
	require.ErrorIs(t, s.SetNotificationToken("alice@social.com", ""), errno.ParamErr)
}
