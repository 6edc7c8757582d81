package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"cliptube/cmd/notify/dal"
	"cliptube/pkg/errno"
)

// Pusher delivers one notification to a device token.
type Pusher interface {
	Push(ctx context.Context, token, title, body string, payload map[string]string) error
}

type NotifyService struct {
	ctx    context.Context
	tokens dal.TokenDatabase
	pusher Pusher
}

func NewNotifyService(ctx context.Context, tokens dal.TokenDatabase, pusher Pusher) *NotifyService {
	return &NotifyService{ctx: ctx, tokens: tokens, pusher: pusher}
}

func (s *NotifyService) SetNotificationToken(userEmail, token string) error {
	if userEmail == "" || token == "" {
		return errno.ParamErr.WithMessage("user email and token are required")
	}
	return s.tokens.SetNotificationToken(s.ctx, userEmail, token)
}

// Notify is best effort: a user without a registered device and a failed
// delivery both end here with a log line, never an error for the caller.
func (s *NotifyService) Notify(userEmail, title, body string, payload map[string]string) {
	token, ok, err := s.tokens.GetNotificationToken(s.ctx, userEmail)
	if err != nil {
		logrus.Errorf("token lookup for %s failed: %v", userEmail, err)
		return
	}
	if !ok {
		return
	}
	if err := s.pusher.Push(s.ctx, token, title, body, payload); err != nil {
		logrus.Errorf("push to %s failed: %v", userEmail, err)
	}
}

const (
	expoSendEndpoint = "https://exp.host/--/api/v2/push/send"
	pushTimeout      = 5 * time.Second
)

// ExpoPusher delivers through the Expo push gateway.
type ExpoPusher struct {
	client   *http.Client
	endpoint string
}

func NewExpoPusher() *ExpoPusher {
	return &ExpoPusher{
		client:   &http.Client{Timeout: pushTimeout},
		endpoint: expoSendEndpoint,
	}
}

func (p *ExpoPusher) Push(ctx context.Context, token, title, body string, payload map[string]string) error {
	b, err := json.Marshal(map[string]interface{}{
		"to":    token,
		"title": title,
		"body":  body,
		"data":  payload,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("expo push rejected: %s", resp.Status)
	}
	return nil
}
