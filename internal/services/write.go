package services

import (
	"context"
	"time"

	"faregateway/internal/upstream"

	"github.com/sirupsen/logrus"
)

const (
	defaultRetryCount = 2
	defaultRetryDelay = 500 * time.Millisecond
)

// WriteResult reports where a write landed. Simulated means every endpoint
// and retry failed but demo mode answered success anyway.
type WriteResult struct {
	Endpoint  string `json:"endpoint,omitempty"`
	Simulated bool   `json:"simulated,omitempty"`
}

// postWithRetry re-runs the whole endpoint chain up to retries extra times
// with a fixed delay. No backoff: the admin is sitting in front of a form.
func postWithRetry(ctx context.Context, client *upstream.Client, paths []string, payload any,
	retries int, delay time.Duration, sleep func(time.Duration)) (string, error) {

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			logrus.WithField("attempt", attempt).Info("retrying upstream write")
			sleep(delay)
		}
		endpoint, err := client.PostFirst(ctx, paths, payload)
		if err == nil {
			return endpoint, nil
		}
		lastErr = err
	}
	return "", lastErr
}
