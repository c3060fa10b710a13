package agent

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nhdewitt/specsheet/internal/protocol"
	"github.com/sirupsen/logrus"
	"gopkg.in/cenkalti/backoff.v1"
)

// Send posts env to the configured URL as gzip JSON. Network errors and 5xx
// responses are retried with exponential backoff; 4xx responses and context
// cancellation are not.
func (a *Agent) Send(ctx context.Context, env protocol.Envelope) error {
	payload, err := compressJSON(env)
	if err != nil {
		return err
	}

	log := a.log.WithFields(logrus.Fields{
		"request_id": env.ID,
		"url":        a.Config.URL,
	})

	attempts := 0
	operation := func() error {
		attempts++
		if err := ctx.Err(); err != nil {
			return &backoff.PermanentError{Err: err}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.Config.URL, bytes.NewReader(payload))
		if err != nil {
			return &backoff.PermanentError{Err: fmt.Errorf("create request error: %w", err)}
		}
		a.setHeaders(req)
		req.Header.Set("X-Request-ID", env.ID)

		resp, err := a.Client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return &backoff.PermanentError{Err: ctx.Err()}
			}
			return fmt.Errorf("http error: %w", err)
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

		if resp.StatusCode >= 400 {
			statusErr := fmt.Errorf("server returned status %d", resp.StatusCode)
			if resp.StatusCode >= 500 {
				return statusErr
			}
			return &backoff.PermanentError{Err: statusErr}
		}

		return nil
	}

	notify := func(err error, wait time.Duration) {
		log.WithError(err).WithField("retry_in", wait).Warn("Push attempt failed")
	}

	if err := backoff.RetryNotify(operation, a.newBackOff(), notify); err != nil {
		return fmt.Errorf("push to %s failed after %d attempt(s): %w", a.Config.URL, attempts, err)
	}

	log.WithField("attempts", attempts).Info("Pushed computer specs")
	return nil
}
