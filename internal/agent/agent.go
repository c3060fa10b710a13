// Package agent pushes the local machine's specification report to a
// remote collector.
package agent

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/nhdewitt/specsheet/internal/protocol"
	"github.com/sirupsen/logrus"
	"gopkg.in/cenkalti/backoff.v1"
)

const userAgent = "specsheet-agent/1.0"

// Config holds the push target and retry limits.
type Config struct {
	URL        string
	Hostname   string
	Timeout    time.Duration // per attempt
	MaxElapsed time.Duration // zero sends once without retrying
}

// SpecsProvider assembles a report for the local machine.
type SpecsProvider interface {
	ComputerSpecs(ctx context.Context) protocol.SystemReport
}

type Agent struct {
	Config Config
	Client *http.Client

	log           logrus.FieldLogger
	specs         SpecsProvider
	newBackOff    func() backoff.BackOff
	commonHeaders map[string]string
}

// New returns an Agent that reports specs to cfg.URL. An empty hostname is
// replaced by os.Hostname.
func New(cfg Config, log logrus.FieldLogger, specs SpecsProvider) (*Agent, error) {
	if cfg.URL == "" {
		return nil, errors.New("push url is required")
	}
	if cfg.Hostname == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, err
		}
		cfg.Hostname = host
	}

	a := &Agent{
		Config: cfg,
		Client: &http.Client{Timeout: cfg.Timeout},
		log:    log.WithField("package", "agent"),
		specs:  specs,
		commonHeaders: map[string]string{
			"Content-Type":     "application/json",
			"Content-Encoding": "gzip",
			"User-Agent":       userAgent,
		},
	}
	a.newBackOff = a.defaultBackOff

	return a, nil
}

func (a *Agent) defaultBackOff() backoff.BackOff {
	if a.Config.MaxElapsed <= 0 {
		return &backoff.StopBackOff{}
	}
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = a.Config.MaxElapsed
	return b
}

// Push collects a fresh report and sends it. The envelope is returned even
// when delivery fails.
func (a *Agent) Push(ctx context.Context) (protocol.Envelope, error) {
	env := protocol.NewEnvelope(a.Config.Hostname, a.specs.ComputerSpecs(ctx))
	return env, a.Send(ctx, env)
}

// setHeaders sets common headers for an http.Request
func (a *Agent) setHeaders(req *http.Request) {
	for k, v := range a.commonHeaders {
		req.Header.Set(k, v)
	}
}
