package hypernode

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Hypernode-sol/hypernode-sdk-go/errors"
)

const defaultPollInterval = 5 * time.Second

// Deploy creates a new model deployment. The returned deployment usually
// starts in the pending state; use WaitForDeployment to block until it is
// serving.
func (c *Client) Deploy(ctx context.Context, cfg DeploymentConfig) (*Deployment, error) {
	if err := c.validateStruct(cfg); err != nil {
		return nil, err
	}
	var out Deployment
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/v1/deployments",
		path:   "/v1/deployments",
		in:     cfg,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDeployment fetches a deployment by id.
func (c *Client) GetDeployment(ctx context.Context, id string) (*Deployment, error) {
	if id == "" {
		return nil, errors.NewValidation("deployment id cannot be empty")
	}
	var out Deployment
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/v1/deployments/{id}",
		path:   "/v1/deployments/" + url.PathEscape(id),
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDeployments returns all deployments owned by the caller.
func (c *Client) ListDeployments(ctx context.Context) ([]Deployment, error) {
	var out []Deployment
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/v1/deployments",
		path:   "/v1/deployments",
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TerminateDeployment tears a deployment down.
func (c *Client) TerminateDeployment(ctx context.Context, id string) error {
	if id == "" {
		return errors.NewValidation("deployment id cannot be empty")
	}
	return c.do(ctx, call{
		method: http.MethodDelete,
		route:  "/v1/deployments/{id}",
		path:   "/v1/deployments/" + url.PathEscape(id),
	})
}

// ScaleDeployment changes the replica count of a running deployment.
func (c *Client) ScaleDeployment(ctx context.Context, id string, replicas int) (*Deployment, error) {
	if id == "" {
		return nil, errors.NewValidation("deployment id cannot be empty")
	}
	if replicas < 1 {
		return nil, errors.NewValidationField("replicas", "must be at least 1")
	}
	var out Deployment
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/v1/deployments/{id}/scale",
		path:   "/v1/deployments/" + url.PathEscape(id) + "/scale",
		in:     scaleRequest{Replicas: replicas},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// PollOption adjusts how WaitForDeployment polls.
type PollOption func(*pollConfig)

type pollConfig struct {
	interval time.Duration
}

// WithPollInterval sets the delay between status checks. The default is
// five seconds.
func WithPollInterval(interval time.Duration) PollOption {
	return func(pc *pollConfig) {
		if interval > 0 {
			pc.interval = interval
		}
	}
}

// WaitForDeployment polls a deployment until it is running. A deployment
// that enters the failed state returns the last observed state together
// with ErrDeploymentFailed. Bound the wait with a context deadline; when
// the context ends the context error is returned.
func (c *Client) WaitForDeployment(ctx context.Context, id string, opts ...PollOption) (*Deployment, error) {
	pc := pollConfig{interval: defaultPollInterval}
	for _, opt := range opts {
		opt(&pc)
	}

	for {
		dep, err := c.GetDeployment(ctx, id)
		if err != nil {
			return nil, err
		}

		switch dep.Status {
		case DeploymentRunning:
			return dep, nil
		case DeploymentFailed:
			return dep, fmt.Errorf("deployment %s: %w", id, errors.ErrDeploymentFailed)
		}

		c.logger.Ctx(ctx).Debug("deployment not ready",
			"deployment_id", id, "status", string(dep.Status))

		timer := time.NewTimer(pc.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
