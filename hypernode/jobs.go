package hypernode

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Hypernode-sol/hypernode-sdk-go/errors"
)

// SubmitJob submits a compute job for scheduling on the network.
func (c *Client) SubmitJob(ctx context.Context, req JobRequest) (*Job, error) {
	if err := c.validateStruct(req); err != nil {
		return nil, err
	}
	var out Job
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/v1/jobs",
		path:   "/v1/jobs",
		in:     req,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetJob fetches a job by id.
func (c *Client) GetJob(ctx context.Context, id string) (*Job, error) {
	if id == "" {
		return nil, errors.NewValidation("job id cannot be empty")
	}
	var out Job
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/v1/jobs/{id}",
		path:   "/v1/jobs/" + url.PathEscape(id),
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
