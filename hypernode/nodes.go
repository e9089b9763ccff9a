package hypernode

import (
	"context"
	"net/http"
)

// Nodes lists the compute nodes currently registered on the network.
func (c *Client) Nodes(ctx context.Context) ([]Node, error) {
	var out []Node
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/v1/nodes",
		path:   "/v1/nodes",
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterNode registers a compute node with the network and returns the
// node record the scheduler created for it.
func (c *Client) RegisterNode(ctx context.Context, reg NodeRegistration) (*Node, error) {
	if err := c.validateStruct(reg); err != nil {
		return nil, err
	}
	var out Node
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/v1/nodes/register",
		path:   "/v1/nodes/register",
		in:     reg,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
