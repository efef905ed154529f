package registry

import (
	"context"
	"net/http"

	"github.com/grundrisse/grundrisse/source"
)

// List returns every registered source.
func (c *Client) List(ctx context.Context) ([]source.Source, error) {
	var sources []source.Source
	err := c.do(ctx, call{
		op:     OpFetch,
		method: http.MethodGet,
		path:   "/sources",
		out:    &sources,
	})
	if err != nil {
		return nil, err
	}
	if sources == nil {
		sources = []source.Source{}
	}
	return sources, nil
}

// Create registers a new source. Any 2xx answer is a success; the returned
// Source is filled only when the backend echoes one back.
func (c *Client) Create(ctx context.Context, draft source.Draft) (source.Source, error) {
	var echoed source.Source
	err := c.do(ctx, call{
		op:       OpCreate,
		method:   http.MethodPost,
		path:     "/sources",
		body:     draft,
		out:      &echoed,
		optional: true,
	})
	if err != nil {
		return source.Source{}, err
	}
	return echoed, nil
}

// Delete removes the source with the given id.
func (c *Client) Delete(ctx context.Context, id int) error {
	return c.do(ctx, call{
		op:     OpDelete,
		method: http.MethodDelete,
		path:   source.PathOf(id),
	})
}
