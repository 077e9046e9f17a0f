package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	pkgapi "github.com/nberthel/formadmin/pkg/api"
)

// ListQuery carries the user-controlled list parameters every list endpoint
// accepts: free-text search, 1-based page, page size, ordering key and a
// resource-specific filter map. An absent filter value means "no
// constraint".
type ListQuery struct {
	Search   string
	Page     int
	PageSize int
	Ordering string
	Filters  map[string]string
}

// Values encodes the query the way the backend expects it. Zero values are
// omitted entirely rather than sent empty.
func (q ListQuery) Values() url.Values {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.Ordering != "" {
		values.Set("ordering", q.Ordering)
	}
	for key, val := range q.Filters {
		if key != "" && val != "" {
			values.Set(key, val)
		}
	}
	return values
}

func (q ListQuery) appendTo(path string) string {
	encoded := q.Values().Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}

// Resource provides the CRUD surface of one backend collection
// ("/formations/", "/candidats/", ...). T is the read shape.
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource creates a resource accessor. path must start and end with a
// slash, e.g. "/formations/".
func NewResource[T any](client *Client, path string) *Resource[T] {
	return &Resource[T]{client: client, path: path}
}

// Path returns the collection path this resource is bound to.
func (r *Resource[T]) Path() string { return r.path }

// List fetches one page, normalized to the canonical Page shape whatever
// envelope dialect the endpoint speaks.
func (r *Resource[T]) List(ctx context.Context, q ListQuery) (*Page[T], error) {
	body, err := r.client.doRequest(ctx, http.MethodGet, q.appendTo(r.path), nil)
	if err != nil {
		return nil, fmt.Errorf("list %s failed: %w", r.path, err)
	}
	page, err := decodePage[T](body)
	if err != nil {
		return nil, fmt.Errorf("list %s failed: %w", r.path, err)
	}
	return page, nil
}

// Get fetches one record by id.
func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	var item T
	if err := r.client.do(ctx, http.MethodGet, r.itemPath(id), nil, &item); err != nil {
		return nil, fmt.Errorf("get %s%d/ failed: %w", r.path, id, err)
	}
	return &item, nil
}

// Create posts payload and returns the created record.
func (r *Resource[T]) Create(ctx context.Context, payload any) (*T, error) {
	var item T
	if err := r.client.do(ctx, http.MethodPost, r.path, payload, &item); err != nil {
		return nil, fmt.Errorf("create %s failed: %w", r.path, err)
	}
	return &item, nil
}

// Update puts payload over the record with the given id.
func (r *Resource[T]) Update(ctx context.Context, id int64, payload any) (*T, error) {
	var item T
	if err := r.client.do(ctx, http.MethodPut, r.itemPath(id), payload, &item); err != nil {
		return nil, fmt.Errorf("update %s%d/ failed: %w", r.path, id, err)
	}
	return &item, nil
}

// Delete removes the record with the given id.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	if err := r.client.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete %s%d/ failed: %w", r.path, id, err)
	}
	return nil
}

// Meta fetches the /<resource>/meta/ choice enumerations used to populate
// form selects.
func (r *Resource[T]) Meta(ctx context.Context) (map[string][]pkgapi.Choice, error) {
	var meta map[string][]pkgapi.Choice
	if err := r.client.do(ctx, http.MethodGet, r.path+"meta/", nil, &meta); err != nil {
		return nil, fmt.Errorf("meta %s failed: %w", r.path, err)
	}
	return meta, nil
}

// Choices fetches the flat /<resource>/choices/ enumeration. Unlike Meta
// this is a single value/label list, not a per-field map.
func (r *Resource[T]) Choices(ctx context.Context) ([]pkgapi.Choice, error) {
	body, err := r.client.doRequest(ctx, http.MethodGet, r.path+"choices/", nil)
	if err != nil {
		return nil, fmt.Errorf("choices %s failed: %w", r.path, err)
	}
	page, err := decodePage[pkgapi.Choice](body)
	if err != nil {
		return nil, fmt.Errorf("choices %s failed: %w", r.path, err)
	}
	return page.Items, nil
}

func (r *Resource[T]) itemPath(id int64) string {
	return fmt.Sprintf("%s%d/", r.path, id)
}

// ListNested reads a nested collection under a parent record, e.g.
// /formations/12/commentaires/. S is the nested read shape.
func ListNested[S any](ctx context.Context, c *Client, parentPath string, id int64, sub string, q ListQuery) (*Page[S], error) {
	path := fmt.Sprintf("%s%d/%s/", parentPath, id, sub)
	body, err := c.doRequest(ctx, http.MethodGet, q.appendTo(path), nil)
	if err != nil {
		return nil, fmt.Errorf("list %s failed: %w", path, err)
	}
	page, err := decodePage[S](body)
	if err != nil {
		return nil, fmt.Errorf("list %s failed: %w", path, err)
	}
	return page, nil
}
