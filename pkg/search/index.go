package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrymomot/searchkit/pkg/browse"
	"github.com/dmitrymomot/searchkit/pkg/dispatch"
	"github.com/dmitrymomot/searchkit/pkg/facets"
	"github.com/dmitrymomot/searchkit/pkg/query"
)

// Index is a handle on one index. It holds no state besides its name.
type Index struct {
	name   string
	client *Client
}

func (i *Index) Name() string {
	return i.name
}

type paramsBody struct {
	Params string `json:"params"`
}

// Search runs q against the index.
func (i *Index) Search(ctx context.Context, q query.Query) (*SearchResult, error) {
	var res SearchResult
	if err := i.SearchRaw(ctx, q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SearchRaw runs q and decodes the full answer into out.
func (i *Index) SearchRaw(ctx context.Context, q query.Query, out any) error {
	return i.client.exec(ctx, dispatch.Request{
		Method:  http.MethodPost,
		Path:    indexPath(i.name, "query"),
		Body:    paramsBody{Params: q.Encode()},
		Class:   dispatch.Read,
		Timeout: dispatch.Search,
	}, out)
}

// SearchForFacetValues returns the values of facet matching text, restricted
// to the records matching q.
func (i *Index) SearchForFacetValues(ctx context.Context, facet, text string, q query.Query) (*FacetSearchResult, error) {
	q = q.Clone()
	q.FacetQuery = text
	var res FacetSearchResult
	err := i.client.exec(ctx, dispatch.Request{
		Method:  http.MethodPost,
		Path:    indexPath(i.name, "facets", url.PathEscape(facet), "query"),
		Body:    paramsBody{Params: q.Encode()},
		Class:   dispatch.Read,
		Timeout: dispatch.Search,
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Browse starts a full scan of the records matching q.
func (i *Index) Browse(ctx context.Context, q query.Query) (*browse.Cursor, error) {
	return i.BrowseFrom(ctx, q, "")
}

// BrowseFrom resumes a scan at cursor. An empty cursor starts from the beginning.
func (i *Index) BrowseFrom(ctx context.Context, q query.Query, cursor string) (*browse.Cursor, error) {
	opts := []browse.Option{browse.WithRequestOptions(requestOptionsFromContext(ctx))}
	if cursor != "" {
		opts = append(opts, browse.From(cursor))
	}
	return browse.New(ctx, i.client.dispatcher, i.name, q, opts...)
}

// SearchDisjunctiveFaceting runs q with refinements, where values of the
// disjunctive facets are OR-ed and counted as if their own facet was unrefined.
func (i *Index) SearchDisjunctiveFaceting(ctx context.Context, q query.Query, disjunctive []string, refinements facets.Refinements) (*facets.Result, error) {
	return facets.Search(ctx, i.client, i.name, q, disjunctive, refinements)
}

// Clear removes every record, keeping settings.
func (i *Index) Clear(ctx context.Context) (*Task, error) {
	var t Task
	if err := i.client.write(ctx, http.MethodPost, indexPath(i.name, "clear"), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes the index.
func (i *Index) Delete(ctx context.Context) (*Task, error) {
	return i.client.DeleteIndex(ctx, i.name)
}

// GetSettings returns the index configuration.
func (i *Index) GetSettings(ctx context.Context) (Settings, error) {
	var s Settings
	if err := i.client.read(ctx, indexPath(i.name, "settings")+"?getVersion=2", &s); err != nil {
		return nil, err
	}
	return s, nil
}

// SetSettings updates the index configuration. With forwardToReplicas the
// change is applied to replica indices as well.
func (i *Index) SetSettings(ctx context.Context, settings Settings, forwardToReplicas bool) (*Task, error) {
	path := indexPath(i.name, "settings") + "?forwardToReplicas=" + strconv.FormatBool(forwardToReplicas)
	var t Task
	if err := i.client.write(ctx, http.MethodPut, path, settings, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Batch sends operations to this index in one call.
func (i *Index) Batch(ctx context.Context, ops []BatchOperation) (*BatchTask, error) {
	var t BatchTask
	if err := i.client.write(ctx, http.MethodPost, indexPath(i.name, "batch"), batchRequest{Requests: ops}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// WaitTask blocks until the task is published on this index.
func (i *Index) WaitTask(ctx context.Context, taskID int64) error {
	return i.client.waitTask(ctx, i.name, taskID)
}

// TaskStatus returns the current state of a task.
func (i *Index) TaskStatus(ctx context.Context, taskID int64) (TaskStatus, error) {
	var st TaskStatus
	err := i.client.read(ctx, indexPath(i.name, "task", strconv.FormatInt(taskID, 10)), &st)
	return st, err
}

func decodeObjectIDs(objects []any) ([]string, error) {
	ids := make([]string, 0, len(objects))
	for n, obj := range objects {
		raw, err := json.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", n, err)
		}
		var head struct {
			ObjectID string `json:"objectID"`
		}
		if err := json.Unmarshal(raw, &head); err != nil || head.ObjectID == "" {
			return nil, fmt.Errorf("object %d: %w", n, ErrMissingObjectID)
		}
		ids = append(ids, head.ObjectID)
	}
	return ids, nil
}
