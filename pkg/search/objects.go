package search

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/searchkit/pkg/dispatch"
	"github.com/dmitrymomot/searchkit/pkg/query"
)

// AddObject stores obj under an identifier chosen by the engine.
func (i *Index) AddObject(ctx context.Context, obj any) (*Task, error) {
	var t Task
	if err := i.client.write(ctx, http.MethodPost, indexPath(i.name), obj, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// AddObjects stores every object in one batch.
func (i *Index) AddObjects(ctx context.Context, objects []any) (*BatchTask, error) {
	return i.Batch(ctx, operations(ActionAddObject, objects))
}

// SaveObject creates or replaces the record objectID.
func (i *Index) SaveObject(ctx context.Context, objectID string, obj any) (*Task, error) {
	if objectID == "" {
		return nil, ErrEmptyObjectID
	}
	var t Task
	if err := i.client.write(ctx, http.MethodPut, indexPath(i.name, url.PathEscape(objectID)), obj, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// SaveObjects creates or replaces records. Every object must carry an objectID.
func (i *Index) SaveObjects(ctx context.Context, objects []any) (*BatchTask, error) {
	if _, err := decodeObjectIDs(objects); err != nil {
		return nil, err
	}
	return i.Batch(ctx, operations(ActionUpdateObject, objects))
}

// PartialUpdateObject updates the given attributes of objectID. When create
// is false a missing record is left absent.
func (i *Index) PartialUpdateObject(ctx context.Context, objectID string, attrs any, create bool) (*Task, error) {
	if objectID == "" {
		return nil, ErrEmptyObjectID
	}
	path := indexPath(i.name, url.PathEscape(objectID), "partial")
	if !create {
		path += "?createIfNotExists=false"
	}
	var t Task
	if err := i.client.write(ctx, http.MethodPost, path, attrs, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// PartialUpdateObjects applies partial updates in one batch. Every object
// must carry an objectID.
func (i *Index) PartialUpdateObjects(ctx context.Context, objects []any, create bool) (*BatchTask, error) {
	if _, err := decodeObjectIDs(objects); err != nil {
		return nil, err
	}
	action := ActionPartialUpdateObject
	if !create {
		action = ActionPartialUpdateObjectNoCreate
	}
	return i.Batch(ctx, operations(action, objects))
}

// GetObject decodes the record objectID into out. With attributes set only
// those are retrieved.
func (i *Index) GetObject(ctx context.Context, objectID string, attributes []string, out any) error {
	if objectID == "" {
		return ErrEmptyObjectID
	}
	path := indexPath(i.name, url.PathEscape(objectID))
	if len(attributes) > 0 {
		path += "?attributes=" + url.QueryEscape(strings.Join(attributes, ","))
	}
	return i.client.read(ctx, path, out)
}

type getObjectsRequest struct {
	IndexName            string `json:"indexName"`
	ObjectID             string `json:"objectID"`
	AttributesToRetrieve string `json:"attributesToRetrieve,omitempty"`
}

// GetObjects fetches several records in one call and decodes
// {"results": [...]} into out. Missing records come back as null.
func (i *Index) GetObjects(ctx context.Context, objectIDs []string, attributes []string, out any) error {
	attrs := strings.Join(attributes, ",")
	reqs := make([]getObjectsRequest, 0, len(objectIDs))
	for _, id := range objectIDs {
		reqs = append(reqs, getObjectsRequest{IndexName: i.name, ObjectID: id, AttributesToRetrieve: attrs})
	}
	return i.client.exec(ctx, dispatch.Request{
		Method: http.MethodPost,
		Path:   "/1/indexes/*/objects",
		Body:   map[string]any{"requests": reqs},
		Class:  dispatch.Read,
	}, out)
}

// DeleteObject removes the record objectID.
func (i *Index) DeleteObject(ctx context.Context, objectID string) (*Task, error) {
	if objectID == "" {
		return nil, ErrEmptyObjectID
	}
	var t Task
	if err := i.client.write(ctx, http.MethodDelete, indexPath(i.name, url.PathEscape(objectID)), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteObjects removes records in one batch.
func (i *Index) DeleteObjects(ctx context.Context, objectIDs []string) (*BatchTask, error) {
	ops := make([]BatchOperation, 0, len(objectIDs))
	for _, id := range objectIDs {
		if id == "" {
			return nil, ErrEmptyObjectID
		}
		ops = append(ops, BatchOperation{Action: ActionDeleteObject, Body: map[string]string{"objectID": id}})
	}
	return i.Batch(ctx, ops)
}

// DeleteBy removes every record matching q. Only filters are honored; the
// query text is ignored by the engine.
func (i *Index) DeleteBy(ctx context.Context, q query.Query) (*Task, error) {
	var t Task
	if err := i.client.write(ctx, http.MethodPost, indexPath(i.name, "deleteByQuery"), paramsBody{Params: q.Encode()}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func operations(action BatchAction, objects []any) []BatchOperation {
	ops := make([]BatchOperation, 0, len(objects))
	for _, obj := range objects {
		ops = append(ops, BatchOperation{Action: action, Body: obj})
	}
	return ops
}
