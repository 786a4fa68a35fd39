package search

import (
	"encoding/json"
)

// Task is the acknowledgement of an asynchronous write. Use WaitTask to block
// until it is applied.
type Task struct {
	TaskID    int64  `json:"taskID"`
	ObjectID  string `json:"objectID,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
	DeletedAt string `json:"deletedAt,omitempty"`
}

// BatchTask acknowledges a batch. Multi-index batches report one task per index.
type BatchTask struct {
	TaskID    json.RawMessage `json:"taskID"`
	ObjectIDs []string        `json:"objectIDs,omitempty"`
}

// Tasks returns the per-index task ids. Single-index batches are keyed by
// the given default index name.
func (b BatchTask) Tasks(defaultIndex string) (map[string]int64, error) {
	var single int64
	if err := json.Unmarshal(b.TaskID, &single); err == nil {
		return map[string]int64{defaultIndex: single}, nil
	}
	var multi map[string]int64
	if err := json.Unmarshal(b.TaskID, &multi); err != nil {
		return nil, err
	}
	return multi, nil
}

// TaskStatus is the state of an asynchronous write.
type TaskStatus struct {
	Status      string `json:"status"`
	PendingTask bool   `json:"pendingTask"`
}

// Published reports whether the task has been applied.
func (s TaskStatus) Published() bool {
	return s.Status == "published"
}

// SearchResult is one query answer. Hits are kept raw so callers can decode
// them into their own record types.
type SearchResult struct {
	Hits             []json.RawMessage         `json:"hits"`
	NbHits           int                       `json:"nbHits"`
	Page             int                       `json:"page"`
	NbPages          int                       `json:"nbPages"`
	HitsPerPage      int                       `json:"hitsPerPage"`
	ProcessingTimeMS int                       `json:"processingTimeMS"`
	Query            string                    `json:"query"`
	Params           string                    `json:"params"`
	Index            string                    `json:"index,omitempty"`
	Facets           map[string]map[string]int `json:"facets,omitempty"`
	ExhaustiveNbHits bool                      `json:"exhaustiveNbHits"`
}

// FacetHit is one value returned by a facet value search.
type FacetHit struct {
	Value       string `json:"value"`
	Highlighted string `json:"highlighted"`
	Count       int    `json:"count"`
}

type FacetSearchResult struct {
	FacetHits        []FacetHit `json:"facetHits"`
	ProcessingTimeMS int        `json:"processingTimeMS"`
}

// IndexInfo describes one index of the application.
type IndexInfo struct {
	Name                 string `json:"name"`
	CreatedAt            string `json:"createdAt"`
	UpdatedAt            string `json:"updatedAt"`
	Entries              int    `json:"entries"`
	DataSize             int64  `json:"dataSize"`
	FileSize             int64  `json:"fileSize"`
	LastBuildTimeS       int    `json:"lastBuildTimeS"`
	NumberOfPendingTasks int    `json:"numberOfPendingTasks"`
	PendingTask          bool   `json:"pendingTask"`
}

type ListIndexesResult struct {
	Items   []IndexInfo `json:"items"`
	NbPages int         `json:"nbPages"`
}

// Settings is the index configuration as returned by the engine.
type Settings map[string]any

// BatchAction names the operation of one batch entry.
type BatchAction string

const (
	ActionAddObject                   BatchAction = "addObject"
	ActionUpdateObject                BatchAction = "updateObject"
	ActionPartialUpdateObject         BatchAction = "partialUpdateObject"
	ActionPartialUpdateObjectNoCreate BatchAction = "partialUpdateObjectNoCreate"
	ActionDeleteObject                BatchAction = "deleteObject"
	ActionDelete                      BatchAction = "delete"
	ActionClear                       BatchAction = "clear"
)

// BatchOperation is one entry of a batch. IndexName is only used by
// multi-index batches sent through Client.Batch.
type BatchOperation struct {
	Action    BatchAction `json:"action"`
	IndexName string      `json:"indexName,omitempty"`
	Body      any         `json:"body,omitempty"`
}

type batchRequest struct {
	Requests []BatchOperation `json:"requests"`
}
