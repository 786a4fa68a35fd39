package search

import (
	"context"
	"net/url"
	"strconv"
)

// LogType filters GetLogs.
type LogType string

const (
	LogAll   LogType = "all"
	LogQuery LogType = "query"
	LogBuild LogType = "build"
	LogError LogType = "error"
)

// DefaultLogsLength is the number of entries returned when none is asked.
const DefaultLogsLength = 10

type LogsOptions struct {
	Offset int
	Length int
	Type   LogType
}

// LogEntry is one logged API call.
type LogEntry struct {
	Timestamp        string `json:"timestamp"`
	Method           string `json:"method"`
	AnswerCode       string `json:"answer_code"`
	QueryBody        string `json:"query_body"`
	Answer           string `json:"answer"`
	URL              string `json:"url"`
	IP               string `json:"ip"`
	QueryHeaders     string `json:"query_headers"`
	SHA1             string `json:"sha1"`
	NbAPICalls       string `json:"nb_api_calls,omitempty"`
	ProcessingTimeMS string `json:"processing_time_ms,omitempty"`
	Index            string `json:"index,omitempty"`
	QueryNbHits      string `json:"query_nb_hits,omitempty"`
}

// GetLogs returns the latest API calls, newest first.
func (c *Client) GetLogs(ctx context.Context, opts LogsOptions) ([]LogEntry, error) {
	if opts.Length <= 0 {
		opts.Length = DefaultLogsLength
	}
	if opts.Type == "" {
		opts.Type = LogAll
	}
	params := url.Values{}
	params.Set("offset", strconv.Itoa(max(opts.Offset, 0)))
	params.Set("length", strconv.Itoa(opts.Length))
	params.Set("type", string(opts.Type))

	var res struct {
		Logs []LogEntry `json:"logs"`
	}
	if err := c.read(ctx, "/1/logs?"+params.Encode(), &res); err != nil {
		return nil, err
	}
	return res.Logs, nil
}
