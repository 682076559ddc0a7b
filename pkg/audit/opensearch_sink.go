package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/opensearch-project/opensearch-go/v2"
)

const defaultIndex = "glowdesk-audit"

// OpenSearchSink indexes audit events into an OpenSearch index, one document
// per event, keyed by the event id so replays stay idempotent.
type OpenSearchSink struct {
	client *opensearch.Client
	index  string
}

// NewOpenSearchSink creates a sink writing to the given index. An empty
// index name selects the default.
func NewOpenSearchSink(client *opensearch.Client, index string) *OpenSearchSink {
	if index == "" {
		index = defaultIndex
	}
	return &OpenSearchSink{client: client, index: index}
}

func (s *OpenSearchSink) Store(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	resp, err := s.client.Index(
		s.index,
		bytes.NewReader(body),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(event.ID.String()),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.IsError() {
		return fmt.Errorf("%w: index returned %s", ErrStoreFailed, resp.Status())
	}
	return nil
}
