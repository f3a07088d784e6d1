package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/apperrors"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/pkg/logger"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/pkg/utils"
)

const (
	searchPath          = "/search"
	defaultQueryTimeout = 30 * time.Second
	queryLogHeadLen     = 100
	errorBodySnippetLen = 512
)

// Client executes GraphQL queries against the Webex CC search API using a
// bearer token. Each call is bounded by the configured timeout; a timeout is a
// fatal QueryError for the run, never retried.
type Client struct {
	httpClient *http.Client
	searchURL  string
	token      string
	orgID      string
}

// NewClient builds a search API client for the given data center base URL.
func NewClient(baseURL, token, orgID string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		searchURL:  strings.TrimRight(baseURL, "/") + searchPath,
		token:      token,
		orgID:      orgID,
	}
}

// request is the GraphQL POST body.
type request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// response is the GraphQL envelope.
type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []responseError `json:"errors"`
}

type responseError struct {
	Message string `json:"message"`
}

// Execute posts one query to the search endpoint and returns the data tree.
// Endpoint-reported errors and transport failures both come back as a
// QueryError; the caller aborts the current pass either way.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	if variables == nil {
		variables = map[string]interface{}{}
	}
	body := utils.MustMarshalJSON(request{Query: query, Variables: variables})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.searchURL, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewQuery(err, "building search request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	logger.FromContext(ctx).Info("Executing GraphQL query",
		zap.String("org_id", c.orgID),
		zap.String("query_head", queryHead(query)),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewQuery(fmt.Errorf("%w: %w", apperrors.ErrTransport, err), "search request failed")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewQuery(fmt.Errorf("%w: reading response body: %w", apperrors.ErrTransport, err), "search request failed")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.FromContext(ctx).Error("Search endpoint rejected request",
			zap.Int("status", resp.StatusCode),
			zap.String("body", snippet(payload)),
		)
		return nil, apperrors.NewQuery(
			fmt.Errorf("%w: unexpected status %d", apperrors.ErrTransport, resp.StatusCode),
			"search endpoint rejected request")
	}

	var decoded response
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, apperrors.NewQuery(err, "decoding search response")
	}

	if len(decoded.Errors) > 0 {
		messages := make([]string, 0, len(decoded.Errors))
		for _, e := range decoded.Errors {
			messages = append(messages, e.Message)
		}
		logger.FromContext(ctx).Error("GraphQL errors", zap.Strings("errors", messages))
		return nil, apperrors.NewQuery(
			fmt.Errorf("%w: %s", apperrors.ErrGraphQL, strings.Join(messages, "; ")),
			"search query reported errors")
	}

	return decoded.Data, nil
}

// queryHead returns the first line-folded characters of a query for logging.
func queryHead(query string) string {
	head := strings.Join(strings.Fields(query), " ")
	if len(head) > queryLogHeadLen {
		head = head[:queryLogHeadLen]
	}
	return head
}

func snippet(body []byte) string {
	if len(body) > errorBodySnippetLen {
		body = body[:errorBodySnippetLen]
	}
	return string(body)
}
