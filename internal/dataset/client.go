package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://datasets-server.huggingface.co"

// The datasets-server caps /rows requests at 100 rows per call
const maxPageSize = 100

// Options configures a datasets-server client
type Options struct {
	// Dataset is the hub dataset name, e.g. "TheFinAI/Fino1_Reasoning_Path_FinQA"
	Dataset string
	// Config is the dataset config name (default "default")
	Config string
	// Split is the split name (default "train")
	Split string
	// Token is an optional hub token for gated datasets
	Token string
	// BaseURL overrides the datasets-server endpoint, used in tests
	BaseURL string
	// Timeout for a single HTTP request (default 60s)
	Timeout time.Duration
}

// Client reads dataset rows from the Hugging Face datasets-server,
// which exposes any hub dataset over HTTP with random access by row
// index. Rows are fetched in pages transparently.
type Client struct {
	dataset string
	config  string
	split   string
	token   string
	baseURL string
	hc      *http.Client
}

// NewClient creates a datasets-server client for one dataset split
func NewClient(opts Options) *Client {
	if opts.Config == "" {
		opts.Config = "default"
	}
	if opts.Split == "" {
		opts.Split = "train"
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &Client{
		dataset: opts.Dataset,
		config:  opts.Config,
		split:   opts.Split,
		token:   opts.Token,
		baseURL: opts.BaseURL,
		hc:      &http.Client{Timeout: opts.Timeout},
	}
}

type sizeResponse struct {
	Size struct {
		Dataset struct {
			NumRows int `json:"num_rows"`
		} `json:"dataset"`
		Splits []struct {
			Config  string `json:"config"`
			Split   string `json:"split"`
			NumRows int    `json:"num_rows"`
		} `json:"splits"`
	} `json:"size"`
}

type rowsResponse struct {
	Rows []struct {
		RowIdx int    `json:"row_idx"`
		Row    Record `json:"row"`
	} `json:"rows"`
}

// NumRows returns the total number of rows in the configured split
func (c *Client) NumRows(ctx context.Context) (int, error) {
	query := url.Values{"dataset": {c.dataset}}

	var resp sizeResponse
	if err := c.get(ctx, "/size", query, &resp); err != nil {
		return 0, err
	}

	for _, s := range resp.Size.Splits {
		if s.Config == c.config && s.Split == c.split {
			return s.NumRows, nil
		}
	}
	if resp.Size.Dataset.NumRows > 0 {
		return resp.Size.Dataset.NumRows, nil
	}
	return 0, fmt.Errorf("dataset %s has no size information for config %q split %q", c.dataset, c.config, c.split)
}

// Rows fetches length rows starting at offset, in source order
func (c *Client) Rows(ctx context.Context, offset, length int) ([]Record, error) {
	if length <= 0 {
		return nil, nil
	}

	records := make([]Record, 0, length)
	for fetched := 0; fetched < length; {
		page := length - fetched
		if page > maxPageSize {
			page = maxPageSize
		}

		query := url.Values{
			"dataset": {c.dataset},
			"config":  {c.config},
			"split":   {c.split},
			"offset":  {strconv.Itoa(offset + fetched)},
			"length":  {strconv.Itoa(page)},
		}

		var resp rowsResponse
		if err := c.get(ctx, "/rows", query, &resp); err != nil {
			return nil, err
		}
		if len(resp.Rows) == 0 {
			return nil, fmt.Errorf("dataset %s returned no rows at offset %d", c.dataset, offset+fetched)
		}

		for _, r := range resp.Rows {
			records = append(records, r.Row)
		}
		fetched += len(resp.Rows)
	}

	if len(records) > length {
		records = records[:length]
	}
	return records, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	reqURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("datasets-server request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("datasets-server returned %d for %s: %s", resp.StatusCode, reqURL, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode datasets-server response: %w", err)
	}
	return nil
}
