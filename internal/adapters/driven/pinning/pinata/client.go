// Package pinata provides a PinStore adapter backed by the Pinata pinning
// service and a public IPFS gateway.
package pinata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/medichain-labs/medichain-cli/internal/core/domain"
	"github.com/medichain-labs/medichain-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.PinStore = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "https://api.pinata.cloud"
	DefaultGatewayURL = "https://ipfs.io/ipfs/"

	DefaultPinTimeout   = 60 * time.Second
	DefaultFetchTimeout = 30 * time.Second

	// listPageLimit is the maximum page size the pin listing asks for.
	listPageLimit = 1000
)

// Config holds configuration for the Pinata client.
type Config struct {
	// APIKey is the Pinata API key (required).
	APIKey string

	// SecretKey is the Pinata secret API key (required).
	SecretKey string

	// BaseURL is the Pinata API base URL (default: https://api.pinata.cloud).
	BaseURL string

	// GatewayURL is the public content gateway used for fetches
	// (default: https://ipfs.io/ipfs/).
	GatewayURL string

	// Timeout is the pin/list request timeout (default: 60s).
	Timeout time.Duration

	// FetchTimeout is the gateway fetch timeout (default: 30s).
	FetchTimeout time.Duration
}

// Client provides pinning operations using the Pinata API.
type Client struct {
	client      *http.Client
	fetchClient *http.Client
	baseURL     string
	gatewayURL  string
	apiKey      string
	secretKey   string
}

// pinResponse is the pinFileToIPFS response format.
type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// pinListResponse is the data/pinList response format.
type pinListResponse struct {
	Rows []struct {
		IpfsPinHash string `json:"ipfs_pin_hash"`
		Metadata    struct {
			Name string `json:"name"`
		} `json:"metadata"`
	} `json:"rows"`
}

// NewClient creates a new Pinata client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("pinata: API key and secret key are required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.GatewayURL == "" {
		cfg.GatewayURL = DefaultGatewayURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultPinTimeout
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}

	return &Client{
		client:      &http.Client{Timeout: cfg.Timeout},
		fetchClient: &http.Client{Timeout: cfg.FetchTimeout},
		baseURL:     cfg.BaseURL,
		gatewayURL:  cfg.GatewayURL,
		apiKey:      cfg.APIKey,
		secretKey:   cfg.SecretKey,
	}, nil
}

// authenticate sets the Pinata key headers on a request.
func (c *Client) authenticate(req *http.Request) {
	req.Header.Set("pinata_api_key", c.apiKey)
	req.Header.Set("pinata_secret_api_key", c.secretKey)
}

// Pin uploads payload as a file named after the last path element of name,
// tagged with the full name in pin metadata so prefix listing finds it.
func (c *Client) Pin(ctx context.Context, name string, payload []byte) (string, error) {
	metadata, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return "", fmt.Errorf("marshal pin metadata: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	filePart, err := writer.CreateFormFile("file", path.Base(name))
	if err != nil {
		return "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := filePart.Write(payload); err != nil {
		return "", fmt.Errorf("write file part: %w", err)
	}
	if err := writer.WriteField("pinataMetadata", string(metadata)); err != nil {
		return "", fmt.Errorf("write metadata part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalise multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/pinning/pinFileToIPFS",
		&buf,
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authenticate(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pinata error (status %d): %s", resp.StatusCode, string(body))
	}

	var pinResp pinResponse
	if err := json.Unmarshal(body, &pinResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if pinResp.IpfsHash == "" {
		return "", fmt.Errorf("pinata: response carried no content identifier")
	}

	return pinResp.IpfsHash, nil
}

// List queries the pin listing for entries whose metadata name starts with
// prefix.
func (c *Client) List(ctx context.Context, prefix string) ([]driven.PinRecord, error) {
	query := url.Values{}
	query.Set("status", "pinned")
	query.Set("pageLimit", fmt.Sprint(listPageLimit))
	query.Set("metadata[name]", prefix)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/data/pinList?"+query.Encode(),
		http.NoBody,
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.authenticate(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("pinata error (status %d): %s", resp.StatusCode, string(body))
	}

	var listResp pinListResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	records := make([]driven.PinRecord, 0, len(listResp.Rows))
	for _, row := range listResp.Rows {
		records = append(records, driven.PinRecord{
			ContentID: row.IpfsPinHash,
			Name:      row.Metadata.Name,
		})
	}
	return records, nil
}

// Fetch retrieves a record from the public gateway. A non-200 response or a
// body that does not parse as an appointment record yields (nil, nil); only
// transport-level failures are errors.
func (c *Client) Fetch(ctx context.Context, contentID string) (*domain.PersistedAppointment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.gatewayURL+contentID, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.fetchClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var record domain.PersistedAppointment
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, nil
	}
	return &record, nil
}
