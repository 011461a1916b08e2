package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/netx"
	"github.com/dmitrijs2005/jobkeeper/internal/shared"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

const maxResponseBody = 1 << 20

// APIClient talks REST to the backend and pings its gRPC health service.
type APIClient struct {
	baseURL string
	http    *http.Client

	conn   *grpc.ClientConn
	health healthpb.HealthClient

	mu          sync.RWMutex
	accessToken string
}

var _ Client = (*APIClient)(nil)

// NewAPIClient builds a client for the backend at baseURL. When healthAddr is
// empty Ping falls back to GET /healthz.
func NewAPIClient(baseURL, healthAddr string, timeout time.Duration) (*APIClient, error) {
	c := &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}

	if healthAddr != "" {
		conn, err := grpc.NewClient(healthAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, fmt.Errorf("dial health %s: %w", healthAddr, err)
		}
		c.useHealthConn(conn)
	}
	return c, nil
}

func (c *APIClient) useHealthConn(conn *grpc.ClientConn) {
	c.conn = conn
	c.health = healthpb.NewHealthClient(conn)
}

func (c *APIClient) Close() error {
	c.http.CloseIdleConnections()
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *APIClient) Ping(ctx context.Context) error {
	if c.health == nil {
		var out shared.HealthResponse
		if err := c.do(ctx, http.MethodGet, "/healthz", nil, &out, false); err != nil {
			return err
		}
		if out.Status != "ok" {
			return ErrUnavailable
		}
		return nil
	}

	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return mapRPCError(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

func (c *APIClient) Register(ctx context.Context, username, password string) error {
	req := shared.CredentialsRequest{Username: username, Password: password}
	return c.do(ctx, http.MethodPost, "/api/auth/register", req, nil, false)
}

// Login exchanges credentials for an access token kept for later calls.
func (c *APIClient) Login(ctx context.Context, username, password string) error {
	req := shared.CredentialsRequest{Username: username, Password: password}

	var resp shared.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/token", req, &resp, false); err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return ErrUnauthorized
	}

	c.mu.Lock()
	c.accessToken = resp.AccessToken
	c.mu.Unlock()
	return nil
}

func (c *APIClient) LoggedIn() bool {
	return c.token() != ""
}

func (c *APIClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *APIClient) ListJobNotes(ctx context.Context, jobID string) ([]shared.JobNote, error) {
	var resp shared.JobNotesResponse
	if err := c.do(ctx, http.MethodGet, notesPath(jobID), nil, &resp, true); err != nil {
		return nil, err
	}
	if resp.Notes == nil {
		resp.Notes = []shared.JobNote{}
	}
	return resp.Notes, nil
}

func (c *APIClient) AddJobNote(ctx context.Context, jobID, text string) (shared.JobNote, error) {
	var resp shared.JobNoteResponse
	err := c.do(ctx, http.MethodPost, notesPath(jobID), shared.CreateJobNoteRequest{NoteText: text}, &resp, true)
	return resp.Note, err
}

func (c *APIClient) DeleteJobNote(ctx context.Context, jobID, noteID string) error {
	var resp shared.SuccessResponse
	if err := c.do(ctx, http.MethodDelete, notesPath(jobID)+"/"+url.PathEscape(noteID), nil, &resp, true); err != nil {
		return err
	}
	if !resp.Success {
		return &APIError{StatusCode: http.StatusOK, Message: "delete not acknowledged"}
	}
	return nil
}

func (c *APIClient) GetUploadURL(ctx context.Context, jobID, fileName, contentType string) (shared.UploadURLResponse, error) {
	var resp shared.UploadURLResponse
	req := shared.UploadURLRequest{FileName: fileName, ContentType: contentType}
	err := c.do(ctx, http.MethodPost, "/api/jobs/"+url.PathEscape(jobID)+"/attachments/upload-url", req, &resp, true)
	return resp, err
}

func (c *APIClient) GetDownloadURL(ctx context.Context, key string) (string, error) {
	var resp shared.DownloadURLResponse
	q := url.Values{"key": []string{key}}
	if err := c.do(ctx, http.MethodGet, "/api/attachments/download-url?"+q.Encode(), nil, &resp, true); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// UploadAttachment stores data in the object store and returns its key.
func (c *APIClient) UploadAttachment(ctx context.Context, jobID, fileName, contentType string, data []byte) (string, error) {
	u, err := c.GetUploadURL(ctx, jobID, fileName, contentType)
	if err != nil {
		return "", err
	}
	if err := netx.UploadToPresignedURL(ctx, c.http, u.URL, contentType, data); err != nil {
		return "", fmt.Errorf("upload %s: %w", fileName, err)
	}
	return u.Key, nil
}

func (c *APIClient) DownloadAttachment(ctx context.Context, key string) ([]byte, error) {
	u, err := c.GetDownloadURL(ctx, key)
	if err != nil {
		return nil, err
	}
	data, err := netx.DownloadFromPresignedURL(ctx, c.http, u)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", key, err)
	}
	return data, nil
}

func notesPath(jobID string) string {
	return "/api/jobs/" + url.PathEscape(jobID) + "/notes"
}

func (c *APIClient) do(ctx context.Context, method, path string, in, out any, auth bool) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if auth {
		token := c.token()
		if token == "" {
			return ErrUnauthorized
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func mapStatus(code int, body []byte) error {
	var e shared.ErrorResponse
	_ = json.Unmarshal(body, &e)

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		if e.Error != "" {
			return fmt.Errorf("%w: %s", ErrNotFound, e.Error)
		}
		return ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return &APIError{StatusCode: code, Message: e.Error}
	}
}

func mapRPCError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded, codes.NotFound:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
