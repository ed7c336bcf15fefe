package profileservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с ProfileService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ProfileService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetDefaultAdvisor возвращает первый профиль с ролью admin.
// Он используется как консультант по умолчанию, если клиент не выбрал другого
func (c *Client) GetDefaultAdvisor(ctx context.Context) (*Profile, error) {
	query := url.Values{}
	query.Set("role", RoleAdmin)
	query.Set("limit", "1")

	profiles, err := c.listProfiles(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(profiles) == 0 {
		c.log.Warn("GetDefaultAdvisor: profile service returned no admin profiles")
		return nil, ErrAdvisorNotFound
	}

	advisor := profiles[0]
	c.log.Info("GetDefaultAdvisor: resolved default advisor id=%s", advisor.ID)
	return &advisor, nil
}

// GetProfilesByIDs возвращает профили по списку ID, ключ результата - ID профиля.
// Неизвестные ID в результат не попадают
func (c *Client) GetProfilesByIDs(ctx context.Context, ids []string) (map[string]Profile, error) {
	result := make(map[string]Profile, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))

	profiles, err := c.listProfiles(ctx, query)
	if errors.Is(err, ErrAdvisorNotFound) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	for _, p := range profiles {
		result[p.ID] = p
	}
	c.log.Info("GetProfilesByIDs: resolved %d of %d profiles", len(result), len(ids))
	return result, nil
}

// listProfiles выполняет GET /internal/profiles с фильтром query
func (c *Client) listProfiles(ctx context.Context, query url.Values) ([]Profile, error) {
	endpoint := fmt.Sprintf("%s/internal/profiles?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %w", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrAdvisorNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var payload profilesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrInvalidResponse, err)
	}

	return payload.Profiles, nil
}
