package lichess

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// MaxUsersPerRequest is the server side cap on ids in one /api/users call.
const MaxUsersPerRequest = 300

const maxErrorMessageLen = 200

// Bot names on the listing page appear as "...?user=<name>#friend".
var botNamePattern = regexp.MustCompile(`user=(.*?)#friend`)

// Client talks to the Lichess HTTP API on behalf of one bot account.
type Client struct {
	baseURL   string
	authToken string
	http      *http.Client
	logger    *zerolog.Logger
}

func NewClient(baseURL string, authToken string, timeout time.Duration, logger *zerolog.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		authToken: authToken,
		http:      &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

// APIError is returned for any non-2xx response.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s returned status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
}

// GetBotNames scrapes the online bot listing page.
func (c *Client) GetBotNames(ctx context.Context) ([]string, error) {
	body, err := c.do(ctx, http.MethodGet, "/player/bots", "", nil, false)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to get bot listing page")
	}
	matches := botNamePattern.FindAllStringSubmatch(string(body), -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if m[1] == "" {
			continue
		}
		names = append(names, m[1])
	}
	c.logger.Debug().Msgf("Found %d bot names on the listing page", len(names))
	return names, nil
}

// GetUsersByID looks up the given accounts. Ids are sent in batches of MaxUsersPerRequest.
func (c *Client) GetUsersByID(ctx context.Context, ids ...string) ([]User, error) {
	users := make([]User, 0, len(ids))
	for start := 0; start < len(ids); start += MaxUsersPerRequest {
		end := start + MaxUsersPerRequest
		if end > len(ids) {
			end = len(ids)
		}
		body, err := c.do(ctx, http.MethodPost, "/api/users", "text/plain", strings.NewReader(strings.Join(ids[start:end], ",")), true)
		if err != nil {
			return nil, errors.Wrapf(err, "Unable to look up users %d-%d", start, end-1)
		}
		var batch []User
		if err := jsoniter.Unmarshal(body, &batch); err != nil {
			return nil, errors.Wrap(err, "Unable to parse user lookup response")
		}
		users = append(users, batch...)
	}
	return users, nil
}

// GetOngoingGames returns the games the account is currently playing.
func (c *Client) GetOngoingGames(ctx context.Context) ([]OngoingGame, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/account/playing", "", nil, true)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to get ongoing games")
	}
	var resp struct {
		NowPlaying []OngoingGame `json:"nowPlaying"`
	}
	if err := jsoniter.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "Unable to parse ongoing games response")
	}
	return resp.NowPlaying, nil
}

// CreateChallenge challenges username. The call returns as soon as the challenge exists;
// it does not wait for the opponent to accept.
func (c *Client) CreateChallenge(ctx context.Context, username string, req ChallengeRequest) (*Challenge, error) {
	p := joinURL("/api/challenge", url.PathEscape(username))
	body, err := c.do(ctx, http.MethodPost, p, "application/x-www-form-urlencoded", strings.NewReader(req.Form().Encode()), true)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to challenge %s", username)
	}
	var resp challengeResponse
	if err := jsoniter.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "Unable to parse challenge response")
	}
	return resp.normalize(), nil
}

func (c *Client) do(ctx context.Context, method string, p string, contentType string, payload io.Reader, auth bool) ([]byte, error) {
	u := joinURL(c.baseURL, p)
	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
	if method == http.MethodGet && strings.HasPrefix(p, "/api/") {
		req.Header.Set("Accept", "application/json")
	}

	c.logger.Debug().Msgf("%s %s", method, u)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read response body from %s", u)
	}
	if resp.StatusCode/100 != 2 {
		return nil, &APIError{
			Method:     method,
			URL:        u,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}
	return body, nil
}

// errorMessage pulls the "error" field out of an error payload, falling back to the raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Error interface{} `json:"error"`
	}
	if err := jsoniter.Unmarshal(body, &payload); err == nil && payload.Error != nil {
		switch v := payload.Error.(type) {
		case string:
			return v
		default:
			if b, err := jsoniter.Marshal(v); err == nil {
				return string(b)
			}
		}
	}
	return truncate(strings.TrimSpace(string(body)), maxErrorMessageLen)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func joinURL(base string, paths ...string) string {
	p := path.Join(paths...)
	return fmt.Sprintf("%s/%s", strings.TrimRight(base, "/"), strings.TrimLeft(p, "/"))
}
