// Package telegram is a minimal Bot API client: form-encoded POSTs,
// one bounded call per request, no retries.
package telegram

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mymmrac/telego"

	"github.com/tinyland-inc/idbot/pkg/bus"
	"github.com/tinyland-inc/idbot/pkg/config"
	"github.com/tinyland-inc/idbot/pkg/logger"
)

const (
	// longPollMargin keeps the HTTP deadline past Telegram's own long-poll wait.
	longPollMargin   = 5 * time.Second
	maxResponseBytes = 8 << 20
)

// APIResponse is the envelope every Bot API method returns.
type APIResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
}

type Client struct {
	baseURL        string // <api_base>/bot<token>
	http           *http.Client
	requestTimeout time.Duration
}

func NewClient(cfg config.TelegramConfig) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, config.ErrMissingToken
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", cfg.Proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	if cfg.InsecureSkipVerify {
		logger.WarnC("telegram", "TLS certificate verification is disabled")
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // explicit opt-in
	}

	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:        strings.TrimRight(cfg.APIBase, "/") + "/bot" + cfg.Token,
		http:           &http.Client{Transport: transport},
		requestTimeout: timeout,
	}, nil
}

// Call POSTs params to method and returns the decoded body of a 200 response.
// Any other outcome is a *TransportError, or a *DecodeError for an unreadable body.
func (c *Client) Call(
	ctx context.Context,
	method string,
	params map[string]string,
	timeout time.Duration,
) (*APIResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	form := make(url.Values, len(params))
	for k, v := range params {
		form.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &TransportError{Method: method, Err: redact(err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, Err: redact(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Method: method, StatusCode: resp.StatusCode, Err: redact(err)}
	}

	if resp.StatusCode != http.StatusOK {
		te := &TransportError{Method: method, StatusCode: resp.StatusCode}
		var apiResp APIResponse
		if json.Unmarshal(body, &apiResp) == nil {
			te.Description = apiResp.Description
		}
		return nil, te
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, &DecodeError{What: method + " response", Err: err}
	}
	return &apiResp, nil
}

func (c *Client) call(ctx context.Context, method string, params map[string]string, timeout time.Duration) (*APIResponse, error) {
	resp, err := c.Call(ctx, method, params, timeout)
	if err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, &TransportError{Method: method, StatusCode: http.StatusOK, Description: resp.Description}
	}
	return resp, nil
}

func (c *Client) SendMessage(ctx context.Context, reply bus.OutboundReply) error {
	params := map[string]string{
		"chat_id": strconv.FormatInt(reply.ChatID, 10),
		"text":    reply.Text,
	}
	if reply.ParseMode != "" {
		params["parse_mode"] = reply.ParseMode
	}
	_, err := c.call(ctx, "sendMessage", params, c.requestTimeout)
	return err
}

// SetWebhook registers webhookURL. An empty URL removes the webhook.
func (c *Client) SetWebhook(ctx context.Context, webhookURL, secretToken string) error {
	params := map[string]string{"url": webhookURL}
	if secretToken != "" {
		params["secret_token"] = secretToken
	}
	_, err := c.call(ctx, "setWebhook", params, c.requestTimeout)
	return err
}

// DeleteWebhook clears the webhook so getUpdates delivery works again.
func (c *Client) DeleteWebhook(ctx context.Context) error {
	return c.SetWebhook(ctx, "", "")
}

// GetUpdates long-polls for updates with update_id >= offset.
// timeout is Telegram's wait in seconds.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout int) ([]telego.Update, error) {
	params := map[string]string{
		"offset":  strconv.FormatInt(offset, 10),
		"timeout": strconv.Itoa(timeout),
	}

	resp, err := c.call(ctx, "getUpdates", params, time.Duration(timeout)*time.Second+longPollMargin)
	if err != nil {
		return nil, err
	}

	var updates []telego.Update
	if err := json.Unmarshal(resp.Result, &updates); err != nil {
		return nil, &DecodeError{What: "getUpdates result", Err: err}
	}
	return updates, nil
}

// GetMe returns the bot's own account.
func (c *Client) GetMe(ctx context.Context) (*telego.User, error) {
	resp, err := c.call(ctx, "getMe", nil, c.requestTimeout)
	if err != nil {
		return nil, err
	}

	var me telego.User
	if err := json.Unmarshal(resp.Result, &me); err != nil {
		return nil, &DecodeError{What: "getMe result", Err: err}
	}
	return &me, nil
}
