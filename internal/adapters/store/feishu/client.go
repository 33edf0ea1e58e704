package feishu

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"baby-care-log/internal/platform/httpclient"
)

const DefaultBaseURL = "https://open.feishu.cn"

var (
	ErrNotConfigured = errors.New("feishu client not configured")
	ErrUpstream      = errors.New("feishu upstream error")
)

// Config del cliente Feishu (app self-build).
// AppID y AppSecret vienen de env vars en quien lo instancie.
type Config struct {
	AppID     string
	AppSecret string

	// Opcional: dominio del API. Vacío => open.feishu.cn.
	BaseURL string

	Timeout time.Duration

	// Opcional: transport inyectable (p.ej. para tests).
	Transport http.RoundTripper
}

// Client maneja el tenant_access_token y los requests autenticados
// contra el Open API. El token se cachea hasta cerca de su expiración.
type Client struct {
	appID     string
	appSecret string
	http      *httpclient.Client

	mu          sync.Mutex
	tenantToken string
	tokenExpiry time.Time

	now func() time.Time
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}

	var hc *httpclient.Client
	if cfg.Transport != nil {
		hc = httpclient.NewWithTransport(cfg.Timeout, cfg.Transport)
		hc.BaseURL = strings.TrimRight(base, "/")
	} else {
		var err error
		hc, err = httpclient.NewWithBaseURL(base, cfg.Timeout)
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		appID:     strings.TrimSpace(cfg.AppID),
		appSecret: strings.TrimSpace(cfg.AppSecret),
		http:      hc,
		now:       time.Now,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.appID != "" && c.appSecret != ""
}

// tenantTokenResponse es el envelope de /auth/v3/tenant_access_token/internal.
type tenantTokenResponse struct {
	Code              int    `json:"code"`
	Msg               string `json:"msg"`
	TenantAccessToken string `json:"tenant_access_token"`
	Expire            int    `json:"expire"` // segundos
}

// token devuelve un tenant_access_token vigente, renovándolo si hace falta.
// Margen de 5 minutos antes del vencimiento real.
func (c *Client) token(ctx context.Context) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tenantToken != "" && c.now().Before(c.tokenExpiry) {
		return c.tenantToken, nil
	}

	var out tenantTokenResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/open-apis/auth/v3/tenant_access_token/internal", nil, nil,
		map[string]string{
			"app_id":     c.appID,
			"app_secret": c.appSecret,
		}, &out)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if out.Code != 0 {
		return "", fmt.Errorf("%w: code=%d msg=%s", ErrUpstream, out.Code, out.Msg)
	}

	c.tenantToken = out.TenantAccessToken
	c.tokenExpiry = c.now().Add(time.Duration(out.Expire)*time.Second - 5*time.Minute)

	return c.tenantToken, nil
}

// do hace un request autenticado contra el Open API.
func (c *Client) do(ctx context.Context, method, path string, query map[string]string, in, out any) error {
	tok, err := c.token(ctx)
	if err != nil {
		return err
	}

	headers := map[string]string{
		"Authorization": "Bearer " + tok,
	}

	if err := c.http.DoJSON(ctx, method, path, query, headers, in, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}
