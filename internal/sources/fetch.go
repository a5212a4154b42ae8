package sources

import (
	"bytes"
	"context"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"powerrank/internal"
	"powerrank/internal/config"
)

type ClientOptions struct {
	Timeout   time.Duration
	UserAgent string
	RPS       int
	// Bypass installs the Cloudflare-friendly transport. Off in tests that
	// point at a local server.
	Bypass bool
}

func OptionsFromConfig(cfg config.Config) ClientOptions {
	return ClientOptions{
		Timeout:   time.Duration(cfg.FetchTimeoutMs) * time.Millisecond,
		UserAgent: cfg.UserAgent,
		RPS:       cfg.FetchRPS,
		Bypass:    true,
	}
}

// Client fetches article pages. One attempt per URL with a fixed timeout;
// callers decide whether a failed URL is worth another run.
type Client struct {
	http    *resty.Client
	limiter *RateLimiter
}

func NewClient(opts ClientOptions) *Client {
	client := resty.New()
	if opts.Bypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	if opts.UserAgent != "" {
		client.SetHeader("user-agent", opts.UserAgent)
	}
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	client.SetRetryCount(0)

	return &Client{http: client, limiter: NewRateLimiter(opts.RPS)}
}

func (c *Client) Fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	if err := c.limiter.WaitTurn(ctx); err != nil {
		return nil, internal.FetchError(err, "fetch %s", rawURL)
	}

	res, err := c.http.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, internal.FetchError(err, "fetch %s", rawURL)
	}
	if !res.IsSuccess() {
		return nil, internal.FetchError(nil, "fetch %s: status %d", rawURL, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, internal.FetchError(err, "read document %s", rawURL)
	}
	return doc, nil
}
