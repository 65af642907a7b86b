package push

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
)

const (
	HostProduction = "https://api.push.apple.com"
	HostSandbox    = "https://api.sandbox.push.apple.com"
)

// Options — параметры батча
type Options struct {
	Host        string
	Topic       string
	Delay       time.Duration
	Concurrency int
	Timeout     time.Duration
}

// Client отправляет тихие уведомления Wallet через HTTP/2 шлюз APNs.
// Регистрации не трогает: что делать с 410, решает вызывающий.
type Client struct {
	opts    Options
	newHTTP func() *http.Client
	logger  zerolog.Logger
}

// NewClient аутентифицируется в APNs тем же сертификатом, которым подписываются пассы
func NewClient(cert tls.Certificate, opts Options, logger zerolog.Logger) *Client {
	timeout := opts.Timeout
	return NewClientWithHTTP(func() *http.Client {
		tr := &http2.Transport{
			TLSClientConfig: &tls.Config{
				Certificates: []tls.Certificate{cert},
				MinVersion:   tls.VersionTLS12,
			},
			ReadIdleTimeout: 15 * time.Second,
			PingTimeout:     5 * time.Second,
		}
		return &http.Client{Transport: tr, Timeout: timeout}
	}, opts, logger)
}

// NewClientWithHTTP — для собственного транспорта (тесты, прокси)
func NewClientWithHTTP(newHTTP func() *http.Client, opts Options, logger zerolog.Logger) *Client {
	if opts.Host == "" {
		opts.Host = HostProduction
	}
	opts.Host = strings.TrimRight(opts.Host, "/")
	return &Client{opts: opts, newHTTP: newHTTP, logger: logger.With().Str("component", "push").Logger()}
}

// Push отправляет по уведомлению на каждый токен. Один HTTP/2 клиент живёт ровно один батч.
// Ошибка соединения (TLS, DNS, таймаут) прерывает весь батч; HTTP-статусы изолированы по токенам.
func (c *Client) Push(ctx context.Context, tokens []string) (BatchResult, error) {
	if len(tokens) == 0 {
		return BatchResult{}, nil
	}
	hc := c.newHTTP()
	defer hc.CloseIdleConnections()

	if c.opts.Concurrency > 1 {
		return c.pushPooled(ctx, hc, tokens)
	}

	results := make([]Result, 0, len(tokens))
	for i, tok := range tokens {
		if i > 0 && c.opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return BatchResult{Results: failRest(results, tokens[i:], ctx.Err())}, ctx.Err()
			case <-time.After(c.opts.Delay):
			}
		}
		res, err := c.send(ctx, hc, tok)
		if err != nil {
			c.logger.Error().Err(err).Int("sent", i).Int("total", len(tokens)).Msg("push batch aborted")
			return BatchResult{Results: failRest(results, tokens[i:], err)}, fmt.Errorf("push connection: %w", err)
		}
		results = append(results, res)
	}
	return BatchResult{Results: results}, nil
}

func (c *Client) pushPooled(ctx context.Context, hc *http.Client, tokens []string) (BatchResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]Result, len(tokens))
	var (
		mu       sync.Mutex
		firstErr error
	)
	pool := newWorkerPool(c.opts.Concurrency)
	for i, tok := range tokens {
		pool.submit(func() {
			res, err := c.send(ctx, hc, tok)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				mu.Unlock()
				res = Result{Token: tok, Err: err}
			}
			results[i] = res
		})
	}
	pool.shutdown()

	if firstErr != nil {
		c.logger.Error().Err(firstErr).Int("total", len(tokens)).Msg("push batch aborted")
		return BatchResult{Results: results}, fmt.Errorf("push connection: %w", firstErr)
	}
	return BatchResult{Results: results}, nil
}

// failRest помечает неотправленные токены ошибкой, чтобы в Results был каждый токен батча
func failRest(results []Result, rest []string, err error) []Result {
	for _, tok := range rest {
		results = append(results, Result{Token: tok, Err: err})
	}
	return results
}

type apnsError struct {
	Reason string `json:"reason"`
}

func (c *Client) send(ctx context.Context, hc *http.Client, token string) (Result, error) {
	endpoint := c.opts.Host + "/3/device/" + url.PathEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader([]byte("{}")))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apns-topic", c.opts.Topic)
	req.Header.Set("apns-push-type", "background")
	req.Header.Set("apns-priority", "5")

	resp, err := hc.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))

	res := Result{Token: token, Status: resp.StatusCode, APNsID: resp.Header.Get("apns-id")}
	if resp.StatusCode != http.StatusOK {
		var ae apnsError
		if json.Unmarshal(body, &ae) == nil {
			res.Reason = ae.Reason
		}
		c.logger.Warn().Int("status", res.Status).Str("reason", res.Reason).Str("token", shortToken(token)).Msg("push rejected")
	} else {
		c.logger.Debug().Str("token", shortToken(token)).Str("apns_id", res.APNsID).Msg("push sent")
	}
	return res, nil
}

func shortToken(t string) string {
	if len(t) <= 8 {
		return t
	}
	return t[:8] + "…"
}
