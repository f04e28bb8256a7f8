package api

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/swoga/netgear-exporter/model"
)

const (
	userAgent      = "netgear-exporter/1.0"
	settingsPath   = "/currentsetting.htm"
	soapPath       = "/soap/server_sa/"
	defaultTimeout = 10 * time.Second
)

// encryptedPorts are the control ports served over TLS. Everything else is
// plain HTTP.
var encryptedPorts = map[int]bool{
	443:  true,
	5555: true,
}

// Options tune a Client. The zero value is usable.
type Options struct {
	// HTTPClient replaces the client's own transport. When set, Timeout is
	// ignored and Close leaves it alone.
	HTTPClient *http.Client
	// Timeout bounds every exchange made through the owned transport.
	Timeout time.Duration
	// Logger receives request and response debug lines.
	Logger *zerolog.Logger
}

// Client drives the SOAP management API of one router. It discovers the
// control port lazily on the first call that needs it and keeps that session
// state for its lifetime. A Client is safe for concurrent use.
type Client struct {
	host string
	http *http.Client
	own  bool
	log  zerolog.Logger

	mu          sync.Mutex
	discovered  bool
	port        int
	loginMethod int

	closeOnce sync.Once
}

// New returns a Client for the router at host, a name or address without
// scheme or port.
func New(host string, opts *Options) *Client {
	if opts == nil {
		opts = &Options{}
	}
	c := &Client{
		host: host,
		log:  zerolog.Nop(),
	}
	if opts.Logger != nil {
		c.log = *opts.Logger
	}
	if opts.HTTPClient != nil {
		c.http = opts.HTTPClient
		return c
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	// Routers serve the encrypted control port with a self-signed
	// certificate, so verification stays off.
	c.http = &http.Client{
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 2,
			TLSClientConfig:     &tls.Config{InsecureSkipVerify: true},
		},
		Timeout: timeout,
	}
	c.own = true
	return c
}

// Close releases the owned transport. It is safe to call more than once; a
// Client built around a caller-supplied http.Client is left untouched.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		if c.own {
			c.http.CloseIdleConnections()
		}
	})
}

// session returns the discovered control port and login method, running the
// settings fetch first if this client has none yet. Concurrent first calls
// serialize here; a failed discovery leaves the client undiscovered so a
// later call tries again.
func (c *Client) session(ctx context.Context) (port, loginMethod int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.discovered {
		settings, err := c.fetchCurrentSetting(ctx)
		if err != nil {
			return 0, 0, &DiscoveryError{Err: err}
		}
		c.port = settings.SOAPPort
		c.loginMethod = settings.LoginMethod
		c.discovered = true
		c.log.Debug().
			Int("port", c.port).
			Int("login_method", c.loginMethod).
			Msg("discovered control port")
	}
	return c.port, c.loginMethod, nil
}

// GetCurrentSetting fetches and decodes the settings page. The first
// successful fetch also primes the session state used by the SOAP calls.
func (c *Client) GetCurrentSetting(ctx context.Context) (*model.CurrentSettings, error) {
	settings, err := c.fetchCurrentSetting(ctx)
	if err != nil {
		return nil, &DiscoveryError{Err: err}
	}
	c.mu.Lock()
	if !c.discovered {
		c.port = settings.SOAPPort
		c.loginMethod = settings.LoginMethod
		c.discovered = true
	}
	c.mu.Unlock()
	return settings, nil
}

// fetchCurrentSetting gets the settings page over plain HTTP. The page
// predates the SOAP endpoint and always lives on port 80.
func (c *Client) fetchCurrentSetting(ctx context.Context) (*model.CurrentSettings, error) {
	const op = "GetCurrentSetting"
	status, page, err := c.request(ctx, op, http.MethodGet, "http://"+c.host+settingsPath, nil, "")
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &ProtocolError{Op: op, StatusCode: status}
	}
	return model.DecodeCurrentSettings(settingsFields(page))
}

// settingsFields splits the Key=Value lines of the settings page. The page
// carries no structure guarantees, so anything that is not a pair is
// skipped.
func settingsFields(page string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(page, "\n") {
		line = strings.TrimRight(line, "\r")
		key, value, ok := strings.Cut(line, "=")
		if !ok || key == "" {
			continue
		}
		fields[key] = value
	}
	return fields
}

// controlURL composes the SOAP endpoint for a discovered port.
func controlURL(host string, port int) string {
	scheme := "http"
	if encryptedPorts[port] {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d%s", scheme, host, port, soapPath)
}

// request runs one HTTP exchange and returns status and body text. Transport
// failures come back as TransportError tagged with op.
func (c *Client) request(ctx context.Context, op, method, url string, headers map[string]string, body string) (int, string, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, "", &TransportError{Op: op, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/xml")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	c.log.Debug().Str("method", method).Str("url", url).Msg("send request")
	res, err := c.http.Do(req)
	if err != nil {
		return 0, "", &TransportError{Op: op, Err: err}
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, "", &TransportError{Op: op, Err: err}
	}
	c.log.Debug().Str("url", url).Int("status", res.StatusCode).Msg("got response")
	return res.StatusCode, string(data), nil
}

// callAction posts one SOAP action to the control port and returns the
// flattened response fields plus the parsed body for callers that need the
// deeper structure. A present non-success ResponseCode fails the call.
func (c *Client) callAction(ctx context.Context, a action, body string) (map[string]string, *xmlNode, error) {
	port, _, err := c.session(ctx)
	if err != nil {
		return nil, nil, err
	}
	op := a.String()
	headers := map[string]string{"SOAPAction": soapAction(a)}
	status, text, err := c.request(ctx, op, http.MethodPost, controlURL(c.host, port), headers, envelope(body))
	if err != nil {
		return nil, nil, err
	}
	if status < 200 || status > 299 {
		return nil, nil, &ProtocolError{Op: op, StatusCode: status}
	}
	bodyNode, err := soapBody([]byte(text))
	if err != nil {
		return nil, nil, &ProtocolError{Op: op, Err: err}
	}
	fields := bodyFields(bodyNode)
	if code, ok := fields["ResponseCode"]; ok && code != "" && !successResponseCode(code) {
		return nil, nil, &ProtocolError{Op: op, Code: code}
	}
	return fields, bodyNode, nil
}

// configAction brackets a configuration-changing action between the session
// open and close calls. The close call runs even when the inner action
// failed, and the inner error is the one reported.
func (c *Client) configAction(ctx context.Context, a action, body string) error {
	if _, _, err := c.callAction(ctx, actionConfigurationStarted, configurationStartedBody()); err != nil {
		return err
	}
	_, _, innerErr := c.callAction(ctx, a, body)
	_, _, closeErr := c.callAction(ctx, actionConfigurationFinished, configurationFinishedBody)
	if innerErr != nil {
		return innerErr
	}
	return closeErr
}
