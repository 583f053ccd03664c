// Package resolve expands short map links by following their HTTP redirects.
package resolve

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

// Options configures the Resolver.
type Options struct {
	UserAgent    string
	Timeout      time.Duration // 0 waits indefinitely
	MaxRedirects int
	Client       *http.Client // optional; redirect policy is always overridden
}

// Result is the outcome of resolving one short URL. Exactly one of URL and
// Err is set.
type Result struct {
	URL string
	Err *Error
}

// OK reports whether resolution succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Resolver issues one redirect-following request per short URL.
type Resolver struct {
	client *http.Client
	opts   Options
}

// New creates a Resolver with the given options.
func New(opts Options) *Resolver {
	if opts.UserAgent == "" {
		opts.UserAgent = "maplink/1.0"
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = 10
	}

	client := &http.Client{}
	if opts.Client != nil {
		c := *opts.Client
		client = &c
	}
	client.Timeout = opts.Timeout
	maxRedirects := opts.MaxRedirects
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects: %w", len(via), errTooManyRedirects)
		}
		return nil
	}

	return &Resolver{client: client, opts: opts}
}

// Resolve sends a HEAD request for shortURL and returns the URL of the final
// response in the redirect chain. The response status is not inspected. No
// retry is attempted.
func (r *Resolver) Resolve(ctx context.Context, shortURL string) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, shortURL, nil)
	if err != nil {
		return Result{Err: &Error{URL: shortURL, Kind: KindRequest, Err: eris.Wrap(err, "create head request")}}
	}
	req.Header.Set("User-Agent", r.opts.UserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return Result{Err: &Error{URL: shortURL, Kind: classify(err), Err: eris.Wrap(err, "head request")}}
	}
	defer resp.Body.Close() //nolint:errcheck

	return Result{URL: resp.Request.URL.String()}
}
