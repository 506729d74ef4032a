// Package rod implements offprint.Fetcher with Chrome browser automation.
// The browser runs headful by default: the operator logs in by hand once,
// and all page fetches afterwards ride the authenticated session.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
	"github.com/mlapinski/offprint"
)

// DefaultFetchTimeout bounds a single page navigation.
const DefaultFetchTimeout = 30 * time.Second

// DefaultSettleDelay lets client-side rendering finish after load before
// the DOM is read.
const DefaultSettleDelay = 3 * time.Second

// Ensure Fetcher implements offprint.Fetcher at compile time.
var _ offprint.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML through a Chrome session. New pages are
// created through the stealth layer to keep the site's bot detection from
// invalidating the human-established login.
type Fetcher struct {
	browser     *rod.Browser
	launch      *launcher.Launcher
	timeout     time.Duration
	settleDelay time.Duration
	headless    bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the navigation timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithSettleDelay sets the post-load render delay.
func WithSettleDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settleDelay = d
	}
}

// WithHeadless runs the browser headless. Only useful when the profile
// already carries an authenticated session; a human cannot log in to a
// headless browser.
func WithHeadless() Option {
	return func(f *Fetcher) {
		f.headless = true
	}
}

// NewFetcher launches Chrome and connects to it.
// Close must be called when the Fetcher is no longer needed.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		settleDelay: DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().Headless(f.headless).Leakless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launch = l
	return f, nil
}

// Fetch navigates to the URL in a fresh stealth page and returns the
// rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := stealth.Page(f.browser)
	if err != nil {
		return "", fmt.Errorf("create page: %w", err)
	}
	defer page.Close()

	navCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	page = page.Context(navCtx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	// Client-side rendering keeps mutating the DOM after load.
	select {
	case <-navCtx.Done():
		return "", navCtx.Err()
	case <-time.After(f.settleDelay):
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	return html, nil
}

// AwaitLogin opens the login page in a visible tab and blocks until the
// context is done or done is closed, whichever comes first. The operator
// completes authentication by hand; the tab stays open so the session
// cookie lands in this browser.
func (f *Fetcher) AwaitLogin(ctx context.Context, loginURL string, done <-chan struct{}) error {
	page, err := stealth.Page(f.browser)
	if err != nil {
		return fmt.Errorf("create login page: %w", err)
	}
	defer page.Close()

	if err := page.Context(ctx).Navigate(loginURL); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	err := f.browser.Close()
	if f.launch != nil {
		f.launch.Cleanup()
	}
	return err
}
