package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/peterhellberg/link"

	"github.com/scbirs/order-explorer/internal/domain"
	"github.com/scbirs/order-explorer/internal/logging"
	"github.com/scbirs/order-explorer/internal/store"
)

// ordersPath is the orders collection endpoint on the remote shop.
const ordersPath = "/wp-json/wc/v2/orders"

// totalPagesHeader optionally carries the total page count. Used for
// progress reporting only, never for control flow.
const totalPagesHeader = "X-WP-Totalpages"

// Fetcher crawls the paginated order listing one page per step. The
// crawl follows rel="next" links until none is returned; it is finite
// and not restartable once done. Any failure aborts the whole fetch
// with no retry: the caller discards pages accumulated so far.
type Fetcher struct {
	client *http.Client
	queue  []string
	orders []domain.Order

	page       int
	totalPages int
	dropped    int
}

// New seeds a fetcher with the single initial listing URL built from
// the settings. No internal timeout is imposed; the transport's
// defaults apply and cancellation comes from the step context.
func New(settings store.Settings) *Fetcher {
	return NewWithClient(settings, http.DefaultClient)
}

// NewWithClient is New with an explicit HTTP client.
func NewWithClient(settings store.Settings, client *http.Client) *Fetcher {
	return &Fetcher{
		client: client,
		queue:  []string{OrdersURL(settings)},
	}
}

// OrdersURL builds the order listing URL for the given settings.
func OrdersURL(settings store.Settings) string {
	u := url.URL{
		Scheme: "https",
		Host:   settings.Host,
		Path:   ordersPath,
	}
	q := url.Values{}
	q.Set("consumer_key", settings.ConsumerKey)
	q.Set("consumer_secret", settings.ConsumerSecret)
	u.RawQuery = q.Encode()
	return u.String()
}

// Done reports whether the crawl is exhausted. True before the first
// step only when the fetcher was never seeded.
func (f *Fetcher) Done() bool {
	return len(f.queue) == 0
}

// Progress returns the number of pages fetched so far and the total
// page count, or 0 when the remote never announced one. Queryable
// between steps so a caller can render progress.
func (f *Fetcher) Progress() (page, total int) {
	return f.page, f.totalPages
}

// Orders returns the orders accumulated by the steps performed so far.
// Only meaningful once Done reports true; after a failed step the
// caller must discard the fetcher.
func (f *Fetcher) Orders() []domain.Order {
	return f.orders
}

// Dropped returns how many fetched orders the status policy excluded.
func (f *Fetcher) Dropped() int {
	return f.dropped
}

// Step fetches exactly one page and returns control to the caller.
// Calling Step on an exhausted fetcher is an error.
func (f *Fetcher) Step(ctx context.Context) error {
	if f.Done() {
		return errors.New("fetch already finished")
	}
	pageURL := f.queue[0]
	f.queue = f.queue[1:]
	f.page++
	// Error messages carry the URL without its query string; the
	// query embeds the credentials.
	safeURL := stripQuery(pageURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return &NetworkError{URL: safeURL, Err: err}
	}
	res, err := f.client.Do(req)
	if err != nil {
		return &NetworkError{URL: safeURL, Err: err}
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return &AuthError{StatusCode: res.StatusCode}
	case res.StatusCode < 200 || res.StatusCode > 299:
		return &NetworkError{URL: safeURL, StatusCode: res.StatusCode}
	}

	if v := res.Header.Get(totalPagesHeader); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.totalPages = n
		}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return &NetworkError{URL: safeURL, Err: err}
	}
	var records []map[string]any
	if err := json.Unmarshal(body, &records); err != nil {
		return &ParseError{Err: err}
	}

	for _, record := range records {
		order, err := assembleOrder(record)
		if err != nil {
			return err
		}
		if !domain.AcceptStatus(order.Status) {
			f.dropped++
			continue
		}
		f.orders = append(f.orders, order)
	}

	if next, ok := link.ParseResponse(res)["next"]; ok {
		f.queue = append(f.queue, next.URI)
	}

	logging.Debug("fetched page", "page", f.page, "total_pages", f.totalPages, "orders", len(f.orders))
	return nil
}

// Probe checks connectivity with the given settings: a single request
// against the listing endpoint, success meaning any 2xx answer. It
// reports nothing beyond reachability.
func Probe(ctx context.Context, settings store.Settings) bool {
	return ProbeWithClient(ctx, settings, http.DefaultClient)
}

// ProbeWithClient is Probe with an explicit HTTP client.
func ProbeWithClient(ctx context.Context, settings store.Settings, client *http.Client) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, OrdersURL(settings), nil)
	if err != nil {
		return false
	}
	res, err := client.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)
	return res.StatusCode >= 200 && res.StatusCode <= 299
}

// stripQuery removes the query string from a URL for display.
func stripQuery(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.RawQuery = ""
	return u.String()
}

// DescribeProgress renders a progress line like "page 2/7" for
// callers that only need text.
func DescribeProgress(page, total int) string {
	if total > 0 {
		return fmt.Sprintf("page %d/%d", page, total)
	}
	return fmt.Sprintf("page %d", page)
}
