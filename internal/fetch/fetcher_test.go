package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scbirs/order-explorer/internal/store"
)

func orderDoc(id int, status string, itemID int) string {
	return fmt.Sprintf(`{
		"id": %d,
		"status": %q,
		"customer_note": "",
		"total": "10.00",
		"billing": {"first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.com"},
		"shipping": {"first_name": "", "last_name": ""},
		"line_items": [
			{"id": %d, "quantity": 1, "name": "Mug", "sku": "MUG", "price": 10,
			 "product_id": 1, "variation_id": 0, "meta_data": []}
		]
	}`, id, status, itemID)
}

// pagedShop serves a three page order listing linked by rel="next".
func pagedShop(t *testing.T) (*httptest.Server, store.Settings, *http.Client) {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wp-json/wc/v2/orders", r.URL.Path)
		require.Equal(t, "ck", r.URL.Query().Get("consumer_key"))
		require.Equal(t, "cs", r.URL.Query().Get("consumer_secret"))

		page := r.URL.Query().Get("page")
		if page == "" {
			page = "1"
		}
		w.Header().Set("X-WP-TotalPages", "3")
		switch page {
		// The remote echoes the credential query into the next links.
		case "1":
			w.Header().Set("Link", fmt.Sprintf(`<%s/wp-json/wc/v2/orders?consumer_key=ck&consumer_secret=cs&page=2>; rel="next"`, srv.URL))
			fmt.Fprintf(w, "[%s]", orderDoc(1, "processing", 10))
		case "2":
			w.Header().Set("Link", fmt.Sprintf(`<%s/wp-json/wc/v2/orders?consumer_key=ck&consumer_secret=cs&page=3>; rel="next"`, srv.URL))
			fmt.Fprintf(w, "[%s,%s]", orderDoc(2, "pending", 20), orderDoc(3, "completed", 30))
		case "3":
			fmt.Fprintf(w, "[%s]", orderDoc(4, "on-hold", 40))
		default:
			t.Fatalf("unexpected page %q", page)
		}
	}))
	t.Cleanup(srv.Close)

	settings := store.Settings{
		Host:           strings.TrimPrefix(srv.URL, "https://"),
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
	}
	return srv, settings, srv.Client()
}

func TestFetcherStepsThroughPages(t *testing.T) {
	_, settings, client := pagedShop(t)
	f := NewWithClient(settings, client)
	ctx := context.Background()

	require.False(t, f.Done())
	require.NoError(t, f.Step(ctx))
	page, total := f.Progress()
	assert.Equal(t, 1, page)
	assert.Equal(t, 3, total)
	require.False(t, f.Done())

	require.NoError(t, f.Step(ctx))
	require.False(t, f.Done())

	require.NoError(t, f.Step(ctx))
	// No next link on the last page, the crawl is exhausted.
	assert.True(t, f.Done())

	orders := f.Orders()
	require.Len(t, orders, 3)
	assert.Equal(t, 1, orders[0].ID)
	assert.Equal(t, 2, orders[1].ID)
	assert.Equal(t, 4, orders[2].ID)
	// The completed order was dropped by status policy.
	assert.Equal(t, 1, f.Dropped())

	assert.Error(t, f.Step(ctx), "stepping an exhausted fetcher must fail")
}

func TestFetcherAuthError(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	settings := store.Settings{Host: strings.TrimPrefix(srv.URL, "https://"), ConsumerKey: "ck", ConsumerSecret: "cs"}
	f := NewWithClient(settings, srv.Client())

	err := f.Step(context.Background())
	require.Error(t, err)
	assert.True(t, IsAuthError(err))

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
}

func TestFetcherServerErrorHidesCredentials(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	settings := store.Settings{Host: strings.TrimPrefix(srv.URL, "https://"), ConsumerKey: "ck", ConsumerSecret: "supersecret"}
	f := NewWithClient(settings, srv.Client())

	err := f.Step(context.Background())
	require.Error(t, err)
	assert.False(t, IsAuthError(err))

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusInternalServerError, netErr.StatusCode)
	assert.NotContains(t, err.Error(), "supersecret")
}

func TestFetcherParseError(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"not": "an array"}`)
	}))
	t.Cleanup(srv.Close)

	settings := store.Settings{Host: strings.TrimPrefix(srv.URL, "https://"), ConsumerKey: "ck", ConsumerSecret: "cs"}
	f := NewWithClient(settings, srv.Client())

	err := f.Step(context.Background())
	require.Error(t, err)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestFetcherMalformedRecordAborts(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": "not-a-number"}]`)
	}))
	t.Cleanup(srv.Close)

	settings := store.Settings{Host: strings.TrimPrefix(srv.URL, "https://"), ConsumerKey: "ck", ConsumerSecret: "cs"}
	f := NewWithClient(settings, srv.Client())

	err := f.Step(context.Background())
	require.Error(t, err)
	var malformed *MalformedRecordError
	assert.ErrorAs(t, err, &malformed)
}

func TestFetcherContextCancellation(t *testing.T) {
	_, settings, client := pagedShop(t)
	f := NewWithClient(settings, client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := f.Step(ctx)
	require.Error(t, err)
	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestOrdersURL(t *testing.T) {
	settings := store.Settings{Host: "shop.example.com", ConsumerKey: "ck", ConsumerSecret: "cs"}
	u := OrdersURL(settings)
	assert.Equal(t, "https://shop.example.com/wp-json/wc/v2/orders?consumer_key=ck&consumer_secret=cs", u)
}

func TestProbe(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "[]")
	}))
	t.Cleanup(srv.Close)

	good := store.Settings{Host: strings.TrimPrefix(srv.URL, "https://"), ConsumerKey: "ck", ConsumerSecret: "cs"}
	assert.True(t, ProbeWithClient(context.Background(), good, srv.Client()))

	bad := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(bad.Close)
	denied := store.Settings{Host: strings.TrimPrefix(bad.URL, "https://"), ConsumerKey: "ck", ConsumerSecret: "cs"}
	assert.False(t, ProbeWithClient(context.Background(), denied, bad.Client()))
}

func TestDescribeProgress(t *testing.T) {
	assert.Equal(t, "page 2/7", DescribeProgress(2, 7))
	assert.Equal(t, "page 3", DescribeProgress(3, 0))
}
