package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scbirs/order-explorer/internal/store"
)

func TestRunnerDeliversSingleResult(t *testing.T) {
	_, settings, client := pagedShop(t)
	r := NewRunnerWithClient(client)

	done, err := r.Start(context.Background(), settings)
	require.NoError(t, err)

	select {
	case result := <-done:
		require.NoError(t, result.Err)
		assert.Len(t, result.Orders, 3)
		assert.Equal(t, 1, result.Dropped)
	case <-time.After(5 * time.Second):
		t.Fatal("fetch never finished")
	}
	assert.False(t, r.Busy())

	// The runner is reusable once idle.
	done, err = r.Start(context.Background(), settings)
	require.NoError(t, err)
	result := <-done
	require.NoError(t, result.Err)
	assert.Len(t, result.Orders, 3)
}

func TestRunnerRejectsConcurrentStart(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		fmt.Fprint(w, "[]")
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	settings := store.Settings{Host: strings.TrimPrefix(srv.URL, "https://"), ConsumerKey: "ck", ConsumerSecret: "cs"}
	r := NewRunnerWithClient(srv.Client())

	done, err := r.Start(context.Background(), settings)
	require.NoError(t, err)
	assert.True(t, r.Busy())

	_, err = r.Start(context.Background(), settings)
	require.ErrorIs(t, err, ErrFetchInFlight)

	release <- struct{}{}
	result := <-done
	require.NoError(t, result.Err)
	assert.Empty(t, result.Orders)
}

func TestRunnerErrorResult(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	settings := store.Settings{Host: strings.TrimPrefix(srv.URL, "https://"), ConsumerKey: "ck", ConsumerSecret: "cs"}
	r := NewRunnerWithClient(srv.Client())

	done, err := r.Start(context.Background(), settings)
	require.NoError(t, err)
	result := <-done
	require.Error(t, result.Err)
	assert.True(t, IsAuthError(result.Err))
	// All or nothing: no partial dataset on error.
	assert.Nil(t, result.Orders)
}

func TestRunnerProgressIdle(t *testing.T) {
	r := NewRunner()
	page, total := r.Progress()
	assert.Equal(t, 0, page)
	assert.Equal(t, 0, total)
}

func TestRunnerProgressDuringFetch(t *testing.T) {
	const pages = 40
	var srv *httptest.Server
	srv = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 0 {
			page = 1
		}
		w.Header().Set("X-WP-TotalPages", strconv.Itoa(pages))
		if page < pages {
			w.Header().Set("Link", fmt.Sprintf(`<%s/wp-json/wc/v2/orders?page=%d>; rel="next"`, srv.URL, page+1))
		}
		fmt.Fprintf(w, "[%s]", orderDoc(page, "processing", page*10))
	}))
	t.Cleanup(srv.Close)

	settings := store.Settings{Host: strings.TrimPrefix(srv.URL, "https://"), ConsumerKey: "ck", ConsumerSecret: "cs"}
	r := NewRunnerWithClient(srv.Client())

	done, err := r.Start(context.Background(), settings)
	require.NoError(t, err)

	// Poll progress concurrently with the crawl, the way the
	// foreground renders a progress line. The page count only advances.
	stop := make(chan struct{})
	polled := make(chan struct{})
	go func() {
		defer close(polled)
		last := 0
		for {
			select {
			case <-stop:
				return
			default:
			}
			page, total := r.Progress()
			if page == 0 && total == 0 {
				// Idle reset: the runner may finish (and zero its
				// progress) before the stop signal reaches us.
				continue
			}
			assert.GreaterOrEqual(t, page, last)
			assert.True(t, total == 0 || total == pages)
			last = page
		}
	}()

	select {
	case result := <-done:
		require.NoError(t, result.Err)
		assert.Len(t, result.Orders, pages)
	case <-time.After(10 * time.Second):
		t.Fatal("fetch never finished")
	}
	close(stop)
	<-polled

	// Back to idle: progress reads as zeros again.
	page, total := r.Progress()
	assert.Equal(t, 0, page)
	assert.Equal(t, 0, total)
}

func TestRunnerAbandonedResultDoesNotBlock(t *testing.T) {
	_, settings, client := pagedShop(t)
	r := NewRunnerWithClient(client)

	_, err := r.Start(context.Background(), settings)
	require.NoError(t, err)

	// Never read the channel; the runner must still go idle.
	require.Eventually(t, func() bool { return !r.Busy() }, 5*time.Second, 10*time.Millisecond)

	done, err := r.Start(context.Background(), settings)
	require.NoError(t, err)
	result := <-done
	require.NoError(t, result.Err)
}
