package fmd

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newMemoryClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	c, err := New(context.Background(), append([]Option{WithMemory()}, opts...)...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func textBrief() Brief {
	return Brief{
		InputMode:    ModeText,
		CategoryHint: "logo",
		TextPrompt:   "minimal blue coffee logo",
	}
}

func TestNew_NoStore(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no store configured")
	}
}

func TestCreateStore_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  clientConfig
	}{
		{"unknown driver", clientConfig{driver: "unknown", addrs: []string{"localhost:1234"}}},
		{"valkey without address", clientConfig{driver: "valkey"}},
		{"redis with empty address", clientConfig{driver: "redis", addrs: []string{""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := createStore(&tt.cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRecommend(t *testing.T) {
	c := newMemoryClient(t)

	products, err := c.Recommend(context.Background(), textBrief(), SearchParams{Providers: []string{"mock"}, Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) == 0 || len(products) > 5 {
		t.Fatalf("products = %d, want 1..5", len(products))
	}
	for i := 1; i < len(products); i++ {
		if products[i].Score > products[i-1].Score {
			t.Errorf("products not sorted: [%d]=%f > [%d]=%f", i, products[i].Score, i-1, products[i-1].Score)
		}
	}
	if products[0].Title == "" || products[0].ProductURL == "" {
		t.Errorf("first product incomplete: %+v", products[0])
	}
}

func TestStepByStep(t *testing.T) {
	ctx := context.Background()
	c := newMemoryClient(t)

	sessionID, err := c.CreateSession(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	designID, err := c.SubmitDesign(ctx, sessionID, textBrief())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := c.Search(ctx, designID, SearchParams{}); !errors.Is(err, ErrProfileNotReady) {
		t.Fatalf("search before process: err = %v, want ErrProfileNotReady", err)
	}

	st, err := c.Process(ctx, designID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.Done() || st.Progress != 1 {
		t.Fatalf("status = %+v, want done", st)
	}
	if st.DominantColor != "#2563eb" {
		t.Errorf("dominant color = %q, want #2563eb", st.DominantColor)
	}
	if st.ReferenceImageURL == "" || len(st.Keywords) == 0 {
		t.Errorf("status missing profile output: %+v", st)
	}

	again, err := c.Process(ctx, designID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.JobID != st.JobID {
		t.Errorf("reprocess created job %s, want reuse of %s", again.JobID, st.JobID)
	}

	if _, err := c.Search(ctx, designID, SearchParams{Providers: []string{"mock", "api"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, err := c.History(ctx, sessionID, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("history = %d items, want 1", len(items))
	}
	item := items[0]
	if item.DesignID != designID || item.Status != "processed" {
		t.Errorf("item = %+v", item)
	}
	if len(item.TopProducts) == 0 || len(item.TopProducts) > 3 {
		t.Errorf("top products = %d, want 1..3", len(item.TopProducts))
	}
}

func TestSubmitDesign_Errors(t *testing.T) {
	ctx := context.Background()
	c := newMemoryClient(t)

	if _, err := c.SubmitDesign(ctx, "missing", textBrief()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("unknown session: err = %v, want ErrSessionNotFound", err)
	}

	sessionID, err := c.CreateSession(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.SubmitDesign(ctx, sessionID, Brief{InputMode: ModeText}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty brief: err = %v, want ErrInvalidInput", err)
	}
}

func TestSearch_InvalidParams(t *testing.T) {
	c := newMemoryClient(t)
	_, err := c.Search(context.Background(), "d1", SearchParams{Limit: -1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestProvidersAndHealth(t *testing.T) {
	c := newMemoryClient(t)

	if got := strings.Join(c.Providers(), ","); got != "api,mock" {
		t.Errorf("providers = %s, want api,mock", got)
	}
	if withCrawl := newMemoryClient(t, WithCrawl()); len(withCrawl.Providers()) != 3 {
		t.Errorf("providers with crawl = %v", withCrawl.Providers())
	}

	h := c.Health(context.Background())
	if h.Status != "ok" {
		t.Errorf("health = %+v, want ok", h)
	}
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("ping: %v", err)
	}
}

func TestObserver_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newMemoryClient(t, WithPrometheus(reg))
	ctx := context.Background()

	if _, err := c.CreateSession(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _ = c.SubmitDesign(ctx, "missing", textBrief())

	m := c.obs.metrics
	if got := testutil.ToFloat64(m.operations.WithLabelValues("create_session", "ok")); got != 1 {
		t.Errorf("create_session ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("submit_design", "error")); got != 1 {
		t.Errorf("submit_design error = %v, want 1", got)
	}

	// a second client on the same registry reuses the collectors
	other := newMemoryClient(t, WithPrometheus(reg))
	if other.obs.metrics.operations != m.operations {
		t.Error("expected collectors to be reused")
	}
}

func TestObserver_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := newMemoryClient(t, WithLogger(logger))

	_, _ = c.SubmitDesign(context.Background(), "missing", textBrief())

	out := buf.String()
	if !strings.Contains(out, "fmd operation failed") || !strings.Contains(out, "op=submit_design") {
		t.Errorf("log output = %q", out)
	}
}

func TestObserver_Nil(t *testing.T) {
	var o *observer
	o.observe("noop", time.Now(), errors.New("x"))
	o.products(3)
}

func TestDefaultProviders(t *testing.T) {
	tests := []struct {
		name string
		cfg  clientConfig
		want string
	}{
		{"no keys", clientConfig{}, "mock"},
		{"stock key", clientConfig{stock: StockKeys{Pixabay: "pb"}}, "mock,api"},
		{"crawl enabled", clientConfig{crawl: true}, "mock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strings.Join(defaultProviders(&tt.cfg), ","); got != tt.want {
				t.Errorf("defaultProviders() = %s, want %s", got, tt.want)
			}
		})
	}
}
