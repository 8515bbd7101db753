package service

import (
	"context"
	"errors"
	"sync"

	"tnp-quickview/internal/dashboard/dto"
	"tnp-quickview/internal/entity"
)

var errBoom = errors.New("boom")

type fakeRemoteStore struct {
	mu          sync.Mutex
	data        map[string][]byte
	failing     bool
	subscribers map[string][]func([]byte)
	gets, sets  int
}

func newFakeRemoteStore() *fakeRemoteStore {
	return &fakeRemoteStore{
		data:        map[string][]byte{},
		subscribers: map[string][]func([]byte){},
	}
}

func (f *fakeRemoteStore) setFailing(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = v
}

func (f *fakeRemoteStore) Get(ctx context.Context, resource string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.failing {
		return nil, errBoom
	}
	return f.data[resource], nil
}

func (f *fakeRemoteStore) Set(ctx context.Context, resource string, payload []byte) error {
	f.mu.Lock()
	f.sets++
	if f.failing {
		f.mu.Unlock()
		return errBoom
	}
	f.data[resource] = payload
	subs := append([]func([]byte){}, f.subscribers[resource]...)
	f.mu.Unlock()

	for _, fn := range subs {
		fn(payload)
	}
	return nil
}

func (f *fakeRemoteStore) Subscribe(ctx context.Context, resource string, fn func([]byte)) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errBoom
	}
	f.subscribers[resource] = append(f.subscribers[resource], fn)
	idx := len(f.subscribers[resource]) - 1
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.subscribers[resource][idx] = func([]byte) {}
	}, nil
}

func (f *fakeRemoteStore) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errBoom
	}
	return nil
}

type fakeLocalStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	failing bool
}

func newFakeLocalStore() *fakeLocalStore {
	return &fakeLocalStore{data: map[string][]byte{}}
}

func (f *fakeLocalStore) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errBoom
	}
	return f.data[key], nil
}

func (f *fakeLocalStore) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errBoom
	}
	f.data[key] = append([]byte(nil), value...)
	return nil
}

type fakeNewsRepository struct {
	mu    sync.Mutex
	items []entity.NewsItem
	err   error
	calls int
}

func (f *fakeNewsRepository) FetchNews(ctx context.Context) ([]entity.NewsItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.items, f.err
}

func (f *fakeNewsRepository) Name() string { return "fake" }

type fakeYahooRepository struct {
	quotes map[string]dto.StockQuote
}

func (f *fakeYahooRepository) GetStockData(ctx context.Context, param dto.GetStockDataParam) (*dto.StockQuote, error) {
	q, ok := f.quotes[param.StockCode]
	if !ok {
		return nil, errBoom
	}
	if q.Code == "panic" {
		panic("bad payload")
	}
	return &q, nil
}

type fakeDigestRepository struct {
	text  string
	err   error
	calls int
}

func (f *fakeDigestRepository) Summarize(ctx context.Context, items []entity.NewsItem) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeArticleRepository struct{}

func (fakeArticleRepository) GetPreview(ctx context.Context, rawURL string) (*dto.ArticlePreviewResponse, error) {
	return &dto.ArticlePreviewResponse{URL: rawURL, Title: "title", Content: "content"}, nil
}
