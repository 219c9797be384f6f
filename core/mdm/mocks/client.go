package mocks

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of mdm.Client
type Client struct {
	mock.Mock
}

func (m *Client) GetDocument(ctx context.Context, url string) (*goquery.Document, error) {
	args := m.Called(ctx, url)
	if doc, ok := args.Get(0).(*goquery.Document); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetJSON(ctx context.Context, url string, v any) error {
	args := m.Called(ctx, url, v)
	return args.Error(0)
}

func (m *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	args := m.Called(ctx, url)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) BaseURL() string {
	args := m.Called()
	return args.String(0)
}
