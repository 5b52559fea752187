package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
)

const createOrderPath = "/orders/create/"

// エラー本文はこの長さまでしか持たない
const maxErrorBody = 512

// 注文APIが2xx以外を返した
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("orders api: status %d: %s", e.Status, e.Body)
}

// ORDERS_API_URL が未設定
var ErrNotConfigured = errors.New("orders api is not configured")

// 外部の注文APIのHTTPクライアント
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

func (c *Client) CreateOrder(ctx context.Context, req model.CreateOrderRequest, idempotencyKey string) (model.Order, error) {
	if c.baseURL == "" {
		return model.Order{}, ErrNotConfigured
	}

	body, err := json.Marshal(req)
	if err != nil {
		return model.Order{}, fmt.Errorf("encode order: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+createOrderPath, bytes.NewReader(body))
	if err != nil {
		return model.Order{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if idempotencyKey != "" {
		httpReq.Header.Set("X-Idempotency-Key", idempotencyKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return model.Order{}, fmt.Errorf("post order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return model.Order{}, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	var order model.Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return model.Order{}, fmt.Errorf("decode order: %w", err)
	}
	return order, nil
}
