// Package client provides an HTTP client for the goldbook API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "goldbook/internal/errors"
	"goldbook/internal/models"
)

// User is the account returned by the auth endpoints.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// LoginResult is a signed-in user and their bearer token.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// TransactionList is a user's stored records as the server sent them.
// CorruptRecords counts rows the server itself could not return.
type TransactionList struct {
	Transactions   []json.RawMessage `json:"transactions"`
	CorruptRecords int               `json:"corrupt_records"`
}

// Client communicates with the goldbook API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", "", body, http.StatusOK, &result, "logging in"); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListTransactions fetches every stored record for the token's user. Records
// are returned undecoded so the caller can skip the ones it cannot read.
func (c *Client) ListTransactions(ctx context.Context, token string) (*TransactionList, error) {
	var result TransactionList
	if err := c.do(ctx, http.MethodGet, "/api/v1/ledger/transactions", token, nil, http.StatusOK, &result, "listing transactions"); err != nil {
		return nil, err
	}
	return &result, nil
}

// AppendTransaction stores tx and returns the ID the server assigned.
func (c *Client) AppendTransaction(ctx context.Context, token string, tx models.Transaction) (string, error) {
	var result struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/ledger/transactions", token, tx, http.StatusCreated, &result, "appending transaction"); err != nil {
		return "", err
	}
	if result.ID == "" {
		return "", fmt.Errorf("appending transaction: response carried no id")
	}
	return result.ID, nil
}

// LatestPrice fetches the most recent gold price observation.
func (c *Client) LatestPrice(ctx context.Context, token string) (*models.GoldPrice, error) {
	var result struct {
		Price models.GoldPrice `json:"price"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/prices/latest", token, nil, http.StatusOK, &result, "fetching latest price"); err != nil {
		return nil, err
	}
	return &result.Price, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in any, wantStatus int, out any, action string) error {
	var body io.Reader
	if in != nil {
		jsonBody, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: marshaling request: %w", action, err)
		}
		body = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%s: %w", action, decodeError(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", action, err)
	}
	return nil
}

// decodeError turns an error response into an *AppError when the body
// carries one, so callers can match it against the sentinels.
func decodeError(resp *http.Response) error {
	var payload struct {
		Error apperrors.AppError `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload); err != nil || payload.Error.Code == "" {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	appErr := payload.Error
	appErr.StatusCode = resp.StatusCode
	return &appErr
}
