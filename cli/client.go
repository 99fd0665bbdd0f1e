package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xiaot623/gogo/chat/internal/domain"
)

// APIError is an error envelope returned by the server.
type APIError struct {
	StatusCode int
	Kind       domain.Kind
	Message    string
	MessageID  string
}

func (e *APIError) Error() string {
	if e.MessageID != "" {
		return fmt.Sprintf("%s (%d): %s [message %s stored]", e.Kind, e.StatusCode, e.Message, e.MessageID)
	}
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Message)
}

// Client talks to the chat HTTP API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var envelope struct {
			Error struct {
				Message   string      `json:"message"`
				Kind      domain.Kind `json:"kind"`
				MessageID string      `json:"message_id"`
			} `json:"error"`
		}
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(data)}
		if json.Unmarshal(data, &envelope) == nil && envelope.Error.Kind != "" {
			apiErr.Kind = envelope.Error.Kind
			apiErr.Message = envelope.Error.Message
			apiErr.MessageID = envelope.Error.MessageID
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/v1/users", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/v1/users/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchUsers finds users by name or email.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]domain.PublicUser, error) {
	var users []domain.PublicUser
	if err := c.do(ctx, http.MethodGet, "/v1/users?search="+url.QueryEscape(query), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListChats lists the caller's chats.
func (c *Client) ListChats(ctx context.Context) ([]domain.ChatView, error) {
	var chats []domain.ChatView
	if err := c.do(ctx, http.MethodGet, "/v1/chats", nil, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// Direct opens the one-to-one chat with userID.
func (c *Client) Direct(ctx context.Context, userID string) (*domain.ChatView, error) {
	var chat domain.ChatView
	if err := c.do(ctx, http.MethodPost, "/v1/chats", domain.AccessChatRequest{UserID: userID}, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// CreateGroup creates a group chat.
func (c *Client) CreateGroup(ctx context.Context, name string, users []string) (*domain.ChatView, error) {
	var chat domain.ChatView
	req := domain.CreateGroupRequest{Name: name, Users: users}
	if err := c.do(ctx, http.MethodPost, "/v1/chats/group", req, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// Rename renames a chat.
func (c *Client) Rename(ctx context.Context, chatID, name string) (*domain.ChatView, error) {
	var chat domain.ChatView
	path := "/v1/chats/" + url.PathEscape(chatID) + "/name"
	if err := c.do(ctx, http.MethodPut, path, domain.RenameChatRequest{Name: name}, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// AddMember adds userID to a group chat.
func (c *Client) AddMember(ctx context.Context, chatID, userID string) (*domain.ChatView, error) {
	var chat domain.ChatView
	path := "/v1/chats/" + url.PathEscape(chatID) + "/members"
	if err := c.do(ctx, http.MethodPost, path, domain.MemberRequest{UserID: userID}, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// RemoveMember removes userID from a group chat.
func (c *Client) RemoveMember(ctx context.Context, chatID, userID string) (*domain.ChatView, error) {
	var chat domain.ChatView
	path := "/v1/chats/" + url.PathEscape(chatID) + "/members/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// Send posts a message.
func (c *Client) Send(ctx context.Context, chatID, content string) (*domain.MessageView, error) {
	var msg domain.MessageView
	path := "/v1/chats/" + url.PathEscape(chatID) + "/messages"
	if err := c.do(ctx, http.MethodPost, path, domain.SendMessageRequest{Content: content}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Messages lists a chat's messages.
func (c *Client) Messages(ctx context.Context, chatID string) ([]domain.MessageView, error) {
	var messages []domain.MessageView
	path := "/v1/chats/" + url.PathEscape(chatID) + "/messages"
	if err := c.do(ctx, http.MethodGet, path, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Events lists a chat's activity log.
func (c *Client) Events(ctx context.Context, chatID string) ([]domain.ChatEvent, error) {
	var resp struct {
		Events []domain.ChatEvent `json:"events"`
	}
	path := "/v1/chats/" + url.PathEscape(chatID) + "/events"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}
