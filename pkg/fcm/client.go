// Package fcm provides a client for the Firebase Cloud Messaging
// HTTP v1 API, used as the push delivery gateway.
package fcm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	sendURLFormat = "https://fcm.googleapis.com/v1/projects/%s/messages:send"
	scope         = "https://www.googleapis.com/auth/firebase.messaging"
)

// Client represents an FCM v1 client authenticated with a service
// account.
type Client struct {
	endpoint string
	tokens   oauth2.TokenSource
	client   *http.Client
}

// NewClient creates an FCM client for the given Firebase project,
// minting bearer tokens from the service-account JSON credentials.
func NewClient(projectID string, credentials []byte) (*Client, error) {
	conf, err := google.JWTConfigFromJSON(credentials, scope)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}

	return &Client{
		endpoint: fmt.Sprintf(sendURLFormat, projectID),
		tokens:   conf.TokenSource(context.Background()),
		client:   &http.Client{},
	}, nil
}

// Message is one push message for one device token.
type Message struct {
	Token string            // recipient device token
	Title string            // short notification title
	Body  string            // short notification body
	Data  map[string]string // structured payload delivered to the app
}

type sendRequest struct {
	Message message `json:"message"`
}

type message struct {
	Token        string            `json:"token"`
	Notification notification      `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type sendResponse struct {
	Name string `json:"name"` // "projects/<project>/messages/<id>"
}

type errorResponse struct {
	Error struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// Send delivers one message to the gateway and returns the gateway
// message name. A gateway-level rejection (invalid or expired token,
// quota) comes back as an error; deadlines come from ctx.
func (c *Client) Send(ctx context.Context, msg Message) (string, error) {
	reqBody := sendRequest{
		Message: message{
			Token: msg.Token,
			Notification: notification{
				Title: msg.Title,
				Body:  msg.Body,
			},
			Data: msg.Data,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	tok, err := c.tokens.Token()
	if err != nil {
		return "", fmt.Errorf("mint access token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Status != "" {
			return "", fmt.Errorf("FCM delivery rejected: %s: %s", errResp.Error.Status, errResp.Error.Message)
		}
		return "", fmt.Errorf("FCM API error: %s", resp.Status)
	}

	var sendResp sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sendResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return sendResp.Name, nil
}
