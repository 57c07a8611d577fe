// Package slack is the thin transport layer towards the Slack Web API:
// outbound messages, the install OAuth handshake, webhook payload types and
// request signature verification. Dialog logic never lives here.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://slack.com/api"

type Client struct {
	BaseURL string
	client  *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type apiResponse struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// PostMessage delivers an outbound message to a channel using the team's
// bot token.
func (c *Client) PostMessage(ctx context.Context, token, channel string, msg OutboundMessage) error {
	payload := map[string]interface{}{
		"channel": channel,
		"text":    msg.Text,
	}
	if len(msg.Attachments) > 0 {
		payload["attachments"] = msg.Attachments
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat.postMessage", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var api apiResponse
	if err := json.Unmarshal(bodyBytes, &api); err != nil {
		return fmt.Errorf("slack chat.postMessage: %s", string(bodyBytes))
	}
	if !api.Ok {
		return fmt.Errorf("slack chat.postMessage: %s", api.Error)
	}
	return nil
}

// OAuthAccessResponse is the oauth.v2.access answer for an app install.
type OAuthAccessResponse struct {
	Ok          bool   `json:"ok"`
	Error       string `json:"error,omitempty"`
	AccessToken string `json:"access_token"`
	BotUserId   string `json:"bot_user_id"`
	Team        struct {
		Id   string `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	AuthedUser struct {
		Id string `json:"id"`
	} `json:"authed_user"`
}

// OAuthAccess exchanges an install authorization code for a bot token.
func (c *Client) OAuthAccess(ctx context.Context, clientId, clientSecret, code string) (*OAuthAccessResponse, error) {
	form := url.Values{}
	form.Set("client_id", clientId)
	form.Set("client_secret", clientSecret)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/oauth.v2.access", bytes.NewBufferString(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var access OAuthAccessResponse
	if err := json.NewDecoder(resp.Body).Decode(&access); err != nil {
		return nil, err
	}
	if !access.Ok {
		return nil, fmt.Errorf("slack oauth.v2.access: %s", access.Error)
	}
	return &access, nil
}

// UserProfile is the subset of users.info the assistant cares about.
type UserProfile struct {
	Id       string
	Name     string
	RealName string
	Email    string
	Timezone string
}

// UserInfo fetches a user's profile, used to enrich lazily provisioned
// user records.
func (c *Client) UserInfo(ctx context.Context, token, userId string) (*UserProfile, error) {
	endpoint := fmt.Sprintf("%s/users.info?user=%s", c.BaseURL, url.QueryEscape(userId))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var wire struct {
		Ok    bool   `json:"ok"`
		Error string `json:"error,omitempty"`
		User  struct {
			Id       string `json:"id"`
			Name     string `json:"name"`
			RealName string `json:"real_name"`
			Tz       string `json:"tz"`
			Profile  struct {
				Email string `json:"email"`
			} `json:"profile"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, err
	}
	if !wire.Ok {
		return nil, fmt.Errorf("slack users.info: %s", wire.Error)
	}
	return &UserProfile{
		Id:       wire.User.Id,
		Name:     wire.User.Name,
		RealName: wire.User.RealName,
		Email:    wire.User.Profile.Email,
		Timezone: wire.User.Tz,
	}, nil
}
