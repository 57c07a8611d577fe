package entity

import "time"

// GoogleCredentials is the OAuth token set linked to a user after login.
type GoogleCredentials struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	TokenType    string     `json:"token_type,omitempty"`
	Scope        string     `json:"scope,omitempty"`
	Expiry       *time.Time `json:"expiry,omitempty"`
}

// UserRecord is the cached identity of a Slack user. Credentials stay nil
// until the Google login flow completes.
type UserRecord struct {
	Id          string // transport user id, team suffix stripped
	TeamId      string
	FullName    string
	Name        string
	Email       string
	Timezone    string // IANA name, e.g. "Europe/Copenhagen"
	Credentials *GoogleCredentials
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// HasCredentials reports whether the user completed the Google login flow.
func (u *UserRecord) HasCredentials() bool {
	return u != nil && u.Credentials != nil && u.Credentials.AccessToken != ""
}

// Location resolves the user's timezone, falling back to UTC.
func (u *UserRecord) Location() *time.Location {
	if u != nil && u.Timezone != "" {
		if loc, err := time.LoadLocation(u.Timezone); err == nil {
			return loc
		}
	}
	return time.UTC
}
