package slack

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func signBody(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "v0:%s:%s", timestamp, body)
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "8f742231b10e8888abcd99yyyzzz85a5"
	body := []byte(`{"type":"event_callback"}`)
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	ts := strconv.FormatInt(now.Unix(), 10)

	assert.True(t, VerifySignature(secret, ts, signBody(secret, ts, body), body, now))
}

func TestVerifySignatureRejectsTamperedBody(t *testing.T) {
	secret := "secret"
	body := []byte(`{"text":"hello"}`)
	now := time.Now()
	ts := strconv.FormatInt(now.Unix(), 10)
	sig := signBody(secret, ts, body)

	assert.False(t, VerifySignature(secret, ts, sig, []byte(`{"text":"evil"}`), now))
	assert.False(t, VerifySignature("wrong-secret", ts, sig, body, now))
}

func TestVerifySignatureRejectsStaleTimestamp(t *testing.T) {
	secret := "secret"
	body := []byte("payload")
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	stale := strconv.FormatInt(now.Add(-10*time.Minute).Unix(), 10)
	assert.False(t, VerifySignature(secret, stale, signBody(secret, stale, body), body, now))

	future := strconv.FormatInt(now.Add(10*time.Minute).Unix(), 10)
	assert.False(t, VerifySignature(secret, future, signBody(secret, future, body), body, now))
}

func TestVerifySignatureRejectsMalformedTimestamp(t *testing.T) {
	assert.False(t, VerifySignature("secret", "not-a-number", "v0=whatever", []byte("x"), time.Now()))
}
