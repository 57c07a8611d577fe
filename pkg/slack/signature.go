package slack

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

const signatureVersion = "v0"

// Requests older than this are rejected to blunt replay of captured
// webhook bodies.
const maxSignatureAge = 5 * time.Minute

// VerifySignature checks the X-Slack-Signature header against the request
// body using the app signing secret.
func VerifySignature(signingSecret, timestamp, signature string, body []byte, now time.Time) bool {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	age := now.Sub(time.Unix(ts, 0))
	if age > maxSignatureAge || age < -maxSignatureAge {
		return false
	}

	mac := hmac.New(sha256.New, []byte(signingSecret))
	fmt.Fprintf(mac, "%s:%s:%s", signatureVersion, timestamp, body)
	expected := signatureVersion + "=" + hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
