package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrBadSignature = errors.New("telegram signature mismatch")
	ErrStale        = errors.New("telegram auth data expired")
)

// MaxAuthAge bounds how old a login-widget payload may be before it is
// rejected as a replay.
const MaxAuthAge = 24 * time.Hour

// LoginData is the payload the Telegram login widget posts back.
type LoginData struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
	PhotoURL  string
	AuthDate  int64
	Hash      string
}

// Verify checks the widget signature: HMAC-SHA256 over the sorted
// key=value lines, keyed with SHA256(botToken).
func Verify(d LoginData, botToken string, now time.Time) error {
	if strings.TrimSpace(d.Hash) == "" {
		return ErrBadSignature
	}
	if d.AuthDate > 0 && now.Sub(time.Unix(d.AuthDate, 0)) > MaxAuthAge {
		return ErrStale
	}

	fields := map[string]string{
		"id":        fmt.Sprintf("%d", d.ID),
		"auth_date": fmt.Sprintf("%d", d.AuthDate),
	}
	if d.FirstName != "" {
		fields["first_name"] = d.FirstName
	}
	if d.LastName != "" {
		fields["last_name"] = d.LastName
	}
	if d.Username != "" {
		fields["username"] = d.Username
	}
	if d.PhotoURL != "" {
		fields["photo_url"] = d.PhotoURL
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+fields[k])
	}
	checkString := strings.Join(lines, "\n")

	secret := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(checkString))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(d.Hash))) {
		return ErrBadSignature
	}
	return nil
}
