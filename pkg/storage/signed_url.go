package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignedURLSigner issues and verifies expiring download tokens for report
// files. A token binds a job id to the exact stored path, so a valid token
// for one report cannot fetch another.
type SignedURLSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewSignedURLSigner constructs a signer. A non-positive ttl falls back to
// 24 hours.
func NewSignedURLSigner(secret string, ttl time.Duration) *SignedURLSigner {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SignedURLSigner{secret: []byte(secret), ttl: ttl}
}

// Token layout: jobID.expiryUnix.base64(relPath).base64(signature), where the
// signature is an HMAC-SHA256 over the first three fields.

// Generate returns a download token for the job's stored report and the
// instant it expires.
func (s *SignedURLSigner) Generate(jobID, relPath string) (string, time.Time, error) {
	if jobID == "" || relPath == "" {
		return "", time.Time{}, fmt.Errorf("job id and report path required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("download signing secret not configured")
	}
	expiresAt := time.Now().Add(s.ttl)
	fields := []string{
		jobID,
		strconv.FormatInt(expiresAt.Unix(), 10),
		base64.RawURLEncoding.EncodeToString([]byte(relPath)),
	}
	fields = append(fields, base64.RawURLEncoding.EncodeToString(s.sign(fields)))
	return strings.Join(fields, "."), expiresAt, nil
}

// Parse verifies a token and returns the job id, report path and expiry it
// carries. With allowExpired the expiry check is skipped; cleanup uses that
// to resolve paths for jobs past their download window.
func (s *SignedURLSigner) Parse(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error) {
	fields := strings.Split(token, ".")
	if len(fields) != 4 {
		return "", "", time.Time{}, fmt.Errorf("malformed download token")
	}

	signature, err := base64.RawURLEncoding.DecodeString(fields[3])
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("malformed download token")
	}
	if !hmac.Equal(signature, s.sign(fields[:3])) {
		return "", "", time.Time{}, fmt.Errorf("download token signature mismatch")
	}

	expUnix, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("malformed download token")
	}
	expiresAt = time.Unix(expUnix, 0)
	if !allowExpired && time.Now().After(expiresAt) {
		return "", "", time.Time{}, fmt.Errorf("download token expired")
	}

	rawPath, err := base64.RawURLEncoding.DecodeString(fields[2])
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("malformed download token")
	}
	return fields[0], string(rawPath), expiresAt, nil
}

func (s *SignedURLSigner) sign(fields []string) []byte {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(strings.Join(fields, "|")))
	return mac.Sum(nil)
}
