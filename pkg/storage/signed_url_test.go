package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedURLRoundTrip(t *testing.T) {
	signer := NewSignedURLSigner("download-secret", time.Hour)

	token, expiresAt, err := signer.Generate("job-1", "job-1/validation_report_6310500000.txt")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	jobID, relPath, parsedExpiry, err := signer.Parse(token, false)
	require.NoError(t, err)
	assert.Equal(t, "job-1", jobID)
	assert.Equal(t, "job-1/validation_report_6310500000.txt", relPath)
	assert.WithinDuration(t, expiresAt, parsedExpiry, time.Second)
}

func TestSignedURLRejectsTampering(t *testing.T) {
	signer := NewSignedURLSigner("download-secret", time.Hour)
	token, _, err := signer.Generate("job-1", "job-1/report.txt")
	require.NoError(t, err)

	// Swapping the job id must break the signature.
	fields := strings.Split(token, ".")
	require.Len(t, fields, 4)
	fields[0] = "job-2"
	_, _, _, err = signer.Parse(strings.Join(fields, "."), false)
	assert.Error(t, err)

	// A token signed with another secret must not verify either.
	other := NewSignedURLSigner("other-secret", time.Hour)
	foreign, _, err := other.Generate("job-1", "job-1/report.txt")
	require.NoError(t, err)
	_, _, _, err = signer.Parse(foreign, false)
	assert.Error(t, err)

	_, _, _, err = signer.Parse("not-a-token", false)
	assert.Error(t, err)
}

func TestSignedURLExpiry(t *testing.T) {
	signer := NewSignedURLSigner("download-secret", time.Hour)
	// Back-date the TTL so Generate produces an already expired token.
	signer.ttl = -time.Minute

	token, _, err := signer.Generate("job-1", "job-1/report.txt")
	require.NoError(t, err)

	_, _, _, err = signer.Parse(token, false)
	assert.Error(t, err)

	jobID, relPath, _, err := signer.Parse(token, true)
	require.NoError(t, err)
	assert.Equal(t, "job-1", jobID)
	assert.Equal(t, "job-1/report.txt", relPath)
}

func TestSignedURLRequiresSecretAndFields(t *testing.T) {
	unsigned := NewSignedURLSigner("", time.Hour)
	_, _, err := unsigned.Generate("job-1", "job-1/report.txt")
	assert.Error(t, err)

	signer := NewSignedURLSigner("download-secret", time.Hour)
	_, _, err = signer.Generate("", "job-1/report.txt")
	assert.Error(t, err)
	_, _, err = signer.Generate("job-1", "")
	assert.Error(t, err)
}
