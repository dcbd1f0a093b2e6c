package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnly/internal/app/identity"
)

const testSecret = "test-secret-key"

func testPayload() *Payload {
	return &Payload{
		UserID:    "u1",
		Provider:  "google",
		SubjectID: "sub-1",
		Name:      "Alice",
		Picture:   "https://example.com/a.png",
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(testPayload(), testSecret, SessionExpiration)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := ParseToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "u1", parsed.UserID)
	assert.Equal(t, "google", parsed.Provider)
	assert.Equal(t, "sub-1", parsed.SubjectID)
	assert.Equal(t, "Alice", parsed.Name)
	assert.Equal(t, TokenIssuer, parsed.Issuer)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(testPayload(), testSecret, SessionExpiration)
	require.NoError(t, err)

	_, err = ParseToken(token, "a-different-secret")
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken(testPayload(), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token", testSecret)
	assert.Error(t, err)
}

func TestPayloadIdentity(t *testing.T) {
	parsedIdent := testPayload().Identity()

	assert.Equal(t, identity.External{
		Provider:  identity.ProviderGoogle,
		SubjectID: "sub-1",
	}, parsedIdent)
	assert.True(t, parsedIdent.Valid())
}
