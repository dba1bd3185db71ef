package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylecast/wardrobe/internal/service"
)

func TestTokenCmd(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET_KEY", "cli-secret")

	var stdout, stderr bytes.Buffer
	cmd := TokenCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"google-123", "--email", "ada@example.com", "--ttl", "5m"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stderr.String(), "expires ")

	claims, err := service.NewAuthService("cli-secret", 0).VerifyToken(strings.TrimSpace(stdout.String()))
	require.NoError(t, err)
	assert.Equal(t, "google-123", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestTokenCmd_RefusesProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET_KEY", "cli-secret")
	t.Setenv("GOOGLE_CLIENT_ID", "id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("STORE_DRIVER", "dynamodb")
	t.Setenv("TOKEN_DELIVERY", "redirect")

	cmd := TokenCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"google-123"})

	assert.ErrorContains(t, cmd.Execute(), "production")
}

func TestTokenCmd_RequiresUserID(t *testing.T) {
	cmd := TokenCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(nil)

	assert.Error(t, cmd.Execute())
}
