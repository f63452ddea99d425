package sendgrid_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/R-Agile/epetshop-backend/internal/config"
	sendgrid_client "github.com/R-Agile/epetshop-backend/pkg/sendgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmailService(t *testing.T) {
	cfg := &config.SendGrid{
		APIKey:    "test-api-key",
		FromEmail: "help@pawstore.example",
		FromName:  "PawStore",
	}

	service := sendgrid_client.NewEmailService(cfg)
	assert.NotNil(t, service)
}

type sendgridV3Payload struct {
	Personalizations []struct {
		To      []map[string]string `json:"to"`
		Subject string              `json:"subject"`
	} `json:"personalizations"`
	From    map[string]string `json:"from"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func TestSendPasswordReset(t *testing.T) {
	ctx := context.Background()
	cfg := &config.SendGrid{
		APIKey:    "SG.test-api-key",
		FromEmail: "help@pawstore.example",
		FromName:  "PawStore",
	}
	resetLink := "http://localhost:5173/reset-password?email=asha%40example.com&token=token-123"

	t.Run("Success - Sends Reset Link", func(t *testing.T) {
		var payload sendgridV3Payload

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer "+cfg.APIKey, r.Header.Get("Authorization"))

			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(body, &payload))

			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		service := sendgrid_client.NewEmailService(cfg)
		service.GetSendGridClient().Request.BaseURL = server.URL

		err := service.SendPasswordReset(ctx, "asha@example.com", "Asha Rao", resetLink)

		require.NoError(t, err)
		require.Len(t, payload.Personalizations, 1)
		assert.Equal(t, "asha@example.com", payload.Personalizations[0].To[0]["email"])
		assert.Equal(t, "Reset your password", payload.Personalizations[0].Subject)
		assert.Equal(t, cfg.FromEmail, payload.From["email"])

		require.NotEmpty(t, payload.Content)
		assert.Contains(t, payload.Content[0].Value, resetLink)
	})

	t.Run("Failure - API Rejects The Request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		service := sendgrid_client.NewEmailService(cfg)
		service.GetSendGridClient().Request.BaseURL = server.URL

		err := service.SendPasswordReset(ctx, "asha@example.com", "Asha Rao", resetLink)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status code: 401")
	})

	t.Run("Failure - Network Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		service := sendgrid_client.NewEmailService(cfg)
		service.GetSendGridClient().Request.BaseURL = server.URL
		server.Close()

		err := service.SendPasswordReset(ctx, "asha@example.com", "Asha Rao", resetLink)

		assert.Error(t, err)
	})
}
