package services_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/craigderington/m3data-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	t.Run("posts cleaned number to the gateway", func(t *testing.T) {
		var got map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "/messages", r.URL.Path)

			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "AC123", user)
			assert.Equal(t, "tok456", pass)

			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			json.NewEncoder(w).Encode(map[string]string{"sid": "SM789", "status": "queued"})
		}))
		defer server.Close()

		t.Setenv("SMS_GATEWAY_URL", server.URL)
		t.Setenv("SMS_ACCOUNT_SID", "AC123")
		t.Setenv("SMS_AUTH_TOKEN", "tok456")
		t.Setenv("SMS_FROM_NUMBER", "3215550100")

		svc := services.NewSMSService()
		sid, err := svc.SendMessage("(321) 210-4622", "hello")
		require.NoError(t, err)

		assert.Equal(t, "SM789", sid)
		assert.Equal(t, "3212104622", got["to"])
		assert.Equal(t, "3215550100", got["from"])
		assert.Equal(t, "hello", got["body"])
	})

	t.Run("gateway error surfaces as error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(map[string]string{"message": "carrier rejected"})
		}))
		defer server.Close()

		t.Setenv("SMS_GATEWAY_URL", server.URL)

		svc := services.NewSMSService()
		_, err := svc.SendMessage("3212104622", "hello")
		assert.ErrorContains(t, err, "carrier rejected")
	})

	t.Run("unconfigured gateway is an error", func(t *testing.T) {
		t.Setenv("SMS_GATEWAY_URL", "")

		svc := services.NewSMSService()
		_, err := svc.SendMessage("3212104622", "hello")
		assert.Error(t, err)
	})
}
