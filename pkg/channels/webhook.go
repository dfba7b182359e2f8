package channels

import (
	"crypto/subtle"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/tinyland-inc/idbot/pkg/logger"
)

// StatusText is shown to anything that is not a Telegram update.
const StatusText = "Telegram ID Bot is running!\nSet up webhook or run from command line for polling mode.\n"

// SecretHeader carries the secret_token registered with setWebhook.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

const maxWebhookBody = 1 << 20

// WebhookHandler returns an http.Handler receiving Telegram webhook
// deliveries. Mount it at the configured webhook path.
func (c *TelegramChannel) WebhookHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()

		switch r.Method {
		case http.MethodGet, http.MethodHead:
			writeStatus(w)
			return
		case http.MethodPost:
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
		if err != nil {
			logger.WarnCF("webhook", "Failed to read request body", map[string]any{
				"request_id": requestID,
				"error":      err.Error(),
			})
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if len(body) == 0 {
			writeStatus(w)
			return
		}

		if c.webhookSecret != "" {
			got := r.Header.Get(SecretHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(c.webhookSecret)) != 1 {
				logger.WarnCF("webhook", "Rejected delivery with bad secret token", map[string]any{
					"request_id": requestID,
					"remote":     r.RemoteAddr,
				})
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}

		if err := c.HandleBody(r.Context(), body); err != nil {
			logger.DebugCF("webhook", "Delivery not answered", map[string]any{
				"request_id": requestID,
				"error":      err.Error(),
			})
		} else {
			logger.DebugCF("webhook", "Delivery handled", map[string]any{
				"request_id": requestID,
				"bytes":      len(body),
			})
		}

		// Telegram redelivers on anything but 2xx
		w.WriteHeader(http.StatusOK)
	})
}

// NewWebhookMux serves the webhook at path, a health probe at /health and
// the status text everywhere else.
func (c *TelegramChannel) NewWebhookMux(path string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(path, c.WebhookHandler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "ok\n")
	})
	if path != "/" {
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			writeStatus(w)
		})
	}
	return mux
}

func writeStatus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, StatusText)
}
