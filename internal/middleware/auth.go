// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"tattiadmin/internal/metrics"
	"tattiadmin/internal/telegram"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// IdentityKey is the context key for the Telegram identity.
	IdentityKey contextKey = "identity"
)

// initDataHeader carries the raw init-data blob the Mini App client injects.
const initDataHeader = "X-Telegram-Init-Data"

// TelegramAuth gates admin routes on the Telegram identity. The init data
// from the request header is parsed (and verified when a bot token is
// configured), the user id is checked against the allow-list, and the
// identity is stored in the request context. There is no session: the gate
// runs from scratch on every request.
func TelegramAuth(botToken string, allowList []int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := telegram.ParseInitData(r.Header.Get(initDataHeader), botToken)
			if err != nil {
				reason := "invalid"
				if errors.Is(err, telegram.ErrSignature) {
					reason = "signature"
				}
				metrics.AuthDeniedTotal.WithLabelValues(reason).Inc()
				slog.Warn("admin request rejected", "reason", reason, "error", err)
				writeAuthError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !telegram.Allowed(id.UserID, allowList) {
				metrics.AuthDeniedTotal.WithLabelValues("forbidden").Inc()
				slog.Warn("admin request denied", "user_id", id.UserID)
				writeAuthError(w, "Forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromCtx returns the Telegram identity stored by TelegramAuth,
// or nil when the request was not gated.
func IdentityFromCtx(ctx context.Context) *telegram.Identity {
	id, _ := ctx.Value(IdentityKey).(*telegram.Identity)
	return id
}

func writeAuthError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
