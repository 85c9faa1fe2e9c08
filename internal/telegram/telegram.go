// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package telegram implements the admin access gate: parsing the init-data
// blob the Telegram client injects into the Mini App, optionally verifying
// its HMAC signature against the bot token, and checking the resulting user
// id against a configured allow-list. There are no sessions and no issued
// tokens; the gate is recomputed from the request on every call.
package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Errors callers branch on.
var (
	// ErrInvalidInitData is returned for init data that cannot be parsed
	// or lacks a user claim.
	ErrInvalidInitData = errors.New("telegram: invalid init data")
	// ErrSignature is returned when the init-data hash does not match.
	ErrSignature = errors.New("telegram: init data signature mismatch")
)

// Identity is the user claim extracted from init data.
type Identity struct {
	UserID    int64
	Username  string
	FirstName string
}

// Allowed reports whether a candidate user id is on the allow-list.
func Allowed(candidateID int64, allowList []int64) bool {
	for _, id := range allowList {
		if id == candidateID {
			return true
		}
	}
	return false
}

// ParseInitData parses the URL-encoded init-data string from the
// X-Telegram-Init-Data header and extracts the user identity. When botToken
// is non-empty the init-data hash is verified first (secret key =
// HMAC-SHA256("WebAppData", token), per Telegram's Mini App scheme); with an
// empty token the claim is trusted as-is.
func ParseInitData(raw, botToken string) (*Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidInitData
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInitData, err)
	}

	if botToken != "" {
		if err := verifySignature(values, botToken); err != nil {
			return nil, err
		}
	}

	userJSON := values.Get("user")
	if userJSON == "" {
		return nil, fmt.Errorf("%w: missing user field", ErrInvalidInitData)
	}

	var user struct {
		ID        int64  `json:"id"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
	}
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return nil, fmt.Errorf("%w: user field: %v", ErrInvalidInitData, err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: user id missing", ErrInvalidInitData)
	}

	return &Identity{
		UserID:    user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
	}, nil
}

// verifySignature checks the init-data hash: all fields except hash are
// sorted, joined as key=value lines, and HMAC'd with the derived secret.
func verifySignature(values url.Values, botToken string) error {
	gotHash := values.Get("hash")
	if gotHash == "" {
		return fmt.Errorf("%w: missing hash field", ErrInvalidInitData)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if k != "hash" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+values.Get(k))
	}
	checkString := strings.Join(lines, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))
	wantHash := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(wantHash), []byte(gotHash)) {
		return ErrSignature
	}
	return nil
}
