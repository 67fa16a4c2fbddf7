// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/pquerna/otp/totp"
	"github.com/skip2/go-qrcode"

	"portfolio/internal/auth"
	"portfolio/internal/middleware"
	"portfolio/internal/models"
	"portfolio/internal/store"
)

// totpIssuer is shown in authenticator apps next to the account name.
const totpIssuer = "Portfolio"

// Auth groups the login, session and 2FA endpoints.
type Auth struct {
	users  store.UserRepository
	tokens *auth.Service
}

// NewAuth creates a new Auth handler group.
func NewAuth(users store.UserRepository, tokens *auth.Service) *Auth {
	return &Auth{users: users, tokens: tokens}
}

// userView is the public shape of a user in auth responses.
type userView struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Role        models.Role `json:"role"`
	TOTPEnabled bool        `json:"totp_enabled"`
}

func viewUser(u *models.User) userView {
	return userView{
		ID:          u.ID.String(),
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		TOTPEnabled: u.TOTPEnabled,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Code     string `json:"code"`
}

// Login checks credentials (and the TOTP code when 2FA is enabled) and
// returns an access/refresh token pair.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	var fe fieldErrors
	if !validEmail(req.Email) {
		fe.add("email", "Valid email is required")
	}
	if req.Password == "" {
		fe.add("password", "Password is required")
	}
	if len(fe) > 0 {
		fe.write(w)
		return
	}

	user, err := a.users.FindByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		writeInternal(w, r, "login lookup", err)
		return
	}
	if !store.CheckPassword(user, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if user.RequiresTOTP() {
		code := strings.TrimSpace(req.Code)
		if code == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"error":               "Two-factor code required",
				"two_factor_required": true,
			})
			return
		}
		if !totp.Validate(code, *user.TOTPSecret) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"error":               "Invalid two-factor code",
				"two_factor_required": true,
			})
			return
		}
	}

	pair, err := a.tokens.IssuePair(user)
	if err != nil {
		writeInternal(w, r, "issue tokens", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":      "Login successful",
		"token":        pair.Access,
		"refreshToken": pair.Refresh,
		"user":         viewUser(user),
	})
}

// Me returns the user behind the bearer token.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := a.currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": viewUser(user)})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh exchanges a refresh token for a new access token. The refresh
// token itself is not rotated.
func (a *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.RefreshToken == "" {
		fe := fieldErrors{}
		fe.add("refreshToken", "Refresh token is required")
		fe.write(w)
		return
	}

	userID, err := a.tokens.VerifyRefresh(req.RefreshToken)
	if errors.Is(err, auth.ErrTokenExpired) {
		writeError(w, http.StatusUnauthorized, "Refresh token expired")
		return
	}
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	user, err := a.users.FindByID(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	if err != nil {
		writeInternal(w, r, "refresh lookup", err)
		return
	}

	token, err := a.tokens.IssueAccess(user)
	if err != nil {
		writeInternal(w, r, "issue access token", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Logout acknowledges the request. Tokens are stateless, so the client
// discards them.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// TwoFASetup generates a new TOTP secret for the caller and returns it with
// a QR code for authenticator apps. 2FA stays disabled until TwoFAEnable
// confirms a code.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	user, ok := a.currentUser(w, r)
	if !ok {
		return
	}
	if user.TOTPEnabled {
		writeError(w, http.StatusConflict, "Two-factor authentication is already enabled")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
	})
	if err != nil {
		writeInternal(w, r, "generate totp key", err)
		return
	}
	if err := a.users.SetTOTPSecret(r.Context(), user.ID, key.Secret()); err != nil {
		writeInternal(w, r, "store totp secret", err)
		return
	}

	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		writeInternal(w, r, "encode qr code", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"secret":      key.Secret(),
		"otpauth_url": key.URL(),
		"qr_code":     "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	})
}

type codeRequest struct {
	Code string `json:"code"`
}

// TwoFAEnable turns on 2FA once the caller proves they can produce a code
// for the secret issued by TwoFASetup.
func (a *Auth) TwoFAEnable(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	user, ok := a.currentUser(w, r)
	if !ok {
		return
	}
	if user.TOTPSecret == nil || *user.TOTPSecret == "" {
		writeError(w, http.StatusBadRequest, "Run two-factor setup first")
		return
	}

	code := strings.TrimSpace(req.Code)
	if code == "" || !totp.Validate(code, *user.TOTPSecret) {
		fe := fieldErrors{}
		fe.add("code", "Invalid two-factor code")
		fe.write(w)
		return
	}
	if err := a.users.EnableTOTP(r.Context(), user.ID); err != nil {
		writeInternal(w, r, "enable totp", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Two-factor authentication enabled"})
}

// currentUser loads the user named by the request identity, writing the
// error response itself when that fails.
func (a *Auth) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	id := middleware.IdentityFromCtx(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return nil, false
	}
	user, err := a.users.FindByID(r.Context(), id.UserID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return nil, false
	}
	if err != nil {
		writeInternal(w, r, "load user", err)
		return nil, false
	}
	return user, true
}
