// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	"github.com/dalemusser/grouphub/internal/app/store/oauthstate"
	userstore "github.com/dalemusser/grouphub/internal/app/store/users"
	"github.com/dalemusser/grouphub/internal/app/system/auth"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
	"github.com/dalemusser/grouphub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const stateTTL = 10 * time.Minute

// Handler handles Google OAuth authentication. First-time Google sign-ins
// create an account; later sign-ins match on email.
type Handler struct {
	DB         *userstore.Store
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *apierrors.ErrorLogger
	StateStore *oauthstate.Store

	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g. "https://grouphub.example.com/auth/google/callback"
}

// NewHandler creates a new Google OAuth handler.
func NewHandler(
	users *userstore.Store,
	sessionMgr *auth.SessionManager,
	errLog *apierrors.ErrorLogger,
	stateStore *oauthstate.Store,
	clientID, clientSecret, baseURL string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		DB:           users,
		Log:          logger,
		SessionMgr:   sessionMgr,
		ErrLog:       errLog,
		StateStore:   stateStore,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/google/callback",
	}
}

// oauth2Config returns the Google OAuth2 configuration.
func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

// ServeLogin handles GET /auth/google: redirects to Google's consent screen.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		apierrors.RenderNotFound(w, "google sign-in is not enabled")
		return
	}

	state, err := generateState()
	if err != nil {
		h.ErrLog.LogError(r, "failed to generate OAuth state", err)
		apierrors.RenderInternal(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.StateStore.Save(ctx, state, stateTTL); err != nil {
		h.ErrLog.LogError(r, "failed to save OAuth state", err)
		apierrors.RenderInternal(w)
		return
	}

	url := h.oauth2Config().AuthCodeURL(state, oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// ServeCallback handles GET /auth/google/callback: validates state, exchanges
// the code, fetches the Google profile, and signs the user in, creating the
// account on first sign-in.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		apierrors.RenderValidation(w, "google sign-in was denied")
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		apierrors.RenderValidation(w, "missing oauth state")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.StateStore.Validate(ctx, state); err != nil {
		if err == oauthstate.ErrInvalidState {
			apierrors.RenderValidation(w, err.Error())
			return
		}
		h.ErrLog.LogError(r, "failed to validate OAuth state", err)
		apierrors.RenderInternal(w)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		apierrors.RenderValidation(w, "missing oauth code")
		return
	}

	token, err := h.oauth2Config().Exchange(r.Context(), code)
	if err != nil {
		h.ErrLog.LogError(r, "failed to exchange OAuth code", err)
		apierrors.RenderValidation(w, "google sign-in failed")
		return
	}

	googleUser, err := fetchGoogleUserInfo(r.Context(), token)
	if err != nil {
		h.ErrLog.LogError(r, "failed to fetch Google user info", err)
		apierrors.RenderValidation(w, "google sign-in failed")
		return
	}

	user, err := h.findOrCreateUser(ctx, googleUser)
	if err != nil {
		h.ErrLog.LogError(r, "google user lookup failed", err)
		apierrors.RenderInternal(w)
		return
	}
	if user.Status != "active" {
		apierrors.RenderForbidden(w, "this account is disabled")
		return
	}

	su := &auth.SessionUser{ID: user.ID.Hex(), Username: user.Username, Email: user.Email}
	if err := h.SessionMgr.SignIn(w, r, su); err != nil {
		h.ErrLog.LogError(r, "session sign-in failed", err)
		apierrors.RenderInternal(w)
		return
	}

	h.Log.Info("user logged in via Google OAuth", zap.String("user_id", user.ID.Hex()))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// fetchGoogleUserInfo retrieves user information from Google's userinfo endpoint.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &info, nil
}

// findOrCreateUser matches the Google profile to an existing account by
// email, or provisions a new one. A username collision on first sign-in
// gets a random suffix.
func (h *Handler) findOrCreateUser(ctx context.Context, gu *googleUserInfo) (models.User, error) {
	user, err := h.DB.GetByEmail(ctx, gu.Email)
	if err == nil {
		return user, nil
	}
	if err != userstore.ErrNotFound {
		return models.User{}, err
	}

	username := strings.TrimSpace(gu.Name)
	if username == "" {
		username = gu.Email
		if at := strings.IndexByte(username, '@'); at > 0 {
			username = username[:at]
		}
	}

	user, err = h.DB.Create(ctx, models.User{
		Email:      gu.Email,
		Username:   username,
		AuthMethod: models.AuthGoogle,
	})
	if err == userstore.ErrDuplicateUser {
		suffix := make([]byte, 3)
		if _, rerr := rand.Read(suffix); rerr != nil {
			return models.User{}, rerr
		}
		return h.DB.Create(ctx, models.User{
			Email:      gu.Email,
			Username:   username + "-" + hex.EncodeToString(suffix),
			AuthMethod: models.AuthGoogle,
		})
	}
	return user, err
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
