package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/leavehub/leave-backend-go/internal/domain/auth"
	"github.com/leavehub/leave-backend-go/internal/handler/http/response"
	"github.com/leavehub/leave-backend-go/internal/pkg/oauth"
)

const oauthStateCookie = "oauth_state"

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
	OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService   auth.AuthService
	googleService oauth.GoogleService
	frontendURL   string
	callbackPath  string
	secureCookies bool
}

// NewAuthHandler builds the auth handler. A nil googleService disables the
// Google endpoints, which then answer 404.
func NewAuthHandler(authService auth.AuthService, googleService oauth.GoogleService, frontendURL string, callbackPath string, secureCookies bool) AuthHandler {
	return &AuthHandlerImpl{
		authService:   authService,
		googleService: googleService,
		frontendURL:   frontendURL,
		callbackPath:  callbackPath,
		secureCookies: secureCookies,
	}
}

// Register implements AuthHandler.
func (a *AuthHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var registerReq auth.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		slog.Error("Register decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := registerReq.Validate(); err != nil {
		slog.Error("Register validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	authResponse, err := a.authService.Register(r.Context(), registerReq)
	if err != nil {
		slog.Error("Register service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User registered successfully", "user_id", authResponse.User.ID)
	response.Created(w, "User registered successfully", authResponse)
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := loginReq.Validate(); err != nil {
		slog.Error("Login validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	authResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User logged in successfully", "user_id", authResponse.User.ID)
	response.SuccessWithMessage(w, "Login successful", authResponse)
}

// LoginWithGoogle implements AuthHandler.
func (a *AuthHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	if a.googleService == nil {
		response.HandleError(w, auth.ErrGoogleSignInDisabled)
		return
	}

	state, err := a.googleService.GenerateState()
	if err != nil {
		slog.Error("Google state generation error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     a.callbackPath,
		Expires:  time.Now().Add(5 * time.Minute),
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, a.googleService.RedirectURL(state), http.StatusTemporaryRedirect)
}

// OAuthCallbackGoogle implements AuthHandler.
func (a *AuthHandlerImpl) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) {
	if a.googleService == nil {
		response.HandleError(w, auth.ErrGoogleSignInDisabled)
		return
	}

	redirectWithError := func(errorMsg string) {
		redirectURL := fmt.Sprintf("%s/auth/callback?error=%s", a.frontendURL, url.QueryEscape(errorMsg))
		http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
	}

	// The state is single use
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Path:     a.callbackPath,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	query := r.URL.Query()
	if errorValue := query.Get("error"); errorValue != "" {
		slog.Error("Error in OAuth callback", "error", errorValue)
		if errorValue == "access_denied" {
			redirectWithError("access_denied")
			return
		}
		redirectWithError(errorValue)
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" {
		slog.Error("State cookie not found", "error", err)
		redirectWithError("state_cookie_not_found")
		return
	}
	if query.Get("state") != stateCookie.Value {
		slog.Error("State mismatch", "error", auth.ErrStateMismatch)
		redirectWithError("state_mismatch")
		return
	}

	code := query.Get("code")
	if code == "" {
		slog.Error("Code value is empty")
		redirectWithError("code_empty")
		return
	}

	token, err := a.googleService.Exchange(r.Context(), code)
	if err != nil {
		slog.Error("Failed to exchange code", "error", err)
		redirectWithError("token_exchange_failed")
		return
	}

	info, err := a.googleService.UserInfo(r.Context(), token)
	if err != nil {
		slog.Error("Failed to fetch google profile", "error", err)
		redirectWithError("user_verification_failed")
		return
	}

	authResponse, err := a.authService.LoginWithGoogle(r.Context(), auth.GoogleProfile{
		GoogleID:      info.GoogleID,
		Email:         info.Email,
		Name:          info.Name,
		VerifiedEmail: info.VerifiedEmail,
	})
	if err != nil {
		slog.Error("Failed to login with Google", "error", err)
		redirectWithError("login_failed")
		return
	}

	redirectURL := fmt.Sprintf("%s/auth/callback?token=%s", a.frontendURL, url.QueryEscape(authResponse.Token))
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}
