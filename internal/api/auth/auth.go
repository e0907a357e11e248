package auth

import (
	"errors"
	dto "ladder_backend/internal/api/dto/auth"
	"ladder_backend/internal/converter"
	"ladder_backend/internal/model"
	"ladder_backend/internal/repository"
	"ladder_backend/internal/service"
	"ladder_backend/pkg/req"
	"ladder_backend/pkg/resp"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv            service.AuthService
	Log             *zap.Logger
	RefreshTokenTTL time.Duration
}

type Handler struct {
	serv       service.AuthService
	log        *zap.Logger
	refreshTTL time.Duration
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, log: deps.Log, refreshTTL: deps.RefreshTokenTTL}
}

// Register создаёт пользователя, открывает сессию, возвращает access_token,
// а session_id и refresh_token кладёт в cookies
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.RegisterRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if strings.TrimSpace(requestBody.Login) == "" || requestBody.Password == "" {
		resp.WriteError(w, http.StatusBadRequest, "login and password are required")
		return
	}

	data, err := h.serv.Register(r.Context(), converter.RegisterRequestToUserModel(&requestBody))
	if err != nil {
		if errors.Is(err, repository.ErrLoginTaken) {
			resp.WriteError(w, http.StatusConflict, err.Error())
			return
		}
		h.log.Error("register failed", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "register failed")
		return
	}

	h.setSessionCookies(w, data)
	resp.WriteJSONResponse(w, http.StatusCreated, dto.TokenResponse{AccessToken: data.AccessToken})
}

// Login создаёт сессию, возвращает access_token и кладёт session_id и refresh_token в cookies
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	data, err := h.serv.Login(r.Context(), converter.LoginRequestToUserModel(&requestBody))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			resp.WriteError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.log.Error("login failed", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.setSessionCookies(w, data)
	resp.WriteJSONResponse(w, http.StatusOK, dto.TokenResponse{AccessToken: data.AccessToken})
}

// Refresh выдаёт новый access_token по session_id и refresh_token из cookies
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	sessionID, err := r.Cookie(sessionIDCookie)
	if err != nil {
		resp.WriteError(w, http.StatusUnauthorized, "no session_id cookie")
		return
	}
	refreshToken, err := r.Cookie(refreshTokenCookie)
	if err != nil {
		resp.WriteError(w, http.StatusUnauthorized, "no refresh_token cookie")
		return
	}

	accessToken, err := h.serv.Refresh(r.Context(), &model.AuthData{
		SessionID:    sessionID.Value,
		RefreshToken: refreshToken.Value,
	})
	if err != nil {
		if !errors.Is(err, service.ErrInvalidSession) {
			h.log.Error("refresh failed", zap.Error(err))
		}
		resp.WriteError(w, http.StatusUnauthorized, "refresh failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.TokenResponse{AccessToken: accessToken})
}

// Logout закрывает сессию по session_id
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionIDCookie)
	if err != nil {
		resp.WriteError(w, http.StatusUnauthorized, "no session_id cookie")
		return
	}

	if err = h.serv.Logout(r.Context(), c.Value); err != nil {
		h.log.Error("logout failed", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "logout failed")
		return
	}

	deleteCookie(w, sessionIDCookie, "/")
	deleteCookie(w, refreshTokenCookie, authPath)

	w.WriteHeader(http.StatusNoContent)
}

const (
	sessionIDCookie    = "session_id"
	refreshTokenCookie = "refresh_token"
	authPath           = "/auth" // refresh_token уходит только на /auth/*
)

func (h *Handler) setSessionCookies(w http.ResponseWriter, data *model.AuthData) {
	maxAge := int(h.refreshTTL.Seconds())

	http.SetCookie(w, &http.Cookie{
		Name:     sessionIDCookie,
		Value:    data.SessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    data.RefreshToken,
		Path:     authPath,
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	})
}

// deleteCookie удаляет cookie name
func deleteCookie(w http.ResponseWriter, name, path string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
