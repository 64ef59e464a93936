package handler

import (
	"net/http"
	"time"

	"github.com/folio-cms/folio/shared/api"
	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/utils"
)

const accessTokenCookie = "accessToken"

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	token, expiresAt, err := h.auth.Login(r.Context(), domain.Credentials{Email: body.Email, Password: body.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     accessTokenCookie,
		Value:    token,
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.Http.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	utils.WriteJSON(w, http.StatusOK, api.LoginResponse{AccessToken: token, ExpiresAt: expiresAt})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     accessTokenCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Public.Http.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	utils.WriteJSON(w, http.StatusOK, api.OkResponse{Ok: true})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	caller, err := h.auth.Me(r.Context(), utils.BearerToken(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	resp := api.MeResponse{Id: caller.Id, Role: caller.Role()}
	if caller.Email != "" {
		email := caller.Email
		resp.Email = &email
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
