package rest

import (
	"net/http"

	"github.com/omnirelay/console/service"
	"github.com/omnirelay/console/validate"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(req); errs != nil {
		respondWithFieldErrors(w, errs)
		return
	}
	token, user, err := s.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			respondWithError(w, http.StatusUnauthorized, err.Error())
			return
		}
		respondStorageError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}
