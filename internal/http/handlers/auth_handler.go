// Account HTTP handlers.
//
//   - POST /register
//   - POST /login
//
// Both answer with the {success, message} envelope instead of ErrorResponse.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tarumenyan/studio-backend/internal/services"
)

// RegisterRequest is the JSON payload for creating an account.
type RegisterRequest struct {
	Name     string `json:"name"     example:"Dewi Lestari"`
	Email    string `json:"email"    example:"dewi@example.com"`
	Password string `json:"password" example:"rahasia123"`
}

// LoginRequest is the JSON payload for signing in.
type LoginRequest struct {
	Email    string `json:"email"    example:"dewi@example.com"`
	Password string `json:"password" example:"rahasia123"`
}

// UserView is the public part of an account.
type UserView struct {
	ID    uint   `json:"id"    example:"1"`
	Name  string `json:"name"  example:"Dewi Lestari"`
	Email string `json:"email" example:"dewi@example.com"`
	Role  string `json:"role"  example:"user"`
}

// AuthResponse is the envelope of register and login.
type AuthResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty" example:"Pendaftaran berhasil"`
	User    *UserView `json:"user,omitempty"`
	Token   string    `json:"token,omitempty"`
}

func authFail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, AuthResponse{Success: false, Message: msg})
}

// Register godoc
// @ID          register
// @Summary     Create an account
// @Description Registers a visitor account with role "user". Email matching is case-insensitive.
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.RegisterRequest  true  "Account details"
// @Success     201   {object}  handlers.AuthResponse
// @Failure     400   {object}  handlers.AuthResponse  "Missing field or short password"
// @Failure     409   {object}  handlers.AuthResponse  "Email already registered"
// @Failure     500   {object}  handlers.ErrorResponse "Internal error"
// @Router      /register [post]
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		authFail(c, http.StatusBadRequest, "invalid JSON body")
		return
	}

	_, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	var ve *services.ValidationError
	switch {
	case err == nil:
		ok(c, http.StatusCreated, AuthResponse{Success: true, Message: "Pendaftaran berhasil"})
	case errors.As(err, &ve):
		authFail(c, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, services.ErrEmailTaken):
		authFail(c, http.StatusConflict, "Email sudah terdaftar")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
	}
}

// Login godoc
// @ID          login
// @Summary     Sign in
// @Description Verifies credentials and returns a bearer token valid for 24 hours. Unknown email and wrong password are indistinguishable.
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.LoginRequest  true  "Credentials"
// @Success     200   {object}  handlers.AuthResponse
// @Failure     400   {object}  handlers.AuthResponse  "Missing field"
// @Failure     401   {object}  handlers.AuthResponse  "Wrong email or password"
// @Failure     500   {object}  handlers.ErrorResponse "Internal error"
// @Router      /login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		authFail(c, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	var ve *services.ValidationError
	switch {
	case err == nil:
		u := res.User
		ok(c, http.StatusOK, AuthResponse{
			Success: true,
			User:    &UserView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role},
			Token:   res.Token,
		})
	case errors.As(err, &ve):
		authFail(c, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, services.ErrInvalidCredentials):
		authFail(c, http.StatusUnauthorized, "Email atau password salah")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
