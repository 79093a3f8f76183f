package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meridianbay/hotel-booking/internal/config"
	"github.com/meridianbay/hotel-booking/internal/repository"
	"github.com/meridianbay/hotel-booking/internal/utils"
)

// AdminAuthHandler authenticates back-office accounts and issues the
// bearer tokens the admin routes require. Accounts are provisioned out
// of band; there is no self-service registration.
type AdminAuthHandler struct {
	Cfg    config.Config
	Admins *repository.AdminUserRepo
}

func NewAdminAuthHandler(cfg config.Config, admins *repository.AdminUserRepo) *AdminAuthHandler {
	return &AdminAuthHandler{Cfg: cfg, Admins: admins}
}

type adminLoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies email/password and returns a signed access token plus
// the admin profile. Unknown email and wrong password are answered
// identically so the endpoint does not leak which accounts exist.
func (h *AdminAuthHandler) Login(c echo.Context) error {
	var req adminLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	admin, err := h.Admins.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	if !utils.VerifyPassword(admin.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewAdminToken(h.Cfg.JWTSecret, admin.ID, admin.Email, admin.Role, h.Cfg.TokenTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token": tok.Token,
		"admin": echo.Map{
			"id":    admin.ID,
			"email": admin.Email,
			"name":  admin.Name,
			"role":  admin.Role,
		},
	})
}
