package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/padraicbc/f1globe/dashboard"
	"github.com/padraicbc/f1globe/dataset"
)

// Options configures the chart limits, session lifetime and admin list.
type Options struct {
	Dashboard  dashboard.Options
	SessionTTL time.Duration
	AdminUsers []string
}

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db       *bun.DB
	tables   *dataset.Tables
	sessions *dashboard.Sessions
	opts     dashboard.Options
	admins   []string
	JWTKey   []byte
}

// New creates a Handler serving charts from tables. db is only used for
// authentication.
func New(db *bun.DB, tables *dataset.Tables, jwtKey []byte, opts Options) *Handler {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 12 * time.Hour
	}
	if len(opts.AdminUsers) == 0 {
		opts.AdminUsers = []string{"admin"}
	}
	return &Handler{
		db:       db,
		tables:   tables,
		sessions: dashboard.NewSessions(tables, opts.Dashboard, opts.SessionTTL),
		opts:     opts.Dashboard,
		admins:   opts.AdminUsers,
		JWTKey:   jwtKey,
	}
}

// Sessions exposes the per-user dashboard state.
func (h *Handler) Sessions() *dashboard.Sessions { return h.sessions }

// Validator adapts go-playground/validator to echo.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns an echo.Validator that reports failures as 400s.
func NewValidator() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator.
func (cv *Validator) Validate(i interface{}) error {
	if err := cv.v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// intParam parses an optional integer query param; missing means def.
func intParam(c echo.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+" param")
	}
	return n, nil
}
