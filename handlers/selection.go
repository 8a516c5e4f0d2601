package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/f1globe/dashboard"
	mw "github.com/padraicbc/f1globe/middleware"
)

func (h *Handler) store(c echo.Context) (*dashboard.Store, error) {
	user := mw.Username(c)
	if user == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return h.sessions.Get(user), nil
}

// GetSelection returns the caller's current selection.
func (h *Handler) GetSelection(c echo.Context) error {
	st, err := h.store(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st.State().Selection())
}

// PutSelection replaces the caller's selection and returns the view
// derived from it.
func (h *Handler) PutSelection(c echo.Context) error {
	st, err := h.store(c)
	if err != nil {
		return err
	}

	var sel dashboard.Selection
	if err := c.Bind(&sel); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&sel); err != nil {
		return err
	}

	next := st.Dispatch(func(s dashboard.State) dashboard.State { return s.Apply(sel) })
	zap.L().Debug("selection updated",
		zap.String("user", mw.Username(c)),
		zap.String("circuit", next.Selection().CircuitID),
		zap.Int("season", next.Selection().Season),
	)
	return c.JSON(http.StatusOK, next.View())
}

// View returns the view for the caller's current selection.
func (h *Handler) View(c echo.Context) error {
	st, err := h.store(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st.State().View())
}
