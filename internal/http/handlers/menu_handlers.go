package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/inventory-dashboard/internal/auth"
	"github.com/rogerio-castellano/inventory-dashboard/internal/http/middleware"
)

// MenuHandler godoc
// @Summary Navigation menu for the current user
// @Description Menu sections and capabilities derived from the user's role
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MenuResponse
// @Failure 401 {string} string "Unauthorized"
// @Router /menu [get]
func MenuHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r)
	role, ok := middleware.GetRole(r)
	if !ok {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	_ = writeJSON(w, http.StatusOK, MenuResponse{
		User:         user,
		Capabilities: role.Capabilities(),
		Sections:     auth.Menu(role),
	})
}
