package web

import (
	"net/http"

	"planner/internal/application/orchestrators"
	"planner/internal/application/projections"
)

// handleCategories handles GET/POST for /api/categories
func handleCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		list, err := projections.QueryGetCategories(ctx, stores.CategoryStore)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var input struct {
			Name  string `json:"name"`
			Color string `json:"color"`
		}
		if err := strictDecode(r, &input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		c, err := orchestrators.ExecuteCreateCategory(ctx, orchestrators.CreateCategoryInput{
			Name:  input.Name,
			Color: input.Color,
		}, orchestrators.CreateCategoryDeps{
			CategoryStore: stores.CategoryStore,
			GenerateID:    generateID,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}
