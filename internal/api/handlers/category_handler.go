package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/taskflow/taskflow-be/internal/auth"
	"github.com/taskflow/taskflow-be/internal/models"
	"github.com/taskflow/taskflow-be/internal/services"
)

// CategoryHandler handles HTTP requests related to categories.
type CategoryHandler struct {
	service services.CategoryServiceProvider
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service services.CategoryServiceProvider) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// CategoryPayload defines the structure for category creation requests.
type CategoryPayload struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// GetAll handles the request to list the caller's categories.
func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	categories, err := h.service.GetCategories(claims.UserID)
	if err != nil {
		handleServiceError(w, err, "Categories not found")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	writeJSON(w, http.StatusOK, categories)
}

// Create handles the request to create a new category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var payload CategoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.service.CreateCategory(claims.UserID, payload.Name, payload.Color)
	if err != nil {
		handleServiceError(w, err, "Category not found")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Category created successfully",
		"category": category,
	})
}
