// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/usecase/category"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase   *category.ListCategoriesUseCase
	createUseCase *category.CreateCategoryUseCase
	updateUseCase *category.UpdateCategoryUseCase
	deleteUseCase *category.DeleteCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	createUseCase *category.CreateCategoryUseCase,
	updateUseCase *category.UpdateCategoryUseCase,
	deleteUseCase *category.DeleteCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	householdID, ok := parseHouseholdID(ctx, ctx.Query("household_id"))
	if !ok {
		return
	}

	input := category.ListCategoriesInput{
		HouseholdID: householdID,
		UserID:      userID,
	}

	// Filter by kind if provided
	if kind := ctx.Query("kind"); kind != "" {
		k := entity.CategoryKind(kind)
		input.Kind = &k
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err, "household_id", householdID)
		return
	}

	ctx.JSON(http.StatusOK, dto.Wrap(dto.ToCategoryListResponse(output.Categories)))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, http.StatusBadRequest, "Invalid request body", string(domainerror.ErrCodeMissingCategoryFields))
		return
	}

	householdID, ok := parseHouseholdID(ctx, req.HouseholdID)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		HouseholdID: householdID,
		UserID:      userID,
		Name:        req.Name,
		Kind:        entity.CategoryKind(req.Kind),
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		handleError(ctx, err, "household_id", householdID)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Wrap(dto.ToCategoryResponse(output.Category)))
}

// Update handles PATCH /categories/:id requests.
func (c *CategoryController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respond(ctx, http.StatusBadRequest, "Invalid category ID format", string(domainerror.ErrCodeMissingCategoryFields))
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, http.StatusBadRequest, "Invalid request body", string(domainerror.ErrCodeMissingCategoryFields))
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), category.UpdateCategoryInput{
		CategoryID: categoryID,
		UserID:     userID,
		Name:       req.Name,
		Color:      req.Color,
		Icon:       req.Icon,
	})
	if err != nil {
		handleError(ctx, err, "category_id", categoryID)
		return
	}

	ctx.JSON(http.StatusOK, dto.Wrap(dto.ToCategoryResponse(output.Category)))
}

// Delete handles DELETE /categories/:id requests.
func (c *CategoryController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respond(ctx, http.StatusBadRequest, "Invalid category ID format", string(domainerror.ErrCodeMissingCategoryFields))
		return
	}

	_, err = c.deleteUseCase.Execute(ctx.Request.Context(), category.DeleteCategoryInput{
		CategoryID: categoryID,
		UserID:     userID,
	})
	if err != nil {
		handleError(ctx, err, "category_id", categoryID)
		return
	}

	// Return no content on success
	ctx.Status(http.StatusNoContent)
}
