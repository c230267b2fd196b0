package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/usecase/household"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/integration/entrypoint/dto"
)

// HouseholdController handles household endpoints.
type HouseholdController struct {
	listUseCase        *household.ListHouseholdsUseCase
	createUseCase      *household.CreateHouseholdUseCase
	listMembersUseCase *household.ListMembersUseCase
	addMemberUseCase   *household.AddMemberUseCase
}

// NewHouseholdController creates a new household controller instance.
func NewHouseholdController(
	listUseCase *household.ListHouseholdsUseCase,
	createUseCase *household.CreateHouseholdUseCase,
	listMembersUseCase *household.ListMembersUseCase,
	addMemberUseCase *household.AddMemberUseCase,
) *HouseholdController {
	return &HouseholdController{
		listUseCase:        listUseCase,
		createUseCase:      createUseCase,
		listMembersUseCase: listMembersUseCase,
		addMemberUseCase:   addMemberUseCase,
	}
}

// List handles GET /households requests.
func (c *HouseholdController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), household.ListHouseholdsInput{UserID: userID})
	if err != nil {
		handleError(ctx, err, "user_id", userID)
		return
	}

	ctx.JSON(http.StatusOK, dto.Wrap(dto.ToHouseholdListResponse(output.Households)))
}

// Create handles POST /households requests.
func (c *HouseholdController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateHouseholdRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, http.StatusBadRequest, "Invalid request body", string(domainerror.ErrCodeMissingHouseholdFields))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), household.CreateHouseholdInput{
		Name:         req.Name,
		BaseCurrency: entity.Currency(req.BaseCurrency),
		UserID:       userID,
	})
	if err != nil {
		handleError(ctx, err, "user_id", userID)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Wrap(dto.ToHouseholdResponse(output.Household, output.Role)))
}

// ListMembers handles GET /households/:id/members requests.
func (c *HouseholdController) ListMembers(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	householdID, ok := parseHouseholdID(ctx, ctx.Param("id"))
	if !ok {
		return
	}

	output, err := c.listMembersUseCase.Execute(ctx.Request.Context(), household.ListMembersInput{
		HouseholdID: householdID,
		UserID:      userID,
	})
	if err != nil {
		handleError(ctx, err, "household_id", householdID)
		return
	}

	ctx.JSON(http.StatusOK, dto.Wrap(dto.ToMemberListResponse(output.Members)))
}

// AddMember handles POST /households/:id/members requests.
func (c *HouseholdController) AddMember(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	householdID, ok := parseHouseholdID(ctx, ctx.Param("id"))
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, http.StatusBadRequest, "Invalid request body", string(domainerror.ErrCodeMissingHouseholdFields))
		return
	}
	memberID, err := uuid.Parse(req.UserID)
	if err != nil {
		respond(ctx, http.StatusBadRequest, "Invalid user ID format", string(domainerror.ErrCodeInvalidMemberUserID))
		return
	}

	output, err := c.addMemberUseCase.Execute(ctx.Request.Context(), household.AddMemberInput{
		HouseholdID: householdID,
		UserID:      userID,
		MemberID:    memberID,
		Role:        entity.HouseholdRole(req.Role),
	})
	if err != nil {
		handleError(ctx, err, "household_id", householdID)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Wrap(dto.ToMemberResponse(output.Member)))
}
