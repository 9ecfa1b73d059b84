package handlers

import (
	"net/http"

	portssvc "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/services"
	"github.com/congnodev/cashflow_mgmt_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// branchHandler handles HTTP requests related to branches.
type branchHandler struct {
	branchService portssvc.BranchSvcFacade
}

// registerBranchRoutes registers routes related to branches. Branches are
// seeded reference data, so the surface is read-only.
func registerBranchRoutes(rg *gin.RouterGroup, svc portssvc.BranchSvcFacade) {
	h := &branchHandler{branchService: svc}

	branches := rg.Group("/branches")
	{
		branches.GET("", h.listBranches)
		branches.GET("/:id", h.getBranch)
	}
}

// getBranch godoc
// @Summary Get a branch by ID
// @Tags branches
// @Produce json
// @Param id path string true "Branch ID"
// @Success 200 {object} dto.BranchResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{id} [get]
func (h *branchHandler) getBranch(c *gin.Context) {
	branch, err := h.branchService.GetBranchByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve branch")
		return
	}
	c.JSON(http.StatusOK, dto.ToBranchResponse(branch))
}

// listBranches godoc
// @Summary List branches
// @Tags branches
// @Produce json
// @Success 200 {array} dto.BranchResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches [get]
func (h *branchHandler) listBranches(c *gin.Context) {
	branches, err := h.branchService.ListBranches(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list branches")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBranchResponse(branches))
}
