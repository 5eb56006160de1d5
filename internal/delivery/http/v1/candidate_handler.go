package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-screening-backend/internal/delivery/http/response"
	"go-screening-backend/internal/domain"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

// NewCandidateHandler registers the stored-record routes. The group is
// expected to carry admin auth.
func NewCandidateHandler(admin *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := admin.Group("/candidates")
	{
		candidates.GET("", handler.ListRecords)
		candidates.GET("/:id", handler.GetRecord)
		candidates.DELETE("/:id", handler.DeleteRecord)
	}
}

// ListRecords godoc
// @Summary      List candidate records
// @Description  Returns the IDs of all stored candidate records.
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=[]string}
// @Failure      401  {object}  response.Response
// @Router       /candidates [get]
// @Security     BearerAuth
func (h *CandidateHandler) ListRecords(c *gin.Context) {
	ids, err := h.candidateUC.ListRecords(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate records", ids)
}

// GetRecord godoc
// @Summary      Get a candidate record
// @Description  Returns one stored candidate record by ID.
// @Tags         candidates
// @Produce      json
// @Param        id  path      string  true  "Candidate ID"
// @Success      200 {object}  response.Response{data=domain.Candidate}
// @Failure      401 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Router       /candidates/{id} [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetRecord(c *gin.Context) {
	record, err := h.candidateUC.GetRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate record", record)
}

// DeleteRecord godoc
// @Summary      Delete a candidate record
// @Description  Removes a stored candidate record. Used for data-erasure requests.
// @Tags         candidates
// @Produce      json
// @Param        id  path      string  true  "Candidate ID"
// @Success      200 {object}  response.Response
// @Failure      401 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Router       /candidates/{id} [delete]
// @Security     BearerAuth
func (h *CandidateHandler) DeleteRecord(c *gin.Context) {
	if err := h.candidateUC.DeleteRecord(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate record deleted", nil)
}
