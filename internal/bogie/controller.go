package bogie

import (
	"errors"
	"fmt"
	"net/http"

	"kpa-forms-api/internal/metrics"
	"kpa-forms-api/internal/util"

	"github.com/gin-gonic/gin"
)

const formType = "bogie_checksheet"

type BogieController struct {
	BogieService BogieServiceAPI
	Metrics      *metrics.Metrics
}

// POST /api/forms/bogie-checksheet
func (bc *BogieController) CreateBogieChecksheet(c *gin.Context) {
	var req CreateBogieChecksheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bc.Metrics.ObserveFormOperation(formType, "create", metrics.OutcomeInvalid)
		util.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Normalize(); err != nil {
		bc.Metrics.ObserveFormOperation(formType, "create", metrics.OutcomeInvalid)
		util.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	conflictMsg := fmt.Sprintf("Bogie checksheet with formNumber '%s' already exists.", req.FormNumber)

	_, err := bc.BogieService.GetBogieChecksheetByFormNumber(ctx, req.FormNumber)
	switch {
	case err == nil:
		bc.Metrics.ObserveFormOperation(formType, "create", metrics.OutcomeConflict)
		util.RespondError(c, http.StatusBadRequest, conflictMsg)
		return
	case !errors.Is(err, ErrBogieChecksheetNotFound):
		bc.Metrics.ObserveFormOperation(formType, "create", metrics.OutcomeError)
		util.RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	form, err := bc.BogieService.CreateBogieChecksheet(ctx, &req)
	if err != nil {
		if errors.Is(err, ErrDuplicateFormNumber) {
			bc.Metrics.ObserveFormOperation(formType, "create", metrics.OutcomeConflict)
			util.RespondError(c, http.StatusBadRequest, conflictMsg)
			return
		}
		bc.Metrics.ObserveFormOperation(formType, "create", metrics.OutcomeError)
		util.RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	bc.Metrics.ObserveFormOperation(formType, "create", metrics.OutcomeSuccess)
	util.RespondSuccess(c, http.StatusCreated, "Bogie checksheet submitted successfully.", toSummary(form))
}
