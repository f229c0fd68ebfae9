package wheelspec

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kpa-forms-api/internal/metrics"
	"kpa-forms-api/internal/util"

	"github.com/gin-gonic/gin"
)

const formType = "wheel_specification"

var nowFunc = time.Now

type WheelSpecController struct {
	WheelSpecService WheelSpecServiceAPI
	Metrics          *metrics.Metrics
}

// POST /api/forms/wheel-specifications
func (wc *WheelSpecController) CreateWheelSpecification(c *gin.Context) {
	var req CreateWheelSpecificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		wc.observe("create", metrics.OutcomeInvalid)
		util.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(nowFunc()); err != nil {
		wc.observe("create", metrics.OutcomeInvalid)
		util.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	formNumber := strings.TrimSpace(req.FormNumber)
	req.FormNumber = formNumber
	req.SubmittedBy = strings.TrimSpace(req.SubmittedBy)

	existing, err := wc.WheelSpecService.QueryWheelSpecifications(ctx, WheelSpecificationFilter{FormNumber: &formNumber}, 0, 1)
	if err != nil {
		wc.observe("create", metrics.OutcomeError)
		util.RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if len(existing) > 0 {
		wc.observe("create", metrics.OutcomeConflict)
		util.RespondError(c, http.StatusBadRequest, ErrDuplicateFormNumber.Error())
		return
	}

	form, err := wc.WheelSpecService.CreateWheelSpecification(ctx, &req)
	if err != nil {
		if errors.Is(err, ErrDuplicateFormNumber) {
			wc.observe("create", metrics.OutcomeConflict)
			util.RespondError(c, http.StatusBadRequest, err.Error())
			return
		}
		wc.observe("create", metrics.OutcomeError)
		util.RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	wc.observe("create", metrics.OutcomeSuccess)
	util.RespondSuccess(c, http.StatusCreated, "Wheel specification submitted successfully.", toSummary(form, "Saved"))
}

// GET /api/forms/wheel-specifications?formNumber=...&submittedBy=...&submittedDate=...&skip=...&limit=...
func (wc *WheelSpecController) ListWheelSpecifications(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		util.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	skip, err := util.ParseIntOrDefault(c.Query("skip"), 0)
	if err != nil {
		util.RespondError(c, http.StatusBadRequest, "invalid skip")
		return
	}
	limit, err := util.ParseIntOrDefault(c.Query("limit"), DefaultLimit)
	if err != nil {
		util.RespondError(c, http.StatusBadRequest, "invalid limit")
		return
	}

	forms, err := wc.WheelSpecService.QueryWheelSpecifications(c.Request.Context(), filter, skip, limit)
	if err != nil {
		util.RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	items := make([]WheelSpecificationListItem, 0, len(forms))
	for i := range forms {
		items = append(items, toListItem(&forms[i]))
	}

	util.RespondSuccess(c, http.StatusOK, "Filtered wheel specification forms fetched successfully.", items)
}

// PUT /api/forms/wheel-specifications/:form_id
func (wc *WheelSpecController) UpdateWheelSpecification(c *gin.Context) {
	id, err := parseFormID(c)
	if err != nil {
		util.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateWheelSpecificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		wc.observe("update", metrics.OutcomeInvalid)
		util.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	patch, err := req.Patch(nowFunc())
	if err != nil {
		wc.observe("update", metrics.OutcomeInvalid)
		util.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	existing, err := wc.WheelSpecService.GetWheelSpecificationByID(ctx, id)
	if err != nil {
		wc.respondLookupError(c, "update", err, fmt.Sprintf("Form with ID %d not found", id))
		return
	}

	updated, err := wc.WheelSpecService.UpdateWheelSpecification(ctx, existing, patch)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateFormNumber):
			wc.observe("update", metrics.OutcomeConflict)
			util.RespondError(c, http.StatusBadRequest, err.Error())
		default:
			wc.respondLookupError(c, "update", err, fmt.Sprintf("Form with ID %d not found", id))
		}
		return
	}

	wc.observe("update", metrics.OutcomeSuccess)
	util.RespondSuccess(c, http.StatusOK, fmt.Sprintf("Form ID %d updated successfully.", id), toSummary(updated, "Updated"))
}

// DELETE /api/forms/wheel-specifications/:form_id
func (wc *WheelSpecController) DeleteWheelSpecification(c *gin.Context) {
	id, err := parseFormID(c)
	if err != nil {
		util.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := wc.WheelSpecService.DeleteWheelSpecification(c.Request.Context(), id); err != nil {
		wc.respondLookupError(c, "delete", err, fmt.Sprintf("Form with ID %d not found or already deleted", id))
		return
	}

	wc.observe("delete", metrics.OutcomeSuccess)
	util.RespondSuccess(c, http.StatusOK, fmt.Sprintf("Form ID %d has been deleted successfully.", id), gin.H{})
}

// GET /api/forms/wheel-specifications/export?format=xlsx|csv plus the list filters
func (wc *WheelSpecController) ExportWheelSpecifications(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		util.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	format, err := NormalizeExportFormat(c.Query("format"))
	if err != nil {
		util.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := wc.WheelSpecService.ExportWheelSpecifications(c.Request.Context(), filter, format)
	if err != nil {
		util.RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, res.FileName))
	c.Data(http.StatusOK, res.ContentType, res.Data)
}

func (wc *WheelSpecController) respondLookupError(c *gin.Context, op string, err error, notFoundMsg string) {
	if errors.Is(err, ErrWheelSpecificationNotFound) {
		wc.observe(op, metrics.OutcomeNotFound)
		util.RespondError(c, http.StatusNotFound, notFoundMsg)
		return
	}
	wc.observe(op, metrics.OutcomeError)
	util.RespondError(c, http.StatusInternalServerError, err.Error())
}

func (wc *WheelSpecController) observe(op, outcome string) {
	wc.Metrics.ObserveFormOperation(formType, op, outcome)
}

func parseFormID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("form_id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid form_id")
	}
	return id, nil
}

func parseFilter(c *gin.Context) (WheelSpecificationFilter, error) {
	filter := WheelSpecificationFilter{
		FormNumber:  util.TrimmedOrNil(c.Query("formNumber")),
		SubmittedBy: util.TrimmedOrNil(c.Query("submittedBy")),
	}

	if raw := util.TrimmedOrNil(c.Query("submittedDate")); raw != nil {
		d, err := util.ParseDate(*raw)
		if err != nil {
			return filter, errors.New("submittedDate: " + err.Error())
		}
		filter.SubmittedDate = &d
	}
	return filter, nil
}
