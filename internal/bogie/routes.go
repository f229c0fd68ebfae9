package bogie

import (
	"kpa-forms-api/internal/metrics"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r gin.IRouter, bogieService BogieServiceAPI, m *metrics.Metrics) {
	bogieController := &BogieController{
		BogieService: bogieService,
		Metrics:      m,
	}

	formsGroup := r.Group("/api/forms")
	{
		formsGroup.POST("/bogie-checksheet", bogieController.CreateBogieChecksheet)
	}
}
