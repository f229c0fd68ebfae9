package wheelspec

import (
	"kpa-forms-api/internal/metrics"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r gin.IRouter, wheelSpecService WheelSpecServiceAPI, m *metrics.Metrics) {
	wheelSpecController := &WheelSpecController{
		WheelSpecService: wheelSpecService,
		Metrics:          m,
	}

	wheelSpecGroup := r.Group("/api/forms/wheel-specifications")
	{
		wheelSpecGroup.POST("", wheelSpecController.CreateWheelSpecification)
		wheelSpecGroup.GET("", wheelSpecController.ListWheelSpecifications)
		wheelSpecGroup.GET("/export", wheelSpecController.ExportWheelSpecifications)
		wheelSpecGroup.PUT("/:form_id", wheelSpecController.UpdateWheelSpecification)
		wheelSpecGroup.DELETE("/:form_id", wheelSpecController.DeleteWheelSpecification)
	}
}
