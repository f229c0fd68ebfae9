package wheelspec

import "context"

type WheelSpecServiceAPI interface {
	CreateWheelSpecification(ctx context.Context, req *CreateWheelSpecificationRequest) (*WheelSpecification, error)
	QueryWheelSpecifications(ctx context.Context, filter WheelSpecificationFilter, skip, limit int) ([]WheelSpecification, error)
	GetWheelSpecificationByID(ctx context.Context, id int64) (*WheelSpecification, error)
	UpdateWheelSpecification(ctx context.Context, existing *WheelSpecification, patch *WheelSpecificationPatch) (*WheelSpecification, error)
	DeleteWheelSpecification(ctx context.Context, id int64) (*WheelSpecification, error)
	ExportWheelSpecifications(ctx context.Context, filter WheelSpecificationFilter, format string) (*ExportResult, error)
}
