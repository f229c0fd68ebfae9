package bogie

import "context"

type BogieServiceAPI interface {
	GetBogieChecksheetByFormNumber(ctx context.Context, formNumber string) (*BogieChecksheetForm, error)
	CreateBogieChecksheet(ctx context.Context, req *CreateBogieChecksheetRequest) (*BogieChecksheetForm, error)
}
