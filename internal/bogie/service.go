package bogie

import (
	"context"
	"errors"
	"fmt"

	"kpa-forms-api/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrBogieChecksheetNotFound = errors.New("bogie checksheet not found")
	ErrDuplicateFormNumber     = errors.New("bogie checksheet formNumber already exists")
)

type BogieService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func (s *BogieService) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *BogieService) GetBogieChecksheetByFormNumber(ctx context.Context, formNumber string) (*BogieChecksheetForm, error) {
	var form BogieChecksheetForm
	err := s.DB.WithContext(ctx).
		Preload("BogieDetails").
		Preload("BogieChecksheet").
		Preload("BmbcChecksheet").
		Where("form_number = ?", formNumber).
		First(&form).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBogieChecksheetNotFound
		}
		return nil, fmt.Errorf("get bogie checksheet %q: %w", formNumber, err)
	}
	return &form, nil
}

// CreateBogieChecksheet stores the form and its three sub-records together.
func (s *BogieService) CreateBogieChecksheet(ctx context.Context, req *CreateBogieChecksheetRequest) (*BogieChecksheetForm, error) {
	if req == nil {
		return nil, ErrNestedGroupsRequired
	}

	form, err := req.toModel()
	if err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("BogieDetails", "BogieChecksheet", "BmbcChecksheet").Create(&form).Error; err != nil {
			return err
		}

		form.BogieDetails.FormID = form.ID
		form.BogieChecksheet.FormID = form.ID
		form.BmbcChecksheet.FormID = form.ID

		if err := tx.Create(&form.BogieDetails).Error; err != nil {
			return err
		}
		if err := tx.Create(&form.BogieChecksheet).Error; err != nil {
			return err
		}
		return tx.Create(&form.BmbcChecksheet).Error
	})
	if err != nil {
		if util.IsUniqueViolation(err) {
			return nil, ErrDuplicateFormNumber
		}
		return nil, fmt.Errorf("create bogie checksheet: %w", err)
	}

	s.log().Info("bogie checksheet created",
		zap.Int64("form_id", form.ID),
		zap.String("form_number", form.FormNumber),
	)
	return &form, nil
}
