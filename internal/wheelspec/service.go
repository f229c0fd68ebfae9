package wheelspec

import (
	"context"
	"errors"
	"fmt"

	"kpa-forms-api/internal/util"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

var (
	ErrWheelSpecificationNotFound = errors.New("wheel specification not found")
	ErrDuplicateFormNumber        = errors.New("formNumber already exists")
)

type WheelSpecService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func (s *WheelSpecService) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// CreateWheelSpecification inserts the form and its fields row in one transaction.
// Callers that want a friendly duplicate message check first; the unique index still
// decides and surfaces as ErrDuplicateFormNumber.
func (s *WheelSpecService) CreateWheelSpecification(ctx context.Context, req *CreateWheelSpecificationRequest) (*WheelSpecification, error) {
	if req == nil || req.Fields == nil {
		return nil, errors.New("fields are required")
	}

	submitted, err := util.ParseDate(req.SubmittedDate)
	if err != nil {
		return nil, err
	}

	form := WheelSpecification{
		FormNumber:    req.FormNumber,
		SubmittedBy:   req.SubmittedBy,
		SubmittedDate: datatypes.Date(submitted),
		Fields:        req.Fields.toModel(),
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Fields").Create(&form).Error; err != nil {
			return err
		}
		form.Fields.FormID = form.ID
		return tx.Create(&form.Fields).Error
	})
	if err != nil {
		if util.IsUniqueViolation(err) {
			return nil, ErrDuplicateFormNumber
		}
		return nil, fmt.Errorf("create wheel specification: %w", err)
	}

	s.log().Info("wheel specification created",
		zap.Int64("form_id", form.ID),
		zap.String("form_number", form.FormNumber),
	)
	return &form, nil
}

func (s *WheelSpecService) filtered(ctx context.Context, filter WheelSpecificationFilter) *gorm.DB {
	q := s.DB.WithContext(ctx).Model(&WheelSpecification{}).Preload("Fields")

	if filter.FormNumber != nil {
		q = q.Where("form_number = ?", *filter.FormNumber)
	}
	if filter.SubmittedBy != nil {
		q = q.Where("submitted_by = ?", *filter.SubmittedBy)
	}
	if filter.SubmittedDate != nil {
		q = q.Where("submitted_date = ?", datatypes.Date(*filter.SubmittedDate))
	}
	return q.Order("id ASC")
}

// QueryWheelSpecifications returns forms matching every non-nil filter criterion.
func (s *WheelSpecService) QueryWheelSpecifications(ctx context.Context, filter WheelSpecificationFilter, skip, limit int) ([]WheelSpecification, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	var forms []WheelSpecification
	if err := s.filtered(ctx, filter).Offset(skip).Limit(limit).Find(&forms).Error; err != nil {
		return nil, fmt.Errorf("query wheel specifications: %w", err)
	}
	return forms, nil
}

func (s *WheelSpecService) GetWheelSpecificationByID(ctx context.Context, id int64) (*WheelSpecification, error) {
	var form WheelSpecification
	err := s.DB.WithContext(ctx).Preload("Fields").First(&form, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWheelSpecificationNotFound
		}
		return nil, fmt.Errorf("get wheel specification %d: %w", id, err)
	}
	return &form, nil
}

// UpdateWheelSpecification writes only what the patch carries and returns the stored
// record as re-read after commit.
func (s *WheelSpecService) UpdateWheelSpecification(ctx context.Context, existing *WheelSpecification, patch *WheelSpecificationPatch) (*WheelSpecification, error) {
	if existing == nil {
		return nil, ErrWheelSpecificationNotFound
	}
	if patch == nil || patch.IsEmpty() {
		return s.GetWheelSpecificationByID(ctx, existing.ID)
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if root := patch.rootChanges(); len(root) > 0 {
			res := tx.Model(&WheelSpecification{}).Where("id = ?", existing.ID).Updates(root)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrWheelSpecificationNotFound
			}
		}

		if fields := patch.fieldChanges(); len(fields) > 0 {
			if err := tx.Model(&WheelSpecificationFields{}).
				Where("form_id = ?", existing.ID).
				Updates(fields).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrWheelSpecificationNotFound):
			return nil, err
		case util.IsUniqueViolation(err):
			return nil, ErrDuplicateFormNumber
		}
		return nil, fmt.Errorf("update wheel specification %d: %w", existing.ID, err)
	}

	updated, err := s.GetWheelSpecificationByID(ctx, existing.ID)
	if err != nil {
		return nil, err
	}

	s.log().Info("wheel specification updated",
		zap.Int64("form_id", updated.ID),
		zap.String("form_number", updated.FormNumber),
		zap.Int("field_changes", len(patch.Fields)),
	)
	return updated, nil
}

// DeleteWheelSpecification removes the form and its fields row. The returned record is
// the state read just before deletion.
func (s *WheelSpecService) DeleteWheelSpecification(ctx context.Context, id int64) (*WheelSpecification, error) {
	form, err := s.GetWheelSpecificationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_id = ?", id).Delete(&WheelSpecificationFields{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&WheelSpecification{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrWheelSpecificationNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrWheelSpecificationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("delete wheel specification %d: %w", id, err)
	}

	s.log().Info("wheel specification deleted",
		zap.Int64("form_id", form.ID),
		zap.String("form_number", form.FormNumber),
	)
	return form, nil
}
