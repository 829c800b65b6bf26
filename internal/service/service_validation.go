package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Comraich/sortr-sub001/internal/validators"
	"github.com/Comraich/sortr-sub001/models"
)

// presence reports whether a required JSON field was given.
type presence struct {
	field string
	given bool
}

// validateInput runs the struct tag rules on in and adds a "required"
// violation for every absent field in required. All violations are
// returned together.
func validateInput(ctx context.Context, v validators.Validator, in any, required ...presence) error {
	var fields []models.FieldError

	if err := v.Validate(ctx, in); err != nil {
		var verr *validators.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		fields = append(fields, verr.Fields...)
	}

	for _, r := range required {
		if !r.given {
			fields = append(fields, models.FieldError{Field: r.field, Rule: "required", Message: "is required"})
		}
	}

	if len(fields) > 0 {
		return validators.NewValidationError(fields...)
	}
	return nil
}

func nonBlank(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

type LocationValidationService struct {
	inner     LocationService
	validator validators.Validator
}

func NewLocationValidationService(validator validators.Validator) LocationServiceWrapper {
	return &LocationValidationService{validator: validator}
}

func (v *LocationValidationService) Wrap(inner LocationService) LocationService {
	v.inner = inner
	return v
}

func (v *LocationValidationService) Create(ctx context.Context, in models.LocationInput) (models.Location, error) {
	if err := validateInput(ctx, v.validator, in, presence{"name", nonBlank(in.Name)}); err != nil {
		return models.Location{}, err
	}
	return v.inner.Create(ctx, in)
}

func (v *LocationValidationService) Get(ctx context.Context, id int64) (models.Location, error) {
	return v.inner.Get(ctx, id)
}

func (v *LocationValidationService) List(ctx context.Context, page models.Page) (models.ListResponse[models.Location], error) {
	return v.inner.List(ctx, page)
}

func (v *LocationValidationService) Tree(ctx context.Context) (models.LocationTree, error) {
	return v.inner.Tree(ctx)
}

func (v *LocationValidationService) Children(ctx context.Context, id int64) ([]models.Location, error) {
	return v.inner.Children(ctx, id)
}

func (v *LocationValidationService) Update(ctx context.Context, id int64, in models.LocationInput) (models.Updated[models.Location], error) {
	if err := validateInput(ctx, v.validator, in, presence{"name", in.Name == nil || nonBlank(in.Name)}); err != nil {
		return models.Updated[models.Location]{}, err
	}
	return v.inner.Update(ctx, id, in)
}

func (v *LocationValidationService) Replace(ctx context.Context, id int64, in models.LocationInput) (models.Updated[models.Location], error) {
	if err := validateInput(ctx, v.validator, in, presence{"name", nonBlank(in.Name)}); err != nil {
		return models.Updated[models.Location]{}, err
	}
	return v.inner.Replace(ctx, id, in)
}

func (v *LocationValidationService) Delete(ctx context.Context, id int64) (models.Location, error) {
	return v.inner.Delete(ctx, id)
}

type BoxValidationService struct {
	inner     BoxService
	validator validators.Validator
}

func NewBoxValidationService(validator validators.Validator) BoxServiceWrapper {
	return &BoxValidationService{validator: validator}
}

func (v *BoxValidationService) Wrap(inner BoxService) BoxService {
	v.inner = inner
	return v
}

func (v *BoxValidationService) Create(ctx context.Context, in models.BoxInput) (models.Box, error) {
	err := validateInput(ctx, v.validator, in,
		presence{"name", nonBlank(in.Name)},
		presence{"locationId", in.LocationID != nil},
	)
	if err != nil {
		return models.Box{}, err
	}
	return v.inner.Create(ctx, in)
}

func (v *BoxValidationService) Get(ctx context.Context, id int64) (models.Box, error) {
	return v.inner.Get(ctx, id)
}

func (v *BoxValidationService) List(ctx context.Context, filter models.BoxFilter) (models.ListResponse[models.Box], error) {
	return v.inner.List(ctx, filter)
}

func (v *BoxValidationService) Update(ctx context.Context, id int64, in models.BoxInput) (models.Updated[models.Box], error) {
	if err := validateInput(ctx, v.validator, in, presence{"name", in.Name == nil || nonBlank(in.Name)}); err != nil {
		return models.Updated[models.Box]{}, err
	}
	return v.inner.Update(ctx, id, in)
}

func (v *BoxValidationService) Replace(ctx context.Context, id int64, in models.BoxInput) (models.Updated[models.Box], error) {
	err := validateInput(ctx, v.validator, in,
		presence{"name", nonBlank(in.Name)},
		presence{"locationId", in.LocationID != nil},
	)
	if err != nil {
		return models.Updated[models.Box]{}, err
	}
	return v.inner.Replace(ctx, id, in)
}

func (v *BoxValidationService) Delete(ctx context.Context, id int64) (models.Box, error) {
	return v.inner.Delete(ctx, id)
}

type ItemValidationService struct {
	inner     ItemService
	validator validators.Validator
}

func NewItemValidationService(validator validators.Validator) ItemServiceWrapper {
	return &ItemValidationService{validator: validator}
}

func (v *ItemValidationService) Wrap(inner ItemService) ItemService {
	v.inner = inner
	return v
}

func (v *ItemValidationService) Create(ctx context.Context, in models.ItemInput) (models.Item, error) {
	if err := validateInput(ctx, v.validator, in, presence{"name", nonBlank(in.Name)}); err != nil {
		return models.Item{}, err
	}
	return v.inner.Create(ctx, in)
}

func (v *ItemValidationService) Get(ctx context.Context, id int64) (models.Item, error) {
	return v.inner.Get(ctx, id)
}

func (v *ItemValidationService) List(ctx context.Context, filter models.ItemFilter) (models.ListResponse[models.Item], error) {
	return v.inner.List(ctx, filter)
}

func (v *ItemValidationService) Update(ctx context.Context, id int64, in models.ItemInput) (models.Updated[models.Item], error) {
	if err := validateInput(ctx, v.validator, in, presence{"name", in.Name == nil || nonBlank(in.Name)}); err != nil {
		return models.Updated[models.Item]{}, err
	}
	return v.inner.Update(ctx, id, in)
}

func (v *ItemValidationService) Replace(ctx context.Context, id int64, in models.ItemInput) (models.Updated[models.Item], error) {
	if err := validateInput(ctx, v.validator, in, presence{"name", nonBlank(in.Name)}); err != nil {
		return models.Updated[models.Item]{}, err
	}
	return v.inner.Replace(ctx, id, in)
}

func (v *ItemValidationService) Delete(ctx context.Context, id int64) (models.Item, error) {
	return v.inner.Delete(ctx, id)
}
