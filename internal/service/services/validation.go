package services

import (
	"fmt"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/services/models"
)

// validateService проверяет бизнес-правила, которые не выражаются тегами validator
func validateService(req *models.ServiceRequest) error {
	verr := &domain.ValidationError{}

	if req.Price == nil {
		verr.Add("price", "is required")
	} else if msg := domain.CheckPrice(*req.Price); msg != "" {
		verr.Add("price", msg)
	}

	if len(req.Features) == 0 {
		verr.Add("features", "must contain at least one feature")
	}
	for i, f := range req.Features {
		if f == "" {
			verr.Add(fmt.Sprintf("features[%d]", i), "must not be empty")
		}
	}

	if len(req.Name) < domain.MinNameLength {
		verr.Add("name", "is too short")
	}

	if verr.HasErrors() {
		return fmt.Errorf("%w: %w", ErrInvalidInput, verr)
	}
	return nil
}
