package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/arkan-dev/custodia-api/internal/dto"
	"github.com/arkan-dev/custodia-api/internal/models"
	"github.com/arkan-dev/custodia-api/internal/repository"
)

// ErrCustomerNotFound indicates the customer id has no matching row.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerService orchestrates customer record management. Every mutation
// that completes produces exactly one audit entry; update additionally
// archives the pre-image before the row is overwritten.
type CustomerService interface {
	List(ctx context.Context) ([]dto.CustomerResponse, error)
	ListDeleted(ctx context.Context) ([]dto.CustomerResponse, error)
	Get(ctx context.Context, id uint) (dto.CustomerResponse, error)
	Versions(ctx context.Context, id uint) (dto.CustomerVersionsResponse, error)
	Create(ctx context.Context, payload dto.CustomerPayload, actor Actor) (dto.CustomerResponse, error)
	Update(ctx context.Context, id uint, payload dto.CustomerPayload, actor Actor) (dto.CustomerResponse, error)
	Delete(ctx context.Context, id uint, actor Actor) error
	Restore(ctx context.Context, id uint, actor Actor) error
}

type customerService struct {
	repo     repository.CustomerRepository
	archive  VersionArchive
	activity ActivityRecorder
	logger   zerolog.Logger
}

// NewCustomerService constructs the customer service.
func NewCustomerService(repo repository.CustomerRepository, archive VersionArchive, activity ActivityRecorder, logger zerolog.Logger) CustomerService {
	return &customerService{
		repo:     repo,
		archive:  archive,
		activity: activity,
		logger:   logger.With().Str("component", "customer_service").Logger(),
	}
}

func (s *customerService) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	customers, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	return customerResponses(customers), nil
}

func (s *customerService) ListDeleted(ctx context.Context) ([]dto.CustomerResponse, error) {
	customers, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, err
	}

	return customerResponses(customers), nil
}

func (s *customerService) Get(ctx context.Context, id uint) (dto.CustomerResponse, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CustomerResponse{}, ErrCustomerNotFound
		}
		return dto.CustomerResponse{}, err
	}

	return dto.NewCustomerResponse(customer), nil
}

func (s *customerService) Versions(ctx context.Context, id uint) (dto.CustomerVersionsResponse, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return dto.CustomerVersionsResponse{}, err
	}

	versions, err := s.archive.ListForCustomer(ctx, id)
	if err != nil {
		return dto.CustomerVersionsResponse{}, err
	}

	return dto.CustomerVersionsResponse{Customer: customer, Versions: versions}, nil
}

func (s *customerService) Create(ctx context.Context, payload dto.CustomerPayload, actor Actor) (dto.CustomerResponse, error) {
	customer := models.Customer{
		Name:    payload.Name,
		Address: payload.Address,
		Phone:   payload.Phone,
	}

	if err := s.repo.Create(ctx, &customer); err != nil {
		return dto.CustomerResponse{}, err
	}

	recordID := customer.ID
	s.activity.Record(ctx, ActivityEntry{
		UserID:      actor.UserID,
		Type:        models.ActivityCreate,
		Description: fmt.Sprintf("Created customer: %s", customer.Name),
		Table:       tableCustomer(),
		RecordID:    &recordID,
		Meta:        actor.Meta,
	})

	return dto.NewCustomerResponse(customer), nil
}

// Update archives the current field values, overwrites the row, then audits.
// The snapshot is written before the overwrite so a crash in between leaves
// at worst a stray version, never a lost pre-image.
func (s *customerService) Update(ctx context.Context, id uint, payload dto.CustomerPayload, actor Actor) (dto.CustomerResponse, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CustomerResponse{}, ErrCustomerNotFound
		}
		return dto.CustomerResponse{}, err
	}

	if err := s.archive.Snapshot(ctx, id, current, actor.UserID); err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("failed to archive customer version: %w", err)
	}

	updates := map[string]interface{}{
		"name":    payload.Name,
		"address": payload.Address,
		"phone":   payload.Phone,
	}
	if err := s.repo.UpdateFields(ctx, id, updates); err != nil {
		return dto.CustomerResponse{}, err
	}

	recordID := id
	s.activity.Record(ctx, ActivityEntry{
		UserID:      actor.UserID,
		Type:        models.ActivityUpdate,
		Description: fmt.Sprintf("Updated customer: %s (ID: %d)", payload.Name, id),
		Table:       tableCustomer(),
		RecordID:    &recordID,
		Meta:        actor.Meta,
	})

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.CustomerResponse{}, err
	}

	return dto.NewCustomerResponse(updated), nil
}

// Delete soft deletes an active customer. A missing or already-deleted id is
// a benign no-op: no mutation, no audit entry, no error.
func (s *customerService) Delete(ctx context.Context, id uint, actor Actor) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debug().Uint("customer_id", id).Msg("delete requested for unknown customer")
			return nil
		}
		return err
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	recordID := id
	s.activity.Record(ctx, ActivityEntry{
		UserID:      actor.UserID,
		Type:        models.ActivityDelete,
		Description: fmt.Sprintf("Soft deleted customer: %s (ID: %d)", current.Name, id),
		Table:       tableCustomer(),
		RecordID:    &recordID,
		Meta:        actor.Meta,
	})

	return nil
}

// Restore clears the deletion stamp. Restoring an already-active customer
// succeeds and is still audited; a missing id is a benign no-op.
func (s *customerService) Restore(ctx context.Context, id uint, actor Actor) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debug().Uint("customer_id", id).Msg("restore requested for unknown customer")
			return nil
		}
		return err
	}

	if err := s.repo.Restore(ctx, id); err != nil {
		return err
	}

	recordID := id
	s.activity.Record(ctx, ActivityEntry{
		UserID:      actor.UserID,
		Type:        models.ActivityRestore,
		Description: fmt.Sprintf("Restored customer: %s (ID: %d)", current.Name, id),
		Table:       tableCustomer(),
		RecordID:    &recordID,
		Meta:        actor.Meta,
	})

	return nil
}

func customerResponses(customers []models.Customer) []dto.CustomerResponse {
	responses := make([]dto.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		responses = append(responses, dto.NewCustomerResponse(customer))
	}
	return responses
}

func tableCustomer() *string {
	name := models.Customer{}.TableName()
	return &name
}
