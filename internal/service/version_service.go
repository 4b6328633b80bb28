package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arkan-dev/custodia-api/internal/dto"
	"github.com/arkan-dev/custodia-api/internal/models"
	"github.com/arkan-dev/custodia-api/internal/repository"
)

// VersionArchive snapshots customer records before they change and serves
// their version history.
type VersionArchive interface {
	// Snapshot stores prior's field values under the next version number
	// for the customer. Version numbers start at 1 and grow by one per
	// update. The max() read and the insert are not serialized against
	// concurrent updates to the same customer; two racing updates can
	// record the same version number.
	Snapshot(ctx context.Context, customerID uint, prior models.Customer, changedBy *uint) error
	ListForCustomer(ctx context.Context, customerID uint) ([]dto.CustomerVersionResponse, error)
}

type versionArchive struct {
	repo   repository.VersionRepository
	logger zerolog.Logger
}

// NewVersionArchive constructs the version archive.
func NewVersionArchive(repo repository.VersionRepository, logger zerolog.Logger) VersionArchive {
	return &versionArchive{
		repo:   repo,
		logger: logger.With().Str("component", "version_archive").Logger(),
	}
}

func (a *versionArchive) Snapshot(ctx context.Context, customerID uint, prior models.Customer, changedBy *uint) error {
	max, err := a.repo.MaxVersion(ctx, customerID)
	if err != nil {
		return err
	}

	version := models.CustomerVersion{
		CustomerID:    customerID,
		Name:          prior.Name,
		Address:       prior.Address,
		Phone:         prior.Phone,
		VersionNumber: max + 1,
		ChangedBy:     changedBy,
	}

	return a.repo.Create(ctx, &version)
}

func (a *versionArchive) ListForCustomer(ctx context.Context, customerID uint) ([]dto.CustomerVersionResponse, error) {
	rows, err := a.repo.ListForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CustomerVersionResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, dto.NewCustomerVersionResponse(row))
	}

	return responses, nil
}
