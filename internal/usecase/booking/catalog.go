package booking

import (
	"context"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/booking"
	"github.com/BruksfildServices01/barber-bot/internal/models"
)

type Catalog struct {
	repo domain.Repository
}

func NewCatalog(repo domain.Repository) *Catalog {
	return &Catalog{repo: repo}
}

func (uc *Catalog) GetByName(
	ctx context.Context,
	name string,
) (*models.Service, error) {
	return uc.repo.GetServiceByName(ctx, name)
}

func (uc *Catalog) List(ctx context.Context) ([]models.Service, error) {
	return uc.repo.ListServices(ctx)
}
