package booking

import (
	"context"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/booking"
)

type ListActive struct {
	repo domain.Repository
}

func NewListActive(repo domain.Repository) *ListActive {
	return &ListActive{repo: repo}
}

func (uc *ListActive) Execute(
	ctx context.Context,
	clientID uint,
) ([]domain.ActiveAppointment, error) {
	return uc.repo.ListActive(ctx, clientID)
}
