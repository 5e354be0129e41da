package identity

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-bot/internal/httperr"
	"github.com/BruksfildServices01/barber-bot/internal/models"
)

const defaultName = "Cliente"

// Service resolve a identidade do cliente a partir do endereço do
// canal de mensagens.
type Service interface {
	FindOrCreate(
		ctx context.Context,
		address string,
		displayName string,
	) (*models.Client, error)

	Rename(
		ctx context.Context,
		clientID uint,
		name string,
	) (*models.Client, error)
}

type GormService struct {
	db *gorm.DB
}

func NewGormService(db *gorm.DB) *GormService {
	return &GormService{db: db}
}

func (s *GormService) FindOrCreate(
	ctx context.Context,
	address string,
	displayName string,
) (*models.Client, error) {

	var client models.Client
	err := s.db.WithContext(ctx).
		Where("address = ?", address).
		First(&client).Error

	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	name := displayName
	if name == "" {
		name = defaultName
	}

	client = models.Client{Name: name, Address: address}
	if err := s.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

func (s *GormService) Rename(
	ctx context.Context,
	clientID uint,
	name string,
) (*models.Client, error) {

	res := s.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", clientID).
		Update("name", name)

	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	var client models.Client
	if err := s.db.WithContext(ctx).First(&client, clientID).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

var _ Service = (*GormService)(nil)
