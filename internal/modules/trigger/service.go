package trigger

import (
	"errors"
	"fmt"

	"github.com/hookfire/core/internal/models"
	"github.com/hookfire/core/internal/pkg/pagination"
	"github.com/hookfire/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Service handles trigger CRUD and run-record persistence.
type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List(userID string) ([]models.TriggerModel, error) {
	var items []models.TriggerModel
	return items, s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error
}

func (s *Service) GetByID(id string) (*models.TriggerModel, error) {
	var t models.TriggerModel
	if err := s.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (s *Service) Create(userID string, dto *CreateTriggerDTO) (*models.TriggerModel, error) {
	if !dto.Kind.Valid() {
		return nil, fmt.Errorf("unknown trigger kind %q", dto.Kind)
	}
	if dto.Kind == models.TriggerTextBased && dto.Template == "" {
		return nil, fmt.Errorf("template is required for text-based triggers")
	}

	t := models.TriggerModel{
		UserID:   userID,
		Title:    dto.Title,
		Kind:     dto.Kind,
		Template: dto.Template,
		Context:  dto.Context,
	}
	return &t, s.db.Create(&t).Error
}

func (s *Service) Delete(id string) error {
	return s.db.Delete(&models.TriggerModel{}, "id = ?", id).Error
}

// FindTrigger implements TriggerStore for the lifecycle orchestrator.
func (s *Service) FindTrigger(id string) (*models.TriggerModel, error) {
	t, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTriggerNotFound
	}
	return t, nil
}

// RecordRun persists one run record. Implements RunRecorder.
func (s *Service) RecordRun(triggerID string, metadata map[string]interface{}) error {
	run := models.TriggerRunModel{TriggerID: triggerID, Metadata: metadata}
	return s.db.Create(&run).Error
}

func (s *Service) ListRuns(q pagination.Query, triggerID string) ([]models.TriggerRunModel, response.Pagination, error) {
	tx := s.db.Model(&models.TriggerRunModel{}).
		Where("trigger_id = ?", triggerID).
		Order("created_at DESC")
	var items []models.TriggerRunModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) ClearRuns(triggerID string) error {
	return s.db.Where("trigger_id = ?", triggerID).Delete(&models.TriggerRunModel{}).Error
}
