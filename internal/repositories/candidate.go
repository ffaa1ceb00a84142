package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cv-parser/internal/models"
)

type CandidateRepository interface {
	// Create persists a provisional shell record. The shell exists only to
	// hold a durable file path while the pipeline runs; it is invisible to
	// every read path until Commit.
	Create(candidate *models.Candidate) error
	// Commit writes all six structured sections and flips the record to
	// committed in a single update.
	Commit(id uuid.UUID, data *models.ResumeData) error
	Delete(id uuid.UUID) error
	// FindByID returns a committed candidate only.
	FindByID(id uuid.UUID) (*models.Candidate, error)
	// ListParsed returns the six structured sections of every committed
	// candidate, used to build the chat context window.
	ListParsed() ([]models.CandidateFields, error)
	CountCommitted() (int64, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

// Create implements CandidateRepository.
func (r *candidateRepository) Create(candidate *models.Candidate) error {
	if err := r.db.Create(candidate).Error; err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}

// Commit implements CandidateRepository.
func (r *candidateRepository) Commit(id uuid.UUID, data *models.ResumeData) error {
	updates := map[string]interface{}{
		"status":     models.StatusCommitted,
		"updated_at": time.Now(),
	}

	sections := map[string]interface{}{
		"personal_info":   data.PersonalInfo,
		"education":       data.Education,
		"work_experience": data.WorkExperience,
		"skills":          data.Skills,
		"projects":        data.Projects,
		"certificates":    data.Certificates,
	}
	for column, section := range sections {
		encoded, err := json.Marshal(section)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", column, err)
		}
		updates[column] = encoded
	}

	result := r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to commit candidate: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("candidate not found")
	}
	return nil
}

// Delete implements CandidateRepository.
func (r *candidateRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Candidate{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete candidate: %w", result.Error)
	}
	return nil
}

// FindByID implements CandidateRepository.
func (r *candidateRepository) FindByID(id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.
		Where("id = ? AND status = ?", id, models.StatusCommitted).
		First(&candidate).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("candidate not found")
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &candidate, nil
}

// ListParsed implements CandidateRepository.
func (r *candidateRepository) ListParsed() ([]models.CandidateFields, error) {
	var candidates []models.Candidate
	err := r.db.
		Where("status = ?", models.StatusCommitted).
		Order("created_at ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	fields := make([]models.CandidateFields, 0, len(candidates))
	for _, c := range candidates {
		fields = append(fields, models.CandidateFields{
			PersonalInfo:   json.RawMessage(c.PersonalInfo),
			Education:      json.RawMessage(c.Education),
			WorkExperience: json.RawMessage(c.WorkExperience),
			Skills:         json.RawMessage(c.Skills),
			Projects:       json.RawMessage(c.Projects),
			Certificates:   json.RawMessage(c.Certificates),
		})
	}
	return fields, nil
}

// CountCommitted implements CandidateRepository.
func (r *candidateRepository) CountCommitted() (int64, error) {
	var count int64
	err := r.db.Model(&models.Candidate{}).
		Where("status = ?", models.StatusCommitted).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count candidates: %w", err)
	}
	return count, nil
}
