package services

import (
	"errors"

	"gorm.io/gorm"

	"askpro_backend/internal/models"
	"askpro_backend/internal/repositories"
	"askpro_backend/internal/services/dto"
	"askpro_backend/pkg/apperrors"
)

// TagService - глобальный каталог тегов. Пишут только админы,
// читают все (включая анонимов).
type TagService struct {
	tagRepo     repositories.TagRepository
	profileRepo repositories.ProfileRepository
}

func NewTagService(tagRepo repositories.TagRepository, profileRepo repositories.ProfileRepository) *TagService {
	return &TagService{tagRepo: tagRepo, profileRepo: profileRepo}
}

func (s *TagService) ListTags(db *gorm.DB) ([]models.Tag, error) {
	tags, err := s.tagRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return tags, nil
}

func (s *TagService) GetTag(db *gorm.DB, id string) (*models.Tag, error) {
	tag, err := s.tagRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTagNotFound) {
			return nil, apperrors.ErrNotFound(err, "tag", "Tag not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return tag, nil
}

func (s *TagService) CreateTag(db *gorm.DB, req *dto.CreateTagRequest) (*models.Tag, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.tagRepo.FindByName(tx, req.Name); err == nil {
		return nil, apperrors.ErrAlreadyExists(nil, "tag", "Tag with this name already exists")
	} else if !errors.Is(err, repositories.ErrTagNotFound) {
		return nil, apperrors.InternalError(err)
	}

	tag := &models.Tag{Name: req.Name, Description: req.Description}
	if err := s.tagRepo.Create(tx, tag); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return tag, nil
}

func (s *TagService) UpdateTag(db *gorm.DB, id string, req *dto.UpdateTagRequest) (*models.Tag, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	tag, err := s.tagRepo.FindByID(tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTagNotFound) {
			return nil, apperrors.ErrNotFound(err, "tag", "Tag not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil && *req.Name != tag.Name {
		if _, err := s.tagRepo.FindByName(tx, *req.Name); err == nil {
			return nil, apperrors.ErrAlreadyExists(nil, "tag", "Tag with this name already exists")
		} else if !errors.Is(err, repositories.ErrTagNotFound) {
			return nil, apperrors.InternalError(err)
		}
		tag.Name = *req.Name
	}
	if req.Description != nil {
		tag.Description = *req.Description
	}

	if err := s.tagRepo.Update(tx, tag); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return tag, nil
}

// DeleteTag отказывает, пока тег на что-то ссылается: на вопросы
// или на сертификации профессионалов. Осиротевшие связи хуже отказа.
func (s *TagService) DeleteTag(db *gorm.DB, id string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.tagRepo.FindByID(tx, id); err != nil {
		if errors.Is(err, repositories.ErrTagNotFound) {
			return apperrors.ErrNotFound(err, "tag", "Tag not found")
		}
		return apperrors.InternalError(err)
	}

	questionCount, err := s.tagRepo.CountQuestionsWithTag(tx, id)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if questionCount > 0 {
		return apperrors.ErrConflict(nil, "tag", "Tag is still used by questions")
	}

	profileCount, err := s.profileRepo.CountProfilesWithTag(tx, id)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if profileCount > 0 {
		return apperrors.ErrConflict(nil, "tag", "Tag is still held by certified professionals")
	}

	if err := s.tagRepo.Delete(tx, id); err != nil {
		return apperrors.InternalError(err)
	}
	return tx.Commit().Error
}
