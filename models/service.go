package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/restgest/restgest_backend/config"
	"bitbucket.org/restgest/restgest_backend/utils"
)

// Service is a scheduled training session with its student roster.
// Deleting a service does not cascade to its quebras; the ledger keeps
// the consumption history even when the session record goes away.
type Service struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Nome      string    `gorm:"size:100;not null" json:"nome" binding:"required"`
	Data      time.Time `gorm:"not null;index" json:"data" binding:"required"`
	Descricao string    `gorm:"size:500;default:null" json:"descricao"`
	Alunos    []Student `gorm:"many2many:service_alunos" json:"alunos"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type NewService struct {
	Nome      string    `json:"nome" binding:"required"`
	Data      time.Time `json:"data" binding:"required"`
	Alunos    []int     `json:"alunos"`
	Descricao string    `json:"descricao"`
}

type UpdateService struct {
	Nome      *string    `json:"nome"`
	Data      *time.Time `json:"data"`
	Alunos    []int      `json:"alunos"`
	Descricao *string    `json:"descricao"`
}

// resolveAlunos loads the full requested roster. A partial match is a
// total failure, never a partial application.
func resolveAlunos(ctx context.Context, ids []int) ([]Student, error) {
	unqIds := utils.UniqueSlice(ids)

	if err := utils.ValidateResourcesId[Student](ctx, unqIds); err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			return nil, utils.NewValidationError("One or more students not found")
		}
		return nil, err
	}

	db := config.GetDB()
	var students []Student
	if err := db.WithContext(ctx).Where("id IN ?", unqIds).Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func GetAllServices(ctx context.Context) ([]*Service, error) {
	return utils.FetchAllModels[Service](ctx, "data DESC", "Alunos")
}

func GetService(ctx context.Context, id int) (*Service, error) {
	return utils.FetchSingleModel[Service](ctx, id, "Alunos")
}

func CreateService(ctx context.Context, input *NewService) (*Service, error) {
	students, err := resolveAlunos(ctx, input.Alunos)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	service := Service{
		Nome:      input.Nome,
		Data:      input.Data,
		Descricao: input.Descricao,
		Alunos:    students,
	}
	if err := db.WithContext(ctx).Create(&service).Error; err != nil {
		return nil, err
	}

	return utils.FetchSingleModel[Service](ctx, service.ID, "Alunos")
}

func UpdateServiceById(ctx context.Context, id int, input *UpdateService) (*Service, error) {
	service, err := utils.FetchSingleModel[Service](ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Nome != nil && *input.Nome == "" {
		return nil, utils.NewValidationError("Nome cannot be empty")
	}

	updates := map[string]interface{}{}
	if input.Nome != nil {
		updates["Nome"] = *input.Nome
	}
	if input.Data != nil {
		updates["Data"] = *input.Data
	}
	if input.Descricao != nil {
		updates["Descricao"] = *input.Descricao
	}

	db := config.GetDB()
	tx := db.Begin()

	if len(updates) > 0 {
		if err := tx.WithContext(ctx).Model(service).Updates(updates).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if input.Alunos != nil {
		students, err := resolveAlunos(ctx, input.Alunos)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := tx.WithContext(ctx).Model(service).Association("Alunos").Replace(students); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchSingleModel[Service](ctx, id, "Alunos")
}

func DeleteService(ctx context.Context, id int) (*Service, error) {
	service, err := utils.FetchSingleModel[Service](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	if err := tx.WithContext(ctx).Model(service).Association("Alunos").Clear(); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Delete(service).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return service, nil
}
