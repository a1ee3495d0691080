package models

import (
	"context"
	"strings"
	"time"

	"bitbucket.org/restgest/restgest_backend/config"
	"bitbucket.org/restgest/restgest_backend/utils"
)

type Student struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Nome      string    `gorm:"size:100;not null" json:"nome" binding:"required"`
	Numero    string    `gorm:"size:20;not null;unique" json:"numero" binding:"required"`
	Email     string    `gorm:"size:100;not null" json:"email" binding:"required"`
	Turma     Turma     `gorm:"size:5;not null" json:"turma" binding:"required"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type NewStudent struct {
	Nome   string `json:"nome" binding:"required"`
	Numero string `json:"numero" binding:"required"`
	Email  string `json:"email" binding:"required"`
	Turma  Turma  `json:"turma" binding:"required"`
}

type UpdateStudent struct {
	Nome   *string `json:"nome"`
	Numero *string `json:"numero"`
	Email  *string `json:"email"`
	Turma  *Turma  `json:"turma"`
}

func (input *NewStudent) validate() error {
	var fieldErrors []utils.FieldError
	if !utils.IsValidEmail(input.Email) {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "email", Message: "Please provide a valid email"})
	}
	if !input.Turma.IsValid() {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "turma", Message: "Invalid turma"})
	}
	if len(fieldErrors) > 0 {
		return &utils.ValidationError{Fields: fieldErrors}
	}
	return nil
}

func (input *UpdateStudent) validate() error {
	var fieldErrors []utils.FieldError
	if input.Nome != nil && *input.Nome == "" {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "nome", Message: "Nome cannot be empty"})
	}
	if input.Numero != nil && *input.Numero == "" {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "numero", Message: "Numero cannot be empty"})
	}
	if input.Email != nil && !utils.IsValidEmail(*input.Email) {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "email", Message: "Please provide a valid email"})
	}
	if input.Turma != nil && !input.Turma.IsValid() {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "turma", Message: "Invalid turma"})
	}
	if len(fieldErrors) > 0 {
		return &utils.ValidationError{Fields: fieldErrors}
	}
	return nil
}

func GetAllStudents(ctx context.Context) ([]*Student, error) {
	return utils.FetchAllModels[Student](ctx, "nome ASC")
}

func GetStudentsByTurma(ctx context.Context, turma Turma) ([]*Student, error) {
	if !turma.IsValid() {
		return nil, utils.NewValidationError("Invalid turma")
	}

	db := config.GetDB()
	var results []*Student
	if err := db.WithContext(ctx).Where("turma = ?", turma).Order("nome ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func GetStudent(ctx context.Context, id int) (*Student, error) {
	return utils.FetchSingleModel[Student](ctx, id)
}

func CreateStudent(ctx context.Context, input *NewStudent) (*Student, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	if err := utils.ValidateUnique[Student](ctx, "numero", input.Numero, 0); err != nil {
		if _, ok := err.(*utils.ConflictError); ok {
			return nil, &utils.ConflictError{Message: "Student number already exists"}
		}
		return nil, err
	}

	db := config.GetDB()
	student := Student{
		Nome:   input.Nome,
		Numero: input.Numero,
		Email:  strings.ToLower(input.Email),
		Turma:  input.Turma,
	}
	if err := db.WithContext(ctx).Create(&student).Error; err != nil {
		return nil, err
	}

	return &student, nil
}

func UpdateStudentById(ctx context.Context, id int, input *UpdateStudent) (*Student, error) {
	student, err := utils.FetchSingleModel[Student](ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	// uniqueness check excludes the student being updated
	if input.Numero != nil {
		if err := utils.ValidateUnique[Student](ctx, "numero", *input.Numero, id); err != nil {
			if _, ok := err.(*utils.ConflictError); ok {
				return nil, &utils.ConflictError{Message: "Student number already exists"}
			}
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	if input.Nome != nil {
		updates["Nome"] = *input.Nome
	}
	if input.Numero != nil {
		updates["Numero"] = *input.Numero
	}
	if input.Email != nil {
		updates["Email"] = strings.ToLower(*input.Email)
	}
	if input.Turma != nil {
		updates["Turma"] = *input.Turma
	}

	if len(updates) == 0 {
		return student, nil
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(student).Updates(updates).Error; err != nil {
		return nil, err
	}

	return student, nil
}

func DeleteStudent(ctx context.Context, id int) (*Student, error) {
	student, err := utils.FetchSingleModel[Student](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(student).Error; err != nil {
		return nil, err
	}
	return student, nil
}
