package models

import (
	"context"
	"time"

	"bitbucket.org/restgest/restgest_backend/config"
	"bitbucket.org/restgest/restgest_backend/utils"
	"github.com/shopspring/decimal"
)

// MaterialSala tracks room equipment (crockery, glassware, cleaning
// material). Unlike food and drink it has no unit or expiry date; it is
// classified by categoria instead.
type MaterialSala struct {
	ID         int               `gorm:"primary_key" json:"id"`
	Nome       string            `gorm:"size:100;not null" json:"nome" binding:"required"`
	Quantidade decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"quantidade"`
	Categoria  CategoriaMaterial `gorm:"size:20;not null" json:"categoria" binding:"required"`
	Imagem     string            `gorm:"size:255;default:null" json:"imagem"`
	Disponivel *bool             `gorm:"not null;default:true" json:"disponivel"`
	CreatedAt  time.Time         `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time         `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (MaterialSala) TableName() string {
	return "material_salas"
}

type NewMaterialSala struct {
	Nome       string            `json:"nome" binding:"required"`
	Quantidade *decimal.Decimal  `json:"quantidade" binding:"required"`
	Categoria  CategoriaMaterial `json:"categoria" binding:"required"`
	Imagem     string            `json:"imagem"`
}

type UpdateMaterialSala struct {
	Nome       *string            `json:"nome"`
	Quantidade *decimal.Decimal   `json:"quantidade"`
	Categoria  *CategoriaMaterial `json:"categoria"`
	Imagem     *string            `json:"imagem"`
	Disponivel *bool              `json:"disponivel"`
}

func (input *NewMaterialSala) validate() error {
	var fieldErrors []utils.FieldError
	if input.Quantidade.IsNegative() {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "quantidade", Message: "Quantidade must be non-negative"})
	}
	if !input.Categoria.IsValid() {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "categoria", Message: "Invalid categoria"})
	}
	if len(fieldErrors) > 0 {
		return &utils.ValidationError{Fields: fieldErrors}
	}
	return nil
}

func (input *UpdateMaterialSala) validate() error {
	var fieldErrors []utils.FieldError
	if input.Nome != nil && *input.Nome == "" {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "nome", Message: "Nome cannot be empty"})
	}
	if input.Quantidade != nil && input.Quantidade.IsNegative() {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "quantidade", Message: "Quantidade must be non-negative"})
	}
	if input.Categoria != nil && !input.Categoria.IsValid() {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "categoria", Message: "Invalid categoria"})
	}
	if len(fieldErrors) > 0 {
		return &utils.ValidationError{Fields: fieldErrors}
	}
	return nil
}

func GetAllMateriais(ctx context.Context) ([]*MaterialSala, error) {
	return utils.FetchAllModels[MaterialSala](ctx, "created_at DESC")
}

func GetMaterialSala(ctx context.Context, id int) (*MaterialSala, error) {
	return utils.FetchSingleModel[MaterialSala](ctx, id)
}

func CreateMaterialSala(ctx context.Context, input *NewMaterialSala) (*MaterialSala, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	db := config.GetDB()
	material := MaterialSala{
		Nome:       input.Nome,
		Quantidade: *input.Quantidade,
		Categoria:  input.Categoria,
		Imagem:     input.Imagem,
		Disponivel: utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&material).Error; err != nil {
		return nil, err
	}

	return &material, nil
}

func UpdateMaterialSalaById(ctx context.Context, id int, input *UpdateMaterialSala) (*MaterialSala, error) {
	material, err := utils.FetchSingleModel[MaterialSala](ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Nome != nil {
		updates["Nome"] = *input.Nome
	}
	if input.Quantidade != nil {
		updates["Quantidade"] = *input.Quantidade
	}
	if input.Categoria != nil {
		updates["Categoria"] = *input.Categoria
	}
	if input.Imagem != nil {
		updates["Imagem"] = *input.Imagem
	}
	if input.Disponivel != nil {
		updates["Disponivel"] = *input.Disponivel
	}

	if len(updates) == 0 {
		return material, nil
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(material).Updates(updates).Error; err != nil {
		return nil, err
	}

	return material, nil
}

func DeleteMaterialSala(ctx context.Context, id int) (*MaterialSala, error) {
	material, err := utils.FetchSingleModel[MaterialSala](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(material).Error; err != nil {
		return nil, err
	}
	return material, nil
}
