package models

import (
	"context"
	"time"

	"bitbucket.org/restgest/restgest_backend/config"
	"bitbucket.org/restgest/restgest_backend/utils"
	"github.com/shopspring/decimal"
)

type Comida struct {
	ID           int             `gorm:"primary_key" json:"id"`
	Nome         string          `gorm:"size:100;not null" json:"nome" binding:"required"`
	Quantidade   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantidade"`
	Unidade      UnidadeComida   `gorm:"size:20;not null" json:"unidade" binding:"required"`
	DataValidade time.Time       `gorm:"not null" json:"dataValidade" binding:"required"`
	Tipo         TipoComida      `gorm:"size:30;not null" json:"tipo" binding:"required"`
	Imagem       string          `gorm:"size:255;default:null" json:"imagem"`
	Disponivel   *bool           `gorm:"not null;default:true" json:"disponivel"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

type NewComida struct {
	Nome         string           `json:"nome" binding:"required"`
	Quantidade   *decimal.Decimal `json:"quantidade" binding:"required"`
	Unidade      UnidadeComida    `json:"unidade" binding:"required"`
	DataValidade time.Time        `json:"dataValidade" binding:"required"`
	Tipo         TipoComida       `json:"tipo" binding:"required"`
	Imagem       string           `json:"imagem"`
}

type UpdateComida struct {
	Nome         *string          `json:"nome"`
	Quantidade   *decimal.Decimal `json:"quantidade"`
	Unidade      *UnidadeComida   `json:"unidade"`
	DataValidade *time.Time       `json:"dataValidade"`
	Tipo         *TipoComida      `json:"tipo"`
	Imagem       *string          `json:"imagem"`
	Disponivel   *bool            `json:"disponivel"`
}

func (input *NewComida) validate() error {
	var fieldErrors []utils.FieldError
	if input.Quantidade.IsNegative() {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "quantidade", Message: "Quantidade must be non-negative"})
	}
	if !input.Unidade.IsValid() {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "unidade", Message: "Invalid unidade"})
	}
	if !input.Tipo.IsValid() {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "tipo", Message: "Invalid tipo"})
	}
	if len(fieldErrors) > 0 {
		return &utils.ValidationError{Fields: fieldErrors}
	}
	return nil
}

func (input *UpdateComida) validate() error {
	var fieldErrors []utils.FieldError
	if input.Nome != nil && *input.Nome == "" {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "nome", Message: "Nome cannot be empty"})
	}
	if input.Quantidade != nil && input.Quantidade.IsNegative() {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "quantidade", Message: "Quantidade must be non-negative"})
	}
	if input.Unidade != nil && !input.Unidade.IsValid() {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "unidade", Message: "Invalid unidade"})
	}
	if input.Tipo != nil && !input.Tipo.IsValid() {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "tipo", Message: "Invalid tipo"})
	}
	if len(fieldErrors) > 0 {
		return &utils.ValidationError{Fields: fieldErrors}
	}
	return nil
}

func GetAllComidas(ctx context.Context) ([]*Comida, error) {
	return utils.FetchAllModels[Comida](ctx, "created_at DESC")
}

func GetComida(ctx context.Context, id int) (*Comida, error) {
	return utils.FetchSingleModel[Comida](ctx, id)
}

func CreateComida(ctx context.Context, input *NewComida) (*Comida, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	db := config.GetDB()
	comida := Comida{
		Nome:         input.Nome,
		Quantidade:   *input.Quantidade,
		Unidade:      input.Unidade,
		DataValidade: input.DataValidade,
		Tipo:         input.Tipo,
		Imagem:       input.Imagem,
		Disponivel:   utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&comida).Error; err != nil {
		return nil, err
	}

	return &comida, nil
}

func UpdateComidaById(ctx context.Context, id int, input *UpdateComida) (*Comida, error) {
	comida, err := utils.FetchSingleModel[Comida](ctx, id)
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
	if input.Unidade != nil {
		updates["Unidade"] = *input.Unidade
	}
	if input.DataValidade != nil {
		updates["DataValidade"] = *input.DataValidade
	}
	if input.Tipo != nil {
		updates["Tipo"] = *input.Tipo
	}
	if input.Imagem != nil {
		updates["Imagem"] = *input.Imagem
	}
	if input.Disponivel != nil {
		updates["Disponivel"] = *input.Disponivel
	}

	if len(updates) == 0 {
		return comida, nil
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(comida).Updates(updates).Error; err != nil {
		return nil, err
	}

	return comida, nil
}

func DeleteComida(ctx context.Context, id int) (*Comida, error) {
	comida, err := utils.FetchSingleModel[Comida](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(comida).Error; err != nil {
		return nil, err
	}
	return comida, nil
}
