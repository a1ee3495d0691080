package main

import (
	"net/http"

	"bitbucket.org/restgest/restgest_backend/models"
	"bitbucket.org/restgest/restgest_backend/utils"
	"github.com/gin-gonic/gin"
)

func newMaterialFromForm(c *gin.Context) (*models.NewMaterialSala, error) {
	input := models.NewMaterialSala{
		Nome:      c.PostForm("nome"),
		Categoria: models.CategoriaMaterial(c.PostForm("categoria")),
	}

	var fieldErrors []utils.FieldError
	if input.Nome == "" {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "nome", Message: "Nome is required"})
	}
	if qty, err := utils.StringToDecimal(c.PostForm("quantidade")); err != nil {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "quantidade", Message: "Invalid quantidade"})
	} else {
		input.Quantidade = &qty
	}
	if len(fieldErrors) > 0 {
		return nil, &utils.ValidationError{Fields: fieldErrors}
	}

	filename, present, err := imageFromForm(c)
	if err != nil {
		return nil, err
	}
	if present {
		input.Imagem = filename
	}
	return &input, nil
}

func updateMaterialFromForm(c *gin.Context) (*models.UpdateMaterialSala, error) {
	var input models.UpdateMaterialSala
	if v, ok := c.GetPostForm("nome"); ok {
		input.Nome = &v
	}
	if v, ok := c.GetPostForm("quantidade"); ok {
		qty, err := utils.StringToDecimal(v)
		if err != nil {
			return nil, &utils.ValidationError{Fields: []utils.FieldError{{Field: "quantidade", Message: "Invalid quantidade"}}}
		}
		input.Quantidade = &qty
	}
	if v, ok := c.GetPostForm("categoria"); ok {
		categoria := models.CategoriaMaterial(v)
		input.Categoria = &categoria
	}
	if v, ok := c.GetPostForm("disponivel"); ok {
		if v == "true" || v == "1" {
			input.Disponivel = utils.NewTrue()
		} else {
			input.Disponivel = utils.NewFalse()
		}
	}

	filename, present, err := imageFromForm(c)
	if err != nil {
		return nil, err
	}
	if present {
		input.Imagem = &filename
	}
	return &input, nil
}

func listMateriaisHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := models.GetAllMateriais(c.Request.Context())
		if err != nil {
			respondError(c, "materiais", "listMateriaisHandler", err)
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

func getMaterialHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}
		material, err := models.GetMaterialSala(c.Request.Context(), id)
		if err != nil {
			respondError(c, "materiais", "getMaterialHandler", err)
			return
		}
		c.JSON(http.StatusOK, material)
	}
}

func createMaterialHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input *models.NewMaterialSala
		if isMultipart(c) {
			formInput, err := newMaterialFromForm(c)
			if err != nil {
				respondError(c, "materiais", "createMaterialHandler", err)
				return
			}
			input = formInput
		} else {
			var body models.NewMaterialSala
			if err := c.ShouldBindJSON(&body); err != nil {
				respondBindError(c, err)
				return
			}
			input = &body
		}

		material, err := models.CreateMaterialSala(c.Request.Context(), input)
		if err != nil {
			respondError(c, "materiais", "createMaterialHandler", err)
			return
		}
		c.JSON(http.StatusCreated, material)
	}
}

func updateMaterialHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}

		var input *models.UpdateMaterialSala
		if isMultipart(c) {
			formInput, err := updateMaterialFromForm(c)
			if err != nil {
				respondError(c, "materiais", "updateMaterialHandler", err)
				return
			}
			input = formInput
		} else {
			var body models.UpdateMaterialSala
			if err := c.ShouldBindJSON(&body); err != nil {
				respondBindError(c, err)
				return
			}
			input = &body
		}

		material, err := models.UpdateMaterialSalaById(c.Request.Context(), id, input)
		if err != nil {
			respondError(c, "materiais", "updateMaterialHandler", err)
			return
		}
		c.JSON(http.StatusOK, material)
	}
}

func deleteMaterialHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}
		if _, err := models.DeleteMaterialSala(c.Request.Context(), id); err != nil {
			respondError(c, "materiais", "deleteMaterialHandler", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Material deleted successfully"})
	}
}
