package main

import (
	"net/http"

	"bitbucket.org/restgest/restgest_backend/models"
	"bitbucket.org/restgest/restgest_backend/utils"
	"github.com/gin-gonic/gin"
)

func newBebidaFromForm(c *gin.Context) (*models.NewBebida, error) {
	input := models.NewBebida{
		Nome:    c.PostForm("nome"),
		Unidade: models.UnidadeBebida(c.PostForm("unidade")),
		Tipo:    models.TipoBebida(c.PostForm("tipo")),
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
	if dataValidade, err := parseDate(c.PostForm("dataValidade")); err != nil {
		fieldErrors = append(fieldErrors, utils.FieldError{Field: "dataValidade", Message: "Invalid dataValidade"})
	} else {
		input.DataValidade = dataValidade
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

func updateBebidaFromForm(c *gin.Context) (*models.UpdateBebida, error) {
	var input models.UpdateBebida
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
	if v, ok := c.GetPostForm("unidade"); ok {
		unidade := models.UnidadeBebida(v)
		input.Unidade = &unidade
	}
	if v, ok := c.GetPostForm("dataValidade"); ok {
		dataValidade, err := parseDate(v)
		if err != nil {
			return nil, &utils.ValidationError{Fields: []utils.FieldError{{Field: "dataValidade", Message: "Invalid dataValidade"}}}
		}
		input.DataValidade = &dataValidade
	}
	if v, ok := c.GetPostForm("tipo"); ok {
		tipo := models.TipoBebida(v)
		input.Tipo = &tipo
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

func listBebidasHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := models.GetAllBebidas(c.Request.Context())
		if err != nil {
			respondError(c, "bebidas", "listBebidasHandler", err)
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

func getBebidaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}
		bebida, err := models.GetBebida(c.Request.Context(), id)
		if err != nil {
			respondError(c, "bebidas", "getBebidaHandler", err)
			return
		}
		c.JSON(http.StatusOK, bebida)
	}
}

func createBebidaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input *models.NewBebida
		if isMultipart(c) {
			formInput, err := newBebidaFromForm(c)
			if err != nil {
				respondError(c, "bebidas", "createBebidaHandler", err)
				return
			}
			input = formInput
		} else {
			var body models.NewBebida
			if err := c.ShouldBindJSON(&body); err != nil {
				respondBindError(c, err)
				return
			}
			input = &body
		}

		bebida, err := models.CreateBebida(c.Request.Context(), input)
		if err != nil {
			respondError(c, "bebidas", "createBebidaHandler", err)
			return
		}
		c.JSON(http.StatusCreated, bebida)
	}
}

func updateBebidaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}

		var input *models.UpdateBebida
		if isMultipart(c) {
			formInput, err := updateBebidaFromForm(c)
			if err != nil {
				respondError(c, "bebidas", "updateBebidaHandler", err)
				return
			}
			input = formInput
		} else {
			var body models.UpdateBebida
			if err := c.ShouldBindJSON(&body); err != nil {
				respondBindError(c, err)
				return
			}
			input = &body
		}

		bebida, err := models.UpdateBebidaById(c.Request.Context(), id, input)
		if err != nil {
			respondError(c, "bebidas", "updateBebidaHandler", err)
			return
		}
		c.JSON(http.StatusOK, bebida)
	}
}

func deleteBebidaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}
		if _, err := models.DeleteBebida(c.Request.Context(), id); err != nil {
			respondError(c, "bebidas", "deleteBebidaHandler", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Bebida deleted successfully"})
	}
}
