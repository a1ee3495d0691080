package main

import (
	"net/http"

	"bitbucket.org/restgest/restgest_backend/models"
	"bitbucket.org/restgest/restgest_backend/utils"
	"github.com/gin-gonic/gin"
)

func newComidaFromForm(c *gin.Context) (*models.NewComida, error) {
	input := models.NewComida{
		Nome:    c.PostForm("nome"),
		Unidade: models.UnidadeComida(c.PostForm("unidade")),
		Tipo:    models.TipoComida(c.PostForm("tipo")),
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

func updateComidaFromForm(c *gin.Context) (*models.UpdateComida, error) {
	var input models.UpdateComida
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
		unidade := models.UnidadeComida(v)
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
		tipo := models.TipoComida(v)
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

func listComidasHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := models.GetAllComidas(c.Request.Context())
		if err != nil {
			respondError(c, "comidas", "listComidasHandler", err)
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

func getComidaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}
		comida, err := models.GetComida(c.Request.Context(), id)
		if err != nil {
			respondError(c, "comidas", "getComidaHandler", err)
			return
		}
		c.JSON(http.StatusOK, comida)
	}
}

func createComidaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input *models.NewComida
		if isMultipart(c) {
			formInput, err := newComidaFromForm(c)
			if err != nil {
				respondError(c, "comidas", "createComidaHandler", err)
				return
			}
			input = formInput
		} else {
			var body models.NewComida
			if err := c.ShouldBindJSON(&body); err != nil {
				respondBindError(c, err)
				return
			}
			input = &body
		}

		comida, err := models.CreateComida(c.Request.Context(), input)
		if err != nil {
			respondError(c, "comidas", "createComidaHandler", err)
			return
		}
		c.JSON(http.StatusCreated, comida)
	}
}

func updateComidaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}

		var input *models.UpdateComida
		if isMultipart(c) {
			formInput, err := updateComidaFromForm(c)
			if err != nil {
				respondError(c, "comidas", "updateComidaHandler", err)
				return
			}
			input = formInput
		} else {
			var body models.UpdateComida
			if err := c.ShouldBindJSON(&body); err != nil {
				respondBindError(c, err)
				return
			}
			input = &body
		}

		comida, err := models.UpdateComidaById(c.Request.Context(), id, input)
		if err != nil {
			respondError(c, "comidas", "updateComidaHandler", err)
			return
		}
		c.JSON(http.StatusOK, comida)
	}
}

func deleteComidaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}
		if _, err := models.DeleteComida(c.Request.Context(), id); err != nil {
			respondError(c, "comidas", "deleteComidaHandler", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Comida deleted successfully"})
	}
}
