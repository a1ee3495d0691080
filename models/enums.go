package models

type UnidadeComida string

const (
	UnidadeComidaKg       UnidadeComida = "kg"
	UnidadeComidaG        UnidadeComida = "g"
	UnidadeComidaUnidades UnidadeComida = "unidades"
)

func (u UnidadeComida) IsValid() bool {
	switch u {
	case UnidadeComidaKg, UnidadeComidaG, UnidadeComidaUnidades:
		return true
	}
	return false
}

type UnidadeBebida string

const (
	UnidadeBebidaL  UnidadeBebida = "L"
	UnidadeBebidaCl UnidadeBebida = "cl"
	UnidadeBebidaMl UnidadeBebida = "ml"
)

func (u UnidadeBebida) IsValid() bool {
	switch u {
	case UnidadeBebidaL, UnidadeBebidaCl, UnidadeBebidaMl:
		return true
	}
	return false
}

type TipoComida string

const (
	TipoComidaPerecivel    TipoComida = "Perecível"
	TipoComidaNaoPerecivel TipoComida = "Não Perecível"
)

func (t TipoComida) IsValid() bool {
	switch t {
	case TipoComidaPerecivel, TipoComidaNaoPerecivel:
		return true
	}
	return false
}

type TipoBebida string

const (
	TipoBebidaComAlcool TipoBebida = "Com Álcool"
	TipoBebidaSemAlcool TipoBebida = "Sem Álcool"
)

func (t TipoBebida) IsValid() bool {
	switch t {
	case TipoBebidaComAlcool, TipoBebidaSemAlcool:
		return true
	}
	return false
}

type CategoriaMaterial string

const (
	CategoriaMaterialCozinha CategoriaMaterial = "cozinha"
	CategoriaMaterialSala    CategoriaMaterial = "sala"
	CategoriaMaterialBar     CategoriaMaterial = "bar"
	CategoriaMaterialLimpeza CategoriaMaterial = "limpeza"
	CategoriaMaterialOutros  CategoriaMaterial = "outros"
)

func (c CategoriaMaterial) IsValid() bool {
	switch c {
	case CategoriaMaterialCozinha, CategoriaMaterialSala, CategoriaMaterialBar,
		CategoriaMaterialLimpeza, CategoriaMaterialOutros:
		return true
	}
	return false
}

type Turma string

const (
	TurmaR1 Turma = "R1"
	TurmaR2 Turma = "R2"
	TurmaR3 Turma = "R3"
)

func (t Turma) IsValid() bool {
	switch t {
	case TurmaR1, TurmaR2, TurmaR3:
		return true
	}
	return false
}
