package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Form structs bound from POST bodies. Validation happens entirely here;
// a form that fails never reaches the network.

type loginForm struct {
	Email string `form:"email" validate:"required,email"`
	Senha string `form:"senha" validate:"required"`
}

type registerForm struct {
	Nome  string `form:"nome"  validate:"required,min=3"`
	Email string `form:"email" validate:"required,email"`
	Senha string `form:"senha" validate:"required,min=6"`
}

type incidentForm struct {
	Titulo      string `form:"titulo"      validate:"required,min=5"`
	Descricao   string `form:"descricao"   validate:"required,min=10"`
	Localizacao string `form:"localizacao" validate:"required"`
	Tipo        string `form:"tipo"        validate:"required,oneof=ILUMINACAO BURACO LIXO VANDALISMO OUTROS"`
}

type profileForm struct {
	Nome  string `form:"nome"  validate:"required,min=3"`
	Email string `form:"email" validate:"required,email"`
}

// fieldMessages holds the exact inline message per field and rule. These
// strings are part of the screen contract; change them deliberately.
var fieldMessages = map[string]map[string]string{
	"titulo": {
		"required": "Título é obrigatório",
		"min":      "Título deve ter no mínimo 5 caracteres",
	},
	"descricao": {
		"required": "Descrição é obrigatória",
		"min":      "Descrição deve ter no mínimo 10 caracteres",
	},
	"localizacao": {
		"required": "Localização é obrigatória",
	},
	"tipo": {
		"required": "Tipo é obrigatório",
		"oneof":    "Tipo é obrigatório",
	},
	"nome": {
		"required": "Nome é obrigatório",
		"min":      "Nome deve ter no mínimo 3 caracteres",
	},
	"email": {
		"required": "Email é obrigatório",
		"email":    "Email inválido",
	},
	"senha": {
		"required": "Senha é obrigatória",
		"min":      "Senha deve ter no mínimo 6 caracteres",
	},
}

// formValidator wraps go-playground/validator and renders failures as a
// field → message map for inline display.
type formValidator struct {
	v *validator.Validate
}

func newFormValidator() *formValidator {
	return &formValidator{v: validator.New()}
}

// Validate returns nil when the form is valid, otherwise one message per
// failing field (the first failing rule wins).
func (fv *formValidator) Validate(form any) map[string]string {
	err := fv.v.Struct(form)
	if err == nil {
		return nil
	}

	out := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["form"] = "Dados inválidos"
		return out
	}
	for _, fe := range ve {
		field := strings.ToLower(fe.StructField())
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = messageFor(field, fe.Tag())
	}
	return out
}

func messageFor(field, tag string) string {
	if msgs, ok := fieldMessages[field]; ok {
		if msg, ok := msgs[tag]; ok {
			return msg
		}
	}
	return "Campo inválido"
}
