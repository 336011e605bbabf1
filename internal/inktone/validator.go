// Пакет для валидации данных запросов.  Содержит валидаторы полей, таких как заголовок поста и язык ввода.  Использует библиотеку go-playground/validator для выполнения проверок.
//
// Основные возможности:
//   - Валидация полей запросов с использованием предопределенных валидаторов.
//   - Проверка поддерживаемых языков ввода.
package inktone

import (
	"slices"
	"unicode/utf8"

	"github.com/go-playground/validator"

	"github.com/inktone/inktone.go/internal/inktone/config"
)

type RequestValidator struct {
	validator *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	err := v.RegisterValidation("postTitle", postTitleValidator)
	if err != nil {
		return nil
	}

	err = v.RegisterValidation("language", languageValidator)
	if err != nil {
		return nil
	}
	return &RequestValidator{v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	if err := rv.validator.Struct(i); err != nil {
		_, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil
		}
		return err
	}
	return nil
}

func postTitleValidator(fl validator.FieldLevel) bool {
	return utf8.RuneCountInString(fl.Field().String()) <= 255
}

func languageValidator(fl validator.FieldLevel) bool {
	return slices.Contains(config.SupportedLanguages, fl.Field().String())
}
