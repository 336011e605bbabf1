// Настройка языка ввода и прямой запрос вариантов транслитерации.
//
// Основные возможности:
//   - Чтение и сохранение языка ввода.
//   - Проксирование запроса вариантов к внешнему сервису.
package inktone

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inktone/inktone.go/internal/inktone/apierrors"
	"github.com/inktone/inktone.go/internal/inktone/dao"
	"github.com/inktone/inktone.go/internal/inktone/transliterate"
)

type reqLanguage struct {
	Language string `json:"language" validate:"language"`
}

func (s *Services) AddTransliterationServices(g *echo.Group) {
	g.GET("language/", s.getLanguage)
	g.PUT("language/", s.setLanguage)
	g.GET("transliterate/", s.suggest)
}

// getLanguage godoc
// @id getLanguage
// @Summary язык: текущий язык ввода
// @Tags Transliteration
// @Produce json
// @Success 200 {object} reqLanguage "Текущий язык"
// @Router /api/language/ [get]
func (s *Services) getLanguage(c echo.Context) error {
	lang, err := dao.GetLanguage(s.db, cfg.DefaultLanguage)
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, reqLanguage{Language: lang})
}

// setLanguage godoc
// @id setLanguage
// @Summary язык: сохранить язык ввода
// @Tags Transliteration
// @Accept json
// @Produce json
// @Param language body reqLanguage true "Язык"
// @Success 200 {object} reqLanguage "Сохраненный язык"
// @Failure 400 {object} apierrors.DefinedError "Неподдерживаемый язык"
// @Router /api/language/ [put]
func (s *Services) setLanguage(c echo.Context) error {
	var req reqLanguage
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidRequest)
	}
	if err := c.Validate(req); err != nil {
		return EErrorDefined(c, apierrors.ErrUnsupportedLanguage)
	}

	if err := dao.SetLanguage(s.db, req.Language); err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, req)
}

// suggest godoc
// @id suggest
// @Summary транслитерация: варианты для текста
// @Description Возвращает до пяти вариантов транслитерации для текста и языка.
// @Tags Transliteration
// @Produce json
// @Param text query string true "Текст кандидата"
// @Param lang query string true "Язык"
// @Success 200 {array} string "Варианты"
// @Failure 400 {object} apierrors.DefinedError "Неподдерживаемый язык"
// @Failure 502 {object} apierrors.DefinedError "Сервис транслитерации недоступен"
// @Router /api/transliterate/ [get]
func (s *Services) suggest(c echo.Context) error {
	itc := transliterate.InputToolCode(c.QueryParam("lang"))
	if itc == "" {
		return EErrorDefined(c, apierrors.ErrUnsupportedLanguage)
	}

	suggestions, err := s.translitClient.Fetch(c.Request().Context(), c.QueryParam("text"), itc)
	if err != nil {
		return EErrorDefined(c, apierrors.ErrTransliterationUnavailable)
	}
	return c.JSON(http.StatusOK, suggestions)
}
