// Экспорт документа сессии в плоские форматы.
//
// Основные возможности:
//   - Экспорт в HTML (включая минифицированный), Markdown, plain text, JSON и PDF.
//   - Отдача результата как файла с именем document-<ISO8601>.<ext>.
package inktone

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inktone/inktone.go/internal/inktone/apierrors"
	"github.com/inktone/inktone.go/internal/inktone/export"
)

func (s *Services) AddExportServices(g *echo.Group) {
	g.GET("sessions/:sessionId/export/:format/", s.exportSession, s.SessionMiddleware)
}

// exportSession godoc
// @id exportSession
// @Summary экспорт: выгрузить документ сессии
// @Description Поддерживаемые форматы: html, min-html, md, txt, json, pdf.
// @Tags Export
// @Produce octet-stream
// @Param sessionId path string true "Идентификатор сессии"
// @Param format path string true "Формат экспорта"
// @Success 200 {file} file "Файл экспорта"
// @Failure 400 {object} apierrors.DefinedError "Неизвестный формат"
// @Failure 500 {object} apierrors.DefinedError "Ошибка экспорта"
// @Router /api/sessions/{sessionId}/export/{format}/ [get]
func (s *Services) exportSession(c echo.Context) error {
	es := currentSession(c)
	now := time.Now()

	var file export.File
	var err error

	switch format := c.Param("format"); format {
	case "html":
		file = export.HTML(es.Engine, now)
	case "min-html":
		file, err = export.MinifiedHTML(es.Engine, now)
	case "md":
		file, err = export.Markdown(es.Engine, now)
	case "txt":
		file = export.Text(es.Engine, now)
	case "json":
		file, err = export.JSON(es.Engine, now)
	case "pdf":
		file, err = export.PDF(es.Engine, now)
	default:
		return EErrorDefined(c, apierrors.FormatError(apierrors.ErrUnknownExportFormat, format))
	}
	if err != nil {
		return EErrorDefined(c, apierrors.ErrExportFailed)
	}

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	return c.Blob(200, file.ContentType, file.Data)
}
