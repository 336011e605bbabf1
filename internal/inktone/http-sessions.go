// Управление сессиями редактирования: создание, ввод текста и клавиш,
// чтение состояния меню и подсказок, закрытие с сохранением.
//
// Основные возможности:
//   - Создание сессии с нуля или из существующего поста.
//   - Вставка и удаление текста с атомарными транзакциями.
//   - Маршрутизация клавиш в меню slash-команд и контроллер транслитерации.
//   - Выполнение команд и принятие вариантов транслитерации.
package inktone

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inktone/inktone.go/internal/inktone/apierrors"
	"github.com/inktone/inktone.go/internal/inktone/commands"
	"github.com/inktone/inktone.go/internal/inktone/engine"
	"github.com/inktone/inktone.go/internal/inktone/slashmenu"
	"github.com/inktone/inktone.go/internal/inktone/transliterate"
)

type reqCreateSession struct {
	PostID string `json:"post_id"`
}

type reqInsertText struct {
	Text string `json:"text"`
}

type reqDeleteRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type reqKey struct {
	Key string `json:"key"`
}

type reqExecuteCommand struct {
	ID string `json:"id"`
}

type reqAcceptSuggestion struct {
	Index int `json:"index"`
}

type reqSetTitle struct {
	Title string `json:"title" validate:"postTitle"`
}

type sessionState struct {
	ID       string                     `json:"id"`
	Cursor   int                        `json:"cursor"`
	HTML     string                     `json:"html"`
	Menu     slashmenu.State            `json:"menu"`
	Visible  []commands.Command         `json:"visible_commands"`
	Translit transliterate.State        `json:"transliteration"`
	Decor    *transliterate.Decorations `json:"decorations,omitempty"`
	PostID   string                     `json:"post_id,omitempty"`
}

func (s *Services) AddSessionServices(g *echo.Group) {
	sessionsGroup := g.Group("sessions/")
	sessionsGroup.POST("", s.createSession)

	sessionGroup := sessionsGroup.Group(":sessionId/", s.SessionMiddleware)
	sessionGroup.GET("", s.getSessionState)
	sessionGroup.DELETE("", s.closeSession)
	sessionGroup.POST("text/", s.insertText)
	sessionGroup.POST("delete/", s.deleteRange)
	sessionGroup.POST("key/", s.handleKey)
	sessionGroup.POST("command/", s.executeCommand)
	sessionGroup.POST("suggestion/", s.acceptSuggestion)
	sessionGroup.PUT("title/", s.setTitle)
}

// SessionMiddleware кладет сессию редактирования в контекст запроса.
func (s *Services) SessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		es, ok := s.sessions.Get(c.Param("sessionId"))
		if !ok {
			return EErrorDefined(c, apierrors.ErrSessionNotFound)
		}
		c.Set("session", es)
		return next(c)
	}
}

func currentSession(c echo.Context) *EditSession {
	return c.Get("session").(*EditSession)
}

func (s *Services) sessionStateJSON(c echo.Context, es *EditSession) error {
	return c.JSON(http.StatusOK, sessionState{
		ID:       es.ID,
		Cursor:   es.Engine.Cursor(),
		HTML:     es.Engine.HTML(),
		Menu:     es.Menu.State(),
		Visible:  es.Menu.VisibleCommands(),
		Translit: es.Translit.State(),
		Decor:    es.Translit.Decorations(),
		PostID:   es.Autosave.PostID(),
	})
}

// createSession godoc
// @id createSession
// @Summary сессии: создать сессию редактирования
// @Description Создает сессию. Непустой post_id продолжает редактирование существующего поста.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session body reqCreateSession true "Параметры сессии"
// @Success 200 {object} sessionState "Состояние сессии"
// @Failure 404 {object} apierrors.DefinedError "Пост не найден"
// @Router /api/sessions/ [post]
func (s *Services) createSession(c echo.Context) error {
	var req reqCreateSession
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidRequest)
	}

	es, err := s.sessions.Create(req.PostID)
	if err != nil {
		return EErrorDefined(c, apierrors.ErrPostNotFound)
	}
	return s.sessionStateJSON(c, es)
}

// getSessionState godoc
// @id getSessionState
// @Summary сессии: состояние сессии
// @Tags Sessions
// @Produce json
// @Param sessionId path string true "Идентификатор сессии"
// @Success 200 {object} sessionState "Состояние сессии"
// @Failure 404 {object} apierrors.DefinedError "Сессия не найдена"
// @Router /api/sessions/{sessionId}/ [get]
func (s *Services) getSessionState(c echo.Context) error {
	return s.sessionStateJSON(c, currentSession(c))
}

// closeSession godoc
// @id closeSession
// @Summary сессии: закрыть сессию
// @Description Сохраняет документ и закрывает сессию.
// @Tags Sessions
// @Param sessionId path string true "Идентификатор сессии"
// @Success 204 "Сессия закрыта"
// @Router /api/sessions/{sessionId}/ [delete]
func (s *Services) closeSession(c echo.Context) error {
	if err := s.sessions.Close(currentSession(c).ID); err != nil {
		return EError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// insertText godoc
// @id insertText
// @Summary сессии: вставить текст
// @Description Вставляет текст в позицию курсора одной атомарной транзакцией.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param sessionId path string true "Идентификатор сессии"
// @Param text body reqInsertText true "Вставляемый текст"
// @Success 200 {object} sessionState "Состояние сессии"
// @Router /api/sessions/{sessionId}/text/ [post]
func (s *Services) insertText(c echo.Context) error {
	var req reqInsertText
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidRequest)
	}

	es := currentSession(c)
	es.Engine.Apply(func(tx *engine.Tx) {
		pos := tx.Cursor()
		tx.InsertText(pos, req.Text)
		tx.SetCursor(pos + len([]rune(req.Text)))
	})
	return s.sessionStateJSON(c, es)
}

// deleteRange godoc
// @id deleteRange
// @Summary сессии: удалить диапазон
// @Tags Sessions
// @Accept json
// @Produce json
// @Param sessionId path string true "Идентификатор сессии"
// @Param range body reqDeleteRange true "Удаляемый диапазон"
// @Success 200 {object} sessionState "Состояние сессии"
// @Router /api/sessions/{sessionId}/delete/ [post]
func (s *Services) deleteRange(c echo.Context) error {
	var req reqDeleteRange
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidRequest)
	}

	es := currentSession(c)
	es.Engine.Apply(func(tx *engine.Tx) {
		tx.Delete(req.From, req.To)
		tx.SetCursor(req.From)
	})
	return s.sessionStateJSON(c, es)
}

// handleKey godoc
// @id handleKey
// @Summary сессии: обработать клавишу
// @Description Клавиша сначала предлагается меню slash-команд, затем контроллеру транслитерации. Непоглощенная печатная клавиша вставляется как текст.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param sessionId path string true "Идентификатор сессии"
// @Param key body reqKey true "Клавиша"
// @Success 200 {object} sessionState "Состояние сессии"
// @Router /api/sessions/{sessionId}/key/ [post]
func (s *Services) handleKey(c echo.Context) error {
	var req reqKey
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidRequest)
	}

	es := currentSession(c)

	if es.Menu.HandleKey(slashmenu.Key(req.Key)) {
		return s.sessionStateJSON(c, es)
	}
	if es.Translit.HandleKey(transliterate.Key(req.Key)) {
		return s.sessionStateJSON(c, es)
	}

	switch req.Key {
	case "Backspace":
		es.Engine.Apply(func(tx *engine.Tx) {
			pos := tx.Cursor()
			if pos > 0 {
				tx.Delete(pos-1, pos)
			}
		})
	case "Enter":
		es.Engine.Apply(func(tx *engine.Tx) {
			pos := tx.Cursor()
			tx.InsertText(pos, "\n")
			tx.SetCursor(pos + 1)
		})
	default:
		if len([]rune(req.Key)) == 1 {
			es.Engine.Apply(func(tx *engine.Tx) {
				pos := tx.Cursor()
				tx.InsertText(pos, req.Key)
				tx.SetCursor(pos + 1)
			})
		}
	}
	return s.sessionStateJSON(c, es)
}

// executeCommand godoc
// @id executeCommand
// @Summary сессии: выполнить команду меню
// @Description Выполняет команду реестра по идентификатору, как при выборе мышью.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param sessionId path string true "Идентификатор сессии"
// @Param command body reqExecuteCommand true "Команда"
// @Success 200 {object} sessionState "Состояние сессии"
// @Router /api/sessions/{sessionId}/command/ [post]
func (s *Services) executeCommand(c echo.Context) error {
	var req reqExecuteCommand
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidRequest)
	}

	es := currentSession(c)
	for _, cmd := range es.Menu.VisibleCommands() {
		if cmd.ID == req.ID {
			es.Menu.Execute(cmd)
			break
		}
	}
	return s.sessionStateJSON(c, es)
}

// acceptSuggestion godoc
// @id acceptSuggestion
// @Summary сессии: принять вариант транслитерации
// @Description Принимает вариант по индексу, как при клике по элементу списка.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param sessionId path string true "Идентификатор сессии"
// @Param suggestion body reqAcceptSuggestion true "Индекс варианта"
// @Success 200 {object} sessionState "Состояние сессии"
// @Router /api/sessions/{sessionId}/suggestion/ [post]
func (s *Services) acceptSuggestion(c echo.Context) error {
	var req reqAcceptSuggestion
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidRequest)
	}

	es := currentSession(c)
	es.Translit.Accept(req.Index)
	return s.sessionStateJSON(c, es)
}

// setTitle godoc
// @id setTitle
// @Summary сессии: задать заголовок документа
// @Tags Sessions
// @Accept json
// @Produce json
// @Param sessionId path string true "Идентификатор сессии"
// @Param title body reqSetTitle true "Заголовок"
// @Success 200 {object} sessionState "Состояние сессии"
// @Failure 400 {object} apierrors.DefinedError "Заголовок слишком длинный"
// @Router /api/sessions/{sessionId}/title/ [put]
func (s *Services) setTitle(c echo.Context) error {
	var req reqSetTitle
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidRequest)
	}
	if err := c.Validate(req); err != nil {
		return EErrorDefined(c, apierrors.ErrPostTitleTooLong)
	}

	es := currentSession(c)
	es.Autosave.SetTitle(req.Title)
	return s.sessionStateJSON(c, es)
}
