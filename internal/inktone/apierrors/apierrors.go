// Пакет содержит определения ошибок, используемых в приложении для обработки ситуаций, возникающих при работе с постами, экспортом документов и сервисом транслитерации.  Каждая ошибка имеет код, статус HTTP и описание, что позволяет удобно обрабатывать исключения и предоставлять информативные сообщения пользователю.
//
// Основные возможности:
//   - Определение типов ошибок, связанных с постами, сессиями редактирования, экспортом и транслитерацией.
//   - Предоставление кодов ошибок, соответствующих кодам HTTP статусов.
//   - Функция для форматирования сообщений об ошибках с использованием аргументов.
package apierrors

import (
	"net/http"
	"strings"
)

type DefinedError struct {
	Code       int    `json:"code"`
	StatusCode int    `json:"-"`
	Err        string `json:"error"`
	RuErr      string `json:"ru_error,omitempty"`
}

func (e DefinedError) Error() string {
	return e.Err
}

var (
	// 1*** - generic errors
	ErrGeneric        = DefinedError{Code: 1001, StatusCode: http.StatusInternalServerError, Err: "internal server error", RuErr: "Внутренняя ошибка сервера"}
	ErrInvalidRequest = DefinedError{Code: 1002, StatusCode: http.StatusBadRequest, Err: "invalid request body", RuErr: "Некорректное тело запроса"}

	// 2*** - post errors
	ErrPostNotFound      = DefinedError{Code: 2001, StatusCode: http.StatusNotFound, Err: "post not found", RuErr: "Пост не найден"}
	ErrPostTitleTooLong  = DefinedError{Code: 2002, StatusCode: http.StatusBadRequest, Err: "post title is too long", RuErr: "Заголовок поста слишком длинный"}
	ErrPostContentBroken = DefinedError{Code: 2003, StatusCode: http.StatusBadRequest, Err: "post content cannot be parsed", RuErr: "Содержимое поста не удалось разобрать"}

	// 3*** - editing session errors
	ErrSessionNotFound = DefinedError{Code: 3001, StatusCode: http.StatusNotFound, Err: "editing session not found", RuErr: "Сессия редактирования не найдена"}
	ErrBadDocumentJSON = DefinedError{Code: 3002, StatusCode: http.StatusBadRequest, Err: "document JSON cannot be parsed", RuErr: "JSON документа не удалось разобрать"}

	// 4*** - export errors
	ErrUnknownExportFormat = DefinedError{Code: 4001, StatusCode: http.StatusBadRequest, Err: "unknown export format %s", RuErr: "Неизвестный формат экспорта %s"}
	ErrExportFailed        = DefinedError{Code: 4002, StatusCode: http.StatusInternalServerError, Err: "export failed", RuErr: "Не удалось выполнить экспорт"}

	// 5*** - transliteration errors
	ErrUnsupportedLanguage        = DefinedError{Code: 5001, StatusCode: http.StatusBadRequest, Err: "unsupported language", RuErr: "Неподдерживаемый язык"}
	ErrTransliterationUnavailable = DefinedError{Code: 5002, StatusCode: http.StatusBadGateway, Err: "transliteration service unavailable", RuErr: "Сервис транслитерации недоступен"}
)

// FormatError подставляет аргументы в шаблоны сообщений ошибки.
func FormatError(err DefinedError, args ...string) DefinedError {
	for _, arg := range args {
		err.Err = strings.Replace(err.Err, "%s", arg, 1)
		err.RuErr = strings.Replace(err.RuErr, "%s", arg, 1)
	}
	return err
}
