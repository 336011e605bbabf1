// Пакет transliterate реализует контроллер транслитерации:
// плагин сессии документа, который следит за вводом латиницы,
// дебаунсит запросы к внешнему сервису транслитерации и подставляет
// выбранный вариант вместо кандидата.
package transliterate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"
)

const maxSuggestions = 5

// InputToolCode возвращает код инструмента ввода для языка.
// Пустая строка означает, что транслитерация для языка отключена.
func InputToolCode(lang string) string {
	switch lang {
	case "kn":
		return "kn-t-i0-und"
	case "bn":
		return "bn-t-i0-und"
	default:
		return ""
	}
}

// Client - клиент внешнего сервиса транслитерации.
type Client struct {
	baseURL *url.URL
	client  *http.Client
}

// NewClient создает клиента сервиса транслитерации.
// Запросы не ретраятся: повторная попытка бессмысленна, следующий
// ввод пользователя все равно породит новый запрос.
func NewClient(baseURL *url.URL) *Client {
	cl := retryablehttp.NewClient()
	cl.RetryMax = 0
	cl.Logger = slog.Default()

	return &Client{
		baseURL: baseURL,
		client:  cl.StandardClient(),
	}
}

// Fetch запрашивает до пяти вариантов транслитерации текста text
// для инструмента ввода itc.
//
// Ответ сервиса - JSON-массив [status, [[echo, [suggestion, ...], ...]]];
// потребляются только ответы со статусом SUCCESS и непустым первым
// результатом.
func (c *Client) Fetch(ctx context.Context, text, itc string) ([]string, error) {
	reqURL := *c.baseURL
	q := reqURL.Query()
	q.Set("text", text)
	q.Set("itc", itc)
	q.Set("num", fmt.Sprint(maxSuggestions))
	q.Set("cp", "0")
	q.Set("cs", "1")
	q.Set("ie", "utf-8")
	q.Set("oe", "utf-8")
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transliteration service status %d", resp.StatusCode)
	}

	var raw []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	if len(raw) < 2 {
		return nil, fmt.Errorf("malformed transliteration response")
	}

	var status string
	if err := json.Unmarshal(raw[0], &status); err != nil {
		return nil, err
	}
	if status != "SUCCESS" {
		return nil, fmt.Errorf("transliteration service status %q", status)
	}

	var results [][]json.RawMessage
	if err := json.Unmarshal(raw[1], &results); err != nil {
		return nil, err
	}
	if len(results) == 0 || len(results[0]) < 2 {
		return nil, nil
	}

	var suggestions []string
	if err := json.Unmarshal(results[0][1], &suggestions); err != nil {
		return nil, err
	}
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	return suggestions, nil
}
