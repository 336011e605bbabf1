// Пакет autosave реализует дебаунс-сохранение документа сессии
// в коллекцию постов.
//
// Контроллер слушает транзакции сессии и после паузы в редактировании
// сохраняет снимок заголовка и HTML-содержимого. Пустые документы
// не сохраняются.
package autosave

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/inktone/inktone.go/internal/inktone/dao"
	"github.com/inktone/inktone.go/internal/inktone/engine"
	policy "github.com/inktone/inktone.go/internal/inktone/redactor-policy"
)

// DefaultDelay - задержка дебаунса сохранения.
const DefaultDelay = time.Second

// Controller - контроллер автосохранения одной сессии документа.
// Идентичность поста запоминается после первого сохранения, дальше
// запись обновляется на месте.
type Controller struct {
	mu      sync.Mutex
	session *engine.Session
	db      *gorm.DB
	delay   time.Duration

	title  string
	postID string
	timer  *time.Timer
}

// New создает контроллер и подписывает его на транзакции сессии.
func New(session *engine.Session, db *gorm.DB, delay time.Duration) *Controller {
	if delay <= 0 {
		delay = DefaultDelay
	}
	c := &Controller{
		session: session,
		db:      db,
		delay:   delay,
	}
	session.OnTransaction(c.handleTransaction)
	return c
}

// SetTitle задает заголовок документа и планирует сохранение.
func (c *Controller) SetTitle(title string) {
	c.mu.Lock()
	c.title = title
	c.scheduleLocked()
	c.mu.Unlock()
}

// PostID возвращает идентификатор сохраненного поста или пустую
// строку, если документ еще не сохранялся.
func (c *Controller) PostID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.postID
}

// Attach продолжает сохранение в существующий пост.
func (c *Controller) Attach(postID, title string) {
	c.mu.Lock()
	c.postID = postID
	c.title = title
	c.mu.Unlock()
}

func (c *Controller) handleTransaction(tr *engine.Transaction) {
	if !tr.DocChanged {
		return
	}
	c.mu.Lock()
	c.scheduleLocked()
	c.mu.Unlock()
}

// scheduleLocked дебаунсит сохранение: отменяет ожидающий таймер
// и взводит новый, побеждает последняя правка.
func (c *Controller) scheduleLocked() {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, func() {
		if err := c.Flush(); err != nil {
			slog.Error("Autosave failed", "err", err)
		}
	})
}

// Flush немедленно сохраняет текущий снимок документа.
// Пустой документ (пустой заголовок и содержимое без тегов) не
// сохраняется, это не ошибка.
func (c *Controller) Flush() error {
	c.mu.Lock()
	title := c.title
	postID := c.postID
	c.mu.Unlock()

	content := c.session.HTML()

	if strings.TrimSpace(title) == "" && policy.StripTags(content) == "" {
		return nil
	}

	if strings.TrimSpace(title) == "" {
		title = "Untitled"
	}

	if postID != "" {
		_, err := dao.UpdatePost(c.db, postID, title, content)
		return err
	}

	post, err := dao.CreatePost(c.db, title, content)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.postID == "" {
		c.postID = post.ID
	}
	c.mu.Unlock()
	return nil
}

// Stop отменяет ожидающее сохранение.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
}
