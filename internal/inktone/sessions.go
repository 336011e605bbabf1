package inktone

import (
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/inktone/inktone.go/internal/inktone/autosave"
	"github.com/inktone/inktone.go/internal/inktone/config"
	"github.com/inktone/inktone.go/internal/inktone/dao"
	"github.com/inktone/inktone.go/internal/inktone/engine"
	"github.com/inktone/inktone.go/internal/inktone/slashmenu"
	"github.com/inktone/inktone.go/internal/inktone/transliterate"
)

// viewportHeight - высота окна headless-раскладки для расчета
// позиционирования меню.
const viewportHeight = 800.0

// EditSession - одна сессия редактирования: сессия документа и
// подписанные на нее контроллеры.
type EditSession struct {
	ID       string
	Engine   *engine.Session
	Menu     *slashmenu.Controller
	Translit *transliterate.Controller
	Autosave *autosave.Controller

	CreatedAt time.Time
}

// SessionManager хранит активные сессии редактирования.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*EditSession

	db      *gorm.DB
	cfg     *config.Config
	fetcher transliterate.Fetcher
}

func NewSessionManager(db *gorm.DB, cfg *config.Config, fetcher transliterate.Fetcher) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*EditSession),
		db:       db,
		cfg:      cfg,
		fetcher:  fetcher,
	}
}

// Create создает сессию редактирования. Непустой postID продолжает
// редактирование существующего поста, его HTML загружается в сессию.
func (sm *SessionManager) Create(postID string) (*EditSession, error) {
	lang, err := dao.GetLanguage(sm.db, sm.cfg.DefaultLanguage)
	if err != nil {
		return nil, err
	}

	eng := engine.NewSession()

	var title string
	if postID != "" {
		post, err := dao.GetPost(sm.db, postID)
		if err != nil {
			return nil, err
		}
		if err := eng.LoadHTML(strings.NewReader(post.Content)); err != nil {
			return nil, err
		}
		title = post.Title
	}

	es := &EditSession{
		ID:        dao.GenID(),
		Engine:    eng,
		CreatedAt: time.Now(),
	}
	es.Menu = slashmenu.New(eng, viewportHeight)
	es.Translit = transliterate.New(
		eng,
		sm.fetcher,
		transliterate.InputToolCode(lang),
		time.Duration(sm.cfg.SuggestDelayMS)*time.Millisecond,
	)
	es.Autosave = autosave.New(eng, sm.db, time.Duration(sm.cfg.AutosaveDelayMS)*time.Millisecond)
	if postID != "" {
		es.Autosave.Attach(postID, title)
	}

	sm.mu.Lock()
	sm.sessions[es.ID] = es
	sm.mu.Unlock()

	return es, nil
}

// Get возвращает сессию по идентификатору.
func (sm *SessionManager) Get(id string) (*EditSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	es, ok := sm.sessions[id]
	return es, ok
}

// Close сохраняет и закрывает сессию.
func (sm *SessionManager) Close(id string) error {
	sm.mu.Lock()
	es, ok := sm.sessions[id]
	delete(sm.sessions, id)
	sm.mu.Unlock()

	if !ok {
		return nil
	}
	es.Autosave.Stop()
	return es.Autosave.Flush()
}

// FlushAll сохраняет все активные сессии, используется при остановке.
func (sm *SessionManager) FlushAll() {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	for _, es := range sm.sessions {
		es.Autosave.Flush()
	}
}
