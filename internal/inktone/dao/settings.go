package dao

import (
	"errors"

	"gorm.io/gorm"
)

const languageKey = "language"

// Setting - одна пользовательская настройка в формате ключ-значение.
type Setting struct {
	Key   string `json:"key" gorm:"primaryKey"`
	Value string `json:"value"`
}

// Возвращает имя таблицы для данного типа структуры.
func (Setting) TableName() string { return "settings" }

// GetLanguage возвращает сохраненный язык ввода или fallback,
// если настройка еще не сохранялась.
func GetLanguage(db *gorm.DB, fallback string) (string, error) {
	var s Setting
	if err := db.Where("key = ?", languageKey).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fallback, nil
		}
		return fallback, err
	}
	return s.Value, nil
}

// SetLanguage сохраняет язык ввода.
func SetLanguage(db *gorm.DB, lang string) error {
	return db.Save(&Setting{Key: languageKey, Value: lang}).Error
}
