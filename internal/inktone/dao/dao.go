// DAO (Data Access Object) - предоставляет интерфейс для взаимодействия с базой данных.
// Содержит функции для работы с сущностями приложения: постами и настройками.
//
// Основные возможности:
//   - Работа с постами (создание, обновление, получение, удаление).
//   - Хранение пользовательских настроек (язык ввода).
package dao

import (
	"github.com/gofrs/uuid"
)

// GenID генерирует уникальный идентификатор в формате UUID.
// Не принимает параметров и возвращает строку, представляющую собой UUID.
func GenID() string {
	u2, _ := uuid.NewV4()
	return u2.String()
}

// GenUUID генерирует уникальный идентификатор в формате UUID.
func GenUUID() uuid.UUID {
	u2, _ := uuid.NewV4()
	return u2
}
