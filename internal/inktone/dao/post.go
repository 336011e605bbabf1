package dao

import (
	"time"

	"gorm.io/gorm"
)

// Post - сохраненный документ редактора.
type Post struct {
	// id uuid IS_NULL:NO
	ID string `json:"id" gorm:"primaryKey"`
	// title character varying IS_NULL:NO
	Title string `json:"title" validate:"max=255"`
	// content text IS_NULL:NO сериализованный HTML документа
	Content string `json:"content"`
	// created_at timestamp without time zone IS_NULL:NO
	CreatedAt time.Time `json:"created_at"`
	// updated_at timestamp without time zone IS_NULL:NO
	UpdatedAt time.Time `json:"updated_at"`
}

// Возвращает имя таблицы для данного типа структуры.
func (Post) TableName() string { return "posts" }

// GetPosts возвращает все посты, новые первыми.
func GetPosts(db *gorm.DB) ([]Post, error) {
	var posts []Post
	if err := db.Order("created_at desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost возвращает пост по идентификатору.
func GetPost(db *gorm.DB, id string) (*Post, error) {
	var post Post
	if err := db.Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost сохраняет новый пост с новым идентификатором.
func CreatePost(db *gorm.DB, title, content string) (*Post, error) {
	now := time.Now()
	post := Post{
		ID:        GenID(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost обновляет заголовок и содержимое существующего поста,
// сохраняя created_at.
func UpdatePost(db *gorm.DB, id, title, content string) (*Post, error) {
	post, err := GetPost(db, id)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Content = content
	post.UpdatedAt = time.Now()

	if err := db.Model(post).Updates(map[string]interface{}{
		"title":      post.Title,
		"content":    post.Content,
		"updated_at": post.UpdatedAt,
	}).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost удаляет пост по идентификатору.
func DeletePost(db *gorm.DB, id string) error {
	return db.Where("id = ?", id).Delete(&Post{}).Error
}

// ClearPosts удаляет все посты.
func ClearPosts(db *gorm.DB) error {
	return db.Where("1 = 1").Delete(&Post{}).Error
}
