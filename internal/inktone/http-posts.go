// Работа с коллекцией постов: список, получение, создание, обновление и удаление.
//
// Основные возможности:
//   - Список постов, новые первыми.
//   - CRUD операций над отдельным постом.
//   - Очистка всей коллекции.
package inktone

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/inktone/inktone.go/internal/inktone/apierrors"
	"github.com/inktone/inktone.go/internal/inktone/dao"
	policy "github.com/inktone/inktone.go/internal/inktone/redactor-policy"
)

type reqPost struct {
	Title   string `json:"title" validate:"postTitle"`
	Content string `json:"content"`
}

func (s *Services) AddPostServices(g *echo.Group) {
	postsGroup := g.Group("posts/")
	postsGroup.GET("", s.getPostList)
	postsGroup.POST("", s.createPost)
	postsGroup.DELETE("", s.clearPosts)
	postsGroup.GET(":postId/", s.getPost)
	postsGroup.PATCH(":postId/", s.updatePost)
	postsGroup.DELETE(":postId/", s.deletePost)
}

// getPostList godoc
// @id getPostList
// @Summary посты: список
// @Description Возвращает все сохраненные посты, новые первыми.
// @Tags Posts
// @Produce json
// @Success 200 {array} dao.Post "Список постов"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/posts/ [get]
func (s *Services) getPostList(c echo.Context) error {
	posts, err := dao.GetPosts(s.db)
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, posts)
}

// getPost godoc
// @id getPost
// @Summary посты: получить пост
// @Tags Posts
// @Produce json
// @Param postId path string true "Идентификатор поста"
// @Success 200 {object} dao.Post "Пост"
// @Failure 404 {object} apierrors.DefinedError "Пост не найден"
// @Router /api/posts/{postId}/ [get]
func (s *Services) getPost(c echo.Context) error {
	post, err := dao.GetPost(s.db, c.Param("postId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EErrorDefined(c, apierrors.ErrPostNotFound)
		}
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// createPost godoc
// @id createPost
// @Summary посты: создать пост
// @Description Создает пост. HTML содержимого пропускается через политику санитизации.
// @Tags Posts
// @Accept json
// @Produce json
// @Param post body reqPost true "Данные поста"
// @Success 200 {object} dao.Post "Созданный пост"
// @Failure 400 {object} apierrors.DefinedError "Ошибка валидации"
// @Router /api/posts/ [post]
func (s *Services) createPost(c echo.Context) error {
	var req reqPost
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidRequest)
	}
	if err := c.Validate(req); err != nil {
		return EErrorDefined(c, apierrors.ErrPostTitleTooLong)
	}

	post, err := dao.CreatePost(s.db, req.Title, policy.Sanitize(req.Content))
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// updatePost godoc
// @id updatePost
// @Summary посты: обновить пост
// @Tags Posts
// @Accept json
// @Produce json
// @Param postId path string true "Идентификатор поста"
// @Param post body reqPost true "Данные поста"
// @Success 200 {object} dao.Post "Обновленный пост"
// @Failure 404 {object} apierrors.DefinedError "Пост не найден"
// @Router /api/posts/{postId}/ [patch]
func (s *Services) updatePost(c echo.Context) error {
	var req reqPost
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidRequest)
	}
	if err := c.Validate(req); err != nil {
		return EErrorDefined(c, apierrors.ErrPostTitleTooLong)
	}

	post, err := dao.UpdatePost(s.db, c.Param("postId"), req.Title, policy.Sanitize(req.Content))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EErrorDefined(c, apierrors.ErrPostNotFound)
		}
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// deletePost godoc
// @id deletePost
// @Summary посты: удалить пост
// @Tags Posts
// @Param postId path string true "Идентификатор поста"
// @Success 204 "Пост удален"
// @Router /api/posts/{postId}/ [delete]
func (s *Services) deletePost(c echo.Context) error {
	if err := dao.DeletePost(s.db, c.Param("postId")); err != nil {
		return EError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// clearPosts godoc
// @id clearPosts
// @Summary посты: очистить коллекцию
// @Tags Posts
// @Success 204 "Коллекция очищена"
// @Router /api/posts/ [delete]
func (s *Services) clearPosts(c echo.Context) error {
	if err := dao.ClearPosts(s.db); err != nil {
		return EError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
