package handler

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/middleware"
	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/repository"
)

// PostHandler serves the role-gated posts resource.
type PostHandler struct {
	Posts *repository.PostRepo
}

func NewPostHandler(p *repository.PostRepo) *PostHandler {
	return &PostHandler{Posts: p}
}

type postResp struct {
	ID        uint64 `json:"id"`
	AuthorID  uint64 `json:"author_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	IsPremium bool   `json:"is_premium"`
}

func toPostResps(posts []model.Post) []postResp {
	out := make([]postResp, 0, len(posts))
	for _, p := range posts {
		out = append(out, postResp{
			ID: p.ID, AuthorID: p.AuthorID, Title: p.Title,
			Content: p.Content, IsPremium: p.IsPremium,
		})
	}
	return out
}

// Add generates n posts authored by the caller. Route guards restrict this
// to ADMIN accounts.
func (h *PostHandler) Add(c echo.Context) error {
	n, err := strconv.Atoi(c.QueryParam("n"))
	if err != nil || n < 1 || n > 1000 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "n must be between 1 and 1000"})
	}
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return tokenUnauthorized(c)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	for i := 0; i < n; i++ {
		p := model.Post{
			AuthorID:  u.ID,
			Title:     fmt.Sprintf("Generated post %d", i+1),
			Content:   fmt.Sprintf("Autogenerated content block #%d.", i+1),
			IsPremium: rand.Intn(2) == 1,
		}
		if _, err := h.Posts.Insert(ctx, p); err != nil {
			return internalError(c)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("successfully added %d posts", n)})
}

// Read lists non-premium posts. Public.
func (h *PostHandler) Read(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	posts, err := h.Posts.ListByPremium(ctx, false)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, toPostResps(posts))
}

// ReadPremium lists premium posts. Route guards restrict this to VIP_CLIENT
// accounts.
func (h *PostHandler) ReadPremium(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	posts, err := h.Posts.ListByPremium(ctx, true)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, toPostResps(posts))
}

// Delete removes one of the caller's own posts. ADMIN only via route guards.
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid post id"})
	}
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return tokenUnauthorized(c)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Posts.DeleteOwned(ctx, id, u.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "successfully deleted post"})
}
