package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/posts-gateway/internal/core/domain"
	"github.com/sirpyerre/posts-gateway/internal/core/ports"
)

// PostHandler relays CRUD requests for the posts resource to the upstream
// API. Admission (authentication and role checks) already happened in the
// middleware chain by the time these run.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

type postRequest struct {
	UserID int64  `json:"userId" validate:"required"`
	Title  string `json:"title"  validate:"required"`
	Body   string `json:"body"   validate:"required"`
}

// List handles GET /api/posts.
//
// @Summary      List all posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Post
// @Router       /api/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Get handles GET /api/posts/:id.
//
// @Summary      Get a post by id
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post id"
// @Success      200  {object}  domain.Post
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	post, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Create handles POST /api/posts. Admin only.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postRequest  true  "Post to create"
// @Success      201   {object}  domain.Post
// @Failure      403   {object}  map[string]string
// @Router       /api/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	req, err := bindPost(c)
	if err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), domain.Post{
		UserID: req.UserID,
		Title:  req.Title,
		Body:   req.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/posts/:id. Admin only.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Post id"
// @Param        body  body      postRequest  true  "Updated post"
// @Success      200   {object}  domain.Post
// @Failure      404   {object}  map[string]string
// @Router       /api/posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	req, err := bindPost(c)
	if err != nil {
		return err
	}

	updated, err := h.service.Update(c.Request().Context(), id, domain.Post{
		UserID: req.UserID,
		Title:  req.Title,
		Body:   req.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/posts/:id. Admin only.
//
// @Summary      Delete a post
// @Tags         posts
// @Security     BearerAuth
// @Param        id  path  int  true  "Post id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid post id")
	}
	return id, nil
}

func bindPost(c echo.Context) (*postRequest, error) {
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return &req, nil
}
