package mockapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"crudconsole/internal/logging"
	"crudconsole/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Options configure the mock server.
type Options struct {
	// RateLimit caps requests per second per client IP. Zero disables limiting.
	RateLimit float64
	Logger    *slog.Logger
}

// Server emulates the demo API: reads come from fixtures, writes are echoed
// back but never stored, and every create answers with the same id.
type Server struct {
	users []model.User
	posts []model.Post

	log *slog.Logger
	e   *echo.Echo
}

func New(opts Options) *Server {
	s := &Server{
		users: SeedUsers(),
		posts: SeedPosts(),
		log:   opts.Logger,
	}
	if s.log == nil {
		s.log = logging.Discard()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(s.requestLogger)
	if opts.RateLimit > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(opts.RateLimit))))
	}

	e.GET("/users", s.listUsers)
	e.GET("/users/:id", s.getUser)
	e.POST("/users", s.createUser)
	e.PUT("/users/:id", s.updateUser)
	e.DELETE("/users/:id", s.deleteUser)

	e.GET("/posts", s.listPosts)
	e.GET("/posts/:id", s.getPost)
	e.POST("/posts", s.createPost)
	e.PUT("/posts/:id", s.updatePost)
	e.DELETE("/posts/:id", s.deletePost)

	s.e = e
	return s
}

func (s *Server) Handler() http.Handler { return s.e }

// Start blocks serving on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	err := s.e.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }

// CreatedUserID and CreatedPostID are what the server answers for every
// create, matching the public demo API.
func (s *Server) CreatedUserID() int { return len(seedNames) + 1 }
func (s *Server) CreatedPostID() int { return len(seedNames)*postsPerUser + 1 }

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		status := c.Response().Status
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
		}
		s.log.Debug("mock api", "method", c.Request().Method, "path", c.Request().URL.RequestURI(), "status", status)
		return err
	}
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return id, nil
}

func notFound() error { return echo.NewHTTPError(http.StatusNotFound, "not found") }

func (s *Server) findUser(id int) (model.User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *Server) findPost(id int) (model.Post, bool) {
	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	return model.Post{}, false
}

func (s *Server) listUsers(c echo.Context) error {
	out := append([]model.User(nil), s.users...)
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	u, ok := s.findUser(id)
	if !ok {
		return notFound()
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) createUser(c echo.Context) error {
	var d model.UserDraft
	if err := c.Bind(&d); err != nil {
		return err
	}
	u := d.ApplyTo(model.User{})
	u.ID = s.CreatedUserID()
	return c.JSON(http.StatusCreated, u)
}

func (s *Server) updateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	u, ok := s.findUser(id)
	if !ok {
		return notFound()
	}
	var d model.UserDraft
	if err := c.Bind(&d); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d.ApplyTo(u))
}

func (s *Server) deleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if _, ok := s.findUser(id); !ok {
		return notFound()
	}
	return c.JSON(http.StatusOK, map[string]any{})
}

func (s *Server) listPosts(c echo.Context) error {
	var userID int
	if v := c.QueryParam("userId"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			// The demo API answers an unparseable filter with an empty list.
			return c.JSON(http.StatusOK, []model.Post{})
		}
		userID = n
	}

	out := make([]model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if userID != 0 && p.UserID != userID {
			continue
		}
		out = append(out, p)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getPost(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, ok := s.findPost(id)
	if !ok {
		return notFound()
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) createPost(c echo.Context) error {
	var d model.PostDraft
	if err := c.Bind(&d); err != nil {
		return err
	}
	p := d.ApplyTo(model.Post{})
	p.ID = s.CreatedPostID()
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) updatePost(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, ok := s.findPost(id)
	if !ok {
		return notFound()
	}
	var d model.PostDraft
	if err := c.Bind(&d); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d.ApplyTo(p))
}

func (s *Server) deletePost(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if _, ok := s.findPost(id); !ok {
		return notFound()
	}
	return c.JSON(http.StatusOK, map[string]any{})
}
