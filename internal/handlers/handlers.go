package handlers

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"schoolhub/api/internal/config"
	"schoolhub/api/internal/middleware"
	"schoolhub/api/internal/models"
	"schoolhub/api/internal/service"
	"schoolhub/api/internal/session"
	"schoolhub/api/internal/validation"
)

type AccountRepository interface {
	service.AccountStore
	List(ctx context.Context) ([]models.Account, error)
	Search(ctx context.Context, term string) ([]models.Account, error)
	Delete(ctx context.Context, id int64) error
}

type ClassroomRepository interface {
	List(ctx context.Context) ([]models.Classroom, error)
	GetByID(ctx context.Context, id int64) (models.Classroom, error)
	Search(ctx context.Context, term string) ([]models.Classroom, error)
	Delete(ctx context.Context, id int64) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the handlers are built from. Cache may be nil.
type Deps struct {
	Log        zerolog.Logger
	Config     *config.AppConfig
	Accounts   AccountRepository
	Classrooms ClassroomRepository
	Sessions   *session.Manager
	DB         Pinger
	Cache      *redis.Client
}

type HandlerSet struct {
	log         zerolog.Logger
	cfg         *config.AppConfig
	authService *service.AuthService
	validator   *validation.Validator
	sessions    *session.Manager
	accounts    AccountRepository
	classrooms  ClassroomRepository
	db          Pinger
	cache       *redis.Client
}

func NewHandlerSet(deps Deps) (HandlerSet, error) {
	v, err := validation.New()
	if err != nil {
		return HandlerSet{}, fmt.Errorf("init validator: %w", err)
	}

	return HandlerSet{
		log:         deps.Log,
		cfg:         deps.Config,
		authService: service.NewAuthService(deps.Accounts, deps.Log),
		validator:   v,
		sessions:    deps.Sessions,
		accounts:    deps.Accounts,
		classrooms:  deps.Classrooms,
		db:          deps.DB,
		cache:       deps.Cache,
	}, nil
}

func (h HandlerSet) Mount(router gin.IRouter) {
	router.GET("/healthz", h.Health)

	accounts := router.Group("/accounts")
	accounts.Use(middleware.Session(h.sessions, h.log))
	{
		accounts.POST("/login", h.Login)
		accounts.POST("/register", h.RegisterAccount)
		accounts.POST("/logout", h.Logout)

		accounts.GET("/accounts", h.ListAccounts)
		accounts.GET("/account/:accountID", h.GetAccount)
		accounts.DELETE("/account/delete/:accountID", h.DeleteAccount)
		accounts.PUT("/account/update/password", middleware.RequireSession(), h.UpdatePassword)
		accounts.GET("/search", h.SearchAccounts)
	}

	classrooms := router.Group("/classrooms")
	{
		classrooms.GET("/classrooms", h.ListClassrooms)
		classrooms.GET("/classroom/:classroomID", h.GetClassroom)
		classrooms.DELETE("/classroom/delete/:classroomID", h.DeleteClassroom)
		classrooms.GET("/search", h.SearchClassrooms)
	}
}
