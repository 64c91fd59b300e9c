package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bookspace-backend/internal/config"
	infraCache "bookspace-backend/internal/infrastructure/cache"
	"bookspace-backend/internal/infrastructure/database"
	"bookspace-backend/pkg/cache"
	"bookspace-backend/pkg/jwt"

	bookHandler "bookspace-backend/internal/domains/book/handler"
	bookRepo "bookspace-backend/internal/domains/book/repository"
	bookService "bookspace-backend/internal/domains/book/service"
	commentHandler "bookspace-backend/internal/domains/comment/handler"
	commentRepo "bookspace-backend/internal/domains/comment/repository"
	commentService "bookspace-backend/internal/domains/comment/service"
	shelfHandler "bookspace-backend/internal/domains/shelf/handler"
	shelfRepo "bookspace-backend/internal/domains/shelf/repository"
	shelfService "bookspace-backend/internal/domains/shelf/service"
	taxonomyHandler "bookspace-backend/internal/domains/taxonomy/handler"
	taxonomyRepo "bookspace-backend/internal/domains/taxonomy/repository"
	taxonomyService "bookspace-backend/internal/domains/taxonomy/service"
	userHandler "bookspace-backend/internal/domains/user/handler"
	userRepo "bookspace-backend/internal/domains/user/repository"
	userService "bookspace-backend/internal/domains/user/service"
)

// Container holds the whole dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then repositories, services, handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	UserRepo     userRepo.UserRepository
	BookRepo     bookRepo.BookRepository
	ShelfRepo    shelfRepo.ShelfRepository
	CommentRepo  commentRepo.CommentRepository
	TaxonomyRepo taxonomyRepo.Store

	UserService     userService.ServiceInterface
	BookService     bookService.ServiceInterface
	ShelfService    shelfService.ServiceInterface
	CommentService  commentService.ServiceInterface
	TaxonomyService taxonomyService.ServiceInterface

	UserHandler     *userHandler.UserHandler
	BookHandler     *bookHandler.BookHandler
	ShelfHandler    *shelfHandler.ShelfHandler
	CommentHandler  *commentHandler.CommentHandler
	TaxonomyHandler *taxonomyHandler.TaxonomyHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	redisClient := infraCache.NewRedisClient(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisClient.Connect(context.Background()); err != nil {
		// The cache is an optimization, not a dependency; run without it.
		log.Warn().Err(err).Msg("redis connection failed, continuing without cache")
	}
	c.Cache = redisClient

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	pool := db.Pool
	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
	c.BookRepo = bookRepo.NewPostgresBookRepository(pool)
	c.ShelfRepo = shelfRepo.NewPostgresShelfRepository(pool)
	c.CommentRepo = commentRepo.NewPostgresCommentRepository(pool)
	c.TaxonomyRepo = taxonomyRepo.NewPostgresStore(pool)

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.TaxonomyService = taxonomyService.NewTaxonomyService(c.TaxonomyRepo)
	c.CommentService = commentService.NewCommentService(c.CommentRepo, c.UserService)
	c.ShelfService = shelfService.NewShelfService(c.ShelfRepo)
	c.BookService = bookService.NewBookService(
		c.BookRepo,
		c.ShelfRepo,
		c.TaxonomyService,
		c.CommentService,
		c.Cache,
	)

	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.ShelfHandler = shelfHandler.NewShelfHandler(c.ShelfService)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)
	c.TaxonomyHandler = taxonomyHandler.NewTaxonomyHandler(c.TaxonomyService)

	return c, nil
}

// Cleanup releases infrastructure connections, in reverse order of creation.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisClient); ok {
			if err := rc.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close redis connection")
			}
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}

// HealthCheck pings the container's stateful dependencies.
func (c *Container) HealthCheck(ctx context.Context) error {
	if err := c.DB.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database unhealthy: %w", err)
	}
	if err := c.Cache.Ping(ctx); err != nil {
		return fmt.Errorf("cache unhealthy: %w", err)
	}
	return nil
}
