package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Freeeeeet/academy_scheduler/internal/calendar"
	"github.com/Freeeeeet/academy_scheduler/internal/config"
	"github.com/Freeeeeet/academy_scheduler/internal/controller"
	"github.com/Freeeeeet/academy_scheduler/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/academy_scheduler/internal/controller/handlers"
	"github.com/Freeeeeet/academy_scheduler/internal/holiday"
	"github.com/Freeeeeet/academy_scheduler/internal/httpapi"
	"github.com/Freeeeeet/academy_scheduler/internal/repository"
	"github.com/Freeeeeet/academy_scheduler/internal/roster"
	"github.com/Freeeeeet/academy_scheduler/internal/scheduling"
	"github.com/Freeeeeet/academy_scheduler/internal/service"
	"github.com/Freeeeeet/academy_scheduler/internal/session"
)

const (
	shutdownTimeout   = 10 * time.Second
	backgroundTick    = 10 * time.Minute
	readHeaderTimeout = 5 * time.Second
)

// lessonStore хранилище занятий: нужно и сервису, и движку диалога
type lessonStore interface {
	service.LessonRepository
	httpapi.Pinger
}

// App собранное приложение
type App struct {
	cfg       *config.Config
	logger    *zap.Logger
	holidays  *holiday.Calendar
	lessons   *service.LessonService
	scheduler *service.SchedulerService
	sweeper   SessionSweeper
	checks    map[string]httpapi.Pinger
	closers   []func()
}

// New открывает хранилища и собирает сервисы
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{
		cfg:      cfg,
		logger:   logger,
		holidays: holiday.New(),
		checks:   make(map[string]httpapi.Pinger),
	}

	r, err := roster.Load(cfg.RosterPath)
	if err != nil {
		return nil, err
	}
	logger.Info("Roster loaded",
		zap.Int("teachers", len(r.Teachers())),
		zap.Int("rooms", len(r.Rooms())),
		zap.Int("courses", len(r.Courses())))

	store, err := a.openLessonStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.checks["lessons"] = store

	sessions, err := a.openSessionStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	policy := scheduling.DefaultPolicy()
	policy.OpeningHour = cfg.OpeningHour
	policy.ClosingHour = cfg.ClosingHour

	grid := calendar.DefaultGrid()
	grid.StartHour = cfg.OpeningHour
	grid.EndHour = cfg.ClosingHour

	engine := scheduling.NewEngine(r, scheduling.NewGenerator(policy, a.holidays), store, logger)
	a.lessons = service.NewLessonService(store, r, grid, logger)
	a.scheduler = service.NewSchedulerService(engine, sessions, a.lessons, logger)

	return a, nil
}

// openLessonStore PostgreSQL через pgxpool или SQLite для DB_DSN=sqlite://...
func (a *App) openLessonStore(ctx context.Context) (lessonStore, error) {
	if a.cfg.UsesSQLite() {
		repo, err := repository.NewSQLiteLessonRepository(a.cfg.SQLitePath())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { repo.Close() })
		a.logger.Info("Using SQLite lesson store", zap.String("path", a.cfg.SQLitePath()))
		return repo, nil
	}

	pool, err := pgxpool.New(ctx, a.cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	a.closers = append(a.closers, pool.Close)

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	migrator, err := NewMigrator(pool, a.cfg.MigrationsPath, a.logger)
	if err != nil {
		return nil, err
	}
	defer migrator.Close()
	if err := migrator.Run(ctx); err != nil {
		return nil, err
	}

	a.logger.Info("✅ Connected to PostgreSQL")
	return repository.NewLessonRepository(pool), nil
}

// openSessionStore Redis, если задан REDIS_ADDR, иначе память процесса
func (a *App) openSessionStore(ctx context.Context) (session.Store, error) {
	if a.cfg.RedisAddr == "" {
		store := session.NewMemoryStore(a.cfg.SessionTTL)
		a.sweeper = store
		a.logger.Info("Using in-memory dialogue store", zap.Duration("ttl", a.cfg.SessionTTL))
		return store, nil
	}

	client := session.NewRedisClient(a.cfg.RedisAddr, a.cfg.RedisPassword)
	a.closers = append(a.closers, func() { client.Close() })

	store := session.NewRedisStore(client, a.cfg.SessionTTL)
	if err := store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	a.checks["redis"] = store

	a.logger.Info("Using Redis dialogue store", zap.String("addr", a.cfg.RedisAddr))
	return store, nil
}

// Run запускает HTTP API, бота и фоновые задачи до отмены ctx
func (a *App) Run(ctx context.Context) error {
	background := NewScheduler(a.holidays, a.sweeper, backgroundTick, a.logger)
	background.Start(ctx)
	defer background.Stop()

	g, ctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr: a.cfg.HTTPAddr,
		Handler: httpapi.NewRouter(httpapi.Deps{
			Lessons:   a.lessons,
			Scheduler: a.scheduler,
			Holidays:  a.holidays,
			Checks:    a.checks,
			Logger:    a.logger,
		}),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g.Go(func() error {
		a.logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if a.cfg.TelegramToken != "" {
		g.Go(func() error {
			return a.runBot(ctx)
		})
	} else {
		a.logger.Warn("TELEGRAM_TOKEN not set, bot disabled")
	}

	return g.Wait()
}

func (a *App) runBot(ctx context.Context) error {
	deps := &callbacktypes.Handler{
		Scheduler:  a.scheduler,
		Lessons:    a.lessons,
		Holidays:   a.holidays,
		Logger:     a.logger,
		ThinkDelay: a.cfg.ThinkDelay,
	}

	var ctrl *controller.BotController
	b, err := bot.New(a.cfg.TelegramToken,
		bot.WithMiddlewares(handlers.AllowChats(a.cfg.AllowedChatIDs, a.logger)),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			ctrl.DefaultHandler(ctx, b, update)
		}),
	)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	ctrl = controller.NewBotController(b, deps)
	if err := ctrl.RegisterHandlers(ctx); err != nil {
		// меню команд не критично
		a.logger.Warn("Bot commands not registered", zap.Error(err))
	}
	return ctrl.Start(ctx)
}

// Close освобождает ресурсы в обратном порядке
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
