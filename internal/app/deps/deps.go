package deps

import (
	"context"
	"sync"
	"time"

	"github.com/Ebbabire/call-reminder/internal/config"
	"github.com/Ebbabire/call-reminder/internal/core/domain/call"
	dl "github.com/Ebbabire/call-reminder/internal/core/domain/logging"
	drl "github.com/Ebbabire/call-reminder/internal/core/domain/rate_limiter"
	"github.com/Ebbabire/call-reminder/internal/core/domain/reminder"
	duow "github.com/Ebbabire/call-reminder/internal/core/domain/unit_of_work"
	dbreminder "github.com/Ebbabire/call-reminder/internal/db/reminder"
	uow "github.com/Ebbabire/call-reminder/internal/db/unit_of_work"
	"github.com/Ebbabire/call-reminder/internal/implementations/logging"
	ratelimiter "github.com/Ebbabire/call-reminder/internal/implementations/rate_limiter"
	"github.com/Ebbabire/call-reminder/internal/implementations/vapi"
	"github.com/Ebbabire/call-reminder/internal/scheduler"

	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/r3labs/sse/v2"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB        *pgxpool.Pool
	Redis     *redis.Client
	SseServer *sse.Server

	Now func() time.Time

	UnitOfWork         duow.UnitOfWork
	ReminderRepository reminder.ReminderRepository

	RateLimiter drl.RateLimiter

	VoiceCaller *vapi.Caller
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeSseServer := deps.initSseServer()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.ReminderRepository = dbreminder.NewPgxReminderRepository(deps.DB)
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)

	deps.VoiceCaller = vapi.New(
		deps.Logger,
		vapi.Config{
			APIKey:        deps.Config.VapiAPIKey,
			APIURL:        deps.Config.VapiAPIURL,
			AssistantID:   deps.Config.VapiAssistantID,
			PhoneNumberID: deps.Config.VapiPhoneNumberID,
		},
		deps.Config.VapiRequestTimeout,
	)

	return deps, func() {
		closeFuncs := []func(){
			closeSseServer,
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

var _ call.VoiceCaller = (*vapi.Caller)(nil)

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	sseServer := sse.New()
	sseServer.AutoReplay = false
	sseServer.CreateStream(scheduler.TickStream)
	deps.SseServer = sseServer
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		sseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}
