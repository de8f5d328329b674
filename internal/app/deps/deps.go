package deps

import (
	"context"
	"pms/internal/config"
	dl "pms/internal/core/domain/logging"
	"pms/internal/core/domain/notification"
	drl "pms/internal/core/domain/rate_limiter"
	duow "pms/internal/core/domain/unit_of_work"
	"pms/internal/core/domain/user"
	"pms/internal/db"
	uow "pms/internal/db/unit_of_work"
	dbuser "pms/internal/db/user"
	"pms/internal/implementations/logging"
	"pms/internal/implementations/notifier"
	passwordhasher "pms/internal/implementations/password_hasher"
	randomstringgenerator "pms/internal/implementations/random_string_generator"
	ratelimiter "pms/internal/implementations/rate_limiter"
	resettokenhasher "pms/internal/implementations/reset_token_hasher"
	"pms/internal/rabbitmq"
	mailqueue "pms/internal/rabbitmq/publishers/mail_queue"
	"sync"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	UnitOfWork        duow.UnitOfWork
	UserRepository    user.UserRepository
	SessionRepository user.SessionRepository

	RateLimiter drl.RateLimiter

	PasswordHasher              user.PasswordHasher
	SessionTokenGenerator       user.SessionTokenGenerator
	PasswordResetTokenGenerator user.PasswordResetTokenGenerator
	PasswordResetTokenHasher    user.PasswordResetTokenHasher

	// Notifier is what the HTTP process uses; Mailer is the direct transport
	// the mail worker delivers queued messages with.
	Notifier notification.Notifier
	Mailer   notification.Mailer
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	deps.migrate()
	closeRedisClient := deps.initRedisClient()

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.SessionRepository = dbuser.NewPgxSessionRepository(deps.DB)

	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.SessionTokenGenerator = randomstringgenerator.NewGenerator()
	deps.PasswordResetTokenGenerator = randomstringgenerator.NewGenerator()
	deps.PasswordResetTokenHasher = resettokenhasher.NewSHA256()

	closeNotifier := deps.initNotifier()

	return deps, closeAll(
		closeNotifier,
		closeRedisClient,
		closePgxPool,
		closeLogger,
	)
}

// InitMailerDeps prepares what the mail worker needs: the broker and the
// direct mail transport.
func InitMailerDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	closeLogger := deps.initLogger()
	deps.Now = func() time.Time { return time.Now().UTC() }

	queue, ok := deps.Config.Notifier.(notification.Queue)
	if !ok {
		deps.Logger.Error(context.Background(), "NOTIFIER_QUEUE_URL must be set for the mail worker.")
		panic("mail queue is not configured")
	}
	closeRabbitmqConn := deps.initRabbitmqConnection(queue.URL)
	deps.Mailer = deps.initMailer(queue.Direct)

	return deps, closeAll(closeRabbitmqConn, closeLogger)
}

// InitStorageDeps is enough for one-off commands working with users only.
func InitStorageDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	deps.migrate()

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)

	return deps, closeAll(closePgxPool, closeLogger)
}

func closeAll(closeFuncs ...func()) func() {
	return func() {
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

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZap(deps.Config.LogDevelopment)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	pool, err := db.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = pool
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		pool.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) migrate() {
	if err := db.Migrate(deps.Config.PostgresqlURL, deps.Config.MigrationsPath); err != nil {
		deps.Logger.Error(context.Background(), "Could not migrate DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.Logger.Info(context.Background(), "DB schema is up to date.")
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

func (deps *Deps) initRabbitmqConnection(url string) func() {
	rabbitmqConnection, err := rabbitmq.Dial(url, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initMailer(config notification.Config) notification.Mailer {
	mailer, err := notifier.NewMailer(
		context.Background(),
		deps.Logger,
		config,
		notifier.Settings{From: deps.Config.EmailFrom, AWSRegion: deps.Config.AWSRegion},
	)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create mail transport.", dl.Entry("err", err))
		panic(err)
	}
	return mailer
}

func (deps *Deps) initNotifier() func() {
	cfg := deps.Config.Notifier
	deps.Logger.Info(
		context.Background(),
		"Notifier transport resolved.",
		dl.Entry("transport", cfg.Transport()),
	)
	renderer := notifier.NewRenderer(deps.Now)

	switch c := cfg.(type) {
	case notification.DevConsole:
		deps.Notifier = notifier.NewConsole(deps.Logger)
		return func() {}
	case notification.Queue:
		closeRabbitmqConn := deps.initRabbitmqConnection(c.URL)
		rabbitmqChannel, err := deps.Rabbitmq.Channel()
		if err != nil {
			deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
			panic(err)
		}
		if err := rabbitmqChannel.DeclareQueue(c.Queue); err != nil {
			deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
			panic(err)
		}
		publisher := mailqueue.NewRabbitMQ(deps.Logger, rabbitmqChannel, c.Queue)
		deps.Notifier = notifier.NewEmail(deps.Logger, renderer, publisher, cfg.Transport())
		return func() {
			deps.Logger.Info(context.Background(), "Shutting down mail queue publisher.")
			rabbitmqChannel.Close()
			closeRabbitmqConn()
		}
	default:
		deps.Mailer = deps.initMailer(cfg)
		deps.Notifier = notifier.NewEmail(deps.Logger, renderer, deps.Mailer, cfg.Transport())
		return func() {}
	}
}
