package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/aryaseta/movie-vault/config"
	"github.com/aryaseta/movie-vault/pkg/helpers"
)

// App-level container sharing constructed components across packages, so the
// router can auto-wire modules from these singletons. Everything is set once
// in cmd/main.go during startup; there is no lazy construction.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	jwtManager *helpers.JWTManager

	emailPub       *helpers.RabbitPublisher
	movieEventsPub *helpers.RabbitPublisher
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func SetEmailPub(p *helpers.RabbitPublisher)       { emailPub = p }
func GetEmailPub() *helpers.RabbitPublisher        { return emailPub }
func SetMovieEventsPub(p *helpers.RabbitPublisher) { movieEventsPub = p }
func GetMovieEventsPub() *helpers.RabbitPublisher  { return movieEventsPub }
