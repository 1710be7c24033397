package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"pagequiz/internal/api"
	"pagequiz/internal/app"
	"pagequiz/internal/config"
	"pagequiz/internal/infra/memory"
	redisstore "pagequiz/internal/infra/redis"
)

// env wires the configured client, stores, and notifier for one
// command invocation.
type env struct {
	cfg       config.Config
	client    *api.Client
	quizzes   app.QuizFetcher
	store     app.ResultStore
	interval  time.Duration
	notifier  app.Notifier
	shareBase string
}

func newEnv(out io.Writer) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	base := apiURL
	if base == "" {
		base = cfg.API.BaseURL
	}

	token := authToken
	if token == "" {
		token = cfg.Auth.Token
	}
	if token == "" && cfg.Auth.TokenFile != "" {
		raw, err := os.ReadFile(cfg.Auth.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("read token file: %w", err)
		}
		token = strings.TrimSpace(string(raw))
	}

	httpClient := &http.Client{Timeout: config.DurationOr(cfg.API.Timeout, 30*time.Second)}
	client := api.NewClient(base, httpClient, api.StaticToken(token))

	var store app.ResultStore = memory.NewResultStore()
	if cfg.Results.Addr != "" {
		redisClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Results.Addr,
			Password: cfg.Results.Password,
			DB:       cfg.Results.DB,
		})
		store = redisstore.NewResultStore(redisClient, config.DurationOr(cfg.Results.TTL, 30*24*time.Hour))
	}

	return &env{
		cfg:       cfg,
		client:    client,
		quizzes:   memory.NewQuizCache(client, 10*time.Minute),
		store:     store,
		interval:  config.DurationOr(cfg.Poll.Interval, app.DefaultPollInterval),
		notifier:  writerNotifier{out: out},
		shareBase: strings.TrimRight(cfg.Share.BaseURL, "/"),
	}, nil
}

type writerNotifier struct {
	out io.Writer
}

func (n writerNotifier) Notify(level app.Level, message string) {
	prefix := "✔"
	if level == app.LevelError {
		prefix = "✖"
	}
	fmt.Fprintf(n.out, "%s %s\n", prefix, message)
}
