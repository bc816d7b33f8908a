package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"kanban-api/api"
	"kanban-api/storage"
	"kanban-api/store"
)

func main() {
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}
	logger := log.New()

	slot, err := buildSlot()
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	st := store.New(slot, logger)
	st.Initialize(context.Background())

	auth, err := buildAuth()
	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	e := echo.New()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(api.GzipRequestMiddleware())

	api.Register(e, st, auth, logger)

	listenAddr := ":8080"
	if val, ok := os.LookupEnv("PORT"); ok {
		listenAddr = ":" + val
	}
	e.Logger.Fatal(e.Start(listenAddr))
}

// buildSlot picks the persistence backend from the environment: an Azure
// Table when a storage connection string is configured, a local file
// otherwise. A Redis connection string adds a read cache in front of the
// table backend.
func buildSlot() (store.Slot, error) {
	key := os.Getenv("BOARD_STORAGE_KEY")

	connStr := os.Getenv("STORAGE_CONNECTION_STRING")
	if connStr == "" {
		path := os.Getenv("BOARD_DATA_FILE")
		if path == "" {
			path = "kanban-board.json"
		}
		log.WithField("path", path).Info("using file storage")
		return storage.NewFileSlot(path), nil
	}

	tableName := os.Getenv("BOARD_TABLE")
	if tableName == "" {
		return nil, fmt.Errorf("BOARD_TABLE must be set with STORAGE_CONNECTION_STRING")
	}
	table, err := storage.NewTableSlot(connStr, tableName, key)
	if err != nil {
		return nil, err
	}

	redisConn := os.Getenv("REDIS_CONNECTION_STRING")
	if redisConn == "" {
		return table, nil
	}
	opts, err := parseRedisConn(redisConn)
	if err != nil {
		return nil, err
	}
	ttl := time.Hour
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid CACHE_TTL: %q", v)
		}
		ttl = d
	}
	return storage.NewCache(table, redis.NewClient(opts), key, ttl), nil
}

// parseRedisConn accepts either a redis URL or the comma-separated
// host,key=value form some managed offerings hand out.
func parseRedisConn(connStr string) (*redis.Options, error) {
	opts, err := redis.ParseURL(connStr)
	if err == nil {
		return opts, nil
	}
	parts := strings.Split(connStr, ",")
	if parts[0] == "" {
		return nil, fmt.Errorf("invalid redis connection string")
	}
	opts = &redis.Options{Addr: parts[0]}
	for _, p := range parts[1:] {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.ToLower(kv[0]) {
		case "password":
			opts.Password = kv[1]
		case "ssl":
			if strings.ToLower(kv[1]) == "true" {
				opts.TLSConfig = &tls.Config{}
			}
		}
	}
	return opts, nil
}

// buildAuth configures JWT validation when an identity provider is present.
// Without one the board runs as a single shared workspace.
func buildAuth() (api.Authenticator, error) {
	if os.Getenv("AUTH_TEST_MODE") == "1" {
		return api.NewAuth(nil, "", ""), nil
	}
	domain := os.Getenv("AUTH_DOMAIN")
	audience := os.Getenv("AUTH_AUDIENCE")
	if domain == "" && audience == "" {
		log.Warn("no identity provider configured, board is open")
		return api.OpenAccess{}, nil
	}
	if domain == "" || audience == "" {
		return nil, fmt.Errorf("AUTH_DOMAIN and AUTH_AUDIENCE must be set together")
	}
	jwksURL := fmt.Sprintf("https://%s/.well-known/jwks.json", domain)
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{})
	if err != nil {
		return nil, fmt.Errorf("jwks: %w", err)
	}
	return api.NewAuth(jwks, audience, "https://"+domain+"/"), nil
}
