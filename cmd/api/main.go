package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Jorrgejimenezm/FlickShop/internal/cart"
	"github.com/Jorrgejimenezm/FlickShop/internal/config"
	"github.com/Jorrgejimenezm/FlickShop/internal/handler"
	"github.com/Jorrgejimenezm/FlickShop/internal/infra/kvstore"
	"github.com/Jorrgejimenezm/FlickShop/internal/repository"
	"github.com/Jorrgejimenezm/FlickShop/internal/server"
	"github.com/Jorrgejimenezm/FlickShop/internal/storeapi"
	"github.com/Jorrgejimenezm/FlickShop/internal/usecase"
)

func main() {
	//.envは無くてもよい（コンテナでは環境変数が直接入る）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.GoEnv)
	defer logger.Sync() //nolint:errcheck

	//ログイン済みカート用の期限付きストア。
	//Redisに繋がらない環境ではメモリにフォールバックする。
	keyed := newKeyedStore(cfg, logger)

	//匿名カート用のローカルストア
	anonymous, err := kvstore.OpenSQLite(cfg.CartDBPath)
	if err != nil {
		logger.Fatal("failed to open cart db", zap.Error(err))
	}

	cartStore := cart.NewStore(keyed, anonymous, logger)
	carts := cart.NewFactory(cartStore, logger)

	//リモートストアAPI
	api := storeapi.NewClient(cfg.StoreAPIURL)

	//Usecase生成
	cartUC := usecase.NewCartUsecase(api)
	productUC := usecase.NewProductUsecase(api)
	orderUC := usecase.NewOrderUsecase(api)
	checkoutUC := usecase.NewCheckoutUsecase(api, logger)

	//Handler生成
	e := server.New(cfg,
		handler.NewCartHandler(cartUC, carts),
		handler.NewCheckoutHandler(checkoutUC, carts),
		handler.NewProductHandler(productUC),
		handler.NewCategoryHandler(api),
		handler.NewOrderHandler(orderUC),
		handler.NewAuthHandler(api),
	)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	logger.Info("starting server", zap.String("addr", addr))
	if err := server.Start(e, addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	if env == "prod" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return logger
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}

func newKeyedStore(cfg config.Config, logger *zap.Logger) repository.KeyValueStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, falling back to in-memory cart store", zap.Error(err))
		return kvstore.NewMemoryStore()
	}

	return kvstore.NewRedisStore(client)
}
