// check_redis_cache проверяет, что Redis из текущей конфигурации пригоден
// для кэша парковочных мест: ping, запись, чтение и удаление тестового ключа.
//
//	go run ./scripts/check_redis_cache.go
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/frontandrew/parkingcontrol/internal/pkg/config"
	"github.com/frontandrew/parkingcontrol/internal/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("load config", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := redis.NewClient(ctx, redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		fail("connect", err)
	}
	defer client.Close()
	fmt.Printf("connected to %s\n", cfg.Redis.Address())

	key := fmt.Sprintf("parking_spot:probe-%d", time.Now().UnixNano())
	value := []byte(`{"parkingSpotNumber":"PROBE"}`)

	if err := client.Set(ctx, key, value, time.Minute); err != nil {
		fail("set", err)
	}

	got, err := client.Get(ctx, key)
	if err != nil {
		fail("get", err)
	}
	if !bytes.Equal(got, value) {
		fail("get", fmt.Errorf("unexpected value %q", got))
	}

	if err := client.Del(ctx, key); err != nil {
		fail("del", err)
	}
	if _, err := client.Get(ctx, key); !errors.Is(err, redis.Nil) {
		fail("del", fmt.Errorf("key still present: %v", err))
	}

	fmt.Println("redis cache OK")
}

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "%s failed: %v\n", step, err)
	os.Exit(1)
}
