package lib

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := os.Getenv("REDIS_HOST")
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient replaces the redis instance with a custom client
// implementation.
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}

const (
	newBookingsChannel = "bookings:new"
	lastCountKey       = "bookings:last_count"
)

// BookingBulletin publishes new-booking events to dashboard instances over
// redis pub/sub and keeps the last observed collection count across
// restarts. It implements both synchronizer collaborator interfaces.
type BookingBulletin struct {
	rdb *redis.Client
}

func NewBookingBulletin(rdb *redis.Client) *BookingBulletin {
	return &BookingBulletin{rdb: rdb}
}

func (b *BookingBulletin) NewBookings(ctx context.Context, count int) error {
	return b.rdb.Publish(ctx, newBookingsChannel, count).Err()
}

func (b *BookingBulletin) LoadCount(ctx context.Context) (int, error) {
	val, err := b.rdb.Get(ctx, lastCountKey).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (b *BookingBulletin) StoreCount(ctx context.Context, count int) error {
	return b.rdb.Set(ctx, lastCountKey, count, 0).Err()
}
