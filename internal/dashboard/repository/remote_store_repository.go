package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tnp-quickview/pkg/common"
	"tnp-quickview/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// RemoteStoreRepository is the realtime key-value store. Every Set publishes
// the new snapshot on the resource's change channel.
type RemoteStoreRepository interface {
	// Get returns the stored snapshot, or nil when the resource was never written.
	Get(ctx context.Context, resource string) ([]byte, error)
	Set(ctx context.Context, resource string, payload []byte) error
	// Subscribe calls fn with every published snapshot until the returned
	// func is called.
	Subscribe(ctx context.Context, resource string, fn func(payload []byte)) (func(), error)
	Ping(ctx context.Context) error
}

type remoteStoreRepository struct {
	client *redis.Client
	log    *logger.Logger
	prefix string
}

// NewRemoteStoreRepository creates a RemoteStoreRepository over Redis.
func NewRemoteStoreRepository(client *redis.Client, log *logger.Logger, prefix string) RemoteStoreRepository {
	return &remoteStoreRepository{
		client: client,
		log:    log,
		prefix: prefix,
	}
}

func (r *remoteStoreRepository) key(resource string) string {
	if r.prefix == "" {
		return resource
	}
	return r.prefix + ":" + resource
}

func (r *remoteStoreRepository) channel(resource string) string {
	return r.key(resource) + ":" + common.RemoteChangeChannelSuffix
}

func (r *remoteStoreRepository) Get(ctx context.Context, resource string) ([]byte, error) {
	payload, err := r.client.Get(ctx, r.key(resource)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s from redis: %w", resource, err)
	}
	return payload, nil
}

func (r *remoteStoreRepository) Set(ctx context.Context, resource string, payload []byte) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(resource), payload, 0)
		pipe.Publish(ctx, r.channel(resource), payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set %s in redis: %w", resource, err)
	}
	return nil
}

func (r *remoteStoreRepository) Subscribe(ctx context.Context, resource string, fn func(payload []byte)) (func(), error) {
	channel := r.channel(resource)
	pubsub := r.client.Subscribe(context.Background(), channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range pubsub.Channel() {
			fn([]byte(msg.Payload))
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := pubsub.Close(); err != nil {
				r.log.Warn("Failed to close redis subscription", logger.ErrorField(err), logger.StringField("channel", channel))
			}
			<-done
		})
	}, nil
}

func (r *remoteStoreRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
