package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"tnp-quickview/internal/dashboard/repository"
	"tnp-quickview/internal/entity"
	"tnp-quickview/pkg/common"
	"tnp-quickview/pkg/logger"
)

// ErrStorageUnavailable is returned when neither backend accepted a write.
var ErrStorageUnavailable = errors.New("storage unavailable")

// BackendState tells which backend serves reads and writes.
type BackendState int

const (
	// BackendRemote reads from the remote store and writes to both stores.
	BackendRemote BackendState = iota
	// BackendLocalOnly uses only the local store until the remote is re-probed.
	BackendLocalOnly
)

func (s BackendState) String() string {
	switch s {
	case BackendRemote:
		return "remote"
	case BackendLocalOnly:
		return "local"
	default:
		return "unknown"
	}
}

// StorageService persists likes, comments and the viewer name. Reads never
// fail: a remote error demotes the service to the local store.
type StorageService interface {
	GetLikes(ctx context.Context) entity.LikesRecord
	SetLikes(ctx context.Context, likes entity.LikesRecord) error
	SubscribeLikes(ctx context.Context, fn func(entity.LikesRecord)) func()

	GetComments(ctx context.Context) entity.CommentsRecord
	SetComments(ctx context.Context, comments entity.CommentsRecord) error
	SubscribeComments(ctx context.Context, fn func(entity.CommentsRecord)) func()

	GetUserName(ctx context.Context) string
	SetUserName(ctx context.Context, name string) error

	State() BackendState
}

type storageService struct {
	remote        repository.RemoteStoreRepository
	local         repository.LocalStoreRepository
	log           *logger.Logger
	retryInterval time.Duration
	remoteTimeout time.Duration
	now           func() time.Time

	mu       sync.Mutex
	state    BackendState
	failedAt time.Time
	// pending maps remote keys to the local keys holding writes the remote missed.
	pending map[string]string
}

// NewStorageService creates a StorageService. remote may be nil, in which case
// the service stays local-only.
func NewStorageService(remote repository.RemoteStoreRepository, local repository.LocalStoreRepository, log *logger.Logger, retryInterval, remoteTimeout time.Duration) StorageService {
	state := BackendRemote
	if remote == nil {
		state = BackendLocalOnly
	}
	return &storageService{
		remote:        remote,
		local:         local,
		log:           log,
		retryInterval: retryInterval,
		remoteTimeout: remoteTimeout,
		now:           time.Now,
		state:         state,
		pending:       map[string]string{},
	}
}

func (s *storageService) State() BackendState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// useRemote reports whether the next operation should try the remote store.
// A local-only service with a remote configured probes it again once the
// retry interval since the last failure has elapsed. Writes the remote missed
// are pushed from the local store first, so it never serves an older snapshot.
func (s *storageService) useRemote(ctx context.Context) bool {
	if s.remote == nil {
		return false
	}
	s.mu.Lock()
	if s.state == BackendRemote {
		s.mu.Unlock()
		return true
	}
	if s.retryInterval <= 0 || s.now().Sub(s.failedAt) < s.retryInterval {
		s.mu.Unlock()
		return false
	}
	pending := make(map[string]string, len(s.pending))
	for remoteKey, localKey := range s.pending {
		pending[remoteKey] = localKey
	}
	s.mu.Unlock()

	if len(pending) == 0 {
		return true
	}
	if err := s.resync(ctx, pending); err != nil {
		s.markRemoteFailure("resync", err)
		return false
	}
	s.markRemoteSuccess()
	return true
}

// resync copies the local snapshots of the given resources to the remote store.
func (s *storageService) resync(ctx context.Context, pending map[string]string) error {
	for remoteKey, localKey := range pending {
		payload, err := s.local.Get(ctx, localKey)
		if err != nil {
			return fmt.Errorf("failed to read %s for resync: %w", localKey, err)
		}
		if len(payload) > 0 {
			rctx, cancel := s.remoteContext(ctx)
			err = s.remote.Set(rctx, remoteKey, payload)
			cancel()
			if err != nil {
				return fmt.Errorf("failed to resync %s: %w", remoteKey, err)
			}
		}

		s.mu.Lock()
		delete(s.pending, remoteKey)
		s.mu.Unlock()
		s.log.Info("Resynced remote store from local store", logger.StringField("key", remoteKey))
	}
	return nil
}

func (s *storageService) markPending(remoteKey, localKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[remoteKey] = localKey
}

func (s *storageService) markRemoteFailure(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == BackendRemote {
		s.log.Warn("Remote store failed, switching to local store", logger.StringField("op", op), logger.ErrorField(err))
	} else {
		s.log.Debug("Remote store still unavailable", logger.StringField("op", op), logger.ErrorField(err))
	}
	s.state = BackendLocalOnly
	s.failedAt = s.now()
}

func (s *storageService) markRemoteSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == BackendLocalOnly {
		s.log.Info("Remote store recovered")
	}
	s.state = BackendRemote
}

func (s *storageService) remoteContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.remoteTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.remoteTimeout)
}

// readRecord loads a map resource, preferring the remote store.
func readRecord[T ~map[string]V, V any](ctx context.Context, s *storageService, remoteKey, localKey string) T {
	if s.useRemote(ctx) {
		rctx, cancel := s.remoteContext(ctx)
		payload, err := s.remote.Get(rctx, remoteKey)
		cancel()
		if err == nil {
			s.markRemoteSuccess()
			out, derr := decodeRecord[T](payload)
			if derr == nil {
				return out
			}
			s.log.Warn("Failed to decode remote snapshot, reading local store", logger.StringField("key", remoteKey), logger.ErrorField(derr))
		} else {
			s.markRemoteFailure("get "+remoteKey, err)
		}
	}

	payload, err := s.local.Get(ctx, localKey)
	if err != nil {
		s.log.Error("Failed to read local store", logger.StringField("key", localKey), logger.ErrorField(err))
		return T{}
	}
	out, err := decodeRecord[T](payload)
	if err != nil {
		s.log.Error("Failed to decode local snapshot", logger.StringField("key", localKey), logger.ErrorField(err))
		return T{}
	}
	return out
}

// writeRecord overwrites a map resource in the remote store, when in use, and
// always in the local store.
func writeRecord[T ~map[string]V, V any](ctx context.Context, s *storageService, remoteKey, localKey string, value T) error {
	if len(value) == 0 {
		value = T{}
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", localKey, err)
	}

	remoteOK := false
	if s.useRemote(ctx) {
		rctx, cancel := s.remoteContext(ctx)
		err := s.remote.Set(rctx, remoteKey, payload)
		cancel()
		if err != nil {
			s.markRemoteFailure("set "+remoteKey, err)
		} else {
			s.markRemoteSuccess()
			remoteOK = true
			s.mu.Lock()
			delete(s.pending, remoteKey)
			s.mu.Unlock()
		}
	}

	if err := s.local.Set(ctx, localKey, payload); err != nil {
		s.log.Error("Failed to write local store", logger.StringField("key", localKey), logger.ErrorField(err))
		if !remoteOK {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		return nil
	}
	if !remoteOK && s.remote != nil {
		s.markPending(remoteKey, localKey)
	}
	return nil
}

func subscribeRecord[T ~map[string]V, V any](ctx context.Context, s *storageService, remoteKey string, fn func(T)) func() {
	noop := func() {}
	if !s.useRemote(ctx) {
		return noop
	}
	unsubscribe, err := s.remote.Subscribe(ctx, remoteKey, func(payload []byte) {
		out, err := decodeRecord[T](payload)
		if err != nil {
			s.log.Warn("Dropping undecodable snapshot", logger.StringField("key", remoteKey), logger.ErrorField(err))
			return
		}
		fn(out)
	})
	if err != nil {
		s.markRemoteFailure("subscribe "+remoteKey, err)
		return noop
	}
	s.markRemoteSuccess()
	return unsubscribe
}

func decodeRecord[T ~map[string]V, V any](payload []byte) (T, error) {
	out := T{}
	if len(payload) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return T{}, err
	}
	if len(out) == 0 {
		out = T{}
	}
	return out, nil
}

func (s *storageService) GetLikes(ctx context.Context) entity.LikesRecord {
	return readRecord[entity.LikesRecord](ctx, s, common.RemoteKeyLikes, common.LocalKeyLikes)
}

func (s *storageService) SetLikes(ctx context.Context, likes entity.LikesRecord) error {
	return writeRecord(ctx, s, common.RemoteKeyLikes, common.LocalKeyLikes, likes)
}

func (s *storageService) SubscribeLikes(ctx context.Context, fn func(entity.LikesRecord)) func() {
	return subscribeRecord(ctx, s, common.RemoteKeyLikes, fn)
}

func (s *storageService) GetComments(ctx context.Context) entity.CommentsRecord {
	return readRecord[entity.CommentsRecord](ctx, s, common.RemoteKeyComments, common.LocalKeyComments)
}

func (s *storageService) SetComments(ctx context.Context, comments entity.CommentsRecord) error {
	return writeRecord(ctx, s, common.RemoteKeyComments, common.LocalKeyComments, comments)
}

func (s *storageService) SubscribeComments(ctx context.Context, fn func(entity.CommentsRecord)) func() {
	return subscribeRecord(ctx, s, common.RemoteKeyComments, fn)
}

// GetUserName returns the stored viewer name, or the anonymous default.
func (s *storageService) GetUserName(ctx context.Context) string {
	payload, err := s.local.Get(ctx, common.LocalKeyUserName)
	if err != nil {
		s.log.Error("Failed to read user name", logger.ErrorField(err))
		return common.DefaultUserName
	}
	if len(payload) == 0 {
		return common.DefaultUserName
	}
	var name string
	if err := json.Unmarshal(payload, &name); err != nil || strings.TrimSpace(name) == "" {
		return common.DefaultUserName
	}
	return name
}

func (s *storageService) SetUserName(ctx context.Context, name string) error {
	payload, err := json.Marshal(name)
	if err != nil {
		return fmt.Errorf("failed to encode user name: %w", err)
	}
	if err := s.local.Set(ctx, common.LocalKeyUserName, payload); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}
