package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"tnp-quickview/internal/dashboard/dto"
	"tnp-quickview/internal/entity"
	"tnp-quickview/pkg/logger"
	"tnp-quickview/pkg/utils"
)

var (
	ErrEmptyComment     = errors.New("comment content is empty")
	ErrInvalidStockCode = errors.New("invalid stock code")
	ErrEmptyUserName    = errors.New("user name is empty")
)

// CommunityService implements likes, comments and the viewer name on top of
// the storage shim.
type CommunityService interface {
	GetLikes(ctx context.Context) entity.LikesRecord
	ToggleLike(ctx context.Context, stockCode string) (entity.LikeData, error)

	GetComments(ctx context.Context, stockCode string) ([]entity.Comment, error)
	AddComment(ctx context.Context, stockCode string, req dto.CreateCommentRequest) (*entity.Comment, error)

	GetUserName(ctx context.Context) string
	SetUserName(ctx context.Context, name string) (string, error)
}

type communityService struct {
	storage StorageService
	log     *logger.Logger
	now     func() time.Time

	// mu serializes read-modify-write cycles issued by this process. Writers
	// in other processes still race with last-writer-wins.
	mu sync.Mutex
}

// NewCommunityService creates a CommunityService.
func NewCommunityService(storage StorageService, log *logger.Logger) CommunityService {
	return &communityService{
		storage: storage,
		log:     log,
		now:     time.Now,
	}
}

func (s *communityService) GetLikes(ctx context.Context) entity.LikesRecord {
	return s.storage.GetLikes(ctx)
}

// ToggleLike flips the viewer's like on a stock. The counter never goes below zero.
func (s *communityService) ToggleLike(ctx context.Context, stockCode string) (entity.LikeData, error) {
	code := strings.TrimSpace(stockCode)
	if code == "" {
		return entity.LikeData{}, ErrInvalidStockCode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	likes := s.storage.GetLikes(ctx).Clone()
	like := likes[code]
	if like.Liked {
		like.Liked = false
		like.Count--
		if like.Count < 0 {
			like.Count = 0
		}
	} else {
		like.Liked = true
		like.Count++
	}
	likes[code] = like

	if err := s.storage.SetLikes(ctx, likes); err != nil {
		return entity.LikeData{}, err
	}
	s.log.Debug("Toggled like", logger.StringField("stock_code", code), logger.BoolField("liked", like.Liked), logger.IntField("count", like.Count))
	return like, nil
}

func (s *communityService) GetComments(ctx context.Context, stockCode string) ([]entity.Comment, error) {
	code := strings.TrimSpace(stockCode)
	if code == "" {
		return nil, ErrInvalidStockCode
	}
	comments := s.storage.GetComments(ctx)[code]
	if comments == nil {
		comments = []entity.Comment{}
	}
	return comments, nil
}

// AddComment appends a comment to a stock. The author defaults to the stored
// viewer name; a given author becomes the new viewer name.
func (s *communityService) AddComment(ctx context.Context, stockCode string, req dto.CreateCommentRequest) (*entity.Comment, error) {
	code := strings.TrimSpace(stockCode)
	if code == "" {
		return nil, ErrInvalidStockCode
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyComment
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	author := strings.TrimSpace(req.Author)
	if author == "" {
		author = s.storage.GetUserName(ctx)
	} else if author != s.storage.GetUserName(ctx) {
		if err := s.storage.SetUserName(ctx, author); err != nil {
			s.log.Warn("Failed to remember user name", logger.ErrorField(err))
		}
	}

	comments := s.storage.GetComments(ctx).Clone()
	existing := comments[code]

	now := s.now()
	comment := entity.Comment{
		ID:        nextCommentID(existing, now),
		StockCode: code,
		Author:    author,
		Content:   content,
		Timestamp: utils.FormatISO(now),
	}
	comments[code] = append(existing, comment)

	if err := s.storage.SetComments(ctx, comments); err != nil {
		return nil, err
	}
	return &comment, nil
}

// nextCommentID derives an id from the clock, bumped past ids already used by
// the stock's comments.
func nextCommentID(existing []entity.Comment, now time.Time) string {
	used := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		used[c.ID] = struct{}{}
	}
	id := now.UnixMilli()
	for {
		candidate := strconv.FormatInt(id, 10)
		if _, ok := used[candidate]; !ok {
			return candidate
		}
		id++
	}
}

func (s *communityService) GetUserName(ctx context.Context) string {
	return s.storage.GetUserName(ctx)
}

func (s *communityService) SetUserName(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyUserName
	}
	if err := s.storage.SetUserName(ctx, name); err != nil {
		return "", err
	}
	return name, nil
}

