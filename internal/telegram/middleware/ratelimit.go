package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/futig/cpf-explainer/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	warningInterval   = 30 * time.Second
	inactiveThreshold = time.Hour
	cleanupInterval   = 10 * time.Minute
)

// chatLimit tracks rate limit state for a single chat
type chatLimit struct {
	limiter       *rate.Limiter
	warningsSent  int
	lastWarningAt time.Time
	mu            sync.Mutex
}

// RateLimiterMiddleware implements token bucket rate limiting per chat
type RateLimiterMiddleware struct {
	limits *cache.Cache
	mu     sync.Mutex
	limit  rate.Limit
	burst  int
	now    func() time.Time
	logger *zap.Logger
	api    Sender
}

// NewRateLimiterMiddleware creates a new rate limiter middleware.
// Chats idle for an hour are forgotten.
func NewRateLimiterMiddleware(
	requestsPerMinute int,
	burstSize int,
	logger *zap.Logger,
	api Sender,
) *RateLimiterMiddleware {
	if burstSize < 1 {
		burstSize = 1
	}
	return &RateLimiterMiddleware{
		limits: cache.New(inactiveThreshold, cleanupInterval),
		limit:  rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:  burstSize,
		now:    time.Now,
		logger: logger,
		api:    api,
	}
}

// Handle processes the update through rate limiting
func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	userID, chatID := updateOrigin(update)
	if chatID == 0 {
		// Unknown update type, allow it
		next(update)
		return
	}

	if !rl.allowRequest(chatID) {
		rl.logger.Warn("rate limit exceeded",
			zap.Int64("user_id", userID),
			zap.Int64("chat_id", chatID),
		)
		return
	}

	next(update)
}

// allowRequest checks if request is allowed under rate limit
func (rl *RateLimiterMiddleware) allowRequest(chatID int64) bool {
	limit := rl.chatLimit(chatID)

	limit.mu.Lock()
	defer limit.mu.Unlock()

	now := rl.now()
	if limit.limiter.AllowN(now, 1) {
		limit.warningsSent = 0
		return true
	}

	if now.Sub(limit.lastWarningAt) > warningInterval {
		limit.warningsSent++
		limit.lastWarningAt = now
		rl.sendRateLimitWarning(chatID, limit.warningsSent)
	}

	return false
}

// chatLimit returns the chat's limiter and extends its expiry
func (rl *RateLimiterMiddleware) chatLimit(chatID int64) *chatLimit {
	key := strconv.FormatInt(chatID, 10)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	limit, ok := rl.limits.Get(key)
	if !ok {
		limit = &chatLimit{limiter: rate.NewLimiter(rl.limit, rl.burst)}
	}
	rl.limits.SetDefault(key, limit)
	return limit.(*chatLimit)
}

// sendRateLimitWarning sends a warning message to the user
func (rl *RateLimiterMiddleware) sendRateLimitWarning(chatID int64, warningCount int) {
	var text string

	switch {
	case warningCount == 1:
		text = render.ErrRateLimited
	case warningCount == 2:
		text = render.ErrRateLimitedAgain
	default:
		text = render.ErrRateLimitedSevere
	}

	if _, err := rl.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		rl.logger.Error("failed to send rate limit warning",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}
