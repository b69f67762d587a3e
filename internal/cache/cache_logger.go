package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// BatchInvalidate invalidates multiple patterns in batch
func BatchInvalidate(ctx context.Context, helper *CacheHelper, patterns []string) error {
	var lastErr error
	for _, pattern := range patterns {
		if err := helper.InvalidatePattern(ctx, pattern); err != nil {
			lastErr = err
			slog.ErrorContext(ctx, "Failed to invalidate pattern in batch",
				"error", err,
				"pattern", pattern)
		}
	}
	return lastErr
}

// InvalidateRoleCache drops the cached role resolution and existence probes
// for a uid. Call after any role store mutation for that uid.
func InvalidateRoleCache(ctx context.Context, cm *CacheManager, uid string) {
	SafeDelete(ctx, cm.Role, fmt.Sprintf("uid:%s", uid))
	SafeInvalidatePattern(ctx, cm.Exists, fmt.Sprintf("*:%s", uid))
}

// InvalidateProfileCache invalidates a user's profile document plus the
// listing and stats caches that embed it.
func InvalidateProfileCache(ctx context.Context, cm *CacheManager, role string, uid string) {
	SafeDelete(ctx, cm.Profile, fmt.Sprintf("%s:%s", role, uid))
	SafeInvalidatePattern(ctx, cm.Profile, fmt.Sprintf("list:%s:*", role))
	SafeInvalidatePattern(ctx, cm.Stats, "*")
}

// InvalidateChatCache invalidates a conversation and both participants'
// chat listings.
func InvalidateChatCache(ctx context.Context, cm *CacheManager, chatID, studentID, mentorID string) {
	SafeDelete(ctx, cm.Chat,
		fmt.Sprintf("id:%s", chatID),
		fmt.Sprintf("messages:%s", chatID))
	SafeInvalidatePattern(ctx, cm.Chat, fmt.Sprintf("student:%s:*", studentID))
	SafeInvalidatePattern(ctx, cm.Chat, fmt.Sprintf("mentor:%s:*", mentorID))
}
