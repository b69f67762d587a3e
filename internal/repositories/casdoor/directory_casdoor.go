package casdoor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/redis/go-redis/v9"

	"github.com/pixalara/placement-service/internal/config"
	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/repositories"
)

// DirectoryCasdoor is the read-only identity directory backed by Casdoor.
// The portal never owns account data; this repository only mirrors it,
// with a short Redis cache in front.
type DirectoryCasdoor struct {
	client *casdoorsdk.Client
	redis  *redis.Client
	config config.CasdoorConfig

	// Cache settings
	cachePrefix string
	cacheTTL    time.Duration
}

func NewDirectoryCasdoor(cfg config.CasdoorConfig, redisClient *redis.Client) repositories.DirectoryRepository {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Organization,
		cfg.Application,
	)

	return &DirectoryCasdoor{
		client:      client,
		redis:       redisClient,
		config:      cfg,
		cachePrefix: "directory:",
		cacheTTL:    15 * time.Minute,
	}
}

// ===== CACHE METHODS =====

func (d *DirectoryCasdoor) getCacheKey(key string) string {
	return fmt.Sprintf("%s%s", d.cachePrefix, key)
}

func (d *DirectoryCasdoor) getUserFromCache(ctx context.Context, key string) (*models.DirectoryUser, error) {
	if d.redis == nil {
		return nil, nil // Cache not available
	}

	data, err := d.redis.Get(ctx, d.getCacheKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Not found in cache
		}
		return nil, fmt.Errorf("failed to get from cache: %w", err)
	}

	var user models.DirectoryUser
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached user: %w", err)
	}

	return &user, nil
}

func (d *DirectoryCasdoor) setUserCache(ctx context.Context, key string, user *models.DirectoryUser) error {
	if d.redis == nil {
		return nil
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user for cache: %w", err)
	}

	return d.redis.Set(ctx, d.getCacheKey(key), data, d.cacheTTL).Err()
}

// ===== CONVERSION =====

func (d *DirectoryCasdoor) convertUser(casdoorUser *casdoorsdk.User) *models.DirectoryUser {
	if casdoorUser == nil {
		return nil
	}

	var createdAt time.Time
	if casdoorUser.CreatedTime != "" {
		createdAt, _ = time.Parse(time.RFC3339, casdoorUser.CreatedTime)
	}

	return &models.DirectoryUser{
		UID:       casdoorUser.Id,
		Name:      casdoorUser.DisplayName,
		Email:     casdoorUser.Email,
		AvatarURL: casdoorUser.Avatar,
		CreatedAt: createdAt,
	}
}

// ===== READ OPERATIONS =====

// GetByUID retrieves an account by uid.
func (d *DirectoryCasdoor) GetByUID(ctx context.Context, uid string) (*models.DirectoryUser, error) {
	cacheKey := fmt.Sprintf("uid:%s", uid)
	if cached, err := d.getUserFromCache(ctx, cacheKey); err == nil && cached != nil {
		return cached, nil
	}

	casdoorUser, err := d.client.GetUserByUserId(uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get user from Casdoor: %w", err)
	}
	if casdoorUser == nil {
		return nil, fmt.Errorf("user not found with uid %s", uid)
	}

	user := d.convertUser(casdoorUser)

	d.setUserCache(ctx, cacheKey, user)
	d.setUserCache(ctx, fmt.Sprintf("email:%s", user.Email), user)

	return user, nil
}

// GetByEmail retrieves an account by email.
func (d *DirectoryCasdoor) GetByEmail(ctx context.Context, email string) (*models.DirectoryUser, error) {
	cacheKey := fmt.Sprintf("email:%s", email)
	if cached, err := d.getUserFromCache(ctx, cacheKey); err == nil && cached != nil {
		return cached, nil
	}

	casdoorUser, err := d.client.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email from Casdoor: %w", err)
	}
	if casdoorUser == nil {
		return nil, fmt.Errorf("user not found with email %s", email)
	}

	user := d.convertUser(casdoorUser)

	d.setUserCache(ctx, cacheKey, user)
	d.setUserCache(ctx, fmt.Sprintf("uid:%s", user.UID), user)

	return user, nil
}

// List retrieves a paginated page of the directory.
func (d *DirectoryCasdoor) List(ctx context.Context, filters repositories.DirectoryFilters) ([]*models.DirectoryUser, int64, error) {
	if filters.Limit <= 0 {
		filters.Limit = 10
	}
	if filters.Limit > 100 {
		filters.Limit = 100
	}

	// Casdoor uses 1-indexed pages
	page := (filters.Offset / filters.Limit) + 1
	if page < 1 {
		page = 1
	}

	queryMap := make(map[string]string)
	if filters.Query != "" {
		queryMap["field"] = "email"
		queryMap["value"] = filters.Query
	}

	casdoorUsers, count, err := d.client.GetPaginationUsers(page, filters.Limit, queryMap)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get users from Casdoor: %w", err)
	}

	users := make([]*models.DirectoryUser, 0, len(casdoorUsers))
	for _, casdoorUser := range casdoorUsers {
		user := d.convertUser(casdoorUser)
		if user == nil {
			continue
		}
		users = append(users, user)

		d.setUserCache(ctx, fmt.Sprintf("uid:%s", user.UID), user)
		d.setUserCache(ctx, fmt.Sprintf("email:%s", user.Email), user)
	}

	return users, int64(count), nil
}

// ===== VALIDATION AND CHECKS =====

// ExistsByUID checks if an account exists by uid.
func (d *DirectoryCasdoor) ExistsByUID(ctx context.Context, uid string) (bool, error) {
	cacheKey := d.getCacheKey(fmt.Sprintf("exists:uid:%s", uid))
	if d.redis != nil {
		if exists, err := d.redis.Get(ctx, cacheKey).Result(); err == nil {
			return exists == "true", nil
		}
	}

	user, err := d.client.GetUserByUserId(uid)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	exists := user != nil
	if d.redis != nil {
		d.redis.Set(ctx, cacheKey, fmt.Sprintf("%t", exists), 1*time.Minute)
	}

	return exists, nil
}

// ExistsByEmail checks if an account exists by email.
func (d *DirectoryCasdoor) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	cacheKey := d.getCacheKey(fmt.Sprintf("exists:email:%s", email))
	if d.redis != nil {
		if exists, err := d.redis.Get(ctx, cacheKey).Result(); err == nil {
			return exists == "true", nil
		}
	}

	user, err := d.client.GetUserByEmail(email)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence by email: %w", err)
	}

	exists := user != nil
	if d.redis != nil {
		d.redis.Set(ctx, cacheKey, fmt.Sprintf("%t", exists), 1*time.Minute)
	}

	return exists, nil
}
