package ctxkeys

import (
	"context"

	"github.com/hairstudio/salon/internal/config"
	"github.com/hairstudio/salon/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	AdminKey     contextKey = "admin"
	URLPathKey   contextKey = "url_path"
	ConfigKey    contextKey = "config"
	CSRFTokenKey contextKey = "csrf_token"
	FlashKey     contextKey = "flash"
	ImageURLKey  contextKey = "image_url"
)

// FlashMessage is a one-shot notice shown on the next rendered page.
type FlashMessage struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

// Admin returns the authenticated operator, or nil for public visitors.
func Admin(ctx context.Context) *model.AdminIdentity {
	admin, _ := ctx.Value(AdminKey).(*model.AdminIdentity)
	return admin
}

func WithAdmin(ctx context.Context, admin *model.AdminIdentity) context.Context {
	return context.WithValue(ctx, AdminKey, admin)
}

// IsAdmin is the admin gate: a pure function of the request context.
func IsAdmin(ctx context.Context) bool {
	return Admin(ctx) != nil
}

func URLPath(ctx context.Context) string {
	path, _ := ctx.Value(URLPathKey).(string)
	return path
}

func WithURLPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, URLPathKey, path)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(CSRFTokenKey).(string)
	return token
}

func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CSRFTokenKey, token)
}

func Flashes(ctx context.Context) []FlashMessage {
	flashes, _ := ctx.Value(FlashKey).([]FlashMessage)
	return flashes
}

func WithFlashes(ctx context.Context, flashes []FlashMessage) context.Context {
	return context.WithValue(ctx, FlashKey, flashes)
}

// ImageURL resolves a stored image path ("before/x.jpg") to a public URL.
// Without a resolver in ctx the path is served from /uploads.
func ImageURL(ctx context.Context, path string) string {
	resolve, ok := ctx.Value(ImageURLKey).(func(string) string)
	if !ok {
		return "/uploads/" + path
	}
	return resolve(path)
}

func WithImageURL(ctx context.Context, resolve func(string) string) context.Context {
	return context.WithValue(ctx, ImageURLKey, resolve)
}
