package middleware

import (
	"context"
	"net/http"
	"strconv"
)

type contextKey string

const (
	profileIDKey    contextKey = "profileID"
	membershipIDKey contextKey = "membershipID"
)

// Заголовки авторизации, проставляются API-шлюзом после проверки сессии
const (
	HeaderProfileID    = "X-Profile-ID"
	HeaderMembershipID = "X-Membership-ID"
)

// Auth извлекает идентификаторы профиля и членства из заголовков
// и кладёт их в контекст запроса. Сама аутентификация (PIN/пароль)
// выполняется шлюзом до этого сервиса.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if raw := r.Header.Get(HeaderProfileID); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				ctx = context.WithValue(ctx, profileIDKey, id)
			}
		}
		if raw := r.Header.Get(HeaderMembershipID); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				ctx = context.WithValue(ctx, membershipIDKey, id)
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetProfileID возвращает ID профиля из контекста
func GetProfileID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(profileIDKey).(int64)
	return id, ok
}

// GetMembershipID возвращает ID членства из контекста
func GetMembershipID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(membershipIDKey).(int64)
	return id, ok
}
