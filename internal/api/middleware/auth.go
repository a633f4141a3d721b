package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
)

type userIDKey struct{}

const msgMissingUserID = "требуется заголовок X-User-ID"

// Auth требует заголовок X-User-ID с числовым идентификатором оператора.
// Идентификатор кладется в контекст запроса и используется как actor
// в записях аудита.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID возвращает идентификатор оператора из контекста запроса
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey{}).(int64)
	return id, ok
}

// Actor возвращает строковый actor для аудита: "user:<id>" для
// аутентифицированных запросов, "public" для остальных
func Actor(ctx context.Context) string {
	if id, ok := UserID(ctx); ok {
		return "user:" + strconv.FormatInt(id, 10)
	}
	return "public"
}
