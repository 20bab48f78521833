package contextkeys

import (
	"context"

	"github.com/google/uuid"
)

type userIDKeyType struct{}

var userIDKey = userIDKeyType{}

// ContextWithUserID помещает идентификатор вызывающего пользователя в контекст
func ContextWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext возвращает идентификатор пользователя и признак его наличия
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}
