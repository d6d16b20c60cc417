package utils

import (
	"context"
)

type contextKey string

const ContextMemberIDKey contextKey = "memberID"
const ContextMemberNameKey contextKey = "memberName"

func GetMemberIDFromContext(ctx context.Context) (string, bool) {
	memberID := ctx.Value(ContextMemberIDKey)
	memberIDStr, ok := memberID.(string)
	return memberIDStr, ok
}

func GetMemberNameFromContext(ctx context.Context) (string, bool) {
	name := ctx.Value(ContextMemberNameKey)
	nameStr, ok := name.(string)
	return nameStr, ok
}
