package models

import (
	"context"

	"bitbucket.org/mmdatafocus/erp_backend/utils"
)

// Actor is the capability view of the calling user, passed explicitly into
// every operation that needs authorization. Admin gates deletion of
// synthetic line items.
type Actor struct {
	UserId  int
	IsAdmin bool
}

// ActorFromContext builds an Actor from the request context values set by
// the auth middleware (out of scope here).
func ActorFromContext(ctx context.Context) Actor {
	userId, _ := utils.GetUserIdFromContext(ctx)
	isAdmin, _ := utils.GetIsAdminFromContext(ctx)
	return Actor{UserId: userId, IsAdmin: isAdmin}
}
