package handler

import (
	"context"

	"github.com/saturnino-fabrica-de-software/facerecon/internal/domain"
	"github.com/saturnino-fabrica-de-software/facerecon/internal/store"
)

// Session is the view-state store driven by the control surface.
type Session interface {
	Snapshot() store.ViewState
	CheckHealth(ctx context.Context) store.ViewState
	CaptureAndRecognize(ctx context.Context, image []byte) store.ViewState
	ClearResult() store.ViewState
	LoadUsers(ctx context.Context) store.ViewState
	LoadUser(ctx context.Context, id string) store.ViewState
	RegisterUser(ctx context.Context, fields domain.UserFields, image []byte) store.ViewState
	UpdateUser(ctx context.Context, id string, fields domain.UserFields) store.ViewState
	DeleteUser(ctx context.Context, id string) store.ViewState
	DismissAlert() store.ViewState
	DismissNotice() store.ViewState
	DismissError() store.ViewState
}
