package coordinator

import (
	"context"
	"log/slog"

	"github.com/saturnino-fabrica-de-software/facerecon/internal/domain"
	"github.com/saturnino-fabrica-de-software/facerecon/internal/gateway"
)

// Gateway is the backend surface the coordinator delegates to.
type Gateway interface {
	CheckHealth(ctx context.Context) (*domain.HealthStatus, error)
	Recognize(ctx context.Context, image []byte) (*domain.Recognition, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, fields domain.UserFields, image []byte) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, fields domain.UserFields) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) (*gateway.DeleteAck, error)
}

// Coordinator turns every gateway outcome into a Result.
type Coordinator struct {
	gateway Gateway
	logger  *slog.Logger
}

func New(gw Gateway, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{gateway: gw, logger: logger}
}

func (c *Coordinator) CheckHealth(ctx context.Context) Result[domain.HealthStatus] {
	h, err := c.gateway.CheckHealth(ctx)
	return normalize(c, "check_health", h, err)
}

func (c *Coordinator) Recognize(ctx context.Context, image []byte) Result[domain.Recognition] {
	r, err := c.gateway.Recognize(ctx, image)
	return normalize(c, "recognize", r, err)
}

func (c *Coordinator) ListUsers(ctx context.Context) Result[[]domain.User] {
	users, err := c.gateway.ListUsers(ctx)
	if err != nil {
		return Err[[]domain.User](c.fail("list_users", err))
	}
	if users == nil {
		return Err[[]domain.User](c.empty("list_users"))
	}
	return Ok(users)
}

func (c *Coordinator) GetUser(ctx context.Context, id string) Result[domain.User] {
	u, err := c.gateway.GetUser(ctx, id)
	return normalize(c, "get_user", u, err)
}

func (c *Coordinator) CreateUser(ctx context.Context, fields domain.UserFields, image []byte) Result[domain.User] {
	u, err := c.gateway.CreateUser(ctx, fields, image)
	return normalize(c, "create_user", u, err)
}

func (c *Coordinator) UpdateUser(ctx context.Context, id string, fields domain.UserFields) Result[domain.User] {
	u, err := c.gateway.UpdateUser(ctx, id, fields)
	return normalize(c, "update_user", u, err)
}

func (c *Coordinator) DeleteUser(ctx context.Context, id string) Result[gateway.DeleteAck] {
	ack, err := c.gateway.DeleteUser(ctx, id)
	return normalize(c, "delete_user", ack, err)
}

// normalize treats a nil payload without error as an empty response.
func normalize[T any](c *Coordinator, op string, v *T, err error) Result[T] {
	if err != nil {
		return Err[T](c.fail(op, err))
	}
	if v == nil {
		return Err[T](c.empty(op))
	}
	return Ok(*v)
}

func (c *Coordinator) fail(op string, err error) Reason {
	reason := Classify(err)
	c.logger.Warn("backend call failed",
		slog.String("op", op),
		slog.String("kind", string(reason.Kind)),
		slog.Int("status", reason.StatusCode),
		slog.Any("error", err),
	)
	return reason
}

func (c *Coordinator) empty(op string) Reason {
	c.logger.Warn("backend returned no payload", slog.String("op", op))
	return Reason{Kind: KindEmptyResponse}
}
