package gateway

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/saturnino-fabrica-de-software/facerecon/internal/domain"
)

const (
	usersPath      = "/usuarios/"
	userPhotoField = "foto"
	userPhotoName  = "user_photo.jpg"
)

func userPath(id string) string {
	return usersPath + url.PathEscape(id)
}

// ListUsers calls GET /usuarios/
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	resp, err := doJSON[[]userPayload](ctx, c, http.MethodGet, usersPath, "", nil)
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(*resp))
	for _, p := range *resp {
		users = append(users, p.toDomain())
	}
	return users, nil
}

// GetUser calls GET /usuarios/{id}
func (c *Client) GetUser(ctx context.Context, id string) (*domain.User, error) {
	resp, err := doJSON[userPayload](ctx, c, http.MethodGet, userPath(id), "", nil)
	if err != nil {
		return nil, err
	}
	u := resp.toDomain()
	return &u, nil
}

// CreateUser calls POST /usuarios/ as multipart with the reference photo in part "foto"
func (c *Client) CreateUser(ctx context.Context, fields domain.UserFields, image []byte) (*domain.User, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	formFields := []struct{ name, value string }{
		{"nombre", fields.GivenName},
		{"apellido", fields.FamilyName},
		{"email", fields.Email},
		{"telefono", fields.Phone},
		{"requisitoriado", strconv.FormatBool(fields.Wanted)},
	}
	for _, f := range formFields {
		if err := writer.WriteField(f.name, f.value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", f.name, err)
		}
	}

	if err := writeImagePart(writer, userPhotoField, userPhotoName, image); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	resp, err := doJSON[userPayload](ctx, c, http.MethodPost, usersPath, writer.FormDataContentType(), &body)
	if err != nil {
		return nil, err
	}
	u := resp.toDomain()
	return &u, nil
}

// UpdateUser calls PUT /usuarios/{id} with a JSON body
func (c *Client) UpdateUser(ctx context.Context, id string, fields domain.UserFields) (*domain.User, error) {
	body, err := jsonBody(newUserRequest(fields))
	if err != nil {
		return nil, err
	}

	resp, err := doJSON[userPayload](ctx, c, http.MethodPut, userPath(id), "application/json", body)
	if err != nil {
		return nil, err
	}
	u := resp.toDomain()
	return &u, nil
}

// DeleteUser calls DELETE /usuarios/{id}
func (c *Client) DeleteUser(ctx context.Context, id string) (*DeleteAck, error) {
	return doJSON[DeleteAck](ctx, c, http.MethodDelete, userPath(id), "", nil)
}
