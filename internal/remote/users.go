package remote

import (
	"context"
	"net/http"
	"net/url"

	"journeyplanner/internal/domain/models"
	"journeyplanner/internal/utils"
)

// CreateUser registers a user with the user service.
func (c *Client) CreateUser(ctx context.Context, in models.RegisterInput) (models.UserResult, error) {
	const op = "create_user"
	b, err := c.do(ctx, op, http.MethodPost, c.usersURL+"/users", in)
	if err != nil {
		utils.LogError(ctx, "remote", op, err)
		return models.UserResult{}, err
	}
	res, err := decode[models.UserResult](op, b)
	if err != nil {
		utils.LogError(ctx, "remote", op, err)
	}
	return res, err
}

// ListUsers returns every user known to the user service.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "list_users"
	b, err := c.do(ctx, op, http.MethodGet, c.usersURL+"/users", nil)
	if err != nil {
		utils.LogError(ctx, "remote", op, err)
		return nil, err
	}
	users, err := models.DecodeList[models.User](b)
	if err != nil {
		utils.LogError(ctx, "remote", op, err)
		return nil, err
	}
	return users, nil
}

// GetUser fetches one user by id.
func (c *Client) GetUser(ctx context.Context, id models.ID) (models.UserResult, error) {
	const op = "get_user"
	b, err := c.do(ctx, op, http.MethodGet, c.usersURL+"/users/"+url.PathEscape(id.String()), nil)
	if err != nil {
		utils.LogError(ctx, "remote", op, err)
		return models.UserResult{}, err
	}
	res, err := decode[models.UserResult](op, b)
	if err != nil {
		utils.LogError(ctx, "remote", op, err)
		return res, err
	}
	// Some deployments answer with the bare user object instead of an envelope.
	if res.Code == 0 && !res.Data.Present {
		if u, uerr := decode[models.User](op, b); uerr == nil && !u.ID.IsZero() {
			res = models.UserResult{Code: models.CodeOK, Data: models.Some(u)}
		}
	}
	return res, nil
}
