package remote

import (
	"context"
	"net/http"
	"net/url"

	"journeyplanner/internal/domain/models"
	"journeyplanner/internal/utils"
)

// SearchJourneys fetches journey options between two points from the composite service.
func (c *Client) SearchJourneys(ctx context.Context, start, end string) ([]models.Journey, error) {
	const op = "search_journeys"
	q := url.Values{}
	q.Set("start", start)
	q.Set("end", end)

	b, err := c.do(ctx, op, http.MethodGet, c.compositeURL+"/journeys?"+q.Encode(), nil)
	if err != nil {
		utils.LogError(ctx, "remote", op, err)
		return nil, err
	}
	journeys, err := models.DecodeList[models.Journey](b)
	if err != nil {
		utils.LogError(ctx, "remote", op, err)
		return nil, err
	}
	return journeys, nil
}

// SaveJourney persists a saved journey through the composite service.
func (c *Client) SaveJourney(ctx context.Context, req models.SaveRequest) (models.SaveResult, error) {
	const op = "save_journey"
	b, err := c.do(ctx, op, http.MethodPost, c.compositeURL+"/routes/save", req)
	if err != nil {
		utils.LogError(ctx, "remote", op, err)
		return models.SaveResult{}, err
	}
	res, err := decode[models.SaveResult](op, b)
	if err != nil {
		utils.LogError(ctx, "remote", op, err)
	}
	return res, err
}

// ListSavedJourneys lists a user's saved journeys, falling back to the
// saved-routes atomic service when the composite call fails.
func (c *Client) ListSavedJourneys(ctx context.Context, userID models.ID) (models.ListResult, error) {
	const op = "list_saved_journeys"
	id := url.PathEscape(userID.String())
	b, err := c.firstSuccess(ctx, op, []Strategy{
		{Name: "composite", Method: http.MethodGet, URL: c.compositeURL + "/routes/user/" + id},
		{Name: "saved_routes", Method: http.MethodGet, URL: c.savedRoutesURL + "/saved_routes/user/" + id},
	}, nil)
	if err != nil {
		return models.ListResult{}, err
	}
	res, err := decode[models.ListResult](op, b)
	if err != nil {
		utils.LogError(ctx, "remote", op, err)
	}
	return res, err
}

// DeleteJourney deletes a saved journey, falling back to the saved-routes
// atomic service when the composite call fails.
func (c *Client) DeleteJourney(ctx context.Context, routeID models.ID) (models.StatusResult, error) {
	const op = "delete_journey"
	id := url.PathEscape(routeID.String())
	b, err := c.firstSuccess(ctx, op, []Strategy{
		{Name: "composite", Method: http.MethodDelete, URL: c.compositeURL + "/routes/" + id},
		{Name: "saved_routes", Method: http.MethodDelete, URL: c.savedRoutesURL + "/saved_routes/" + id},
	}, nil)
	if err != nil {
		return models.StatusResult{}, err
	}
	res, err := decode[models.StatusResult](op, b)
	if err != nil {
		utils.LogError(ctx, "remote", op, err)
	}
	return res, err
}
