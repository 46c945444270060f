package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/lyxa123/TubeHeads-sub000/internal/apperr"
)

// ShowDetail es el subconjunto de la respuesta de TMDB que usamos para
// poblar un show nuevo. El API es read-only: nunca escribimos de vuelta.
type ShowDetail struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
	FirstAirDate string `json:"first_air_date"`
}

type trendingResponse struct {
	Results []ShowDetail `json:"results"`
}

// Client habla con el API de TMDB (v3). BaseURL se inyecta para poder
// apuntar los tests a un httptest.Server.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// GetShow trae el detalle de una serie por id externo. 404 de TMDB se
// traduce a NotFound para que el caller decida (no hay show lazy-creable).
func (c *Client) GetShow(ctx context.Context, tmdbID int) (*ShowDetail, error) {
	var out ShowDetail
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", tmdbID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TrendingTV lista las series en tendencia de la semana.
func (c *Client) TrendingTV(ctx context.Context) ([]ShowDetail, error) {
	var out trendingResponse
	if err := c.get(ctx, "/trending/tv/week", nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dest any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.FromStore("tmdb: "+path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperr.NotFound("tmdb: recurso %s no existe", path)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("tmdb: %s devolvió %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
