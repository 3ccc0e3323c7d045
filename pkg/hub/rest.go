package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RESTClient is the production hub.Client: it talks to a Home-Assistant-style
// hub over its HTTP REST API for state reads and service calls, and over a
// websocket connection (see SubscribeSceneStateChanges in websocket.go) for state-change
// notifications.
type RESTClient struct {
	baseURL    string
	token      string
	httpClient *http.Client

	ws *wsSubscriber
}

var _ Client = (*RESTClient)(nil)

// NewRESTClient builds a client bound to baseURL (e.g. "http://homeassistant.local:8123")
// authenticating with a long-lived access token.
func NewRESTClient(baseURL, token string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *RESTClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("hub returned HTTP %d for %s %s: %s", resp.StatusCode, method, path, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s %s: %w", method, path, err)
	}
	return nil
}

type stateAttributes struct {
	FriendlyName string    `json:"friendly_name"`
	UniqueID     string    `json:"unique_id"`
	Brightness   *int      `json:"brightness"`
	XYColor      *[2]float64 `json:"xy_color"`
	ColorTemp    *int      `json:"color_temp"`
}

type stateResponse struct {
	EntityID   string           `json:"entity_id"`
	State      string           `json:"state"`
	Attributes stateAttributes  `json:"attributes"`
}

// ReadSceneMeta fetches a scene entity's current state record and extracts
// its unique_id and friendly name attributes. Labels are not exposed by the
// plain state endpoint, so the returned SceneMeta's Labels is always empty.
func (c *RESTClient) ReadSceneMeta(ctx context.Context, sceneEntityID string) (SceneMeta, error) {
	var resp stateResponse
	if err := c.do(ctx, http.MethodGet, "/api/states/"+sceneEntityID, nil, &resp); err != nil {
		return SceneMeta{}, err
	}
	return SceneMeta{
		UID:  resp.Attributes.UniqueID,
		Name: resp.Attributes.FriendlyName,
	}, nil
}

// ReadLightState fetches a light entity's current state record and decodes
// its on/off, brightness, and color attributes.
func (c *RESTClient) ReadLightState(ctx context.Context, entityID string) (LightState, error) {
	var resp stateResponse
	if err := c.do(ctx, http.MethodGet, "/api/states/"+entityID, nil, &resp); err != nil {
		return LightState{}, err
	}

	state := LightState{On: resp.State == "on"}
	if resp.Attributes.Brightness != nil {
		state.Brightness = *resp.Attributes.Brightness
	}
	switch {
	case resp.Attributes.XYColor != nil:
		state.Mode = ColorModeXY
		state.XY = XYPoint{X: resp.Attributes.XYColor[0], Y: resp.Attributes.XYColor[1]}
	case resp.Attributes.ColorTemp != nil:
		state.Mode = ColorModeColorTemp
		state.Mirek = *resp.Attributes.ColorTemp
	}
	return state, nil
}

// ActivateScene calls the hub's scene.turn_on service for sceneEntityID.
func (c *RESTClient) ActivateScene(ctx context.Context, sceneEntityID string) error {
	payload := map[string]any{"entity_id": sceneEntityID}
	return c.do(ctx, http.MethodPost, "/api/services/scene/turn_on", payload, nil)
}

// DriveLight calls the hub's light.turn_on or light.turn_off service,
// translating cmd's vendor-ready fields into the service-call payload.
func (c *RESTClient) DriveLight(ctx context.Context, entityID string, cmd DriveCommand) error {
	if !cmd.On {
		return c.do(ctx, http.MethodPost, "/api/services/light/turn_off",
			map[string]any{"entity_id": entityID}, nil)
	}

	payload := map[string]any{"entity_id": entityID}
	if cmd.HasBrightness {
		payload["brightness"] = cmd.BrightnessNative
	}
	if cmd.HasXY {
		payload["xy_color"] = [2]float64{cmd.XY.X, cmd.XY.Y}
	}
	if cmd.HasMirek {
		payload["color_temp"] = cmd.Mirek
	}
	return c.do(ctx, http.MethodPost, "/api/services/light/turn_on", payload, nil)
}
