package main

import (
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// apiClient is a thin resty wrapper that unwraps the service's response
// envelope and turns failure envelopes into errors.
type apiClient struct {
	http *resty.Client
}

func newAPIClient(baseURL, token string) *apiClient {
	c := resty.New().SetBaseURL(baseURL).SetHeader("Content-Type", "application/json")
	if token != "" {
		c.SetAuthToken(token)
	}
	return &apiClient{http: c}
}

type apiEnvelope struct {
	Success  bool            `json:"success"`
	Response json.RawMessage `json:"response"`
	Message  string          `json:"message"`
	Meta     json.RawMessage `json:"meta"`
}

func (c *apiClient) do(method, path string, body interface{}) (*apiEnvelope, error) {
	req := c.http.R()
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, err
	}

	var env apiEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	if !env.Success {
		return &env, fmt.Errorf("http %d: %s", resp.StatusCode(), env.Message)
	}
	return &env, nil
}

// printResponse pretty-prints the response payload, with the pagination
// metadata beside it when present.
func printResponse(env *apiEnvelope) error {
	out := map[string]json.RawMessage{"response": env.Response}
	if len(env.Meta) > 0 && string(env.Meta) != "null" {
		out["meta"] = env.Meta
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
