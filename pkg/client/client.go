package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/devsapp/sd-checkpoint-test/pkg/config"
	"github.com/devsapp/sd-checkpoint-test/pkg/models"
)

var ErrResponseCode = errors.New("got unexpected response code")

// StatusError a non-200 response of the sd server
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", ErrResponseCode, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrResponseCode
}

// Client talk to a1111 sd webui api
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endPoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endPoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// IsAlive any response from the docs page means the server is up
func (c *Client) IsAlive(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+config.SD_DOCS, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

// ListModels list all checkpoints known by the server
func (c *Client) ListModels(ctx context.Context) ([]models.SDModel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+config.SD_MODELS, nil)
	if err != nil {
		return nil, err
	}
	ckpts := make([]models.SDModel, 0)
	if err := c.do(req, &ckpts); err != nil {
		return nil, err
	}
	return ckpts, nil
}

// Txt2Img predict, blocks until all images are generated
func (c *Client) Txt2Img(ctx context.Context, payload *models.Txt2ImgRequest) (*models.Txt2ImgResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("request to json err=%w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+config.TXT2IMG,
		bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	result := new(models.Txt2ImgResult)
	if err := c.do(req, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Body: string(msg)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response err=%w", req.URL.Path, err)
	}
	return nil
}
