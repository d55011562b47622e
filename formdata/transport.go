package formdata

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/jjonline/share-mod-lib/guzzle"
)

// Transport posts a request body with extra headers.
type Transport interface {
	Post(ctx context.Context, url string, body []byte, header map[string]string) (Response, error)
}

// GuzzleTransport is a Transport over a guzzle HTTP client.
type GuzzleTransport struct {
	Client *guzzle.Client
}

// NewGuzzleTransport wraps client; nil uses http.DefaultClient.
func NewGuzzleTransport(client *http.Client) *GuzzleTransport {
	return &GuzzleTransport{Client: guzzle.New(client, nil)}
}

func (t *GuzzleTransport) Post(ctx context.Context, url string, body []byte, header map[string]string) (Response, error) {
	result, err := t.Client.Request(ctx, http.MethodPost, url, bytes.NewReader(body), header)
	if err != nil && !errors.Is(err, guzzle.ErrResponseNotOK) {
		return Response{}, err
	}
	return Response{Status: result.StatusCode, Text: string(result.Body)}, nil
}
