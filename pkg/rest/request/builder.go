package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/browsekit/navigator/pkg/rest"
)

type Builder struct {
	scheme    string
	host      string
	path      string
	urlParams url.Values
	method    string
	header    http.Header
	body      []byte
	bodyErr   error
	ctx       context.Context
}

func NewBuilder(host string) *Builder {
	return &Builder{
		scheme:    "http",
		host:      host,
		urlParams: make(url.Values),
		header:    make(http.Header),
		method:    http.MethodGet, // default method
		ctx:       context.TODO(),
	}
}

func (b *Builder) Build() (*http.Request, error) {
	if b.bodyErr != nil {
		return nil, fmt.Errorf("unable to build request: %w", b.bodyErr)
	}

	reqURL := url.URL{
		Scheme:   b.scheme,
		Host:     b.host,
		Path:     b.path,
		RawQuery: b.urlParams.Encode(),
	}

	var body *bytes.Reader
	if b.body != nil {
		body = bytes.NewReader(b.body)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(b.ctx, b.method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("unable to build request: %w", err)
	}

	for key := range b.header {
		req.Header.Set(key, b.header.Get(key))
	}

	return req, nil
}

func (b *Builder) URL(path string) *Builder {
	b.path = path
	return b
}

func (b *Builder) HTTPS() *Builder {
	b.scheme = "https"
	return b
}

func (b *Builder) WithURLParams(params any) *Builder {
	b.urlParams = UnMarshallParams(&params)
	return b
}

func (b *Builder) QueryParameter(key, val string) *Builder {
	b.urlParams.Add(key, val)
	return b
}

func (b *Builder) GET() *Builder {
	b.method = http.MethodGet
	return b
}

func (b *Builder) POST() *Builder {
	b.method = http.MethodPost
	return b
}

func (b *Builder) PUT() *Builder {
	b.method = http.MethodPut
	return b
}

func (b *Builder) DELETE() *Builder {
	b.method = http.MethodDelete
	return b
}

func (b *Builder) SetHeader(key, val string) *Builder {
	b.header.Set(key, val)
	return b
}

func (b *Builder) WithJSONContentType() *Builder {
	return b.SetHeader("Content-Type", rest.ContentTypeJSON)
}

func (b *Builder) Body(body any) *Builder {
	data, err := json.Marshal(body)
	if err != nil {
		b.bodyErr = err
		return b
	}
	b.body = data
	return b.WithJSONContentType()
}

func (b *Builder) CTX(ctx context.Context) *Builder {
	b.ctx = ctx
	return b
}
