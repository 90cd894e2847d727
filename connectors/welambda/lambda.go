package welambda

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"

	"github.com/weegigs/wee-commands-go/connectors/wehttp"
	"github.com/weegigs/wee-commands-go/we"
)

type Handler = func(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

// NewHandler runs stage for API Gateway HTTP API events. Requests the stage
// passes on are answered with 404.
func NewHandler(stage wehttp.Stage) Handler {
	h := wehttp.Chain(http.NotFoundHandler(), stage)

	return func(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		r, err := request(ctx, event)
		if err != nil {
			return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusBadRequest}, nil
		}

		w := newResponse()
		h.ServeHTTP(w, r)

		return w.event(), nil
	}
}

func request(ctx context.Context, event events.APIGatewayV2HTTPRequest) (*http.Request, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode request body")
		}
		body = decoded
	}

	path := event.RawPath
	if path == "" {
		path = event.RequestContext.HTTP.Path
	}

	target := &url.URL{Path: path, RawQuery: event.RawQueryString}

	method := event.RequestContext.HTTP.Method
	if method == "" {
		method = http.MethodGet
	}

	if p, ok := principal(event); ok {
		ctx = we.WithPrincipal(ctx, p)
	}

	r, err := http.NewRequestWithContext(ctx, method, target.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	for name, value := range event.Headers {
		r.Header.Set(name, value)
	}
	if len(event.Cookies) > 0 {
		r.Header.Set("Cookie", strings.Join(event.Cookies, "; "))
	}
	r.RemoteAddr = event.RequestContext.HTTP.SourceIP

	return r, nil
}

// principal reads the identity API Gateway's JWT authorizer has already
// verified.
func principal(event events.APIGatewayV2HTTPRequest) (we.Principal, bool) {
	authorizer := event.RequestContext.Authorizer
	if authorizer == nil || authorizer.JWT == nil {
		return we.Principal{}, false
	}

	claims := authorizer.JWT.Claims
	subject := claims["sub"]
	if subject == "" {
		return we.Principal{}, false
	}

	all := make(map[string]any, len(claims))
	for k, v := range claims {
		all[k] = v
	}

	return we.Principal{
		Subject: subject,
		Issuer:  claims["iss"],
		Roles:   authorizer.JWT.Scopes,
		Claims:  all,
	}, true
}

type response struct {
	header      http.Header
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func newResponse() *response {
	return &response{header: make(http.Header), status: http.StatusOK}
}

func (w *response) Header() http.Header {
	return w.header
}

func (w *response) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.status = status
	w.wroteHeader = true
}

func (w *response) Write(b []byte) (int, error) {
	w.WriteHeader(http.StatusOK)
	return w.body.Write(b)
}

func (w *response) event() events.APIGatewayV2HTTPResponse {
	headers := make(map[string]string, len(w.header))
	for name, values := range w.header {
		headers[name] = strings.Join(values, ",")
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: w.status,
		Headers:    headers,
		Body:       w.body.String(),
	}
}
