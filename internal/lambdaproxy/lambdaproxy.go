// Package lambdaproxy runs API Gateway proxy events through a fiber app without a listener.
package lambdaproxy

import (
	"context"
	"encoding/base64"
	"fmt"
	"net"
	"net/url"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type Adapter struct {
	handler fasthttp.RequestHandler
}

func New(app *fiber.App) *Adapter {
	return &Adapter{handler: app.Handler()}
}

// Proxy is the Lambda handler function.
func (a *Adapter) Proxy(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req, err := toRequest(event)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	var fctx fasthttp.RequestCtx
	fctx.Init(req, remoteAddr(event), nil)
	a.handler(&fctx)

	return toResponse(&fctx.Response), nil
}

func toRequest(event events.APIGatewayProxyRequest) (*fasthttp.Request, error) {
	req := &fasthttp.Request{}
	req.Header.SetMethod(event.HTTPMethod)

	path := event.Path
	if path == "" {
		path = "/"
	}
	// API Gateway hands over a decoded path.
	uri := (&url.URL{Path: path}).EscapedPath()

	query := url.Values{}
	if len(event.MultiValueQueryStringParameters) > 0 {
		for k, vs := range event.MultiValueQueryStringParameters {
			query[k] = vs
		}
	} else {
		for k, v := range event.QueryStringParameters {
			query.Set(k, v)
		}
	}
	if encoded := query.Encode(); encoded != "" {
		uri += "?" + encoded
	}
	req.SetRequestURI(uri)

	if len(event.MultiValueHeaders) > 0 {
		for k, vs := range event.MultiValueHeaders {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
	} else {
		for k, v := range event.Headers {
			req.Header.Set(k, v)
		}
	}
	if len(req.Header.Host()) == 0 {
		req.Header.SetHost("localhost")
	}

	if event.Body != "" {
		body := []byte(event.Body)
		if event.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(event.Body)
			if err != nil {
				return nil, fmt.Errorf("failed to decode request body: %w", err)
			}
			body = decoded
		}
		req.SetBody(body)
	}

	return req, nil
}

func remoteAddr(event events.APIGatewayProxyRequest) net.Addr {
	ip := net.ParseIP(event.RequestContext.Identity.SourceIP)
	if ip == nil {
		ip = net.IPv4zero
	}
	return &net.TCPAddr{IP: ip}
}

func toResponse(resp *fasthttp.Response) events.APIGatewayProxyResponse {
	out := events.APIGatewayProxyResponse{
		StatusCode:        resp.StatusCode(),
		Headers:           map[string]string{},
		MultiValueHeaders: map[string][]string{},
	}

	resp.Header.VisitAll(func(key, value []byte) {
		k, v := string(key), string(value)
		out.Headers[k] = v
		out.MultiValueHeaders[k] = append(out.MultiValueHeaders[k], v)
	})

	body := resp.Body()
	if utf8.Valid(body) {
		out.Body = string(body)
	} else {
		out.Body = base64.StdEncoding.EncodeToString(body)
		out.IsBase64Encoded = true
	}

	return out
}
