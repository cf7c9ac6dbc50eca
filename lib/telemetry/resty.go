package telemetry

import (
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/semconv/v1.13.0/httpconv"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentResty attaches request/response spans to every round-trip
// the client makes. Request and response bodies are NOT recorded:
// the portal clients carry session cookies and credentials in their
// payloads and those must never leave process memory.
func InstrumentResty(client *resty.Client, tracerName string) {
	tracer := otel.Tracer(tracerName)

	client.OnBeforeRequest(onBeforeRequest(tracer))
	client.OnAfterResponse(onAfterResponse)
	client.OnError(onError)
}

func onBeforeRequest(tracer trace.Tracer) resty.RequestMiddleware {
	return func(cli *resty.Client, req *resty.Request) error {
		ctx, _ := tracer.Start(req.Context(), req.Method)
		req.SetContext(ctx)
		return nil
	}
}

func instrumentHeaderNames(out *[]attribute.KeyValue, prefix string, headers http.Header) {
	names := make([]string, 0, len(headers))
	for header := range headers {
		names = append(names, header)
	}
	*out = append(*out, attribute.KeyValue{
		Key:   attribute.Key(prefix + "/headers"),
		Value: attribute.StringSliceValue(names),
	})
}

func onAfterResponse(_ *resty.Client, res *resty.Response) error {
	span := trace.SpanFromContext(res.Request.Context())
	defer span.End()

	span.SetAttributes(httpconv.ClientResponse(res.RawResponse)...)

	// setting request attributes here since res.Request.RawRequest is nil in onBeforeRequest
	span.SetName(fmt.Sprintf("http %s", res.Request.Method))
	span.SetAttributes(httpconv.ClientRequest(res.Request.RawRequest)...)

	var attrs []attribute.KeyValue
	instrumentHeaderNames(&attrs, "request", res.Request.Header)
	instrumentHeaderNames(&attrs, "response", res.Header())
	attrs = append(attrs, attribute.KeyValue{
		Key:   "response/body_size",
		Value: attribute.IntValue(len(res.Body())),
	})
	span.SetAttributes(attrs...)

	return nil
}

func onError(req *resty.Request, err error) {
	span := trace.SpanFromContext(req.Context())
	defer span.End()

	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)

	span.SetName(fmt.Sprintf("http %s", req.Method))
	if req.RawRequest != nil {
		span.SetAttributes(httpconv.ClientRequest(req.RawRequest)...)
	}
}
