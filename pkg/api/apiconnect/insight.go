package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	api "github.com/mmynk/budgetbuddy/pkg/api"
)

// InsightServiceName is the fully-qualified name of the InsightService.
const InsightServiceName = "budgetbuddy.v1.InsightService"

// Procedure names, as they appear in the URL path.
const (
	InsightServiceAnalyzeProcedure = "/budgetbuddy.v1.InsightService/Analyze"
	InsightServiceChatProcedure    = "/budgetbuddy.v1.InsightService/Chat"
)

// InsightServiceHandler is implemented by the server side of the InsightService.
type InsightServiceHandler interface {
	Analyze(context.Context, *connect.Request[api.AnalyzeRequest]) (*connect.Response[api.AnalyzeResponse], error)
	Chat(context.Context, *connect.Request[api.ChatRequest], *connect.ServerStream[api.ChatResponse]) error
}

// NewInsightServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
// The JSON codec is always installed; opts are applied after it.
func NewInsightServiceHandler(svc InsightServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	insightServiceAnalyzeHandler := connect.NewUnaryHandler(InsightServiceAnalyzeProcedure, svc.Analyze, opts...)
	insightServiceChatHandler := connect.NewServerStreamHandler(InsightServiceChatProcedure, svc.Chat, opts...)
	return "/" + InsightServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case InsightServiceAnalyzeProcedure:
			insightServiceAnalyzeHandler.ServeHTTP(w, r)
		case InsightServiceChatProcedure:
			insightServiceChatHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// InsightServiceClient is a client for the InsightService.
type InsightServiceClient interface {
	Analyze(context.Context, *connect.Request[api.AnalyzeRequest]) (*connect.Response[api.AnalyzeResponse], error)
	Chat(context.Context, *connect.Request[api.ChatRequest]) (*connect.ServerStreamForClient[api.ChatResponse], error)
}

// NewInsightServiceClient constructs a client for the InsightService at baseURL
// (for example, http://localhost:8080).
func NewInsightServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) InsightServiceClient {
	opts = withClientCodec(opts)
	return &insightServiceClient{
		analyze: connect.NewClient[api.AnalyzeRequest, api.AnalyzeResponse](httpClient, baseURL+InsightServiceAnalyzeProcedure, opts...),
		chat:    connect.NewClient[api.ChatRequest, api.ChatResponse](httpClient, baseURL+InsightServiceChatProcedure, opts...),
	}
}

type insightServiceClient struct {
	analyze *connect.Client[api.AnalyzeRequest, api.AnalyzeResponse]
	chat    *connect.Client[api.ChatRequest, api.ChatResponse]
}

func (c *insightServiceClient) Analyze(ctx context.Context, req *connect.Request[api.AnalyzeRequest]) (*connect.Response[api.AnalyzeResponse], error) {
	return c.analyze.CallUnary(ctx, req)
}

func (c *insightServiceClient) Chat(ctx context.Context, req *connect.Request[api.ChatRequest]) (*connect.ServerStreamForClient[api.ChatResponse], error) {
	return c.chat.CallServerStream(ctx, req)
}
