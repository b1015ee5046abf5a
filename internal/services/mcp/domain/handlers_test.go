package domain

import (
	"context"
	"errors"
	"strings"
	"testing"

	rollerv1 "github.com/louisbranch/troller/internal/services/roller/api/grpc/rollerv1"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeDiceClient struct {
	lastReq *rollerv1.RollRequest
	resp    *rollerv1.RollResponse
	err     error
}

func (f *fakeDiceClient) Roll(_ context.Context, in *rollerv1.RollRequest, _ ...grpc.CallOption) (*rollerv1.RollResponse, error) {
	f.lastReq = in
	return f.resp, f.err
}

type fakeClockClient struct {
	rollerv1.ClockServiceClient

	createReq *rollerv1.CreateClockRequest
	bumpReq   *rollerv1.BumpClockRequest
	deleteReq *rollerv1.DeleteClockRequest
	listReq   *rollerv1.ListClocksRequest
	renderReq *rollerv1.RenderClockRequest

	clock *rollerv1.Clock
	list  *rollerv1.ListClocksResponse
	err   error
}

func (f *fakeClockClient) CreateClock(_ context.Context, in *rollerv1.CreateClockRequest, _ ...grpc.CallOption) (*rollerv1.CreateClockResponse, error) {
	f.createReq = in
	if f.err != nil {
		return nil, f.err
	}
	return &rollerv1.CreateClockResponse{Clock: f.clock}, nil
}

func (f *fakeClockClient) BumpClock(_ context.Context, in *rollerv1.BumpClockRequest, _ ...grpc.CallOption) (*rollerv1.BumpClockResponse, error) {
	f.bumpReq = in
	if f.err != nil {
		return nil, f.err
	}
	return &rollerv1.BumpClockResponse{Clock: f.clock}, nil
}

func (f *fakeClockClient) DeleteClock(_ context.Context, in *rollerv1.DeleteClockRequest, _ ...grpc.CallOption) (*rollerv1.DeleteClockResponse, error) {
	f.deleteReq = in
	if f.err != nil {
		return nil, f.err
	}
	return &rollerv1.DeleteClockResponse{}, nil
}

func (f *fakeClockClient) ListClocks(_ context.Context, in *rollerv1.ListClocksRequest, _ ...grpc.CallOption) (*rollerv1.ListClocksResponse, error) {
	f.listReq = in
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeClockClient) RenderClock(_ context.Context, in *rollerv1.RenderClockRequest, _ ...grpc.CallOption) (*rollerv1.RenderClockResponse, error) {
	f.renderReq = in
	if f.err != nil {
		return nil, f.err
	}
	return &rollerv1.RenderClockResponse{Clock: f.clock, Svg: "<svg/>"}, nil
}

func testClock(filled int) *rollerv1.Clock {
	return &rollerv1.Clock{
		Namespace: "crew",
		Name:      "alarm",
		Title:     "Alarm",
		Segments:  4,
		Filled:    filled,
		Complete:  filled == 4,
		CreatedAt: "2026-03-03T20:00:00Z",
	}
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("expected text content")
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want *mcp.TextContent", result.Content[0])
	}
	return text.Text
}

func noContext() Context { return Context{} }

func TestRollHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := &fakeDiceClient{resp: &rollerv1.RollResponse{
			Results: []rollerv1.RollResult{
				{Name: "attack", Value: "[**20**] + 5 => 25", Total: 25},
				{Name: "Roll 2", Value: "3 => 3", Total: 3},
			},
			Normalized: "attack: 1d20 + 5, 3",
			Rng:        &rollerv1.RngResponse{SeedUsed: "9", RngAlgo: "pcg64", SeedSource: "CLIENT", RollMode: "REPLAY"},
		}}
		handler := RollHandler(client)
		toolResult, result, err := handler(context.Background(), nil, RollInput{
			Dice: "attack: 1d20 + 5, 3",
			Rng:  &RngRequest{Seed: "9"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if client.lastReq.Rng == nil || client.lastReq.Rng.Seed != "9" {
			t.Fatalf("rng not forwarded: %+v", client.lastReq)
		}
		if len(result.Results) != 2 || result.Results[0].Total != 25 {
			t.Fatalf("unexpected results: %+v", result.Results)
		}
		if result.Rng == nil || result.Rng.SeedSource != "CLIENT" {
			t.Fatalf("unexpected rng: %+v", result.Rng)
		}
		if got := toolText(t, toolResult); got != "attack: [**20**] + 5 => 25\nRoll 2: 3 => 3" {
			t.Fatalf("text = %q", got)
		}
	})

	t.Run("missing dice", func(t *testing.T) {
		handler := RollHandler(&fakeDiceClient{})
		if _, _, err := handler(context.Background(), nil, RollInput{Dice: " "}); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("localized error", func(t *testing.T) {
		st, err := status.New(codes.InvalidArgument, "invalid dice syntax").WithDetails(&errdetails.LocalizedMessage{
			Locale:  "en-US",
			Message: `Could not parse "2d": unexpected token`,
		})
		if err != nil {
			t.Fatalf("with details: %v", err)
		}
		handler := RollHandler(&fakeDiceClient{err: st.Err()})
		_, _, err = handler(context.Background(), nil, RollInput{Dice: "2d"})
		if err == nil || err.Error() != `Could not parse "2d": unexpected token` {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("nil response", func(t *testing.T) {
		handler := RollHandler(&fakeDiceClient{})
		if _, _, err := handler(context.Background(), nil, RollInput{Dice: "1d6"}); err == nil {
			t.Fatal("expected error for nil response")
		}
	})
}

func TestClockAddHandlerUsesContextNamespace(t *testing.T) {
	client := &fakeClockClient{clock: testClock(0)}
	var notified []string
	notify := func(_ context.Context, uri string) { notified = append(notified, uri) }
	handler := ClockAddHandler(client, func() Context { return Context{Namespace: "crew"} }, notify)

	toolResult, result, err := handler(context.Background(), nil, ClockAddInput{Name: "alarm", Segments: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.createReq.Namespace != "crew" {
		t.Fatalf("namespace = %q, want crew", client.createReq.Namespace)
	}
	if result.Title != "Alarm" || toolText(t, toolResult) != "Alarm: 0/4" {
		t.Fatalf("unexpected result %+v / %q", result, toolText(t, toolResult))
	}
	if len(notified) != 1 || notified[0] != "clock://crew/alarm" {
		t.Fatalf("notified = %v", notified)
	}
}

func TestClockAddHandlerRequiresNamespace(t *testing.T) {
	handler := ClockAddHandler(&fakeClockClient{}, noContext, nil)
	_, _, err := handler(context.Background(), nil, ClockAddInput{Name: "alarm", Segments: 4})
	if err == nil || !strings.Contains(err.Error(), "namespace is required") {
		t.Fatalf("err = %v", err)
	}
}

func TestClockBumpHandlerDefaultsToOne(t *testing.T) {
	client := &fakeClockClient{clock: testClock(4)}
	handler := ClockBumpHandler(client, noContext, nil)

	toolResult, _, err := handler(context.Background(), nil, ClockBumpInput{Namespace: "crew", Name: "alarm"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.bumpReq.Amount != 1 {
		t.Fatalf("amount = %d, want 1", client.bumpReq.Amount)
	}
	if got := toolText(t, toolResult); got != "Alarm: 4/4 (complete)" {
		t.Fatalf("text = %q", got)
	}

	back := -2
	if _, _, err := handler(context.Background(), nil, ClockBumpInput{Namespace: "crew", Name: "alarm", Amount: &back}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.bumpReq.Amount != -2 {
		t.Fatalf("amount = %d, want -2", client.bumpReq.Amount)
	}
}

func TestClockRemoveHandler(t *testing.T) {
	client := &fakeClockClient{}
	handler := ClockRemoveHandler(client, noContext, nil)
	_, result, err := handler(context.Background(), nil, ClockRefInput{Namespace: "crew", Name: " alarm "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Name != "alarm" || client.deleteReq.Namespace != "crew" {
		t.Fatalf("unexpected result %+v / req %+v", result, client.deleteReq)
	}

	client.err = status.Error(codes.NotFound, "record not found")
	if _, _, err := handler(context.Background(), nil, ClockRefInput{Namespace: "crew", Name: "alarm"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestClockShowHandler(t *testing.T) {
	client := &fakeClockClient{clock: testClock(2)}
	handler := ClockShowHandler(client, noContext)
	_, result, err := handler(context.Background(), nil, ClockRefInput{Namespace: "crew", Name: "alarm"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Svg != "<svg/>" || result.Clock.Filled != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestClockListHandler(t *testing.T) {
	client := &fakeClockClient{list: &rollerv1.ListClocksResponse{
		Clocks:        []*rollerv1.Clock{testClock(1)},
		NextPageToken: "alarm",
	}}
	handler := ClockListHandler(client, noContext)
	toolResult, result, err := handler(context.Background(), nil, ClockListInput{Namespace: "crew", PageSize: 1, Filter: "filled > 0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.listReq.PageSize != 1 || client.listReq.Filter != "filled > 0" {
		t.Fatalf("unexpected request %+v", client.listReq)
	}
	if len(result.Clocks) != 1 || result.NextPageToken != "alarm" {
		t.Fatalf("unexpected result %+v", result)
	}
	if toolText(t, toolResult) != "Alarm: 1/4" {
		t.Fatalf("text = %q", toolText(t, toolResult))
	}

	client.list = &rollerv1.ListClocksResponse{}
	toolResult, _, err = handler(context.Background(), nil, ClockListInput{Namespace: "crew"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toolText(t, toolResult) != "No clocks" {
		t.Fatalf("text = %q", toolText(t, toolResult))
	}
}

func TestClockResourceHandler(t *testing.T) {
	client := &fakeClockClient{clock: testClock(1)}
	handler := ClockResourceHandler(client)
	uri := ClockURI("crew", "the heist")
	result, err := handler(context.Background(), &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}})
	if err != nil {
		t.Fatalf("read resource: %v", err)
	}
	if client.renderReq.Name != "the heist" || client.renderReq.Namespace != "crew" {
		t.Fatalf("unexpected request %+v", client.renderReq)
	}
	if len(result.Contents) != 1 || result.Contents[0].MIMEType != "image/svg+xml" {
		t.Fatalf("unexpected contents %+v", result.Contents)
	}
}

func TestParseClockURI(t *testing.T) {
	if _, _, err := parseClockURI("context://x/y"); err == nil {
		t.Fatal("expected scheme error")
	}
	if _, _, err := parseClockURI("clock://crew"); err == nil {
		t.Fatal("expected missing name error")
	}
	if _, _, err := parseClockURI("clock://crew/a/b"); err == nil {
		t.Fatal("expected extra segment error")
	}
	namespace, name, err := parseClockURI("clock://crew/the%20heist")
	if err != nil || namespace != "crew" || name != "the heist" {
		t.Fatalf("got %q/%q err %v", namespace, name, err)
	}
}

func TestSetContextHandler(t *testing.T) {
	var stored Context
	handler := SetContextHandler(func(c Context) { stored = c }, func() Context { return stored })
	_, result, err := handler(context.Background(), nil, SetContextInput{Namespace: " crew "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Context.Namespace != "crew" {
		t.Fatalf("namespace = %q, want crew", result.Context.Namespace)
	}
	if _, _, err := handler(context.Background(), nil, SetContextInput{}); err == nil {
		t.Fatal("expected error for empty namespace")
	}
}

func TestCallErrorWithoutDetails(t *testing.T) {
	err := callError("roll", status.Error(codes.Unavailable, "down"))
	if err.Error() != "roll: down" {
		t.Fatalf("err = %v", err)
	}
	plain := errors.New("boom")
	if !errors.Is(callError("roll", plain), plain) {
		t.Fatal("expected wrapped plain error")
	}
}
