package respondio

import (
	"errors"
	"reflect"
	"testing"

	"github.com/omnirelay/channel-bridge/internal/bridge"
)

func TestParseInboundUserIDResolution(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantUser string
		wantText string
	}{
		{
			"contact id preferred",
			`{"contact":{"id":"c-1","phone":"+1555"},"data":{"text":"hi"}}`,
			"c-1", "hi",
		},
		{
			"numeric contact id",
			`{"contact":{"id":98765},"data":{"text":"hi"}}`,
			"98765", "hi",
		},
		{
			"phone fallback",
			`{"contact":{"phone":"+1555"},"message":{"text":"legacy"}}`,
			"+1555", "legacy",
		},
		{
			"unknown user placeholder",
			`{"data":{"text":"anonymous"}}`,
			UnknownUser, "anonymous",
		},
		{
			"data.text preferred over message.text",
			`{"contact":{"id":"c-2"},"data":{"text":"new"},"message":{"text":"old"}}`,
			"c-2", "new",
		},
		{
			"no text at all",
			`{"contact":{"id":"c-3"}}`,
			"c-3", "",
		},
	}

	a := NewAdapter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, err := a.ParseInbound([]byte(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			want := []bridge.InboundMessage{{
				Channel: bridge.ChannelRespondIo,
				UserID:  tt.wantUser,
				Text:    tt.wantText,
			}}
			if !reflect.DeepEqual(msgs, want) {
				t.Errorf("msgs = %+v, want %+v", msgs, want)
			}
		})
	}
}

func TestParseInboundMalformed(t *testing.T) {
	a := NewAdapter()
	_, err := a.ParseInbound([]byte(`{"contact":`))
	if !errors.Is(err, bridge.ErrMalformedPayload) {
		t.Errorf("err = %v, want ErrMalformedPayload", err)
	}
}

func TestRenderReplies(t *testing.T) {
	body := string(RenderReplies([]bridge.OutboundReply{
		{UserID: "c-1", Text: "hello"},
		{UserID: "c-1", Text: "bye"},
	}))

	want := `{"messages":[{"text":"hello"},{"text":"bye"}]}`
	if body != want {
		t.Errorf("body = %s, want %s", body, want)
	}
}

func TestRenderRepliesEmptyListPresent(t *testing.T) {
	body := string(RenderReplies(nil))
	if body != `{"messages":[]}` {
		t.Errorf("body = %s, want empty messages list", body)
	}
}
