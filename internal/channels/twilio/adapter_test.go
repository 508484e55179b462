package twilio

import (
	"errors"
	"net/url"
	"reflect"
	"testing"

	"github.com/omnirelay/channel-bridge/internal/bridge"
)

func TestParseInbound(t *testing.T) {
	form := url.Values{}
	form.Set("From", "whatsapp:+15550001111")
	form.Set("Body", "hi there")
	form.Set("MessageSid", "SM123")

	a := NewAdapter()
	msgs, err := a.ParseInbound([]byte(form.Encode()))
	if err != nil {
		t.Fatal(err)
	}

	want := []bridge.InboundMessage{{
		Channel: bridge.ChannelTwilioWhatsApp,
		UserID:  "whatsapp:+15550001111",
		Text:    "hi there",
	}}
	if !reflect.DeepEqual(msgs, want) {
		t.Errorf("msgs = %+v, want %+v", msgs, want)
	}
}

func TestParseInboundMissingFieldsDegrade(t *testing.T) {
	a := NewAdapter()
	msgs, err := a.ParseInbound([]byte(""))
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want exactly 1", len(msgs))
	}
	if msgs[0].UserID != "" || msgs[0].Text != "" {
		t.Errorf("msg = %+v, want empty fields", msgs[0])
	}
}

func TestParseInboundMalformed(t *testing.T) {
	a := NewAdapter()
	_, err := a.ParseInbound([]byte("a=%zz"))
	if !errors.Is(err, bridge.ErrMalformedPayload) {
		t.Errorf("err = %v, want ErrMalformedPayload", err)
	}
}

func TestRenderRepliesOrdered(t *testing.T) {
	doc := string(RenderReplies([]bridge.OutboundReply{
		{UserID: "+1555", Text: "hello"},
		{UserID: "+1555", Text: "bye"},
	}))

	want := `<?xml version="1.0" encoding="UTF-8"?><Response><Message>hello</Message><Message>bye</Message></Response>`
	if doc != want {
		t.Errorf("doc = %s, want %s", doc, want)
	}
}

func TestRenderRepliesEmpty(t *testing.T) {
	doc := string(RenderReplies(nil))
	want := `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`
	if doc != want {
		t.Errorf("doc = %s, want %s", doc, want)
	}
}

func TestRenderRepliesEscapes(t *testing.T) {
	doc := string(RenderReplies([]bridge.OutboundReply{
		{UserID: "+1555", Text: `5 < 6 & "quotes"`},
	}))

	want := `<?xml version="1.0" encoding="UTF-8"?><Response><Message>5 &lt; 6 &amp; &quot;quotes&quot;</Message></Response>`
	if doc != want {
		t.Errorf("doc = %s", doc)
	}
}
