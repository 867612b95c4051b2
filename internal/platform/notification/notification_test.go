package notification

import (
	"context"
	"testing"
)

func newTestDispatcher() (*Dispatcher, *MockSMSSender, *MockPushSender, *MockVoiceSender) {
	sms := &MockSMSSender{}
	push := &MockPushSender{}
	voice := &MockVoiceSender{}
	d := NewDispatcher(sms, push, voice, NewTemplateEngine())
	return d, sms, push, voice
}

func TestDispatcher_SendSMS(t *testing.T) {
	d, sms, _, _ := newTestDispatcher()
	a := &Alert{Channel: ChannelSMS, Recipient: "+15550001111", Body: "test"}
	if err := d.Send(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != "sent" {
		t.Errorf("expected status sent, got %s", a.Status)
	}
	if a.ID == "" {
		t.Error("expected alert ID to be assigned")
	}
	if len(sms.Calls()) != 1 {
		t.Errorf("expected 1 SMS call, got %d", len(sms.Calls()))
	}
}

func TestDispatcher_SendVoice(t *testing.T) {
	d, _, _, voice := newTestDispatcher()
	a := &Alert{Channel: ChannelVoice, Recipient: "+15550001111", Body: "urgent"}
	if err := d.Send(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(voice.Calls()) != 1 {
		t.Errorf("expected 1 voice call, got %d", len(voice.Calls()))
	}
}

func TestDispatcher_SendUnsupportedChannel(t *testing.T) {
	d, _, _, _ := newTestDispatcher()
	a := &Alert{Channel: "fax", Recipient: "x", Body: "y"}
	if err := d.Send(context.Background(), a); err == nil {
		t.Error("expected error for unsupported channel")
	}
	if a.Status != "failed" {
		t.Errorf("expected status failed, got %s", a.Status)
	}
}

func TestDispatcher_SendFromTemplate(t *testing.T) {
	d, _, push, _ := newTestDispatcher()
	data := map[string]string{
		"child_name":      "Maya",
		"score":           "85",
		"priority":        "1",
		"timeout_minutes": "5",
	}
	a, err := d.SendFromTemplate(context.Background(), "critical-risk", data, ChannelPush, "device-token-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Subject != "URGENT: Maya needs attention" {
		t.Errorf("unexpected rendered subject: %q", a.Subject)
	}
	calls := push.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 push call, got %d", len(calls))
	}
}

func TestDispatcher_SendFromTemplate_Unknown(t *testing.T) {
	d, _, _, _ := newTestDispatcher()
	if _, err := d.SendFromTemplate(context.Background(), "nope", nil, ChannelSMS, "x"); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestDispatcher_Retry(t *testing.T) {
	sms := &MockSMSSender{ShouldFail: true, FailError: "carrier down"}
	d := NewDispatcher(sms, &MockPushSender{}, &MockVoiceSender{}, NewTemplateEngine())

	a := &Alert{Channel: ChannelSMS, Recipient: "+15550001111", Body: "test"}
	if err := d.Send(context.Background(), a); err == nil {
		t.Fatal("expected send failure")
	}

	sms.ShouldFail = false
	if err := d.Retry(context.Background(), a.ID); err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}

	got, err := d.GetAlert(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != "sent" {
		t.Errorf("expected status sent after retry, got %s", got.Status)
	}
}

func TestDispatcher_RetryNonFailed(t *testing.T) {
	d, _, _, _ := newTestDispatcher()
	a := &Alert{Channel: ChannelSMS, Recipient: "+15550001111", Body: "test"}
	d.Send(context.Background(), a)
	if err := d.Retry(context.Background(), a.ID); err == nil {
		t.Error("expected error retrying a sent alert")
	}
}

func TestTemplateEngine_RenderLeavesUnknownKeys(t *testing.T) {
	e := NewTemplateEngine()
	_, body, err := e.Render("critical-risk", map[string]string{"child_name": "Maya"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "Maya's risk score reached {{score}}"; len(body) < len(want) || body[:len(want)] != want {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestDispatcher_Stats(t *testing.T) {
	d, _, _, _ := newTestDispatcher()
	d.Send(context.Background(), &Alert{Channel: ChannelSMS, Recipient: "a", Body: "x"})
	d.Send(context.Background(), &Alert{Channel: "bogus", Recipient: "b", Body: "y"})
	stats := d.Stats(context.Background())
	if stats["sent"] != 1 || stats["failed"] != 1 {
		t.Errorf("unexpected stats: %v", stats)
	}
}
