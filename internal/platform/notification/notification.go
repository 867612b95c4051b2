// Package notification delivers escalation alerts to family contacts over
// SMS, push, and voice channels, with template rendering, in-memory delivery
// records, retry logic, and Echo HTTP handlers.
package notification

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Channel represents the delivery channel for an alert.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
	ChannelVoice Channel = "voice"
)

// Alert represents a single outbound escalation alert.
type Alert struct {
	ID           string            `json:"id"`
	Channel      Channel           `json:"channel"`
	Recipient    string            `json:"recipient"`
	Subject      string            `json:"subject,omitempty"`
	Body         string            `json:"body"`
	TemplateID   string            `json:"template_id,omitempty"`
	TemplateData map[string]string `json:"template_data,omitempty"`
	Priority     int               `json:"priority"`
	Status       string            `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	SentAt       *time.Time        `json:"sent_at,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// SMSSender is the interface for sending SMS messages.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// PushSender is the interface for sending push notifications.
type PushSender interface {
	SendPush(ctx context.Context, to, subject, body string) error
}

// VoiceSender is the interface for placing automated voice calls.
type VoiceSender interface {
	PlaceCall(ctx context.Context, to, body string) error
}

// Template defines a reusable alert template.
type Template struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// TemplateEngine manages alert templates and renders them with data.
type TemplateEngine struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewTemplateEngine creates a TemplateEngine with the built-in templates
// pre-registered.
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{
		templates: make(map[string]*Template),
	}
	e.registerBuiltIn()
	return e
}

func (e *TemplateEngine) registerBuiltIn() {
	builtIn := []Template{
		{
			ID:      "critical-risk",
			Name:    "Critical Risk Alert",
			Subject: "URGENT: {{child_name}} needs attention",
			Body:    "{{child_name}}'s risk score reached {{score}} at {{time}}. You are contact #{{priority}}. Please acknowledge within {{timeout_minutes}} minutes or the next contact will be notified.",
		},
		{
			ID:      "escalation-advanced",
			Name:    "Escalation Advanced",
			Subject: "Escalation for {{child_name}} passed to you",
			Body:    "The previous contact for {{child_name}} did not acknowledge in time. You are now the active contact. Please respond.",
		},
		{
			ID:      "escalation-resolved",
			Name:    "Escalation Resolved",
			Subject: "Alert for {{child_name}} acknowledged",
			Body:    "{{ack_by}} acknowledged the alert for {{child_name}} at {{time}}. No further action is needed.",
		},
		{
			ID:      "escalation-exhausted",
			Name:    "Escalation Exhausted",
			Subject: "ALERT: nobody acknowledged for {{child_name}}",
			Body:    "No contact acknowledged the critical alert for {{child_name}}. Consider calling emergency services directly.",
		},
	}
	for i := range builtIn {
		t := builtIn[i]
		e.templates[t.ID] = &t
	}
}

// RegisterTemplate adds or replaces a template in the engine.
func (e *TemplateEngine) RegisterTemplate(t Template) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates[t.ID] = &t
}

// Render looks up a template by ID and performs {{key}} replacement using the
// supplied data map. Keys present in the template but absent from data are
// left as-is.
func (e *TemplateEngine) Render(templateID string, data map[string]string) (subject, body string, err error) {
	e.mu.RLock()
	t, ok := e.templates[templateID]
	e.mu.RUnlock()
	if !ok {
		return "", "", fmt.Errorf("template %q not found", templateID)
	}

	subject = t.Subject
	body = t.Body
	for k, v := range data {
		placeholder := "{{" + k + "}}"
		subject = strings.ReplaceAll(subject, placeholder, v)
		body = strings.ReplaceAll(body, placeholder, v)
	}
	return subject, body, nil
}

// SMSCall records a single call to SendSMS.
type SMSCall struct {
	To   string
	Body string
}

// MockSMSSender is a test double for SMSSender.
type MockSMSSender struct {
	mu         sync.Mutex
	calls      []SMSCall
	ShouldFail bool
	FailError  string
}

// SendSMS records the call and optionally returns an error.
func (m *MockSMSSender) SendSMS(_ context.Context, to, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, SMSCall{To: to, Body: body})
	if m.ShouldFail {
		return errors.New(m.FailError)
	}
	return nil
}

// Calls returns a copy of recorded SMS calls.
func (m *MockSMSSender) Calls() []SMSCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SMSCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// PushCall records a single call to SendPush.
type PushCall struct {
	To      string
	Subject string
	Body    string
}

// MockPushSender is a test double for PushSender.
type MockPushSender struct {
	mu         sync.Mutex
	calls      []PushCall
	ShouldFail bool
	FailError  string
}

// SendPush records the call and optionally returns an error.
func (m *MockPushSender) SendPush(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, PushCall{To: to, Subject: subject, Body: body})
	if m.ShouldFail {
		return errors.New(m.FailError)
	}
	return nil
}

// Calls returns a copy of recorded push calls.
func (m *MockPushSender) Calls() []PushCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PushCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// VoiceCall records a single call to PlaceCall.
type VoiceCall struct {
	To   string
	Body string
}

// MockVoiceSender is a test double for VoiceSender.
type MockVoiceSender struct {
	mu         sync.Mutex
	calls      []VoiceCall
	ShouldFail bool
	FailError  string
}

// PlaceCall records the call and optionally returns an error.
func (m *MockVoiceSender) PlaceCall(_ context.Context, to, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, VoiceCall{To: to, Body: body})
	if m.ShouldFail {
		return errors.New(m.FailError)
	}
	return nil
}

// Calls returns a copy of recorded voice calls.
func (m *MockVoiceSender) Calls() []VoiceCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]VoiceCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// Dispatcher routes alerts to the proper channel sender, assigns IDs and
// timestamps, and keeps delivery records in memory for inspection and retry.
type Dispatcher struct {
	smsSender   SMSSender
	pushSender  PushSender
	voiceSender VoiceSender
	templates   *TemplateEngine
	mu          sync.RWMutex
	alerts      map[string]*Alert
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(sms SMSSender, push PushSender, voice VoiceSender, tpl *TemplateEngine) *Dispatcher {
	return &Dispatcher{
		smsSender:   sms,
		pushSender:  push,
		voiceSender: voice,
		templates:   tpl,
		alerts:      make(map[string]*Alert),
	}
}

func (d *Dispatcher) deliver(ctx context.Context, a *Alert) error {
	switch a.Channel {
	case ChannelSMS:
		return d.smsSender.SendSMS(ctx, a.Recipient, a.Body)
	case ChannelPush:
		return d.pushSender.SendPush(ctx, a.Recipient, a.Subject, a.Body)
	case ChannelVoice:
		return d.voiceSender.PlaceCall(ctx, a.Recipient, a.Body)
	default:
		return fmt.Errorf("unsupported alert channel: %s", a.Channel)
	}
}

// Send dispatches an alert through the appropriate channel, assigns an ID and
// timestamps, and records the result in memory.
func (d *Dispatcher) Send(ctx context.Context, a *Alert) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.CreatedAt = time.Now().UTC()
	a.Status = "pending"

	sendErr := d.deliver(ctx, a)
	if sendErr != nil {
		a.Status = "failed"
		a.Error = sendErr.Error()
	} else {
		a.Status = "sent"
		sentAt := time.Now().UTC()
		a.SentAt = &sentAt
	}

	d.mu.Lock()
	d.alerts[a.ID] = a
	d.mu.Unlock()

	return sendErr
}

// SendFromTemplate renders a template and sends the resulting alert.
func (d *Dispatcher) SendFromTemplate(ctx context.Context, templateID string, data map[string]string, channel Channel, recipient string) (*Alert, error) {
	subject, body, err := d.templates.Render(templateID, data)
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	a := &Alert{
		Channel:      channel,
		Recipient:    recipient,
		Subject:      subject,
		Body:         body,
		TemplateID:   templateID,
		TemplateData: data,
	}

	if err := d.Send(ctx, a); err != nil {
		return a, err
	}
	return a, nil
}

// GetAlert retrieves a delivery record by ID.
func (d *Dispatcher) GetAlert(_ context.Context, id string) (*Alert, error) {
	d.mu.RLock()
	a, ok := d.alerts[id]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("alert %q not found", id)
	}
	return a, nil
}

// ListByRecipient returns delivery records for a given recipient, up to limit.
func (d *Dispatcher) ListByRecipient(_ context.Context, recipient string, limit int) ([]*Alert, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var result []*Alert
	for _, a := range d.alerts {
		if a.Recipient == recipient {
			result = append(result, a)
			if len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

// Retry re-sends a failed alert. Returns an error if the alert is not in
// "failed" status.
func (d *Dispatcher) Retry(ctx context.Context, id string) error {
	d.mu.RLock()
	a, ok := d.alerts[id]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("alert %q not found", id)
	}
	if a.Status != "failed" {
		return fmt.Errorf("alert %q is not in failed status (current: %s)", id, a.Status)
	}

	sendErr := d.deliver(ctx, a)

	d.mu.Lock()
	if sendErr != nil {
		a.Status = "failed"
		a.Error = sendErr.Error()
	} else {
		a.Status = "sent"
		sentAt := time.Now().UTC()
		a.SentAt = &sentAt
		a.Error = ""
	}
	d.mu.Unlock()

	return sendErr
}

// Stats returns counts of delivery records grouped by status.
func (d *Dispatcher) Stats(_ context.Context) map[string]int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	stats := make(map[string]int)
	for _, a := range d.alerts {
		stats[a.Status]++
	}
	return stats
}

// Handler exposes delivery-record operations over HTTP via Echo.
type Handler struct {
	dispatcher *Dispatcher
}

// NewHandler creates a new Handler.
func NewHandler(d *Dispatcher) *Handler {
	return &Handler{dispatcher: d}
}

// RegisterRoutes registers alert delivery routes on the given Echo group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/alerts/stats", h.HandleStats)
	g.GET("/alerts/:id", h.HandleGet)
	g.GET("/alerts", h.HandleList)
	g.POST("/alerts/:id/retry", h.HandleRetry)
}

// HandleGet handles GET /alerts/:id.
func (h *Handler) HandleGet(c echo.Context) error {
	id := c.Param("id")
	a, err := h.dispatcher.GetAlert(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, a)
}

// HandleList handles GET /alerts?recipient=...
func (h *Handler) HandleList(c echo.Context) error {
	recipient := c.QueryParam("recipient")
	if recipient == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "recipient query parameter is required"})
	}

	list, err := h.dispatcher.ListByRecipient(c.Request().Context(), recipient, 100)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, list)
}

// HandleRetry handles POST /alerts/:id/retry.
func (h *Handler) HandleRetry(c echo.Context) error {
	id := c.Param("id")
	if err := h.dispatcher.Retry(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	a, _ := h.dispatcher.GetAlert(c.Request().Context(), id)
	return c.JSON(http.StatusOK, a)
}

// HandleStats handles GET /alerts/stats.
func (h *Handler) HandleStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dispatcher.Stats(c.Request().Context()))
}
