// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/band-planner/models"
)

// DefaultEndpoint is the Resend send-email API
const DefaultEndpoint = "https://api.resend.com/emails"

// DefaultTimeout bounds a single background notification
const DefaultTimeout = 10 * time.Second

var ErrSendFailed = errors.New("email send failed")

// Notifier is told about every accepted response submission
type Notifier interface {
	ResponseSubmitted(ctx context.Context, poll *models.Poll, resp models.Response, updated bool) error
}

// Noop drops every notification. Used when no API key is configured.
type Noop struct{}

func (Noop) ResponseSubmitted(context.Context, *models.Poll, models.Response, bool) error {
	return nil
}

// pending tracks notifications started by Dispatch
var pending sync.WaitGroup

// Dispatch sends the notification in the background. Failures are logged.
func Dispatch(n Notifier, timeout time.Duration, poll *models.Poll, resp models.Response, updated bool) {
	if n == nil {
		return
	}
	pending.Add(1)
	go func() {
		defer pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := n.ResponseSubmitted(ctx, poll, resp, updated); err != nil {
			slog.Error("failed to send response notification",
				"poll_id", poll.ID,
				"name", resp.Name,
				"error", err,
			)
		}
	}()
}

// Wait blocks until every dispatched notification has finished or ctx is done
func Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Resend posts an HTML email through the Resend API
type Resend struct {
	APIKey    string
	From      string
	To        string
	PublicURL string
	Endpoint  string
	Client    *http.Client
}

func NewResend(apiKey, from, to, publicURL string) *Resend {
	return &Resend{
		APIKey:    apiKey,
		From:      from,
		To:        to,
		PublicURL: strings.TrimRight(publicURL, "/"),
		Endpoint:  DefaultEndpoint,
		Client:    &http.Client{Timeout: DefaultTimeout},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (n *Resend) ResponseSubmitted(ctx context.Context, poll *models.Poll, resp models.Response, updated bool) error {
	body, err := Render(poll, resp, updated, n.PublicURL)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(sendRequest{
		From:    n.From,
		To:      []string{n.To},
		Subject: Subject(poll, resp, updated),
		HTML:    body,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := n.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrSendFailed, res.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

func action(updated bool) string {
	if updated {
		return "updated their response"
	}
	return "added their response"
}

// Subject is the email subject line
func Subject(poll *models.Poll, resp models.Response, updated bool) string {
	return fmt.Sprintf("%s %s - %s", resp.Name, action(updated), poll.Title)
}

var answerLabels = map[models.Answer]string{
	models.AnswerYes:      "Yes ✓",
	models.AnswerIfNeeded: "If needed ~",
	models.AnswerNo:       "No ✗",
}

type dateRow struct {
	Date        string
	Answer      string
	Instruments string
}

type emailData struct {
	Title   string
	Name    string
	Action  string
	Upfront string
	Rows    []dateRow
	URL     string
}

var emailTemplate = template.Must(template.New("email").Parse(`<div style="background:#0f0f0f;padding:32px;font-family:sans-serif;max-width:600px">
<h2 style="color:#e8e8e8;margin-bottom:4px">{{.Title}}</h2>
<p style="color:#888;margin-bottom:24px">{{.Name}} {{.Action}}</p>
{{if .Upfront}}<p style="color:#aaa;margin:16px 0 4px">Instruments:</p><p style="color:#d4d4d4;margin:0">{{.Upfront}}</p>{{end}}
<table style="width:100%;border-collapse:collapse;margin-top:16px;background:#1a1a1a">
<thead><tr><th style="padding:10px 12px;text-align:left;color:#aaa">Date</th><th style="padding:10px 12px;text-align:left;color:#aaa">Availability</th></tr></thead>
<tbody>{{range .Rows}}<tr><td style="padding:8px 12px;color:#d4d4d4">{{.Date}}</td><td style="padding:8px 12px;color:#d4d4d4">{{.Answer}}{{if .Instruments}} ({{.Instruments}}){{end}}</td></tr>{{end}}</tbody>
</table>
{{if .URL}}<p style="margin-top:24px"><a href="{{.URL}}" style="background:#e8e8e8;color:#0f0f0f;padding:10px 20px;text-decoration:none">Open the poll</a></p>{{end}}
</div>`))

// Render builds the HTML body: one row per poll date with the answer and
// instruments, the upfront instruments, and a link to the poll's admin view.
func Render(poll *models.Poll, resp models.Response, updated bool, publicURL string) (string, error) {
	data := emailData{
		Title:   poll.Title,
		Name:    resp.Name,
		Action:  action(updated),
		Upfront: strings.Join(resp.UpfrontInstruments, ", "),
		Rows:    make([]dateRow, 0, len(poll.Dates)),
	}
	if publicURL != "" {
		data.URL = publicURL + "/poll/" + poll.ID + "?admin=true"
	}

	for _, date := range poll.Dates {
		answer := resp.Answers[date]
		label, ok := answerLabels[answer]
		if !ok {
			label = string(answer)
		}
		data.Rows = append(data.Rows, dateRow{
			Date:        date,
			Answer:      label,
			Instruments: strings.Join(resp.Instruments[date], ", "),
		})
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email: %w", err)
	}
	return buf.String(), nil
}
