package mailer

import (
	"errors"
	"testing"

	"intellilab-gc-be/pkg/insight"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type captureSender struct {
	sent []*gomail.Message
	err  error
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.sent = append(c.sent, m...)
	return c.err
}

func TestSendInsightAlert(t *testing.T) {
	sender := &captureSender{}
	svc := NewEmailServiceWithSender(sender, "lab@example.com", "IntelliLab GC")

	err := svc.SendInsightAlert("manager@example.com", []insight.Correlation{
		{Title: "Injector <wear>", Description: "d", Recommendation: "r"},
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"manager@example.com"}, sender.sent[0].GetHeader("To"))
	assert.Contains(t, sender.sent[0].GetHeader("Subject")[0], "1 high-priority")
}

func TestSendInsightAlertSkipsWithoutRecipientOrInsights(t *testing.T) {
	sender := &captureSender{}
	svc := NewEmailServiceWithSender(sender, "lab@example.com", "IntelliLab GC")

	require.NoError(t, svc.SendInsightAlert("", []insight.Correlation{{Title: "x"}}))
	require.NoError(t, svc.SendInsightAlert("manager@example.com", nil))
	assert.Empty(t, sender.sent)
}

func TestSendInsightAlertWrapsFailure(t *testing.T) {
	boom := errors.New("smtp down")
	svc := NewEmailServiceWithSender(&captureSender{err: boom}, "lab@example.com", "IntelliLab GC")

	err := svc.SendInsightAlert("manager@example.com", []insight.Correlation{{Title: "x"}})
	assert.ErrorIs(t, err, boom)
}

func TestRenderAlertEscapes(t *testing.T) {
	out := renderAlert([]insight.Correlation{{Title: "<b>", Description: "a&b"}})
	assert.Contains(t, out, "&lt;b&gt;")
	assert.Contains(t, out, "a&amp;b")
}
