package core

import (
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_EmailMessage_Render(t *testing.T) {
	data := map[string]interface{}{
		"AppName":        "UpliftAI",
		"UnsubscribeURL": "http://localhost:8000/reminders/unsubscribe?token=tok123",
	}

	t.Run("reminder templates render in both languages", func(t *testing.T) {
		for _, name := range []string{"reminder_en", "reminder_es"} {
			msg := &EmailMessage{
				To:           []mail.Address{{Address: "awe@test.cd"}},
				Subject:      "reminder",
				TemplateName: name,
				TemplateData: data,
			}
			assert.NoError(t, msg.Render(), name)
			assert.Contains(t, msg.TextContent, "UpliftAI", name)
			assert.Contains(t, msg.TextContent, "token=tok123", name)
			assert.NotEmpty(t, msg.HTMLContent, name)
			assert.True(t, msg.HasRecipients())
			assert.True(t, msg.HasContent())
		}
	})

	t.Run("missing template data is an error", func(t *testing.T) {
		msg := &EmailMessage{
			TemplateName: "reminder_en",
			TemplateData: map[string]interface{}{"AppName": "UpliftAI"},
		}
		assert.Error(t, msg.Render())
	})

	t.Run("plain body bypasses templates", func(t *testing.T) {
		msg := &EmailMessage{BodyStr: "hello"}
		assert.NoError(t, msg.Render())
		assert.Equal(t, "hello", msg.TextContent)
	})
}
