package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"drawer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestChatService(t *testing.T, llm Generator) (*ChatService, *fakeDocStore, *fakeNoteStore, *fakeChatStore) {
	t.Helper()
	docs := &fakeDocStore{}
	notes := &fakeNoteStore{}
	messages := &fakeChatStore{}
	docSvc := NewDocumentService(docs, llm, t.TempDir(), zap.NewNop())
	svc := NewChatService(docSvc, docs, notes, messages, llm, zap.NewNop())
	return svc, docs, notes, messages
}

func TestChatSend_RequiresMessageOrFile(t *testing.T) {
	svc, _, _, _ := newTestChatService(t, &stubGenerator{})

	_, err := svc.Send(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestChatSend_PlainAnswer(t *testing.T) {
	llm := &stubGenerator{response: "You spent $12.45 at Starbucks."}
	svc, _, _, messages := newTestChatService(t, llm)

	resp, err := svc.Send(context.Background(), "How much did I spend at Starbucks?", nil)
	require.NoError(t, err)

	require.NotNil(t, resp.AssistantMessage)
	assert.Equal(t, "You spent $12.45 at Starbucks.", resp.AssistantMessage.Content)
	assert.Nil(t, resp.Document)
	assert.Nil(t, resp.Note)

	require.Len(t, messages.messages, 2)
	assert.Equal(t, models.RoleUser, messages.messages[0].Role)
	assert.Equal(t, "How much did I spend at Starbucks?", messages.messages[0].Content)
	assert.Equal(t, models.RoleAssistant, messages.messages[1].Role)

	assert.Contains(t, llm.lastPrompt, "You are Drawer")
	assert.True(t, strings.HasSuffix(llm.lastPrompt, "User: How much did I spend at Starbucks?"))
}

func TestChatSend_EmptyModelResponse(t *testing.T) {
	svc, _, _, _ := newTestChatService(t, &stubGenerator{response: ""})

	resp, err := svc.Send(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "I couldn't process that request. Please try again.", resp.AssistantMessage.Content)
}

func TestChatSend_ModelError(t *testing.T) {
	svc, _, _, messages := newTestChatService(t, &stubGenerator{err: errors.New("upstream timeout")})

	_, err := svc.Send(context.Background(), "hello", nil)
	assert.Error(t, err)

	// The user message is already persisted before the model call.
	require.Len(t, messages.messages, 1)
	assert.Equal(t, models.RoleUser, messages.messages[0].Role)
}

func TestChatSend_CreateNoteAction(t *testing.T) {
	llm := &stubGenerator{
		response: `{"action":"create_note","content":"Buy milk","reminder_date":"2026-03-01","reminder_time":"08:00"}`,
	}
	svc, _, notes, _ := newTestChatService(t, llm)

	resp, err := svc.Send(context.Background(), "remind me to buy milk", nil)
	require.NoError(t, err)

	require.NotNil(t, resp.Note)
	assert.Equal(t, "Buy milk", resp.Note.Content)
	require.NotNil(t, resp.Note.ReminderDate)
	assert.Equal(t, "2026-03-01", *resp.Note.ReminderDate)
	require.Len(t, notes.notes, 1)

	content := resp.AssistantMessage.Content
	assert.Contains(t, content, `"Buy milk"`)
	assert.Contains(t, content, "⏰ Reminder set for 2026-03-01 at 08:00.")
	assertHasOpener(t, content, noteOpeners)
}

func TestChatSend_NoteActionWithoutReminder(t *testing.T) {
	llm := &stubGenerator{
		response: `{"action":"create_note","content":"Buy milk","reminder_date":null,"reminder_time":null}`,
	}
	svc, _, _, _ := newTestChatService(t, llm)

	resp, err := svc.Send(context.Background(), "note: buy milk", nil)
	require.NoError(t, err)

	require.NotNil(t, resp.Note)
	assert.Nil(t, resp.Note.ReminderDate)
	assert.NotContains(t, resp.AssistantMessage.Content, "⏰")
}

func TestChatSend_NoteActionEmptyContentFallsBackToMessage(t *testing.T) {
	llm := &stubGenerator{
		response: `{"action":"create_note","content":"","reminder_date":null,"reminder_time":null}`,
	}
	svc, _, _, _ := newTestChatService(t, llm)

	resp, err := svc.Send(context.Background(), "remember this", nil)
	require.NoError(t, err)

	require.NotNil(t, resp.Note)
	assert.Equal(t, "remember this", resp.Note.Content)
}

func TestChatSend_MalformedNoteActionReturnsLiteralText(t *testing.T) {
	raw := `{"action": "create_note", "content": }`
	svc, _, notes, _ := newTestChatService(t, &stubGenerator{response: raw})

	resp, err := svc.Send(context.Background(), "remind me", nil)
	require.NoError(t, err)

	assert.Nil(t, resp.Note)
	assert.Empty(t, notes.notes)
	assert.Equal(t, raw, resp.AssistantMessage.Content)
}

func TestChatSend_NoteStoreFailureReturnsLiteralText(t *testing.T) {
	raw := `{"action":"create_note","content":"Buy milk","reminder_date":null,"reminder_time":null}`
	llm := &stubGenerator{response: raw}
	svc, _, notes, _ := newTestChatService(t, llm)
	notes.createErr = errors.New("db down")

	resp, err := svc.Send(context.Background(), "remind me", nil)
	require.NoError(t, err)

	assert.Nil(t, resp.Note)
	assert.Equal(t, raw, resp.AssistantMessage.Content)
}

func TestChatSend_WithFile(t *testing.T) {
	llm := &stubGenerator{
		response: `{"merchant":"Walmart","amount":47.53,"category":"Finance","transaction_type":"expense",` +
			`"date":"2025-01-15","due_date":null,"summary":"Groceries.","raw_text":"WALMART..."}`,
	}
	svc, docs, _, messages := newTestChatService(t, llm)

	resp, err := svc.Send(context.Background(), "", &UploadFile{
		Reader:   strings.NewReader("%PDF-1.4 fake"),
		Filename: "receipt.pdf",
		MIMEType: "application/pdf",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Document)
	assert.Equal(t, "Walmart", resp.Document.Merchant)
	require.Len(t, docs.docs, 1)

	require.Len(t, messages.messages, 2)
	userMsg := messages.messages[0]
	assert.Equal(t, "Uploaded: receipt.pdf", userMsg.Content)
	require.NotNil(t, userMsg.AttachmentURL)
	assert.True(t, strings.HasPrefix(*userMsg.AttachmentURL, "/uploads/"))

	content := resp.AssistantMessage.Content
	assertHasOpener(t, content, uploadOpeners)
	assert.Contains(t, content, "**Walmart** | Finance | EXPENSE")
	assert.Contains(t, content, "Amount: **$47.53**")
	assert.Contains(t, content, "Groceries.")
	assert.Contains(t, content, "All details stored and searchable.")
}

func TestChatSend_FileRecordOmitsAmount(t *testing.T) {
	llm := &stubGenerator{
		response: `{"merchant":"Acme Corp","amount":0,"category":"Finance","transaction_type":"record",` +
			`"date":"2024-12-31","due_date":null,"summary":"W-2 statement.","raw_text":"Form W-2..."}`,
	}
	svc, _, _, _ := newTestChatService(t, llm)

	resp, err := svc.Send(context.Background(), "", &UploadFile{
		Reader:   strings.NewReader("fake"),
		Filename: "w2.pdf",
		MIMEType: "application/pdf",
	})
	require.NoError(t, err)

	assert.Contains(t, resp.AssistantMessage.Content, "**Acme Corp** | Finance | RECORD")
	assert.NotContains(t, resp.AssistantMessage.Content, "Amount:")
}

func TestChatSend_FileExtractionFailure(t *testing.T) {
	svc, docs, _, messages := newTestChatService(t, &stubGenerator{response: "unreadable scan, sorry"})

	resp, err := svc.Send(context.Background(), "", &UploadFile{
		Reader:   strings.NewReader("fake"),
		Filename: "blurry.png",
		MIMEType: "image/png",
	})
	require.NoError(t, err)

	assert.Nil(t, resp.Document)
	assert.Empty(t, docs.docs)
	assert.Contains(t, resp.AssistantMessage.Content, "I had trouble processing that file:")
	assert.Contains(t, resp.AssistantMessage.Content, "You can try uploading a clearer image or PDF.")

	// Both turns are persisted even when extraction fails.
	require.Len(t, messages.messages, 2)
}

func TestGhost(t *testing.T) {
	svc, _, _, messages := newTestChatService(t, &stubGenerator{})

	msg, err := svc.Ghost(context.Background(), "Alice")
	require.NoError(t, err)

	assert.Equal(t, models.RoleAssistant, msg.Role)
	assert.Contains(t, ghostScenarios("Alice"), msg.Content)
	require.Len(t, messages.messages, 1)
}

func TestGhost_AvoidsImmediateRepeat(t *testing.T) {
	svc, _, _, _ := newTestChatService(t, &stubGenerator{})

	prev, err := svc.Ghost(context.Background(), "")
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		msg, err := svc.Ghost(context.Background(), "")
		require.NoError(t, err)
		assert.NotEqual(t, prev.Content, msg.Content)
		prev = msg
	}
}

func TestGhost_DefaultName(t *testing.T) {
	svc, _, _, _ := newTestChatService(t, &stubGenerator{})

	// Drain enough picks to observe a personalized scenario.
	seen := false
	for i := 0; i < 60 && !seen; i++ {
		msg, err := svc.Ghost(context.Background(), "")
		require.NoError(t, err)
		if strings.Contains(msg.Content, "User") {
			seen = true
		}
	}
	assert.True(t, seen, "expected a personalized scenario with the default name")
}

func assertHasOpener(t *testing.T, content string, openers []string) {
	t.Helper()
	for _, opener := range openers {
		if strings.HasPrefix(content, opener) {
			return
		}
	}
	t.Errorf("content does not start with a known opener: %q", content)
}
