package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"sync"
	"time"

	"drawer/internal/dto"
	"drawer/internal/models"

	"go.uber.org/zap"
)

var ErrEmptyMessage = errors.New("please provide a message or file")

// noteActionRe detects an embedded create_note action object in the model's
// free-text response.
var noteActionRe = regexp.MustCompile(`\{[\s\S]*?"action"\s*:\s*"create_note"[\s\S]*?\}`)

type noteAction struct {
	Action       string  `json:"action"`
	Content      string  `json:"content"`
	ReminderDate *string `json:"reminder_date"`
	ReminderTime *string `json:"reminder_time"`
}

var uploadOpeners = []string{
	"📥 Got it! I've filed that away safely.",
	"✅ All stored! Your data warehouse just got richer.",
	"💾 Saved and indexed. Ask me anything about it anytime!",
	"🎉 Done! Another document safely in your vault.",
	"📂 Filed and ready! I've extracted all the details.",
	"🚀 Boom, processed! Everything's stored and searchable.",
	"🧠 Smart filing complete! I've got all the key details.",
	"📋 Logged and loaded! Your personal warehouse grows.",
	"🌟 Perfect! That's been scanned, extracted, and stored.",
	"🔍 All captured! Every detail is now searchable.",
}

var noteOpeners = []string{
	"📝 Note saved! I'll keep track of it for you.",
	"✅ Got it! Your note is safely stored.",
	"📌 Pinned! That's in your notes now.",
	"🧠 Noted! I'll remember that for you.",
	"📋 Written down and ready whenever you need it.",
	"🌟 Done! Your note is tucked away safely.",
	"✍️ Jotted down! You can find it in your files.",
	"🎉 Saved! One less thing to remember on your own.",
}

// ghostPicker holds the last simulated-event choice so the same message is
// not served twice in a row. Repeat avoidance is a UX nicety, not a
// correctness property, and may be relaxed under concurrency.
type ghostPicker struct {
	mu   sync.Mutex
	last int
}

func (g *ghostPicker) pick(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	index := rand.IntN(n)
	if n > 1 {
		for index == g.last {
			index = rand.IntN(n)
		}
	}
	g.last = index
	return index
}

type ChatService struct {
	docService *DocumentService
	docs       DocumentStore
	notes      NoteStore
	messages   ChatStore
	llm        Generator
	ghost      ghostPicker
	logger     *zap.Logger
}

func NewChatService(
	docService *DocumentService,
	docs DocumentStore,
	notes NoteStore,
	messages ChatStore,
	llm Generator,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		docService: docService,
		docs:       docs,
		notes:      notes,
		messages:   messages,
		llm:        llm,
		ghost:      ghostPicker{last: -1},
		logger:     logger,
	}
}

func (s *ChatService) Messages(ctx context.Context) ([]*models.ChatMessage, error) {
	return s.messages.List(ctx)
}

func (s *ChatService) ClearMessages(ctx context.Context) error {
	return s.messages.Clear(ctx)
}

// Send logs the user message, routes it and logs the assistant reply. A
// message with a file never consults the conversational model: the file runs
// through the extraction pipeline and the reply is a templated confirmation,
// or a user-facing error string when extraction fails.
func (s *ChatService) Send(ctx context.Context, message string, file *UploadFile) (*dto.SendMessageResponse, error) {
	if message == "" && file == nil {
		return nil, ErrEmptyMessage
	}

	if file != nil {
		return s.sendWithFile(ctx, message, file)
	}

	if _, err := s.messages.Create(ctx, &models.ChatMessage{
		Role:    models.RoleUser,
		Content: message,
	}); err != nil {
		return nil, fmt.Errorf("failed to store user message: %w", err)
	}

	responseText, createdNote, err := s.answer(ctx, message)
	if err != nil {
		return nil, err
	}

	assistantMsg, err := s.messages.Create(ctx, &models.ChatMessage{
		Role:    models.RoleAssistant,
		Content: responseText,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store assistant message: %w", err)
	}

	return &dto.SendMessageResponse{
		AssistantMessage: assistantMsg,
		Note:             createdNote,
	}, nil
}

func (s *ChatService) sendWithFile(ctx context.Context, message string, file *UploadFile) (*dto.SendMessageResponse, error) {
	stored, err := s.docService.SaveUpload(file)
	if err != nil {
		return nil, err
	}

	userContent := message
	if userContent == "" {
		userContent = "Uploaded: " + file.Filename
	}
	if _, err := s.messages.Create(ctx, &models.ChatMessage{
		Role:          models.RoleUser,
		Content:       userContent,
		AttachmentURL: &stored.URL,
	}); err != nil {
		return nil, fmt.Errorf("failed to store user message: %w", err)
	}

	var responseText string
	var createdDoc *models.Document
	doc, err := s.docService.IngestStored(ctx, stored, file.MIMEType)
	if err != nil {
		s.logger.Warn("Chat file ingest failed", zap.Error(err))
		responseText = fmt.Sprintf("I had trouble processing that file: %s. You can try uploading a clearer image or PDF.", err.Error())
	} else {
		createdDoc = doc
		responseText = s.uploadConfirmation(doc)
	}

	assistantMsg, err := s.messages.Create(ctx, &models.ChatMessage{
		Role:    models.RoleAssistant,
		Content: responseText,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store assistant message: %w", err)
	}

	return &dto.SendMessageResponse{
		AssistantMessage: assistantMsg,
		Document:         createdDoc,
	}, nil
}

// answer runs the conversational model over the RAG context and classifies
// the response: either an embedded create_note action, or plain text returned
// verbatim. Markdown download links in the text are left untouched.
func (s *ChatService) answer(ctx context.Context, message string) (string, *models.Note, error) {
	docs, err := s.docs.List(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load documents: %w", err)
	}
	notes, err := s.notes.List(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load notes: %w", err)
	}

	prompt := BuildRAGContext(docs, notes, time.Now().UTC()) + chatInstructions + message

	responseText, err := s.llm.Generate(ctx, prompt, nil)
	if err != nil {
		return "", nil, err
	}
	if responseText == "" {
		responseText = "I couldn't process that request. Please try again."
	}

	match := noteActionRe.FindString(responseText)
	if match == "" {
		return responseText, nil, nil
	}

	var action noteAction
	if err := json.Unmarshal([]byte(match), &action); err != nil {
		// Tolerated: fall back to the literal text.
		s.logger.Warn("Note action parse failed", zap.Error(err))
		return responseText, nil, nil
	}

	content := action.Content
	if content == "" {
		content = message
	}
	note, err := s.notes.Create(ctx, &models.Note{
		Content:      content,
		ReminderDate: emptyToNil(action.ReminderDate),
		ReminderTime: emptyToNil(action.ReminderTime),
	})
	if err != nil {
		s.logger.Warn("Failed to create note from chat action", zap.Error(err))
		return responseText, nil, nil
	}

	return s.noteConfirmation(note), note, nil
}

func (s *ChatService) uploadConfirmation(doc *models.Document) string {
	var b strings.Builder
	b.WriteString(uploadOpeners[rand.IntN(len(uploadOpeners))])
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "**%s** | %s | %s\n", doc.Merchant, doc.Category, strings.ToUpper(string(doc.TransactionType)))
	if doc.TransactionType != models.TransactionRecord {
		fmt.Fprintf(&b, "Amount: **$%s**\n", doc.Amount.StringFixed(2))
	}
	fmt.Fprintf(&b, "\n%s\n\n%s", doc.Summary, doc.Insight)
	if doc.RawText != nil && *doc.RawText != "" {
		b.WriteString("\n\nAll details stored and searchable. Ask me anything about this document!")
	}
	return b.String()
}

func (s *ChatService) noteConfirmation(note *models.Note) string {
	var b strings.Builder
	b.WriteString(noteOpeners[rand.IntN(len(noteOpeners))])
	fmt.Fprintf(&b, "\n\n\"%s\"", note.Content)
	if note.ReminderDate != nil {
		fmt.Fprintf(&b, "\n\n⏰ Reminder set for %s", *note.ReminderDate)
		if note.ReminderTime != nil {
			fmt.Fprintf(&b, " at %s", *note.ReminderTime)
		}
		b.WriteString(".")
	}
	return b.String()
}

// Ghost appends a simulated assistant event to the conversation.
func (s *ChatService) Ghost(ctx context.Context, name string) (*models.ChatMessage, error) {
	if name == "" {
		name = "User"
	}
	scenarios := ghostScenarios(name)
	index := s.ghost.pick(len(scenarios))

	return s.messages.Create(ctx, &models.ChatMessage{
		Role:    models.RoleAssistant,
		Content: scenarios[index],
	})
}

func ghostScenarios(name string) []string {
	return []string{
		fmt.Sprintf("💰 Good news, %s! A deposit of $4,500 from Sifra Inc. just hit your account. Labeled as: Developer Salary. Added to Income.", name),
		fmt.Sprintf("✈️ Urgent: %s, I noticed your Passport expires in Aug 2026. You should renew it now if you plan to travel.", name),
		fmt.Sprintf("🏥 Follow-up: %s, based on your last Lab Results from Dr. House, you need to schedule a check-up next week. Vitamin D is low.", name),
		"📈 Insight: Your spending on Dining Out is down 12% compared to last month. Great job sticking to the budget!",
		"🔔 Reminder: Your Adobe Creative Cloud subscription renewal ($54.99) is coming up on March 2nd.",
		"🛡️ Security: I flagged a duplicate charge of $12.50 from Uber. No action needed, just keeping it in your records.",
		"💰 Savings: You have reached 80% of your savings goal for the \"Europe Trip\" fund.",
		"📄 Tax Watch: That last Amazon purchase was categorized as \"Office Supplies\". Added to your potential tax deductions.",
		"📉 Trend: You have spent $0 on Rideshare apps this week. That is a personal record!",
		"💳 Card Alert: Your credit utilization on the Chase Sapphire card is currently at 28%. Recommended to keep it under 30%.",
		"🔄 Subscription: Detected a price increase in your internet bill from Comcast (+$5.00/mo).",
		"📊 Report: Your Weekly Financial Digest is ready in the Files tab.",
		"⚡ Utility: Electricity usage projected to be lower this month based on current trends.",
		"🎓 Loan: Student loan payment of $250.00 processed successfully.",
		"💼 Income: Freelance payment of $800.00 from Upwork has been cleared.",
	}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
