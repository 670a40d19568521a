package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BTreeMap/SehatSahara/internal/models"
	"github.com/BTreeMap/SehatSahara/internal/store"
)

// Processor runs one conversational turn. *assistant.Engine satisfies it.
type Processor interface {
	Process(ctx context.Context, utterance, userID string) models.ResponseContract
}

// ResponseHandler feeds inbound channel messages to the dialogue engine and
// sends the reply back through the same channel.
type ResponseHandler struct {
	processor  Processor
	msgService Service
	dedup      store.DedupRepo // optional
}

// HandlerOption configures a ResponseHandler.
type HandlerOption func(*ResponseHandler)

// WithDedup drops messages whose provider ID was already recorded.
func WithDedup(repo store.DedupRepo) HandlerOption {
	return func(h *ResponseHandler) {
		h.dedup = repo
	}
}

// NewResponseHandler creates a ResponseHandler for msgService.
func NewResponseHandler(processor Processor, msgService Service, opts ...HandlerOption) *ResponseHandler {
	h := &ResponseHandler{processor: processor, msgService: msgService}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Start consumes msgService.Responses until ctx is done or the channel closes.
func (h *ResponseHandler) Start(ctx context.Context) error {
	responses := h.msgService.Responses()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case resp, ok := <-responses:
			if !ok {
				slog.Info("ResponseHandler responses channel closed")
				return nil
			}
			if err := h.ProcessResponse(ctx, resp); err != nil {
				slog.Error("ResponseHandler ProcessResponse failed", "error", err, "from", resp.From)
			}
		}
	}
}

// ProcessResponse handles one inbound message. The canonical phone number is
// the conversation's user ID.
func (h *ResponseHandler) ProcessResponse(ctx context.Context, resp models.Response) error {
	userID, err := h.msgService.ValidateAndCanonicalizeRecipient(resp.From)
	if err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}
	if strings.TrimSpace(resp.Body) == "" {
		slog.Debug("ResponseHandler ignoring empty message", "from", userID)
		return nil
	}

	if h.dedup != nil && resp.ID != "" {
		fresh, err := h.dedup.RecordInbound(ctx, resp.ID, userID)
		if err != nil {
			return fmt.Errorf("failed to record inbound message: %w", err)
		}
		if !fresh {
			slog.Info("ResponseHandler skipping duplicate message", "id", resp.ID, "from", userID)
			return nil
		}
	}

	contract := h.processor.Process(ctx, resp.Body, userID)
	if err := h.msgService.SendMessage(ctx, userID, FormatReply(contract)); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}

	if h.dedup != nil && resp.ID != "" {
		if err := h.dedup.MarkProcessed(ctx, resp.ID); err != nil {
			slog.Warn("ResponseHandler MarkProcessed failed", "error", err, "id", resp.ID)
		}
	}
	slog.Debug("ResponseHandler reply sent", "to", userID, "action", contract.Action)
	return nil
}

// FormatReply renders a contract as chat text: the response followed by the
// button labels as a numbered list.
func FormatReply(c models.ResponseContract) string {
	if len(c.InteractiveButtons) == 0 {
		return c.Response
	}
	var b strings.Builder
	b.WriteString(c.Response)
	b.WriteString("\n")
	for i, btn := range c.InteractiveButtons {
		fmt.Fprintf(&b, "\n%d. %s", i+1, btn.Text)
	}
	return b.String()
}
