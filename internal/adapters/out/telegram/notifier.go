// Package telegram relays domain events to the admin chat.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/order"
	"deliveryno/internal/core/domain/model/stock"
	"deliveryno/internal/core/ports"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var (
	_ ports.Notifier = (*Notifier)(nil)
	_ ports.Notifier = (*LogNotifier)(nil)
)

// Sender is the part of *tgbotapi.BotAPI the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier posts one message per event to a fixed admin chat.
type Notifier struct {
	sender Sender
	chatID int64
}

func NewNotifier(sender Sender, chatID int64) (*Notifier, error) {
	if sender == nil {
		return nil, errors.New("telegram sender is required")
	}
	if chatID == 0 {
		return nil, errors.New("telegram admin chat id is required")
	}
	return &Notifier{sender: sender, chatID: chatID}, nil
}

// SendTimeout caps every Bot API request made by NewBotNotifier.
const SendTimeout = 10 * time.Second

// NewBotNotifier connects to the Bot API with token.
func NewBotNotifier(token string, chatID int64) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: SendTimeout})
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return NewNotifier(api, chatID)
}

func (n *Notifier) Notify(ctx context.Context, event kernel.DomainEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, Format(event))
	msg.DisableWebPagePreview = true

	// Send takes no context; the caller stops waiting at its deadline and the
	// request itself is bounded by the client timeout.
	done := make(chan error, 1)
	go func() {
		_, err := n.sender.Send(msg)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("telegram send %s: %w", event.Type, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("telegram send %s: %w", event.Type, ctx.Err())
	}
}

// Format renders event as a short admin-facing text.
func Format(event kernel.DomainEvent) string {
	p := event.Payload
	id := event.AggregateID.String()

	switch event.Type {
	case order.EventOrderCreated:
		return fmt.Sprintf("🆕 New order %s\n%s x%s for %s\n%s",
			id, p["item"], p["quantity"], p["customer"], p["address"])
	case order.EventDriverAssigned:
		return fmt.Sprintf("🚚 Order %s assigned to %s (%s)", id, p["driver"], p["item"])
	case order.EventOrderStatusChanged:
		return fmt.Sprintf("🔄 Order %s: %s → %s by %s", id, p["from"], p["to"], p["actor"])
	case stock.EventDeliverySettled:
		return fmt.Sprintf("✅ Order %s settled: %s x%s", id, p["item"], p["quantity"])
	case stock.EventSettlementSkipped:
		return fmt.Sprintf("⚠️ Order %s delivered without stock settlement: %s x%s (%s)",
			id, p["item"], p["quantity"], p["reason"])
	}

	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", event.Type, id)
	for _, k := range keys {
		fmt.Fprintf(&b, "\n%s: %s", k, p[k])
	}
	return b.String()
}

// LogNotifier writes events to the log. It stands in when no bot token is
// configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "LogNotifier")}
}

func (n *LogNotifier) Notify(ctx context.Context, event kernel.DomainEvent) error {
	n.logger.InfoContext(ctx, "event",
		"type", event.Type,
		"aggregate_id", event.AggregateID.String(),
		"text", Format(event))
	return nil
}
