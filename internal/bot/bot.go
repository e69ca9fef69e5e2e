// Package bot implements the Telegram transport: command dispatch,
// inline keyboard flows and admin tooling on top of the inventory and
// activity services.
package bot

import (
	"context"
	"sync"

	"github.com/asaskevich/EventBus"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"github.com/uzretail/storebot/config"
	"github.com/uzretail/storebot/internal/activity"
	"github.com/uzretail/storebot/internal/app"
	"github.com/uzretail/storebot/internal/geo"
	"github.com/uzretail/storebot/internal/ledger"
	"go.uber.org/zap"
)

// pending input states per chat
const (
	awaitNone   = ""
	awaitAdd    = "await_add"
	awaitRemove = "await_remove"
)

// Bot wraps a Telegram client and routes updates to handlers.
type Bot struct {
	api       *tgbotapi.BotAPI
	cfg       *config.AppConfig
	registry  *geo.Registry
	inventory *ledger.Service
	people    *activity.Service
	bus       EventBus.Bus
	pool      *ants.Pool

	mu        sync.Mutex
	states    map[int64]string
	locations map[int64]geo.Coordinate
}

// New creates the bot, the broadcast worker pool and the low stock
// event subscription.
func New(cfg *config.AppConfig, registry *geo.Registry, inventory *ledger.Service,
	people *activity.Service, bus EventBus.Bus) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, errors.Wrap(err, "telegram auth")
	}
	pool, err := ants.NewPool(cfg.Telegram.BroadcastMax)
	if err != nil {
		return nil, errors.Wrap(err, "broadcast pool")
	}
	b := &Bot{
		api:       api,
		cfg:       cfg,
		registry:  registry,
		inventory: inventory,
		people:    people,
		bus:       bus,
		pool:      pool,
		states:    make(map[int64]string),
		locations: make(map[int64]geo.Coordinate),
	}
	if err := bus.Subscribe(ledger.TopicInventoryChange, b.onInventoryChange); err != nil {
		return nil, errors.Wrap(err, "subscribe inventory events")
	}
	if err := bus.Subscribe(app.TopicDailySummary, b.onDailySummary); err != nil {
		return nil, errors.Wrap(err, "subscribe summary events")
	}
	zap.L().Info("telegram bot authorized", zap.String("username", api.Self.UserName))
	return b, nil
}

// Run polls for updates until the context is cancelled or the updates
// channel closes.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.Telegram.PollTimeout
	updates := b.api.GetUpdatesChan(u)
	defer b.shutdown()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("telegram bot shutting down")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// shutdown stops update delivery and releases the broadcast pool.
func (b *Bot) shutdown() {
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}
	if b.pool != nil {
		b.pool.Release()
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("update handler panic", zap.Any("panic", r))
		}
	}()
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	if msg.Location != nil {
		b.handleLocation(msg)
		return
	}
	if msg.Text != "" {
		b.handlePendingInput(ctx, msg)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)
	case "help":
		b.reply(msg.Chat.ID, helpText, mainMenuKeyboard(b.isAdmin(msg.From.ID)))
	case "cancel":
		b.clearState(msg.Chat.ID)
		b.reply(msg.Chat.ID, "❌ Amal bekor qilindi.", mainMenuKeyboard(b.isAdmin(msg.From.ID)))
	case "entry":
		b.handleCheck(ctx, msg, "entry")
	case "exit":
		b.handleCheck(ctx, msg, "exit")
	default:
		b.reply(msg.Chat.ID, "Noma'lum buyruq. /help ni bosing.", nil)
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// ack so the client stops the spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		zap.L().Warn("callback ack failed", zap.Error(err))
	}
	data := query.Data
	switch {
	case data == "main_menu":
		b.editTo(query, "🏠 *Asosiy menyu*\n\nQuyidagi tugmalardan birini tanlang:",
			mainMenuKeyboard(b.isAdmin(query.From.ID)))
	case data == "help":
		b.editTo(query, helpText, mainMenuKeyboard(b.isAdmin(query.From.ID)))
	case data == "send_location":
		b.editTo(query, "📍 Joylashuvingizni yuboring (skrepka → Location).", backKeyboard())
	case data == "show_stores":
		b.showStores(query)
	case data == "nearest_store" || hasStorePrefix(data):
		b.storeDistance(query, data)
	case data == "products_list":
		b.productsList(ctx, query)
	case data == "inventory_stats":
		b.inventoryStats(ctx, query)
	case data == "add_product":
		b.promptAdd(query)
	case data == "remove_product":
		b.promptRemove(query)
	case data == "cancel_add" || data == "cancel_remove":
		b.clearState(query.Message.Chat.ID)
		b.editTo(query, "❌ Amal bekor qilindi.", mainMenuKeyboard(b.isAdmin(query.From.ID)))
	case data == "profile":
		b.showProfile(ctx, query)
	case data == "admin_panel":
		b.adminPanel(query)
	case data == "admin_stats":
		b.adminStats(ctx, query)
	case data == "admin_users":
		b.adminUsers(ctx, query)
	case data == "admin_activities":
		b.adminActivities(ctx, query, rangeAll)
	case data == "today_activities":
		b.adminActivities(ctx, query, rangeToday)
	case data == "weekly_activities":
		b.adminActivities(ctx, query, rangeWeek)
	case data == "admin_all_products":
		b.adminAllProducts(ctx, query)
	case data == "admin_export" || data == "export_excel" || data == "export_products_excel" || data == "export_stats":
		b.exportExcel(ctx, query)
	case data == "export_activities":
		b.exportActivitiesCSV(ctx, query)
	default:
		zap.L().Debug("unhandled callback", zap.String("data", data))
	}
}

// handlePendingInput routes free text according to the chat's pending
// state. Text outside a flow is ignored.
func (b *Bot) handlePendingInput(ctx context.Context, msg *tgbotapi.Message) {
	b.mu.Lock()
	state := b.states[msg.Chat.ID]
	b.mu.Unlock()

	switch state {
	case awaitAdd:
		b.handleAddInput(ctx, msg)
	case awaitRemove:
		b.handleRemoveInput(ctx, msg)
	}
}

func (b *Bot) isAdmin(userID int64) bool {
	return userID == b.cfg.Telegram.AdminID
}

func (b *Bot) setState(chatID int64, state string) {
	b.mu.Lock()
	b.states[chatID] = state
	b.mu.Unlock()
}

func (b *Bot) clearState(chatID int64) {
	b.mu.Lock()
	delete(b.states, chatID)
	b.mu.Unlock()
}

// reply sends a markdown message, logging delivery failures.
func (b *Bot) reply(chatID int64, text string, kb interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if kb != nil {
		msg.ReplyMarkup = kb
	}
	if _, err := b.api.Send(msg); err != nil {
		zap.L().Warn("send message failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// editTo replaces the callback's message text and keyboard in place.
func (b *Bot) editTo(query *tgbotapi.CallbackQuery, text string, kb tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(query.Message.Chat.ID, query.Message.MessageID, text, kb)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(edit); err != nil {
		zap.L().Warn("edit message failed", zap.Int64("chat_id", query.Message.Chat.ID), zap.Error(err))
	}
}

func (b *Bot) sendDocument(chatID int64, name string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = caption
	_, err := b.api.Send(doc)
	return errors.Wrap(err, "send document")
}

// onDailySummary forwards the nightly inventory summary to the admin
// chat.
func (b *Bot) onDailySummary(text string) {
	if b.cfg.Telegram.AdminID == 0 {
		return
	}
	b.reply(b.cfg.Telegram.AdminID, text, nil)
}

// onInventoryChange pushes a low stock warning to the admin chat.
func (b *Bot) onInventoryChange(ev ledger.ChangeEvent) {
	if !ev.LowStock || b.cfg.Telegram.AdminID == 0 {
		return
	}
	text := "⚠️ *Kam qoldiq ogohlantirishi*\n\n" +
		"📦 " + ev.Product.Name + "\n" +
		"🔢 Qoldiq: " + formatInt(ev.Product.Quantity) + " dona"
	b.reply(b.cfg.Telegram.AdminID, text, nil)
}

func hasStorePrefix(data string) bool {
	return len(data) > len("store_") && data[:len("store_")] == "store_"
}
