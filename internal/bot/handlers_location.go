package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/uzretail/storebot/internal/geo"
	"go.uber.org/zap"
)

// handleLocation remembers the chat's coordinates and offers the store
// selection keyboard.
func (b *Bot) handleLocation(msg *tgbotapi.Message) {
	loc := geo.Coordinate{Latitude: msg.Location.Latitude, Longitude: msg.Location.Longitude}
	b.mu.Lock()
	b.locations[msg.Chat.ID] = loc
	b.mu.Unlock()

	zap.L().Debug("location received",
		zap.Int64("chat_id", msg.Chat.ID),
		zap.Float64("lat", loc.Latitude),
		zap.Float64("lon", loc.Longitude))

	b.reply(msg.Chat.ID,
		"📍 Joylashuvingiz qabul qilindi!\n\nQaysi do'konga masofani hisoblamoqchisiz?",
		storeSelectionKeyboard(b.registry.Stores()))
}

func (b *Bot) showStores(query *tgbotapi.CallbackQuery) {
	var sb strings.Builder
	sb.WriteString("🏪 *Do'konlarimiz*:\n\n")
	for i, s := range b.registry.Stores() {
		fmt.Fprintf(&sb, "%d. *%s*\n", i+1, s.Name)
		fmt.Fprintf(&sb, "   📍 %s\n", s.Address)
		fmt.Fprintf(&sb, "   🌐 %g, %g\n\n", s.Location.Latitude, s.Location.Longitude)
	}
	sb.WriteString("Joylashuvingizni yuboring va masofani hisoblang!")
	b.editTo(query, sb.String(), storeSelectionKeyboard(b.registry.Stores()))
}

// storeDistance renders the distance card for one store, or for the
// nearest store when the callback asks for it.
func (b *Bot) storeDistance(query *tgbotapi.CallbackQuery, data string) {
	b.mu.Lock()
	user, ok := b.locations[query.Message.Chat.ID]
	b.mu.Unlock()
	if !ok {
		b.editTo(query,
			"❌ Iltimos, avval joylashuvingizni yuboring!\n\n📍 tugmasini bosing yoki lokatsiya yuboring.",
			mainMenuKeyboard(b.isAdmin(query.From.ID)))
		return
	}

	var store geo.Store
	var report geo.DistanceReport
	var all map[string]geo.DistanceReport
	if data == "nearest_store" {
		key, distances, err := b.registry.Nearest(user)
		if err != nil {
			zap.L().Error("nearest store lookup failed", zap.Error(err))
			return
		}
		store, _ = b.registry.Get(key)
		report = distances[key]
		all = distances
	} else {
		s, ok := b.registry.Get(strings.TrimPrefix(data, "store_"))
		if !ok {
			zap.L().Warn("unknown store callback", zap.String("data", data))
			return
		}
		store = s
		report = geo.Distance(user, s.Location)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📍 *%s*\n\n", store.Name)
	fmt.Fprintf(&sb, "🗺️ *Manzil*: %s\n\n", store.Address)
	sb.WriteString("📏 *Masofa*:\n")
	fmt.Fprintf(&sb, "   • %.2f km\n", report.Km)
	fmt.Fprintf(&sb, "   • %.0f metr\n\n", report.Meters)
	sb.WriteString("⏱️ *Taxminiy vaqt*:\n")
	fmt.Fprintf(&sb, "   • Avtomobil bilan: %.1f daqiqa\n", report.CarMinutes)
	fmt.Fprintf(&sb, "   • Piyoda: %.1f daqiqa\n\n", report.WalkMinutes)
	sb.WriteString("🌐 *Koordinatalar*:\n")
	fmt.Fprintf(&sb, "   • Kenglik: %g\n", store.Location.Latitude)
	fmt.Fprintf(&sb, "   • Uzunlik: %g\n", store.Location.Longitude)
	if all != nil {
		sb.WriteString("\n🏪 *Barcha do'konlar*:\n")
		for _, s := range b.registry.Stores() {
			fmt.Fprintf(&sb, "   • %s: %.2f km\n", s.Name, all[s.Key].Km)
		}
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📍 Boshqa do'kon", "show_stores"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Asosiy menyu", "main_menu"),
		),
	)
	b.editTo(query, sb.String(), kb)
}
