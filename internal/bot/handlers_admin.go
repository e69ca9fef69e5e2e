package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/uzretail/storebot/internal/activity"
	"github.com/uzretail/storebot/internal/app"
	"github.com/uzretail/storebot/internal/domain"
	"github.com/uzretail/storebot/internal/report"
	"go.uber.org/zap"
)

type activityRange int

const (
	rangeAll activityRange = iota
	rangeToday
	rangeWeek
)

const rosterLimit = 20

func (b *Bot) adminPanel(query *tgbotapi.CallbackQuery) {
	if !b.isAdmin(query.From.ID) {
		b.editTo(query, "❌ Sizga ruxsat yo'q!", mainMenuKeyboard(false))
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, `🛡️ *ADMIN PANEL*

👤 *Admin*: %s
🆔 *ID*: %d
📅 *Sana*: %s
`,
		strings.TrimSpace(query.From.FirstName+" "+query.From.LastName),
		query.From.ID,
		time.Now().Format("2006-01-02 15:04:05"))
	if snap := app.CurrentSnapshot(); !snap.SampledAt.IsZero() {
		fmt.Fprintf(&sb, "🖥️ *Server*: CPU %.1f%% | RAM %.1f%% (%d MB)\n",
			snap.CPUPercent, snap.MemPercent, snap.MemUsedMB)
	}
	sb.WriteString("\nQuyidagi funksiyalardan foydalanishingiz mumkin:")
	b.editTo(query, sb.String(), adminKeyboard())
}

func (b *Bot) adminStats(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if !b.isAdmin(query.From.ID) {
		b.editTo(query, "❌ Ruxsat yo'q!", mainMenuKeyboard(false))
		return
	}
	st, err := b.inventory.Stats(ctx)
	if err != nil {
		zap.L().Error("admin stats failed", zap.Error(err))
		return
	}
	products, _ := b.inventory.ListProducts(ctx)
	users, _ := b.people.CountUsers(ctx)
	total, _ := b.people.CountActivities(ctx)
	today, err := b.people.DayStats(ctx, time.Now())
	if err != nil {
		zap.L().Error("day stats failed", zap.Error(err))
	}

	var sb strings.Builder
	sb.WriteString("📊 *UMUMIY STATISTIKA*\n\n")
	fmt.Fprintf(&sb, "👥 *Foydalanuvchilar*: %d ta\n", users)
	fmt.Fprintf(&sb, "📦 *Mahsulot turlari*: %d ta\n", st.ProductCount)
	fmt.Fprintf(&sb, "🔢 *Jami mahsulotlar*: %s dona\n", formatInt(st.TotalUnits))
	fmt.Fprintf(&sb, "💰 *Jami qiymat*: %s so'm\n", formatMoney(st.TotalValue))
	fmt.Fprintf(&sb, "📈 *Harakatlar*: %d ta\n", total)
	fmt.Fprintf(&sb, "📅 *Bugungi kirishlar*: %d ta\n", today.Entries)

	if len(products) > 0 {
		categories := map[string]int{}
		var order []string
		for _, p := range products {
			cat := p.Category
			if cat == "" {
				cat = "Noma'lum"
			}
			if _, seen := categories[cat]; !seen {
				order = append(order, cat)
			}
			categories[cat]++
		}
		sb.WriteString("\n📂 *Kategoriyalar*:\n")
		for _, cat := range order {
			fmt.Fprintf(&sb, "   • %s: %d ta mahsulot\n", cat, categories[cat])
		}

		q := report.SummarizeQuantities(products)
		sb.WriteString("\n📐 *Miqdor taqsimoti*:\n")
		fmt.Fprintf(&sb, "   • Min: %.0f | Max: %.0f\n", q.Min, q.Max)
		fmt.Fprintf(&sb, "   • O'rtacha: %.1f | Mediana: %.1f\n", q.Mean, q.Median)
	} else {
		sb.WriteString("\n⚠️ Mahsulotlar mavjud emas")
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📤 Excel eksport", "export_excel"),
			tgbotapi.NewInlineKeyboardButtonData("📄 CSV faoliyat", "export_activities"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Admin panel", "admin_panel"),
		),
	)
	b.editTo(query, sb.String(), kb)
}

func (b *Bot) adminUsers(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if !b.isAdmin(query.From.ID) {
		b.editTo(query, "❌ Ruxsat yo'q!", mainMenuKeyboard(false))
		return
	}
	users, err := b.people.ListUsers(ctx)
	if err != nil {
		zap.L().Error("list users failed", zap.Error(err))
		return
	}
	if len(users) == 0 {
		b.editTo(query, "👥 Foydalanuvchilar topilmadi", adminKeyboard())
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "👥 *FOYDALANUVCHILAR RO'YXATI*\n\nJami: %d ta foydalanuvchi\n\n📋 *Ro'yxat*:\n", len(users))
	shown := users
	if len(shown) > rosterLimit {
		shown = shown[:rosterLimit]
	}
	for i, u := range shown {
		fmt.Fprintf(&sb, "\n%d. *ID*: %d\n", i+1, u.TelegramID)
		fmt.Fprintf(&sb, "   👤 *Ism*: %s\n", orUnknown(u.FullName))
		fmt.Fprintf(&sb, "   📞 *Tel*: %s\n", orUnknown(u.Phone))
		fmt.Fprintf(&sb, "   🛡️ *Rol*: %s\n", u.Role)
		fmt.Fprintf(&sb, "   📅 *Qo'shilgan*: %s\n", u.CreatedAt.Format("2006-01-02"))
	}
	if len(users) > rosterLimit {
		fmt.Fprintf(&sb, "\n... va yana %d ta foydalanuvchi", len(users)-rosterLimit)
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Yangilash", "admin_users"),
			tgbotapi.NewInlineKeyboardButtonData("🔙 Admin panel", "admin_panel"),
		),
	)
	b.editTo(query, sb.String(), kb)
}

func (b *Bot) adminActivities(ctx context.Context, query *tgbotapi.CallbackQuery, r activityRange) {
	if !b.isAdmin(query.From.ID) {
		b.editTo(query, "❌ Ruxsat yo'q!", mainMenuKeyboard(false))
		return
	}
	f := activity.Filter{Limit: 50}
	now := time.Now()
	title := "KIRISH/CHIQISHLAR TARIXI"
	switch r {
	case rangeToday:
		f.From = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		title = "BUGUNGI HARAKATLAR"
	case rangeWeek:
		f.From = now.AddDate(0, 0, -7)
		title = "HAFTALIK HARAKATLAR"
	}
	acts, err := b.people.Activities(ctx, f)
	if err != nil {
		zap.L().Error("list activities failed", zap.Error(err))
		return
	}
	if len(acts) == 0 {
		b.editTo(query, "📊 Harakatlar tarixi topilmadi", adminKeyboard())
		return
	}
	users, _ := b.people.ListUsers(ctx)
	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.TelegramID] = u.FullName
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 *%s*\n\nOxirgi %d ta harakat:\n", title, len(acts))
	for i, a := range acts {
		action := "Kirish"
		if a.Action == domain.ActionExit {
			action = "Chiqish"
		}
		storeName := a.StoreKey
		if s, ok := b.registry.Get(a.StoreKey); ok {
			storeName = s.Name
		}
		fmt.Fprintf(&sb, "\n%d. *%s*\n", i+1, orUnknown(names[a.UserID]))
		fmt.Fprintf(&sb, "   📞 %s | 🏪 %s\n", orUnknown(a.Phone), storeName)
		fmt.Fprintf(&sb, "   📍 %s | 🕐 %s\n", action, a.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	today, err := b.people.DayStats(ctx, now)
	if err == nil {
		fmt.Fprintf(&sb, "\n📅 *Bugungi statistika (%s)*:\n", now.Format("2006-01-02"))
		fmt.Fprintf(&sb, "   • Jami harakatlar: %d\n", today.Total)
		fmt.Fprintf(&sb, "   • Kirishlar: %d\n", today.Entries)
		fmt.Fprintf(&sb, "   • Chiqishlar: %d\n", today.Exits)
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Bugungi", "today_activities"),
			tgbotapi.NewInlineKeyboardButtonData("📊 Haftalik", "weekly_activities"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📤 Eksport", "export_activities"),
			tgbotapi.NewInlineKeyboardButtonData("🔙 Admin panel", "admin_panel"),
		),
	)
	b.editTo(query, sb.String(), kb)
}

func (b *Bot) adminAllProducts(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if !b.isAdmin(query.From.ID) {
		b.editTo(query, "❌ Ruxsat yo'q!", mainMenuKeyboard(false))
		return
	}
	products, err := b.inventory.ListProducts(ctx)
	if err != nil {
		zap.L().Error("list products failed", zap.Error(err))
		return
	}
	if len(products) == 0 {
		b.editTo(query, "📦 Mahsulotlar topilmadi", adminKeyboard())
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📦 *BARCHA MAHSULOTLAR*\n\nJami: %d ta mahsulot turi\n\n📋 *To'liq ro'yxat*:\n", len(products))
	var totalQty int64
	var totalValue float64
	for i, p := range products {
		value := float64(p.Quantity) * p.Price
		totalQty += p.Quantity
		totalValue += value
		fmt.Fprintf(&sb, "\n%d. *%s*\n", i+1, p.Name)
		fmt.Fprintf(&sb, "   🔢 Miqdor: %s dona\n", formatInt(p.Quantity))
		fmt.Fprintf(&sb, "   💰 Narx: %s so'm\n", formatMoney(p.Price))
		fmt.Fprintf(&sb, "   💵 Qiymat: %s so'm\n", formatMoney(value))
		if p.Category != "" {
			fmt.Fprintf(&sb, "   📂 Kategoriya: %s\n", p.Category)
		}
		fmt.Fprintf(&sb, "   🆔 ID: %d\n", p.ID)
		fmt.Fprintf(&sb, "   📅 Yangilangan: %s\n", p.UpdatedAt.Format("2006-01-02"))
	}
	sb.WriteString("\n💰 *UMUMIY HISOB*:\n")
	fmt.Fprintf(&sb, "   • Jami dona: %s dona\n", formatInt(totalQty))
	fmt.Fprintf(&sb, "   • Jami qiymat: %s so'm\n", formatMoney(totalValue))

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📤 Excel eksport", "export_products_excel"),
			tgbotapi.NewInlineKeyboardButtonData("🔙 Admin panel", "admin_panel"),
		),
	)
	b.editTo(query, sb.String(), kb)
}

func (b *Bot) exportExcel(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if !b.isAdmin(query.From.ID) {
		return
	}
	products, err := b.inventory.ListProducts(ctx)
	if err != nil {
		zap.L().Error("export list products failed", zap.Error(err))
		return
	}
	st, err := b.inventory.Stats(ctx)
	if err != nil {
		zap.L().Error("export stats failed", zap.Error(err))
		return
	}
	data, err := report.ProductsWorkbook(products, st)
	if err != nil {
		zap.L().Error("build workbook failed", zap.Error(err))
		b.editTo(query, "❌ Eksportda xatolik yuz berdi!", adminBackKeyboard())
		return
	}
	name := report.WorkbookFilename(time.Now())
	if err := b.sendDocument(query.From.ID, name, data, "📊 Ombor hisobotining Excel fayli"); err != nil {
		zap.L().Error("send workbook failed", zap.Error(err))
		return
	}
	b.editTo(query, "✅ Excel fayl yuborildi!", adminBackKeyboard())
}

func (b *Bot) exportActivitiesCSV(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if !b.isAdmin(query.From.ID) {
		return
	}
	acts, err := b.people.Activities(ctx, activity.Filter{})
	if err != nil {
		zap.L().Error("export list activities failed", zap.Error(err))
		return
	}
	users, err := b.people.ListUsers(ctx)
	if err != nil {
		zap.L().Error("export list users failed", zap.Error(err))
		return
	}
	data, err := report.ActivitiesCSV(acts, users)
	if err != nil {
		zap.L().Error("build csv failed", zap.Error(err))
		b.editTo(query, "❌ Eksportda xatolik yuz berdi!", adminBackKeyboard())
		return
	}
	name := report.CSVFilename(time.Now())
	if err := b.sendDocument(query.From.ID, name, data, "📄 Kirish/chiqishlar CSV fayli"); err != nil {
		zap.L().Error("send csv failed", zap.Error(err))
		return
	}
	b.editTo(query, "✅ CSV fayl yuborildi!", adminBackKeyboard())
}

// handleCheck records an admin check-in or check-out for the configured
// store and notifies every known user.
func (b *Bot) handleCheck(ctx context.Context, msg *tgbotapi.Message, action string) {
	if !b.isAdmin(msg.From.ID) {
		return
	}
	user, err := b.people.GetUser(ctx, msg.From.ID)
	if err != nil {
		zap.L().Error("check user lookup failed", zap.Error(err))
		return
	}
	phone := ""
	if user != nil {
		phone = user.Phone
	}
	if _, err := b.people.LogActivity(ctx, msg.From.ID, phone, b.cfg.Telegram.AdminStore, action); err != nil {
		zap.L().Error("log activity failed", zap.String("action", action), zap.Error(err))
		b.reply(msg.Chat.ID, "❌ Harakatni yozishda xatolik yuz berdi!", nil)
		return
	}

	now := time.Now()
	verb := "do'konga kirdi"
	ack := "✅ Maxsus foydalanuvchi kirishi yozib olindi va hammaga bildirildi!"
	if action == domain.ActionExit {
		verb = "do'kondan chiqdi"
		ack = "✅ Maxsus foydalanuvchi chiqishi yozib olindi va hammaga bildirildi!"
	}
	text := fmt.Sprintf("🔄 *Maxsus foydalanuvchi %s*\n\n🕐 Vaqt: %s\n📅 Sana: %s",
		verb, now.Format("15:04:05"), now.Format("2006-01-02"))
	b.broadcast(ctx, text)
	b.reply(msg.Chat.ID, ack, nil)
}
