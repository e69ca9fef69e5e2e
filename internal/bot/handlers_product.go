package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/uzretail/storebot/internal/domain"
	"github.com/uzretail/storebot/internal/ledger"
	"go.uber.org/zap"
)

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	fullName := strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName)
	role := domain.RoleUser
	if b.isAdmin(msg.From.ID) {
		role = domain.RoleAdmin
	}
	if _, err := b.people.RegisterUser(ctx, msg.From.ID, fullName, "", role); err != nil {
		zap.L().Error("register user failed", zap.Int64("telegram_id", msg.From.ID), zap.Error(err))
	}

	text := fmt.Sprintf(`Assalomu alaykum %s! 👋

🤖 *Do'kon BOT* ga xush kelibsiz!

Bu bot orqali siz:
📍 Do'kongacha bo'lgan masofani hisoblashingiz mumkin
📦 Mahsulotlarni boshqarishingiz mumkin
👥 Foydalanuvchi harakatlarini kuzatishingiz mumkin
📊 Ombor hisobini ko'rishingiz mumkin

Quyidagi tugmalardan foydalaning:`, msg.From.FirstName)
	b.reply(msg.Chat.ID, text, mainMenuKeyboard(b.isAdmin(msg.From.ID)))
}

func (b *Bot) showProfile(ctx context.Context, query *tgbotapi.CallbackQuery) {
	user, err := b.people.GetUser(ctx, query.From.ID)
	if err != nil {
		zap.L().Error("profile lookup failed", zap.Error(err))
		return
	}
	if user == nil {
		b.editTo(query, "👤 Profil topilmadi. /start ni bosing.", backKeyboard())
		return
	}
	text := fmt.Sprintf(`👤 *Profil*

🆔 *ID*: %d
👤 *Ism*: %s
📞 *Tel*: %s
🛡️ *Rol*: %s
📅 *Qo'shilgan*: %s`,
		user.TelegramID, orUnknown(user.FullName), orUnknown(user.Phone),
		user.Role, user.CreatedAt.Format("2006-01-02"))
	b.editTo(query, text, backKeyboard())
}

func (b *Bot) productsList(ctx context.Context, query *tgbotapi.CallbackQuery) {
	products, err := b.inventory.ListProducts(ctx)
	if err != nil {
		zap.L().Error("list products failed", zap.Error(err))
		return
	}
	if len(products) == 0 {
		b.editTo(query,
			"📦 Mahsulotlar ro'yxati bo'sh\n\nYangi mahsulot qo'shish uchun '➕ Mahsulot qo'shish' tugmasini bosing.",
			mainMenuKeyboard(b.isAdmin(query.From.ID)))
		return
	}

	var sb strings.Builder
	sb.WriteString("📦 *Mahsulotlar ro'yxati*:\n\n")
	var totalValue float64
	for i, p := range products {
		value := float64(p.Quantity) * p.Price
		totalValue += value
		fmt.Fprintf(&sb, "%d. *%s*\n", i+1, p.Name)
		fmt.Fprintf(&sb, "   Miqdor: %s dona\n", formatInt(p.Quantity))
		if p.Price > 0 {
			fmt.Fprintf(&sb, "   Narx: %s so'm\n", formatMoney(p.Price))
			fmt.Fprintf(&sb, "   Qiymat: %s so'm\n", formatMoney(value))
		}
		if p.Category != "" {
			fmt.Fprintf(&sb, "   Kategoriya: %s\n", p.Category)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\n💰 *Jami qiymat*: %s so'm", formatMoney(totalValue))
	b.editTo(query, sb.String(), productActionsKeyboard())
}

func (b *Bot) inventoryStats(ctx context.Context, query *tgbotapi.CallbackQuery) {
	st, err := b.inventory.Stats(ctx)
	if err != nil {
		zap.L().Error("inventory stats failed", zap.Error(err))
		return
	}
	products, err := b.inventory.ListProducts(ctx)
	if err != nil {
		zap.L().Error("list products failed", zap.Error(err))
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 *OMBOR STATISTIKASI*\n\n")
	fmt.Fprintf(&sb, "📦 *Jami mahsulot turlari*: %d\n", st.ProductCount)
	fmt.Fprintf(&sb, "🔢 *Jami dona soni*: %s dona\n", formatInt(st.TotalUnits))
	fmt.Fprintf(&sb, "💰 *Jami qiymati*: %s so'm\n", formatMoney(st.TotalValue))

	if len(products) > 0 {
		top, bottom := rankByQuantity(products)
		sb.WriteString("\n🏆 *Eng ko'p miqdor*:\n")
		for _, p := range top {
			fmt.Fprintf(&sb, "   • %s: %s dona\n", p.Name, formatInt(p.Quantity))
		}
		sb.WriteString("\n📉 *Eng kam miqdor*:\n")
		for _, p := range bottom {
			fmt.Fprintf(&sb, "   • %s: %s dona\n", p.Name, formatInt(p.Quantity))
		}
	} else {
		sb.WriteString("\n⚠️ Mahsulotlar mavjud emas")
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📦 Barcha mahsulotlar", "products_list"),
			tgbotapi.NewInlineKeyboardButtonData("📤 Eksport", "export_stats"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Asosiy menyu", "main_menu"),
		),
	)
	b.editTo(query, sb.String(), kb)
}

func (b *Bot) promptAdd(query *tgbotapi.CallbackQuery) {
	b.setState(query.Message.Chat.ID, awaitAdd)
	text := "➕ *Yangi mahsulot qo'shish*\n\n" +
		"Mahsulot nomini quyidagi formatda yuboring:\n\n" +
		"`Nomi: Miqdori: Narxi: Kategoriyasi`\n\n" +
		"*Misollar:*\n" +
		"`Kola: 100: 8000: Ichimliklar`\n" +
		"`Non: 50: 3000: Non mahsulotlari`\n" +
		"`Sut: 20` (faqat nom va miqdor)\n\n" +
		"Bekor qilish uchun: /cancel"
	b.editTo(query, text, cancelKeyboard("cancel_add"))
}

func (b *Bot) promptRemove(query *tgbotapi.CallbackQuery) {
	b.setState(query.Message.Chat.ID, awaitRemove)
	text := "➖ *Mahsulot ayirish*\n\n" +
		"Qaysi mahsulotdan qancha ayirmoqchisiz?\n\n" +
		"Format: `Mahsulot nomi: Miqdori`\n\n" +
		"*Misollar:*\n" +
		"`Kola: 10`\n" +
		"`Non: 5`\n\n" +
		"Bekor qilish: /cancel"
	b.editTo(query, text, cancelKeyboard("cancel_remove"))
}

func (b *Bot) handleAddInput(ctx context.Context, msg *tgbotapi.Message) {
	in, err := ParseProductInput(msg.Text)
	if err != nil {
		b.reply(msg.Chat.ID,
			"❌ Noto'g'ri format! Iltimos, quyidagi formatda yuboring:\n"+
				"`Nomi: Miqdori: Narxi: Kategoriyasi`\n\n"+
				"Yoki bekor qilish: /cancel", nil)
		return
	}
	product, err := b.inventory.AddProduct(ctx, in.Name, in.Quantity, in.Price, in.Category,
		"Foydalanuvchi tomonidan qo'shildi", msg.From.ID)
	if err != nil {
		zap.L().Error("add product failed", zap.String("name", in.Name), zap.Error(err))
		b.reply(msg.Chat.ID, "❌ Mahsulot qo'shishda xatolik yuz berdi!", backKeyboard())
		return
	}
	b.clearState(msg.Chat.ID)

	category := in.Category
	if category == "" {
		category = "Noma'lum"
	}
	text := fmt.Sprintf(`✅ *Mahsulot muvaffaqiyatli qo'shildi!*

📦 *Nomi*: %s
🔢 *Miqdori*: %s dona
💰 *Narxi*: %s so'm
📂 *Kategoriya*: %s

Jami qiymat: %s so'm`,
		product.Name, formatInt(in.Quantity), formatMoney(in.Price), category,
		formatMoney(in.Price*float64(in.Quantity)))
	b.reply(msg.Chat.ID, text, afterAddKeyboard())
}

func (b *Bot) handleRemoveInput(ctx context.Context, msg *tgbotapi.Message) {
	name, qty, err := ParseRemovalInput(msg.Text)
	if err != nil {
		b.reply(msg.Chat.ID,
			"❌ Noto'g'ri format! Iltimos, quyidagi formatda yuboring:\n"+
				"`Mahsulot nomi: Miqdori`\n\n"+
				"Yoki bekor qilish: /cancel", nil)
		return
	}
	product, err := b.inventory.RemoveProduct(ctx, name, qty,
		"Foydalanuvchi tomonidan ayirildi", msg.From.ID)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			b.reply(msg.Chat.ID, fmt.Sprintf("❌ *%s* topilmadi. Nomini tekshiring.", name), afterRemoveKeyboard())
		case errors.Is(err, ledger.ErrInsufficientStock):
			b.reply(msg.Chat.ID,
				fmt.Sprintf("❌ *%s* uchun yetarli miqdor yo'q!\n\nOmbordagi qoldiqni tekshiring.", name),
				afterRemoveKeyboard())
		default:
			zap.L().Error("remove product failed", zap.String("name", name), zap.Error(err))
			b.reply(msg.Chat.ID, "❌ Xatolik yuz berdi. Qayta urinib ko'ring.", afterRemoveKeyboard())
		}
		return
	}
	b.clearState(msg.Chat.ID)

	text := fmt.Sprintf(`✅ *Mahsulot muvaffaqiyatli ayirildi!*

📦 *Nomi*: %s
🔢 *Ayirildi*: %s dona
📊 *Qoldi*: %s dona`,
		product.Name, formatInt(qty), formatInt(product.Quantity))
	b.reply(msg.Chat.ID, text, afterRemoveKeyboard())
}

// rankByQuantity returns up to three highest and three lowest stocked
// products.
func rankByQuantity(products []domain.Product) (top, bottom []domain.Product) {
	sorted := make([]domain.Product, len(products))
	copy(sorted, products)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Quantity > sorted[j-1].Quantity; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	n := len(sorted)
	k := 3
	if n < k {
		k = n
	}
	top = sorted[:k]
	bottom = sorted[n-k:]
	return top, bottom
}

// formatInt renders an integer with thousand separators, 1234567 -> "1,234,567".
func formatInt(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

func formatMoney(v float64) string {
	return formatInt(int64(v + 0.5))
}

func orUnknown(s string) string {
	if s == "" {
		return "Noma'lum"
	}
	return s
}
