package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/uzretail/storebot/internal/geo"
)

const helpText = `📚 *Botdan foydalanish bo'yicha ko'rsatma:*

📍 *Joylashuv yuborish* - Lokatsiyangizni yuboring va do'kongacha bo'lgan masofani bilib oling

🏪 *Do'konlar* - Barcha do'konlarimiz manzil va koordinatalari

📦 *Mahsulotlar*:
   • Mahsulotlar ro'yxatini ko'rish
   • Yangi mahsulot qo'shish
   • Mahsulot miqdorini o'zgartirish

📊 *Ombor hisobi* - Barcha mahsulotlar miqdori va qiymati

👤 *Profil* - Shaxsiy ma'lumotlar

🛡️ *Admin panel* (faqat admin uchun):
   • Barcha foydalanuvchilar
   • Kirish/chiqish tarixi
   • To'liq statistika
   • Ma'lumotlarni eksport qilish`

func mainMenuKeyboard(admin bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📍 Joylashuv yuborish", "send_location"),
			tgbotapi.NewInlineKeyboardButtonData("🏪 Do'konlar", "show_stores"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📦 Mahsulotlar ro'yxati", "products_list"),
			tgbotapi.NewInlineKeyboardButtonData("📊 Ombor hisobi", "inventory_stats"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Mahsulot qo'shish", "add_product"),
			tgbotapi.NewInlineKeyboardButtonData("➖ Mahsulot ayirish", "remove_product"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 Profil", "profile"),
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Yordam", "help"),
		),
	}
	if admin {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛡️ Admin panel", "admin_panel"),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// storeSelectionKeyboard lists every configured store plus the nearest
// store shortcut.
func storeSelectionKeyboard(stores []geo.Store) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, s := range stores {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("🏪 "+s.Name, "store_"+s.Key))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📍 Hammadan yaqin", "nearest_store"),
		tgbotapi.NewInlineKeyboardButtonData("🔙 Orqaga", "main_menu"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func adminKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Umumiy statistika", "admin_stats"),
			tgbotapi.NewInlineKeyboardButtonData("👥 Foydalanuvchilar", "admin_users"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📈 Kirish/Chiqishlar", "admin_activities"),
			tgbotapi.NewInlineKeyboardButtonData("📦 Barcha mahsulotlar", "admin_all_products"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📤 Eksport", "admin_export"),
			tgbotapi.NewInlineKeyboardButtonData("📄 CSV faoliyat", "export_activities"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Asosiy menyu", "main_menu"),
		),
	)
}

func productActionsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Qo'shish", "add_product"),
			tgbotapi.NewInlineKeyboardButtonData("➖ Ayirish", "remove_product"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Statistika", "inventory_stats"),
			tgbotapi.NewInlineKeyboardButtonData("🏠 Asosiy", "main_menu"),
		),
	)
}

func afterAddKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📦 Barcha mahsulotlar", "products_list"),
			tgbotapi.NewInlineKeyboardButtonData("➕ Yangi qo'shish", "add_product"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Asosiy menyu", "main_menu"),
		),
	)
}

func afterRemoveKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📦 Barcha mahsulotlar", "products_list"),
			tgbotapi.NewInlineKeyboardButtonData("➖ Boshqa ayirish", "remove_product"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Asosiy menyu", "main_menu"),
		),
	)
}

func cancelKeyboard(data string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Bekor qilish", data),
		),
	)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Asosiy menyu", "main_menu"),
		),
	)
}

func adminBackKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Admin panel", "admin_panel"),
		),
	)
}
