package bot

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// broadcast fans a message out to every registered user through the
// worker pool and waits for delivery attempts to finish. Individual
// delivery failures are logged, not returned.
func (b *Bot) broadcast(ctx context.Context, text string) {
	users, err := b.people.ListUsers(ctx)
	if err != nil {
		zap.L().Error("broadcast roster failed", zap.Error(err))
		return
	}
	var wg sync.WaitGroup
	for _, u := range users {
		chatID := u.TelegramID
		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()
			b.reply(chatID, text, nil)
		})
		if err != nil {
			wg.Done()
			zap.L().Warn("broadcast submit failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
	wg.Wait()
	zap.L().Info("broadcast delivered", zap.Int("recipients", len(users)))
}
