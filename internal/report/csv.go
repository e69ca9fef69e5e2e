package report

import (
	"fmt"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/uzretail/storebot/internal/domain"
)

// ActivityRow is the flattened CSV form of a single activity record.
type ActivityRow struct {
	UserID    int64  `csv:"user_id"`
	FullName  string `csv:"full_name"`
	Phone     string `csv:"phone"`
	StoreKey  string `csv:"store"`
	Action    string `csv:"action"`
	CreatedAt string `csv:"created_at"`
}

// ActivitiesCSV renders activity records joined with known user names
// into a CSV document.
func ActivitiesCSV(acts []domain.UserActivity, users []domain.BotUser) ([]byte, error) {
	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.TelegramID] = u.FullName
	}
	rows := make([]ActivityRow, 0, len(acts))
	for _, a := range acts {
		rows = append(rows, ActivityRow{
			UserID:    a.UserID,
			FullName:  names[a.UserID],
			Phone:     a.Phone,
			StoreKey:  a.StoreKey,
			Action:    a.Action,
			CreatedAt: a.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, errors.Wrap(err, "marshal activities csv")
	}
	return data, nil
}

// CSVFilename returns a timestamped export file name.
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("faoliyat_%s.csv", now.Format("20060102_150405"))
}
