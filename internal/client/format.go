package client

import (
	"fmt"
	"time"

	"baby-care-log/internal/domain/records"
)

// Helpers de presentación del historial. El copy del producto es en
// chino, igual que los mensajes de auth del server.

// RelativeTime formatea "hace cuánto" respecto de now: 刚刚 (recién),
// N分钟前, N小时M分前, N天前.
func RelativeTime(timestampMs int64, now time.Time) string {
	minutes := (now.UnixMilli() - timestampMs) / 60000

	if minutes < 1 {
		return "刚刚"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d分钟前", minutes)
	}

	hours := minutes / 60
	remain := minutes % 60

	if hours < 24 {
		if remain > 0 {
			return fmt.Sprintf("%d小时%d分前", hours, remain)
		}
		return fmt.Sprintf("%d小时前", hours)
	}

	return fmt.Sprintf("%d天前", hours/24)
}

// FormatTime devuelve la hora local HH:MM.
func FormatTime(timestampMs int64) string {
	return time.UnixMilli(timestampMs).Format("15:04")
}

// IsToday compara fechas de calendario en hora local.
func IsToday(timestampMs int64, now time.Time) bool {
	d := time.UnixMilli(timestampMs)
	return d.Year() == now.Year() && d.YearDay() == now.YearDay()
}

// FormatDate devuelve 今天 (hoy), 昨天 (ayer) o M月D日.
func FormatDate(timestampMs int64, now time.Time) string {
	if IsToday(timestampMs, now) {
		return "今天"
	}

	yesterday := now.AddDate(0, 0, -1)
	d := time.UnixMilli(timestampMs)
	if d.Year() == yesterday.Year() && d.YearDay() == yesterday.YearDay() {
		return "昨天"
	}

	return fmt.Sprintf("%d月%d日", int(d.Month()), d.Day())
}

var eventIcons = map[records.EventType]string{
	records.EventTypeFeeding:       "🍼",
	records.EventTypeDiaperChange:  "🧷",
	records.EventTypeBowelMovement: "💩",
	records.EventTypeBath:          "🛁",
}

var eventColors = map[records.EventType]string{
	records.EventTypeFeeding:       "#ff9f43",
	records.EventTypeDiaperChange:  "#54a0ff",
	records.EventTypeBowelMovement: "#5f27cd",
	records.EventTypeBath:          "#01a3a4",
}

// Etiquetas de los tipos en el copy del producto.
var eventLabels = map[records.EventType]string{
	records.EventTypeFeeding:       "喂奶",
	records.EventTypeDiaperChange:  "换尿布",
	records.EventTypeBowelMovement: "拉屎",
	records.EventTypeBath:          "洗澡",
}

func EventIcon(t records.EventType) string  { return eventIcons[t] }
func EventColor(t records.EventType) string { return eventColors[t] }
func EventLabel(t records.EventType) string { return eventLabels[t] }
