package todo

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// maxExpandDays は1回の展開で扱える最大日数（約10年）。
const maxExpandDays = 3660

// rruleWeekdays はtime.Weekdayからrrule.Weekdayへの対応表。
var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// Expand は from から to までの期間（両端を含む）のうち、曜日が days に含まれる日付を昇順で返す。
// 曜日集合が空、または to が from より前の場合は何も返さない。
// 期間が maxExpandDays を超える場合は endDate の RangeError を返す。
func Expand(days WeekdaySet, from, to Date) ([]Date, error) {
	if days.IsEmpty() || to.Before(from) {
		return nil, nil
	}

	span := int(to.Time().Sub(from.Time())/(24*time.Hour)) + 1
	if span > maxExpandDays {
		return nil, &RangeError{
			Field:  "endDate",
			Start:  from,
			End:    to,
			Reason: fmt.Sprintf("期間は%d日以内で指定してください", maxExpandDays),
		}
	}

	byday := make([]rrule.Weekday, 0, 7)
	for _, d := range days.Days() {
		byday = append(byday, rruleWeekdays[d])
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   from.Time(),
		Until:     to.Time(),
		Byweekday: byday,
	})
	if err != nil {
		return nil, fmt.Errorf("繰り返しルールの生成に失敗: %w", err)
	}

	times := r.Between(from.Time(), to.Time(), true)
	dates := make([]Date, 0, len(times))
	for _, t := range times {
		dates = append(dates, DateOf(t, time.UTC))
	}
	return dates, nil
}
