// Package weekgrid はデータのある日付集合から月〜金の週ウィンドウ列を導出する。
// 入力フォームの週送りページングに使う派生ビューで、永続化はしない。
package weekgrid

import (
	"sort"
	"time"
)

const isoDate = "2006-01-02"

// Week 月曜始まりの1週間（月〜金の5日間）
type Week struct {
	Start     string   `json:"start"`
	End       string   `json:"end"`
	WeekDates []string `json:"weekDates"` // 月〜金の5日（データなしの日も含む、グレーアウト表示用）
	DataDates []string `json:"dataDates"` // うちデータのある日のみ（入力欄を有効にする日）
}

// Weeks 日付集合（ISO形式 YYYY-MM-DD）から週のリストを生成する。
// 最初の日付を含む週の月曜から最後の日付を含む週の金曜まで7日刻みで走査し、
// 5日間のうち1日でもデータがある週だけを返す。
func Weeks(dates []string) []Week {
	if len(dates) == 0 {
		return nil
	}

	dateSet := make(map[string]struct{}, len(dates))
	var parsed []time.Time
	for _, d := range dates {
		t, err := time.Parse(isoDate, d)
		if err != nil {
			continue
		}
		if _, seen := dateSet[d]; seen {
			continue
		}
		dateSet[d] = struct{}{}
		parsed = append(parsed, t)
	}
	if len(parsed) == 0 {
		return nil
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Before(parsed[j]) })

	first := parsed[0]
	last := parsed[len(parsed)-1]

	// 最初の日付を含む週の月曜（日曜は前週扱いで6日戻す）
	firstMonday := first.AddDate(0, 0, -daysBackToMonday(first.Weekday()))
	// 最後の日付を含む週の金曜（日曜は前週扱いで2日戻す、土曜は1日戻す）
	lastFriday := last.AddDate(0, 0, daysForwardToFriday(last.Weekday()))

	var weeks []Week
	for monday := firstMonday; !monday.After(lastFriday); monday = monday.AddDate(0, 0, 7) {
		weekDates := make([]string, 0, 5)
		var dataDates []string
		for i := 0; i < 5; i++ {
			d := monday.AddDate(0, 0, i).Format(isoDate)
			weekDates = append(weekDates, d)
			if _, ok := dateSet[d]; ok {
				dataDates = append(dataDates, d)
			}
		}
		if len(dataDates) == 0 {
			continue
		}
		weeks = append(weeks, Week{
			Start:     weekDates[0],
			End:       weekDates[4],
			WeekDates: weekDates,
			DataDates: dataDates,
		})
	}

	return weeks
}

func daysBackToMonday(wd time.Weekday) int {
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

func daysForwardToFriday(wd time.Weekday) int {
	if wd == time.Sunday {
		return -2
	}
	return 5 - int(wd)
}
