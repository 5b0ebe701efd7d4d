package finance

import "time"

// MonthRange: ayın ilk günü 00:00:00 ile son günü 23:59:59.999999 arası,
// iki uç da dahil (kapalı aralık). Sorgularda "date >= start AND date <= end"
// ile kullanılır. Artık yıllar AddDate üzerinden doğru hesaplanır.
func MonthRange(year int, month int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Microsecond)
	return start, end
}

// DayRange: verilen günün gece yarısından ertesi gün gece yarısına kadar,
// üst uç hariç (yarı açık aralık). Sorgularda "date >= start AND date < end"
// ile kullanılır. Aylık aralıktan farklı olan bu uç kuralı kaynak sistemin
// "bugün" hesabıyla birebir korunmuştur.
func DayRange(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}
