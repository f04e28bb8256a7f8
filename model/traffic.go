package model

// TrafficMeterStatistics aggregates the traffic meter counters. Connection
// times are minutes, transfer figures are megabytes as reported by the
// router. The weekly and monthly counters carry a total plus a daily
// average.
type TrafficMeterStatistics struct {
	TodayConnectionTime     int
	TodayUpload             float64
	TodayDownload           float64
	YesterdayConnectionTime int
	YesterdayUpload         float64
	YesterdayDownload       float64
	WeekConnectionTime      int
	WeekUpload              Ratio
	WeekDownload            Ratio
	MonthConnectionTime     int
	MonthUpload             Ratio
	MonthDownload           Ratio
	LastMonthConnectionTime int
	LastMonthUpload         Ratio
	LastMonthDownload       Ratio
}

// DecodeTrafficMeterStatistics builds TrafficMeterStatistics from the
// flattened response fields. All counters are required; the meter reports
// "--:--" for connection times it has not accumulated yet.
func DecodeTrafficMeterStatistics(fields map[string]string) (*TrafficMeterStatistics, error) {
	stats := &TrafficMeterStatistics{}
	var err error
	if stats.TodayConnectionTime, err = durationField(fields, "NewTodayConnectionTime"); err != nil {
		return nil, err
	}
	if stats.TodayUpload, err = floatField(fields, "NewTodayUpload"); err != nil {
		return nil, err
	}
	if stats.TodayDownload, err = floatField(fields, "NewTodayDownload"); err != nil {
		return nil, err
	}
	if stats.YesterdayConnectionTime, err = durationField(fields, "NewYesterdayConnectionTime"); err != nil {
		return nil, err
	}
	if stats.YesterdayUpload, err = floatField(fields, "NewYesterdayUpload"); err != nil {
		return nil, err
	}
	if stats.YesterdayDownload, err = floatField(fields, "NewYesterdayDownload"); err != nil {
		return nil, err
	}
	if stats.WeekConnectionTime, err = durationField(fields, "NewWeekConnectionTime"); err != nil {
		return nil, err
	}
	if stats.WeekUpload, err = ratioField(fields, "NewWeekUpload"); err != nil {
		return nil, err
	}
	if stats.WeekDownload, err = ratioField(fields, "NewWeekDownload"); err != nil {
		return nil, err
	}
	if stats.MonthConnectionTime, err = durationField(fields, "NewMonthConnectionTime"); err != nil {
		return nil, err
	}
	if stats.MonthUpload, err = ratioField(fields, "NewMonthUpload"); err != nil {
		return nil, err
	}
	if stats.MonthDownload, err = ratioField(fields, "NewMonthDownload"); err != nil {
		return nil, err
	}
	if stats.LastMonthConnectionTime, err = durationField(fields, "NewLastMonthConnectionTime"); err != nil {
		return nil, err
	}
	if stats.LastMonthUpload, err = ratioField(fields, "NewLastMonthUpload"); err != nil {
		return nil, err
	}
	if stats.LastMonthDownload, err = ratioField(fields, "NewLastMonthDownload"); err != nil {
		return nil, err
	}
	return stats, nil
}
