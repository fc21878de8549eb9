package structs

type ActivityLogJsonModel struct {
	Type      string         `json:"type"`
	CheckupID int64          `json:"checkup_id,omitempty"`
	Patient   string         `json:"patient,omitempty"`
	Result    bool           `json:"result"`
	Statistic StatisticModel `json:"statistic"`
	Message   string         `json:"message"`
	Messages  []ErrorModel   `json:"messages"`
}

type StatisticModel struct {
	TotalCheckup int `json:"total_checkup"`
	SkipCheckup  int `json:"skip_checkup"`
	FailCheckup  int `json:"fail_checkup"`
	OKCheckup    int `json:"ok_checkup"`
	MealGaps     int `json:"meal_gaps"`
}

type ErrorModel struct {
	CheckupID    int64  `json:"checkup_id"`
	ErrorMessage string `json:"error_message"`
}
