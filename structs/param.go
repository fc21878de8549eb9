package structs

type DietPlanQueueParam struct {
	Type       string `json:"type" form:"type"`
	CheckupID  int64  `json:"checkup_id" form:"checkup_id"`
	Regenerate bool   `json:"regenerate" form:"regenerate"`
	TaskID     uint   `json:"task_id" form:"task_id"`
	Result     string `json:"result" form:"result"`
	IsDie      bool   `json:"is_die" form:"is_die"`
	QueueType  string `json:"queue_type" form:"queue_type"`
}

type MismatchQueueResponse struct {
	TaskId uint   `json:"task_id"`
	Queue  string `json:"queue"`
}
