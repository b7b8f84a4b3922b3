package domain

// StatusCounts always carries all three statuses, zero when absent.
type StatusCounts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in-progress"`
	Completed  int `json:"completed"`
}

func (c StatusCounts) Total() int {
	return c.Pending + c.InProgress + c.Completed
}

// StatsSummary is derived from one owner's tasks on every request.
type StatsSummary struct {
	StatusCounts StatusCounts `json:"statusCounts"`
	DueToday     int          `json:"dueToday"`
	DueThisWeek  int          `json:"dueThisWeek"`
}
