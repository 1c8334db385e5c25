package crm

type KPIValue struct {
	Value  float64 `json:"value"`
	Change string  `json:"change"`
}

type KPIs struct {
	ActiveClients      KPIValue `json:"activeClients"`
	ProjectsInProgress KPIValue `json:"projectsInProgress"`
	RevenueThisMonth   KPIValue `json:"revenueThisMonth"`
	PendingTasks       KPIValue `json:"pendingTasks"`
}

type Activity struct {
	Person string `json:"person"`
	Action string `json:"action"`
	Target string `json:"target"`
	Time   Time   `json:"time"`
}
