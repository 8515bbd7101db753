package strategy

const (
	JobTypeDashboardRefresh = "dashboard_refresh"
	JobTypeRankingNotify    = "ranking_notify"
)
