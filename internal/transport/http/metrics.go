package httptransport

import "expvar"

var (
	metricSessionStartTotal  = expvar.NewInt("session_start_total")
	metricSessionStartErrors = expvar.NewInt("session_start_errors_total")
	metricFreeSessionsTotal  = expvar.NewInt("free_sessions_total")

	metricRevealTotal   = expvar.NewInt("reveal_total")
	metricRevealErrors  = expvar.NewInt("reveal_errors_total")
	metricMineHitsTotal = expvar.NewInt("mine_hits_total")

	metricCashOutTotal    = expvar.NewInt("cashout_total")
	metricCashOutErrors   = expvar.NewInt("cashout_errors_total")
	metricCashOutWinnings = expvar.NewInt("cashout_winnings_total")

	metricAccountsCreated = expvar.NewInt("accounts_created_total")
)
