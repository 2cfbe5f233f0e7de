// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/donutsmp-bot/tools/dashgen/panels"
)

// UID is the stable identifier of the overview dashboard.
const UID = "donutbot-overview"

// BuildOverview constructs the DonutSMP Bot overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("DonutSMP Bot Overview").
		Uid(UID).
		Tags([]string{"donutbot", panels.Job}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.CacheEntriesStat()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("Chat").
		WithPanel(panels.CommandRate()).
		WithPanel(panels.CallbackOutcomes()).
		WithPanel(panels.CacheHitRatio()).
		WithPanel(panels.SendFailures()))

	b.WithRow(dashboard.NewRowBuilder("Auction Search").
		WithPanel(panels.ScanRate()).
		WithPanel(panels.ScanDuration()).
		WithPanel(panels.PagesScanned()))

	b.WithRow(dashboard.NewRowBuilder("DonutSMP API").
		WithPanel(panels.RemoteCallRate()).
		WithPanel(panels.RemoteLatency()).
		WithPanel(panels.RemoteErrorRate()))

	b.WithRow(dashboard.NewRowBuilder("Ops API").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
