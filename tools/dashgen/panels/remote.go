package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RemoteCallRate returns a timeseries panel showing DonutSMP API calls per
// second by outcome.
func RemoteCallRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("DonutSMP API Calls").
		Description("Remote calls per second by outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(donutbot_remote_requests_total{job="`+Job+`"}[5m])) by (outcome)`,
			"{{outcome}}", "A",
		)).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// RemoteLatency returns a timeseries panel showing p95 DonutSMP API latency
// per endpoint.
func RemoteLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("DonutSMP API Latency (p95)").
		Description("95th percentile remote call duration by endpoint").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			quantile("0.95", "donutbot_remote_request_duration_seconds", "endpoint"),
			"{{endpoint}}", "A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// RemoteErrorRate returns a timeseries panel showing the share of remote
// calls that failed with anything other than not-found.
func RemoteErrorRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("DonutSMP API Error %").
		Description("Remote calls failing with a status, transport or decode error").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`donutbot:remote_errors:rate5m / donutbot:remote_requests:rate5m * 100`,
			"error %", "A",
		)).
		Unit("percent").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(5, 20)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}
