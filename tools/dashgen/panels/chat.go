package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CommandRate returns a timeseries panel showing chat commands per second.
func CommandRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Commands").
		Description("Chat commands handled per second by command").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(donutbot_commands_total{job="`+Job+`"}[5m])) by (command)`,
			"/{{command}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// CacheHitRatio returns a timeseries panel showing the share of page
// navigations that found their search still cached.
func CacheHitRatio() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Cache Hit %").
		Description("Navigation lookups that found a live search").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`donutbot:cache_hit_ratio:rate5m * 100`, "hit %", "A")).
		WithTarget(PromQuery(
			`sum(rate(donutbot_cache_evictions_total{job="`+Job+`"}[5m])) by (reason)`,
			"evicted {{reason}}", "B",
		)).
		Unit("percent").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsRedGreen(50)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// CallbackOutcomes returns a timeseries panel showing button presses by
// outcome.
func CallbackOutcomes() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Button Presses").
		Description("Navigation callbacks by outcome (page, expired, ignored)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(donutbot_callbacks_total{job="`+Job+`"}[5m])) by (outcome)`,
			"{{outcome}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// SendFailures returns a stat panel showing failed Telegram sends in the
// past 24 hours.
func SendFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Send Failures (24h)").
		Description("Failed Telegram send or edit calls in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`increase(donutbot_send_failures_total{job="`+Job+`"}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
