package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ScanRate returns a timeseries panel showing auction scans by why they
// stopped. A rising fetch_error series means the remote API is cutting
// searches short.
func ScanRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Auction Scans").
		Description("Scans per second by kind and stop reason").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(donutbot_searches_total{job="`+Job+`"}[5m])) by (kind, stopped_at)`,
			"{{kind}} / {{stopped_at}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ScanDuration returns a timeseries panel showing p50 and p95 scan times.
func ScanDuration() *timeseries.PanelBuilder {
	const h = "donutbot_search_duration_seconds"
	return timeseries.NewPanelBuilder().
		Title("Scan Duration").
		Description("Wall-clock time of auction scans").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(quantile("0.50", h, ""), "p50", "A")).
		WithTarget(PromQuery(quantile("0.95", h, ""), "p95", "B")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// PagesScanned returns a timeseries panel showing p95 remote pages per scan.
func PagesScanned() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Pages per Scan (p95)").
		Description("Remote auction pages fetched per scan").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(quantile("0.95", "donutbot_search_pages_scanned", ""), "pages", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
