package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "donutbot-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "donutbot-recording",
					Rules: []Rule{
						{
							Record: "donutbot:http_requests:rate5m",
							Expr:   `sum(rate(donutbot_http_requests_total[5m]))`,
						},
						{
							Record: "donutbot:http_errors:rate5m",
							Expr:   `sum(rate(donutbot_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "donutbot:remote_requests:rate5m",
							Expr:   `sum(rate(donutbot_remote_requests_total[5m]))`,
						},
						{
							Record: "donutbot:remote_errors:rate5m",
							Expr:   `sum(rate(donutbot_remote_requests_total{outcome=~"status_error|transport_error|decode_error"}[5m]))`,
						},
						{
							Record: "donutbot:search_fetch_errors:rate5m",
							Expr:   `sum(rate(donutbot_searches_total{stopped_at="fetch_error"}[5m]))`,
						},
						{
							Record: "donutbot:cache_hit_ratio:rate5m",
							Expr:   `sum(rate(donutbot_cache_lookups_total{result="hit"}[5m])) / sum(rate(donutbot_cache_lookups_total[5m]))`,
						},
					},
				},
			},
		},
	}
}
