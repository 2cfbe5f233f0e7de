package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// donutsmp-bot operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "donutbot-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "donutbot-alerts",
					Rules: []Rule{
						{
							Alert: "DonutbotDown",
							Expr:  `absent(up{job="donutsmp-bot"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "DonutSMP bot is down",
								"description": "The donutsmp-bot job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "DonutbotNotPolling",
							Expr:  `donutbot_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "DonutSMP bot is not receiving chat updates",
								"description": "The readiness probe has reported the update loop stopped for more than 2 minutes.",
							},
						},
						{
							Alert: "DonutbotRemoteErrors",
							Expr:  `donutbot:remote_errors:rate5m / donutbot:remote_requests:rate5m > 0.2`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "DonutSMP API calls are failing",
								"description": "More than 20% of DonutSMP API calls have failed over the last 10 minutes.",
							},
						},
						{
							Alert: "DonutbotSearchesCutShort",
							Expr:  `donutbot:search_fetch_errors:rate5m > 0`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Auction searches are ending on fetch errors",
								"description": "Scans keep stopping at a failed page fetch, so users see incomplete results.",
							},
						},
						{
							Alert: "DonutbotSendFailures",
							Expr:  `increase(donutbot_send_failures_total[5m]) > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Telegram send failures detected",
								"description": "One or more Telegram send or edit calls have failed in the last 5 minutes.",
							},
						},
					},
				},
			},
		},
	}
}
