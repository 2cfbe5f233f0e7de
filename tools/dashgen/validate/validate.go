// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and every metric it selects must be known.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/donutsmp-bot/tools/dashgen/rules"
)

// Result collects validation findings. Errors fail generation; warnings
// are reported but do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

var histogramSuffixes = []string{"_bucket", "_count", "_sum"}

// Expr parses a PromQL expression and checks the metrics it selects.
func Expr(expr string, known map[string]bool) error {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", expr, err)
	}

	var unknown []string
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		if vs, ok := n.(*parser.VectorSelector); ok && !isKnown(vs.Name, known) {
			unknown = append(unknown, vs.Name)
		}
		return nil
	})

	if len(unknown) > 0 {
		return fmt.Errorf("unknown metrics %s in %q", strings.Join(unknown, ", "), expr)
	}
	return nil
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// panelJSON is the subset of the Grafana panel model the checks need.
type panelJSON struct {
	Title   string      `json:"title"`
	Type    string      `json:"type"`
	Panels  []panelJSON `json:"panels"`
	Targets []struct {
		Expr string `json:"expr"`
	} `json:"targets"`
}

// Dashboard checks every panel query of dash.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var r Result

	data, err := json.Marshal(dash)
	if err != nil {
		r.errorf("encoding dashboard: %v", err)
		return r
	}

	var doc struct {
		Panels []panelJSON `json:"panels"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		r.errorf("decoding dashboard: %v", err)
		return r
	}

	for i := range doc.Panels {
		checkPanel(&r, &doc.Panels[i], known)
	}
	return r
}

func checkPanel(r *Result, p *panelJSON, known map[string]bool) {
	if p.Type == "row" {
		for i := range p.Panels {
			checkPanel(r, &p.Panels[i], known)
		}
		return
	}

	title := p.Title
	if title == "" {
		title = "<untitled>"
		r.warnf("panel of type %s has no title", p.Type)
	}
	if len(p.Targets) == 0 {
		r.warnf("panel %q has no queries", title)
	}
	for _, t := range p.Targets {
		if t.Expr == "" {
			r.errorf("panel %q has a query without an expression", title)
			continue
		}
		if err := Expr(t.Expr, known); err != nil {
			r.errorf("panel %q: %v", title, err)
		}
	}
}

// Rules checks every rule expression in cr. Recording rule names must be
// listed in known so dashboards can reference them.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var r Result
	for _, g := range cr.Spec.Groups {
		for _, rule := range g.Rules {
			name := rule.Record
			if name == "" {
				name = rule.Alert
			}
			if rule.Record != "" && !known[rule.Record] {
				r.errorf("recording rule %s is not a known metric", rule.Record)
			}
			if err := Expr(rule.Expr, known); err != nil {
				r.errorf("rule %s: %v", name, err)
			}
		}
	}
	return r
}
