// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"math"
	"strings"
)

// =============================================================================
// PLAN QUALITY SCORE
// =============================================================================

// planKeywords are the coverage keywords the quality heuristic looks for
// across all plan items. Matching is substring, case-insensitive.
var planKeywords = []string{
	"auth",
	"authentication",
	"authorization",
	"api",
	"endpoint",
	"schema",
	"database",
	"migration",
	"testing",
	"tests",
	"jest",
	"pytest",
	"deployment",
	"deploy",
	"error",
	"logging",
	"monitor",
	"security",
	"performance",
}

// QualityBreakdown explains how a plan score was computed.
type QualityBreakdown struct {
	FrontendCount int
	BackendCount  int
	DatabaseCount int
	CountScore    int
	KeywordScore  int
	KeywordsHit   []string
}

// ScorePlan rates a plan from 0 to 100. It is a display heuristic, not a
// correctness check: up to 60 points for item counts (six per section is
// ideal) and up to 40 points for keyword coverage, capped at ten keywords.
func ScorePlan(p *Plan) (int, QualityBreakdown) {
	var bd QualityBreakdown
	if p.IsEmpty() {
		return 0, bd
	}

	bd.FrontendCount = len(p.Frontend)
	bd.BackendCount = len(p.Backend)
	bd.DatabaseCount = len(p.Database)
	bd.CountScore = sectionScore(bd.FrontendCount) +
		sectionScore(bd.BackendCount) +
		sectionScore(bd.DatabaseCount)

	items := make([]string, 0, p.ItemCount())
	for _, section := range [][]string{p.Frontend, p.Backend, p.Database} {
		for _, item := range section {
			items = append(items, strings.ToLower(item))
		}
	}

	for _, kw := range planKeywords {
		for _, item := range items {
			if strings.Contains(item, kw) {
				bd.KeywordsHit = append(bd.KeywordsHit, kw)
				break
			}
		}
	}

	hits := len(bd.KeywordsHit)
	if hits > 10 {
		hits = 10
	}
	bd.KeywordScore = int(math.Round(float64(hits) / 10.0 * 40))

	total := bd.CountScore + bd.KeywordScore
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}
	return total, bd
}

// sectionScore awards up to 20 points per plan section, six items being a
// full score.
func sectionScore(n int) int {
	if n < 0 {
		n = 0
	}
	if n > 6 {
		n = 6
	}
	return int(math.Round(float64(n) / 6.0 * 20))
}
