package service

import (
	"github.com/shopspring/decimal"
	"github.com/sosmedia/portfolio-api/internal/domain"
)

// G.R.O.W. classification thresholds
var (
	// gameChangerShare is the minimum share of the whole portfolio's
	// prior-year revenue a target must represent
	gameChangerShare = decimal.NewFromFloat(0.30)
	// realOpportunityGrowth is the minimum growth of a target over the
	// subject's own prior-year revenue
	realOpportunityGrowth = decimal.NewFromFloat(0.10)
)

// Classify assigns a G.R.O.W. bucket. Rules are evaluated in order and the
// first match wins:
//
//	GameChanger     target set, portfolio prior revenue nonzero, target/portfolio >= 30%
//	RealOpportunity target set, own prior revenue nonzero, (target-prior)/prior >= 10%
//	Open            own prior revenue > 0
//	Wish            everything else
//
// A nil target skips the first two rules entirely.
func Classify(target *decimal.Decimal, priorRevenue, portfolioPriorRevenue decimal.Decimal) domain.GrowBucket {
	if target != nil {
		if !portfolioPriorRevenue.IsZero() &&
			target.Div(portfolioPriorRevenue).GreaterThanOrEqual(gameChangerShare) {
			return domain.BucketGameChanger
		}
		if !priorRevenue.IsZero() &&
			target.Sub(priorRevenue).Div(priorRevenue).GreaterThanOrEqual(realOpportunityGrowth) {
			return domain.BucketRealOpportunity
		}
	}
	if priorRevenue.GreaterThan(decimal.Zero) {
		return domain.BucketOpen
	}
	return domain.BucketWish
}

// growAccumulator collects per-bucket totals while classifying a portfolio
type growAccumulator struct {
	buckets map[domain.GrowBucket]*domain.GrowBucketSummary
}

func newGrowAccumulator() *growAccumulator {
	acc := &growAccumulator{buckets: make(map[domain.GrowBucket]*domain.GrowBucketSummary, 4)}
	for _, b := range []domain.GrowBucket{
		domain.BucketGameChanger,
		domain.BucketRealOpportunity,
		domain.BucketOpen,
		domain.BucketWish,
	} {
		acc.buckets[b] = &domain.GrowBucketSummary{
			Bucket:           b,
			TotalTarget:      decimal.Zero,
			PriorYearRevenue: decimal.Zero,
		}
	}
	return acc
}

// add classifies one subject and folds its totals into the bucket. A nil
// target counts as zero toward the bucket's target total.
func (acc *growAccumulator) add(target *decimal.Decimal, priorRevenue, portfolioPrior decimal.Decimal) domain.GrowBucket {
	bucket := Classify(target, priorRevenue, portfolioPrior)
	summary := acc.buckets[bucket]
	summary.BrandCount++
	if target != nil {
		summary.TotalTarget = summary.TotalTarget.Add(*target)
	}
	summary.PriorYearRevenue = summary.PriorYearRevenue.Add(priorRevenue)
	return bucket
}

// summaries returns the buckets in display order
func (acc *growAccumulator) summaries() []domain.GrowBucketSummary {
	order := []domain.GrowBucket{
		domain.BucketGameChanger,
		domain.BucketRealOpportunity,
		domain.BucketOpen,
		domain.BucketWish,
	}
	out := make([]domain.GrowBucketSummary, 0, len(order))
	for _, b := range order {
		out = append(out, *acc.buckets[b])
	}
	return out
}
