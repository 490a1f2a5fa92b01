package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"github.com/sosmedia/portfolio-api/internal/service"
	"github.com/stretchr/testify/assert"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		target    *decimal.Decimal
		prior     decimal.Decimal
		portfolio decimal.Decimal
		want      domain.GrowBucket
	}{
		{
			name:      "target at 30 percent of portfolio is a game changer",
			target:    decPtr(300),
			prior:     dec(0),
			portfolio: dec(1000),
			want:      domain.BucketGameChanger,
		},
		{
			name:      "target above 30 percent of portfolio is a game changer",
			target:    decPtr(500),
			prior:     dec(400),
			portfolio: dec(1000),
			want:      domain.BucketGameChanger,
		},
		{
			name:      "ten percent growth over own prior is a real opportunity",
			target:    decPtr(110),
			prior:     dec(100),
			portfolio: dec(10000),
			want:      domain.BucketRealOpportunity,
		},
		{
			name:      "130 over 100 prior in a 1000 portfolio is a real opportunity",
			target:    decPtr(130),
			prior:     dec(100),
			portfolio: dec(1000),
			want:      domain.BucketRealOpportunity,
		},
		{
			name:      "growth below ten percent with prior revenue stays open",
			target:    decPtr(105),
			prior:     dec(100),
			portfolio: dec(10000),
			want:      domain.BucketOpen,
		},
		{
			name:      "no target but prior revenue is open",
			target:    nil,
			prior:     dec(50),
			portfolio: dec(1000),
			want:      domain.BucketOpen,
		},
		{
			name:      "no target and no prior revenue is a wish",
			target:    nil,
			prior:     dec(0),
			portfolio: dec(1000),
			want:      domain.BucketWish,
		},
		{
			name:      "small target with no prior revenue is a wish",
			target:    decPtr(10),
			prior:     dec(0),
			portfolio: dec(1000),
			want:      domain.BucketWish,
		},
		{
			name:      "zero portfolio never divides, falls through to prior rules",
			target:    decPtr(500),
			prior:     dec(100),
			portfolio: dec(0),
			want:      domain.BucketRealOpportunity,
		},
		{
			name:      "zero portfolio and zero prior with a target is a wish",
			target:    decPtr(500),
			prior:     dec(0),
			portfolio: dec(0),
			want:      domain.BucketWish,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.Classify(tt.target, tt.prior, tt.portfolio)
			assert.Equal(t, tt.want, got)
		})
	}
}

// The first matching rule wins: a target that qualifies as both game changer
// and real opportunity classifies as game changer.
func TestClassify_FirstMatchWins(t *testing.T) {
	got := service.Classify(decPtr(400), dec(100), dec(1000))
	assert.Equal(t, domain.BucketGameChanger, got)
}
