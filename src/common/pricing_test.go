package common

import (
	"testing"

	"rephotos/src/models"

	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	assert.InDelta(t, 399.98, LineTotal(models.SelectedService{Name: "HDR Photography", Price: 199.99, Count: 2}), 1e-9)
	assert.InDelta(t, 199.99, LineTotal(models.SelectedService{Name: "HDR Photography", Price: 199.99, Count: 0}), 1e-9)
	assert.InDelta(t, 199.99, LineTotal(models.SelectedService{Name: "HDR Photography", Price: 199.99, Count: -3}), 1e-9)
}

func TestAggregateTotal(t *testing.T) {
	services := models.ServiceList{
		{Name: "HDR Photography", Price: 199.99, Count: 1},
		{Name: "2D Floor Plan", Price: 119.99, Count: 2},
	}
	assert.InDelta(t, 439.97, AggregateTotal(services), 1e-9)
	assert.Equal(t, 0.0, AggregateTotal(nil))
}

func TestDiscountFor(t *testing.T) {
	cases := []struct {
		total   float64
		percent float64
	}{
		{0, 0},
		{199.98, 0},
		{199.99, 3},
		{349.99, 3},
		{350, 5},
		{399.98, 5},
		{499.99, 5},
		{500, 10},
		{699.99, 10},
		{700, 12},
		{899.99, 12},
		{900, 15},
		{1099.99, 15},
		{1100, 17},
		{25000, 17},
		{-50, 0},
	}
	for _, c := range cases {
		tier := DiscountFor(c.total)
		assert.Equalf(t, c.percent, tier.Percent, "total %.2f", c.total)
	}
}

func TestApplyDiscount(t *testing.T) {
	assert.InDelta(t, 379.981, ApplyDiscount(399.98), 1e-9)
	assert.InDelta(t, 100.0, ApplyDiscount(100), 1e-9)
	assert.InDelta(t, 913.0, ApplyDiscount(1100), 1e-9)
}
