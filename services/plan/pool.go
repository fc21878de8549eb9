package plan

import (
	"dietplan-go-worker/models"
	"math/rand"
)

// pool hands out foods front to back and puts each served food at the end.
type pool struct {
	foods []models.FoodItem
}

func newPool(eligible []models.FoodItem, r *rand.Rand) *pool {
	foods := make([]models.FoodItem, len(eligible))
	copy(foods, eligible)
	r.Shuffle(len(foods), func(i, j int) {
		foods[i], foods[j] = foods[j], foods[i]
	})
	return &pool{foods: foods}
}

func (p *pool) empty() bool {
	return len(p.foods) == 0
}

func (p *pool) next() models.FoodItem {
	food := p.foods[0]
	copy(p.foods, p.foods[1:])
	p.foods[len(p.foods)-1] = food
	return food
}
