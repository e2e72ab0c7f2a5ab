package catalog

import (
	"math/rand/v2"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

var (
	cookTimes    = []string{"15 min", "30 min", "45 min", "1 hr", "1.5 hrs"}
	difficulties = []string{"Easy", "Medium", "Hard"}
	calorieSteps = []int{250, 350, 450, 550, 650}
	servingSizes = []int{2, 4, 6, 8}
)

// enrich assigns display metadata. The values are drawn at random on every
// fetch and are not stable for a recipe id.
func enrich(r *domain.Recipe, rng *rand.Rand) {
	r.CookTime = cookTimes[rng.IntN(len(cookTimes))]
	r.Difficulty = difficulties[rng.IntN(len(difficulties))]
	r.Calories = calorieSteps[rng.IntN(len(calorieSteps))]
	r.Servings = servingSizes[rng.IntN(len(servingSizes))]
}
