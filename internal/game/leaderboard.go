package game

import (
	"sort"

	"github.com/aaronzipp/secret-assassins-society/internal/models"
)

// Rank orders assassins by tally descending, then stably moves eliminated
// members behind the living ones. Both passes are stable, so tie groups keep
// their enrollment order and a dead player's tally rank may interleave with
// living players' ranks before the partition.
func Rank(assassins []*models.Assassin) []*models.Assassin {
	ranked := make([]*models.Assassin, len(assassins))
	copy(ranked, assassins)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Tally > ranked[j].Tally
	})

	alive := make([]*models.Assassin, 0, len(ranked))
	dead := make([]*models.Assassin, 0, len(ranked))
	for _, a := range ranked {
		if a.Alive() {
			alive = append(alive, a)
		} else {
			dead = append(dead, a)
		}
	}
	return append(alive, dead...)
}
