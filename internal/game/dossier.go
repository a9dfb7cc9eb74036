package game

import "math/rand"

// dossierSkills is the pool of window-dressing skills printed on dossiers
var dossierSkills = []string{
	"lockpicking", "hand-to-hand combat", "target acquisition",
	"covert operations", "intelligence gathering", "marksmanship",
	"knife-throwing", "explosives", "poison", "seduction",
	"disguises", "exotic weaponry", "vehicles", "boobytraps",
}

// RandomSkills picks n distinct skills from the dossier pool
func RandomSkills(n int) []string {
	if n > len(dossierSkills) {
		n = len(dossierSkills)
	}
	picks := make([]string, 0, n)
	for _, i := range rand.Perm(len(dossierSkills))[:n] {
		picks = append(picks, dossierSkills[i])
	}
	return picks
}
