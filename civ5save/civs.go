package civ5save

// Civilization keys as the game stores them in the save container. The
// table covers the base game and both expansions; the server rejects picks
// it does not offer, this list guards the codec side.
var civilizations = []string{
	"CIVILIZATION_AMERICA",
	"CIVILIZATION_ARABIA",
	"CIVILIZATION_ASSYRIA",
	"CIVILIZATION_AUSTRIA",
	"CIVILIZATION_AZTEC",
	"CIVILIZATION_BABYLON",
	"CIVILIZATION_BRAZIL",
	"CIVILIZATION_BYZANTIUM",
	"CIVILIZATION_CARTHAGE",
	"CIVILIZATION_CELTS",
	"CIVILIZATION_CHINA",
	"CIVILIZATION_DENMARK",
	"CIVILIZATION_EGYPT",
	"CIVILIZATION_ENGLAND",
	"CIVILIZATION_ETHIOPIA",
	"CIVILIZATION_FRANCE",
	"CIVILIZATION_GERMANY",
	"CIVILIZATION_GREECE",
	"CIVILIZATION_HUNS",
	"CIVILIZATION_INCA",
	"CIVILIZATION_INDIA",
	"CIVILIZATION_INDONESIA",
	"CIVILIZATION_IROQUOIS",
	"CIVILIZATION_JAPAN",
	"CIVILIZATION_KOREA",
	"CIVILIZATION_MAYA",
	"CIVILIZATION_MONGOL",
	"CIVILIZATION_MOROCCO",
	"CIVILIZATION_NETHERLANDS",
	"CIVILIZATION_OTTOMAN",
	"CIVILIZATION_PERSIA",
	"CIVILIZATION_POLAND",
	"CIVILIZATION_POLYNESIA",
	"CIVILIZATION_PORTUGAL",
	"CIVILIZATION_ROME",
	"CIVILIZATION_RUSSIA",
	"CIVILIZATION_SHOSHONE",
	"CIVILIZATION_SIAM",
	"CIVILIZATION_SONGHAI",
	"CIVILIZATION_SPAIN",
	"CIVILIZATION_SWEDEN",
	"CIVILIZATION_VENICE",
	"CIVILIZATION_ZULU",
}

var civilizationSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(civilizations))
	for _, c := range civilizations {
		m[c] = struct{}{}
	}
	return m
}()

// KnownCivilizations returns the valid civilization keys in sorted order.
func KnownCivilizations() []string {
	out := make([]string, len(civilizations))
	copy(out, civilizations)
	return out
}

func IsKnownCivilization(civ string) bool {
	_, ok := civilizationSet[civ]
	return ok
}
