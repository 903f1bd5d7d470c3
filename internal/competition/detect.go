package competition

import (
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/antzucaro/matchr"
)

// International is the country assigned to cross-border competitions
const International = "International"

// minSimilarity is the Jaro-Winkler score a league name must reach to count
// as a fuzzy match against a known league.
const minSimilarity = 0.95

// knownLeagues maps competition names to their country
var knownLeagues = map[string]string{
	// England
	"Premier League":          "England",
	"FA Women's Super League": "England",
	"EFL Championship":        "England",
	"EFL League One":          "England",
	"EFL League Two":          "England",
	"National League":         "England",
	"Premier League 2":        "England",
	"FA Cup":                  "England",
	"FA Community Shield":     "England",
	"EFL Cup":                 "England",

	// Spain
	"La Liga":                  "Spain",
	"Liga F":                   "Spain",
	"Spanish Segunda División": "Spain",
	"Copa del Rey":             "Spain",
	"Supercopa de España":      "Spain",

	// France
	"Ligue 1":               "France",
	"Ligue 2":               "France",
	"Première Ligue":        "France",
	"Coupe de France":       "France",
	"Coupe de la Ligue":     "France",
	"Trophée des Champions": "France",

	// Germany
	"Fußball-Bundesliga":         "Germany",
	"Frauen-Bundesliga":          "Germany",
	"2. Fußball-Bundesliga":      "Germany",
	"3. Fußball-Liga":            "Germany",
	"DFB-Pokal":                  "Germany",
	"DFB-Pokal Frauen":           "Germany",
	"Franz Beckenbauer Supercup": "Germany",

	// Italy
	"Serie A":             "Italy",
	"Serie B":             "Italy",
	"Coppa Italia":        "Italy",
	"Supercoppa Italiana": "Italy",

	// Netherlands
	"Eredivisie":         "Netherlands",
	"Eredivisie Vrouwen": "Netherlands",
	"Eerste Divisie":     "Netherlands",

	// Portugal
	"Primeira Liga": "Portugal",

	// Scotland
	"Scottish Premiership":  "Scotland",
	"Scottish Championship": "Scotland",

	// Turkey
	"Süper Lig": "Turkey",

	// Belgium
	"Belgian Pro League":    "Belgium",
	"Challenger Pro League": "Belgium",

	// Poland
	"Ekstraklasa": "Poland",

	// Sweden
	"Allsvenskan":    "Sweden",
	"Damallsvenskan": "Sweden",
	"Superettan":     "Sweden",

	// Norway
	"Eliteserien": "Norway",
	"Toppserien":  "Norway",

	// United States
	"Major League Soccer":            "United States",
	"National Women's Soccer League": "United States",
	"USL Championship":               "United States",
	"USL League One":                 "United States",
	"Lamar Hunt U.S. Open Cup":       "United States",
	"NWSL Challenge Cup":             "United States",

	// Mexico
	"Liga MX": "Mexico",

	// Japan
	"J1 League":                "Japan",
	"J2 League":                "Japan",
	"Women Empowerment League": "Japan",

	// South Korea
	"K League 1": "South Korea",

	// Australia
	"A-League Men":   "Australia",
	"A-League Women": "Australia",

	// India
	"Indian Super League": "India",
	"I-League":            "India",

	// China
	"Chinese Football Association Super League": "China",

	// Saudi Arabia
	"Saudi Pro League": "Saudi Arabia",

	// Austria
	"Austrian Football Bundesliga": "Austria",

	// Brazil
	"Campeonato Brasileiro Série A": "Brazil",
	"Campeonato Brasileiro Série B": "Brazil",

	// Argentina
	"Liga Profesional de Fútbol Argentina": "Argentina",

	// Croatia
	"Croatian Football League": "Croatia",

	// Czech Republic
	"Czech First League": "Czech Republic",

	// Denmark
	"Danish Superliga": "Denmark",

	// Finland
	"Veikkausliiga": "Finland",

	// Greece
	"Super League Greece": "Greece",

	// Hungary
	"Nemzeti Bajnokság I": "Hungary",

	// Ireland
	"League of Ireland Premier Division": "Ireland",

	// Iran
	"Persian Gulf Pro League": "Iran",

	// Romania
	"Liga I": "Romania",

	// Russia
	"Russian Premier League": "Russia",

	// Serbia
	"Serbian SuperLiga": "Serbia",

	// Switzerland
	"Swiss Super League": "Switzerland",

	// Ukraine
	"Ukrainian Premier League": "Ukraine",

	// Uruguay
	"Uruguayan Primera División": "Uruguay",

	// South Africa
	"South African Premiership": "South Africa",

	// Canada
	"Canadian Premier League": "Canada",

	// Chile
	"Chilean Primera División": "Chile",

	// Colombia
	"Categoría Primera A": "Colombia",
}

var internationalMarkers = []string{
	"FIFA", "UEFA", "AFC", "CAF", "CONCACAF", "CONMEBOL", "OFC",
	"World Cup", "Champions League", "Europa League", "Nations League",
	"Copa Libertadores", "Sudamericana", "Leagues Cup", "Olympics",
	"International", "Confederations Cup", "Gold Cup", "Asian Cup",
	"Copa América", "European Championship", "African Cup of Nations",
	"Algarve Cup", "SheBelieves Cup",
}

var parenthesised = regexp.MustCompile(`\(([^)]*)\)`)

// DetectCountry infers a country from a competition name.
// Returns an empty string when nothing matches.
func DetectCountry(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	if country, ok := knownLeagues[name]; ok {
		return country
	}

	for _, marker := range internationalMarkers {
		if strings.Contains(name, marker) {
			return International
		}
	}

	// "(M)" and "(W)" are gender suffixes, not countries
	if m := parenthesised.FindStringSubmatch(name); m != nil {
		inner := strings.TrimSpace(m[1])
		if inner != "" && inner != "M" && inner != "W" {
			return inner
		}
	}

	if prefix, _, ok := strings.Cut(name, " - "); ok {
		return strings.TrimSpace(prefix)
	}

	return fuzzyLeague(name)
}

// leagueNames holds the keys of knownLeagues in sorted order so fuzzy
// matching does not depend on map iteration.
var leagueNames = slices.Sorted(maps.Keys(knownLeagues))

// fuzzyLeague returns the country of the most similar known league
func fuzzyLeague(name string) string {
	best := ""
	bestScore := 0.0
	for _, league := range leagueNames {
		if score := matchr.JaroWinkler(name, league, false); score > bestScore {
			best = knownLeagues[league]
			bestScore = score
		}
	}
	if bestScore < minSimilarity {
		return ""
	}
	return best
}

// FillCountries sets the country of every record lacking one when it can be
// detected from the name. It returns the number of records changed.
func FillCountries(records []*Record) int {
	filled := 0
	for _, r := range records {
		if r.HasCountry() {
			continue
		}
		if country := DetectCountry(r.Name); country != "" {
			r.Country = country
			filled++
		}
	}
	return filled
}
