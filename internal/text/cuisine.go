package text

import "strings"

// nationalCuisineVocab is the fixed vocabulary of national/regional cuisine
// identifiers recognized by the venue theme. Tokens are stored in canonical
// form (folded, lowercase, alphanumeric).
var nationalCuisineVocab = map[string]struct{}{
	// Europe
	"italian": {}, "french": {}, "spanish": {}, "portuguese": {}, "greek": {},
	"turkish": {}, "german": {}, "polish": {}, "russian": {}, "ukrainian": {},
	"balkan": {}, "hungarian": {}, "romanian": {}, "bulgarian": {}, "georgian": {},
	// Americas
	"mexican": {}, "argentinian": {}, "peruvian": {}, "brazilian": {},
	"colombian": {}, "venezuelan": {}, "caribbean": {}, "american": {}, "texmex": {},
	// Middle East & Africa
	"lebanese": {}, "israeli": {}, "palestinian": {}, "syrian": {}, "iraqi": {},
	"iranian": {}, "afghan": {}, "moroccan": {}, "tunisian": {}, "algerian": {},
	"ethiopian": {}, "eritrean": {}, "egyptian": {}, "southafrican": {}, "nigerian": {},
	// Asia
	"indian": {}, "pakistani": {}, "bangladeshi": {}, "srilankan": {}, "nepali": {},
	"chinese": {}, "japanese": {}, "korean": {}, "thai": {}, "vietnamese": {},
	"laotian": {}, "cambodian": {}, "indonesian": {}, "malaysian": {},
	"singaporean": {}, "filipino": {},
}

// excludedTokens are dish or venue-form words that appear in cuisine fields
// but do not denote a national cuisine.
var excludedTokens = map[string]struct{}{
	"pizza": {}, "pasta": {}, "sushi": {}, "ramen": {}, "doner": {}, "kebab": {},
	"burger": {}, "bbq": {}, "grill": {}, "steak": {}, "noodles": {},
	"dumpling": {}, "dumplings": {}, "sandwich": {}, "bakery": {}, "cafe": {},
	"coffee": {}, "bubbletea": {}, "boba": {}, "falafel": {},
}

// TokenizeCuisines splits a semicolon-separated cuisine string and returns
// the tokens that name a national cuisine, in canonical form. Dish words and
// unrecognized tokens are dropped regardless of case or accents.
func TokenizeCuisines(cuisines string) []string {
	if cuisines == "" {
		return nil
	}
	var toks []string
	for _, part := range strings.Split(cuisines, ";") {
		t := Canon(part)
		if t == "" {
			continue
		}
		if _, excluded := excludedTokens[t]; excluded {
			continue
		}
		if _, ok := nationalCuisineVocab[t]; ok {
			toks = append(toks, t)
		}
	}
	return toks
}

// NationalsSet returns the set of national cuisine tokens in a cuisine string.
func NationalsSet(cuisines string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range TokenizeCuisines(cuisines) {
		set[t] = struct{}{}
	}
	return set
}
