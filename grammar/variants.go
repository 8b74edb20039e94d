package grammar

import "strings"

// The closed vocabulary of terminal variants. Each variant may have a
// corresponding feature substring in the lexicon's inflection strings;
// variants without one (abbrev, subj, the adjective subject cases, ...)
// are interpreted by the individual matchers instead.
var variantFeature = map[string]string{
	"nf":    "NF",
	"þf":    "ÞF",
	"þgf":   "ÞGF",
	"ef":    "EF",
	"kk":    "KK",
	"kvk":   "KVK",
	"hk":    "HK",
	"et":    "ET",
	"ft":    "FT",
	"mst":   "MST",
	"est":   "EST",
	"esb":   "ESB",
	"evb":   "EVB",
	"p1":    "1P",
	"p2":    "2P",
	"p3":    "3P",
	"op":    "OP",
	"sp":    "SP",
	"gm":    "GM",
	"mm":    "MM",
	"sb":    "SB",
	"vb":    "VB",
	"nh":    "NH",
	"fh":    "FH",
	"bh":    "BH",
	"lh":    "LH",
	"vh":    "VH",
	"nt":    "NT",
	"þt":    "ÞT",
	"sagnb": "SAGNB",
	"lhþt":  "LHÞT",
	"gr":    "gr",
	// Variants without a direct inflection feature
	"abbrev": "",
	"subj":   "",
	"none":   "",
	"expl":   "",
	"sþf":    "",
	"sþgf":   "",
	"sef":    "",
	"0":      "",
	"1":      "",
	"2":      "",
}

// verbFeature lists the variants that are checked as required
// inflection features on verb meanings.
var verbFeature = map[string]string{
	"p1": "1P", "p2": "2P", "p3": "3P",
	"nh": "NH", "vh": "VH", "lh": "LH", "bh": "BH", "fh": "FH",
	"sagnb": "SAGNB", "lhþt": "LHÞT",
	"nt": "NT", "þt": "ÞT",
	"kk": "KK", "kvk": "KVK", "hk": "HK",
	"sb": "SB", "vb": "VB",
	"gm": "GM", "mm": "MM", "sp": "SP",
	"expl": "það",
}

// restrictiveFeature lists inflection features that a verb meaning may
// only carry if the terminal explicitly asks for them.
var restrictiveFeature = map[string]string{
	"sagnb": "SAGNB",
	"lhþt":  "LHÞT",
	"bh":    "BH",
}

// Cases in canonical order.
var Cases = []string{"nf", "þf", "þgf", "ef"}

var caseSet = map[string]bool{"nf": true, "þf": true, "þgf": true, "ef": true}

// Genders in canonical order.
var Genders = []string{"kk", "kvk", "hk"}

var genderSet = map[string]bool{"kk": true, "kvk": true, "hk": true}

// IsCase reports whether v is a case variant.
func IsCase(v string) bool { return caseSet[v] }

// IsGender reports whether v is a gender variant.
func IsGender(v string) bool { return genderSet[v] }

// KnownVariant reports whether v belongs to the closed variant
// vocabulary.
func KnownVariant(v string) bool {
	_, ok := variantFeature[v]
	return ok
}

// hasFeature reports whether the variant's inflection feature occurs in
// the given inflection string. Variants without a feature match freely.
func hasFeature(v, inflection string) bool {
	f := variantFeature[v]
	return f == "" || strings.Contains(inflection, f)
}

// MeaningVariants derives the variant set carried by an inflection
// string, e.g. "NFETgr" -> {nf, et, gr}. It is used to compute the
// all-variants form of terminal descriptors.
func MeaningVariants(inflection string) []string {
	var vs []string
	for _, v := range variantOrder {
		f := variantFeature[v]
		if f != "" && strings.Contains(inflection, f) {
			if v == "lh" && strings.Contains(inflection, "LHÞT") {
				// LH matches inside LHÞT; only report lh for the
				// present participle
				if !strings.Contains(inflection, "LH-NT") && !strings.Contains(inflection, "LHNT") {
					continue
				}
			}
			vs = append(vs, v)
		}
	}
	return vs
}

// variantOrder fixes a deterministic enumeration order for
// MeaningVariants.
var variantOrder = []string{
	"nf", "þf", "þgf", "ef", "kk", "kvk", "hk", "et", "ft",
	"mst", "est", "esb", "evb", "p1", "p2", "p3", "op", "sp",
	"gm", "mm", "sb", "vb", "nh", "fh", "bh", "lh", "vh", "nt", "þt",
	"sagnb", "lhþt", "gr",
}
