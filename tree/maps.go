package tree

// ntMap maps grammar nonterminal names to their public tag, or to a
// pair of tags pushed in sequence (outer first). Grammar nonterminals
// not in the map are naming-only wrappers and disappear from the
// simplified tree.
var ntMap = map[string][]string{
	"S0":                   {"S0"},
	"HreinYfirsetning":     {"S-MAIN"},
	"Setning":              {"S-MAIN", "IP"},
	"SetningÁnF":           {"S-MAIN", "IP"},
	"SetningAukafall":      {"S-MAIN", "IP"},
	"Fyrirsögn":            {"S-HEADING"},
	"Forskeyti":            {"S-PREFIX"},
	"Spurnarsetning":       {"S-QUE"},
	"Staðhæfing":           {"S-QUOTE", "IP"},
	"Tilvísunarsetning":    {"CP-REL"},
	"Skýringarsetning":     {"CP-THT"},
	"Spurnaraukasetning":   {"CP-QUE"},
	"Tíðarsetning":         {"CP-ADV-TEMP"},
	"Tilgangssetning":      {"CP-ADV-PURP"},
	"Viðurkenningarsetning": {"CP-ADV-ACK"},
	"Afleiðingarsetning":   {"CP-ADV-CONS"},
	"Orsakarsetning":       {"CP-ADV-CAUSE"},
	"Skilyrðissetning":     {"CP-ADV-COND"},
	"Samanburðarsetning":   {"CP-ADV-CMP"},
	"Sagt":                 {"CP-QUOTE"},
	"Beygingarliður":       {"IP"},
	"BeygingarliðurÁnF":    {"IP"},
	"NhLiður":              {"IP-INF"},
	"Nl":                   {"NP"},
	"NlRunaEða":            {"NP"},
	"NlFrumlag":            {"NP-SUBJ"},
	"NlFrumlagÞgf":         {"NP-SUBJ"},
	"Frumlag":              {"NP-SUBJ"},
	"NlBeintAndlag":        {"NP-OBJ"},
	"NlÓbeintAndlag":       {"NP-IOBJ"},
	"NlSagnfylling":        {"NP-PRD"},
	"LoViðhengi":           {"NP-ADP"},
	"EfLiður":              {"NP-POSS"},
	"Magn":                 {"NP-MEASURE"},
	"Aldur":                {"NP-AGE"},
	"Ávarp":                {"NP-ADDR"},
	"Titill":               {"NP-TITLE"},
	"SérnafnFyrirtæki":     {"NP-COMPANY"},
	"Sagnliður":            {"VP"},
	"SagnliðurÁnF":         {"VP"},
	"SagnRuna":             {"VP"},
	"SagnHluti":            {"VP"},
	"So":                   {"VP"},
	"NhEinfaldur":          {"VP"},
	"HjSögn":               {"VP-AUX"},
	"HjSögnSagnb":          {"VP-AUX"},
	"FsLiður":              {"PP"},
	"FsMeðFallstjórn":      {"PP"},
	"MagnAfLiður":          {"PP"},
	"AfLiður":              {"PP"},
	"Atviksliður":          {"ADVP"},
	"EinnAl":               {"ADVP"},
	"StefnuAtv":            {"ADVP-DIR"},
	"FöstDagsetning":       {"ADVP-DATE-ABS"},
	"AfstæðDagsetning":     {"ADVP-DATE-REL"},
	"FasturTímapunktur":    {"ADVP-TIMESTAMP-ABS"},
	"AfstæðurTímapunktur":  {"ADVP-TIMESTAMP-REL"},
	"Tíðni":                {"ADVP-TMP-SET"},
	"FastTímabil":          {"ADVP-DUR-ABS"},
	"AfstættTímabil":       {"ADVP-DUR-REL"},
	"TímabilTími":          {"ADVP-DUR-TIME"},
	"Samtenging":           {"C"},
	"Aðaltenging":          {"C"},
	"Tilvísunartenging":    {"C"},
	"Skýringartenging":     {"C"},
	"Nhm":                  {"TO"},
}

// idInfo describes one public tag.
type idInfo struct {
	// name is the human-readable (Icelandic) name of the tag.
	name string
	// subjectTo suppresses pushing this tag when the enclosing scope
	// already carries one of the listed tags.
	subjectTo map[string]bool
	// overrides names a tag that this one absorbs when they appear as
	// parent/child with no siblings in between.
	overrides string
}

func tags(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// idMap holds the closed public tag vocabulary.
var idMap = map[string]idInfo{
	"S0":        {name: "Málsgrein"},
	"S-MAIN":    {name: "Setning", subjectTo: tags("S-MAIN", "S-QUE", "CP-QUOTE", "IP", "CP-REL"), overrides: "S-HEADING"},
	"S-HEADING": {name: "Fyrirsögn", subjectTo: tags("S-MAIN")},
	"S-PREFIX":  {name: "Forskeyti"},
	"S-QUE":     {name: "Spurnaraðalsetning", overrides: "S-MAIN"},
	"S-QUOTE":   {name: "Staðhæfing", overrides: "S-MAIN"},
	"CP-THT":    {name: "Skýringarsetning"},
	"CP-QUE":    {name: "Spurnaraukasetning"},
	"CP-REL":    {name: "Tilvísunarsetning", subjectTo: tags("CP-REL")},
	"CP-ADV-TEMP":  {name: "Tíðarsetning"},
	"CP-ADV-PURP":  {name: "Tilgangssetning"},
	"CP-ADV-ACK":   {name: "Viðurkenningarsetning"},
	"CP-ADV-CONS":  {name: "Afleiðingarsetning"},
	"CP-ADV-CAUSE": {name: "Orsakarsetning"},
	"CP-ADV-COND":  {name: "Skilyrðissetning"},
	"CP-ADV-CMP":   {name: "Samanburðarsetning"},
	"CP-QUOTE":     {name: "Tilvitnun"},
	"IP":        {name: "Beygingarliður", subjectTo: tags("IP")},
	"IP-INF":    {name: "Nafnháttarliður"},
	"NP":        {name: "Nafnliður"},
	"NP-SUBJ":   {name: "Frumlag"},
	"NP-OBJ":    {name: "Beint andlag"},
	"NP-IOBJ":   {name: "Óbeint andlag"},
	"NP-PRD":    {name: "Sagnfylling"},
	"NP-ADP":    {name: "Andlag lýsingarorðs"},
	"NP-POSS":   {name: "Eignarfallsliður"},
	"NP-ADDR":   {name: "Ávarp"},
	"NP-TITLE":  {name: "Titill"},
	"NP-COMPANY": {name: "Fyrirtæki"},
	"NP-MEASURE": {name: "Magnliður"},
	"NP-AGE":    {name: "Aldur"},
	"ADJP":      {name: "Lýsingarliður"},
	"VP":        {name: "Sagnliður"},
	"VP-AUX":    {name: "Hjálparsögn", overrides: "VP"},
	"PP":        {name: "Forsetningarliður"},
	"ADVP":      {name: "Atviksliður"},
	"ADVP-DIR":  {name: "Áttaratviksliður"},
	"ADVP-DATE-ABS":      {name: "Föst dagsetning"},
	"ADVP-DATE-REL":      {name: "Afstæð dagsetning"},
	"ADVP-TIMESTAMP-ABS": {name: "Fastur tímapunktur"},
	"ADVP-TIMESTAMP-REL": {name: "Afstæður tímapunktur"},
	"ADVP-TMP-SET":       {name: "Tíðni"},
	"ADVP-DUR-ABS":       {name: "Fast tímabil"},
	"ADVP-DUR-REL":       {name: "Afstætt tímabil"},
	"ADVP-DUR-TIME":      {name: "Tímabil"},
	"P":         {name: "Forsetning"},
	"TO":        {name: "Nafnháttarmerki"},
	"C":         {name: "Samtenging"},
}

// terminalMap wraps single terminals of these categories in a
// nonterminal of their own, so that e.g. a finite verb always sits
// inside a VP and a preposition inside a P.
var terminalMap = map[string]string{
	"so": "VP",
	"fs": "P",
	"uh": "ADVP",
}
