package job

import (
	"github.com/ornolfur/greina/grammar"
)

// DefaultGrammar builds a compact core grammar for declarative
// sentences: subject and predicate, verbs with zero to two argument
// cases, auxiliary constructions, adjective runs, genitive qualifiers,
// prepositional phrases and adverbs. The production grammar is loaded
// from its source file instead; this one serves embedded use, demos
// and tests.
func DefaultGrammar() (*grammar.Grammar, error) {
	b := grammar.NewBuilder("GreinaCore", "S0")

	b.Tag("SagnInnskot", "enable_prep_bonus")
	b.Tag("SagnRuna", "pick_up_verb")
	b.Tag("Setning", "begin_prep_scope")

	b.LHS("S0").N("Setning").N("Lokatákn").End()
	b.LHS("Lokatákn").T(`"."`).End()
	b.LHS("Lokatákn").T(`"!"`).End()
	b.LHS("Lokatákn").T(`"?"`).End()

	b.LHS("Setning").N("NlFrumlag").N("Sagnliður").End()
	// Impersonal constructions take a dative subject
	b.LHS("Setning").N("NlFrumlagÞgf").N("Sagnliður").Prio(1).End()

	b.LHS("NlFrumlag").N("NlNf").End()
	b.LHS("NlFrumlagÞgf").N("NlÞgf").End()

	// Case-variant noun phrases; the simplifier folds these wrappers
	b.LHS("NlNf").T("no_nf").End()
	b.LHS("NlNf").T("person_nf").End()
	b.LHS("NlNf").T("lo_nf").N("NlNf").End()
	b.LHS("NlNf").N("NlNf").N("EfLiður").Prio(1).End()
	b.LHS("NlÞf").T("no_þf").End()
	b.LHS("NlÞf").T("lo_þf").N("NlÞf").End()
	b.LHS("NlÞf").T("tala").N("NlÞf").End()
	b.LHS("NlÞf").N("NlÞf").N("EfLiður").Prio(1).End()
	b.LHS("NlÞgf").T("no_þgf").End()
	b.LHS("NlÞgf").T("lo_þgf").N("NlÞgf").End()
	b.LHS("NlEf").T("no_ef").End()
	b.LHS("EfLiður").N("NlEf").End()

	b.LHS("Sagnliður").N("SagnRuna").End()
	b.LHS("Sagnliður").N("SagnRuna").N("SagnInnskot").End()
	b.LHS("Sagnliður").N("Sagnliður").N("Atviksliður").Prio(1).End()

	b.LHS("SagnRuna").T("so_0").End()
	b.LHS("SagnRuna").T("so_1_þf").N("NlBeintAndlag").End()
	b.LHS("SagnRuna").T("so_2_þgf_þf").N("NlÓbeintAndlag").N("NlBeintAndlag").End()
	b.LHS("SagnRuna").N("HjSögn").N("SagnHluti").End()

	b.LHS("NlBeintAndlag").N("NlÞf").End()
	b.LHS("NlÓbeintAndlag").N("NlÞgf").End()

	b.LHS("HjSögn").T("so_et").End()
	b.LHS("HjSögn").T("so_ft").End()
	b.LHS("SagnHluti").T("so_sagnb").End()

	b.LHS("SagnInnskot").N("FsLiður").End()
	b.LHS("FsLiður").T("fs_þf").N("NlÞf").End()
	b.LHS("FsLiður").T("fs_þgf").N("NlÞgf").End()
	b.LHS("FsLiður").T("fs_ef").N("NlEf").End()

	b.LHS("Atviksliður").T("ao").End()

	return b.Grammar()
}
