package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/ornolfur/greina/cfg"
	"github.com/ornolfur/greina/grammar"
	"github.com/ornolfur/greina/job"
	"github.com/ornolfur/greina/lex"
	"github.com/ornolfur/greina/tree"
)

// Config is read from the environment (and optionally a config file
// via cleanenv); flags override.
type Config struct {
	LexiconPath  string `env:"GREINA_LEXICON" env-description:"path to the compressed lexicon binary"`
	GrammarCache string `env:"GREINA_GRAMMAR_CACHE" env-description:"path to a compiled grammar cache"`
	ConfigDir    string `env:"GREINA_CONFIG_DIR" env-description:"directory with the .conf score tables"`
	MaxTokens    int    `env:"GREINA_MAX_TOKENS" env-default:"90"`
	TraceLevel   string `env:"GREINA_TRACE" env-default:"Info"`
}

func main() {
	var config Config
	if err := cleanenv.ReadEnv(&config); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	flag.StringVar(&config.LexiconPath, "lexicon", config.LexiconPath, "lexicon binary path")
	flag.StringVar(&config.GrammarCache, "grammar", config.GrammarCache, "compiled grammar cache path")
	flag.StringVar(&config.ConfigDir, "config", config.ConfigDir, "score table directory")
	tlevel := flag.String("trace", config.TraceLevel, "trace level [Debug|Info|Error]")
	flat := flag.Bool("flat", false, "print the flat bracket form instead of a tree")
	flag.Parse()

	gtrace.SyntaxTracer = gologadapter.New()
	tracing.Select("greina.job").SetTraceLevel(traceLevel(*tlevel))
	tracing.Select("greina.parse").SetTraceLevel(traceLevel(*tlevel))

	initDisplay()
	engine, err := makeEngine(config)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	pterm.Info.Println("Greina — Icelandic constituency parser")

	if args := flag.Args(); len(args) > 0 {
		// Batch mode: parse the given files
		for _, path := range args {
			if err := parseFile(engine, path, *flat); err != nil {
				pterm.Error.Println(err.Error())
				os.Exit(2)
			}
		}
		return
	}

	repl, err := readline.New("greina> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	pterm.Info.Println("Enter a sentence, quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			break
		}
		if err != nil {
			pterm.Error.Println(err.Error())
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parseAndPrint(engine, line, *flat)
	}
}

func makeEngine(config Config) (*job.Engine, error) {
	var lexicon *lex.Lexicon
	var err error
	if config.LexiconPath != "" {
		lexicon, err = lex.Open(config.LexiconPath)
		if err != nil {
			return nil, err
		}
	}
	var g *grammar.Grammar
	if config.GrammarCache != "" {
		g, err = grammar.LoadCache(config.GrammarCache)
	} else {
		g, err = job.DefaultGrammar()
	}
	if err != nil {
		return nil, err
	}
	set := cfg.New()
	if config.ConfigDir != "" {
		set, err = cfg.Load(config.ConfigDir)
		if err != nil {
			return nil, err
		}
	}
	opts := job.DefaultOptions()
	opts.MaxTokens = config.MaxTokens
	return job.NewEngine(lexicon, g, set, opts)
}

func parseFile(engine *job.Engine, path string, flat bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	j, err := engine.Parse(string(data))
	if err != nil {
		return err
	}
	for _, s := range j.Sentences() {
		printSentence(s, flat)
	}
	pterm.Info.Println(fmt.Sprintf("%d of %d sentences parsed, ambiguity %.2f, %v",
		j.NumParsed(), j.NumSentences(), j.Ambiguity(), j.ParseTime()))
	return nil
}

func parseAndPrint(engine *job.Engine, text string, flat bool) {
	j, err := engine.Parse(text)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	for _, s := range j.Sentences() {
		printSentence(s, flat)
	}
}

func printSentence(s *job.Sentence, flat bool) {
	if err := s.Err(); err != nil {
		pterm.Error.Println(fmt.Sprintf("%q: %v", s.Text(), err))
		return
	}
	pterm.Info.Println(fmt.Sprintf("%q (score %d, %d combinations)",
		s.Text(), s.Score(), s.Combinations()))
	if flat {
		pterm.Println(s.Tree().Root().Flat())
		return
	}
	root := treeNodeFrom(s.Tree().Root())
	_ = pterm.DefaultTree.WithRoot(root).Render()
}

// treeNodeFrom converts a simplified tree into pterm's tree structure
// for rendering.
func treeNodeFrom(n tree.Node) pterm.TreeNode {
	if n.IsTerminal() {
		label := n.Terminal()
		if label == "" {
			label = "p"
		}
		return pterm.TreeNode{Text: fmt.Sprintf("%s: '%s'", label, n.Token().Text)}
	}
	node := pterm.TreeNode{Text: n.Tag()}
	for _, c := range n.Children() {
		node.Children = append(node.Children, treeNodeFrom(c))
	}
	return node
}

// initDisplay configures pterm prefixes; we use pterm for moderately
// fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " greina ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " error ",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(l string) tracing.TraceLevel {
	switch strings.ToLower(l) {
	case "debug":
		return tracing.LevelDebug
	case "error":
		return tracing.LevelError
	default:
		return tracing.LevelInfo
	}
}
