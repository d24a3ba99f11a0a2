// Command automata runs the two regex pipelines: reg_to_mindfa parses a
// regex down to its minimal DFA and prints it in the text format the
// format package understands; reg_to_complement parses a regex, builds the
// minimal DFA of its complement language, and reads that back off as a
// regex via state elimination.
package main

import (
	"fmt"
	"os"

	"github.com/projectdiscovery/gologger"

	"github.com/regexfa/automata"
	"github.com/regexfa/automata/format"
)

func usage() {
	gologger.Fatal().Msgf("usage: automata <reg_to_mindfa|reg_to_complement> <regex>")
}

func main() {
	if len(os.Args) != 3 {
		usage()
	}

	cmd, pattern := os.Args[1], os.Args[2]
	switch cmd {
	case "reg_to_mindfa":
		dfa, err := automata.RegexToMinDFA(pattern)
		if err != nil {
			gologger.Fatal().Msgf("reg_to_mindfa: %v", err)
		}
		if err := format.DumpDFA(os.Stdout, dfa); err != nil {
			gologger.Fatal().Msgf("reg_to_mindfa: %v", err)
		}
	case "reg_to_complement":
		regex, err := automata.RegexToComplementRegex(pattern)
		if err != nil {
			gologger.Fatal().Msgf("reg_to_complement: %v", err)
		}
		fmt.Println(regex)
	default:
		gologger.Fatal().Msgf("unknown command %q (want reg_to_mindfa or reg_to_complement)", cmd)
	}
}
