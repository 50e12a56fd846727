package main

import (
	"fmt"

	"github.com/Danilo-Araujo-Silva/vampire/config"
	"github.com/Danilo-Araujo-Silva/vampire/logic"
	"github.com/Danilo-Araujo-Silva/vampire/saturation"
)

func main() {
	printBanner()

	sig := logic.NewSignature()
	bank := logic.NewBank(sig)
	p := sig.AddPred("p", 0)

	input := []*logic.Clause{
		logic.NewClause([]*logic.Literal{bank.Lit(p, true)}, 0, logic.NewInference(logic.RuleInput)),
		logic.NewClause([]*logic.Literal{bank.Lit(p, false)}, 0, logic.NewInference(logic.RuleInput)),
	}

	alg := saturation.New(config.New(), bank)
	defer alg.Close()

	res := alg.Run(input)
	fmt.Printf("\n%s\n", res.Reason)
}

func printBanner() {
	fmt.Println("Vampire saturation core demo")
	fmt.Println("")
}
