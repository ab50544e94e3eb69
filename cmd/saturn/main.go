// Command saturn is a thin driver over the saturation core. It owns none of
// the external collaborators spec.md §1 places out of scope (TPTP parsing,
// CNF conversion, proof-object printing, SinE pruning, auto-scheduling);
// those live in a separate front-end. This binary exists to exercise the
// core end to end: build a clause set directly with clauseset.Constructor,
// run it to completion, and map the result to a process exit code.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/augurlab/saturn/internal/clause"
	"github.com/augurlab/saturn/internal/clauseset"
	"github.com/augurlab/saturn/internal/config"
	"github.com/augurlab/saturn/internal/derivation"
	"github.com/augurlab/saturn/internal/order"
	"github.com/augurlab/saturn/internal/result"
	"github.com/augurlab/saturn/internal/saturate"
	"github.com/augurlab/saturn/internal/stats"
	"github.com/augurlab/saturn/internal/symbol"
	"github.com/augurlab/saturn/internal/term"
)

// unitUnsatisfiable builds P(a), ¬P(a) — spec.md §8 scenario S4 — as a
// placeholder input set. A real deployment replaces this with clauses
// handed down from the CNF/parsing front-end via the same clauseset
// constructor.
func unitUnsatisfiable(bank *term.Bank, tab *symbol.Table) []clauseset.ClauseSpec {
	a := bank.Insert(tab.Declare("a", 0, nil, symbol.SortIndividual, 0).Code)
	p := tab.Declare("P", 1, []symbol.Sort{symbol.SortIndividual}, symbol.SortBoolean, symbol.FlagPredicate)
	return []clauseset.ClauseSpec{
		{
			Name: "pa",
			Role: clause.RoleAxiom,
			Literals: []clauseset.LiteralSpec{
				{Functor: p.Code, Args: []*term.Term{a}, Sign: true, IsAtom: true},
			},
		},
		{
			Name: "not_pa",
			Role: clause.RoleNegatedConjecture,
			Literals: []clauseset.LiteralSpec{
				{Functor: p.Code, Args: []*term.Term{a}, Sign: false, IsAtom: true},
			},
		},
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	log := logrus.New()

	tab := symbol.NewTable()
	ocb := order.NewOCB(order.KBO)
	bank := term.NewBank(tab)
	bank.SetWeightFunc(ocb.WeightFunc())

	cfg := config.FromFlags(flagsFromEnv())
	st := &stats.Stats{}

	ctor := clauseset.NewConstructor(bank, tab)
	initial := ctor.BuildAll(unitUnsatisfiable(bank, tab))

	eng := saturate.New(bank, tab, ocb, cfg, st)
	eng.AddInitial(initial...)

	ctx := context.Background()
	if cfg.CPULimitSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.CPULimitSeconds)*time.Second)
		defer cancel()
	}

	res, err := eng.Run(ctx)
	if err != nil {
		log.WithError(err).Error("saturation run failed")
		return result.UsageError.ExitCode()
	}

	report(log, eng, res)
	return res.Outcome.ExitCode()
}

func report(log *logrus.Logger, eng *saturate.Engine, res *result.Result) {
	snap := eng.Stats.Snapshot()
	log.WithFields(logrus.Fields{
		"outcome":   res.Outcome.String(),
		"processed": res.ProcessedCount,
		"generated": res.GeneratedCount,
		"rewrites":  snap.RewriteSteps,
	}).Info("saturation finished")

	if res.Outcome != result.ProofFound || res.Refutation == nil {
		return
	}
	root := derivation.Unwind(res.Refutation, eng.Lookup)
	fmt.Printf("proof found, derivation depth %d, %d premises\n", derivation.Depth(root), len(derivation.Clauses(root)))
}

// flagsFromEnv stands in for the external driver's flag parsing (spec.md
// §6 lists the flag surface; parsing it is out of scope here). It only
// recognises the handful of flags worth demonstrating config.FromFlags's
// coercion with.
func flagsFromEnv() map[string]interface{} {
	raw := map[string]interface{}{}
	if v, ok := os.LookupEnv("SATURN_TERM_ORDERING"); ok {
		raw["term-ordering"] = v
	}
	if v, ok := os.LookupEnv("SATURN_LITERAL_SELECTION"); ok {
		raw["literal-selection-strategy"] = v
	}
	if v, ok := os.LookupEnv("SATURN_PROCESSED_CLAUSES_LIMIT"); ok {
		raw["processed-clauses-limit"] = v
	}
	if v, ok := os.LookupEnv("SATURN_CPU_LIMIT"); ok {
		raw["cpu-limit"] = v
	}
	return raw
}
