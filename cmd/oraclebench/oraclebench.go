// oraclebench runs repeated Simon hidden-string recoveries for each entry in
// the cartesian product of a collection of tuning parameters, e.g. problem
// size, shot schedule and injected bit-flip rate, and outputs a CSV of
// success statistics for each combination.
package main

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"text/template"

	flag "github.com/spf13/pflag"

	"github.com/qlab-algos/oraclelab/oracle"
	"github.com/qlab-algos/oraclelab/oracle/bitvec"
	"github.com/qlab-algos/oraclelab/oracle/sampler"
)

var (
	ns     = flag.IntSlice("n", []int{4}, "The hidden string lengths to benchmark.")
	shots  = flag.IntSlice("shots", []int{oracle.DefaultShotsPerRound}, "The shots to request per sampling round.")
	rounds = flag.IntSlice("rounds", []int{oracle.DefaultMaxRounds}, "The maximum sampling rounds before giving up.")
	flips  = flag.Float64Slice("flip", []float64{0}, "The per-bit corruption probabilities to inject.")
	trials = flag.Int("trials", 50, "The number of random secrets to attempt per combination.")
	seed   = flag.Int64("seed", 1, "The PRNG seed.")
)

var (
	inputs  = []string{"n", "shots", "rounds", "flip"}
	columns = []string{"N", "ShotsPerRound", "MaxRounds", "FlipProb", "Trials",
		"Recovered", "Contradictions", "Underdetermined", "MeanShots", "MeanRounds"}
)

// An Experiment packages together the result of benchmarking a single
// parameterization for easy formatting.
type Experiment struct {
	// Fields corresponding to experiment parameters
	N             int
	ShotsPerRound int
	MaxRounds     int
	FlipProb      float64
	Trials        int

	// Fields corresponding to experiment results
	Recovered       int
	Contradictions  int
	Underdetermined int
	MeanShots       float64
	MeanRounds      float64
}

func main() {
	flag.Parse()
	fmt.Println(header())
	tmpl := template.Must(template.New("line").Parse(lineTmpl()))
	rng := rand.New(rand.NewSource(*seed))
	var args [][]interface{}
	for _, inp := range inputs {
		args = append(args, lookupInput(inp))
	}
	applyCartesian(func(args []interface{}) {
		exp := &Experiment{
			N:             args[inpIndex("n")].(int),
			ShotsPerRound: args[inpIndex("shots")].(int),
			MaxRounds:     args[inpIndex("rounds")].(int),
			FlipProb:      args[inpIndex("flip")].(float64),
			Trials:        *trials,
		}
		if err := bench(exp, rng); err != nil {
			log.Printf("Benching %v: %v", exp, err)
		}
		if err := tmpl.Execute(os.Stdout, exp); err != nil {
			log.Fatalf("BUG: could not fill in line template: %v", err)
		}
	}, args)
}

func inpIndex(v string) int {
	for i, inp := range inputs {
		if inp == v {
			return i
		}
	}
	return -1
}

func bench(exp *Experiment, rng *rand.Rand) error {
	var totalShots, totalRounds int
	for t := 0; t < exp.Trials; t++ {
		spec, err := oracle.EncodeSimon(randomSecret(exp.N, rng))
		if err != nil {
			return err
		}
		var src oracle.Source
		src, err = sampler.NewSimon(spec, rng)
		if err != nil {
			return err
		}
		if exp.FlipProb > 0 {
			src, err = sampler.NewCorrupter(src, exp.FlipProb, rng)
			if err != nil {
				return err
			}
		}
		got, stats, err := oracle.Recover(oracle.RecoverOpts{
			Source:        src,
			N:             exp.N,
			ShotsPerRound: exp.ShotsPerRound,
			MaxRounds:     exp.MaxRounds,
		})
		totalShots += stats.Shots
		totalRounds += stats.Rounds
		switch {
		case err == nil && got.Equal(spec.Secret):
			exp.Recovered++
		case errors.Is(err, oracle.ErrContradiction):
			exp.Contradictions++
		case errors.Is(err, oracle.ErrUnderdetermined):
			exp.Underdetermined++
		case err != nil:
			return err
		}
	}
	exp.MeanShots = float64(totalShots) / float64(exp.Trials)
	exp.MeanRounds = float64(totalRounds) / float64(exp.Trials)
	return nil
}

// randomSecret draws a uniformly random nonzero hidden string of length n.
func randomSecret(n int, rng *rand.Rand) string {
	for {
		v := bitvec.New(n)
		for i := 0; i < n; i++ {
			v.Set(i, rng.Intn(2) == 1)
		}
		if !v.IsZero() {
			return v.String()
		}
	}
}

func header() string {
	return strings.Join(columns, ", ")
}

func lineTmpl() string {
	var els []string
	for _, c := range columns {
		els = append(els, "{{."+c+"}}")
	}
	return strings.Join(els, ", ") + "\n"
}

func lookupInput(name string) []interface{} {
	var r []interface{}
	if v, err := flag.CommandLine.GetIntSlice(name); err == nil {
		for _, val := range v {
			r = append(r, val)
		}
	} else if v, err := flag.CommandLine.GetFloat64Slice(name); err == nil {
		for _, val := range v {
			r = append(r, val)
		}
	} else {
		log.Fatalf("Unknown type for input %s", name)
	}
	return r
}

func applyCartesian(f func([]interface{}), args [][]interface{}) {
	for i := range args {
		if len(args[i]) == 1 {
			continue
		}
		l := make([][]interface{}, len(args))
		r := make([][]interface{}, len(args))
		copy(l, args)
		copy(r, args)
		l[i] = args[i][:1]
		r[i] = args[i][1:]
		applyCartesian(f, l)
		applyCartesian(f, r)
		return
	}
	x := make([]interface{}, 0, len(args))
	for _, a := range args {
		x = append(x, a[0])
	}
	f(x)
}
