// Package sweep measures how often the unique and list decoders recover a
// random message over a grid of fields, message bounds, code lengths and
// error counts.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/ppopth/rs-listdecode/field"
	"github.com/ppopth/rs-listdecode/rs"

	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/sync/errgroup"
)

var log = logging.Logger("sweep")

// MaxFailures bounds the number of failing transcripts kept in a report
const MaxFailures = 100

// Trial is one encode, corrupt and decode experiment. The message and the
// noise come from their own seeds so a trial can be replayed on its own.
type Trial struct {
	Scenario  string
	Field     string
	K         int
	N         int
	E         int
	PolySeed  int64
	NoiseSeed int64

	field field.Field
}

// Outcome is the result of a trial
type Outcome struct {
	Trial
	Unique         bool
	List           bool
	ListInfeasible bool
	ListSize       int
	M              int
	L              int
	UniqueTime     time.Duration
	ListTime       time.Duration

	transcript *rs.Transcript
}

// Row aggregates the trials sharing scenario, field, k, n and e
type Row struct {
	Scenario       string  `json:"scenario"`
	Field          string  `json:"field"`
	K              int     `json:"k"`
	N              int     `json:"n"`
	E              int     `json:"e"`
	Runs           int     `json:"runs"`
	Unique         int     `json:"unique"`
	List           int     `json:"list"`
	ListInfeasible int     `json:"list_infeasible"`
	UniqueRate     float64 `json:"unique_rate"`
	ListRate       float64 `json:"list_rate"`
}

// Failure is a trial where at least one decoder missed the message
type Failure struct {
	Scenario   string
	Decoders   []string
	Transcript *rs.Transcript
}

// Report is the result of a sweep
type Report struct {
	Scenarios []Scenario `json:"scenarios"`
	Rows      []Row      `json:"rows"`
	Failures  []Failure  `json:"-"`
}

// Scenario returns the scenario with the given name
func (r *Report) Scenario(name string) (Scenario, bool) {
	for _, s := range r.Scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

// Run plans every trial of the configuration and runs them on cfg.Workers
// goroutines. Results do not depend on scheduling. metrics may be nil.
func Run(ctx context.Context, cfg *Config, metrics *Metrics) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	trials, err := Plan(cfg)
	if err != nil {
		return nil, err
	}
	log.Infof("running %d trials on %d workers", len(trials), cfg.Workers)

	outcomes := make([]Outcome, len(trials))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range trials {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := runTrial(trials[i], cfg.MaxMultiplicity)
			if err != nil {
				return fmt.Errorf("trial %s %s k=%d n=%d e=%d: %w", trials[i].Scenario, trials[i].Field, trials[i].K, trials[i].N, trials[i].E, err)
			}
			outcomes[i] = out
			if metrics != nil {
				metrics.observe(&outcomes[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Wait cancels gctx on return; only the caller's context tells whether
	// the loop above stopped early
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := summarize(cfg, outcomes)
	log.Infof("sweep finished: %d rows, %d failing transcripts kept", len(report.Rows), len(report.Failures))
	return report, nil
}

// Plan expands the configuration into trials. Lengths, error counts and
// seeds are drawn from cfg.Seed, so equal configurations give equal plans.
func Plan(cfg *Config) ([]Trial, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	var trials []Trial
	for _, fc := range cfg.Fields {
		f, err := fc.Field()
		if err != nil {
			return nil, err
		}
		if !f.Order().IsInt64() || f.Order().Int64() > math.MaxInt32 {
			return nil, fmt.Errorf("field %s is too large to sweep", f)
		}
		q := int(f.Order().Int64())

		for _, sc := range cfg.Scenarios {
			for _, k := range fc.Ks {
				pairs := lengthsAndErrors(rng, sc, k, q, cfg.LengthsPerK)
				for p := 0; p < cfg.PolynomialsPerK; p++ {
					polySeed := rng.Int63()
					for _, ne := range pairs {
						trials = append(trials, Trial{
							Scenario:  sc.Name,
							Field:     f.String(),
							K:         k,
							N:         ne[0],
							E:         ne[1],
							PolySeed:  polySeed,
							NoiseSeed: rng.Int63(),
							field:     f,
						})
					}
				}
			}
		}
	}
	return trials, nil
}

// lengthsAndErrors returns the (n, e) pairs of a scenario for one k, sorted
// by n then e
func lengthsAndErrors(rng *rand.Rand, sc Scenario, k, q, count int) [][2]int {
	var ns []int
	switch sc.Lengths {
	case LengthsRandom:
		for i := 0; i < count; i++ {
			ns = append(ns, k+1+rng.Intn(q-k))
		}
		sort.Ints(ns)
	case LengthsK:
		ns = []int{k}
	case LengthsQ:
		ns = []int{q}
	}

	var pairs [][2]int
	for _, n := range ns {
		radius := rs.UniqueRadius(n, k)
		switch sc.Errors {
		case ErrorsFixed:
			pairs = append(pairs, [2]int{n, min(sc.ErrorCount, n)})
		case ErrorsFraction:
			pairs = append(pairs, [2]int{n, int(float64(radius) * sc.ErrorFraction)})
		case ErrorsBeyond:
			pairs = append(pairs, [2]int{n, (n + radius) / 2})
		case ErrorsRandom:
			draws := 1
			if sc.Lengths != LengthsRandom {
				draws = count
			}
			es := make([]int, draws)
			for i := range es {
				es[i] = rng.Intn(radius + 1)
			}
			sort.Ints(es)
			for _, e := range es {
				pairs = append(pairs, [2]int{n, e})
			}
		}
	}
	return pairs
}

func runTrial(t Trial, maxM int) (Outcome, error) {
	f := t.field
	out := Outcome{Trial: t}

	points, err := rs.DefaultPoints(f, t.N)
	if err != nil {
		return out, err
	}
	msg := rs.RandomPolynomial(rand.New(rand.NewSource(t.PolySeed)), f, t.K)
	cw, err := rs.Encode(f, msg, points, t.K)
	if err != nil {
		return out, err
	}
	received, positions, err := rs.Corrupt(rand.New(rand.NewSource(t.NoiseSeed)), f, cw, t.E)
	if err != nil {
		return out, err
	}

	start := time.Now()
	decoded, err := rs.DecodeUnique(f, received, t.K, t.E)
	out.UniqueTime = time.Since(start)
	switch {
	case err == nil:
		out.Unique = decoded.Equal(msg)
	case errors.Is(err, rs.ErrDecodeFailure), errors.Is(err, rs.ErrInvalidInput):
		log.Debugf("unique decoder failed on %s %s k=%d n=%d e=%d: %v", t.Scenario, t.Field, t.K, t.N, t.E, err)
	default:
		return out, err
	}

	m, L, err := rs.ChooseListParams(t.N, t.K, t.E, maxM)
	if err != nil {
		log.Debugf("no list parameters for %s k=%d n=%d e=%d", t.Field, t.K, t.N, t.E)
		out.ListInfeasible = true
	} else {
		out.M, out.L = m, L
		start = time.Now()
		list, err := rs.DecodeList(f, received, t.K, m, L)
		out.ListTime = time.Since(start)
		switch {
		case errors.Is(err, rs.ErrInvalidInput):
			log.Debugf("list decoder rejected %s k=%d n=%d: %v", t.Field, t.K, t.N, err)
			out.ListInfeasible = true
		case err != nil && !errors.Is(err, rs.ErrUnsolvableSystem):
			return out, err
		}
		out.ListSize = len(list)
		for _, p := range list {
			if p.Equal(msg) {
				out.List = true
				break
			}
		}
	}

	if !out.Unique || !out.List {
		out.transcript = &rs.Transcript{
			Field:    f,
			Codeword: received,
			K:        t.K,
			Errors:   positions,
			Message:  msg,
		}
	}
	return out, nil
}

type rowKey struct {
	scenario string
	field    string
	k, n, e  int
}

func summarize(cfg *Config, outcomes []Outcome) *Report {
	report := &Report{Scenarios: cfg.Scenarios}
	index := make(map[rowKey]int)
	for i := range outcomes {
		o := &outcomes[i]
		key := rowKey{o.Scenario, o.Field, o.K, o.N, o.E}
		r, ok := index[key]
		if !ok {
			r = len(report.Rows)
			index[key] = r
			report.Rows = append(report.Rows, Row{Scenario: o.Scenario, Field: o.Field, K: o.K, N: o.N, E: o.E})
		}
		row := &report.Rows[r]
		row.Runs++
		if o.Unique {
			row.Unique++
		}
		if o.List {
			row.List++
		}
		if o.ListInfeasible {
			row.ListInfeasible++
		}

		if o.transcript != nil && len(report.Failures) < MaxFailures {
			var decoders []string
			if !o.Unique {
				decoders = append(decoders, decoderUnique)
			}
			if !o.List {
				decoders = append(decoders, decoderList)
			}
			report.Failures = append(report.Failures, Failure{Scenario: o.Scenario, Decoders: decoders, Transcript: o.transcript})
		}
	}
	for i := range report.Rows {
		row := &report.Rows[i]
		row.UniqueRate = float64(row.Unique) / float64(row.Runs)
		row.ListRate = float64(row.List) / float64(row.Runs)
	}
	return report
}
